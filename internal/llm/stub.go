package llm

import (
	"context"

	"github.com/oss-crawler/webcrawl/pkg/failure"
)

// StubProvider is a deterministic test double for Provider: it never makes
// a network call, returning pre-recorded responses keyed by call site so
// linkgate/agentcrawler tests can exercise classifier and tool-loop logic
// without a real backend.
type StubProvider struct {
	TextResponses       map[CallSite]string
	StructuredResponses map[CallSite][]map[string]any
	Err                 failure.ClassifiedError

	calls map[CallSite]int
}

func NewStubProvider() *StubProvider {
	return &StubProvider{
		TextResponses:       map[CallSite]string{},
		StructuredResponses: map[CallSite][]map[string]any{},
		calls:               map[CallSite]int{},
	}
}

func (p *StubProvider) Invoke(_ context.Context, _ string, opts InvokeOptions) (string, failure.ClassifiedError) {
	if p.Err != nil {
		return "", p.Err
	}
	return p.TextResponses[opts.CallSite], nil
}

func (p *StubProvider) InvokeStructured(_ context.Context, _ string, _ map[string]any, opts InvokeOptions) (map[string]any, failure.ClassifiedError) {
	if p.Err != nil {
		return nil, p.Err
	}
	if p.calls == nil {
		p.calls = map[CallSite]int{}
	}
	responses := p.StructuredResponses[opts.CallSite]
	idx := p.calls[opts.CallSite]
	p.calls[opts.CallSite] = idx + 1
	if idx >= len(responses) {
		if len(responses) == 0 {
			return map[string]any{}, nil
		}
		return responses[len(responses)-1], nil
	}
	return responses[idx], nil
}
