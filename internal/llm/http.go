package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/oss-crawler/webcrawl/pkg/failure"
)

// HTTPProvider is the default Provider implementation: it POSTs a small
// JSON envelope {model, prompt, schema} to a configured endpoint and
// expects back either {"text": "..."} or, for structured calls,
// {"result": {...}}. The model field is always sent empty: HTTPProvider
// holds no model setting and applies no per-call-site model or timeout
// from ProviderConfig. No example in the retrieval pack wires a specific
// vendor SDK (OpenAI/Anthropic/etc.) for this, so the wire shape is this
// package's own minimal contract rather than a fabricated vendor API.
type HTTPProvider struct {
	endpoint   string
	httpClient *http.Client
}

func NewHTTPProvider(endpoint string) *HTTPProvider {
	return &HTTPProvider{
		endpoint:   endpoint,
		httpClient: &http.Client{},
	}
}

type httpRequestEnvelope struct {
	Model  string         `json:"model"`
	Prompt string         `json:"prompt"`
	Schema map[string]any `json:"schema,omitempty"`
}

type httpResponseEnvelope struct {
	Text   string         `json:"text"`
	Result map[string]any `json:"result"`
}

func (p *HTTPProvider) Invoke(ctx context.Context, prompt string, opts InvokeOptions) (string, failure.ClassifiedError) {
	resp, err := p.call(ctx, httpRequestEnvelope{Prompt: prompt}, opts)
	if err != nil {
		return "", err
	}
	return resp.Text, nil
}

func (p *HTTPProvider) InvokeStructured(ctx context.Context, prompt string, schema map[string]any, opts InvokeOptions) (map[string]any, failure.ClassifiedError) {
	resp, err := p.call(ctx, httpRequestEnvelope{Prompt: prompt, Schema: schema}, opts)
	if err != nil {
		return nil, err
	}
	if resp.Result != nil {
		return resp.Result, nil
	}
	return unmarshalStructuredResponse(resp.Text, opts.CallSite)
}

func (p *HTTPProvider) call(ctx context.Context, envelope httpRequestEnvelope, opts InvokeOptions) (httpResponseEnvelope, failure.ClassifiedError) {
	body, err := json.Marshal(envelope)
	if err != nil {
		return httpResponseEnvelope{}, &LLMError{Message: err.Error(), Cause: ErrCauseInvocation, CallSite: opts.CallSite}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint, bytes.NewReader(body))
	if err != nil {
		return httpResponseEnvelope{}, &LLMError{Message: err.Error(), Cause: ErrCauseInvocation, CallSite: opts.CallSite}
	}
	req.Header.Set("Content-Type", "application/json")

	httpResp, err := p.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil || errorsIsDeadlineExceeded(err) {
			return httpResponseEnvelope{}, &LLMError{Message: err.Error(), Cause: ErrCauseTimeout, CallSite: opts.CallSite}
		}
		return httpResponseEnvelope{}, &LLMError{Message: err.Error(), Cause: ErrCauseInvocation, CallSite: opts.CallSite}
	}
	defer httpResp.Body.Close()

	raw, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return httpResponseEnvelope{}, &LLMError{Message: err.Error(), Cause: ErrCauseInvocation, CallSite: opts.CallSite}
	}

	if httpResp.StatusCode < 200 || httpResp.StatusCode >= 300 {
		return httpResponseEnvelope{}, &LLMError{
			Message:  "provider returned status " + httpResp.Status,
			Cause:    ErrCauseInvocation,
			CallSite: opts.CallSite,
		}
	}

	var decoded httpResponseEnvelope
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return httpResponseEnvelope{}, &LLMError{Message: err.Error(), Cause: ErrCauseInvocation, CallSite: opts.CallSite}
	}
	return decoded, nil
}

func errorsIsDeadlineExceeded(err error) bool {
	return err != nil && (context.DeadlineExceeded.Error() == err.Error() || bytes.Contains([]byte(err.Error()), []byte("deadline exceeded")))
}

// WithTimeout returns a context bound to opts' resolved timeout, or ctx
// itself unchanged when no timeout is configured.
func WithTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, timeout)
}
