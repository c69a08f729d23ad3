package fetcher

import (
	"context"
	"net/http"

	"github.com/oss-crawler/webcrawl/pkg/failure"
	"github.com/oss-crawler/webcrawl/pkg/retry"
)

type Fetcher interface {
	Init(httpClient *http.Client)
	Fetch(
		ctx context.Context,
		crawlDepth int,
		fetchParam FetchParam,
		retryParam retry.RetryParam,
	) (FetchResult, failure.ClassifiedError)
}
