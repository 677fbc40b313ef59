// Package healthcheck probes a running server, for container health checks
// on images without curl.
package healthcheck

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/pkg/errors"
)

// Probe GETs url, retrying connection failures and 5xx answers up to retries
// times, and fails unless the final answer is 200 OK.
func Probe(ctx context.Context, url string, retries int) error {
	client := retryablehttp.NewClient()
	client.RetryMax = retries
	client.RetryWaitMin = 100 * time.Millisecond
	client.RetryWaitMax = time.Second
	client.Logger = nil
	client.ErrorHandler = retryablehttp.PassthroughErrorHandler

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return errors.Wrap(err, "failed to create request")
	}
	resp, err := client.Do(req)
	if err != nil {
		return errors.Wrapf(err, "failed to reach %s", url)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK {
		return errors.Errorf("%s answered %s", url, resp.Status)
	}
	return nil
}
