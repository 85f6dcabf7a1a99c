/* external.go
 * Contains the logic used to fetch result pages from federation websites and return the raw body to the higher
 * level functions. Requests are throttled so repeated scrapes do not hammer the source sites
 * Authors: Zachary Bower
 */

package external

import (
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

// DefaultUserAgent is sent with every page request
const DefaultUserAgent = "SportsResultsFetcher/1.0"

// Fetcher downloads result pages. Limiter may be nil for unthrottled use (tests)
type Fetcher struct {
	Client    *http.Client
	Limiter   *rate.Limiter
	UserAgent string
}

// NewFetcher creates a Fetcher allowing ratePerSec requests per second with the given request timeout
// Preconditions: Receives a positive rate and timeout. A rate <= 0 disables throttling
// Postconditions: Returns a configured Fetcher
func NewFetcher(ratePerSec float64, timeout time.Duration) *Fetcher {
	var limiter *rate.Limiter
	if ratePerSec > 0 {
		limiter = rate.NewLimiter(rate.Limit(ratePerSec), 1)
	}
	return &Fetcher{
		Client:    &http.Client{Timeout: timeout},
		Limiter:   limiter,
		UserAgent: DefaultUserAgent,
	}
}

// FetchPage fetches the raw body of a page. This function does not perform any parsing on the text
// Preconditions: Receives context and string containing the URL of the page
// Postconditions: Returns the body as a string, or an error if the request fails or the status is not 200
func (f *Fetcher) FetchPage(ctx context.Context, url string) (string, error) {
	if f.Limiter != nil {
		if err := f.Limiter.Wait(ctx); err != nil {
			return "", fmt.Errorf("rate limiter: %w", err)
		}
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	request.Header.Set("User-Agent", f.UserAgent)
	request.Header.Set("Accept-Encoding", "gzip")

	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}
	response, err := client.Do(request)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		return "", fmt.Errorf("failed to fetch page %s: status code %d", url, response.StatusCode)
	}

	// Setting Accept-Encoding ourselves disables the transport's transparent decompression
	var reader io.Reader = response.Body
	if response.Header.Get("Content-Encoding") == "gzip" {
		gz, err := gzip.NewReader(response.Body)
		if err != nil {
			return "", fmt.Errorf("failed to create gzip reader: %w", err)
		}
		defer gz.Close()
		reader = gz
	}

	body, err := io.ReadAll(reader)
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}
	return string(body), nil
}
