package ai

import (
	"math/rand"
	"net"
	"net/http"
	"time"
)

// retryClient retries transient HTTP failures with exponential backoff and
// jitter. Client errors other than 429 are returned immediately.
type retryClient struct {
	client       *http.Client
	maxRetries   int
	initialDelay time.Duration
	maxDelay     time.Duration
}

func newRetryClient(client *http.Client, maxRetries int) *retryClient {
	if client == nil {
		client = http.DefaultClient
	}
	if maxRetries <= 0 {
		maxRetries = 3
	}

	return &retryClient{
		client:       client,
		maxRetries:   maxRetries,
		initialDelay: 500 * time.Millisecond,
		maxDelay:     5 * time.Second,
	}
}

func (c *retryClient) Do(req *http.Request) (*http.Response, error) {
	var resp *http.Response
	var err error
	delay := c.initialDelay

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			if req.GetBody != nil {
				body, bodyErr := req.GetBody()
				if bodyErr != nil {
					return nil, bodyErr
				}
				req.Body = body
			}

			select {
			case <-req.Context().Done():
				return nil, req.Context().Err()
			case <-time.After(applyJitter(delay)):
			}
			delay = min(time.Duration(float64(delay)*2), c.maxDelay)
		}

		resp, err = c.client.Do(req)
		if !shouldRetry(resp, err) {
			return resp, err
		}

		// The final attempt's response goes back to the caller unclosed.
		if resp != nil && attempt < c.maxRetries {
			_ = resp.Body.Close()
		}
	}

	return resp, err
}

func shouldRetry(resp *http.Response, err error) bool {
	if err != nil {
		if netErr, ok := err.(net.Error); ok && netErr.Timeout() {
			return true
		}
		if _, ok := err.(*net.OpError); ok {
			return true
		}
		if _, ok := err.(*net.DNSError); ok {
			return true
		}
		return false
	}

	if resp.StatusCode == http.StatusTooManyRequests {
		return true
	}

	return resp.StatusCode >= 500 && resp.StatusCode < 600
}

func applyJitter(delay time.Duration) time.Duration {
	jitterFactor := 0.9 + rand.Float64()*0.2
	return time.Duration(float64(delay) * jitterFactor)
}
