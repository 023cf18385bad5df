// Package httputil holds small HTTP helpers shared by the search and
// extraction packages.
package httputil

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// StatusError is returned by GetJSON for non-2xx responses. It keeps the
// response body so callers can surface the upstream error message.
type StatusError struct {
	StatusCode int
	Body       []byte
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("http %d: %s", e.StatusCode, string(e.Body))
}

// GetJSON sends a GET request with the given headers and returns the
// response body. Non-2xx responses yield a *StatusError.
func GetJSON(ctx context.Context, url string, headers map[string]string, timeoutSecs int) ([]byte, int, error) {
	client := &http.Client{Timeout: time.Duration(timeoutSecs) * time.Second}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, 0, err
	}
	req.Header.Set("Accept", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("reading response body: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, resp.StatusCode, &StatusError{StatusCode: resp.StatusCode, Body: data}
	}
	return data, resp.StatusCode, nil
}
