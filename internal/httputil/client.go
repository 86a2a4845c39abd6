// Package httputil provides the HTTP plumbing shared by the fetching
// sources: status classification, transient-failure retry, and byte
// downloads.
package httputil

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	apiTimeout      = 10 * time.Second
	downloadTimeout = 5 * time.Minute
)

var (
	// ErrNotFound is returned when the requested resource does not exist.
	ErrNotFound = errors.New("resource not found")

	// ErrNetwork is returned for transport failures and non-OK statuses.
	ErrNetwork = errors.New("network error")
)

// NewAPIClient returns a client for small metadata requests.
func NewAPIClient() *http.Client {
	return &http.Client{Timeout: apiTimeout}
}

// NewDownloadClient returns a client for artifact downloads, which can run
// long enough that the metadata timeout would cut them off.
func NewDownloadClient() *http.Client {
	return &http.Client{Timeout: downloadTimeout}
}

// GetBytes performs a GET against url and returns the response body,
// retrying transient failures with backoff. The extra headers are set on
// every attempt.
func GetBytes(ctx context.Context, client *http.Client, url string, headers map[string]string) ([]byte, error) {
	var body []byte
	err := RetryWithBackoff(ctx, func() error {
		data, err := getOnce(ctx, client, url, headers)
		if err != nil {
			return err
		}
		body = data
		return nil
	})
	if err != nil {
		return nil, err
	}
	return body, nil
}

// getOnce is a single GET attempt. Transport errors, 5xx statuses, and
// truncated reads come back as RetryableError.
func getOnce(ctx context.Context, client *http.Client, url string, headers map[string]string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, err
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, &RetryableError{Err: fmt.Errorf("%w: %v", ErrNetwork, err)}
	}
	defer resp.Body.Close()

	if err := checkStatus(resp.StatusCode); err != nil {
		return nil, err
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &RetryableError{Err: fmt.Errorf("%w: %v", ErrNetwork, err)}
	}

	return data, nil
}

func checkStatus(code int) error {
	switch {
	case code == http.StatusOK:
		return nil
	case code == http.StatusNotFound:
		return ErrNotFound
	case code >= 500:
		return &RetryableError{Err: fmt.Errorf("%w: status %d", ErrNetwork, code)}
	default:
		return fmt.Errorf("%w: status %d", ErrNetwork, code)
	}
}
