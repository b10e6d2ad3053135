// Package provider implements the three news-provider adapters (Google
// Programmable Search, newsdata.io, gnews.io) behind a common Provider
// interface, plus the Registry the composition root looks adapters up
// in, in types.ProviderOrder, when it builds one scheduler per provider.
// Each adapter shares decompression handling, Retry-After parsing, and
// retryable/permanent error classification.
package provider

import (
	"compress/flate"
	"compress/gzip"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/andybalholm/brotli"

	"github.com/AIDMI-DataHub/heatscan/internal/types"
)

// httpClient is the shared transport used by every provider adapter.
// There is no cookie jar, redirect policy, proxy manager, or
// user-agent rotation — JSON news APIs need none of that; only
// decompression and Retry-After/error classification apply here.
type httpClient struct {
	client      *http.Client
	maxBodySize int64
}

func newHTTPClient(timeout time.Duration) *httpClient {
	transport := &http.Transport{
		DialContext: (&net.Dialer{
			Timeout:   15 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:        50,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
		DisableCompression:  true, // decompression handled explicitly below, including brotli
	}
	return &httpClient{
		client:      &http.Client{Transport: transport, Timeout: timeout},
		maxBodySize: 5 * 1024 * 1024,
	}
}

// do executes req and returns the decompressed, size-limited body, or a
// *types.ProviderError classifying the failure as retryable or not.
func (c *httpClient) do(ctx context.Context, req *http.Request, providerName string) ([]byte, error) {
	req = req.WithContext(ctx)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Accept-Encoding", "gzip, deflate, br")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &types.ProviderError{Provider: providerName, Err: err, Retryable: isRetryableError(err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		retryAfter := parseRetryAfter(resp.Header.Get("Retry-After"))
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, &types.ProviderError{
			Provider:          providerName,
			StatusCode:        resp.StatusCode,
			Err:               fmt.Errorf("HTTP 429: rate limited: %s", strings.TrimSpace(string(body))),
			Retryable:         true,
			RetryAfterSeconds: int(retryAfter.Seconds()),
		}
	}
	if resp.StatusCode >= 500 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, &types.ProviderError{
			Provider:   providerName,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("HTTP %d: %s", resp.StatusCode, strings.TrimSpace(string(body))),
			Retryable:  true,
		}
	}
	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, &types.ProviderError{
			Provider:   providerName,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("HTTP %d: %s", resp.StatusCode, strings.TrimSpace(string(body))),
			Retryable:  false,
		}
	}

	reader, err := decompressReader(resp, io.LimitReader(resp.Body, c.maxBodySize))
	if err != nil {
		return nil, &types.ProviderError{Provider: providerName, Err: err, Retryable: false}
	}
	body, err := io.ReadAll(reader)
	if err != nil {
		return nil, &types.ProviderError{Provider: providerName, Err: err, Retryable: true}
	}
	return body, nil
}

func decompressReader(resp *http.Response, reader io.Reader) (io.Reader, error) {
	switch resp.Header.Get("Content-Encoding") {
	case "gzip":
		return gzip.NewReader(reader)
	case "deflate":
		return flate.NewReader(reader), nil
	case "br":
		return brotli.NewReader(reader), nil
	default:
		return reader, nil
	}
}

// isRetryableError classifies a transport-level error as transient
// (timeouts, resets, unexpected EOF) versus permanent (everything else,
// including cancellation).
func isRetryableError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	if errors.Is(err, io.ErrUnexpectedEOF) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		if errors.Is(opErr.Err, syscall.ECONNRESET) || errors.Is(opErr.Err, syscall.ECONNREFUSED) {
			return true
		}
	}
	return false
}

// parseRetryAfter parses the Retry-After header (seconds or HTTP-date),
// capped at two minutes, defaulting to five seconds when absent or
// unparsable.
func parseRetryAfter(header string) time.Duration {
	if header == "" {
		return 5 * time.Second
	}
	if secs, err := strconv.Atoi(strings.TrimSpace(header)); err == nil {
		if secs > 120 {
			secs = 120
		}
		return time.Duration(secs) * time.Second
	}
	if t, err := http.ParseTime(header); err == nil {
		d := time.Until(t)
		if d < 0 {
			return time.Second
		}
		if d > 2*time.Minute {
			return 2 * time.Minute
		}
		return d
	}
	return 5 * time.Second
}
