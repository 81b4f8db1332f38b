package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"syscall"

	"github.com/wcorp/cyberrange/internal/server/config"
	"github.com/wcorp/cyberrange/internal/server/models"
)

// Failure codes reported by the fetch proxy.
const (
	CodeConnRefused      = "ECONNREFUSED"
	CodeConnReset        = "ECONNRESET"
	CodeHostUnreachable  = "EHOSTUNREACH"
	CodeNetUnreachable   = "ENETUNREACH"
	CodeNotFound         = "ENOTFOUND"
	CodeTimeout          = "ECONNABORTED"
	CodeTooManyRedirects = "ERR_FR_TOO_MANY_REDIRECTS"
	CodeInvalidURL       = "ERR_INVALID_URL"
	CodeNetwork          = "ERR_NETWORK"
	CodeBadRequest       = "ERR_BAD_REQUEST"
	CodeBadResponse      = "ERR_BAD_RESPONSE"
)

// ErrTooManyRedirects stops a fetch that exceeds the redirect cap.
var ErrTooManyRedirects = errors.New("maximum number of redirects exceeded")

// FetchError is a failed fetch as reported to the caller.
type FetchError struct {
	Message string
	Code    string
}

func (e *FetchError) Error() string {
	return e.Message
}

// FetchService performs server-side GETs of arbitrary caller-supplied URLs.
// Any scheme the client supports and any host, internal or loopback, is
// reachable.
type FetchService struct {
	client *http.Client
}

func NewFetchService(cfg *config.Config) *FetchService {
	maxRedirects := cfg.FetchMaxRedirects
	return &FetchService{
		client: &http.Client{
			Timeout: cfg.FetchTimeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) > maxRedirects {
					return ErrTooManyRedirects
				}
				return nil
			},
		},
	}
}

// Fetch GETs rawURL and returns the upstream status, headers and body.
// Failures, including any final status of 300 or above, come back as
// *FetchError.
func (s *FetchService) Fetch(ctx context.Context, rawURL string) (*models.FetchResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, &FetchError{Message: err.Error(), Code: CodeInvalidURL}
	}
	req.Header.Set("Accept", "application/json, text/plain, */*")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, &FetchError{Message: err.Error(), Code: classifyFetchError(err)}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &FetchError{Message: err.Error(), Code: classifyFetchError(err)}
	}

	if resp.StatusCode >= 300 {
		code := CodeBadRequest
		if resp.StatusCode >= 500 {
			code = CodeBadResponse
		}
		return nil, &FetchError{
			Message: fmt.Sprintf("Request failed with status code %d", resp.StatusCode),
			Code:    code,
		}
	}

	return &models.FetchResult{
		Status:  resp.StatusCode,
		Headers: flattenHeaders(resp.Header),
		Data:    decodeBody(body),
	}, nil
}

func flattenHeaders(h http.Header) map[string]string {
	out := make(map[string]string, len(h))
	for k, v := range h {
		out[strings.ToLower(k)] = strings.Join(v, ", ")
	}
	return out
}

func decodeBody(body []byte) any {
	if json.Valid(body) {
		return json.RawMessage(body)
	}
	return string(body)
}

func classifyFetchError(err error) string {
	if errors.Is(err, ErrTooManyRedirects) {
		return CodeTooManyRedirects
	}

	var ne net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &ne) && ne.Timeout()) {
		return CodeTimeout
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return CodeNotFound
	}

	switch {
	case errors.Is(err, syscall.ECONNREFUSED):
		return CodeConnRefused
	case errors.Is(err, syscall.ECONNRESET):
		return CodeConnReset
	case errors.Is(err, syscall.EHOSTUNREACH):
		return CodeHostUnreachable
	case errors.Is(err, syscall.ENETUNREACH):
		return CodeNetUnreachable
	}

	msg := err.Error()
	if strings.Contains(msg, "unsupported protocol scheme") || strings.Contains(msg, "no Host in request URL") {
		return CodeInvalidURL
	}
	return CodeNetwork
}
