package request

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gojek/heimdall/v7"
	"github.com/sirupsen/logrus"

	"github.com/pricecart/pricecart/pkg/logger"
)

// Request wraps an outbound HTTP request to a backend collaborator.
type Request struct {
	req *http.Request
}

func NewRequest(ctx context.Context, method, url string, body []byte) (*Request, error) {
	var reader io.Reader
	if len(body) > 0 {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to build %s request: %w", method, err)
	}
	req.Header.Set("Content-Type", "application/json")

	return &Request{req: req}, nil
}

func (r *Request) SetHeaders(headers map[string]string) {
	for key, value := range headers {
		r.req.Header.Set(key, value)
	}
}

// MakeRequest executes the request through the given heimdall client and
// returns the response body and status code. Transport errors come back
// unmodified apart from wrapping; non-2xx statuses are the caller's call.
func (r *Request) MakeRequest(client heimdall.Client, operation, backend string) ([]byte, int, error) {
	log := logger.Logger(r.req.Context()).WithFields(logrus.Fields{
		"operation": operation,
		"backend":   backend,
		"method":    r.req.Method,
	})

	start := time.Now()
	resp, err := client.Do(r.req)
	if err != nil {
		log.WithError(err).Error("request to backend failed")
		return nil, 0, fmt.Errorf("%s request failed: %w", operation, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		log.WithError(err).Error("failed to read backend response")
		return nil, resp.StatusCode, fmt.Errorf("failed to read %s response: %w", operation, err)
	}

	log.WithFields(logrus.Fields{
		"status":   resp.StatusCode,
		"duration": time.Since(start).String(),
	}).Debug("backend request completed")

	return data, resp.StatusCode, nil
}
