package translator

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// maxErrorBody caps how much of a failed reply is quoted in the error.
const maxErrorBody = 512

// HTTPInvoker posts to inference endpoints served over plain HTTPS, such as
// Hugging Face Inference Endpoints. The endpoint name is appended to baseURL.
type HTTPInvoker struct {
	baseURL string
	token   string
	client  *http.Client
}

func NewHTTPInvoker(baseURL, token string, timeout time.Duration) *HTTPInvoker {
	client := &http.Client{}
	if timeout > 0 {
		client.Timeout = timeout
	}
	return &HTTPInvoker{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		client:  client,
	}
}

func (i *HTTPInvoker) Invoke(ctx context.Context, endpoint string, body []byte) ([]byte, error) {
	url := fmt.Sprintf("%s/%s", i.baseURL, endpoint)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, invocationError(endpoint, 0, fmt.Errorf("failed to create request: %w", err))
	}

	httpReq.Header.Set("Content-Type", contentTypeJSON)
	httpReq.Header.Set("Accept", contentTypeJSON)
	if i.token != "" {
		httpReq.Header.Set("Authorization", fmt.Sprintf("Bearer %s", i.token))
	}

	resp, err := i.client.Do(httpReq)
	if err != nil {
		return nil, invocationError(endpoint, 0, fmt.Errorf("request failed: %w", err))
	}
	defer resp.Body.Close()

	reply, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, invocationError(endpoint, resp.StatusCode, fmt.Errorf("failed to read response: %w", err))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if len(reply) > maxErrorBody {
			reply = reply[:maxErrorBody]
		}
		return nil, invocationError(endpoint, resp.StatusCode, fmt.Errorf("API returned: %s", strings.TrimSpace(string(reply))))
	}

	return reply, nil
}
