package translator

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

const contentTypeJSON = "application/json"

// ErrInvocation matches every failure to reach a remote endpoint or to read
// its reply.
var ErrInvocation = errors.New("endpoint invocation failed")

// InvocationError describes a failed remote call. StatusCode is zero when no
// HTTP status was received.
type InvocationError struct {
	Endpoint   string
	StatusCode int
	Err        error
}

func (e *InvocationError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("invoke %s: status %d: %v", e.Endpoint, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("invoke %s: %v", e.Endpoint, e.Err)
}

func (e *InvocationError) Unwrap() error { return e.Err }

func (e *InvocationError) Is(target error) bool { return target == ErrInvocation }

func invocationError(endpoint string, status int, err error) error {
	return &InvocationError{Endpoint: endpoint, StatusCode: status, Err: err}
}

// Invoker sends a JSON document to a named inference endpoint and returns the
// raw reply body.
type Invoker interface {
	Invoke(ctx context.Context, endpoint string, body []byte) ([]byte, error)
}

// Endpoint is a named inference endpoint reached through an Invoker.
type Endpoint struct {
	name    string
	invoker Invoker
}

func NewEndpoint(name string, invoker Invoker) *Endpoint {
	return &Endpoint{name: name, invoker: invoker}
}

func (e *Endpoint) Name() string {
	return e.name
}

// InvokeJSON marshals body, calls the endpoint and decodes the JSON reply into
// out. All failures are reported as *InvocationError.
func (e *Endpoint) InvokeJSON(ctx context.Context, body, out any) error {
	payload, err := marshalBody(body)
	if err != nil {
		return invocationError(e.name, 0, fmt.Errorf("failed to marshal request: %w", err))
	}

	reply, err := e.invoker.Invoke(ctx, e.name, payload)
	if err != nil {
		var invErr *InvocationError
		if errors.As(err, &invErr) {
			return err
		}
		return invocationError(e.name, 0, err)
	}

	if err := json.Unmarshal(reply, out); err != nil {
		return invocationError(e.name, 0, fmt.Errorf("failed to decode response: %w", err))
	}
	return nil
}

// marshalBody encodes without HTML escaping so language tags such as
// ">>ita<<" reach the model verbatim.
func marshalBody(body any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(body); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// translationReply is the reply shape shared by the hosted MT endpoints.
type translationReply []*struct {
	TranslationText *string `json:"translation_text"`
}

func (r translationReply) first(endpoint string) (string, error) {
	if len(r) == 0 {
		return "", invocationError(endpoint, 0, errors.New("empty translation response"))
	}
	if r[0] == nil || r[0].TranslationText == nil {
		return "", invocationError(endpoint, 0, errors.New("missing translation_text"))
	}
	return *r[0].TranslationText, nil
}
