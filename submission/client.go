// Package submission sends form records to the add-student service and feeds
// the outcome back into the form state.
package submission

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/CorrelAid/student_payment_form/models"
)

const (
	DefaultEndpoint = "http://localhost:3002/api/student/add"

	FallbackMessage = "An error occurred"

	// bodies larger than this are not searched for a message
	maxErrorBody = 64 << 10
)

// SubmitError is a failed submission. Status is 0 when no response arrived.
type SubmitError struct {
	Status  int
	Message string
	Err     error
}

func (e *SubmitError) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("submit failed: %s", e.Message)
	}
	return fmt.Sprintf("submit failed: status %d: %s", e.Status, e.Message)
}

func (e *SubmitError) Unwrap() error {
	return e.Err
}

type Client struct {
	endpoint string
	http     *http.Client
}

// NewClient returns a client for endpoint. A nil httpClient uses a plain
// http.Client without timeout; cancellation is left to the caller's context.
func NewClient(endpoint string, httpClient *http.Client) *Client {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &Client{endpoint: endpoint, http: httpClient}
}

func (c *Client) Endpoint() string {
	return c.endpoint
}

// Submit posts record once. Any 2xx is success.
func (c *Client) Submit(ctx context.Context, record models.FormRecord) error {
	payload, err := json.Marshal(record)
	if err != nil {
		return &SubmitError{Message: FallbackMessage, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return &SubmitError{Message: FallbackMessage, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return &SubmitError{Message: FallbackMessage, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	return &SubmitError{
		Status:  resp.StatusCode,
		Message: messageFrom(body),
	}
}

// messageFrom pulls a non-empty string "message" out of a JSON body.
func messageFrom(body []byte) string {
	var parsed struct {
		Message json.RawMessage `json:"message"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil || len(parsed.Message) == 0 {
		return FallbackMessage
	}
	var msg string
	if err := json.Unmarshal(parsed.Message, &msg); err != nil || msg == "" {
		return FallbackMessage
	}
	return msg
}
