package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cwbudde/hqcflow/internal/vqe"
)

// evaluateRequest is the wire payload sent to a remote evaluation service.
type evaluateRequest struct {
	Params   []float64            `json:"params"`
	Operator *vqe.Operator        `json:"operator"`
	Ansatz   vqe.AnsatzDescriptor `json:"ansatz"`
}

// evaluateResponse is the remote service's reply.
type evaluateResponse struct {
	Energy float64 `json:"energy"`
}

// RemoteClient evaluates against a remote cloud service over HTTP JSON.
// Each call blocks on network I/O and honors the context deadline; a timeout
// surfaces as an error wrapping context.DeadlineExceeded, never as a stale
// or default value.
type RemoteClient struct {
	name    string
	baseURL string
	client  *http.Client
}

// NewRemoteClient creates a remote backend named name that POSTs to
// baseURL/api/v1/evaluate. timeout is the transport-level ceiling; the
// bridge's per-evaluation timeout still applies through the context.
func NewRemoteClient(name, baseURL string, timeout time.Duration) *RemoteClient {
	return &RemoteClient{
		name:    name,
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

// Name implements vqe.Adapter.
func (c *RemoteClient) Name() string {
	return c.name
}

// Evaluate implements vqe.Adapter.
func (c *RemoteClient) Evaluate(ctx context.Context, params []float64, op *vqe.Operator, ansatz vqe.AnsatzDescriptor) (float64, error) {
	payload, err := json.Marshal(evaluateRequest{
		Params:   params,
		Operator: op,
		Ansatz:   ansatz,
	})
	if err != nil {
		return 0, fmt.Errorf("failed to encode evaluation request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/v1/evaluate", bytes.NewReader(payload))
	if err != nil {
		return 0, fmt.Errorf("failed to build evaluation request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("remote evaluation failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return 0, fmt.Errorf("remote evaluation returned %d: %s", resp.StatusCode, string(body))
	}

	var out evaluateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return 0, fmt.Errorf("failed to decode evaluation response: %w", err)
	}
	return out.Energy, nil
}
