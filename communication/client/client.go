package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"mcsat/communication"
)

type Client struct {
	serverURL  string
	httpClient *http.Client
}

// New returns a client for the solve server at serverURL. A nil httpClient
// means http.DefaultClient.
func New(serverURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		serverURL:  strings.TrimSuffix(serverURL, "/"),
		httpClient: httpClient,
	}
}

func (c *Client) Solve(ctx context.Context, req communication.SolveRequest) (communication.SolveResponse, error) {
	var resp communication.SolveResponse

	data, err := json.Marshal(req)
	if err != nil {
		return resp, fmt.Errorf("failed to encode solve request: %w", err)
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.serverURL+communication.SolvePath, bytes.NewReader(data))
	if err != nil {
		return resp, fmt.Errorf("failed to create solve request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return resp, fmt.Errorf("failed to post solve request: %w", err)
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode != http.StatusOK {
		return resp, statusError(httpResp)
	}
	if err := json.NewDecoder(httpResp.Body).Decode(&resp); err != nil {
		return resp, fmt.Errorf("failed to decode solve response: %w", err)
	}
	return resp, nil
}

func (c *Client) Health(ctx context.Context) error {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.serverURL+communication.HealthPath, nil)
	if err != nil {
		return fmt.Errorf("failed to create health request: %w", err)
	}
	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("failed to reach server: %w", err)
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode != http.StatusOK {
		return statusError(httpResp)
	}
	return nil
}

func statusError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	var e communication.ErrorResponse
	if json.Unmarshal(body, &e) == nil && e.Error != "" {
		return fmt.Errorf("server returned status %d: %s", resp.StatusCode, e.Error)
	}
	return fmt.Errorf("server returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
}
