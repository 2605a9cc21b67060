package render

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/renderstim/stimgen/internal/latents"
)

// Error represents an error response from the render endpoint.
type Error struct {
	StatusCode int
	Body       string
}

func (e *Error) Error() string {
	return fmt.Sprintf("scene render failed: HTTP %d: %s", e.StatusCode, e.Body)
}

// IsRetryable returns true for server errors (5xx) and network errors.
// Client errors (4xx) are considered permanent.
func (e *Error) IsRetryable() bool {
	return e.StatusCode >= 500
}

// HTTPClient submits scene configs to a render collaborator over HTTP.
type HTTPClient struct {
	baseURL    string
	token      string
	httpClient *http.Client
	logger     *slog.Logger
}

func NewHTTPClient(baseURL, token string, timeout time.Duration, logger *slog.Logger) *HTTPClient {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &HTTPClient{
		baseURL: baseURL,
		token:   token,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// RenderScene POSTs one SceneConfig to the collaborator's render endpoint
// and decodes the augmented result.
func (c *HTTPClient) RenderScene(ctx context.Context, cfg *latents.SceneConfig) (*Result, error) {
	body, err := json.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("marshal scene config: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/render", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build render request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("render request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, &Error{StatusCode: resp.StatusCode, Body: string(raw)}
	}

	var result Result
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode render result: %w", err)
	}

	if len(result.ObjectPositions) != cfg.NumObjects {
		return nil, fmt.Errorf("render result has %d object positions, scene has %d objects",
			len(result.ObjectPositions), cfg.NumObjects)
	}

	if c.logger != nil {
		c.logger.Debug("scene rendered", "seed", cfg.Seed, "channels", len(result.Channels))
	}
	return &result, nil
}
