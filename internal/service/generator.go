package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/kimurazver67/sport-transformation-app-sub000/internal/types"
)

// HTTPGenerator hands generation requests to the remote plan generator.
// The generator answers with the same {success, data, error} envelope as this API.
type HTTPGenerator struct {
	url    string
	apiKey string
	client *http.Client
}

var _ Generator = (*HTTPGenerator)(nil)

func NewHTTPGenerator(url, apiKey string, timeout time.Duration) *HTTPGenerator {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &HTTPGenerator{
		url:    url,
		apiKey: apiKey,
		client: &http.Client{Timeout: timeout},
	}
}

type generatorEnvelope struct {
	Success bool               `json:"success"`
	Data    *types.PlanSummary `json:"data"`
	Error   string             `json:"error"`
}

func (g *HTTPGenerator) Generate(ctx context.Context, genReq *types.GenerationRequest) (*types.PlanSummary, error) {
	jsonData, err := json.Marshal(genReq)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.url, bytes.NewReader(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if g.apiKey != "" {
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", g.apiKey))
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var env generatorEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("generator returned status %d with undecodable body: %w", resp.StatusCode, err)
	}
	if !env.Success {
		msg := env.Error
		if msg == "" {
			msg = fmt.Sprintf("generator returned status %d", resp.StatusCode)
		}
		return nil, &GeneratorError{Message: msg}
	}
	if env.Data == nil {
		return nil, fmt.Errorf("generator returned no plan summary")
	}
	return env.Data, nil
}
