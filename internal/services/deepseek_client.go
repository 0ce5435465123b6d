package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	completionMaxTokens   = 1000
	completionTemperature = 0.8
)

type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ChatChoice struct {
	Message ChatMessage `json:"message"`
}

type ChatCompletionResponse struct {
	Choices []ChatChoice `json:"choices"`
}

type chatCompletionRequest struct {
	Model       string        `json:"model"`
	Messages    []ChatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
}

// CompletionClient is the provider collaborator the generator depends on.
type CompletionClient interface {
	Configured() bool
	CreateChatCompletion(ctx context.Context, prompt string) (*ChatCompletionResponse, error)
}

// DeepSeekClient talks to a DeepSeek-compatible chat-completion API.
// An empty API key means the client is unconfigured and the caller should
// not attempt provider calls.
type DeepSeekClient struct {
	baseURL    string
	apiKey     string
	model      string
	httpClient *http.Client
}

func NewDeepSeekClient(baseURL, apiKey, model string) *DeepSeekClient {
	return &DeepSeekClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		model:      model,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *DeepSeekClient) SetHTTPClient(hc *http.Client) {
	if hc != nil {
		c.httpClient = hc
	}
}

func (c *DeepSeekClient) Configured() bool {
	return c.apiKey != ""
}

// CreateChatCompletion sends a single user message and returns the decoded
// completion. Transport errors, non-2xx statuses and undecodable bodies all
// surface as errors for the caller to absorb.
func (c *DeepSeekClient) CreateChatCompletion(ctx context.Context, prompt string) (*ChatCompletionResponse, error) {
	payload := chatCompletionRequest{
		Model:       c.model,
		Messages:    []ChatMessage{{Role: "user", Content: prompt}},
		MaxTokens:   completionMaxTokens,
		Temperature: completionTemperature,
	}
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("chat completion failed: status=%d body=%s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var out ChatCompletionResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("decode chat completion: %w", err)
	}
	return &out, nil
}
