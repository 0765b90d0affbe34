package semantic

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"golang.org/x/oauth2"

	"github.com/nao1215/trustguard/internal/model"
)

// Defaults for the chat completions request.
const (
	DefaultEndpoint    = "http://127.0.0.1:8000/v1/chat/completions"
	DefaultModel       = "nvidia/nvidia-nemotron-nano-9b-v2"
	DefaultMaxTokens   = 512
	DefaultTemperature = 0.1

	// maxResponseSize caps how much of a model response is read.
	maxResponseSize = 1 << 20
)

// ChatClient talks to an OpenAI-compatible chat completions endpoint.
// It implements Adapter for postings and company.Judge for websites.
type ChatClient struct {
	endpoint    string
	model       string
	maxTokens   int
	temperature float64
	apiKey      string
	httpClient  *http.Client
}

// ClientOption configures a ChatClient.
type ClientOption func(*ChatClient)

// WithModel sets the model identifier sent with every request.
func WithModel(name string) ClientOption {
	return func(c *ChatClient) {
		if name != "" {
			c.model = name
		}
	}
}

// WithAPIKey authenticates requests with a bearer token.
func WithAPIKey(key string) ClientOption {
	return func(c *ChatClient) {
		c.apiKey = key
	}
}

// WithHTTPClient sets the base HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *ChatClient) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithMaxTokens sets the completion token limit.
func WithMaxTokens(n int) ClientOption {
	return func(c *ChatClient) {
		if n > 0 {
			c.maxTokens = n
		}
	}
}

// WithTemperature sets the sampling temperature.
func WithTemperature(t float64) ClientOption {
	return func(c *ChatClient) {
		c.temperature = t
	}
}

// NewChatClient creates a client for the given endpoint URL.
func NewChatClient(endpoint string, opts ...ClientOption) *ChatClient {
	c := &ChatClient{
		endpoint:    endpoint,
		model:       DefaultModel,
		maxTokens:   DefaultMaxTokens,
		temperature: DefaultTemperature,
		httpClient:  &http.Client{},
	}
	if c.endpoint == "" {
		c.endpoint = DefaultEndpoint
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.apiKey != "" {
		ctx := context.WithValue(context.Background(), oauth2.HTTPClient, c.httpClient)
		src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: c.apiKey, TokenType: "Bearer"})
		c.httpClient = oauth2.NewClient(ctx, src)
	}
	return c
}

// Endpoint returns the configured endpoint URL.
func (c *ChatClient) Endpoint() string {
	return c.endpoint
}

// Evaluate implements Adapter.
func (c *ChatClient) Evaluate(ctx context.Context, text, userContext string) (model.SemanticFinding, error) {
	content, err := c.complete(ctx, postingPrompt(text, userContext))
	if err != nil {
		return model.SemanticFinding{}, err
	}
	return DecodeFinding(content)
}

// JudgeLegitimacy asks the model whether a company website looks legitimate.
func (c *ChatClient) JudgeLegitimacy(ctx context.Context, siteURL, content string) (model.LegitimacyJudgment, error) {
	out, err := c.complete(ctx, companyPrompt(siteURL, content))
	if err != nil {
		return model.LegitimacyJudgment{}, err
	}
	return DecodeJudgment(out)
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// complete sends a single user message and returns the reply text.
func (c *ChatClient) complete(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(chatRequest{
		Model:       c.model,
		Messages:    []chatMessage{{Role: "user", Content: prompt}},
		MaxTokens:   c.maxTokens,
		Temperature: c.temperature,
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("model request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("%w: %d", ErrUnexpectedStatus, resp.StatusCode)
	}

	var cr chatResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseSize)).Decode(&cr); err != nil {
		return "", fmt.Errorf("failed to decode model response: %w", err)
	}
	if len(cr.Choices) == 0 || strings.TrimSpace(cr.Choices[0].Message.Content) == "" {
		return "", ErrEmptyResponse
	}
	return cr.Choices[0].Message.Content, nil
}
