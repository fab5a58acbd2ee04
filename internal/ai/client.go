package ai

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	logx "github.com/stylemart/shopbot-backend/pkg/logger"
)

// Config holds LLM provider settings, loaded from the environment.
type Config struct {
	APIKey  string `envconfig:"GEMINI_API_KEY"`
	BaseURL string `envconfig:"GEMINI_BASE_URL"`
	Model   string `envconfig:"GEMINI_MODEL" default:"gemini-2.0-flash"`
}

// Generator produces text from a system prompt and a user message. Agents
// depend on this interface so tests can substitute a stub.
type Generator interface {
	Generate(ctx context.Context, systemPrompt, userMessage string, temperature float32, maxTokens int32) (string, error)
}

// Client is the Gemini-backed Generator.
type Client struct {
	client *genai.Client
	model  string
}

// NewClient creates a Gemini client from config.
func NewClient(ctx context.Context, cfg Config) (*Client, error) {
	clientCfg := &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if cfg.BaseURL != "" {
		clientCfg.HTTPOptions.BaseURL = cfg.BaseURL
	}

	client, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		logx.Error().Err(err).Msg("error creating Gemini client")
		return nil, fmt.Errorf("error creating Gemini client: %w", err)
	}

	return &Client{client: client, model: cfg.Model}, nil
}

// Generate runs one completion. The call blocks with no timeout of its own;
// callers wanting a deadline pass it through ctx.
func (c *Client) Generate(ctx context.Context, systemPrompt, userMessage string, temperature float32, maxTokens int32) (string, error) {
	resp, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(userMessage), &genai.GenerateContentConfig{
		Temperature:       genai.Ptr(temperature),
		MaxOutputTokens:   maxTokens,
		SystemInstruction: genai.NewContentFromText(systemPrompt, genai.RoleUser),
	})
	if err != nil {
		logx.Error().Err(err).Str("model", c.model).Msg("generate call failed")
		return "", err
	}
	return resp.Text(), nil
}

// Unavailable returns a Generator whose every call fails with cause. Used
// when the real client cannot be constructed, so agents exercise their
// degradation paths instead of the process refusing to start.
func Unavailable(cause error) Generator {
	return unavailable{cause: cause}
}

type unavailable struct {
	cause error
}

func (u unavailable) Generate(context.Context, string, string, float32, int32) (string, error) {
	return "", fmt.Errorf("generator unavailable: %w", u.cause)
}
