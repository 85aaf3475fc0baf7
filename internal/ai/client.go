package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/time/rate"
	"google.golang.org/genai"
)

var ErrEmptyResponse = errors.New("ai: model returned an empty response")

type Role string

const (
	RoleUser  Role = "user"
	RoleModel Role = "model"
)

// Turn is one message of prior conversation sent as context.
type Turn struct {
	Role Role
	Text string
}

type GenerateRequest struct {
	System  string
	History []Turn
	Prompt  string
	// JSON asks the model for a raw JSON response.
	JSON        bool
	Temperature float32
}

// Generator produces a single text completion.
type Generator interface {
	Generate(ctx context.Context, req GenerateRequest) (string, error)
}

// contentGenerator is the part of genai.Models the client uses.
type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Client calls Gemini through the google genai SDK.
type Client struct {
	models  contentGenerator
	model   string
	timeout time.Duration
	// limiter paces outbound calls to the provider's per-minute quota. Nil means unlimited.
	limiter *rate.Limiter
}

var _ Generator = (*Client)(nil)

// NewClient paces requests to requestsPerMinute across all users. Zero disables pacing.
func NewClient(ctx context.Context, apiKey, model string, timeout time.Duration, requestsPerMinute int) (*Client, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("ai.NewClient: create genai client: %w", err)
	}
	c := newClient(client.Models, model, timeout)
	if requestsPerMinute > 0 {
		c.limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(requestsPerMinute)), 1)
	}
	return c, nil
}

func newClient(models contentGenerator, model string, timeout time.Duration) *Client {
	return &Client{models: models, model: model, timeout: timeout}
}

func (c *Client) Generate(ctx context.Context, req GenerateRequest) (string, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return "", fmt.Errorf("ai.Generate: wait for quota: %w", err)
		}
	}

	contents := make([]*genai.Content, 0, len(req.History)+1)
	for _, turn := range req.History {
		var role genai.Role = genai.RoleUser
		if turn.Role == RoleModel {
			role = genai.RoleModel
		}
		contents = append(contents, genai.NewContentFromText(turn.Text, role))
	}
	contents = append(contents, genai.NewContentFromText(req.Prompt, genai.RoleUser))

	config := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(req.Temperature),
	}
	if req.System != "" {
		config.SystemInstruction = genai.NewContentFromText(req.System, genai.RoleUser)
	}
	if req.JSON {
		config.ResponseMIMEType = "application/json"
	}

	resp, err := c.models.GenerateContent(ctx, c.model, contents, config)
	if err != nil {
		return "", fmt.Errorf("ai.Generate: generate content: %w", err)
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}
