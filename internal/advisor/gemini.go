package advisor

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"google.golang.org/genai"
)

const (
	DefaultModel   = "gemini-2.5-flash"
	DefaultTimeout = 30 * time.Second
)

// GeminiClient generates text with the Gemini API. One request per call, no
// retries, no streaming.
type GeminiClient struct {
	client  *genai.Client
	model   string
	timeout time.Duration
	log     *logrus.Logger
}

type GeminiOption func(*GeminiClient)

func WithModel(model string) GeminiOption {
	return func(c *GeminiClient) {
		if model != "" {
			c.model = model
		}
	}
}

// WithTimeout bounds each GenerateContent call. Zero disables the bound.
func WithTimeout(d time.Duration) GeminiOption {
	return func(c *GeminiClient) {
		c.timeout = d
	}
}

func WithLogger(log *logrus.Logger) GeminiOption {
	return func(c *GeminiClient) {
		c.log = log
	}
}

func NewGeminiClient(ctx context.Context, apiKey string, opts ...GeminiOption) (*GeminiClient, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	c := &GeminiClient{
		client:  client,
		model:   DefaultModel,
		timeout: DefaultTimeout,
		log:     logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func (c *GeminiClient) GenerateContent(ctx context.Context, prompt string) (string, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}
	c.log.WithField("model", c.model).Debug("generating content")

	result, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}
	return textOf(result)
}

func textOf(result *genai.GenerateContentResponse) (string, error) {
	if result == nil || len(result.Candidates) == 0 || result.Candidates[0].Content == nil {
		return "", fmt.Errorf("no content generated")
	}
	var sb strings.Builder
	for _, part := range result.Candidates[0].Content.Parts {
		if part != nil && part.Text != "" {
			sb.WriteString(part.Text)
		}
	}
	return sb.String(), nil
}
