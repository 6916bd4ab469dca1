// Package openai provides an Extractor implementation on any OpenAI-compatible
// chat completions endpoint (OpenAI, Ollama's /v1, vLLM).
package openai

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/sashabaranov/go-openai"
	"github.com/sony/gobreaker"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/ersonp/theatre-core/internal/domain/entities"
	"github.com/ersonp/theatre-core/internal/domain/ports"
	"github.com/ersonp/theatre-core/internal/infrastructure/config"
)

var _ ports.Extractor = (*Client)(nil)

const systemPrompt = `You are a hospital scheduling assistant.
Your task is to extract structured data from user requests.
You MUST return valid JSON only.
Do not add explanations, comments, or extra text.`

const extractionPrompt = `
Extract the following fields from the request.
If a value is missing or not mentioned, return null.

Fields:
- surgeon_name
- patient_name
- operation_type
- theatre_name
- date
- start_time
- end_time

Request:
"""%s"""
`

// Failure messages carried in the payload's error field.
const (
	ErrMsgInvalidJSON       = "Invalid JSON returned by LLM"
	ErrMsgExtractionFailure = "Failed to extract scheduling data"
)

// Client implements ports.Extractor.
type Client struct {
	client  *openai.Client
	model   string
	timeout time.Duration
	breaker *gobreaker.CircuitBreaker
	limiter *rate.Limiter
	logger  *zap.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the logger for request and breaker events.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewClient creates a new extraction client. An API key is required unless a
// base URL points at a self-hosted endpoint.
func NewClient(cfg config.LLMConfig, opts ...Option) (*Client, error) {
	if cfg.APIKey == "" && cfg.BaseURL == "" {
		return nil, errors.WithHint(
			errors.New("OpenAI API key is required"),
			"set llm.api_key or OPENAI_API_KEY, or point OLLAMA_API_URL at a local server")
	}

	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	}

	model := "gpt-4o-mini"
	if cfg.Model != "" {
		model = cfg.Model
	}

	c := &Client{
		client:  openai.NewClientWithConfig(clientCfg),
		model:   model,
		timeout: cfg.Timeout,
		limiter: newLimiter(cfg.RequestsPerMinute),
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}

	maxFailures := cfg.MaxFailures
	if maxFailures == 0 {
		maxFailures = 3
	}
	c.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "extractor",
		MaxRequests: 1,
		Timeout:     cfg.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= maxFailures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			c.logger.Warn("extractor circuit state changed",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
	})

	return c, nil
}

// newLimiter returns an unlimited limiter for non-positive rates.
func newLimiter(perMinute int) *rate.Limiter {
	if perMinute <= 0 {
		return rate.NewLimiter(rate.Inf, 0)
	}
	return rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMinute)), perMinute)
}

// Extract turns free text into a scheduling payload. Collaborator failures are
// reported in the payload's error shape, never as a Go error.
func (c *Client) Extract(ctx context.Context, text string) (entities.Payload, error) {
	if strings.TrimSpace(text) == "" {
		return entities.Payload{}, errors.Mark(errors.New("request text is empty"), entities.ErrMalformedInput)
	}

	content, err := c.complete(ctx, text)
	if err != nil {
		c.logger.Warn("extraction failed", zap.Error(err))
		return entities.Payload{Error: ErrMsgExtractionFailure, Details: err.Error()}, nil
	}

	payload, err := entities.DecodePayload([]byte(cleanJSONResponse(content)))
	if err != nil {
		c.logger.Warn("extractor returned invalid JSON", zap.String("response", content))
		return entities.Payload{Error: ErrMsgInvalidJSON, RawResponse: content}, nil
	}

	c.logger.Debug("extracted payload",
		zap.String("surgeon", payload.SurgeonName),
		zap.String("theatre", payload.TheatreName),
		zap.String("operation", payload.OperationType),
	)
	return payload, nil
}

// complete runs one rate-limited, breaker-guarded chat completion.
func (c *Client) complete(ctx context.Context, text string) (string, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return "", errors.Wrap(err, "waiting for rate limiter")
	}

	result, err := c.breaker.Execute(func() (interface{}, error) {
		resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
			Model: c.model,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleSystem,
					Content: systemPrompt,
				},
				{
					Role:    openai.ChatMessageRoleUser,
					Content: fmt.Sprintf(extractionPrompt, text),
				},
			},
			Temperature: 0.1,
		})
		if err != nil {
			return nil, errors.Wrap(err, "calling chat completions")
		}
		if len(resp.Choices) == 0 {
			return nil, errors.New("no response from model")
		}
		return resp.Choices[0].Message.Content, nil
	})
	if err != nil {
		return "", err
	}
	return result.(string), nil
}

// BreakerState reports the circuit breaker state.
func (c *Client) BreakerState() gobreaker.State {
	return c.breaker.State()
}

// cleanJSONResponse removes markdown code blocks if present.
func cleanJSONResponse(content string) string {
	content = strings.TrimSpace(content)

	if strings.HasPrefix(content, "```json") {
		content = strings.TrimPrefix(content, "```json")
		content = strings.TrimSuffix(content, "```")
	} else if strings.HasPrefix(content, "```") {
		content = strings.TrimPrefix(content, "```")
		content = strings.TrimSuffix(content, "```")
	}

	return strings.TrimSpace(content)
}
