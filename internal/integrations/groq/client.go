package groq

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"coach-chat/internal/domain"
)

const (
	DefaultBaseURL = "https://api.groq.com/openai/v1"
	defaultTimeout = 30 * time.Second
)

// tokenPayload is the expected JSON shape stored in SSM for the API token.
type tokenPayload struct {
	Token string `json:"token"`
}

type Getter interface {
	GetParameter(ctx context.Context, name string) (string, error)
}

// StatusError captures non-2xx upstream responses.
type StatusError struct {
	StatusCode int
	Err        error
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("groq: unexpected status %d: %v", e.StatusCode, e.Err)
}

func (e *StatusError) Unwrap() error {
	return e.Err
}

func (e *StatusError) HTTPStatusCode() int {
	return e.StatusCode
}

// Client calls an OpenAI-compatible chat completions endpoint. Groq is the
// default upstream.
type Client struct {
	baseURL     string
	httpClient  *http.Client
	apiKey      string
	getter      Getter
	paramPrefix string

	mu  sync.Mutex
	api *openai.Client
}

type Option func(*Client)

func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimSpace(baseURL)
	}
}

func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithAPIKey sets a static key and skips the parameter store.
func WithAPIKey(key string) Option {
	return func(c *Client) {
		c.apiKey = strings.TrimSpace(key)
	}
}

// WithParamStore reads the key from <paramPrefix>/groq-api-token on first use.
func WithParamStore(getter Getter, paramPrefix string) Option {
	return func(c *Client) {
		c.getter = getter
		c.paramPrefix = strings.TrimRight(strings.TrimSpace(paramPrefix), "/")
	}
}

func NewClient(opts ...Option) (*Client, error) {
	c := &Client{
		baseURL:    DefaultBaseURL,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.apiKey == "" {
		if c.getter == nil {
			return nil, errors.New("groq: api key or paramstore getter must be set")
		}
		if c.paramPrefix == "" {
			return nil, errors.New("groq: parameter prefix must not be empty")
		}
	}
	return c, nil
}

func (c *Client) tokenParameterName() string {
	return c.paramPrefix + "/groq-api-token"
}

// resolveAPI builds the underlying SDK client on first success. A failed key
// lookup is not cached, so the next call fetches again.
func (c *Client) resolveAPI(ctx context.Context) (*openai.Client, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.api != nil {
		return c.api, nil
	}

	key := c.apiKey
	if key == "" {
		var err error
		key, err = fetchAPIKeyFromParamStore(ctx, c.getter, c.tokenParameterName())
		if err != nil {
			return nil, err
		}
	}
	cfg := openai.DefaultConfig(key)
	cfg.BaseURL = normalizeBaseURL(c.baseURL)
	cfg.HTTPClient = c.resolvedHTTPClient()
	c.api = openai.NewClientWithConfig(cfg)
	return c.api, nil
}

func (c *Client) resolvedHTTPClient() *http.Client {
	if c.httpClient != nil {
		return c.httpClient
	}
	return &http.Client{Timeout: defaultTimeout}
}

func normalizeBaseURL(baseURL string) string {
	base := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if base == "" {
		return DefaultBaseURL
	}
	return base
}

// Complete sends one non-streaming request and returns the first choice's
// content. A reply without usable content wraps domain.ErrEmptyCompletion.
func (c *Client) Complete(ctx context.Context, turns []domain.ChatTurn, params domain.GenerationParams) (string, error) {
	if params.Model == "" {
		return "", errors.New("groq: model must not be empty")
	}

	api, err := c.resolveAPI(ctx)
	if err != nil {
		return "", err
	}

	messages := make([]openai.ChatCompletionMessage, 0, len(turns))
	for _, t := range turns {
		messages = append(messages, openai.ChatCompletionMessage{Role: t.Role, Content: t.Content})
	}

	resp, err := api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       params.Model,
		Messages:    messages,
		Temperature: params.Temperature,
		MaxTokens:   params.MaxTokens,
		TopP:        params.TopP,
		Stream:      false,
	})
	if err != nil {
		return "", fmt.Errorf("groq: request failed: %w", asStatusError(err))
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("groq: no choices in response: %w", domain.ErrEmptyCompletion)
	}
	content := resp.Choices[0].Message.Content
	if strings.TrimSpace(content) == "" {
		return "", fmt.Errorf("groq: empty completion content: %w", domain.ErrEmptyCompletion)
	}
	return content, nil
}

func asStatusError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) && apiErr.HTTPStatusCode != 0 {
		return &StatusError{StatusCode: apiErr.HTTPStatusCode, Err: err}
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) && reqErr.HTTPStatusCode != 0 {
		return &StatusError{StatusCode: reqErr.HTTPStatusCode, Err: err}
	}
	return err
}

func fetchAPIKeyFromParamStore(ctx context.Context, getter Getter, name string) (string, error) {
	if getter == nil {
		return "", errors.New("groq: paramstore getter is nil")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return "", errors.New("groq: token parameter name is empty")
	}

	raw, err := getter.GetParameter(ctx, name)
	if err != nil {
		return "", fmt.Errorf("groq: fetch token from paramstore: %w", err)
	}
	var tp tokenPayload
	if err := json.Unmarshal([]byte(raw), &tp); err != nil {
		return "", fmt.Errorf("groq: unmarshal paramstore token value as JSON: %w", err)
	}
	if tp.Token == "" {
		return "", fmt.Errorf("groq: API token is empty")
	}
	return tp.Token, nil
}
