package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"coach-chat/internal/domain"
)

const (
	DefaultModel       = "llama-3.1-70b-versatile"
	DefaultMaxHistory  = 10
	DefaultTimeout     = 30 * time.Second
	defaultTemperature = 0.7
	defaultMaxTokens   = 1000
	defaultTopP        = 1.0
)

// CompletionClient produces one completion for an ordered turn sequence.
type CompletionClient interface {
	Complete(ctx context.Context, turns []domain.ChatTurn, params domain.GenerationParams) (string, error)
}

type httpStatusCoder interface {
	HTTPStatusCode() int
}

type Options struct {
	Model      string
	MaxHistory int
	Timeout    time.Duration
}

type CoachService struct {
	llm        CompletionClient
	classifier Classifier
	params     domain.GenerationParams
	maxHistory int
	timeout    time.Duration
	now        func() time.Time
}

type ChatInput struct {
	Message string
	History []domain.HistoryEntry
}

func NewCoachService(llm CompletionClient, classifier Classifier, opts Options) (*CoachService, error) {
	if llm == nil {
		return nil, errors.New("usecase: completion client must not be nil")
	}
	if classifier == nil {
		return nil, errors.New("usecase: classifier must not be nil")
	}
	model := strings.TrimSpace(opts.Model)
	if model == "" {
		model = DefaultModel
	}
	if opts.MaxHistory <= 0 {
		opts.MaxHistory = DefaultMaxHistory
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	return &CoachService{
		llm:        llm,
		classifier: classifier,
		params: domain.GenerationParams{
			Model:       model,
			Temperature: defaultTemperature,
			MaxTokens:   defaultMaxTokens,
			TopP:        defaultTopP,
		},
		maxHistory: opts.MaxHistory,
		timeout:    opts.Timeout,
		now:        time.Now,
	}, nil
}

func (s *CoachService) Chat(ctx context.Context, in ChatInput) (domain.Envelope, error) {
	turns, err := buildPromptMessages(in.Message, boundHistory(in.History, s.maxHistory))
	if err != nil {
		return domain.Envelope{}, err
	}

	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	text, err := s.llm.Complete(callCtx, turns, s.params)
	if errors.Is(err, domain.ErrEmptyCompletion) {
		return domain.Envelope{}, newError(ErrorCompletionFailed, "empty_completion", err)
	}
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(callCtx.Err(), context.DeadlineExceeded) {
			return domain.Envelope{}, newError(ErrorCompletionFailed, "completion_timeout", err)
		}
		return domain.Envelope{}, newError(ErrorCompletionFailed, "completion_error", err)
	}
	if strings.TrimSpace(text) == "" {
		return domain.Envelope{}, newError(ErrorCompletionFailed, "empty_completion", nil)
	}

	return domain.Envelope{
		Content:   text,
		Category:  s.classifier.Classify(text),
		Timestamp: s.now().UTC().Format(domain.TimestampLayout),
	}, nil
}

// Retryable reports whether a completion failure looks transient: a timeout,
// a transport error without a status, a 429 or a 5xx. Nothing retries on it;
// it is surfaced in logs only.
func Retryable(err error) bool {
	if err == nil {
		return false
	}
	var ue *Error
	if errors.As(err, &ue) && (ue.Code != ErrorCompletionFailed || ue.Reason == "empty_completion") {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	status, ok := UpstreamStatusCode(err)
	if !ok {
		return true
	}
	return status == 429 || status >= 500
}

// UpstreamStatusCode returns the HTTP status carried by err, if any.
func UpstreamStatusCode(err error) (int, bool) {
	var statusErr httpStatusCoder
	if !errors.As(err, &statusErr) {
		return 0, false
	}
	return statusErr.HTTPStatusCode(), true
}
