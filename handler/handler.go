package handler

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/aws/aws-lambda-go/events"
	"github.com/google/uuid"

	"coach-chat/internal/domain"
	"coach-chat/internal/usecase"
)

const (
	correlationHeader    = "X-Correlation-Id"
	msgMessageRequired   = "Message is required"
	msgInvalidBody       = "Invalid request body"
	msgCompletionFailure = "Failed to get AI response"
)

type ChatUseCase interface {
	Chat(ctx context.Context, in usecase.ChatInput) (domain.Envelope, error)
}

type chatRequest struct {
	Message             string                `json:"message"`
	ConversationHistory []domain.HistoryEntry `json:"conversationHistory"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type Handler struct {
	chat   ChatUseCase
	logger *slog.Logger
}

type Option func(*Handler)

func WithLogger(logger *slog.Logger) Option {
	return func(h *Handler) {
		if logger != nil {
			h.logger = logger
		}
	}
}

func NewHandler(chat ChatUseCase, opts ...Option) (*Handler, error) {
	if chat == nil {
		return nil, errors.New("handler: chat use case must not be nil")
	}
	h := &Handler{chat: chat, logger: slog.Default()}
	for _, opt := range opts {
		opt(h)
	}
	return h, nil
}

// Handle serves the API Gateway proxy event for POST /api/coach/chat.
func (h *Handler) Handle(ctx context.Context, event events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	correlationID := correlationIDFrom(event.Headers)
	logger := h.logger.With("correlation_id", correlationID)

	body, err := decodeBody(event)
	if err != nil {
		logger.Warn("invalid request body", "err", err)
		return jsonResponse(http.StatusBadRequest, correlationID, errorResponse{Error: msgInvalidBody}), nil
	}

	var req chatRequest
	if err := json.Unmarshal(body, &req); err != nil {
		logger.Warn("invalid request body", "err", err)
		return jsonResponse(http.StatusBadRequest, correlationID, errorResponse{Error: msgInvalidBody}), nil
	}

	out, err := h.chat.Chat(ctx, usecase.ChatInput{
		Message: req.Message,
		History: req.ConversationHistory,
	})
	if err != nil {
		status, msg := h.mapError(logger, err)
		return jsonResponse(status, correlationID, errorResponse{Error: msg}), nil
	}

	logger.Info("coach response", "category", out.Category, "history_len", len(req.ConversationHistory))
	return jsonResponse(http.StatusOK, correlationID, out), nil
}

func (h *Handler) mapError(logger *slog.Logger, err error) (int, string) {
	var ue *usecase.Error
	if errors.As(err, &ue) && ue.Code == usecase.ErrorInvalidRequest {
		logger.Warn("rejected chat request", "code", ue.Code, "reason", ue.Reason)
		return http.StatusBadRequest, msgMessageRequired
	}

	attrs := []any{"err", err, "retryable", usecase.Retryable(err)}
	if ue != nil {
		attrs = append(attrs, "code", ue.Code, "reason", ue.Reason)
	} else {
		attrs = append(attrs, "code", usecase.ErrorCompletionFailed)
	}
	if status, ok := usecase.UpstreamStatusCode(err); ok {
		attrs = append(attrs, "upstream_status", status)
	}
	logger.Error("chat completion failed", attrs...)
	return http.StatusInternalServerError, msgCompletionFailure
}

func decodeBody(event events.APIGatewayProxyRequest) ([]byte, error) {
	if !event.IsBase64Encoded {
		return []byte(event.Body), nil
	}
	return base64.StdEncoding.DecodeString(event.Body)
}

func correlationIDFrom(headers map[string]string) string {
	for k, v := range headers {
		if strings.EqualFold(k, correlationHeader) && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return newCorrelationID()
}

func jsonResponse(status int, correlationID string, payload any) events.APIGatewayProxyResponse {
	body, err := json.Marshal(payload)
	if err != nil {
		status = http.StatusInternalServerError
		body = []byte(`{"error":"` + msgCompletionFailure + `"}`)
	}
	return events.APIGatewayProxyResponse{
		StatusCode: status,
		Headers: map[string]string{
			"Content-Type":    "application/json",
			correlationHeader: correlationID,
		},
		Body: string(body),
	}
}

var newCorrelationID = func() string {
	return uuid.NewString()
}
