package response

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/catalog-favorites/internal/domain/apperr"
)

type APIResponse[T any] struct {
	Status    int         `json:"status"`
	Timestamp time.Time   `json:"timestamp"`
	RequestID string      `json:"request_id"`
	Success   bool        `json:"success"`
	Message   string      `json:"message"`
	Data      T           `json:"data,omitempty"`
	Meta      interface{} `json:"meta,omitempty"`
	Error     interface{} `json:"error,omitempty"`
}

// ErrorBody is the error member of a failed response.
type ErrorBody struct {
	Code    string            `json:"code"`
	Details map[string]string `json:"details,omitempty"`
}

// Success writes a successful envelope. A zero status means 200.
func Success[T any](ctx *gin.Context, status int, data T, message string, meta interface{}) {
	if status == 0 {
		status = http.StatusOK
	}
	ctx.JSON(status, APIResponse[T]{
		Status:    status,
		Timestamp: time.Now().UTC(),
		RequestID: ctx.GetString("request_id"),
		Success:   true,
		Message:   message,
		Data:      data,
		Meta:      meta,
	})
}

// Error writes a failed envelope and aborts the chain. A zero status means 400.
func Error(ctx *gin.Context, status int, message string, err interface{}) {
	if status == 0 {
		status = http.StatusBadRequest
	}
	ctx.AbortWithStatusJSON(status, APIResponse[any]{
		Status:    status,
		Timestamp: time.Now().UTC(),
		RequestID: ctx.GetString("request_id"),
		Success:   false,
		Message:   message,
		Error:     err,
	})
}

// StatusOf maps an error to its HTTP status by apperr kind.
func StatusOf(err error) int {
	switch apperr.KindOf(err) {
	case apperr.KindNotFound:
		return http.StatusNotFound
	case apperr.KindConflict:
		return http.StatusConflict
	case apperr.KindInvalidRequest:
		return http.StatusBadRequest
	case apperr.KindUnauthorized:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// FromError writes err using its apperr kind. Errors without a kind are
// logged and reported as a generic 500 without leaking their text.
func FromError(ctx *gin.Context, logger *logrus.Logger, err error) {
	status := StatusOf(err)
	var ae *apperr.Error
	if status == http.StatusInternalServerError || !errors.As(err, &ae) {
		if logger != nil {
			logger.WithError(err).
				WithField("request_id", ctx.GetString("request_id")).
				WithField("path", ctx.FullPath()).
				Error("request failed")
		}
		Error(ctx, http.StatusInternalServerError, "Internal server error", ErrorBody{Code: "internal"})
		return
	}
	Error(ctx, status, ae.Message, ErrorBody{Code: ae.Kind.String()})
}
