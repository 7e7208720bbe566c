package response

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/dealexpress/dealexpress-api/pkg/apperror"
)

// InternalErrorMessage is the only text a caller sees for unexpected failures.
const InternalErrorMessage = "Something went wrong!"

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

// Success renders a successful envelope and returns it.
func Success[T any](ctx *gin.Context, status int, data T, message string, meta interface{}) APIResponse[T] {
	if status == 0 {
		status = http.StatusOK
	}
	resp := APIResponse[T]{
		Status:    status,
		Timestamp: time.Now(),
		RequestID: ctx.GetString("request_id"),
		Success:   true,
		Message:   message,
		Data:      data,
		Meta:      meta,
	}
	ctx.JSON(status, resp)
	return resp
}

// Error renders a failure envelope, aborts the handler chain and returns it.
func Error[T any](ctx *gin.Context, status int, message string, err interface{}) APIResponse[T] {
	if status == 0 {
		status = http.StatusBadRequest
	}
	if err == nil {
		err = message
	}
	resp := APIResponse[T]{
		Status:    status,
		Timestamp: time.Now(),
		RequestID: ctx.GetString("request_id"),
		Success:   false,
		Message:   message,
		Error:     err,
	}
	ctx.AbortWithStatusJSON(status, resp)
	return resp
}

// Fail maps err onto the envelope. Business errors keep their kind's status
// and message; anything else is logged and reported as an opaque 500.
func Fail(ctx *gin.Context, logger *logrus.Logger, err error) {
	if ae, ok := apperror.As(err); ok && ae.Kind != apperror.KindInternal {
		var detail interface{}
		if ae.Details != nil {
			detail = ae.Details
		}
		Error[any](ctx, ae.Status(), ae.Message, detail)
		return
	}
	if logger != nil {
		logger.WithError(err).WithFields(logrus.Fields{
			"request_id": ctx.GetString("request_id"),
			"method":     ctx.Request.Method,
			"path":       ctx.Request.URL.Path,
		}).Error("unhandled error")
	}
	Error[any](ctx, http.StatusInternalServerError, InternalErrorMessage, InternalErrorMessage)
}
