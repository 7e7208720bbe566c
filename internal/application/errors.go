package application

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/dealexpress/dealexpress-api/internal/domain/repository"
	"github.com/dealexpress/dealexpress-api/pkg/apperror"
	"github.com/dealexpress/dealexpress-api/pkg/validation"
)

// notFound turns repository.ErrNotFound into a 404 with msg; other errors pass through.
func notFound(err error, msg string) error {
	if errors.Is(err, repository.ErrNotFound) {
		return apperror.NotFound(msg).Wrap(err)
	}
	return err
}

// invalid wraps entity validation failures with per-field details.
func invalid(err error, msg string) error {
	if err == nil {
		return nil
	}
	return apperror.Validation(msg).WithDetails(validation.ToDetails(err)).Wrap(err)
}

// publish sends an event without failing the caller; delivery problems are logged.
func publish(ctx context.Context, pub EventPublisher, logger *logrus.Logger, event string, payload any) {
	if pub == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 2*time.Second)
	defer cancel()
	if err := pub.Publish(ctx, event, payload); err != nil && logger != nil {
		logger.WithError(err).WithField("event", event).Warn("event publish failed")
	}
}
