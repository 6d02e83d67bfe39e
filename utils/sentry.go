package utils

import (
	"context"
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/getsentry/sentry-go"

	"github.com/checkmarble/challenge-backend/models"
)

// LogAndReportSentryError logs the error with its stack trace and reports it to Sentry. Rejected
// imports are caused by the uploaded file, not by the service, so they are logged but not reported.
func LogAndReportSentryError(ctx context.Context, err error) {
	logger := LoggerFromContext(ctx)

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		logger.DebugContext(ctx, fmt.Sprintf("Deadline exceeded or context canceled: %v", err))
		return
	}
	if errors.Is(err, models.BadParameterError) {
		logger.WarnContext(ctx, err.Error())
		return
	}

	logger.ErrorContext(ctx, fmt.Sprintf("%+v", err))
	if hub := sentry.GetHubFromContext(ctx); hub != nil {
		hub.CaptureException(err)
	} else {
		sentry.CaptureException(err)
	}
}
