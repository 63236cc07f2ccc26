package service

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var (
	ErrValidation           = errors.New("validation failed")
	ErrInvalidCredentials   = errors.New("invalid identifier or password")
	ErrInvalidRefreshToken  = errors.New("invalid refresh token")
	ErrRefreshTokenExpired  = errors.New("refresh token expired")
	ErrEmailTaken           = errors.New("email already in use")
	ErrUsernameTaken        = errors.New("username already in use")
	ErrAccountExists        = errors.New("account already exists")
	ErrUserNotFound         = errors.New("user not found")
	ErrTopicNotFound        = errors.New("topic not found")
	ErrTopicExists          = errors.New("topic already exists")
	ErrPostNotFound         = errors.New("post not found")
	ErrCommentNotFound      = errors.New("comment not found")
	ErrSubscriptionNotFound = errors.New("subscription not found")
	ErrAlreadySubscribed    = errors.New("already subscribed to this topic")
	ErrForbidden            = errors.New("not allowed to modify this resource")
	ErrInvalidSort          = errors.New("invalid sort parameters")
	ErrStorageUnavailable   = errors.New("object storage is not configured")
	ErrAvatarNotFound       = errors.New("avatar not found")
)

var tracer = otel.Tracer("orion/internal/service")

func startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return tracer.Start(ctx, name, trace.WithSpanKind(trace.SpanKindInternal))
}

// endSpan records err on span, if any, and ends it.
func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
