package errors

import (
	"errors"

	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var (
	ErrEmptyAuth        = errors.New("missing authorization")
	ErrEmptySubject     = errors.New("missing subject")
	ErrTokenInvalid     = errors.New("invalid token")
	ErrForbidden        = errors.New("admin role required")
	ErrUserBlocked      = errors.New("user is blocked")
	ErrUserNotFound     = errors.New("user not found")
	ErrEmailTaken       = errors.New("email already registered")
	ErrPasswordMismatch = errors.New("password mismatch")
	ErrCartItemNotFound = errors.New("cart item not found")
	ErrOrderNotFound    = errors.New("order not found")
	ErrPostNotFound     = errors.New("post not found")
	ErrBadTransition    = errors.New("order status transition not allowed")
	ErrDesignNameBlank  = errors.New("custom design name is blank")
	ErrDesignBadPrice   = errors.New("custom design price is missing or not positive")
	ErrDesignBadImage   = errors.New("custom design image is not an embedded image payload")
	ErrDesignImageSize  = errors.New("custom design image exceeds size ceiling")
)

func HandleError(err error, span trace.Span) {
	if err == nil {
		return
	}
	span.AddEvent(err.Error())
	span.SetStatus(codes.Error, err.Error())
	span.RecordError(err)
}
