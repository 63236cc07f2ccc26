package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"orion/internal/http/middleware"
	"orion/internal/service"
)

// errorPayload is the body of every non-2xx response.
type errorPayload struct {
	RequestID string        `json:"request_id"`
	Error     errorEnvelope `json:"error"`
}

type errorEnvelope struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// writeError renders errorPayload. message is shown to clients as is.
func writeError(c *fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(errorPayload{
		RequestID: middleware.RequestIDFromCtx(c),
		Error: errorEnvelope{
			Code:    code,
			Message: message,
		},
	})
}

type errorMapping struct {
	err    error
	status int
	code   string
}

var serviceErrors = []errorMapping{
	{service.ErrValidation, fiber.StatusBadRequest, "VALIDATION_ERROR"},
	{service.ErrInvalidSort, fiber.StatusBadRequest, "INVALID_SORT"},
	{service.ErrInvalidCredentials, fiber.StatusUnauthorized, "INVALID_CREDENTIALS"},
	{service.ErrInvalidRefreshToken, fiber.StatusUnauthorized, "INVALID_REFRESH_TOKEN"},
	{service.ErrRefreshTokenExpired, fiber.StatusUnauthorized, "REFRESH_TOKEN_EXPIRED"},
	{service.ErrForbidden, fiber.StatusForbidden, "FORBIDDEN"},
	{service.ErrUserNotFound, fiber.StatusNotFound, "USER_NOT_FOUND"},
	{service.ErrTopicNotFound, fiber.StatusNotFound, "TOPIC_NOT_FOUND"},
	{service.ErrPostNotFound, fiber.StatusNotFound, "POST_NOT_FOUND"},
	{service.ErrCommentNotFound, fiber.StatusNotFound, "COMMENT_NOT_FOUND"},
	{service.ErrSubscriptionNotFound, fiber.StatusNotFound, "SUBSCRIPTION_NOT_FOUND"},
	{service.ErrAvatarNotFound, fiber.StatusNotFound, "AVATAR_NOT_FOUND"},
	{service.ErrEmailTaken, fiber.StatusConflict, "EMAIL_TAKEN"},
	{service.ErrUsernameTaken, fiber.StatusConflict, "USERNAME_TAKEN"},
	{service.ErrAccountExists, fiber.StatusConflict, "ACCOUNT_EXISTS"},
	{service.ErrTopicExists, fiber.StatusConflict, "TOPIC_EXISTS"},
	{service.ErrAlreadySubscribed, fiber.StatusConflict, "ALREADY_SUBSCRIBED"},
	{service.ErrStorageUnavailable, fiber.StatusServiceUnavailable, "STORAGE_UNAVAILABLE"},
}

// writeServiceError translates a service error into the matching HTTP response.
// Unknown errors become 500 and are handed to the request logger.
func writeServiceError(c *fiber.Ctx, err error) error {
	for _, m := range serviceErrors {
		if errors.Is(err, m.err) {
			return writeError(c, m.status, m.code, err.Error())
		}
	}
	c.Locals(middleware.ErrorLocalKey, err)
	return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
}

type routerError struct {
	code    string
	message string
}

// routerErrors covers errors raised by fiber itself or returned as *fiber.Error by
// middleware. An empty message means the original fiber message is kept.
var routerErrors = map[int]routerError{
	fiber.StatusBadRequest:            {"BAD_REQUEST", "bad request"},
	fiber.StatusUnauthorized:          {"UNAUTHORIZED", ""},
	fiber.StatusForbidden:             {"FORBIDDEN", "forbidden"},
	fiber.StatusNotFound:              {"NOT_FOUND", "resource not found"},
	fiber.StatusMethodNotAllowed:      {"METHOD_NOT_ALLOWED", "method not allowed"},
	fiber.StatusRequestEntityTooLarge: {"PAYLOAD_TOO_LARGE", "request body too large"},
	fiber.StatusServiceUnavailable:    {"SERVICE_UNAVAILABLE", "dependency unavailable"},
}

// ErrorHandler is the fiber global error handler. Anything it does not recognise is
// logged through the request logger and answered with a generic 500.
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			if re, ok := routerErrors[fe.Code]; ok {
				msg := re.message
				if msg == "" {
					msg = fe.Message
				}
				return writeError(c, fe.Code, re.code, msg)
			}
		}
		c.Locals(middleware.ErrorLocalKey, err)
		return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
	}
}
