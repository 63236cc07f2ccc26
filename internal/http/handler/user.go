package handler

import (
	"github.com/gofiber/fiber/v2"

	"orion/internal/http/middleware"
	"orion/internal/service"
)

func ListUsers(svc service.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		users, err := svc.List(c.UserContext())
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(users)
	}
}

func GetUser(svc service.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := paramID(c, "id")
		if !ok {
			return writeInvalidID(c)
		}
		u, err := svc.Get(c.UserContext(), id)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(u)
	}
}

// DeleteMe removes the caller's account and everything it owns.
func DeleteMe(svc service.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		uid, err := currentUserID(c)
		if err != nil {
			return err
		}
		claims := middleware.ClaimsFromCtx(c)
		if claims == nil || claims.ExpiresAt == nil {
			return fiber.NewError(fiber.StatusUnauthorized, "authentication required")
		}
		if err := svc.DeleteSelf(c.UserContext(), uid, claims.ID, claims.ExpiresAt.Time); err != nil {
			return writeServiceError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// UploadAvatar accepts multipart/form-data with the image in field "file".
func UploadAvatar(svc service.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		uid, err := currentUserID(c)
		if err != nil {
			return err
		}

		fh, err := c.FormFile("file")
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_REQUIRED", "file is required")
		}
		if fh.Size > service.MaxAvatarSize {
			return writeError(c, fiber.StatusRequestEntityTooLarge, "PAYLOAD_TOO_LARGE", "avatar exceeds 2 MiB")
		}

		f, err := fh.Open()
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_OPEN_ERROR", "cannot open uploaded file")
		}
		defer f.Close()

		u, err := svc.UploadAvatar(c.UserContext(), uid, f, fh.Header.Get(fiber.HeaderContentType), fh.Size)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(u)
	}
}

// GetAvatar redirects to a short-lived presigned URL of the user's avatar.
func GetAvatar(svc service.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := paramID(c, "id")
		if !ok {
			return writeInvalidID(c)
		}
		url, err := svc.AvatarURL(c.UserContext(), id)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Redirect(url, fiber.StatusFound)
	}
}
