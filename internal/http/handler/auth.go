package handler

import (
	"github.com/gofiber/fiber/v2"

	"orion/internal/http/middleware"
	"orion/internal/service"
)

type registerRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

// loginRequest accepts the identifier under any of three names.
type loginRequest struct {
	Identifier string `json:"identifier"`
	Email      string `json:"email"`
	Username   string `json:"username"`
	Password   string `json:"password" validate:"required"`
}

func (r loginRequest) identifier() string {
	switch {
	case r.Identifier != "":
		return r.Identifier
	case r.Email != "":
		return r.Email
	default:
		return r.Username
	}
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

type updateProfileRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	Username        string `json:"username" validate:"omitempty,min=3,max=50"`
	Email           string `json:"email" validate:"omitempty,email,max=255"`
	NewPassword     string `json:"newPassword" validate:"omitempty,min=6,max=72"`
}

// currentUserID returns the authenticated user id. Routes using it sit behind RequireAuth.
func currentUserID(c *fiber.Ctx) (int64, error) {
	id, ok := middleware.UserIDFromCtx(c)
	if !ok {
		return 0, fiber.NewError(fiber.StatusUnauthorized, "authentication required")
	}
	return id, nil
}

// Register godoc
// @Summary Create an account
// @Tags auth
// @Accept json
// @Produce json
// @Param body body registerRequest true "account"
// @Success 201 {object} model.User
// @Failure 400,409 {object} errorPayload
// @Router /api/auth/register [post]
func Register(svc service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req registerRequest
		if ok, err := bindJSON(c, &req); !ok {
			return err
		}
		u, err := svc.Register(c.UserContext(), service.RegisterInput{
			Username: req.Username,
			Email:    req.Email,
			Password: req.Password,
		})
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(u)
	}
}

// Login godoc
// @Summary Exchange credentials for a token pair
// @Tags auth
// @Accept json
// @Produce json
// @Param body body loginRequest true "credentials"
// @Success 200 {object} service.Session
// @Failure 400,401 {object} errorPayload
// @Router /api/auth/login [post]
func Login(svc service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req loginRequest
		if ok, err := bindJSON(c, &req); !ok {
			return err
		}
		if req.identifier() == "" {
			return writeError(c, fiber.StatusBadRequest, "VALIDATION_ERROR", "identifier is required")
		}
		sess, err := svc.Login(c.UserContext(), service.LoginInput{
			Identifier: req.identifier(),
			Password:   req.Password,
		})
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(sess)
	}
}

// Refresh godoc
// @Summary Rotate a refresh token
// @Tags auth
// @Accept json
// @Produce json
// @Param body body refreshRequest true "refresh token"
// @Success 200 {object} service.Session
// @Failure 400,401 {object} errorPayload
// @Router /api/auth/refresh [post]
func Refresh(svc service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req refreshRequest
		if ok, err := bindJSON(c, &req); !ok {
			return err
		}
		sess, err := svc.Refresh(c.UserContext(), req.RefreshToken)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(sess)
	}
}

// Logout godoc
// @Summary Revoke the current session
// @Tags auth
// @Security BearerAuth
// @Success 204
// @Router /api/auth/logout [post]
func Logout(svc service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		uid, err := currentUserID(c)
		if err != nil {
			return err
		}
		claims := middleware.ClaimsFromCtx(c)
		if claims == nil || claims.ExpiresAt == nil {
			return fiber.NewError(fiber.StatusUnauthorized, "authentication required")
		}
		if err := svc.Logout(c.UserContext(), uid, claims.ID, claims.ExpiresAt.Time); err != nil {
			return writeServiceError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// Me godoc
// @Summary Current user
// @Tags auth
// @Security BearerAuth
// @Produce json
// @Success 200 {object} model.User
// @Router /api/auth/me [get]
func Me(svc service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		uid, err := currentUserID(c)
		if err != nil {
			return err
		}
		u, err := svc.Me(c.UserContext(), uid)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(u)
	}
}

// UpdateMe godoc
// @Summary Update username, email or password
// @Tags auth
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param body body updateProfileRequest true "changes"
// @Success 200 {object} service.ProfileUpdate
// @Failure 400,401,409 {object} errorPayload
// @Router /api/auth/me [patch]
func UpdateMe(svc service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		uid, err := currentUserID(c)
		if err != nil {
			return err
		}
		var req updateProfileRequest
		if ok, err := bindJSON(c, &req); !ok {
			return err
		}
		res, err := svc.UpdateProfile(c.UserContext(), uid, service.UpdateProfileInput{
			CurrentPassword: req.CurrentPassword,
			Username:        req.Username,
			Email:           req.Email,
			NewPassword:     req.NewPassword,
		})
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(res)
	}
}
