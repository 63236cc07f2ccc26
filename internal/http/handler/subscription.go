package handler

import (
	"github.com/gofiber/fiber/v2"

	"orion/internal/service"
)

type subscribeRequest struct {
	TopicID int64 `json:"topicId" validate:"required,gt=0"`
}

func Subscribe(svc service.SubscriptionService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		uid, err := currentUserID(c)
		if err != nil {
			return err
		}
		var req subscribeRequest
		if ok, err := bindJSON(c, &req); !ok {
			return err
		}
		sub, err := svc.Subscribe(c.UserContext(), uid, req.TopicID)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(sub)
	}
}

func ListMySubscriptions(svc service.SubscriptionService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		uid, err := currentUserID(c)
		if err != nil {
			return err
		}
		subs, err := svc.ListMine(c.UserContext(), uid)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(subs)
	}
}

// Unsubscribe deletes a subscription. Only its owner may do so.
func Unsubscribe(svc service.SubscriptionService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		uid, err := currentUserID(c)
		if err != nil {
			return err
		}
		id, ok := paramID(c, "id")
		if !ok {
			return writeInvalidID(c)
		}
		if err := svc.Unsubscribe(c.UserContext(), id, uid); err != nil {
			return writeServiceError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
