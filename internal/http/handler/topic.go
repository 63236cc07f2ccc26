package handler

import (
	"github.com/gofiber/fiber/v2"

	"orion/internal/service"
)

type createTopicRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description" validate:"max=500"`
}

func ListTopics(svc service.TopicService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		topics, err := svc.List(c.UserContext())
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(topics)
	}
}

func GetTopic(svc service.TopicService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := paramID(c, "id")
		if !ok {
			return writeInvalidID(c)
		}
		t, err := svc.Get(c.UserContext(), id)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(t)
	}
}

func CreateTopic(svc service.TopicService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req createTopicRequest
		if ok, err := bindJSON(c, &req); !ok {
			return err
		}
		t, err := svc.Create(c.UserContext(), req.Name, req.Description)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(t)
	}
}
