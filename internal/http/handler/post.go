package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"orion/internal/service"
)

const maxFeedLimit = 100

type postRequest struct {
	Title   string `json:"title" validate:"required,max=150"`
	Content string `json:"content" validate:"required"`
	TopicID int64  `json:"topicId" validate:"required,gt=0"`
}

func (r postRequest) input() service.PostInput {
	return service.PostInput{Title: r.Title, Content: r.Content, TopicID: r.TopicID}
}

func ListPosts(svc service.PostService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		posts, err := svc.List(c.UserContext())
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(posts)
	}
}

// Feed lists posts from the caller's subscribed topics using limit & offset.
func Feed(svc service.PostService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		uid, err := currentUserID(c)
		if err != nil {
			return err
		}

		limit, err := strconv.Atoi(c.Query("limit", "10"))
		if err != nil || limit > maxFeedLimit {
			return writeError(c, fiber.StatusBadRequest, "INVALID_LIMIT", "invalid limit")
		}
		offset, err := strconv.Atoi(c.Query("offset", "0"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_OFFSET", "invalid offset")
		}

		res, err := svc.Feed(c.UserContext(), uid, limit, offset)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(res)
	}
}

// ListPostsByAuthor honours ?sort=createdAt|title&order=asc|desc.
func ListPostsByAuthor(svc service.PostService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := paramID(c, "userId")
		if !ok {
			return writeInvalidID(c)
		}
		posts, err := svc.ListByAuthor(c.UserContext(), id, c.Query("sort"), c.Query("order"))
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(posts)
	}
}

func ListPostsByTopic(svc service.PostService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := paramID(c, "topicId")
		if !ok {
			return writeInvalidID(c)
		}
		posts, err := svc.ListByTopic(c.UserContext(), id, c.Query("sort"), c.Query("order"))
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(posts)
	}
}

func GetPost(svc service.PostService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := paramID(c, "id")
		if !ok {
			return writeInvalidID(c)
		}
		p, err := svc.Get(c.UserContext(), id)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(p)
	}
}

func CreatePost(svc service.PostService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		uid, err := currentUserID(c)
		if err != nil {
			return err
		}
		var req postRequest
		if ok, err := bindJSON(c, &req); !ok {
			return err
		}
		p, err := svc.Create(c.UserContext(), uid, req.input())
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(p)
	}
}

func UpdatePost(svc service.PostService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		uid, err := currentUserID(c)
		if err != nil {
			return err
		}
		id, ok := paramID(c, "id")
		if !ok {
			return writeInvalidID(c)
		}
		var req postRequest
		if ok, err := bindJSON(c, &req); !ok {
			return err
		}
		p, err := svc.Update(c.UserContext(), id, uid, req.input())
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(p)
	}
}

func DeletePost(svc service.PostService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		uid, err := currentUserID(c)
		if err != nil {
			return err
		}
		id, ok := paramID(c, "id")
		if !ok {
			return writeInvalidID(c)
		}
		if err := svc.Delete(c.UserContext(), id, uid); err != nil {
			return writeServiceError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
