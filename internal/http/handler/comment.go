package handler

import (
	"github.com/gofiber/fiber/v2"

	"orion/internal/service"
)

type createCommentRequest struct {
	PostID  int64  `json:"postId" validate:"required,gt=0"`
	Content string `json:"content" validate:"required,max=5000"`
}

type updateCommentRequest struct {
	Content string `json:"content" validate:"required,max=5000"`
}

func CreateComment(svc service.CommentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		uid, err := currentUserID(c)
		if err != nil {
			return err
		}
		var req createCommentRequest
		if ok, err := bindJSON(c, &req); !ok {
			return err
		}
		cm, err := svc.Add(c.UserContext(), uid, req.PostID, req.Content)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(cm)
	}
}

func ListComments(svc service.CommentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		postID, ok := paramID(c, "postId")
		if !ok {
			return writeInvalidID(c)
		}
		comments, err := svc.ListByPost(c.UserContext(), postID)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(comments)
	}
}

func UpdateComment(svc service.CommentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		uid, err := currentUserID(c)
		if err != nil {
			return err
		}
		id, ok := paramID(c, "id")
		if !ok {
			return writeInvalidID(c)
		}
		var req updateCommentRequest
		if ok, err := bindJSON(c, &req); !ok {
			return err
		}
		cm, err := svc.Update(c.UserContext(), id, uid, req.Content)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(cm)
	}
}

func DeleteComment(svc service.CommentService) fiber.Handler {
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
