package handler

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"

	"orion/internal/service"
)

// Services bundles the use cases the HTTP layer dispatches to.
type Services struct {
	Auth          service.AuthService
	Users         service.UserService
	Topics        service.TopicService
	Posts         service.PostService
	Comments      service.CommentService
	Subscriptions service.SubscriptionService
}

// RegisterRoutes attaches HTTP routes to app. Everything under /api except register,
// login and refresh runs behind requireAuth.
func RegisterRoutes(app *fiber.App, db *sql.DB, svc Services, requireAuth fiber.Handler) {
	app.Get("/health", HealthCheck(db))
	app.Get("/healthz", LivenessProbe())

	api := app.Group("/api")

	authRoutes := api.Group("/auth")
	authRoutes.Post("/register", Register(svc.Auth))
	authRoutes.Post("/login", Login(svc.Auth))
	authRoutes.Post("/refresh", Refresh(svc.Auth))
	authRoutes.Post("/logout", requireAuth, Logout(svc.Auth))
	authRoutes.Get("/me", requireAuth, Me(svc.Auth))
	authRoutes.Patch("/me", requireAuth, UpdateMe(svc.Auth))

	users := api.Group("/users", requireAuth)
	users.Get("/", ListUsers(svc.Users))
	users.Delete("/me", DeleteMe(svc.Users))
	users.Put("/me/avatar", UploadAvatar(svc.Users))
	users.Get("/:id", GetUser(svc.Users))
	users.Get("/:id/avatar", GetAvatar(svc.Users))

	topics := api.Group("/topics", requireAuth)
	topics.Get("/", ListTopics(svc.Topics))
	topics.Post("/", CreateTopic(svc.Topics))
	topics.Get("/:id", GetTopic(svc.Topics))

	posts := api.Group("/posts", requireAuth)
	posts.Get("/", ListPosts(svc.Posts))
	posts.Post("/", CreatePost(svc.Posts))
	posts.Get("/feed", Feed(svc.Posts))
	posts.Get("/user/:userId", ListPostsByAuthor(svc.Posts))
	posts.Get("/topic/:topicId", ListPostsByTopic(svc.Posts))
	posts.Get("/:id", GetPost(svc.Posts))
	posts.Put("/:id", UpdatePost(svc.Posts))
	posts.Delete("/:id", DeletePost(svc.Posts))

	comments := api.Group("/comments", requireAuth)
	comments.Post("/", CreateComment(svc.Comments))
	comments.Get("/post/:postId", ListComments(svc.Comments))
	comments.Put("/:id", UpdateComment(svc.Comments))
	comments.Delete("/:id", DeleteComment(svc.Comments))

	subs := api.Group("/subscriptions", requireAuth)
	subs.Post("/", Subscribe(svc.Subscriptions))
	subs.Get("/me", ListMySubscriptions(svc.Subscriptions))
	subs.Delete("/:id", Unsubscribe(svc.Subscriptions))
}
