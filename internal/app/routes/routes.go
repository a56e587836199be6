package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/yigit/campusnet/internal/app/controllers"
	"github.com/yigit/campusnet/internal/middleware"
)

// Controllers groups the handlers mounted by SetupRouter
type Controllers struct {
	Home         *controllers.HomeController
	Auth         *controllers.AuthController
	Users        *controllers.UserController
	Educations   *controllers.EducationController
	Certificates *controllers.CertificateController
	Achievements *controllers.AchievementController
	Resumes      *controllers.ResumeController
	Posts        *controllers.PostController
	Connections  *controllers.ConnectionController
}

// recordRoutes is implemented by the dependent-record controllers
type recordRoutes interface {
	List(ctx *gin.Context)
	Get(ctx *gin.Context)
	Create(ctx *gin.Context)
	Update(ctx *gin.Context)
	Delete(ctx *gin.Context)
}

// SetupRouter configures all application routes
func SetupRouter(router *gin.Engine, c Controllers, authMiddleware *middleware.AuthMiddleware) {
	router.GET("/", c.Home.Home)
	router.GET("/health", c.Home.Health)

	// API version group; every route resolves an optional actor
	v1 := router.Group("/api/v1")
	v1.Use(authMiddleware.OptionalAuth())
	requireAuth := authMiddleware.RequireAuth()

	v1.POST("/signup", c.Auth.Signup)

	auth := v1.Group("/auth")
	{
		auth.POST("/login", c.Auth.Login)
		auth.POST("/logout", requireAuth, c.Auth.Logout)
		auth.GET("/me", requireAuth, c.Auth.Me)
	}

	users := v1.Group("/users")
	{
		users.GET("", c.Users.ListUsers)
		users.POST("", c.Auth.Signup)
		users.GET("/search", c.Users.SearchUsers)
		users.GET("/:id", c.Users.GetUser)
		users.PUT("/:id", requireAuth, c.Users.UpdateUser)
		users.PATCH("/:id", requireAuth, c.Users.UpdateUser)
		users.DELETE("/:id", requireAuth, c.Users.DeleteUser)

		users.POST("/:id/connect", requireAuth, c.Connections.Request)
		users.POST("/:id/accept", requireAuth, c.Connections.Accept)
		users.DELETE("/:id/connection", requireAuth, c.Connections.Remove)
		users.GET("/:id/connections", c.Connections.List)
	}
	v1.GET("/connections/requests", requireAuth, c.Connections.Incoming)

	mountRecords(v1.Group("/educations"), c.Educations, requireAuth)
	mountRecords(v1.Group("/certificates"), c.Certificates, requireAuth)
	mountRecords(v1.Group("/achievements"), c.Achievements, requireAuth)
	mountRecords(v1.Group("/resumes"), c.Resumes, requireAuth)

	posts := v1.Group("/posts")
	mountRecords(posts, c.Posts, requireAuth)
	{
		posts.PUT("/:id/like", requireAuth, c.Posts.Like)
		posts.GET("/:id/comments", c.Posts.ListComments)
		posts.POST("/:id/comments", requireAuth, c.Posts.CreateComment)
	}

	comments := v1.Group("/comments")
	{
		comments.GET("/:id", c.Posts.GetComment)
		comments.DELETE("/:id", requireAuth, c.Posts.DeleteComment)
		comments.PUT("/:id/like", requireAuth, c.Posts.LikeComment)
	}
}

func mountRecords(group *gin.RouterGroup, h recordRoutes, requireAuth gin.HandlerFunc) {
	group.GET("", h.List)
	group.POST("", requireAuth, h.Create)
	group.GET("/:id", h.Get)
	group.PUT("/:id", requireAuth, h.Update)
	group.PATCH("/:id", requireAuth, h.Update)
	group.DELETE("/:id", requireAuth, h.Delete)
}
