package app

import (
	"quizhub_backend/docs"
	"quizhub_backend/internal/config"
	"quizhub_backend/internal/middleware"
	"quizhub_backend/internal/model"
	"quizhub_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// Public routes, no login required.
	public := router.Group("/api")
	{
		public.GET("/health", c.health.Check)
		public.POST("/auth/register", c.auth.Register)
		public.POST("/auth/login", c.auth.Login)
		public.POST("/auth/forgot-password", c.auth.ForgotPassword)
		public.POST("/auth/reset-password", c.auth.ResetPassword)

		public.GET("/topics", c.topic.List)
		public.GET("/topics/:id", c.topic.Get)
		public.GET("/exams/open", c.exam.ListOpen)
		public.GET("/exams/:id", middleware.TryAuthMiddleware(cfg), c.exam.Get)
		public.GET("/exams/:id/comments", c.comment.ListByExam)
	}

	// Logged-in routes.
	auth := router.Group("/api")
	auth.Use(middleware.AuthMiddleware(cfg))
	{
		auth.GET("/profile", c.auth.Me)
		auth.PUT("/profile", c.user.UpdateProfile)
		auth.POST("/profile/avatar", c.user.UploadAvatar)
		auth.POST("/auth/change-password", c.auth.ChangePassword)

		// Exam sessions.
		auth.POST("/exams/:id/sessions", c.session.Start)
		auth.PUT("/sessions/:id/answers", c.session.RecordAnswer)
		auth.POST("/sessions/:id/submit", c.session.Submit)
		auth.POST("/sessions/:id/explain", c.chat.Explain)

		// Results.
		auth.GET("/results/mine", c.result.ListMine)
		auth.GET("/results/:id", c.result.Get)

		// Comments.
		auth.POST("/exams/:id/comments", c.comment.Create)
		auth.PUT("/comments/:id", c.comment.Update)
		auth.DELETE("/comments/:id", c.comment.Delete)

		// Contact messages.
		auth.POST("/contact", c.contact.Create)
		auth.GET("/contact/mine", c.contact.ListMine)
		auth.PUT("/contact/:id", c.contact.Update)
		auth.DELETE("/contact/:id", c.contact.Delete)
	}

	// Administrator routes.
	admin := router.Group("/api/admin")
	admin.Use(middleware.AuthMiddleware(cfg), middleware.RoleMiddleware(model.RoleAdmin))
	{
		admin.GET("/users", c.user.Search)
		admin.GET("/users/:id", c.user.Get)
		admin.PUT("/users/:id/roles", c.user.ReplaceRoles)
		admin.PUT("/users/:id/lock", c.user.SetLocked)
		admin.DELETE("/users/:id", c.user.Delete)

		admin.POST("/topics", c.topic.Create)
		admin.PUT("/topics/:id", c.topic.Update)
		admin.DELETE("/topics/:id", c.topic.Delete)

		admin.GET("/questions", c.question.List)
		admin.GET("/questions/:id", c.question.Get)
		admin.POST("/questions", c.question.Create)
		admin.PUT("/questions/:id", c.question.Update)
		admin.DELETE("/questions/:id", c.question.Delete)
		admin.POST("/questions/import", c.question.Import)
		admin.POST("/questions/upload/image", c.question.UploadImage)
		admin.POST("/questions/upload/audio", c.question.UploadAudio)

		admin.GET("/exams", c.exam.List)
		admin.POST("/exams", c.exam.Create)
		admin.PUT("/exams/:id", c.exam.Update)
		admin.DELETE("/exams/:id", c.exam.Delete)

		admin.GET("/results", c.result.ListAll)

		admin.GET("/contacts", c.contact.List)
		admin.GET("/contacts/:id", c.contact.Get)
		admin.DELETE("/contacts/:id", c.contact.Delete)
	}
}
