package app

import (
	"plugga_backend/docs"
	"plugga_backend/internal/config"
	"plugga_backend/internal/middleware"
	"plugga_backend/internal/model"
	"plugga_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)
	}

	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg), middleware.ActivityMiddleware(repos.user))
	{
		authGroup.GET("/me", c.auth.Me)
		authGroup.PUT("/users/me", c.user.UpdateUser)
		authGroup.POST("/users/me/avatar", c.user.UploadAvatar)

		// Study profile and course set
		authGroup.GET("/overview", c.profile.GetOverview)
		authGroup.GET("/profile", c.profile.GetProfile)
		authGroup.PUT("/profile", c.profile.SaveProfile)
		authGroup.POST("/profile/reset", c.profile.Reset)
		authGroup.GET("/courses", c.profile.GetCourses)
		authGroup.POST("/courses/assign", c.profile.AssignCourses)
		authGroup.GET("/progress", c.course.GetProgress)
		authGroup.PUT("/courses/:code/progress", c.course.UpdateProgress)
		authGroup.GET("/courses/:code/exercises", c.course.ListExercises)

		// Quiz sessions
		authGroup.POST("/exercises/:id/sessions", c.quiz.StartSession)
		authGroup.POST("/sessions/:id/answers", c.quiz.SubmitAnswer)
		authGroup.POST("/sessions/:id/advance", c.quiz.Advance)
		authGroup.GET("/sessions/:id/results", c.quiz.Results)
		authGroup.POST("/sessions/:id/restart", c.quiz.Restart)
		authGroup.DELETE("/sessions/:id", c.quiz.CloseSession)

		// Högskoleprovet practice
		authGroup.POST("/practice/attempts", c.practice.StartAttempt)
		authGroup.GET("/practice/attempts", c.practice.History)
		authGroup.POST("/practice/attempts/:id/answers", c.practice.SubmitAnswer)
		authGroup.POST("/practice/attempts/:id/complete", c.practice.CompleteAttempt)
	}

	admin := router.Group("/api/admin")
	admin.Use(middleware.AuthMiddleware(cfg), middleware.RoleMiddleware(model.Admin))
	{
		admin.GET("/reconcile", c.profile.ReconcileStatus)
		admin.POST("/reconcile", c.profile.ReconcileNow)
	}
}
