package handlers

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/waste3d/courseplatform-api/pkg/logger"
	"github.com/waste3d/courseplatform-api/services/api-gateway/internal/middleware"
)

type RouterDeps struct {
	Courses      *CourseHandler
	Progress     *ProgressHandler
	Transactions *TransactionHandler
	Tokens       middleware.TokenValidator
	// Limiter может быть nil, тогда покупки не ограничиваются.
	Limiter           *middleware.RateLimiter
	PurchaseRateLimit int
	AllowedOrigins    []string
	Log               *logger.Logger
}

func NewRouter(d RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(d.Log))

	if len(d.AllowedOrigins) > 0 {
		config := cors.DefaultConfig()
		config.AllowOrigins = d.AllowedOrigins
		config.AllowCredentials = true
		config.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
		config.AllowMethods = []string{"GET", "POST", "PUT", "OPTIONS"}
		r.Use(cors.New(config))
	}

	purchaseLimit := func(c *gin.Context) { c.Next() }
	if d.Limiter != nil && d.PurchaseRateLimit > 0 {
		purchaseLimit = d.Limiter.Limit("purchase", d.PurchaseRateLimit, 1*time.Minute)
	}

	api := r.Group("/api/v1")
	api.Use(middleware.AuthMiddleware(d.Tokens))
	{
		course := api.Group("/courses")
		{
			course.GET("", d.Courses.List)
			course.GET("/:courseId", d.Courses.GetOne)
			course.PUT("/:courseId/sections/:sectionId/chapters/:chapterId/video", d.Courses.AttachVideo)
		}
		progress := api.Group("/users/course-progress/:userId")
		{
			progress.GET("/enrolled-courses", d.Progress.EnrolledCourses)
			progress.GET("/courses/:courseId", d.Progress.Get)
			progress.PUT("/courses/:courseId", d.Progress.Update)
		}
		tx := api.Group("/transactions")
		{
			tx.GET("", d.Transactions.List)
			tx.POST("", purchaseLimit, d.Transactions.Create)
			tx.POST("/:transactionId/resume", d.Transactions.Resume)
		}
	}

	return r
}
