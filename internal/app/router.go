package app

import (
	"lms_backend/docs"
	"lms_backend/internal/config"
	"lms_backend/internal/middleware"
	"lms_backend/internal/model"
	"lms_backend/internal/util"
	"lms_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())
	router.GET("/health", c.health.HealthCheck)
	router.NoRoute(util.NotFound)

	// 1. public catalogue, anonymous or signed in
	registerPublicRoutes(router, c, cfg)

	// 2. learner routes
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg))
	registerLearnerRoutes(authGroup, c)

	// 3. content management
	admin := router.Group("/api")
	admin.Use(middleware.AuthMiddleware(cfg), middleware.RoleMiddleware(model.RoleAdmin))
	registerAdminRoutes(admin, c)
}

func registerPublicRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	router.POST("/api/auth/register", c.auth.Register)
	router.POST("/api/auth/login", c.auth.Login)

	public := router.Group("/api")
	public.Use(middleware.TryAuthMiddleware(cfg))
	{
		public.GET("/search", c.search.Search)

		public.GET("/categories", c.category.ListCategories)
		public.GET("/categories/with-courses", c.category.ListCategoriesWithCourses)
		public.GET("/categories/:id", c.category.GetCategory)

		public.GET("/courses", c.course.ListCourses)
		public.GET("/courses/featured", c.course.GetFeaturedCourses)
		public.GET("/courses/:id", c.course.GetCourse)
		public.GET("/courses/:id/modules", c.course.GetCourseModules)
		public.GET("/courses/:id/quizzes", c.course.GetCourseQuizzes)

		public.GET("/modules/:id", c.module.GetModule)
		public.GET("/modules/:id/submodules", c.module.GetSubModules)
		public.GET("/modules/:id/lessons", c.module.GetLessons)
		public.GET("/modules/:id/quizzes", c.module.GetQuizzes)

		public.GET("/submodules/:id", c.subModule.GetSubModule)
		public.GET("/submodules/:id/lessons", c.subModule.GetLessons)
		public.GET("/submodules/:id/quizzes", c.subModule.GetQuizzes)

		public.GET("/lessons", c.lesson.ListLessons)
		public.GET("/lessons/:id", c.lesson.GetLesson)

		public.GET("/quizzes", c.quiz.ListQuizzes)
		public.GET("/quizzes/:id", c.quiz.GetQuiz)
	}
}

func registerLearnerRoutes(group *gin.RouterGroup, c *controllers) {
	group.GET("/auth/me", c.auth.Me)
	group.GET("/users/me/enrollments", c.user.GetMyEnrollments)
	group.GET("/users/me/quiz-results", c.quiz.GetResults)

	group.POST("/courses/:id/enroll", c.course.Enroll)
	group.GET("/courses/:id/progress", c.course.GetProgress)
	group.POST("/lessons/:id/complete", c.lesson.CompleteLesson)
	group.POST("/quizzes/:id/submit", c.quiz.SubmitQuiz)
	group.GET("/quizzes/:id/results", c.quiz.GetResults)
}

func registerAdminRoutes(group *gin.RouterGroup, c *controllers) {
	group.POST("/categories", c.category.CreateCategory)
	group.PUT("/categories/reorder", c.category.ReorderCategories)
	group.PUT("/categories/:id", c.category.UpdateCategory)
	group.DELETE("/categories/:id", c.category.DeleteCategory)

	group.POST("/courses", c.course.CreateCourse)
	group.PUT("/courses/reorder", c.course.ReorderCourses)
	group.PUT("/courses/:id", c.course.UpdateCourse)
	group.DELETE("/courses/:id", c.course.DeleteCourse)

	group.POST("/modules", c.module.CreateModule)
	group.PUT("/modules/reorder", c.module.ReorderModules)
	group.PUT("/modules/:id", c.module.UpdateModule)
	group.DELETE("/modules/:id", c.module.DeleteModule)

	group.POST("/submodules", c.subModule.CreateSubModule)
	group.PUT("/submodules/reorder", c.subModule.ReorderSubModules)
	group.PUT("/submodules/:id", c.subModule.UpdateSubModule)
	group.DELETE("/submodules/:id", c.subModule.DeleteSubModule)

	group.POST("/lessons", c.lesson.CreateLesson)
	group.PUT("/lessons/reorder", c.lesson.ReorderLessons)
	group.PUT("/lessons/:id", c.lesson.UpdateLesson)
	group.DELETE("/lessons/:id", c.lesson.DeleteLesson)
	group.POST("/lessons/:id/video", c.lesson.UploadVideo)

	group.POST("/quizzes", c.quiz.CreateQuiz)
	group.PUT("/quizzes/reorder", c.quiz.ReorderQuizzes)
	group.PUT("/quizzes/:id", c.quiz.UpdateQuiz)
	group.DELETE("/quizzes/:id", c.quiz.DeleteQuiz)

	group.POST("/uploads", c.upload.Upload)

	group.GET("/admin/users", c.user.GetUsers)
	group.GET("/admin/users/:id", c.user.GetUser)
	group.PUT("/admin/users/:id", c.user.UpdateUser)
}
