package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/oguzk/courseapi/internal/app/controllers"
	"github.com/oguzk/courseapi/internal/app/models/dto"
	"github.com/oguzk/courseapi/internal/middleware"
)

// SetupRouter configures all application routes. Every route except the
// health check and the Swagger UI sits behind the shared API key.
func SetupRouter(
	router *gin.Engine,
	apiKey string,
	courseController *controllers.CourseController,
	groupController *controllers.GroupController,
	completionController *controllers.CompletionController,
	leaderboardController *controllers.LeaderboardController,
	enrollmentController *controllers.EnrollmentController,
	roleController *controllers.RoleController,
	userController *controllers.UserController,
	sessionController *controllers.SessionController,
	authMiddleware *middleware.AuthMiddleware,
) {
	// Health check endpoint (public)
	router.GET("/api/system/health", func(c *gin.Context) {
		c.JSON(200, dto.APIResponse{
			Data: gin.H{"status": "ok"},
		})
	})

	api := router.Group("/api")
	api.Use(middleware.APIKeyAuth(apiKey))

	courses := api.Group("/courses")
	{
		courses.GET("", courseController.ListCourses)
		courses.GET("/:course_id", courseController.GetCourse)

		courses.GET("/:course_id/content", courseController.ListRootChildren)
		courses.GET("/:course_id/content/:content_id", courseController.GetContent)
		courses.GET("/:course_id/content/:content_id/children", courseController.ListChildren)

		courses.GET("/:course_id/overview", courseController.GetOverview)
		courses.GET("/:course_id/updates", courseController.GetUpdates)
		courses.GET("/:course_id/static_tabs", courseController.ListStaticTabs)
		courses.GET("/:course_id/static_tabs/:tab_id", courseController.GetStaticTab)

		// Group bindings
		courses.POST("/:course_id/groups", groupController.BindCourseGroup)
		courses.GET("/:course_id/groups", groupController.ListCourseGroups)
		courses.GET("/:course_id/groups/:group_id", groupController.GetCourseGroup)
		courses.DELETE("/:course_id/groups/:group_id", groupController.UnbindCourseGroup)
		courses.POST("/:course_id/content/:content_id/groups", groupController.BindContentGroup)
		courses.GET("/:course_id/content/:content_id/groups", groupController.ListContentGroups)
		courses.GET("/:course_id/content/:content_id/groups/:group_id", groupController.GetContentGroup)
		courses.DELETE("/:course_id/content/:content_id/groups/:group_id", groupController.UnbindContentGroup)
		courses.GET("/:course_id/content/:content_id/users", groupController.ListContentUsers)

		// Completions
		courses.POST("/:course_id/completions", completionController.CreateCompletion)
		courses.GET("/:course_id/completions", completionController.ListCompletions)

		// Enrollments
		courses.POST("/:course_id/users", enrollmentController.EnrollUser)
		courses.GET("/:course_id/users", enrollmentController.ListEnrollments)
		courses.GET("/:course_id/users/:user_id", enrollmentController.GetEnrollment)
		courses.DELETE("/:course_id/users/:user_id", enrollmentController.UnenrollUser)

		// Metrics and leaderboards
		courses.GET("/:course_id/metrics", enrollmentController.GetMetrics)
		courses.GET("/:course_id/metrics/proficiency/leaders", leaderboardController.ProficiencyLeaders)
		courses.GET("/:course_id/metrics/completions/leaders", leaderboardController.CompletionLeaders)
		courses.GET("/:course_id/grades", leaderboardController.GetGrades)

		// Roles
		courses.POST("/:course_id/roles", roleController.GrantRole)
		courses.GET("/:course_id/roles", roleController.ListRoles)
		courses.DELETE("/:course_id/roles/:role/users/:user_id", roleController.RevokeRole)
	}

	groups := api.Group("/groups")
	{
		groups.POST("", groupController.CreateGroup)
		groups.GET("", groupController.ListGroups)
		groups.GET("/:group_id", groupController.GetGroup)
		groups.POST("/:group_id", groupController.UpdateGroup)
		groups.DELETE("/:group_id", groupController.DeleteGroup)

		groups.POST("/:group_id/users", groupController.AddGroupMember)
		groups.GET("/:group_id/users", groupController.ListGroupMembers)
		groups.DELETE("/:group_id/users/:user_id", groupController.RemoveGroupMember)
	}

	users := api.Group("/users")
	{
		users.POST("", userController.CreateUser)
		users.GET("/current", authMiddleware.JWTAuth(), userController.GetCurrentUser)
		users.GET("/:user_id", userController.GetUser)
	}

	api.POST("/sessions", sessionController.CreateSession)
	api.DELETE("/sessions/:token", sessionController.DeleteSession)
}
