// Package routes wires HTTP endpoints to their controllers
package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/smartexam/backend/internal/app/controllers"
	"github.com/smartexam/backend/internal/app/models"
	"github.com/smartexam/backend/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	userController *controllers.UserController,
	examController *controllers.ExamController,
	submissionController *controllers.SubmissionController,
	authMiddleware *middleware.AuthMiddleware,
) {
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	v1 := router.Group("/api/v1")

	// --- User routes ---
	users := v1.Group("/users")
	{
		users.POST("/register", authController.Register)
		users.POST("/login", authController.Login)
		users.POST("/refresh-token", authController.Refresh)

		usersAuth := users.Group("")
		usersAuth.Use(authMiddleware.JWTAuth())
		{
			usersAuth.POST("/logout", authController.Logout)
			usersAuth.GET("/theme", userController.GetTheme)
			usersAuth.PUT("/theme", userController.UpdateTheme)
		}
	}

	// --- Exam routes ---
	exam := v1.Group("/exam")
	exam.Use(authMiddleware.JWTAuth())
	{
		teacherOnly := exam.Group("")
		teacherOnly.Use(authMiddleware.RoleRequired(models.RoleTeacher))
		{
			teacherOnly.POST("/generate-exam", examController.GenerateExam)
			teacherOnly.GET("/get-exams/:id", examController.GetExamByID)
			teacherOnly.GET("/all-exams", examController.ListExams)
			teacherOnly.DELETE("/delete-exam/:id", examController.DeleteExam)
			teacherOnly.GET("/:examId/submissions", submissionController.GetSubmissions)
		}

		studentOnly := exam.Group("")
		studentOnly.Use(authMiddleware.RoleRequired(models.RoleStudent))
		{
			studentOnly.GET("/get-exam/:code", examController.GetExamByCode)
			studentOnly.POST("/submit-exam/:code", submissionController.SubmitExam)
			studentOnly.GET("/results/:submissionId", submissionController.GetResult)
		}
	}
}
