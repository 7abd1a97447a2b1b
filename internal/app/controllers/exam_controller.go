package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/smartexam/backend/internal/app/models/dto"
	"github.com/smartexam/backend/internal/app/services"
	"github.com/smartexam/backend/internal/middleware"
	"github.com/smartexam/backend/internal/pkg/apperrors"
)

// ExamController handles exam lifecycle operations
type ExamController struct {
	examService *services.ExamService
	logger      zerolog.Logger
}

// NewExamController creates a new ExamController
func NewExamController(examService *services.ExamService, logger zerolog.Logger) *ExamController {
	return &ExamController{
		examService: examService,
		logger:      logger,
	}
}

// GenerateExam creates an AI-generated exam for the authenticated teacher
func (c *ExamController) GenerateExam(ctx *gin.Context) {
	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse("Authentication required"))
		return
	}

	var req dto.GenerateExamRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	resp, err := c.examService.GenerateExam(ctx.Request.Context(), userID, &req)
	if err != nil {
		c.logger.Error().Err(err).
			Str("subject", req.Subject).
			Int("questionCount", req.QuestionCount).
			Msg("Exam generation failed")
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().
		Int64("teacherID", userID).
		Str("examCode", resp.ExamCode).
		Int("questions", resp.TotalQuestions).
		Msg("Exam generated")

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(resp, "Exam generated successfully"))
}

// GetExamByCode returns the student view of an exam, without answer keys
func (c *ExamController) GetExamByCode(ctx *gin.Context) {
	code := ctx.Param("code")

	resp, err := c.examService.GetExamForStudent(ctx.Request.Context(), code)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(resp, "Exam retrieved"))
}

// GetExamByID returns the full exam, answer keys included, to its owner
func (c *ExamController) GetExamByID(ctx *gin.Context) {
	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse("Authentication required"))
		return
	}

	examID, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		middleware.HandleAPIError(ctx, apperrors.NewBadRequestError("invalid exam id"))
		return
	}

	exam, err := c.examService.GetExamDetails(ctx.Request.Context(), examID, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(exam, "Exam retrieved"))
}

// ListExams returns all exams created by the authenticated teacher
func (c *ExamController) ListExams(ctx *gin.Context) {
	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse("Authentication required"))
		return
	}

	resp, err := c.examService.ListExamsForTeacher(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(resp, "Exams retrieved"))
}

// DeleteExam removes an exam owned by the authenticated teacher
func (c *ExamController) DeleteExam(ctx *gin.Context) {
	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse("Authentication required"))
		return
	}

	examID, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		middleware.HandleAPIError(ctx, apperrors.NewBadRequestError("invalid exam id"))
		return
	}

	if err := c.examService.DeleteExam(ctx.Request.Context(), examID, userID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().Int64("examID", examID).Int64("teacherID", userID).Msg("Exam deleted")

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(nil, "Exam deleted successfully"))
}
