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

// SubmissionController handles exam submission and result operations
type SubmissionController struct {
	submissionService *services.SubmissionService
	logger            zerolog.Logger
}

// NewSubmissionController creates a new SubmissionController
func NewSubmissionController(submissionService *services.SubmissionService, logger zerolog.Logger) *SubmissionController {
	return &SubmissionController{
		submissionService: submissionService,
		logger:            logger,
	}
}

// SubmitExam scores and stores a student's answer set for an exam code
func (c *SubmissionController) SubmitExam(ctx *gin.Context) {
	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse("Authentication required"))
		return
	}

	var req dto.SubmitExamRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	code := ctx.Param("code")

	resp, err := c.submissionService.Submit(ctx.Request.Context(), code, &userID, req.Answers)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().
		Int64("studentID", userID).
		Str("examCode", code).
		Int("score", resp.ObtainedMarks).
		Msg("Exam submitted")

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(resp, "Exam submitted successfully"))
}

// GetResult returns the detailed result view for the submitting student
func (c *SubmissionController) GetResult(ctx *gin.Context) {
	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse("Authentication required"))
		return
	}

	submissionID, err := strconv.ParseInt(ctx.Param("submissionId"), 10, 64)
	if err != nil {
		middleware.HandleAPIError(ctx, apperrors.NewBadRequestError("invalid submission id"))
		return
	}

	resp, err := c.submissionService.BuildResultView(ctx.Request.Context(), submissionID, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(resp, "Result retrieved"))
}

// GetSubmissions returns all submissions for an exam to its owning teacher
func (c *SubmissionController) GetSubmissions(ctx *gin.Context) {
	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse("Authentication required"))
		return
	}

	examID, err := strconv.ParseInt(ctx.Param("examId"), 10, 64)
	if err != nil {
		middleware.HandleAPIError(ctx, apperrors.NewBadRequestError("invalid exam id"))
		return
	}

	resp, err := c.submissionService.BuildTeacherSubmissionsView(ctx.Request.Context(), examID, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(resp, "Submissions retrieved"))
}
