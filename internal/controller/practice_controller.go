package controller

import (
	"errors"
	"plugga_backend/internal/service"
	"plugga_backend/internal/util"
	"strconv"

	"github.com/gin-gonic/gin"
)

type PracticeController struct {
	PracticeService *service.PracticeService
}

func NewPracticeController(practiceService *service.PracticeService) *PracticeController {
	return &PracticeController{PracticeService: practiceService}
}

// swagger:model StartAttemptRequest
type StartAttemptRequest struct {
	Section string `json:"section" binding:"required"`
}

// StartAttempt godoc
// @Summary Start a practice attempt for a test section
// @Tags practice
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body StartAttemptRequest true "section code, e.g. ORD or XYZ"
// @Success 201 {object} util.Response{data=service.StartedAttempt}
// @Failure 400 {object} util.Response
// @Router /api/practice/attempts [post]
func (c *PracticeController) StartAttempt(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req StartAttemptRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	started, err := c.PracticeService.StartAttempt(ctx.Request.Context(), user.UserID, req.Section)
	if err != nil {
		if errors.Is(err, util.ErrUnknownSection) {
			util.BadRequest(ctx, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Created(ctx, started)
}

// swagger:model PracticeAnswerRequest
type PracticeAnswerRequest struct {
	QuestionID   uint   `json:"questionId" binding:"required"`
	ChosenOption string `json:"chosenOption" binding:"required"`
	ElapsedMs    int    `json:"elapsedMs"`
}

// SubmitAnswer godoc
// @Summary Record an answer within an attempt
// @Tags practice
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path string true "attempt id"
// @Param   body body PracticeAnswerRequest true "question, chosen option and elapsed time"
// @Success 200 {object} util.Response{data=object}
// @Failure 404 {object} util.Response
// @Failure 409 {object} util.Response
// @Router /api/practice/attempts/{id}/answers [post]
func (c *PracticeController) SubmitAnswer(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req PracticeAnswerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	correct, err := c.PracticeService.SubmitAnswer(
		ctx.Request.Context(), ctx.Param("id"), user.UserID,
		req.QuestionID, req.ChosenOption, req.ElapsedMs)
	if err != nil {
		practiceError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"correct": correct})
}

// CompleteAttempt godoc
// @Summary Finalize an attempt and persist totals
// @Tags practice
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path string true "attempt id"
// @Success 200 {object} util.Response{data=model.HogskoleprovetAttempt}
// @Failure 404 {object} util.Response
// @Failure 409 {object} util.Response
// @Router /api/practice/attempts/{id}/complete [post]
func (c *PracticeController) CompleteAttempt(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	attempt, err := c.PracticeService.CompleteAttempt(ctx.Request.Context(), ctx.Param("id"), user.UserID)
	if err != nil {
		practiceError(ctx, err)
		return
	}

	util.Success(ctx, attempt)
}

// History godoc
// @Summary Past attempts, newest first
// @Tags practice
// @Produce  json
// @Security ApiKeyAuth
// @Param   limit query int false "max rows, default 20"
// @Success 200 {object} util.Response{data=[]model.HogskoleprovetAttempt}
// @Router /api/practice/attempts [get]
func (c *PracticeController) History(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))
	attempts, err := c.PracticeService.History(ctx.Request.Context(), user.UserID, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, attempts)
}

func practiceError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrAttemptNotFound):
		util.NotFound(ctx)
	case errors.Is(err, util.ErrAttemptFinalized):
		util.Error(ctx, 409, err.Error())
	default:
		util.LogInternalError(ctx, err)
	}
}
