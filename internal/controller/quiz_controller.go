package controller

import (
	"errors"
	"plugga_backend/internal/quiz"
	"plugga_backend/internal/service"
	"plugga_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type QuizController struct {
	QuizService *service.QuizService
}

func NewQuizController(quizService *service.QuizService) *QuizController {
	return &QuizController{QuizService: quizService}
}

func quizError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrExerciseNotFound),
		errors.Is(err, util.ErrSessionNotFound):
		util.NotFound(ctx)
	case errors.Is(err, util.ErrNoQuestions):
		util.Error(ctx, 422, err.Error())
	case errors.Is(err, quiz.ErrNotInProgress),
		errors.Is(err, quiz.ErrNotAnswered),
		errors.Is(err, quiz.ErrNotCompleted),
		errors.Is(err, quiz.ErrNotLoaded):
		util.Error(ctx, 409, err.Error())
	default:
		util.LogInternalError(ctx, err)
	}
}

// StartSession godoc
// @Summary Start a quiz session for an exercise
// @Tags quiz
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "exercise id"
// @Success 201 {object} util.Response{data=service.SessionView}
// @Failure 404 {object} util.Response
// @Failure 422 {object} util.Response
// @Router /api/exercises/{id}/sessions [post]
func (c *QuizController) StartSession(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	view, err := c.QuizService.StartSession(ctx.Request.Context(), user.UserID, util.MustParseUint(ctx.Param("id")))
	if err != nil {
		quizError(ctx, err)
		return
	}

	util.Created(ctx, view)
}

// swagger:model SubmitAnswerRequest
type SubmitAnswerRequest struct {
	Index *int   `json:"index"`
	Text  string `json:"text"`
}

// SubmitAnswer godoc
// @Summary Submit an answer for the current question
// @Tags quiz
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path string true "session id"
// @Param   body body SubmitAnswerRequest true "option index or free text"
// @Success 200 {object} util.Response{data=service.AnswerView}
// @Failure 404 {object} util.Response
// @Failure 409 {object} util.Response
// @Router /api/sessions/{id}/answers [post]
func (c *QuizController) SubmitAnswer(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req SubmitAnswerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	view, err := c.QuizService.SubmitAnswer(ctx.Param("id"), user.UserID, quiz.Submission{
		Index: req.Index,
		Text:  req.Text,
	})
	if err != nil {
		quizError(ctx, err)
		return
	}

	util.Success(ctx, view)
}

// Advance godoc
// @Summary Move to the next question
// @Tags quiz
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path string true "session id"
// @Success 200 {object} util.Response{data=service.SessionView}
// @Failure 409 {object} util.Response
// @Router /api/sessions/{id}/advance [post]
func (c *QuizController) Advance(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	view, err := c.QuizService.Advance(ctx.Param("id"), user.UserID)
	if err != nil {
		quizError(ctx, err)
		return
	}

	util.Success(ctx, view)
}

// Results godoc
// @Summary Final score for a completed session
// @Tags quiz
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path string true "session id"
// @Success 200 {object} util.Response{data=service.ResultView}
// @Failure 409 {object} util.Response
// @Router /api/sessions/{id}/results [get]
func (c *QuizController) Results(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	view, err := c.QuizService.Results(ctx.Param("id"), user.UserID)
	if err != nil {
		quizError(ctx, err)
		return
	}

	util.Success(ctx, view)
}

// Restart godoc
// @Summary Restart a completed session from the first question
// @Tags quiz
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path string true "session id"
// @Success 200 {object} util.Response{data=service.SessionView}
// @Failure 409 {object} util.Response
// @Router /api/sessions/{id}/restart [post]
func (c *QuizController) Restart(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	view, err := c.QuizService.Restart(ctx.Param("id"), user.UserID)
	if err != nil {
		quizError(ctx, err)
		return
	}

	util.Success(ctx, view)
}

// CloseSession godoc
// @Summary Discard a session
// @Tags quiz
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path string true "session id"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/sessions/{id} [delete]
func (c *QuizController) CloseSession(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	if err := c.QuizService.CloseSession(ctx.Param("id"), user.UserID); err != nil {
		quizError(ctx, err)
		return
	}

	util.Success(ctx, nil)
}
