package controller

import (
	"errors"
	"plugga_backend/internal/service"
	"plugga_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type CourseController struct {
	CourseService *service.CourseService
}

func NewCourseController(courseService *service.CourseService) *CourseController {
	return &CourseController{CourseService: courseService}
}

// swagger:model UpdateProgressRequest
type UpdateProgressRequest struct {
	Progress string `json:"progress" binding:"required"`
}

// UpdateProgress godoc
// @Summary Set completion percent for an active course
// @Tags courses
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   code path string true "course code"
// @Param   body body UpdateProgressRequest true "percent as string, 0 to 100"
// @Success 200 {object} util.Response{data=object}
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/courses/{code}/progress [put]
func (c *CourseController) UpdateProgress(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req UpdateProgressRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	code := ctx.Param("code")
	percent, err := c.CourseService.UpdateProgress(ctx.Request.Context(), user.UserID, code, req.Progress)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrInvalidProgress):
			util.BadRequest(ctx, err.Error())
		case errors.Is(err, util.ErrEnrollmentNotFound):
			util.NotFound(ctx)
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, gin.H{"code": code, "progress": percent})
}

// GetProgress godoc
// @Summary Progress map for all active courses
// @Tags courses
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=map[string]number}
// @Router /api/progress [get]
func (c *CourseController) GetProgress(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	util.Success(ctx, c.CourseService.GetProgress(ctx.Request.Context(), user.UserID))
}

// ListExercises godoc
// @Summary Quiz exercises for a course
// @Tags courses
// @Produce  json
// @Security ApiKeyAuth
// @Param   code path string true "course code"
// @Success 200 {object} util.Response{data=[]model.QuizExercise}
// @Router /api/courses/{code}/exercises [get]
func (c *CourseController) ListExercises(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	exercises, err := c.CourseService.ListExercises(ctx.Request.Context(), ctx.Param("code"))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, exercises)
}
