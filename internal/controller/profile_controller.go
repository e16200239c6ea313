package controller

import (
	"encoding/json"
	"errors"
	"plugga_backend/internal/model"
	"plugga_backend/internal/service"
	"plugga_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ProfileController struct {
	ProfileService *service.ProfileService
}

func NewProfileController(profileService *service.ProfileService) *ProfileController {
	return &ProfileController{ProfileService: profileService}
}

// GetOverview godoc
// @Summary Profile and course list, merged from store and cache
// @Tags profile
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=service.Overview}
// @Router /api/overview [get]
func (c *ProfileController) GetOverview(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	util.Success(ctx, c.ProfileService.LoadOverview(ctx.Request.Context(), user.UserID))
}

// GetProfile godoc
// @Summary Study profile for the current user
// @Tags profile
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=model.UserProfile}
// @Router /api/profile [get]
func (c *ProfileController) GetProfile(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	// A missing profile is a valid pre-onboarding state, not an error.
	profile := c.ProfileService.LoadProfile(ctx.Request.Context(), user.UserID)
	util.Success(ctx, profile)
}

// swagger:model SaveProfileRequest
type SaveProfileRequest struct {
	Institution     string   `json:"institution"`
	Program         string   `json:"program"`
	Year            int      `json:"year" binding:"omitempty,min=1,max=3"`
	SelectedCourses []string `json:"selectedCourses"`
	Onboarded       bool     `json:"onboarded"`
}

// SaveProfile godoc
// @Summary Upsert the study profile
// @Tags profile
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body SaveProfileRequest true "profile fields"
// @Success 200 {object} util.Response{data=model.UserProfile}
// @Failure 400 {object} util.Response
// @Router /api/profile [put]
func (c *ProfileController) SaveProfile(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req SaveProfileRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	selected, _ := json.Marshal(req.SelectedCourses)
	profile := &model.UserProfile{
		UserID:          user.UserID,
		Institution:     req.Institution,
		Program:         req.Program,
		Year:            req.Year,
		SelectedCourses: selected,
		Onboarded:       req.Onboarded,
	}

	c.ProfileService.SaveProfile(ctx.Request.Context(), profile)
	util.Success(ctx, profile)
}

// swagger:model AssignCoursesRequest
type AssignCoursesRequest struct {
	Program         string   `json:"program" binding:"required"`
	Year            int      `json:"year" binding:"required,min=1,max=3"`
	SelectedCourses []string `json:"selectedCourses"`
}

// AssignCourses godoc
// @Summary Replace the active course set for a program year
// @Tags profile
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body AssignCoursesRequest true "program, year and optional selection"
// @Success 200 {object} util.Response{data=[]model.CourseView}
// @Failure 400 {object} util.Response
// @Router /api/courses/assign [post]
func (c *ProfileController) AssignCourses(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req AssignCoursesRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	courses, err := c.ProfileService.AssignCoursesForYear(
		ctx.Request.Context(), user.UserID, req.Program, req.Year, req.SelectedCourses)
	if err != nil {
		if errors.Is(err, util.ErrUnknownProgram) {
			util.BadRequest(ctx, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, courses)
}

// GetCourses godoc
// @Summary Active courses with progress and display attributes
// @Tags profile
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.CourseView}
// @Router /api/courses [get]
func (c *ProfileController) GetCourses(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	util.Success(ctx, c.ProfileService.LoadCourses(ctx.Request.Context(), user.UserID))
}

// ReconcileStatus godoc
// @Summary Count of profiles awaiting remote confirmation
// @Tags admin
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=object}
// @Router /api/admin/reconcile [get]
func (c *ProfileController) ReconcileStatus(ctx *gin.Context) {
	util.Success(ctx, gin.H{"dirty": c.ProfileService.DirtyCount()})
}

// ReconcileNow godoc
// @Summary Run the dirty-profile reconciler immediately
// @Tags admin
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=object}
// @Router /api/admin/reconcile [post]
func (c *ProfileController) ReconcileNow(ctx *gin.Context) {
	c.ProfileService.ReconcileDirty(ctx.Request.Context())
	util.Success(ctx, gin.H{"dirty": c.ProfileService.DirtyCount()})
}

// Reset godoc
// @Summary Clear cached state and the onboarding flag
// @Tags profile
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /api/profile/reset [post]
func (c *ProfileController) Reset(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	c.ProfileService.Reset(ctx.Request.Context(), user.UserID)
	util.Success(ctx, nil)
}
