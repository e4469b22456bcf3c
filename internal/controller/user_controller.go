package controller

import (
	"quizhub_backend/internal/service"
	"quizhub_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type UserController struct {
	users   *service.UserService
	storage *service.StorageService
}

func NewUserController(users *service.UserService, storage *service.StorageService) *UserController {
	return &UserController{users: users, storage: storage}
}

// Search godoc
// @Summary Page users, optionally filtered by keyword
// @Tags admin
// @Produce json
// @Param keyword query string false "match against username, email or full name"
// @Param page query int false "page"
// @Param limit query int false "page size"
// @Success 200 {object} util.Response
// @Security BearerAuth
// @Router /api/admin/users [get]
func (ctl *UserController) Search(c *gin.Context) {
	page, limit := pagination(c)
	users, total, err := ctl.users.Search(c.Query("keyword"), page, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	util.Success(c, util.PageResponse{List: users, Total: total, Page: page, Limit: limit})
}

func (ctl *UserController) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	user, err := ctl.users.Get(id)
	if err != nil {
		respondError(c, err)
		return
	}
	util.Success(c, user)
}

// UpdateProfile edits the caller's own account.
func (ctl *UserController) UpdateProfile(c *gin.Context) {
	claims := util.GetUserFromContext(c)
	if claims == nil {
		util.Unauthorized(c)
		return
	}

	var input service.ProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	user, err := ctl.users.UpdateProfile(claims.UserID, &input)
	if err != nil {
		respondError(c, err)
		return
	}
	util.Success(c, user)
}

// UploadAvatar stores a new avatar image for the caller.
func (ctl *UserController) UploadAvatar(c *gin.Context) {
	claims := util.GetUserFromContext(c)
	if claims == nil {
		util.Unauthorized(c)
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		util.BadRequest(c, "missing file")
		return
	}

	url, err := ctl.storage.UploadImage(c.Request.Context(), file)
	if err != nil {
		respondError(c, err)
		return
	}

	user, err := ctl.users.SetAvatar(claims.UserID, url)
	if err != nil {
		respondError(c, err)
		return
	}
	util.Success(c, user)
}

type replaceRolesRequest struct {
	Roles []string `json:"roles" binding:"required,min=1"`
}

// ReplaceRoles godoc
// @Summary Replace a user's role set
// @Tags admin
// @Accept json
// @Produce json
// @Param id path int true "user id"
// @Param body body replaceRolesRequest true "full role list"
// @Success 200 {object} util.Response
// @Security BearerAuth
// @Router /api/admin/users/{id}/roles [put]
func (ctl *UserController) ReplaceRoles(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var input replaceRolesRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	user, err := ctl.users.ReplaceRoles(id, input.Roles)
	if err != nil {
		respondError(c, err)
		return
	}
	util.Success(c, user)
}

type setLockedRequest struct {
	Locked *bool `json:"locked" binding:"required"`
}

// SetLocked toggles login lockout for an account.
func (ctl *UserController) SetLocked(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var input setLockedRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	user, err := ctl.users.SetLocked(id, *input.Locked)
	if err != nil {
		respondError(c, err)
		return
	}
	util.Success(c, user)
}

func (ctl *UserController) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := ctl.users.Delete(id); err != nil {
		respondError(c, err)
		return
	}
	util.Success(c, nil)
}
