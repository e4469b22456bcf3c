package controller

import (
	"quizhub_backend/internal/service"
	"quizhub_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ContactController struct {
	contacts *service.ContactService
}

func NewContactController(contacts *service.ContactService) *ContactController {
	return &ContactController{contacts: contacts}
}

// Create godoc
// @Summary Send a contact message to the administrators
// @Tags contact
// @Accept json
// @Produce json
// @Param body body service.ContactInput true "message"
// @Success 201 {object} util.Response
// @Security BearerAuth
// @Router /api/contact [post]
func (ctl *ContactController) Create(c *gin.Context) {
	claims := util.GetUserFromContext(c)
	if claims == nil {
		util.Unauthorized(c)
		return
	}

	var input service.ContactInput
	if err := c.ShouldBindJSON(&input); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	message, err := ctl.contacts.Create(claims.UserID, &input)
	if err != nil {
		respondError(c, err)
		return
	}
	util.Created(c, message)
}

func (ctl *ContactController) ListMine(c *gin.Context) {
	claims := util.GetUserFromContext(c)
	if claims == nil {
		util.Unauthorized(c)
		return
	}
	page, limit := pagination(c)
	messages, total, err := ctl.contacts.ListMine(claims.UserID, page, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	util.Success(c, util.PageResponse{List: messages, Total: total, Page: page, Limit: limit})
}

func (ctl *ContactController) Update(c *gin.Context) {
	claims := util.GetUserFromContext(c)
	if claims == nil {
		util.Unauthorized(c)
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var input service.ContactInput
	if err := c.ShouldBindJSON(&input); err != nil {
		util.BadRequest(c, err.Error())
		return
	}
	message, err := ctl.contacts.Update(id, claims, &input)
	if err != nil {
		respondError(c, err)
		return
	}
	util.Success(c, message)
}

func (ctl *ContactController) List(c *gin.Context) {
	page, limit := pagination(c)
	messages, total, err := ctl.contacts.List(page, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	util.Success(c, util.PageResponse{List: messages, Total: total, Page: page, Limit: limit})
}

func (ctl *ContactController) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	message, err := ctl.contacts.Get(id)
	if err != nil {
		respondError(c, err)
		return
	}
	util.Success(c, message)
}

func (ctl *ContactController) Delete(c *gin.Context) {
	claims := util.GetUserFromContext(c)
	if claims == nil {
		util.Unauthorized(c)
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := ctl.contacts.Delete(id, claims); err != nil {
		respondError(c, err)
		return
	}
	util.Success(c, nil)
}
