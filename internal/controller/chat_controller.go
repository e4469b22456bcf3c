package controller

import (
	"quizhub_backend/internal/service"
	"quizhub_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ChatController struct {
	chat *service.ChatService
}

func NewChatController(chat *service.ChatService) *ChatController {
	return &ChatController{chat: chat}
}

type explainRequest struct {
	Question string `json:"question" binding:"required,max=2000"`
}

// Explain godoc
// @Summary Ask for an explanation of a session's results
// @Tags chat
// @Accept json
// @Produce json
// @Param id path int true "session id"
// @Param body body explainRequest true "free-form question"
// @Success 200 {object} util.Response
// @Security BearerAuth
// @Router /api/sessions/{id}/explain [post]
func (ctl *ChatController) Explain(c *gin.Context) {
	claims := util.GetUserFromContext(c)
	if claims == nil {
		util.Unauthorized(c)
		return
	}
	sessionID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var input explainRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	result, err := ctl.chat.ExplainSession(c.Request.Context(), claims, sessionID, input.Question)
	if err != nil {
		respondError(c, err)
		return
	}
	util.Success(c, result)
}
