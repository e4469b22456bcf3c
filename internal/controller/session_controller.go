package controller

import (
	"quizhub_backend/internal/service"
	"quizhub_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type SessionController struct {
	sessions *service.SessionService
}

func NewSessionController(sessions *service.SessionService) *SessionController {
	return &SessionController{sessions: sessions}
}

// Start godoc
// @Summary Start or resume an exam session
// @Tags sessions
// @Produce json
// @Param id path int true "exam id"
// @Success 201 {object} util.Response
// @Security BearerAuth
// @Router /api/exams/{id}/sessions [post]
func (ctl *SessionController) Start(c *gin.Context) {
	claims := util.GetUserFromContext(c)
	if claims == nil {
		util.Unauthorized(c)
		return
	}
	examID, ok := pathID(c, "id")
	if !ok {
		return
	}

	view, err := ctl.sessions.StartSession(claims.UserID, examID)
	if err != nil {
		respondError(c, err)
		return
	}
	util.Created(c, view)
}

type recordAnswerRequest struct {
	QuestionID uint   `json:"questionId" binding:"required"`
	Selected   string `json:"selected" binding:"required"`
}

// RecordAnswer godoc
// @Summary Record or overwrite one answer in a running session
// @Tags sessions
// @Accept json
// @Produce json
// @Param id path int true "session id"
// @Param body body recordAnswerRequest true "selection"
// @Success 200 {object} util.Response
// @Security BearerAuth
// @Router /api/sessions/{id}/answers [put]
func (ctl *SessionController) RecordAnswer(c *gin.Context) {
	claims := util.GetUserFromContext(c)
	if claims == nil {
		util.Unauthorized(c)
		return
	}
	sessionID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var input recordAnswerRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	review, err := ctl.sessions.RecordAnswer(claims.UserID, sessionID, input.QuestionID, input.Selected)
	if err != nil {
		respondError(c, err)
		return
	}
	util.Success(c, review)
}

// Submit godoc
// @Summary Submit a session for final grading
// @Tags sessions
// @Produce json
// @Param id path int true "session id"
// @Success 200 {object} util.Response
// @Security BearerAuth
// @Router /api/sessions/{id}/submit [post]
func (ctl *SessionController) Submit(c *gin.Context) {
	claims := util.GetUserFromContext(c)
	if claims == nil {
		util.Unauthorized(c)
		return
	}
	sessionID, ok := pathID(c, "id")
	if !ok {
		return
	}

	report, err := ctl.sessions.SubmitSession(claims.UserID, sessionID)
	if err != nil {
		respondError(c, err)
		return
	}
	util.Success(c, report)
}
