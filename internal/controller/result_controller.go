package controller

import (
	"strconv"

	"quizhub_backend/internal/service"
	"quizhub_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ResultController struct {
	sessions *service.SessionService
}

func NewResultController(sessions *service.SessionService) *ResultController {
	return &ResultController{sessions: sessions}
}

// ListMine pages the caller's own attempt history.
func (ctl *ResultController) ListMine(c *gin.Context) {
	claims := util.GetUserFromContext(c)
	if claims == nil {
		util.Unauthorized(c)
		return
	}
	page, limit := pagination(c)

	results, total, err := ctl.sessions.ListMyResults(claims.UserID, page, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	util.Success(c, util.PageResponse{List: results, Total: total, Page: page, Limit: limit})
}

// ListAll pages every attempt, for administrators.
func (ctl *ResultController) ListAll(c *gin.Context) {
	page, limit := pagination(c)
	examID, _ := strconv.ParseUint(c.Query("examId"), 10, 32)

	results, total, err := ctl.sessions.ListAllResults(uint(examID), page, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	util.Success(c, util.PageResponse{List: results, Total: total, Page: page, Limit: limit})
}

// Get godoc
// @Summary Full graded report for one session
// @Tags results
// @Produce json
// @Param id path int true "session id"
// @Success 200 {object} util.Response
// @Security BearerAuth
// @Router /api/results/{id} [get]
func (ctl *ResultController) Get(c *gin.Context) {
	claims := util.GetUserFromContext(c)
	if claims == nil {
		util.Unauthorized(c)
		return
	}
	sessionID, ok := pathID(c, "id")
	if !ok {
		return
	}

	report, err := ctl.sessions.GetResult(claims, sessionID)
	if err != nil {
		respondError(c, err)
		return
	}
	util.Success(c, report)
}
