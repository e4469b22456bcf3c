package controller

import (
	"strconv"

	"quizhub_backend/internal/service"
	"quizhub_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ExamController struct {
	exams *service.ExamService
}

func NewExamController(exams *service.ExamService) *ExamController {
	return &ExamController{exams: exams}
}

// ListOpen godoc
// @Summary List exams that accept new sessions
// @Tags exams
// @Produce json
// @Success 200 {object} util.Response
// @Router /api/exams/open [get]
func (ctl *ExamController) ListOpen(c *gin.Context) {
	exams, err := ctl.exams.ListOpen(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	util.Success(c, exams)
}

func (ctl *ExamController) List(c *gin.Context) {
	page, limit := pagination(c)
	topicID, _ := strconv.ParseUint(c.Query("topicId"), 10, 32)

	exams, total, err := ctl.exams.List(uint(topicID), page, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	util.Success(c, util.PageResponse{List: exams, Total: total, Page: page, Limit: limit})
}

func (ctl *ExamController) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	exam, err := ctl.exams.Get(id)
	if err != nil {
		respondError(c, err)
		return
	}
	util.Success(c, exam)
}

func (ctl *ExamController) Create(c *gin.Context) {
	var input service.ExamInput
	if err := c.ShouldBindJSON(&input); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	exam, err := ctl.exams.Create(c.Request.Context(), &input)
	if err != nil {
		respondError(c, err)
		return
	}
	util.Created(c, exam)
}

func (ctl *ExamController) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var input service.ExamInput
	if err := c.ShouldBindJSON(&input); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	exam, err := ctl.exams.Update(c.Request.Context(), id, &input)
	if err != nil {
		respondError(c, err)
		return
	}
	util.Success(c, exam)
}

func (ctl *ExamController) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := ctl.exams.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	util.Success(c, nil)
}
