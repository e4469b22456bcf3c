package controller

import (
	"strconv"

	"quizhub_backend/internal/service"
	"quizhub_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type QuestionController struct {
	questions *service.QuestionService
	storage   *service.StorageService
}

func NewQuestionController(questions *service.QuestionService, storage *service.StorageService) *QuestionController {
	return &QuestionController{questions: questions, storage: storage}
}

// List godoc
// @Summary Page questions, optionally by topic
// @Tags questions
// @Produce json
// @Param topicId query int false "topic filter"
// @Param page query int false "page"
// @Param limit query int false "page size"
// @Success 200 {object} util.Response
// @Security BearerAuth
// @Router /api/admin/questions [get]
func (ctl *QuestionController) List(c *gin.Context) {
	page, limit := pagination(c)
	topicID, _ := strconv.ParseUint(c.Query("topicId"), 10, 32)

	questions, total, err := ctl.questions.List(uint(topicID), page, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	util.Success(c, util.PageResponse{List: questions, Total: total, Page: page, Limit: limit})
}

func (ctl *QuestionController) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	question, err := ctl.questions.Get(id)
	if err != nil {
		respondError(c, err)
		return
	}
	util.Success(c, question)
}

func (ctl *QuestionController) Create(c *gin.Context) {
	var input service.QuestionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	question, err := ctl.questions.Create(&input)
	if err != nil {
		respondError(c, err)
		return
	}
	util.Created(c, question)
}

func (ctl *QuestionController) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var input service.QuestionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	question, err := ctl.questions.Update(id, &input)
	if err != nil {
		respondError(c, err)
		return
	}
	util.Success(c, question)
}

func (ctl *QuestionController) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := ctl.questions.Delete(id); err != nil {
		respondError(c, err)
		return
	}
	util.Success(c, nil)
}

// Import godoc
// @Summary Bulk-import questions from an xlsx file
// @Tags questions
// @Accept multipart/form-data
// @Produce json
// @Param topicId formData int true "target topic"
// @Param file formData file true "spreadsheet"
// @Success 200 {object} util.Response
// @Security BearerAuth
// @Router /api/admin/questions/import [post]
func (ctl *QuestionController) Import(c *gin.Context) {
	topicID, err := strconv.ParseUint(c.PostForm("topicId"), 10, 32)
	if err != nil || topicID == 0 {
		util.BadRequest(c, "invalid topicId")
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		util.BadRequest(c, "missing file")
		return
	}

	src, err := file.Open()
	if err != nil {
		util.BadRequest(c, "unreadable file")
		return
	}
	defer src.Close()

	result, err := ctl.questions.ImportFromExcel(src, uint(topicID))
	if err != nil {
		respondError(c, err)
		return
	}
	util.Success(c, result)
}

// UploadImage stores a question illustration and returns its URL.
func (ctl *QuestionController) UploadImage(c *gin.Context) {
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
	util.Success(c, gin.H{"url": url})
}

// UploadAudio stores a question audio clip after probing it.
func (ctl *QuestionController) UploadAudio(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		util.BadRequest(c, "missing file")
		return
	}

	url, err := ctl.storage.UploadAudio(c.Request.Context(), file)
	if err != nil {
		respondError(c, err)
		return
	}
	util.Success(c, gin.H{"url": url})
}
