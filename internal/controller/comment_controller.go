package controller

import (
	"quizhub_backend/internal/service"
	"quizhub_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type CommentController struct {
	comments *service.CommentService
}

func NewCommentController(comments *service.CommentService) *CommentController {
	return &CommentController{comments: comments}
}

// ListByExam godoc
// @Summary Page comments under an exam
// @Tags comments
// @Produce json
// @Param id path int true "exam id"
// @Param page query int false "page"
// @Param limit query int false "page size"
// @Success 200 {object} util.Response
// @Router /api/exams/{id}/comments [get]
func (ctl *CommentController) ListByExam(c *gin.Context) {
	examID, ok := pathID(c, "id")
	if !ok {
		return
	}
	page, limit := pagination(c)

	comments, total, err := ctl.comments.ListByExam(examID, page, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	util.Success(c, util.PageResponse{List: comments, Total: total, Page: page, Limit: limit})
}

func (ctl *CommentController) Create(c *gin.Context) {
	claims := util.GetUserFromContext(c)
	if claims == nil {
		util.Unauthorized(c)
		return
	}
	examID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var input service.CommentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	comment, err := ctl.comments.Create(claims.UserID, examID, &input)
	if err != nil {
		respondError(c, err)
		return
	}
	util.Created(c, comment)
}

func (ctl *CommentController) Update(c *gin.Context) {
	claims := util.GetUserFromContext(c)
	if claims == nil {
		util.Unauthorized(c)
		return
	}
	commentID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var input service.CommentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	comment, err := ctl.comments.Update(claims, commentID, &input)
	if err != nil {
		respondError(c, err)
		return
	}
	util.Success(c, comment)
}

func (ctl *CommentController) Delete(c *gin.Context) {
	claims := util.GetUserFromContext(c)
	if claims == nil {
		util.Unauthorized(c)
		return
	}
	commentID, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := ctl.comments.Delete(claims, commentID); err != nil {
		respondError(c, err)
		return
	}
	util.Success(c, nil)
}
