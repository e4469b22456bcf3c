package controller

import (
	"quizhub_backend/internal/service"
	"quizhub_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type TopicController struct {
	topics *service.TopicService
}

func NewTopicController(topics *service.TopicService) *TopicController {
	return &TopicController{topics: topics}
}

// List godoc
// @Summary List all topics
// @Tags topics
// @Produce json
// @Success 200 {object} util.Response
// @Router /api/topics [get]
func (ctl *TopicController) List(c *gin.Context) {
	topics, err := ctl.topics.List()
	if err != nil {
		respondError(c, err)
		return
	}
	util.Success(c, topics)
}

func (ctl *TopicController) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	topic, err := ctl.topics.Get(id)
	if err != nil {
		respondError(c, err)
		return
	}
	util.Success(c, topic)
}

func (ctl *TopicController) Create(c *gin.Context) {
	var input service.TopicInput
	if err := c.ShouldBindJSON(&input); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	topic, err := ctl.topics.Create(&input)
	if err != nil {
		respondError(c, err)
		return
	}
	util.Created(c, topic)
}

func (ctl *TopicController) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var input service.TopicInput
	if err := c.ShouldBindJSON(&input); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	topic, err := ctl.topics.Update(id, &input)
	if err != nil {
		respondError(c, err)
		return
	}
	util.Success(c, topic)
}

func (ctl *TopicController) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := ctl.topics.Delete(id); err != nil {
		respondError(c, err)
		return
	}
	util.Success(c, nil)
}
