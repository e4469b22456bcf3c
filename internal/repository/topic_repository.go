package repository

import (
	"quizhub_backend/internal/model"

	"gorm.io/gorm"
)

type TopicRepository struct {
	DB *gorm.DB
}

func NewTopicRepository(db *gorm.DB) *TopicRepository {
	return &TopicRepository{DB: db}
}

func (r *TopicRepository) List() ([]model.Topic, error) {
	var topics []model.Topic
	err := r.DB.Order("name ASC").Find(&topics).Error
	return topics, err
}

func (r *TopicRepository) FindByID(id uint) (*model.Topic, error) {
	var topic model.Topic
	err := r.DB.First(&topic, id).Error
	if err != nil {
		return nil, err
	}
	return &topic, nil
}

func (r *TopicRepository) Create(topic *model.Topic) error {
	return r.DB.Create(topic).Error
}

func (r *TopicRepository) Update(topic *model.Topic) error {
	return r.DB.Save(topic).Error
}

func (r *TopicRepository) Delete(topic *model.Topic) error {
	return r.DB.Delete(topic).Error
}

func (r *TopicRepository) CountQuestions(topicID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.Question{}).Where("topic_id = ?", topicID).Count(&count).Error
	return count, err
}

func (r *TopicRepository) CountExams(topicID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.Exam{}).Where("topic_id = ?", topicID).Count(&count).Error
	return count, err
}
