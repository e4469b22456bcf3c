package service

import (
	"quizhub_backend/internal/model"
	"quizhub_backend/internal/repository"
	"quizhub_backend/internal/util"
)

type TopicService struct {
	repo *repository.TopicRepository
}

func NewTopicService(repo *repository.TopicRepository) *TopicService {
	return &TopicService{repo: repo}
}

func (s *TopicService) List() ([]model.Topic, error) {
	return s.repo.List()
}

func (s *TopicService) Get(id uint) (*model.Topic, error) {
	topic, err := s.repo.FindByID(id)
	if err != nil {
		if isNotFound(err) {
			return nil, util.ErrTopicNotFound
		}
		return nil, err
	}
	return topic, nil
}

type TopicInput struct {
	Name        string `json:"name" binding:"required,max=100"`
	Description string `json:"description" binding:"max=500"`
}

func (s *TopicService) Create(input *TopicInput) (*model.Topic, error) {
	topic := &model.Topic{Name: input.Name, Description: input.Description}
	if err := s.repo.Create(topic); err != nil {
		return nil, err
	}
	return topic, nil
}

func (s *TopicService) Update(id uint, input *TopicInput) (*model.Topic, error) {
	topic, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	topic.Name = input.Name
	topic.Description = input.Description
	if err := s.repo.Update(topic); err != nil {
		return nil, err
	}
	return topic, nil
}

// Delete removes a topic unless questions or exams still point at it.
func (s *TopicService) Delete(id uint) error {
	topic, err := s.Get(id)
	if err != nil {
		return err
	}

	questions, err := s.repo.CountQuestions(id)
	if err != nil {
		return err
	}
	if questions > 0 {
		return util.ErrTopicReferenced
	}

	exams, err := s.repo.CountExams(id)
	if err != nil {
		return err
	}
	if exams > 0 {
		return util.ErrTopicReferenced
	}

	return s.repo.Delete(topic)
}
