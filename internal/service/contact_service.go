package service

import (
	"time"

	"quizhub_backend/internal/model"
	"quizhub_backend/internal/repository"
	"quizhub_backend/internal/util"
)

type ContactService struct {
	repo *repository.ContactRepository
}

func NewContactService(repo *repository.ContactRepository) *ContactService {
	return &ContactService{repo: repo}
}

type ContactInput struct {
	Subject string `json:"subject" binding:"required,max=200"`
	Content string `json:"content" binding:"required,max=2000"`
}

func (s *ContactService) Create(userID uint, input *ContactInput) (*model.ContactMessage, error) {
	message := &model.ContactMessage{
		UserID:  userID,
		Subject: input.Subject,
		Content: input.Content,
		SentAt:  time.Now(),
	}
	if err := s.repo.Create(message); err != nil {
		return nil, err
	}
	return message, nil
}

func (s *ContactService) List(page, limit int) ([]model.ContactMessage, int64, error) {
	return s.repo.List(page, limit)
}

func (s *ContactService) ListMine(userID uint, page, limit int) ([]model.ContactMessage, int64, error) {
	return s.repo.ListByUser(userID, page, limit)
}

func (s *ContactService) Get(id uint) (*model.ContactMessage, error) {
	message, err := s.repo.FindByID(id)
	if err != nil {
		if isNotFound(err) {
			return nil, util.ErrContactNotFound
		}
		return nil, err
	}
	return message, nil
}

func (s *ContactService) Update(id uint, claims *util.Claims, input *ContactInput) (*model.ContactMessage, error) {
	message, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if message.UserID != claims.UserID && !claims.IsAdmin() {
		return nil, util.ErrPermissionDenied
	}
	message.Subject = input.Subject
	message.Content = input.Content
	if err := s.repo.Update(message); err != nil {
		return nil, err
	}
	return message, nil
}

func (s *ContactService) Delete(id uint, claims *util.Claims) error {
	message, err := s.Get(id)
	if err != nil {
		return err
	}
	if message.UserID != claims.UserID && !claims.IsAdmin() {
		return util.ErrPermissionDenied
	}
	return s.repo.Delete(message)
}
