package repository

import (
	"quizhub_backend/internal/model"

	"gorm.io/gorm"
)

type ContactRepository struct {
	DB *gorm.DB
}

func NewContactRepository(db *gorm.DB) *ContactRepository {
	return &ContactRepository{DB: db}
}

func (r *ContactRepository) List(page, limit int) ([]model.ContactMessage, int64, error) {
	query := r.DB.Model(&model.ContactMessage{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var messages []model.ContactMessage
	err := query.Preload("User").
		Order("sent_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&messages).Error
	return messages, total, err
}

func (r *ContactRepository) ListByUser(userID uint, page, limit int) ([]model.ContactMessage, int64, error) {
	query := r.DB.Model(&model.ContactMessage{}).Where("user_id = ?", userID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var messages []model.ContactMessage
	err := query.Order("sent_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&messages).Error
	return messages, total, err
}

func (r *ContactRepository) FindByID(id uint) (*model.ContactMessage, error) {
	var message model.ContactMessage
	err := r.DB.Preload("User").First(&message, id).Error
	if err != nil {
		return nil, err
	}
	return &message, nil
}

func (r *ContactRepository) Create(message *model.ContactMessage) error {
	return r.DB.Create(message).Error
}

func (r *ContactRepository) Update(message *model.ContactMessage) error {
	return r.DB.Save(message).Error
}

func (r *ContactRepository) Delete(message *model.ContactMessage) error {
	return r.DB.Delete(message).Error
}
