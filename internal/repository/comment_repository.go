package repository

import (
	"quizhub_backend/internal/model"

	"gorm.io/gorm"
)

type CommentRepository struct {
	DB *gorm.DB
}

func NewCommentRepository(db *gorm.DB) *CommentRepository {
	return &CommentRepository{DB: db}
}

func (r *CommentRepository) ListByExam(examID uint, page, limit int) ([]model.Comment, int64, error) {
	query := r.DB.Model(&model.Comment{}).Where("exam_id = ?", examID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var comments []model.Comment
	err := query.Preload("User").
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&comments).Error
	return comments, total, err
}

func (r *CommentRepository) FindByID(id uint) (*model.Comment, error) {
	var comment model.Comment
	err := r.DB.Preload("User").First(&comment, id).Error
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

func (r *CommentRepository) Create(comment *model.Comment) error {
	return r.DB.Create(comment).Error
}

func (r *CommentRepository) Update(comment *model.Comment) error {
	return r.DB.Save(comment).Error
}

func (r *CommentRepository) Delete(comment *model.Comment) error {
	return r.DB.Delete(comment).Error
}
