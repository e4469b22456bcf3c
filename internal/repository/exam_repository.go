package repository

import (
	"quizhub_backend/internal/model"

	"gorm.io/gorm"
)

type ExamRepository struct {
	DB *gorm.DB
}

func NewExamRepository(db *gorm.DB) *ExamRepository {
	return &ExamRepository{DB: db}
}

func (r *ExamRepository) List(topicID uint, page, limit int) ([]model.Exam, int64, error) {
	query := r.DB.Model(&model.Exam{})
	if topicID > 0 {
		query = query.Where("topic_id = ?", topicID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var exams []model.Exam
	err := query.Preload("Topic").
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&exams).Error
	return exams, total, err
}

// ListOpen returns every exam whose status counts as open, regardless of how
// the status value was spelled when the exam was saved.
func (r *ExamRepository) ListOpen() ([]model.Exam, error) {
	var exams []model.Exam
	err := r.DB.Preload("Topic").Order("created_at DESC").Find(&exams).Error
	return exams, err
}

func (r *ExamRepository) FindByID(id uint) (*model.Exam, error) {
	var exam model.Exam
	err := r.DB.Preload("Topic").First(&exam, id).Error
	if err != nil {
		return nil, err
	}
	return &exam, nil
}

func (r *ExamRepository) Create(exam *model.Exam) error {
	return r.DB.Create(exam).Error
}

func (r *ExamRepository) Update(exam *model.Exam) error {
	return r.DB.Save(exam).Error
}

func (r *ExamRepository) Delete(exam *model.Exam) error {
	return r.DB.Delete(exam).Error
}

func (r *ExamRepository) CountSessions(examID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.ExamSession{}).Where("exam_id = ?", examID).Count(&count).Error
	return count, err
}

func (r *ExamRepository) CountComments(examID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.Comment{}).Where("exam_id = ?", examID).Count(&count).Error
	return count, err
}
