package repository

import (
	"quizhub_backend/internal/model"

	"gorm.io/gorm"
)

type QuestionRepository struct {
	DB *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) *QuestionRepository {
	return &QuestionRepository{DB: db}
}

// List pages questions, optionally filtered by topic.
func (r *QuestionRepository) List(topicID uint, page, limit int) ([]model.Question, int64, error) {
	query := r.DB.Model(&model.Question{})
	if topicID > 0 {
		query = query.Where("topic_id = ?", topicID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var questions []model.Question
	err := query.Preload("Topic").
		Order("id DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&questions).Error
	return questions, total, err
}

func (r *QuestionRepository) FindByID(id uint) (*model.Question, error) {
	var question model.Question
	err := r.DB.Preload("Topic").First(&question, id).Error
	if err != nil {
		return nil, err
	}
	return &question, nil
}

func (r *QuestionRepository) ListByTopic(topicID uint) ([]model.Question, error) {
	var questions []model.Question
	err := r.DB.Where("topic_id = ?", topicID).Find(&questions).Error
	return questions, err
}

func (r *QuestionRepository) Create(question *model.Question) error {
	return r.DB.Create(question).Error
}

// CreateBatch inserts imported questions in one transaction so a partial
// import never lands.
func (r *QuestionRepository) CreateBatch(questions []model.Question) error {
	if len(questions) == 0 {
		return nil
	}
	return r.DB.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&questions).Error
	})
}

func (r *QuestionRepository) Update(question *model.Question) error {
	return r.DB.Save(question).Error
}

func (r *QuestionRepository) Delete(question *model.Question) error {
	return r.DB.Delete(question).Error
}

// CountSessionAnswers reports how many recorded session answers reference the
// question. A non-zero count blocks deletion so past results stay reviewable.
func (r *QuestionRepository) CountSessionAnswers(questionID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.ExamSessionAnswer{}).Where("question_id = ?", questionID).Count(&count).Error
	return count, err
}
