package repository

import (
	"errors"

	"quizhub_backend/internal/model"

	"gorm.io/gorm"
)

type SessionRepository struct {
	DB *gorm.DB
}

func NewSessionRepository(db *gorm.DB) *SessionRepository {
	return &SessionRepository{DB: db}
}

// FindInProgress returns the caller's unfinished session for the exam with
// answers and questions loaded, or nil when there is none.
func (r *SessionRepository) FindInProgress(userID, examID uint) (*model.ExamSession, error) {
	var session model.ExamSession
	err := r.DB.Preload("Answers.Question").
		Where("user_id = ? AND exam_id = ? AND status = ?", userID, examID, model.SessionInProgress).
		First(&session).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *SessionRepository) HasCompleted(userID, examID uint) (bool, error) {
	var count int64
	err := r.DB.Model(&model.ExamSession{}).
		Where("user_id = ? AND exam_id = ? AND status = ?", userID, examID, model.SessionCompleted).
		Count(&count).Error
	return count > 0, err
}

// CreateWithAnswers persists the session row together with its answer slots.
// Either everything lands or nothing does.
func (r *SessionRepository) CreateWithAnswers(session *model.ExamSession, answers []model.ExamSessionAnswer) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(session).Error; err != nil {
			return err
		}
		for i := range answers {
			answers[i].SessionID = session.ID
		}
		if err := tx.Create(&answers).Error; err != nil {
			return err
		}
		session.Answers = answers
		return nil
	})
}

// FindOwned returns the session with answers and questions loaded, or nil when
// no such session exists.
func (r *SessionRepository) FindOwned(id uint) (*model.ExamSession, error) {
	var session model.ExamSession
	err := r.DB.Preload("Answers.Question").First(&session, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// FindAnswer returns the answer slot for (session, question) with its question
// loaded, or nil when the question is not part of the session.
func (r *SessionRepository) FindAnswer(sessionID, questionID uint) (*model.ExamSessionAnswer, error) {
	var answer model.ExamSessionAnswer
	err := r.DB.Preload("Question").
		Where("session_id = ? AND question_id = ?", sessionID, questionID).
		First(&answer).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &answer, nil
}

func (r *SessionRepository) SaveAnswer(answer *model.ExamSessionAnswer) error {
	return r.DB.Save(answer).Error
}

// Complete writes the final score and the regraded answer rows in one
// transaction.
func (r *SessionRepository) Complete(session *model.ExamSession, answers []model.ExamSessionAnswer) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(session).Error; err != nil {
			return err
		}
		for i := range answers {
			if err := tx.Save(&answers[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// ListByUser pages a user's sessions, newest first, with exam titles loaded.
func (r *SessionRepository) ListByUser(userID uint, page, limit int) ([]model.ExamSession, int64, error) {
	query := r.DB.Model(&model.ExamSession{}).Where("user_id = ?", userID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var sessions []model.ExamSession
	err := query.Preload("Exam").
		Order("started_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&sessions).Error
	return sessions, total, err
}

// ListAll pages every session for administrators, optionally filtered by exam.
func (r *SessionRepository) ListAll(examID uint, page, limit int) ([]model.ExamSession, int64, error) {
	query := r.DB.Model(&model.ExamSession{})
	if examID > 0 {
		query = query.Where("exam_id = ?", examID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var sessions []model.ExamSession
	err := query.Preload("Exam").Preload("User").
		Order("started_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&sessions).Error
	return sessions, total, err
}
