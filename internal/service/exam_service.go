package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"quizhub_backend/internal/model"
	"quizhub_backend/internal/repository"
	"quizhub_backend/internal/util"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const openExamsCacheKey = "quizhub:open_exams"

// openStatuses are the spellings that count as an open exam. Data entered
// through older admin tools used the Vietnamese forms.
var openStatuses = map[string]bool{
	"open": true,
	"mo":   true,
	"mở":   true,
}

// IsOpenStatus reports whether a stored exam status means the exam accepts
// new sessions. Matching is case-insensitive and ignores surrounding space.
func IsOpenStatus(status string) bool {
	return openStatuses[strings.ToLower(strings.TrimSpace(status))]
}

type ExamService struct {
	repo   *repository.ExamRepository
	topics *repository.TopicRepository
	redis  *redis.Client
	logger *zap.Logger
}

func NewExamService(repo *repository.ExamRepository, topics *repository.TopicRepository, redisClient *redis.Client, logger *zap.Logger) *ExamService {
	return &ExamService{repo: repo, topics: topics, redis: redisClient, logger: logger}
}

func (s *ExamService) List(topicID uint, page, limit int) ([]model.Exam, int64, error) {
	return s.repo.List(topicID, page, limit)
}

// ListOpen returns the exams users may start, served from a short-lived cache
// when one is warm.
func (s *ExamService) ListOpen(ctx context.Context) ([]model.Exam, error) {
	if s.redis != nil {
		if cached, err := s.redis.Get(ctx, openExamsCacheKey).Result(); err == nil {
			var exams []model.Exam
			if jsonErr := json.Unmarshal([]byte(cached), &exams); jsonErr == nil {
				return exams, nil
			}
		}
	}

	all, err := s.repo.ListOpen()
	if err != nil {
		return nil, err
	}
	open := make([]model.Exam, 0, len(all))
	for _, exam := range all {
		if IsOpenStatus(exam.Status) {
			open = append(open, exam)
		}
	}

	if s.redis != nil {
		if payload, err := json.Marshal(open); err == nil {
			if err := s.redis.Set(ctx, openExamsCacheKey, payload, time.Minute).Err(); err != nil {
				s.logger.Warn("open exam cache write failed", zap.Error(err))
			}
		}
	}
	return open, nil
}

func (s *ExamService) Get(id uint) (*model.Exam, error) {
	exam, err := s.repo.FindByID(id)
	if err != nil {
		if isNotFound(err) {
			return nil, util.ErrExamNotFound
		}
		return nil, err
	}
	return exam, nil
}

type ExamInput struct {
	Title                 string `json:"title" binding:"required"`
	TopicID               uint   `json:"topicId" binding:"required"`
	QuestionCount         int    `json:"questionCount" binding:"required,gt=0"`
	Duration              int    `json:"duration" binding:"required,gt=0"`
	Status                string `json:"status"`
	AllowMultipleAttempts *bool  `json:"allowMultipleAttempts"`
}

func (s *ExamService) Create(ctx context.Context, input *ExamInput) (*model.Exam, error) {
	if _, err := s.topics.FindByID(input.TopicID); err != nil {
		if isNotFound(err) {
			return nil, util.ErrTopicNotFound
		}
		return nil, err
	}

	exam := &model.Exam{
		Title:                 input.Title,
		TopicID:               input.TopicID,
		QuestionCount:         input.QuestionCount,
		Duration:              input.Duration,
		Status:                input.Status,
		AllowMultipleAttempts: true,
	}
	if exam.Status == "" {
		exam.Status = "Open"
	}
	if input.AllowMultipleAttempts != nil {
		exam.AllowMultipleAttempts = *input.AllowMultipleAttempts
	}

	if err := s.repo.Create(exam); err != nil {
		return nil, err
	}
	s.invalidateOpenCache(ctx)
	return exam, nil
}

func (s *ExamService) Update(ctx context.Context, id uint, input *ExamInput) (*model.Exam, error) {
	exam, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if _, err := s.topics.FindByID(input.TopicID); err != nil {
		if isNotFound(err) {
			return nil, util.ErrTopicNotFound
		}
		return nil, err
	}

	exam.Title = input.Title
	exam.TopicID = input.TopicID
	exam.QuestionCount = input.QuestionCount
	exam.Duration = input.Duration
	if input.Status != "" {
		exam.Status = input.Status
	}
	if input.AllowMultipleAttempts != nil {
		exam.AllowMultipleAttempts = *input.AllowMultipleAttempts
	}

	if err := s.repo.Update(exam); err != nil {
		return nil, err
	}
	s.invalidateOpenCache(ctx)
	return exam, nil
}

// Delete removes an exam unless sessions reference it.
func (s *ExamService) Delete(ctx context.Context, id uint) error {
	exam, err := s.Get(id)
	if err != nil {
		return err
	}

	sessions, err := s.repo.CountSessions(id)
	if err != nil {
		return err
	}
	if sessions > 0 {
		return util.ErrExamReferenced
	}

	if err := s.repo.Delete(exam); err != nil {
		return err
	}
	s.invalidateOpenCache(ctx)
	return nil
}

func (s *ExamService) invalidateOpenCache(ctx context.Context) {
	if s.redis == nil {
		return
	}
	if err := s.redis.Del(ctx, openExamsCacheKey).Err(); err != nil {
		s.logger.Warn("open exam cache invalidation failed", zap.Error(err))
	}
}

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
