package service

import (
	"strings"

	"quizhub_backend/internal/model"
	"quizhub_backend/internal/repository"
	"quizhub_backend/internal/util"
)

type CommentService struct {
	repo  *repository.CommentRepository
	exams *repository.ExamRepository
}

func NewCommentService(repo *repository.CommentRepository, exams *repository.ExamRepository) *CommentService {
	return &CommentService{repo: repo, exams: exams}
}

func (s *CommentService) ListByExam(examID uint, page, limit int) ([]model.Comment, int64, error) {
	if _, err := s.exams.FindByID(examID); err != nil {
		if isNotFound(err) {
			return nil, 0, util.ErrExamNotFound
		}
		return nil, 0, err
	}
	return s.repo.ListByExam(examID, page, limit)
}

type CommentInput struct {
	Content string `json:"content" binding:"required"`
}

func (s *CommentService) Create(userID, examID uint, input *CommentInput) (*model.Comment, error) {
	content, err := validateCommentContent(input.Content)
	if err != nil {
		return nil, err
	}
	if _, err := s.exams.FindByID(examID); err != nil {
		if isNotFound(err) {
			return nil, util.ErrExamNotFound
		}
		return nil, err
	}

	comment := &model.Comment{ExamID: examID, UserID: userID, Content: content}
	if err := s.repo.Create(comment); err != nil {
		return nil, err
	}
	return s.repo.FindByID(comment.ID)
}

// Update edits a comment. Only the author or an administrator may do so.
func (s *CommentService) Update(claims *util.Claims, commentID uint, input *CommentInput) (*model.Comment, error) {
	content, err := validateCommentContent(input.Content)
	if err != nil {
		return nil, err
	}

	comment, err := s.repo.FindByID(commentID)
	if err != nil {
		if isNotFound(err) {
			return nil, util.ErrCommentNotFound
		}
		return nil, err
	}
	if comment.UserID != claims.UserID && !claims.IsAdmin() {
		return nil, util.ErrPermissionDenied
	}

	comment.Content = content
	if err := s.repo.Update(comment); err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *CommentService) Delete(claims *util.Claims, commentID uint) error {
	comment, err := s.repo.FindByID(commentID)
	if err != nil {
		if isNotFound(err) {
			return util.ErrCommentNotFound
		}
		return err
	}
	if comment.UserID != claims.UserID && !claims.IsAdmin() {
		return util.ErrPermissionDenied
	}
	return s.repo.Delete(comment)
}

func validateCommentContent(raw string) (string, error) {
	content := strings.TrimSpace(raw)
	if len(content) < 5 || len(content) > 500 {
		return "", util.ErrBadCommentLength
	}
	return content, nil
}
