package service

import (
	"fmt"
	"io"
	"strings"

	"quizhub_backend/internal/model"
	"quizhub_backend/internal/repository"
	"quizhub_backend/internal/util"

	"github.com/xuri/excelize/v2"
)

type QuestionService struct {
	repo   *repository.QuestionRepository
	topics *repository.TopicRepository
}

func NewQuestionService(repo *repository.QuestionRepository, topics *repository.TopicRepository) *QuestionService {
	return &QuestionService{repo: repo, topics: topics}
}

func (s *QuestionService) List(topicID uint, page, limit int) ([]model.Question, int64, error) {
	return s.repo.List(topicID, page, limit)
}

func (s *QuestionService) Get(id uint) (*model.Question, error) {
	question, err := s.repo.FindByID(id)
	if err != nil {
		if isNotFound(err) {
			return nil, util.ErrQuestionNotFound
		}
		return nil, err
	}
	return question, nil
}

type QuestionInput struct {
	Content       string `json:"content" binding:"required"`
	ImageURL      string `json:"imageUrl"`
	AudioURL      string `json:"audioUrl"`
	OptionA       string `json:"optionA" binding:"required"`
	OptionB       string `json:"optionB" binding:"required"`
	OptionC       string `json:"optionC"`
	OptionD       string `json:"optionD"`
	CorrectAnswer string `json:"correctAnswer" binding:"required"`
	TopicID       uint   `json:"topicId" binding:"required"`
}

func (s *QuestionService) Create(input *QuestionInput) (*model.Question, error) {
	label, err := normalizeAnswerLabel(input.CorrectAnswer)
	if err != nil {
		return nil, err
	}
	if _, err := s.topics.FindByID(input.TopicID); err != nil {
		if isNotFound(err) {
			return nil, util.ErrTopicNotFound
		}
		return nil, err
	}

	question := &model.Question{
		Content:       input.Content,
		ImageURL:      input.ImageURL,
		AudioURL:      input.AudioURL,
		OptionA:       input.OptionA,
		OptionB:       input.OptionB,
		OptionC:       input.OptionC,
		OptionD:       input.OptionD,
		CorrectAnswer: label,
		TopicID:       input.TopicID,
	}
	if err := s.repo.Create(question); err != nil {
		return nil, err
	}
	return question, nil
}

func (s *QuestionService) Update(id uint, input *QuestionInput) (*model.Question, error) {
	question, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	label, err := normalizeAnswerLabel(input.CorrectAnswer)
	if err != nil {
		return nil, err
	}
	if _, err := s.topics.FindByID(input.TopicID); err != nil {
		if isNotFound(err) {
			return nil, util.ErrTopicNotFound
		}
		return nil, err
	}

	question.Content = input.Content
	question.ImageURL = input.ImageURL
	question.AudioURL = input.AudioURL
	question.OptionA = input.OptionA
	question.OptionB = input.OptionB
	question.OptionC = input.OptionC
	question.OptionD = input.OptionD
	question.CorrectAnswer = label
	question.TopicID = input.TopicID

	if err := s.repo.Update(question); err != nil {
		return nil, err
	}
	return question, nil
}

// Delete removes a question unless past sessions recorded it. Deleting those
// would punch holes in reviewable results.
func (s *QuestionService) Delete(id uint) error {
	question, err := s.Get(id)
	if err != nil {
		return err
	}

	used, err := s.repo.CountSessionAnswers(id)
	if err != nil {
		return err
	}
	if used > 0 {
		return util.ErrQuestionInUse
	}

	return s.repo.Delete(question)
}

// RowError describes why one spreadsheet row was skipped during import.
type RowError struct {
	Row    int    `json:"row"`
	Reason string `json:"reason"`
}

// ImportResult reports how an xlsx import went. Valid rows are inserted even
// when other rows fail.
type ImportResult struct {
	Imported int        `json:"imported"`
	Skipped  int        `json:"skipped"`
	Errors   []RowError `json:"errors,omitempty"`
}

// ImportFromExcel bulk-loads questions from an xlsx sheet into a topic.
// Expected columns: content, option A, option B, option C, option D, correct
// label. The first row is treated as a header.
func (s *QuestionService) ImportFromExcel(reader io.Reader, topicID uint) (*ImportResult, error) {
	if _, err := s.topics.FindByID(topicID); err != nil {
		if isNotFound(err) {
			return nil, util.ErrTopicNotFound
		}
		return nil, err
	}

	f, err := excelize.OpenReader(reader)
	if err != nil {
		return nil, fmt.Errorf("open spreadsheet: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("spreadsheet has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}

	result := &ImportResult{}
	var questions []model.Question
	for i, row := range rows {
		if i == 0 {
			continue
		}
		question, rowErr := parseQuestionRow(i+1, row, topicID)
		if rowErr != nil {
			result.Skipped++
			result.Errors = append(result.Errors, *rowErr)
			continue
		}
		questions = append(questions, *question)
	}

	if err := s.repo.CreateBatch(questions); err != nil {
		return nil, err
	}
	result.Imported = len(questions)
	return result, nil
}

// parseQuestionRow maps one sheet row onto a question, or explains why it
// cannot be imported.
func parseQuestionRow(rowNum int, cells []string, topicID uint) (*model.Question, *RowError) {
	cell := func(i int) string {
		if i < len(cells) {
			return strings.TrimSpace(cells[i])
		}
		return ""
	}

	content := cell(0)
	optionA := cell(1)
	optionB := cell(2)
	optionC := cell(3)
	optionD := cell(4)
	correct := cell(5)

	if content == "" {
		return nil, &RowError{Row: rowNum, Reason: "question content is empty"}
	}
	if optionA == "" || optionB == "" {
		return nil, &RowError{Row: rowNum, Reason: "options A and B are required"}
	}
	label, err := normalizeAnswerLabel(correct)
	if err != nil {
		return nil, &RowError{Row: rowNum, Reason: "correct answer must be one of A, B, C, D"}
	}
	if (label == "C" && optionC == "") || (label == "D" && optionD == "") {
		return nil, &RowError{Row: rowNum, Reason: "correct answer points at an empty option"}
	}

	return &model.Question{
		Content:       content,
		OptionA:       optionA,
		OptionB:       optionB,
		OptionC:       optionC,
		OptionD:       optionD,
		CorrectAnswer: label,
		TopicID:       topicID,
	}, nil
}

// normalizeAnswerLabel uppercases and validates a single answer label.
func normalizeAnswerLabel(raw string) (string, error) {
	label := strings.ToUpper(strings.TrimSpace(raw))
	if len(label) != 1 || label[0] < 'A' || label[0] > 'D' {
		return "", util.ErrBadAnswerLabel
	}
	return label, nil
}
