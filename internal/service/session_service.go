package service

import (
	"math"
	"math/rand"
	"strings"
	"time"

	"quizhub_backend/internal/model"
	"quizhub_backend/internal/util"
	"quizhub_backend/pkg/monitoring"

	"go.uber.org/zap"
)

// ExamStore is the slice of exam lookups the session engine needs.
type ExamStore interface {
	FindByID(id uint) (*model.Exam, error)
}

// QuestionStore supplies the sampling pool.
type QuestionStore interface {
	ListByTopic(topicID uint) ([]model.Question, error)
}

// SessionStore persists sessions and their answer slots. Lookups that can miss
// return (nil, nil) so callers can map absence without depending on the driver.
type SessionStore interface {
	FindInProgress(userID, examID uint) (*model.ExamSession, error)
	HasCompleted(userID, examID uint) (bool, error)
	CreateWithAnswers(session *model.ExamSession, answers []model.ExamSessionAnswer) error
	FindOwned(id uint) (*model.ExamSession, error)
	FindAnswer(sessionID, questionID uint) (*model.ExamSessionAnswer, error)
	SaveAnswer(answer *model.ExamSessionAnswer) error
	Complete(session *model.ExamSession, answers []model.ExamSessionAnswer) error
	ListByUser(userID uint, page, limit int) ([]model.ExamSession, int64, error)
	ListAll(examID uint, page, limit int) ([]model.ExamSession, int64, error)
}

// SessionQuestion is a question as shown during an attempt: no correct answer.
type SessionQuestion struct {
	ID       uint   `json:"id"`
	Content  string `json:"content"`
	ImageURL string `json:"imageUrl,omitempty"`
	AudioURL string `json:"audioUrl,omitempty"`
	OptionA  string `json:"optionA"`
	OptionB  string `json:"optionB"`
	OptionC  string `json:"optionC,omitempty"`
	OptionD  string `json:"optionD,omitempty"`
	Selected string `json:"selected,omitempty"`
}

// SessionView is what the client gets back from start: enough to render and
// time the attempt.
type SessionView struct {
	SessionID uint              `json:"sessionId"`
	ExamID    uint              `json:"examId"`
	ExamTitle string            `json:"examTitle"`
	Duration  int               `json:"duration"`
	StartedAt time.Time         `json:"startedAt"`
	Status    string            `json:"status"`
	Questions []SessionQuestion `json:"questions"`
}

// AnswerReview is one graded question in a finished session's report.
type AnswerReview struct {
	QuestionID     uint    `json:"questionId"`
	Content        string  `json:"content"`
	ImageURL       string  `json:"imageUrl,omitempty"`
	AudioURL       string  `json:"audioUrl,omitempty"`
	OptionA        string  `json:"optionA"`
	OptionB        string  `json:"optionB"`
	OptionC        string  `json:"optionC,omitempty"`
	OptionD        string  `json:"optionD,omitempty"`
	SelectedAnswer *string `json:"selectedAnswer"`
	CorrectAnswer  string  `json:"correctAnswer"`
	IsCorrect      bool    `json:"isCorrect"`
}

// ScoreReport is the outcome of a submitted session.
type ScoreReport struct {
	SessionID    uint           `json:"sessionId"`
	ExamID       uint           `json:"examId"`
	Score        float64        `json:"score"`
	CorrectCount int            `json:"correctCount"`
	TotalCount   int            `json:"totalCount"`
	StartedAt    time.Time      `json:"startedAt"`
	SubmittedAt  *time.Time     `json:"submittedAt"`
	Details      []AnswerReview `json:"details"`
}

// ResultSummary is one row in a result listing.
type ResultSummary struct {
	SessionID    uint       `json:"sessionId"`
	ExamID       uint       `json:"examId"`
	ExamTitle    string     `json:"examTitle"`
	UserID       uint       `json:"userId"`
	Username     string     `json:"username,omitempty"`
	Score        float64    `json:"score"`
	CorrectCount int        `json:"correctCount"`
	Status       string     `json:"status"`
	StartedAt    time.Time  `json:"startedAt"`
	SubmittedAt  *time.Time `json:"submittedAt,omitempty"`
}

// SessionService runs the attempt lifecycle: start, record answers, submit.
type SessionService struct {
	exams     ExamStore
	questions QuestionStore
	sessions  SessionStore
	logger    *zap.Logger
	shuffle   func(n int, swap func(i, j int))
}

func NewSessionService(exams ExamStore, questions QuestionStore, sessions SessionStore, logger *zap.Logger) *SessionService {
	return &SessionService{
		exams:     exams,
		questions: questions,
		sessions:  sessions,
		logger:    logger,
		shuffle:   rand.Shuffle,
	}
}

// StartSession opens an attempt at an exam, or resumes the caller's unfinished
// one. The question set is sampled once at creation and frozen.
func (s *SessionService) StartSession(userID, examID uint) (*SessionView, error) {
	exam, err := s.exams.FindByID(examID)
	if err != nil {
		if isNotFound(err) {
			return nil, util.ErrExamNotFound
		}
		return nil, err
	}
	if exam == nil || !IsOpenStatus(exam.Status) {
		return nil, util.ErrExamNotFound
	}

	// Resume before any validation: an unfinished attempt always wins.
	existing, err := s.sessions.FindInProgress(userID, examID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return s.buildSessionView(exam, existing), nil
	}

	if !exam.AllowMultipleAttempts {
		done, err := s.sessions.HasCompleted(userID, examID)
		if err != nil {
			return nil, err
		}
		if done {
			return nil, util.ErrAlreadyCompleted
		}
	}

	if exam.QuestionCount <= 0 {
		return nil, util.ErrBadQuestionCount
	}
	pool, err := s.questions.ListByTopic(exam.TopicID)
	if err != nil {
		return nil, err
	}
	if len(pool) == 0 {
		return nil, util.ErrNoQuestionsInTopic
	}

	picked := s.sampleQuestions(pool, exam.QuestionCount)

	activeExamID := examID
	session := &model.ExamSession{
		UserID:       userID,
		ExamID:       examID,
		ActiveExamID: &activeExamID,
		StartedAt:    time.Now(),
		Status:       model.SessionInProgress,
	}
	answers := make([]model.ExamSessionAnswer, 0, len(picked))
	for i := range picked {
		answers = append(answers, model.ExamSessionAnswer{
			QuestionID: picked[i].ID,
			Question:   &picked[i],
		})
	}

	if err := s.sessions.CreateWithAnswers(session, answers); err != nil {
		if isForeignKeyViolation(err) {
			// The token outlived its user row.
			return nil, util.ErrUnauthorized
		}
		if isDuplicateKey(err) {
			// Lost a concurrent start race; hand back the winner's session.
			winner, ferr := s.sessions.FindInProgress(userID, examID)
			if ferr == nil && winner != nil {
				return s.buildSessionView(exam, winner), nil
			}
		}
		return nil, err
	}

	monitoring.SessionsStarted.Inc()
	s.logger.Info("exam session started",
		zap.Uint("user_id", userID),
		zap.Uint("exam_id", examID),
		zap.Uint("session_id", session.ID),
		zap.Int("question_count", len(answers)))

	return s.buildSessionView(exam, session), nil
}

// RecordAnswer stores one selection and grades it immediately. Overwrites are
// allowed until the session is submitted.
func (s *SessionService) RecordAnswer(userID, sessionID, questionID uint, selected string) (*AnswerReview, error) {
	label, err := normalizeAnswerLabel(selected)
	if err != nil {
		return nil, err
	}

	session, err := s.sessions.FindOwned(sessionID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, util.ErrSessionNotFound
	}
	if session.UserID != userID {
		return nil, util.ErrPermissionDenied
	}
	if session.Status == model.SessionCompleted {
		return nil, util.ErrSessionSubmitted
	}

	answer, err := s.sessions.FindAnswer(sessionID, questionID)
	if err != nil {
		return nil, err
	}
	if answer == nil {
		return nil, util.ErrQuestionNotFound
	}

	correct := false
	if answer.Question != nil {
		correct = strings.EqualFold(label, answer.Question.CorrectAnswer)
	}
	answer.SelectedAnswer = &label
	answer.IsCorrect = &correct

	if err := s.sessions.SaveAnswer(answer); err != nil {
		return nil, err
	}

	review := &AnswerReview{
		QuestionID:     questionID,
		SelectedAnswer: answer.SelectedAnswer,
		IsCorrect:      correct,
	}
	if answer.Question != nil {
		review.Content = answer.Question.Content
		review.CorrectAnswer = answer.Question.CorrectAnswer
	}
	return review, nil
}

// SubmitSession regrades every slot, fixes the score and closes the session.
// Submitting twice fails; a submitted session never changes again.
func (s *SessionService) SubmitSession(userID, sessionID uint) (*ScoreReport, error) {
	session, err := s.sessions.FindOwned(sessionID)
	if err != nil {
		return nil, err
	}
	if session == nil || session.UserID != userID {
		return nil, util.ErrSessionNotFound
	}
	if session.Status == model.SessionCompleted {
		return nil, util.ErrSessionSubmitted
	}
	if len(session.Answers) == 0 {
		return nil, util.ErrEmptySession
	}

	correctCount := 0
	for i := range session.Answers {
		a := &session.Answers[i]
		if a.Question == nil {
			continue
		}
		correct := a.SelectedAnswer != nil && strings.EqualFold(*a.SelectedAnswer, a.Question.CorrectAnswer)
		a.IsCorrect = &correct
		if correct {
			correctCount++
		}
	}

	now := time.Now()
	session.Score = ScaleScore(correctCount, len(session.Answers))
	session.CorrectCount = correctCount
	session.SubmittedAt = &now
	session.Status = model.SessionCompleted
	session.ActiveExamID = nil

	if err := s.sessions.Complete(session, session.Answers); err != nil {
		return nil, err
	}

	monitoring.SessionsSubmitted.Inc()
	s.logger.Info("exam session submitted",
		zap.Uint("user_id", userID),
		zap.Uint("session_id", sessionID),
		zap.Float64("score", session.Score),
		zap.Int("correct", correctCount),
		zap.Int("total", len(session.Answers)))

	return s.buildScoreReport(session), nil
}

// GetResult returns the full graded report for a finished session. The owner
// and administrators may read it.
func (s *SessionService) GetResult(claims *util.Claims, sessionID uint) (*ScoreReport, error) {
	session, err := s.sessions.FindOwned(sessionID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, util.ErrSessionNotFound
	}
	if session.UserID != claims.UserID && !claims.IsAdmin() {
		return nil, util.ErrPermissionDenied
	}
	// Reports carry the correct answers, so nothing is readable before submit.
	if session.Status != model.SessionCompleted {
		return nil, util.ErrSessionInProgress
	}
	return s.buildScoreReport(session), nil
}

// ListMyResults pages the caller's attempt history.
func (s *SessionService) ListMyResults(userID uint, page, limit int) ([]ResultSummary, int64, error) {
	sessions, total, err := s.sessions.ListByUser(userID, page, limit)
	if err != nil {
		return nil, 0, err
	}
	return summarize(sessions), total, nil
}

// ListAllResults pages every attempt for administrators.
func (s *SessionService) ListAllResults(examID uint, page, limit int) ([]ResultSummary, int64, error) {
	sessions, total, err := s.sessions.ListAll(examID, page, limit)
	if err != nil {
		return nil, 0, err
	}
	return summarize(sessions), total, nil
}

// sampleQuestions picks up to count questions uniformly without replacement.
// When the pool is smaller than the configured count, the whole pool is used.
func (s *SessionService) sampleQuestions(pool []model.Question, count int) []model.Question {
	shuffled := make([]model.Question, len(pool))
	copy(shuffled, pool)
	s.shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	if count <= 0 || count > len(shuffled) {
		count = len(shuffled)
	}
	return shuffled[:count]
}

func (s *SessionService) buildSessionView(exam *model.Exam, session *model.ExamSession) *SessionView {
	view := &SessionView{
		SessionID: session.ID,
		ExamID:    exam.ID,
		ExamTitle: exam.Title,
		Duration:  exam.Duration,
		StartedAt: session.StartedAt,
		Status:    session.Status,
		Questions: make([]SessionQuestion, 0, len(session.Answers)),
	}
	for i := range session.Answers {
		a := &session.Answers[i]
		if a.Question == nil {
			continue
		}
		q := SessionQuestion{
			ID:       a.Question.ID,
			Content:  a.Question.Content,
			ImageURL: a.Question.ImageURL,
			AudioURL: a.Question.AudioURL,
			OptionA:  a.Question.OptionA,
			OptionB:  a.Question.OptionB,
			OptionC:  a.Question.OptionC,
			OptionD:  a.Question.OptionD,
		}
		if a.SelectedAnswer != nil {
			q.Selected = *a.SelectedAnswer
		}
		view.Questions = append(view.Questions, q)
	}
	return view
}

func (s *SessionService) buildScoreReport(session *model.ExamSession) *ScoreReport {
	report := &ScoreReport{
		SessionID:    session.ID,
		ExamID:       session.ExamID,
		Score:        session.Score,
		CorrectCount: session.CorrectCount,
		TotalCount:   len(session.Answers),
		StartedAt:    session.StartedAt,
		SubmittedAt:  session.SubmittedAt,
		Details:      make([]AnswerReview, 0, len(session.Answers)),
	}
	for i := range session.Answers {
		a := &session.Answers[i]
		if a.Question == nil {
			continue
		}
		review := AnswerReview{
			QuestionID:     a.QuestionID,
			Content:        a.Question.Content,
			ImageURL:       a.Question.ImageURL,
			AudioURL:       a.Question.AudioURL,
			OptionA:        a.Question.OptionA,
			OptionB:        a.Question.OptionB,
			OptionC:        a.Question.OptionC,
			OptionD:        a.Question.OptionD,
			SelectedAnswer: a.SelectedAnswer,
			CorrectAnswer:  a.Question.CorrectAnswer,
		}
		if a.IsCorrect != nil {
			review.IsCorrect = *a.IsCorrect
		}
		report.Details = append(report.Details, review)
	}
	return report
}

func summarize(sessions []model.ExamSession) []ResultSummary {
	out := make([]ResultSummary, 0, len(sessions))
	for i := range sessions {
		s := &sessions[i]
		r := ResultSummary{
			SessionID:    s.ID,
			ExamID:       s.ExamID,
			UserID:       s.UserID,
			Score:        s.Score,
			CorrectCount: s.CorrectCount,
			Status:       s.Status,
			StartedAt:    s.StartedAt,
			SubmittedAt:  s.SubmittedAt,
		}
		if s.Exam != nil {
			r.ExamTitle = s.Exam.Title
		}
		if s.User != nil {
			r.Username = s.User.Username
		}
		out = append(out, r)
	}
	return out
}

// ScaleScore maps correct/total onto the 0-10 scale, rounded to two decimals.
func ScaleScore(correct, total int) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(correct)/float64(total)*10*100) / 100
}

func isForeignKeyViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "1452") || strings.Contains(msg, "foreign key constraint")
}

func isDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "1062") || strings.Contains(msg, "Duplicate entry")
}
