package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"quizhub_backend/internal/config"
	"quizhub_backend/internal/model"
	"quizhub_backend/internal/util"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

// ChatService explains a graded session in natural language. It calls an
// OpenAI-compatible provider when one is configured and degrades to a local
// summary when the provider is absent, slow or failing.
type ChatService struct {
	sessions SessionStore
	exams    ExamStore
	client   *openai.Client
	cfg      config.AIConfig
	logger   *zap.Logger
}

func NewChatService(sessions SessionStore, exams ExamStore, cfg config.AIConfig, logger *zap.Logger) *ChatService {
	var client *openai.Client
	if cfg.APIKey != "" {
		clientCfg := openai.DefaultConfig(cfg.APIKey)
		if cfg.BaseURL != "" {
			clientCfg.BaseURL = cfg.BaseURL
		}
		client = openai.NewClientWithConfig(clientCfg)
	}
	return &ChatService{sessions: sessions, exams: exams, client: client, cfg: cfg, logger: logger}
}

// ExplanationResult carries the answer plus where it came from, so clients can
// label provider output differently from the local fallback.
type ExplanationResult struct {
	Explanation string `json:"explanation"`
	Source      string `json:"source"` // "provider" or "fallback"
}

// ExplainSession answers a free-form question about one of the caller's
// completed sessions. Administrators may ask about any session.
func (s *ChatService) ExplainSession(ctx context.Context, claims *util.Claims, sessionID uint, question string) (*ExplanationResult, error) {
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
	// The transcript and summary both disclose correct answers; an unfinished
	// attempt must stay opaque.
	if session.Status != model.SessionCompleted {
		return nil, util.ErrSessionInProgress
	}

	exam, err := s.exams.FindByID(session.ExamID)
	if err != nil {
		if !isNotFound(err) {
			return nil, err
		}
		exam = nil
	}

	if s.client == nil {
		return &ExplanationResult{
			Explanation: FallbackSummary(session, exam),
			Source:      "fallback",
		}, nil
	}

	timeout := time.Duration(s.cfg.TimeoutSeconds) * time.Second
	callCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	resp, err := s.client.CreateChatCompletion(callCtx, openai.ChatCompletionRequest{
		Model: s.cfg.Model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role: openai.ChatMessageRoleSystem,
				Content: "You are a tutor reviewing a student's quiz attempt. " +
					"Explain mistakes briefly and concretely, in the language the student writes in.",
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: buildSessionTranscript(session, exam) + "\n\nStudent question: " + question,
			},
		},
	})
	if err != nil {
		s.logger.Warn("ai provider call failed, using local summary",
			zap.Uint("session_id", sessionID), zap.Error(err))
		return &ExplanationResult{
			Explanation: FallbackSummary(session, exam),
			Source:      "fallback",
		}, nil
	}
	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		return &ExplanationResult{
			Explanation: FallbackSummary(session, exam),
			Source:      "fallback",
		}, nil
	}

	return &ExplanationResult{
		Explanation: resp.Choices[0].Message.Content,
		Source:      "provider",
	}, nil
}

// buildSessionTranscript renders the attempt as plain text for the provider
// prompt.
func buildSessionTranscript(session *model.ExamSession, exam *model.Exam) string {
	var b strings.Builder
	if exam != nil {
		fmt.Fprintf(&b, "Exam: %s\n", exam.Title)
	}
	fmt.Fprintf(&b, "Status: %s, score %.2f/10, %d of %d correct\n",
		session.Status, session.Score, session.CorrectCount, len(session.Answers))

	for i := range session.Answers {
		a := &session.Answers[i]
		if a.Question == nil {
			continue
		}
		q := a.Question
		fmt.Fprintf(&b, "\nQ%d: %s\nA) %s\nB) %s\n", i+1, q.Content, q.OptionA, q.OptionB)
		if q.OptionC != "" {
			fmt.Fprintf(&b, "C) %s\n", q.OptionC)
		}
		if q.OptionD != "" {
			fmt.Fprintf(&b, "D) %s\n", q.OptionD)
		}
		if a.SelectedAnswer != nil {
			fmt.Fprintf(&b, "Student answered: %s\n", *a.SelectedAnswer)
		} else {
			b.WriteString("Student answered: (blank)\n")
		}
		fmt.Fprintf(&b, "Correct answer: %s\n", q.CorrectAnswer)
	}
	return b.String()
}

// FallbackSummary produces a deterministic recap of the attempt when no AI
// provider is reachable.
func FallbackSummary(session *model.ExamSession, exam *model.Exam) string {
	var b strings.Builder
	title := "this exam"
	if exam != nil {
		title = fmt.Sprintf("%q", exam.Title)
	}

	fmt.Fprintf(&b, "You scored %.2f/10 on %s, answering %d of %d questions correctly.\n",
		session.Score, title, session.CorrectCount, len(session.Answers))

	var missed []string
	for i := range session.Answers {
		a := &session.Answers[i]
		if a.Question == nil {
			continue
		}
		if a.IsCorrect == nil || !*a.IsCorrect {
			missed = append(missed, fmt.Sprintf("Q%d: the correct answer is %s (%s)",
				i+1, a.Question.CorrectAnswer, a.Question.Content))
		}
	}
	if len(missed) > 0 {
		b.WriteString("Questions to review:\n")
		for _, m := range missed {
			b.WriteString("- " + m + "\n")
		}
	}
	return b.String()
}
