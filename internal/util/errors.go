package util

import "errors"

var (
	ErrUnauthorized       = errors.New("unauthorized")
	ErrPermissionDenied   = errors.New("permission denied")
	ErrUserNotFound       = errors.New("user not found")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrEmailRegistered    = errors.New("email already registered")
	ErrAccountLocked      = errors.New("account locked, contact an administrator")
	ErrInvalidCredentials = errors.New("invalid credentials")

	ErrTopicNotFound    = errors.New("topic not found")
	ErrTopicReferenced  = errors.New("topic has questions or exams attached")
	ErrQuestionNotFound = errors.New("question not found")
	ErrQuestionInUse    = errors.New("question is referenced by exam sessions")
	ErrExamNotFound     = errors.New("exam not found or not open")
	ErrExamReferenced   = errors.New("exam has sessions attached")

	ErrSessionNotFound    = errors.New("session not found")
	ErrAlreadyCompleted   = errors.New("exam already completed")
	ErrSessionSubmitted   = errors.New("session already submitted")
	ErrSessionInProgress  = errors.New("session not yet submitted")
	ErrNoQuestionsInTopic = errors.New("topic has no questions")
	ErrBadQuestionCount   = errors.New("exam question count is not configured")
	ErrBadAnswerLabel     = errors.New("selected answer must be one of A, B, C, D")
	ErrEmptySession       = errors.New("session has no questions")

	ErrCommentNotFound  = errors.New("comment not found")
	ErrBadCommentLength = errors.New("comment must be between 5 and 500 characters")
	ErrContactNotFound  = errors.New("contact message not found")
	ErrUserHasRecords   = errors.New("user has exam sessions or contact messages")
	ErrRoleNotFound     = errors.New("role does not exist")

	ErrResetTokenInvalid = errors.New("reset token is invalid or expired")
	ErrUnsupportedMedia  = errors.New("unsupported or unreadable media file")
)
