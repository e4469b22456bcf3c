package controller

import (
	"errors"
	"net/http"
	"strconv"

	"quizhub_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// respondError maps service-layer sentinel errors onto HTTP statuses. Anything
// unrecognized is logged and reported as a 500.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrBadAnswerLabel),
		errors.Is(err, util.ErrBadQuestionCount),
		errors.Is(err, util.ErrBadCommentLength),
		errors.Is(err, util.ErrNoQuestionsInTopic),
		errors.Is(err, util.ErrEmptySession),
		errors.Is(err, util.ErrSessionSubmitted),
		errors.Is(err, util.ErrSessionInProgress),
		errors.Is(err, util.ErrUnsupportedMedia),
		errors.Is(err, util.ErrRoleNotFound),
		errors.Is(err, util.ErrResetTokenInvalid):
		util.BadRequest(c, err.Error())

	case errors.Is(err, util.ErrUnauthorized),
		errors.Is(err, util.ErrInvalidCredentials):
		util.Error(c, http.StatusUnauthorized, err.Error())

	case errors.Is(err, util.ErrPermissionDenied),
		errors.Is(err, util.ErrAccountLocked):
		util.Error(c, http.StatusForbidden, err.Error())

	case errors.Is(err, util.ErrUserNotFound),
		errors.Is(err, util.ErrTopicNotFound),
		errors.Is(err, util.ErrQuestionNotFound),
		errors.Is(err, util.ErrExamNotFound),
		errors.Is(err, util.ErrSessionNotFound),
		errors.Is(err, util.ErrCommentNotFound),
		errors.Is(err, util.ErrContactNotFound):
		util.Error(c, http.StatusNotFound, err.Error())

	case errors.Is(err, util.ErrUsernameTaken),
		errors.Is(err, util.ErrEmailRegistered),
		errors.Is(err, util.ErrAlreadyCompleted),
		errors.Is(err, util.ErrTopicReferenced),
		errors.Is(err, util.ErrQuestionInUse),
		errors.Is(err, util.ErrExamReferenced),
		errors.Is(err, util.ErrUserHasRecords):
		util.Conflict(c, err.Error())

	default:
		util.LogInternalError(c, err)
	}
}

// pagination pulls page/limit query params with sane bounds.
func pagination(c *gin.Context) (page, limit int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "10"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}
	return page, limit
}

// pathID parses a :id style path parameter.
func pathID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		util.BadRequest(c, "invalid "+name)
		return 0, false
	}
	return uint(id), true
}
