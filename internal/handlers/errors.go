package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/14kear/online_polls/internal/services/polls"
	"github.com/14kear/sso-prettyslog/slogpretty/errors"
	"github.com/gin-gonic/gin"
)

const (
	msgNoPermission = "Sorry but you don't have permission to do that!"
	msgAlreadyVoted = "You already voted on this poll!"
	msgNoChoice     = "No choice selected!"
	msgBadMethod    = "Invalid request method."
)

// writeError maps a service error onto an HTTP response. Unknown errors are
// logged and answered with a generic 500.
func writeError(c *gin.Context, log *slog.Logger, err error) {
	var verr *polls.ValidationError

	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"errors": verr.Fields})
	case errors.Is(err, polls.ErrPermissionDenied):
		c.String(http.StatusForbidden, msgNoPermission)
	case errors.Is(err, polls.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "only the owner of the poll can do that", "redirect": "/"})
	case errors.Is(err, polls.ErrPollNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "poll not found"})
	case errors.Is(err, polls.ErrChoiceNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "choice not found"})
	case errors.Is(err, polls.ErrDuplicateVote):
		c.JSON(http.StatusConflict, gin.H{"warning": msgAlreadyVoted, "redirect": "/polls"})
	case errors.Is(err, polls.ErrInvalidChoice):
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid choice"})
	case errors.Is(err, polls.ErrPollInactive):
		c.JSON(http.StatusConflict, gin.H{"error": "this poll has ended"})
	case errors.Is(err, polls.ErrTooFewChoices):
		c.JSON(http.StatusConflict, gin.H{"error": "a poll cannot have fewer choices"})
	default:
		log.Error("request failed", slog.String("path", c.FullPath()), sl.Err(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

// writeBindError answers a body that failed to bind.
func writeBindError(c *gin.Context, err error) {
	if fields, ok := fieldErrors(err); ok {
		c.JSON(http.StatusBadRequest, gin.H{"errors": fields})
		return
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
}

// paramID reads a positive integer path parameter. A malformed id answers 404
// since no such resource can exist.
func paramID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return 0, false
	}
	return id, true
}
