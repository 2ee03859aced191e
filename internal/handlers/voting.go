package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/14kear/online_polls/internal/middleware"
	"github.com/14kear/online_polls/internal/services/polls"
	"github.com/gin-gonic/gin"
)

type VoteRequest struct {
	Choice json.Number `form:"choice" json:"choice"`
}

// choiceID returns 0 when nothing was selected and -1 for a value that can
// never name a choice.
func (r VoteRequest) choiceID() int64 {
	if r.Choice == "" {
		return 0
	}
	id, err := strconv.ParseInt(r.Choice.String(), 10, 64)
	if err != nil || id <= 0 {
		return -1
	}
	return id
}

func (h *PollsHandler) Vote(c *gin.Context) {
	if c.Request.Method != http.MethodPost {
		c.String(http.StatusBadRequest, msgBadMethod)
		return
	}

	pollID, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req VoteRequest
	if err := c.ShouldBind(&req); err != nil && !errors.Is(err, io.EOF) {
		req.Choice = "invalid"
	}

	results, err := h.polls.Vote(c.Request.Context(), middleware.CurrentUser(c), pollID, req.choiceID())
	if err != nil {
		if errors.Is(err, polls.ErrNoChoiceSelected) {
			c.JSON(http.StatusBadRequest, gin.H{"error": msgNoChoice, "redirect": pollURL(pollID)})
			return
		}
		writeError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"view": polls.ViewResults, "results": results})
}

func (h *PollsHandler) EndPoll(c *gin.Context) {
	pollID, ok := paramID(c, "id")
	if !ok {
		return
	}

	results, err := h.polls.EndPoll(c.Request.Context(), middleware.CurrentUser(c), pollID)
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"view": polls.ViewResults, "results": results})
}

// Results shows the tallies of any poll, ended or not.
func (h *PollsHandler) Results(c *gin.Context) {
	pollID, ok := paramID(c, "id")
	if !ok {
		return
	}

	results, err := h.polls.Results(c.Request.Context(), pollID)
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"view": polls.ViewResults, "results": results})
}
