package handlers

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/14kear/online_polls/internal/middleware"
	"github.com/14kear/online_polls/internal/services/polls"
	"github.com/gin-gonic/gin"
)

type PollsHandler struct {
	log   *slog.Logger
	polls *polls.Polls
}

type CreatePollRequest struct {
	Text    string `form:"text" json:"text" binding:"required,max=255"`
	Choice1 string `form:"choice1" json:"choice1" binding:"required,max=255"`
	Choice2 string `form:"choice2" json:"choice2" binding:"required,max=255"`
}

type EditPollRequest struct {
	Text    string    `form:"text" json:"text" binding:"required,max=255"`
	PubDate time.Time `form:"pub_date" json:"pub_date" time_format:"2006-01-02T15:04:05Z07:00"`
}

func NewPollsHandler(log *slog.Logger, polls *polls.Polls) *PollsHandler {
	return &PollsHandler{log: log, polls: polls}
}

// List serves the global listing. Query: name|date|vote to sort, search, page.
func (h *PollsHandler) List(c *gin.Context) {
	page, err := h.polls.ListPolls(c.Request.Context(), polls.NewListQuery(c.Request.URL.Query()))
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, page)
}

func (h *PollsHandler) Mine(c *gin.Context) {
	page, err := h.polls.ListByOwner(c.Request.Context(), middleware.CurrentUser(c), c.Query("page"))
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, page)
}

func (h *PollsHandler) NewPollForm(c *gin.Context) {
	if err := h.polls.CanAddPoll(c.Request.Context(), middleware.CurrentUser(c)); err != nil {
		writeError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"form": gin.H{"fields": []string{"text", "choice1", "choice2"}}})
}

func (h *PollsHandler) CreatePoll(c *gin.Context) {
	actor := middleware.CurrentUser(c)

	// the capability is checked before the body is looked at
	if err := h.polls.CanAddPoll(c.Request.Context(), actor); err != nil {
		writeError(c, h.log, err)
		return
	}

	var req CreatePollRequest
	if err := c.ShouldBind(&req); err != nil {
		writeBindError(c, err)
		return
	}

	poll, err := h.polls.CreatePoll(c.Request.Context(), actor, polls.NewPollInput{
		Text:    req.Text,
		Choice1: req.Choice1,
		Choice2: req.Choice2,
	})
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":  "Poll & Choices added successfully.",
		"poll":     poll,
		"redirect": "/polls",
	})
}

func (h *PollsHandler) EditPollForm(c *gin.Context) {
	pollID, ok := paramID(c, "id")
	if !ok {
		return
	}

	pc, err := h.polls.PollForEdit(c.Request.Context(), middleware.CurrentUser(c), pollID)
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"form":    gin.H{"text": pc.Poll.Text, "pub_date": pc.Poll.PubDate},
		"poll":    pc.Poll,
		"choices": pc.Choices,
	})
}

func (h *PollsHandler) UpdatePoll(c *gin.Context) {
	pollID, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req EditPollRequest
	if err := c.ShouldBind(&req); err != nil {
		writeBindError(c, err)
		return
	}

	poll, err := h.polls.UpdatePoll(c.Request.Context(), middleware.CurrentUser(c), pollID, req.Text, req.PubDate)
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Poll Updated successfully.",
		"poll":     poll,
		"redirect": "/polls",
	})
}

func (h *PollsHandler) DeletePoll(c *gin.Context) {
	pollID, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := h.polls.DeletePoll(c.Request.Context(), middleware.CurrentUser(c), pollID); err != nil {
		writeError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Poll Deleted successfully.", "redirect": "/polls"})
}

// Detail is public. Active polls render the voting view, ended ones their results.
func (h *PollsHandler) Detail(c *gin.Context) {
	pollID, ok := paramID(c, "id")
	if !ok {
		return
	}

	view, err := h.polls.PollDetail(c.Request.Context(), middleware.CurrentUser(c), pollID)
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, view)
}

func (h *PollsHandler) Logs(c *gin.Context) {
	pollID, ok := paramID(c, "id")
	if !ok {
		return
	}

	logs, err := h.polls.PollLogs(c.Request.Context(), middleware.CurrentUser(c), pollID)
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"poll_id": pollID, "logs": logs})
}

func pollURL(pollID int64) string {
	return "/polls/" + strconv.FormatInt(pollID, 10)
}
