package handlers

import (
	"net/http"

	"github.com/14kear/online_polls/internal/middleware"
	"github.com/gin-gonic/gin"
)

type ChoiceRequest struct {
	ChoiceText string `form:"choice_text" json:"choice_text" binding:"required,max=255"`
}

func (h *PollsHandler) AddChoiceForm(c *gin.Context) {
	pollID, ok := paramID(c, "id")
	if !ok {
		return
	}

	// only the owner may see the form
	if _, err := h.polls.PollForEdit(c.Request.Context(), middleware.CurrentUser(c), pollID); err != nil {
		writeError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"form": gin.H{"fields": []string{"choice_text"}}, "poll_id": pollID})
}

func (h *PollsHandler) AddChoice(c *gin.Context) {
	pollID, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req ChoiceRequest
	if err := c.ShouldBind(&req); err != nil {
		writeBindError(c, err)
		return
	}

	choice, err := h.polls.AddChoice(c.Request.Context(), middleware.CurrentUser(c), pollID, req.ChoiceText)
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":  "Choice added successfully.",
		"choice":   choice,
		"redirect": pollURL(pollID) + "/edit",
	})
}

func (h *PollsHandler) EditChoiceForm(c *gin.Context) {
	choiceID, ok := paramID(c, "id")
	if !ok {
		return
	}

	choice, err := h.polls.ChoiceForEdit(c.Request.Context(), middleware.CurrentUser(c), choiceID)
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"form":        gin.H{"choice_text": choice.ChoiceText},
		"choice":      choice,
		"edit_choice": true,
	})
}

func (h *PollsHandler) UpdateChoice(c *gin.Context) {
	choiceID, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req ChoiceRequest
	if err := c.ShouldBind(&req); err != nil {
		writeBindError(c, err)
		return
	}

	choice, err := h.polls.UpdateChoice(c.Request.Context(), middleware.CurrentUser(c), choiceID, req.ChoiceText)
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Choice Updated successfully.",
		"choice":   choice,
		"redirect": pollURL(choice.PollID) + "/edit",
	})
}

func (h *PollsHandler) DeleteChoice(c *gin.Context) {
	choiceID, ok := paramID(c, "id")
	if !ok {
		return
	}

	choice, err := h.polls.DeleteChoice(c.Request.Context(), middleware.CurrentUser(c), choiceID)
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Choice Deleted successfully.",
		"redirect": pollURL(choice.PollID) + "/edit",
	})
}
