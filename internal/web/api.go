package web

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"reminderd/internal/models"
	"reminderd/internal/schedule"
	"reminderd/internal/store"
)

// CreateReminderInput DTO for creating a new reminder
type CreateReminderInput struct {
	Descr     string  `json:"descr" binding:"required"`
	Priority  int     `json:"priority"`
	TriggerOn *string `json:"trigger_on"`
	// Code schedules the first trigger relative to now instead of TriggerOn.
	Code *string `json:"code"`
}

// RescheduleInput DTO for rescheduling a reminder
type RescheduleInput struct {
	On string `json:"on" binding:"required"`
}

// listReminders returns the prioritized reminders; ?filter=overdue,
// ?next=<code> and ?upto=<date> narrow the view.
func (s *Server) listReminders(c *gin.Context) {
	ctx := c.Request.Context()
	now := time.Now()

	var (
		rs  []models.Reminder
		err error
	)
	switch {
	case c.Query("filter") == "overdue":
		rs, err = s.store.Overdue(ctx, now)
	case c.Query("next") != "":
		rs, err = s.store.DueWithin(ctx, c.Query("next"), now)
	case c.Query("upto") != "":
		var ts time.Time
		if ts, err = schedule.ParseWhen(c.Query("upto")); err == nil {
			rs, err = s.store.Upto(ctx, ts)
		}
	default:
		rs, err = s.store.Prioritized(ctx)
	}
	if err != nil {
		s.jsonError(c, err)
		return
	}
	c.JSON(http.StatusOK, rs)
}

func (s *Server) createReminder(c *gin.Context) {
	var input CreateReminderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	r := models.Reminder{
		Descr:    input.Descr,
		Priority: input.Priority,
	}
	switch {
	case input.Code != nil:
		t, err := schedule.ComputeNextTrigger(*input.Code, time.Now())
		if err != nil {
			s.jsonError(c, err)
			return
		}
		r.TriggerOn = &t
	case input.TriggerOn != nil:
		t, err := schedule.ParseWhen(*input.TriggerOn)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		r.TriggerOn = &t
	}

	if err := models.Autofill(&r); err != nil {
		s.jsonError(c, err)
		return
	}
	if err := s.store.Create(c.Request.Context(), &r); err != nil {
		s.jsonError(c, err)
		return
	}
	c.JSON(http.StatusCreated, r)
}

func (s *Server) getReminder(c *gin.Context) {
	r, err := s.store.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.jsonError(c, err)
		return
	}
	c.JSON(http.StatusOK, r)
}

func (s *Server) rescheduleJSON(c *gin.Context) {
	var input RescheduleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	r, err := s.store.RescheduleAny(c.Request.Context(), c.Param("id"), input.On, time.Now())
	if err != nil {
		s.jsonError(c, err)
		return
	}
	c.JSON(http.StatusOK, r)
}

func (s *Server) deleteReminder(c *gin.Context) {
	r, err := s.store.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.jsonError(c, err)
		return
	}
	if err := s.store.Delete(c.Request.Context(), r); err != nil {
		s.jsonError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Reminder deleted successfully"})
}

// jsonError maps the error taxonomy onto HTTP statuses.
func (s *Server) jsonError(c *gin.Context, err error) {
	var (
		invalidCode  *schedule.InvalidCodeError
		malformedTag *models.MalformedTagError
		validation   *models.ValidationError
		notFound     *store.NotFoundError
	)
	switch {
	case errors.As(err, &invalidCode), errors.As(err, &malformedTag), errors.As(err, &validation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.As(err, &notFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		s.log.Error().Err(err).Msg("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
