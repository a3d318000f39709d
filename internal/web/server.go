package web

import (
	"errors"
	"html/template"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"reminderd/internal/humanize"
	"reminderd/internal/schedule"
	"reminderd/internal/store"
)

// Server holds the handlers behind the web UI and the JSON API.
type Server struct {
	store *store.Store
	log   zerolog.Logger
}

// NewRouter wires the page routes, the /v1 JSON group and the templates.
func NewRouter(st *store.Store, log zerolog.Logger, templatesGlob string) *gin.Engine {
	s := &Server{store: st, log: log}

	r := gin.New()
	r.Use(gin.Recovery())
	r.SetFuncMap(template.FuncMap{
		"timeAgo": func(t *time.Time) string {
			if t == nil {
				return "-"
			}
			return humanize.TimeAgo(*t)
		},
		"fmtTime": formatTime,
	})
	r.LoadHTMLGlob(templatesGlob)

	r.GET("/", s.index)
	r.GET("/reminders/:id", s.showReminder)
	r.POST("/reschedule/:id", s.reschedule)
	r.GET("/overdues", s.overdues)
	r.GET("/today", s.today)

	v1 := r.Group("/v1")
	{
		v1.GET("/reminders", s.listReminders)
		v1.POST("/reminders", s.createReminder)
		v1.GET("/reminders/:id", s.getReminder)
		v1.POST("/reminders/:id/reschedule", s.rescheduleJSON)
		v1.DELETE("/reminders/:id", s.deleteReminder)
	}

	r.NoRoute(func(c *gin.Context) {
		c.String(http.StatusNotFound, "Oops, don't know this page!")
	})

	return r
}

// index jumps straight to the most pressing overdue reminder, if any.
func (s *Server) index(c *gin.Context) {
	overdue, err := s.store.Overdue(c.Request.Context(), time.Now())
	if err != nil {
		s.log.Error().Err(err).Msg("failed to load overdue reminders")
		c.String(http.StatusInternalServerError, "database error")
		return
	}
	if len(overdue) > 0 {
		c.Redirect(http.StatusFound, "/reminders/"+overdue[0].ID.String())
		return
	}
	c.HTML(http.StatusOK, "index.html", gin.H{})
}

func (s *Server) showReminder(c *gin.Context) {
	r, err := s.store.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.renderLookupError(c, err)
		return
	}
	overdue, err := s.store.Overdue(c.Request.Context(), time.Now())
	if err != nil {
		c.String(http.StatusInternalServerError, "database error")
		return
	}
	c.HTML(http.StatusOK, "reminder.html", gin.H{
		"Reminder":   r,
		"OverdueCnt": len(overdue),
	})
}

// reschedule handles the detail page form. The single input takes either a
// code ("3d~") or a date ("friday 9am"); an input that is neither leaves the
// trigger untouched and re-renders with the error.
func (s *Server) reschedule(c *gin.Context) {
	input := c.PostForm("reschedule_on")
	_, err := s.store.RescheduleAny(c.Request.Context(), c.Param("id"), input, time.Now())
	if err != nil {
		var invalid *schedule.InvalidCodeError
		var notFound *store.NotFoundError
		switch {
		case errors.As(err, &invalid):
			c.String(http.StatusBadRequest, "%s", invalid.Error())
		case errors.As(err, &notFound):
			c.String(http.StatusNotFound, "%s", notFound.Error())
		default:
			s.log.Error().Err(err).Str("id", c.Param("id")).Msg("reschedule failed")
			c.String(http.StatusInternalServerError, "reschedule failed")
		}
		return
	}
	c.Redirect(http.StatusFound, "/")
}

func (s *Server) overdues(c *gin.Context) {
	overdue, err := s.store.Overdue(c.Request.Context(), time.Now())
	if err != nil {
		c.String(http.StatusInternalServerError, "database error")
		return
	}
	c.HTML(http.StatusOK, "overdues.html", gin.H{
		"Title":     "Overdue reminders",
		"Reminders": overdue,
	})
}

// today lists everything triggering before tomorrow's midnight.
func (s *Server) today(c *gin.Context) {
	now := time.Now()
	endOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).AddDate(0, 0, 1)
	due, err := s.store.Upto(c.Request.Context(), endOfDay)
	if err != nil {
		c.String(http.StatusInternalServerError, "database error")
		return
	}
	c.HTML(http.StatusOK, "overdues.html", gin.H{
		"Title":     "Reminders today",
		"Reminders": due,
	})
}

func (s *Server) renderLookupError(c *gin.Context, err error) {
	var notFound *store.NotFoundError
	if errors.As(err, &notFound) {
		c.String(http.StatusNotFound, "%s", notFound.Error())
		return
	}
	s.log.Error().Err(err).Msg("reminder lookup failed")
	c.String(http.StatusInternalServerError, "database error")
}
