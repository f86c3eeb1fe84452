// Package server serves the directory screen over HTTP.
package server

import (
	"bytes"
	"net/http"
	"time"

	"github.com/Sternrassler/employee-directory/pkg/loader"
	"github.com/Sternrassler/employee-directory/pkg/metrics"
	"github.com/Sternrassler/employee-directory/pkg/render"
	"github.com/Sternrassler/employee-directory/pkg/screen"
	"github.com/Sternrassler/employee-directory/pkg/session"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// CookieName holds the visitor's session id.
const CookieName = "directory_session"

// Status reports the loader state.
type Status interface {
	State() loader.State
}

// Server holds the HTTP handlers for one directory screen.
type Server struct {
	screen *screen.Screen
	status Status
	store  session.Store
	ttl    time.Duration
	logger zerolog.Logger
}

// New creates a server. ttl is the session cookie lifetime; zero makes it a
// browser-session cookie.
func New(scr *screen.Screen, status Status, store session.Store, ttl time.Duration, logger zerolog.Logger) *Server {
	return &Server{
		screen: scr,
		status: status,
		store:  store,
		ttl:    ttl,
		logger: logger,
	}
}

// Router builds the gin engine with all routes.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(s.loggerMiddleware())

	r.GET("/", s.handleIndex)
	r.POST("/next", s.handleNavigate(s.screen.Next))
	r.POST("/previous", s.handleNavigate(s.screen.Previous))
	r.GET("/api/page", s.handlePage)

	r.GET("/health", s.handleHealth)
	r.GET("/ready", s.handleReady)
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	return r
}

func (s *Server) handleIndex(c *gin.Context) {
	id, state := s.session(c)

	view := s.screen.View(state.Page)
	state.Page = view.Controls.Page

	page := render.Page{View: view}
	if s.status.State() == loader.StateFailed && !state.Notified {
		page.Notification = loader.FailureMessage
		state.Notified = true
	}
	s.save(c, id, state)

	var buf bytes.Buffer
	if err := render.HTML(&buf, page); err != nil {
		s.logger.Error().Err(err).Msg("Failed to render page")
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}

func (s *Server) handleNavigate(step func(int) int) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, state := s.session(c)
		state.Page = step(state.Page)
		s.save(c, id, state)
		c.Redirect(http.StatusSeeOther, "/")
	}
}

func (s *Server) handlePage(c *gin.Context) {
	id, state := s.session(c)
	view := s.screen.View(state.Page)
	state.Page = view.Controls.Page
	s.save(c, id, state)
	c.JSON(http.StatusOK, view)
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleReady(c *gin.Context) {
	state := s.status.State()
	if !state.Terminal() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": state.String()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": state.String()})
}

// session resolves the visitor's id, minting a new one when the cookie is
// missing or malformed, and loads its state. Store errors fall back to a
// fresh state.
func (s *Server) session(c *gin.Context) (string, *session.State) {
	id, err := c.Cookie(CookieName)
	if err != nil || !validID(id) {
		id = uuid.NewString()
	}

	state, err := s.store.Get(c.Request.Context(), id)
	if err != nil {
		s.logger.Warn().Err(err).Str("session", id).Msg("Session read failed")
		return id, session.NewState()
	}
	return id, state
}

// save stores state and (re)issues the cookie, so the cookie's lifetime
// slides together with the store's expiry.
func (s *Server) save(c *gin.Context, id string, state *session.State) {
	c.SetCookie(CookieName, id, int(s.ttl/time.Second), "/", "", false, true)
	if err := s.store.Save(c.Request.Context(), id, state); err != nil {
		s.logger.Warn().Err(err).Str("session", id).Msg("Session write failed")
	}
}

func (s *Server) loggerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		s.logger.Debug().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("duration", time.Since(start)).
			Msg("HTTP request")
	}
}

func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
