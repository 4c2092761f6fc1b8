package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/aretw0/notesrv/pkg/core"
)

// Static response labels. Error responses never carry more detail than these.
const (
	msgNotFound      = "Not found"
	msgExists        = "Note already exists"
	msgInvalidName   = "Invalid note name"
	msgBadRequest    = "Bad request"
	msgTooLarge      = "Request body too large"
	msgInternalError = "Internal Server Error"
)

type createRequest struct {
	NoteName string `form:"note_name" json:"note_name"`
	Note     string `form:"note" json:"note"`
}

type updateRequest struct {
	Text *string `form:"text" json:"text"`
}

func (s *Server) handleGetNote(c *gin.Context) {
	note, err := s.svc.GetNote(c.Request.Context(), c.Param("note_name"))
	if err != nil {
		s.writeError(c, err)
		return
	}

	switch c.NegotiateFormat(gin.MIMEPlain, gin.MIMEJSON) {
	case gin.MIMEJSON:
		c.JSON(http.StatusOK, note)
	default:
		c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(note.Text))
	}
}

func (s *Server) handleListNotes(c *gin.Context) {
	notes, err := s.svc.ListNotes(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		c.String(http.StatusInternalServerError, msgInternalError)
		return
	}
	c.JSON(http.StatusOK, notes)
}

// handleCreateNote accepts form-encoded, multipart or JSON bodies.
func (s *Server) handleCreateNote(c *gin.Context) {
	var req createRequest
	if err := c.ShouldBind(&req); err != nil {
		s.writeBindError(c, err)
		return
	}

	if err := s.svc.CreateNote(c.Request.Context(), req.NoteName, req.Note); err != nil {
		s.writeError(c, err)
		return
	}
	c.String(http.StatusCreated, "Created")
}

func (s *Server) handleUpdateNote(c *gin.Context) {
	var req updateRequest
	if err := c.ShouldBind(&req); err != nil {
		s.writeBindError(c, err)
		return
	}
	if req.Text == nil {
		c.String(http.StatusBadRequest, msgBadRequest)
		return
	}

	if err := s.svc.UpdateNote(c.Request.Context(), c.Param("note_name"), *req.Text); err != nil {
		s.writeError(c, err)
		return
	}
	c.String(http.StatusOK, "Updated")
}

func (s *Server) handleDeleteNote(c *gin.Context) {
	if err := s.svc.DeleteNote(c.Request.Context(), c.Param("note_name")); err != nil {
		s.writeError(c, err)
		return
	}
	c.String(http.StatusOK, "Deleted")
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"version": s.cfg.Version,
		"service": s.svc.State(),
	})
}

// writeError maps domain errors onto status codes with static bodies.
// Anything unrecognised is a 500 and is attached to the context for logging.
func (s *Server) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, core.ErrInvalidName):
		c.String(http.StatusBadRequest, msgInvalidName)
	case errors.Is(err, core.ErrNotFound):
		c.String(http.StatusNotFound, msgNotFound)
	case errors.Is(err, core.ErrExists):
		c.String(http.StatusBadRequest, msgExists)
	case errors.Is(err, core.ErrInvalidPattern):
		c.String(http.StatusBadRequest, msgBadRequest)
	case errors.Is(err, core.ErrWatchUnsupported):
		c.String(http.StatusNotImplemented, "Not implemented")
	default:
		_ = c.Error(err)
		c.String(http.StatusInternalServerError, msgInternalError)
	}
}

func (s *Server) writeBindError(c *gin.Context, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		c.String(http.StatusRequestEntityTooLarge, msgTooLarge)
		return
	}
	c.String(http.StatusBadRequest, msgBadRequest)
}
