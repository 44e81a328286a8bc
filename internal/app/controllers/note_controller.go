package controllers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/oguzk/noteshub/internal/app/models"
	"github.com/oguzk/noteshub/internal/app/models/dto"
	"github.com/oguzk/noteshub/internal/app/repositories"
	"github.com/oguzk/noteshub/internal/app/services"
	"github.com/oguzk/noteshub/internal/middleware"
	"github.com/oguzk/noteshub/internal/pkg/apperrors"
)

// NoteController exposes the note CRUD, moderation and attachment endpoints.
type NoteController struct {
	noteService *services.NoteService
	userRepo    repositories.UserRepository
}

// NewNoteController creates a new NoteController.
func NewNoteController(noteService *services.NoteService, userRepo repositories.UserRepository) *NoteController {
	return &NoteController{noteService: noteService, userRepo: userRepo}
}

// loadCaller resolves the authenticated user from the token claims. Services
// take the caller explicitly, so authorization never depends on ambient
// request state.
func loadCaller(c *gin.Context, userRepo repositories.UserRepository) (*models.User, error) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return nil, apperrors.ErrPermissionDenied
	}

	caller, err := userRepo.GetByID(c.Request.Context(), userID)
	if err != nil {
		return nil, apperrors.ErrPermissionDenied
	}
	if !caller.IsActive {
		return nil, apperrors.ErrAccountDisabled
	}
	return caller, nil
}

func parseIDParam(c *gin.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.NewValidationError("invalid " + name + " parameter")
	}
	return id, nil
}

// ListNotes handles GET /notes. The response shape depends on the caller's
// role.
func (nc *NoteController) ListNotes(c *gin.Context) {
	caller, err := loadCaller(c, nc.userRepo)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	var req dto.NoteListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		middleware.HandleAPIError(c, apperrors.NewValidationError(err.Error()))
		return
	}

	resp, err := nc.noteService.ListNotes(c.Request.Context(), caller, &req)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.APIResponse{Data: resp})
}

// UploadNote handles POST /notes as a multipart form with a "file" part.
func (nc *NoteController) UploadNote(c *gin.Context) {
	caller, err := loadCaller(c, nc.userRepo)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	var req dto.UploadNoteRequest
	if err := c.ShouldBind(&req); err != nil {
		middleware.HandleAPIError(c, apperrors.NewValidationError(err.Error()))
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		middleware.HandleAPIError(c, apperrors.ErrAttachmentMissing)
		return
	}

	resp, err := nc.noteService.UploadNote(c.Request.Context(), caller, &req, fileHeader)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.APIResponse{Data: resp})
}

// GetNote handles GET /notes/:noteId.
func (nc *NoteController) GetNote(c *gin.Context) {
	caller, err := loadCaller(c, nc.userRepo)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	noteID, err := parseIDParam(c, "noteId")
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	resp, err := nc.noteService.GetNote(c.Request.Context(), caller, noteID)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.APIResponse{Data: resp})
}

// ViewAttachment handles GET /notes/:noteId/view, serving the PDF inline.
func (nc *NoteController) ViewAttachment(c *gin.Context) {
	nc.serveAttachment(c, "inline")
}

// DownloadAttachment handles GET /notes/:noteId/download, serving the PDF as
// an attachment.
func (nc *NoteController) DownloadAttachment(c *gin.Context) {
	nc.serveAttachment(c, "attachment")
}

func (nc *NoteController) serveAttachment(c *gin.Context, disposition string) {
	caller, err := loadCaller(c, nc.userRepo)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	noteID, err := parseIDParam(c, "noteId")
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	note, fullPath, err := nc.noteService.FetchAttachment(c.Request.Context(), caller, noteID)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.Header("Content-Type", "application/pdf")
	c.Header("Content-Disposition",
		fmt.Sprintf("%s; filename=%q", disposition, downloadFilename(note)))
	c.File(fullPath)
}

// downloadFilename derives a descriptive filename from the note's
// classification rather than exposing the stored blob name.
func downloadFilename(note *models.Note) string {
	name := note.Subject + "_" + note.Chapter
	name = strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', '"', ':', '*', '?', '<', '>', '|':
			return '-'
		}
		return r
	}, name)
	return name + ".pdf"
}

// ApproveNote handles POST /notes/:noteId/approve.
func (nc *NoteController) ApproveNote(c *gin.Context) {
	nc.transition(c, models.ActionApprove, "")
}

// RejectNote handles POST /notes/:noteId/reject with an optional reason.
func (nc *NoteController) RejectNote(c *gin.Context) {
	var req dto.RejectNoteRequest
	// The body is optional; a missing or empty body means no reason.
	_ = c.ShouldBindJSON(&req)
	nc.transition(c, models.ActionReject, req.Reason)
}

// ResetNote handles POST /notes/:noteId/pending, returning a note to the
// moderation queue.
func (nc *NoteController) ResetNote(c *gin.Context) {
	nc.transition(c, models.ActionReset, "")
}

func (nc *NoteController) transition(c *gin.Context, action models.ModerationAction, reason string) {
	caller, err := loadCaller(c, nc.userRepo)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	noteID, err := parseIDParam(c, "noteId")
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	resp, err := nc.noteService.TransitionNote(c.Request.Context(), caller, noteID, action, reason)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.APIResponse{Data: resp})
}

// DeleteNote handles DELETE /notes/:noteId.
func (nc *NoteController) DeleteNote(c *gin.Context) {
	caller, err := loadCaller(c, nc.userRepo)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	noteID, err := parseIDParam(c, "noteId")
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	if err := nc.noteService.DeleteNote(c.Request.Context(), caller, noteID); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.APIResponse{Data: dto.SuccessResponse{Message: "Note deleted"}})
}
