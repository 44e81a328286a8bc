package services

import (
	"context"
	"mime/multipart"
	"time"

	appauth "github.com/oguzk/noteshub/internal/app/auth"
	"github.com/oguzk/noteshub/internal/app/models"
	"github.com/oguzk/noteshub/internal/app/models/dto"
	"github.com/oguzk/noteshub/internal/app/repositories"
	"github.com/oguzk/noteshub/internal/pkg/apperrors"
	"github.com/oguzk/noteshub/internal/pkg/filestorage"
	"github.com/oguzk/noteshub/internal/pkg/helpers"
	"github.com/oguzk/noteshub/internal/pkg/logger"
	"github.com/oguzk/noteshub/internal/pkg/validation"
)

// notesSubDir is the storage subdirectory holding note attachments.
const notesSubDir = "notes"

// NoteService implements note upload, listing, moderation, deletion and
// attachment fetch.
type NoteService struct {
	noteRepo repositories.NoteRepository
	storage  filestorage.FileStorage
}

// NewNoteService creates a new note service.
func NewNoteService(noteRepo repositories.NoteRepository, storage filestorage.FileStorage) *NoteService {
	return &NoteService{
		noteRepo: noteRepo,
		storage:  storage,
	}
}

// UploadNote validates the attachment, stores the blob and creates the note
// record. Teacher uploads go live immediately as approved with the uploader
// stamped as approver; everyone else starts at pending. Validation runs
// before anything is written.
func (s *NoteService) UploadNote(ctx context.Context, caller *models.User, req *dto.UploadNoteRequest, fileHeader *multipart.FileHeader) (*dto.NoteResponse, error) {
	if err := validation.ValidateNotePDF(fileHeader); err != nil {
		return nil, err
	}

	storedPath, err := s.storage.SaveFileWithPath(fileHeader, notesSubDir)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to store note attachment")
		return nil, err
	}

	note := &models.Note{
		UploaderID: caller.ID,
		Year:       req.Year,
		Branch:     req.Branch,
		Subject:    req.Subject,
		Chapter:    req.Chapter,
		FileName:   fileHeader.Filename,
		FilePath:   storedPath,
		FileSize:   fileHeader.Size,
		Status:     models.StatusPending,
		UploadedAt: time.Now(),
	}

	if caller.IsTeacher() {
		now := time.Now()
		note.Status = models.StatusApproved
		note.ApprovedBy = &caller.ID
		note.ApprovedAt = &now
	}

	id, err := s.noteRepo.Create(ctx, note)
	if err != nil {
		// The record never existed, so the blob is orphaned. Remove it.
		if delErr := s.storage.DeleteFile(storedPath); delErr != nil {
			logger.Warn().Err(delErr).Str("path", storedPath).Msg("Failed to remove orphaned attachment")
		}
		return nil, err
	}
	note.ID = id
	note.UploaderName = caller.DisplayName()

	logger.Info().
		Int64("noteID", id).
		Int64("uploaderID", caller.ID).
		Str("status", string(note.Status)).
		Msg("Note uploaded")

	resp := NewNoteResponse(note)
	return &resp, nil
}

// ListNotes returns the listing appropriate for the caller's role. Students
// get the approved catalogue with exact-match filters plus their own uploads;
// teachers get the paginated moderation tabs with partial-match filters.
func (s *NoteService) ListNotes(ctx context.Context, caller *models.User, req *dto.NoteListRequest) (interface{}, error) {
	if caller.IsTeacher() {
		return s.listForTeacher(ctx, caller, req)
	}
	return s.listForStudent(ctx, caller, req)
}

func (s *NoteService) listForStudent(ctx context.Context, caller *models.User, req *dto.NoteListRequest) (*dto.StudentNoteListResponse, error) {
	approved, err := s.noteRepo.ListApproved(ctx, repositories.ApprovedNotesFilter{
		Year:    req.Year,
		Branch:  req.Branch,
		Subject: req.Subject,
	})
	if err != nil {
		return nil, err
	}

	myUploads, err := s.noteRepo.ListByUploader(ctx, caller.ID)
	if err != nil {
		return nil, err
	}

	return &dto.StudentNoteListResponse{
		Notes:     NewNoteResponseList(approved),
		MyUploads: NewNoteResponseList(myUploads),
	}, nil
}

func (s *NoteService) listForTeacher(ctx context.Context, caller *models.User, req *dto.NoteListRequest) (*dto.TeacherNoteListResponse, error) {
	params := repositories.ModerationListParams{
		Year:    req.Year,
		Branch:  req.Branch,
		Subject: req.Subject,
		Page:    req.Page,
		Size:    helpers.DefaultPageSize,
	}

	tab := req.Tab
	if tab == "" {
		tab = string(models.StatusPending)
	}

	switch tab {
	case string(models.StatusPending), string(models.StatusApproved), string(models.StatusRejected):
		status := models.NoteStatus(tab)
		params.Status = &status
	case "my-uploads":
		params.UploaderID = &caller.ID
	default:
		return nil, apperrors.NewValidationError("unknown tab: " + tab)
	}

	notes, pagination, err := s.noteRepo.ListForModeration(ctx, params)
	if err != nil {
		return nil, err
	}

	return &dto.TeacherNoteListResponse{
		Notes:      NewNoteResponseList(notes),
		Tab:        tab,
		Pagination: pagination,
	}, nil
}

// GetNote returns a single note subject to the caller's read access.
func (s *NoteService) GetNote(ctx context.Context, caller *models.User, noteID int64) (*dto.NoteResponse, error) {
	note, err := s.noteRepo.GetByID(ctx, noteID)
	if err != nil {
		return nil, err
	}

	if err := appauth.CanFetch(caller, note); err != nil {
		return nil, err
	}

	resp := NewNoteResponse(note)
	return &resp, nil
}

// TransitionNote applies a moderation action to a note. Existence is checked
// before authorization so moderators and non-moderators get the same error
// for unknown ids. Actions are idempotent and legal from any state.
func (s *NoteService) TransitionNote(ctx context.Context, caller *models.User, noteID int64, action models.ModerationAction, reason string) (*dto.NoteResponse, error) {
	note, err := s.noteRepo.GetByID(ctx, noteID)
	if err != nil {
		return nil, err
	}

	if err := appauth.CanModerate(caller); err != nil {
		return nil, err
	}

	switch action {
	case models.ActionApprove:
		now := time.Now()
		note.Status = models.StatusApproved
		note.RejectionReason = ""
		note.ApprovedBy = &caller.ID
		note.ApprovedAt = &now
	case models.ActionReject:
		note.Status = models.StatusRejected
		note.RejectionReason = reason
		note.ApprovedBy = nil
		note.ApprovedAt = nil
	case models.ActionReset:
		note.Status = models.StatusPending
		note.RejectionReason = ""
		note.ApprovedBy = nil
		note.ApprovedAt = nil
	default:
		return nil, apperrors.NewValidationError("unknown moderation action: " + string(action))
	}

	if err := s.noteRepo.UpdateStatus(ctx, note); err != nil {
		return nil, err
	}

	logger.Info().
		Int64("noteID", note.ID).
		Int64("moderatorID", caller.ID).
		Str("action", string(action)).
		Msg("Note status changed")

	resp := NewNoteResponse(note)
	return &resp, nil
}

// DeleteNote removes a note record and its attachment blob. The record is the
// source of truth: if its delete fails, the blob stays; if the blob delete
// fails afterwards, the operation still succeeds.
func (s *NoteService) DeleteNote(ctx context.Context, caller *models.User, noteID int64) error {
	note, err := s.noteRepo.GetByID(ctx, noteID)
	if err != nil {
		return err
	}

	if err := appauth.CanDelete(caller, note); err != nil {
		return err
	}

	if err := s.noteRepo.Delete(ctx, noteID); err != nil {
		return err
	}

	if err := s.storage.DeleteFile(note.FilePath); err != nil {
		logger.Warn().Err(err).Int64("noteID", noteID).Str("path", note.FilePath).Msg("Failed to delete attachment blob")
	}

	logger.Info().Int64("noteID", noteID).Int64("userID", caller.ID).Msg("Note deleted")
	return nil
}

// FetchAttachment resolves a note's attachment for serving, subject to the
// caller's read access. Returns the note and the absolute path of the blob.
func (s *NoteService) FetchAttachment(ctx context.Context, caller *models.User, noteID int64) (*models.Note, string, error) {
	note, err := s.noteRepo.GetByID(ctx, noteID)
	if err != nil {
		return nil, "", err
	}

	if err := appauth.CanFetch(caller, note); err != nil {
		return nil, "", err
	}

	fullPath := s.storage.GetFullPath(note.FilePath)
	if fullPath == "" {
		logger.Error().Int64("noteID", noteID).Str("path", note.FilePath).Msg("Stored attachment path did not resolve")
		return nil, "", apperrors.ErrNoteNotFound
	}

	return note, fullPath, nil
}

// NewNoteResponse maps a note to its response DTO.
func NewNoteResponse(note *models.Note) dto.NoteResponse {
	resp := dto.NoteResponse{
		ID:           note.ID,
		Year:         note.Year,
		Branch:       note.Branch,
		Subject:      note.Subject,
		Chapter:      note.Chapter,
		FileName:     note.FileName,
		FileSize:     note.FileSize,
		Status:       string(note.Status),
		UploaderID:   note.UploaderID,
		UploaderName: note.UploaderName,
		UploadedAt:   note.UploadedAt.Format(time.RFC3339),
	}
	if note.Status == models.StatusRejected {
		resp.RejectionReason = note.RejectionReason
	}
	return resp
}

// NewNoteResponseList maps a slice of notes to response DTOs.
func NewNoteResponseList(notes []*models.Note) []dto.NoteResponse {
	responses := make([]dto.NoteResponse, 0, len(notes))
	for _, note := range notes {
		responses = append(responses, NewNoteResponse(note))
	}
	return responses
}
