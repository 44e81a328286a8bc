package auth

import (
	"errors"
	"testing"

	"github.com/oguzk/noteshub/internal/app/models"
	"github.com/oguzk/noteshub/internal/pkg/apperrors"
)

func user(id int64, role models.RoleType) *models.User {
	return &models.User{ID: id, Role: role, IsActive: true}
}

func note(uploaderID int64, status models.NoteStatus) *models.Note {
	return &models.Note{ID: 1, UploaderID: uploaderID, Status: status}
}

func TestCanModerate(t *testing.T) {
	if err := CanModerate(user(1, models.RoleTeacher)); err != nil {
		t.Errorf("teacher should moderate, got %v", err)
	}
	if err := CanModerate(user(1, models.RoleAdmin)); err != nil {
		t.Errorf("admin should moderate, got %v", err)
	}
	if err := CanModerate(user(1, models.RoleStudent)); !errors.Is(err, apperrors.ErrPermissionDenied) {
		t.Errorf("student moderation: want ErrPermissionDenied, got %v", err)
	}
	if err := CanModerate(nil); !errors.Is(err, apperrors.ErrPermissionDenied) {
		t.Errorf("nil caller moderation: want ErrPermissionDenied, got %v", err)
	}
}

func TestCanFetchApprovedNote(t *testing.T) {
	n := note(2, models.StatusApproved)
	if err := CanFetch(user(1, models.RoleStudent), n); err != nil {
		t.Errorf("student should fetch approved note, got %v", err)
	}
	if err := CanFetch(user(3, models.RoleTeacher), n); err != nil {
		t.Errorf("teacher should fetch approved note, got %v", err)
	}
}

func TestCanFetchPendingNote(t *testing.T) {
	n := note(2, models.StatusPending)
	if err := CanFetch(user(3, models.RoleTeacher), n); err != nil {
		t.Errorf("teacher should fetch pending note, got %v", err)
	}
	if err := CanFetch(user(1, models.RoleStudent), n); !errors.Is(err, apperrors.ErrNoteNotAccessible) {
		t.Errorf("student fetching pending note: want ErrNoteNotAccessible, got %v", err)
	}
}

// A student cannot fetch their own upload while it is still pending or after
// rejection. Ownership plays no part in read access.
func TestCanFetchOwnUnapprovedNote(t *testing.T) {
	uploader := user(2, models.RoleStudent)
	for _, status := range []models.NoteStatus{models.StatusPending, models.StatusRejected} {
		n := note(uploader.ID, status)
		if err := CanFetch(uploader, n); !errors.Is(err, apperrors.ErrNoteNotAccessible) {
			t.Errorf("own %s note: want ErrNoteNotAccessible, got %v", status, err)
		}
	}
}

func TestCanDelete(t *testing.T) {
	tests := []struct {
		name    string
		caller  *models.User
		note    *models.Note
		allowed bool
	}{
		{"uploader deletes own pending", user(2, models.RoleStudent), note(2, models.StatusPending), true},
		{"uploader deletes own approved", user(2, models.RoleStudent), note(2, models.StatusApproved), true},
		{"uploader deletes own rejected", user(2, models.RoleStudent), note(2, models.StatusRejected), true},
		{"other student", user(9, models.RoleStudent), note(2, models.StatusApproved), false},
		{"teacher deletes foreign pending", user(3, models.RoleTeacher), note(2, models.StatusPending), true},
		{"teacher deletes foreign approved", user(3, models.RoleTeacher), note(2, models.StatusApproved), false},
		{"teacher deletes foreign rejected", user(3, models.RoleTeacher), note(2, models.StatusRejected), false},
		{"admin deletes anything", user(4, models.RoleAdmin), note(2, models.StatusApproved), true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := CanDelete(tc.caller, tc.note)
			if tc.allowed && err != nil {
				t.Errorf("want allowed, got %v", err)
			}
			if !tc.allowed && !errors.Is(err, apperrors.ErrPermissionDenied) {
				t.Errorf("want ErrPermissionDenied, got %v", err)
			}
		})
	}
}
