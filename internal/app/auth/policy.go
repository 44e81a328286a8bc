// Package auth holds the access rules for notes. The rules are pure
// functions over the caller and the note, so services stay thin and the
// rules are testable without a database.
package auth

import (
	"github.com/oguzk/noteshub/internal/app/models"
	"github.com/oguzk/noteshub/internal/pkg/apperrors"
)

// CanModerate reports whether the caller may change note statuses and
// browse the moderation listing.
func CanModerate(caller *models.User) error {
	if caller == nil || !caller.IsTeacher() {
		return apperrors.ErrPermissionDenied
	}
	return nil
}

// CanFetch reports whether the caller may read a note and its attachment.
// Teachers see everything; everyone else only sees approved notes, even
// their own pending uploads.
func CanFetch(caller *models.User, note *models.Note) error {
	if caller != nil && caller.IsTeacher() {
		return nil
	}
	if note.Status != models.StatusApproved {
		return apperrors.ErrNoteNotAccessible
	}
	return nil
}

// CanDelete reports whether the caller may delete a note. The uploader and
// admins can always delete; teachers can additionally prune pending notes
// uploaded by others.
func CanDelete(caller *models.User, note *models.Note) error {
	if caller == nil {
		return apperrors.ErrPermissionDenied
	}
	if note.UploaderID == caller.ID || caller.IsAdmin() {
		return nil
	}
	if caller.IsTeacher() && note.Status == models.StatusPending {
		return nil
	}
	return apperrors.ErrPermissionDenied
}
