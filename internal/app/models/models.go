package models

// RoleType defines the user role. Exactly one role is assigned per account;
// the ambiguous teacher/student boolean pair of older systems is not
// representable here.
type RoleType string

const (
	RoleStudent RoleType = "STUDENT"
	RoleTeacher RoleType = "TEACHER"
	// RoleAdmin is a provisioning/superuser account. Admins hold every
	// teacher capability plus unconditional note deletion.
	RoleAdmin RoleType = "ADMIN"
)

// Valid reports whether r is one of the known roles.
func (r RoleType) Valid() bool {
	switch r {
	case RoleStudent, RoleTeacher, RoleAdmin:
		return true
	}
	return false
}

// NoteStatus is the moderation state of a note.
type NoteStatus string

const (
	StatusPending  NoteStatus = "pending"
	StatusApproved NoteStatus = "approved"
	StatusRejected NoteStatus = "rejected"
)

// Valid reports whether s is one of the known statuses.
func (s NoteStatus) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// ModerationAction is a status transition requested by a teacher.
type ModerationAction string

const (
	ActionApprove ModerationAction = "approve"
	ActionReject  ModerationAction = "reject"
	ActionReset   ModerationAction = "reset"
)
