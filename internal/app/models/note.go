package models

import "time"

// Note represents an uploaded PDF study note with classification metadata and
// a moderation status.
type Note struct {
	ID         int64  `db:"id" json:"id"`
	UploaderID int64  `db:"uploader_id" json:"uploaderId"`
	Year       string `db:"year" json:"year"`
	Branch     string `db:"branch" json:"branch"`
	Subject    string `db:"subject" json:"subject"`
	Chapter    string `db:"chapter" json:"chapter"`

	// Attachment reference. FilePath is where the blob lives in storage,
	// FileName is the original upload name.
	FileName string `db:"file_name" json:"fileName"`
	FilePath string `db:"file_path" json:"-"`
	FileSize int64  `db:"file_size" json:"fileSize"`

	Status          NoteStatus `db:"status" json:"status"`
	RejectionReason string     `db:"rejection_reason" json:"rejectionReason,omitempty"` // Meaningful only while rejected
	ApprovedBy      *int64     `db:"approved_by" json:"approvedBy,omitempty"`
	ApprovedAt      *time.Time `db:"approved_at" json:"approvedAt,omitempty"`
	UploadedAt      time.Time  `db:"uploaded_at" json:"uploadedAt"`

	// UploaderName is populated by the repository join with users. Not a column.
	UploaderName string `db:"-" json:"uploaderName,omitempty"`
}
