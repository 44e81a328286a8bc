package dto

// --- Request DTOs ---

// UploadNoteRequest carries the classification fields of a note upload.
// The PDF itself is sent as the "file" part of the multipart form.
type UploadNoteRequest struct {
	Year    string `form:"year" binding:"required,max=10" example:"2"`
	Branch  string `form:"branch" binding:"required,max=50" example:"CSE"`
	Subject string `form:"subject" binding:"required,max=100" example:"OS"`
	Chapter string `form:"chapter" binding:"required,max=100" example:"Deadlocks"`
}

// NoteListRequest holds listing filters. Students get equality filters over
// approved notes; teachers additionally select a tab and get partial-match
// filters with pagination.
type NoteListRequest struct {
	Year    string `form:"year"`
	Branch  string `form:"branch"`
	Subject string `form:"subject"`
	Tab     string `form:"tab"`  // pending | approved | rejected | my-uploads (teachers only)
	Page    int    `form:"page"` // 1-based
}

// RejectNoteRequest carries the optional rejection reason.
type RejectNoteRequest struct {
	Reason string `json:"reason"` // May be empty
}

// --- Response DTOs ---

// NoteResponse represents the data returned for a single note.
type NoteResponse struct {
	ID              int64  `json:"id" example:"15"`
	Year            string `json:"year" example:"2"`
	Branch          string `json:"branch" example:"CSE"`
	Subject         string `json:"subject" example:"OS"`
	Chapter         string `json:"chapter" example:"Deadlocks"`
	FileName        string `json:"fileName" example:"deadlocks_week5.pdf"`
	FileSize        int64  `json:"fileSize" example:"204800"`
	Status          string `json:"status" example:"pending"`
	RejectionReason string `json:"rejectionReason,omitempty"`
	UploaderID      int64  `json:"uploaderId" example:"3"`
	UploaderName    string `json:"uploaderName" example:"S100"`
	UploadedAt      string `json:"uploadedAt" example:"2024-01-15T10:00:00Z"`
}

// StudentNoteListResponse is what a student sees: the approved catalogue plus
// their own uploads regardless of status.
type StudentNoteListResponse struct {
	Notes     []NoteResponse `json:"notes"`
	MyUploads []NoteResponse `json:"myUploads"`
}

// TeacherNoteListResponse is the paginated moderation view.
type TeacherNoteListResponse struct {
	Notes      []NoteResponse `json:"notes"`
	Tab        string         `json:"tab"`
	Pagination PaginationInfo `json:"pagination"`
}
