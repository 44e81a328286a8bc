package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oguzk/noteshub/internal/app/models"
	"github.com/oguzk/noteshub/internal/app/models/dto"
)

// UserRepository defines identity store operations.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByRollNumber(ctx context.Context, rollNumber string) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	RollNumberExists(ctx context.Context, rollNumber string) (bool, error)
	UsernameExists(ctx context.Context, username string) (bool, error)
	UpdateLastLogin(ctx context.Context, id int64) error
}

// ApprovedNotesFilter narrows the approved catalogue with equality filters.
// Empty fields are ignored.
type ApprovedNotesFilter struct {
	Year    string
	Branch  string
	Subject string
}

// ModerationListParams drives the teacher listing: an optional status, an
// optional uploader (the my-uploads tab), partial-match classification
// filters and 1-based pagination.
type ModerationListParams struct {
	Status     *models.NoteStatus
	UploaderID *int64
	Year       string
	Branch     string
	Subject    string
	Page       int
	Size       int
}

// NoteRepository defines note storage operations. GetByID and the mutating
// operations return apperrors.ErrNoteNotFound for unknown ids.
type NoteRepository interface {
	Create(ctx context.Context, note *models.Note) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Note, error)
	// UpdateStatus persists the moderation fields (status, rejection reason,
	// approver, approval time) as one single-row write.
	UpdateStatus(ctx context.Context, note *models.Note) error
	Delete(ctx context.Context, id int64) error
	ListApproved(ctx context.Context, filter ApprovedNotesFilter) ([]*models.Note, error)
	ListByUploader(ctx context.Context, uploaderID int64) ([]*models.Note, error)
	ListForModeration(ctx context.Context, params ModerationListParams) ([]*models.Note, dto.PaginationInfo, error)
}

// TokenRepository defines refresh token storage operations.
type TokenRepository interface {
	CreateToken(ctx context.Context, token string, userID int64, expiryDate time.Time) error
	GetTokenByValue(ctx context.Context, token string) (userID int64, expiryDate time.Time, isRevoked bool, err error)
	RevokeToken(ctx context.Context, token string) error
}

// Repositories bundles every repository backed by the shared pool.
type Repositories struct {
	User  UserRepository
	Note  NoteRepository
	Token TokenRepository
}

// NewRepositories creates the postgres-backed repository set.
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		User:  NewUserRepository(db),
		Note:  NewNoteRepository(db),
		Token: NewTokenRepository(db),
	}
}
