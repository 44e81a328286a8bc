package services

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/oguzk/noteshub/internal/app/models"
	"github.com/oguzk/noteshub/internal/app/models/dto"
	"github.com/oguzk/noteshub/internal/app/repositories"
	"github.com/oguzk/noteshub/internal/pkg/apperrors"
	"github.com/oguzk/noteshub/internal/pkg/helpers"
)

// In-memory repository fakes used by the service tests.

type mockUserRepo struct {
	users  map[int64]*models.User
	nextID int64
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[int64]*models.User), nextID: 1}
}

func (m *mockUserRepo) Create(_ context.Context, user *models.User) (int64, error) {
	for _, u := range m.users {
		if u.RollNumber == user.RollNumber {
			return 0, apperrors.ErrRollNumberExists
		}
		if user.Username != nil && u.Username != nil && *u.Username == *user.Username {
			return 0, apperrors.ErrUsernameExists
		}
	}
	id := m.nextID
	m.nextID++
	stored := *user
	stored.ID = id
	m.users[id] = &stored
	return id, nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id int64) (*models.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	copied := *u
	return &copied, nil
}

func (m *mockUserRepo) GetByRollNumber(_ context.Context, rollNumber string) (*models.User, error) {
	for _, u := range m.users {
		if u.RollNumber == rollNumber {
			copied := *u
			return &copied, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (m *mockUserRepo) GetByUsername(_ context.Context, username string) (*models.User, error) {
	for _, u := range m.users {
		if u.Username != nil && *u.Username == username {
			copied := *u
			return &copied, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (m *mockUserRepo) RollNumberExists(ctx context.Context, rollNumber string) (bool, error) {
	_, err := m.GetByRollNumber(ctx, rollNumber)
	return err == nil, nil
}

func (m *mockUserRepo) UsernameExists(ctx context.Context, username string) (bool, error) {
	_, err := m.GetByUsername(ctx, username)
	return err == nil, nil
}

func (m *mockUserRepo) UpdateLastLogin(_ context.Context, id int64) error {
	u, ok := m.users[id]
	if !ok {
		return apperrors.ErrUserNotFound
	}
	now := time.Now()
	u.LastLoginAt = &now
	return nil
}

type mockNoteRepo struct {
	notes  map[int64]*models.Note
	nextID int64
}

func newMockNoteRepo() *mockNoteRepo {
	return &mockNoteRepo{notes: make(map[int64]*models.Note), nextID: 1}
}

func (m *mockNoteRepo) Create(_ context.Context, note *models.Note) (int64, error) {
	id := m.nextID
	m.nextID++
	stored := *note
	stored.ID = id
	m.notes[id] = &stored
	return id, nil
}

func (m *mockNoteRepo) GetByID(_ context.Context, id int64) (*models.Note, error) {
	n, ok := m.notes[id]
	if !ok {
		return nil, apperrors.ErrNoteNotFound
	}
	copied := *n
	return &copied, nil
}

func (m *mockNoteRepo) UpdateStatus(_ context.Context, note *models.Note) error {
	stored, ok := m.notes[note.ID]
	if !ok {
		return apperrors.ErrNoteNotFound
	}
	stored.Status = note.Status
	stored.RejectionReason = note.RejectionReason
	stored.ApprovedBy = note.ApprovedBy
	stored.ApprovedAt = note.ApprovedAt
	return nil
}

func (m *mockNoteRepo) Delete(_ context.Context, id int64) error {
	if _, ok := m.notes[id]; !ok {
		return apperrors.ErrNoteNotFound
	}
	delete(m.notes, id)
	return nil
}

func sortNewestFirst(notes []*models.Note) {
	sort.Slice(notes, func(i, j int) bool {
		return notes[i].UploadedAt.After(notes[j].UploadedAt)
	})
}

func (m *mockNoteRepo) ListApproved(_ context.Context, filter repositories.ApprovedNotesFilter) ([]*models.Note, error) {
	var result []*models.Note
	for _, n := range m.notes {
		if n.Status != models.StatusApproved {
			continue
		}
		if filter.Year != "" && n.Year != filter.Year {
			continue
		}
		if filter.Branch != "" && n.Branch != filter.Branch {
			continue
		}
		if filter.Subject != "" && n.Subject != filter.Subject {
			continue
		}
		copied := *n
		result = append(result, &copied)
	}
	sortNewestFirst(result)
	return result, nil
}

func (m *mockNoteRepo) ListByUploader(_ context.Context, uploaderID int64) ([]*models.Note, error) {
	var result []*models.Note
	for _, n := range m.notes {
		if n.UploaderID == uploaderID {
			copied := *n
			result = append(result, &copied)
		}
	}
	sortNewestFirst(result)
	return result, nil
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

func (m *mockNoteRepo) ListForModeration(_ context.Context, params repositories.ModerationListParams) ([]*models.Note, dto.PaginationInfo, error) {
	var matched []*models.Note
	for _, n := range m.notes {
		if params.Status != nil && n.Status != *params.Status {
			continue
		}
		if params.UploaderID != nil && n.UploaderID != *params.UploaderID {
			continue
		}
		if params.Year != "" && !containsFold(n.Year, params.Year) {
			continue
		}
		if params.Branch != "" && !containsFold(n.Branch, params.Branch) {
			continue
		}
		if params.Subject != "" && !containsFold(n.Subject, params.Subject) {
			continue
		}
		copied := *n
		matched = append(matched, &copied)
	}
	sortNewestFirst(matched)

	pagination := helpers.NewPaginationInfo(int64(len(matched)), params.Page, params.Size)
	offset, limit := helpers.CalculateOffsetLimit(params.Page, params.Size)
	start := int(offset)
	if start > len(matched) {
		start = len(matched)
	}
	end := start + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], pagination, nil
}

type storedToken struct {
	userID     int64
	expiryDate time.Time
	isRevoked  bool
}

type mockTokenRepo struct {
	tokens map[string]*storedToken
}

func newMockTokenRepo() *mockTokenRepo {
	return &mockTokenRepo{tokens: make(map[string]*storedToken)}
}

func (m *mockTokenRepo) CreateToken(_ context.Context, token string, userID int64, expiryDate time.Time) error {
	if _, ok := m.tokens[token]; ok {
		return apperrors.ErrTokenInvalid
	}
	m.tokens[token] = &storedToken{userID: userID, expiryDate: expiryDate}
	return nil
}

func (m *mockTokenRepo) GetTokenByValue(_ context.Context, token string) (int64, time.Time, bool, error) {
	t, ok := m.tokens[token]
	if !ok {
		return 0, time.Time{}, false, apperrors.ErrTokenNotFound
	}
	return t.userID, t.expiryDate, t.isRevoked, nil
}

func (m *mockTokenRepo) RevokeToken(_ context.Context, token string) error {
	if t, ok := m.tokens[token]; ok {
		t.isRevoked = true
	}
	return nil
}
