package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oguzk/noteshub/internal/app/models"
	"github.com/oguzk/noteshub/internal/app/models/dto"
	"github.com/oguzk/noteshub/internal/pkg/apperrors"
	"github.com/oguzk/noteshub/internal/pkg/helpers"
	"github.com/oguzk/noteshub/internal/pkg/logger"
)

// noteRepository is the postgres implementation of NoteRepository.
type noteRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewNoteRepository creates a postgres-backed NoteRepository.
func NewNoteRepository(db *pgxpool.Pool) NoteRepository {
	return &noteRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// selectNoteQuery joins the uploader so listings can show who uploaded what.
func (r *noteRepository) selectNoteQuery() squirrel.SelectBuilder {
	return r.sb.Select(
		"n.id", "n.uploader_id", "n.year", "n.branch", "n.subject", "n.chapter",
		"n.file_name", "n.file_path", "n.file_size",
		"n.status", "n.rejection_reason", "n.approved_by", "n.approved_at", "n.uploaded_at",
		"COALESCE(u.username, u.roll_number) AS uploader_name",
	).From("notes n").
		Join("users u ON n.uploader_id = u.id")
}

func scanNote(row pgx.Row) (*models.Note, error) {
	var note models.Note
	err := row.Scan(
		&note.ID, &note.UploaderID, &note.Year, &note.Branch, &note.Subject, &note.Chapter,
		&note.FileName, &note.FilePath, &note.FileSize,
		&note.Status, &note.RejectionReason, &note.ApprovedBy, &note.ApprovedAt, &note.UploadedAt,
		&note.UploaderName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNoteNotFound
		}
		logger.Error().Err(err).Msg("Error scanning note")
		return nil, err
	}
	return &note, nil
}

func (r *noteRepository) queryNotes(ctx context.Context, builder squirrel.SelectBuilder) ([]*models.Note, error) {
	sqlStr, args, err := builder.ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building note list SQL")
		return nil, err
	}

	rows, err := r.db.Query(ctx, sqlStr, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing note list query")
		return nil, err
	}
	defer rows.Close()

	notes := make([]*models.Note, 0)
	for rows.Next() {
		note, err := scanNote(rows)
		if err != nil {
			return nil, err
		}
		notes = append(notes, note)
	}

	if err = rows.Err(); err != nil {
		logger.Error().Err(err).Msg("Error iterating note rows")
		return nil, fmt.Errorf("database iteration error: %w", err)
	}

	return notes, nil
}

// Create inserts a new note and returns its id.
func (r *noteRepository) Create(ctx context.Context, note *models.Note) (int64, error) {
	sql, args, err := r.sb.Insert("notes").
		Columns("uploader_id", "year", "branch", "subject", "chapter",
			"file_name", "file_path", "file_size",
			"status", "rejection_reason", "approved_by", "approved_at").
		Values(note.UploaderID, note.Year, note.Branch, note.Subject, note.Chapter,
			note.FileName, note.FilePath, note.FileSize,
			note.Status, note.RejectionReason, note.ApprovedBy, note.ApprovedAt).
		Suffix("RETURNING id").
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building create note SQL")
		return 0, err
	}

	var id int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		logger.Error().Err(err).Msg("Error executing create note query")
		return 0, err
	}

	return id, nil
}

// GetByID retrieves a single note by id.
func (r *noteRepository) GetByID(ctx context.Context, id int64) (*models.Note, error) {
	sqlStr, args, err := r.selectNoteQuery().Where(squirrel.Eq{"n.id": id}).ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get note by ID SQL")
		return nil, err
	}

	return scanNote(r.db.QueryRow(ctx, sqlStr, args...))
}

// UpdateStatus writes the moderation fields of a note in one row update.
func (r *noteRepository) UpdateStatus(ctx context.Context, note *models.Note) error {
	sql, args, err := r.sb.Update("notes").
		Set("status", note.Status).
		Set("rejection_reason", note.RejectionReason).
		Set("approved_by", note.ApprovedBy).
		Set("approved_at", note.ApprovedAt).
		Where(squirrel.Eq{"id": note.ID}).
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building update note status SQL")
		return err
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("noteID", note.ID).Msg("Error executing update note status query")
		return err
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNoteNotFound
	}

	return nil
}

// Delete deletes a note by id.
func (r *noteRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("notes").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building delete note SQL")
		return err
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("noteID", id).Msg("Error executing delete note query")
		return err
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNoteNotFound
	}

	return nil
}

// ListApproved returns the approved catalogue, optionally narrowed by
// equality filters, newest first.
func (r *noteRepository) ListApproved(ctx context.Context, filter ApprovedNotesFilter) ([]*models.Note, error) {
	builder := r.selectNoteQuery().Where(squirrel.Eq{"n.status": models.StatusApproved})

	if filter.Year != "" {
		builder = builder.Where(squirrel.Eq{"n.year": filter.Year})
	}
	if filter.Branch != "" {
		builder = builder.Where(squirrel.Eq{"n.branch": filter.Branch})
	}
	if filter.Subject != "" {
		builder = builder.Where(squirrel.Eq{"n.subject": filter.Subject})
	}

	return r.queryNotes(ctx, builder.OrderBy("n.uploaded_at DESC"))
}

// ListByUploader returns every note a user uploaded, any status, newest first.
func (r *noteRepository) ListByUploader(ctx context.Context, uploaderID int64) ([]*models.Note, error) {
	builder := r.selectNoteQuery().
		Where(squirrel.Eq{"n.uploader_id": uploaderID}).
		OrderBy("n.uploaded_at DESC")
	return r.queryNotes(ctx, builder)
}

// ListForModeration returns the paginated teacher view with partial-match
// filters on the classification fields.
func (r *noteRepository) ListForModeration(ctx context.Context, params ModerationListParams) ([]*models.Note, dto.PaginationInfo, error) {
	builder := r.selectNoteQuery()
	countBuilder := r.sb.Select("count(*)").From("notes n")

	applyFilters := func(where func(pred interface{}, args ...interface{})) {
		if params.Status != nil {
			where(squirrel.Eq{"n.status": *params.Status})
		}
		if params.UploaderID != nil {
			where(squirrel.Eq{"n.uploader_id": *params.UploaderID})
		}
		if params.Year != "" {
			where(squirrel.ILike{"n.year": "%" + params.Year + "%"})
		}
		if params.Branch != "" {
			where(squirrel.ILike{"n.branch": "%" + params.Branch + "%"})
		}
		if params.Subject != "" {
			where(squirrel.ILike{"n.subject": "%" + params.Subject + "%"})
		}
	}

	applyFilters(func(pred interface{}, args ...interface{}) { builder = builder.Where(pred, args...) })
	applyFilters(func(pred interface{}, args ...interface{}) { countBuilder = countBuilder.Where(pred, args...) })

	countSql, countArgs, err := countBuilder.ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building count query SQL")
		return nil, dto.PaginationInfo{}, err
	}

	var totalItems int64
	if err := r.db.QueryRow(ctx, countSql, countArgs...).Scan(&totalItems); err != nil {
		logger.Error().Err(err).Msg("Error executing count query")
		return nil, dto.PaginationInfo{}, err
	}

	pagination := helpers.NewPaginationInfo(totalItems, params.Page, params.Size)

	if totalItems == 0 {
		return []*models.Note{}, pagination, nil
	}

	offset, limit := helpers.CalculateOffsetLimit(params.Page, params.Size)
	builder = builder.OrderBy("n.uploaded_at DESC").Limit(uint64(limit)).Offset(offset)

	notes, err := r.queryNotes(ctx, builder)
	if err != nil {
		return nil, dto.PaginationInfo{}, err
	}

	return notes, pagination, nil
}
