package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/mcat-progress-api/internal/models"
)

const extracurricularColumns = `id, uid, category, organization, role, start_date, end_date, hours, description, created_at, updated_at`

// ExtracurricularRepository stores tracked extracurricular entries.
type ExtracurricularRepository struct {
	db *sqlx.DB
}

// NewExtracurricularRepository creates a new instance of ExtracurricularRepository.
func NewExtracurricularRepository(db *sqlx.DB) *ExtracurricularRepository {
	return &ExtracurricularRepository{db: db}
}

// Create inserts a tracked entry.
func (r *ExtracurricularRepository) Create(ctx context.Context, entry *models.Extracurricular) error {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	entry.CreatedAt, entry.UpdatedAt = now, now
	query := fmt.Sprintf(`INSERT INTO extracurriculars (%s)
VALUES (:id, :uid, :category, :organization, :role, :start_date, :end_date, :hours, :description, :created_at, :updated_at)`, extracurricularColumns)
	if _, err := r.db.NamedExecContext(ctx, query, entry); err != nil {
		return fmt.Errorf("create extracurricular: %w", err)
	}
	return nil
}

// Update rewrites an entry owned by entry.UID.
func (r *ExtracurricularRepository) Update(ctx context.Context, entry *models.Extracurricular) error {
	entry.UpdatedAt = time.Now().UTC()
	const query = `UPDATE extracurriculars SET category = :category, organization = :organization, role = :role, start_date = :start_date,
end_date = :end_date, hours = :hours, description = :description, updated_at = :updated_at WHERE id = :id AND uid = :uid`
	res, err := r.db.NamedExecContext(ctx, query, entry)
	if err != nil {
		return fmt.Errorf("update extracurricular: %w", err)
	}
	return ensureAffected(res)
}

// Delete removes an entry owned by uid.
func (r *ExtracurricularRepository) Delete(ctx context.Context, uid, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM extracurriculars WHERE id = $1 AND uid = $2`, id, uid)
	if err != nil {
		return fmt.Errorf("delete extracurricular: %w", err)
	}
	return ensureAffected(res)
}

// FindByID returns an entry owned by uid.
func (r *ExtracurricularRepository) FindByID(ctx context.Context, uid, id string) (*models.Extracurricular, error) {
	query := fmt.Sprintf(`SELECT %s FROM extracurriculars WHERE id = $1 AND uid = $2 LIMIT 1`, extracurricularColumns)
	var entry models.Extracurricular
	if err := r.db.GetContext(ctx, &entry, query, id, uid); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find extracurricular: %w", err)
	}
	return &entry, nil
}

// ListByUID returns tracked entries, newest first.
func (r *ExtracurricularRepository) ListByUID(ctx context.Context, uid string) ([]models.Extracurricular, error) {
	query := fmt.Sprintf(`SELECT %s FROM extracurriculars WHERE uid = $1 ORDER BY created_at DESC`, extracurricularColumns)
	var entries []models.Extracurricular
	if err := r.db.SelectContext(ctx, &entries, query, uid); err != nil {
		return nil, fmt.Errorf("list extracurriculars: %w", err)
	}
	return entries, nil
}
