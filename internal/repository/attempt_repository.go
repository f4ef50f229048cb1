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

const attemptColumns = `id, uid, seq, date, chem_phys, cars, bio_biochem, psych_soc, total, prep_details, created_at, updated_at`

// AttemptRepository stores official MCAT attempts.
type AttemptRepository struct {
	db *sqlx.DB
}

// NewAttemptRepository creates a new instance of AttemptRepository.
func NewAttemptRepository(db *sqlx.DB) *AttemptRepository {
	return &AttemptRepository{db: db}
}

// Create inserts an attempt. The total is recomputed from the section scores.
func (r *AttemptRepository) Create(ctx context.Context, attempt *models.OfficialAttempt) error {
	if attempt.ID == "" {
		attempt.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	attempt.CreatedAt, attempt.UpdatedAt = now, now
	attempt.AttemptScores = attempt.AttemptScores.Recompute()

	const query = `INSERT INTO mcat_attempts (id, uid, date, chem_phys, cars, bio_biochem, psych_soc, total, prep_details, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11) RETURNING seq`
	err := r.db.QueryRowxContext(ctx, query,
		attempt.ID, attempt.UID, attempt.Date, attempt.ChemPhys, attempt.CARS, attempt.BioBiochem, attempt.PsychSoc,
		attempt.Total, attempt.PrepDetails, attempt.CreatedAt, attempt.UpdatedAt,
	).Scan(&attempt.Seq)
	if err != nil {
		return fmt.Errorf("create mcat attempt: %w", err)
	}
	return nil
}

// Update rewrites an attempt owned by uid. The total is recomputed from the section scores.
func (r *AttemptRepository) Update(ctx context.Context, attempt *models.OfficialAttempt) error {
	attempt.UpdatedAt = time.Now().UTC()
	attempt.AttemptScores = attempt.AttemptScores.Recompute()
	const query = `UPDATE mcat_attempts SET date = $3, chem_phys = $4, cars = $5, bio_biochem = $6, psych_soc = $7, total = $8, prep_details = $9, updated_at = $10
WHERE id = $1 AND uid = $2`
	res, err := r.db.ExecContext(ctx, query,
		attempt.ID, attempt.UID, attempt.Date, attempt.ChemPhys, attempt.CARS, attempt.BioBiochem, attempt.PsychSoc,
		attempt.Total, attempt.PrepDetails, attempt.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update mcat attempt: %w", err)
	}
	return ensureAffected(res)
}

// FindByID returns an attempt owned by uid.
func (r *AttemptRepository) FindByID(ctx context.Context, uid, id string) (*models.OfficialAttempt, error) {
	query := fmt.Sprintf(`SELECT %s FROM mcat_attempts WHERE id = $1 AND uid = $2 LIMIT 1`, attemptColumns)
	var attempt models.OfficialAttempt
	if err := r.db.GetContext(ctx, &attempt, query, id, uid); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find mcat attempt: %w", err)
	}
	return &attempt, nil
}

// ListByUID returns attempts in the order they were recorded.
func (r *AttemptRepository) ListByUID(ctx context.Context, uid string) ([]models.OfficialAttempt, error) {
	query := fmt.Sprintf(`SELECT %s FROM mcat_attempts WHERE uid = $1 ORDER BY seq ASC`, attemptColumns)
	var attempts []models.OfficialAttempt
	if err := r.db.SelectContext(ctx, &attempts, query, uid); err != nil {
		return nil, fmt.Errorf("list mcat attempts: %w", err)
	}
	return attempts, nil
}
