package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/noah-isme/mcat-progress-api/internal/models"
)

// ApplicationCycleRepository stores application cycles.
type ApplicationCycleRepository struct {
	db *sqlx.DB
}

// NewApplicationCycleRepository creates a new instance of ApplicationCycleRepository.
func NewApplicationCycleRepository(db *sqlx.DB) *ApplicationCycleRepository {
	return &ApplicationCycleRepository{db: db}
}

// Create inserts a cycle.
func (r *ApplicationCycleRepository) Create(ctx context.Context, cycle *models.ApplicationCycle) error {
	if cycle.ID == "" {
		cycle.ID = uuid.NewString()
	}
	if cycle.CreatedAt.IsZero() {
		cycle.CreatedAt = time.Now().UTC()
	}
	if cycle.SchoolsApplied == nil {
		cycle.SchoolsApplied = pq.StringArray{}
	}
	const query = `INSERT INTO application_cycles (id, uid, year, schools_applied, outcomes, notes, created_at)
VALUES (:id, :uid, :year, :schools_applied, :outcomes, :notes, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, cycle); err != nil {
		return fmt.Errorf("create application cycle: %w", err)
	}
	return nil
}

// ListByUID returns cycles, most recent year first.
func (r *ApplicationCycleRepository) ListByUID(ctx context.Context, uid string) ([]models.ApplicationCycle, error) {
	const query = `SELECT id, uid, year, schools_applied, outcomes, notes, created_at FROM application_cycles WHERE uid = $1 ORDER BY year DESC, created_at DESC`
	var cycles []models.ApplicationCycle
	if err := r.db.SelectContext(ctx, &cycles, query, uid); err != nil {
		return nil, fmt.Errorf("list application cycles: %w", err)
	}
	return cycles, nil
}
