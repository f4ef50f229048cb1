package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/mcat-progress-api/internal/models"
)

const practiceLogColumns = `id, uid, seq, date, section, subtopic, platform, raw_score, total_questions, percent, scaled_score, created_at`

// PracticeLogRepository stores the append-only practice log. seq preserves insertion order.
type PracticeLogRepository struct {
	db *sqlx.DB
}

// NewPracticeLogRepository creates a new instance of PracticeLogRepository.
func NewPracticeLogRepository(db *sqlx.DB) *PracticeLogRepository {
	return &PracticeLogRepository{db: db}
}

// Create appends a practice log and fills the generated sequence number.
func (r *PracticeLogRepository) Create(ctx context.Context, entry *models.PracticeLogEntry) error {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO practice_logs (id, uid, date, section, subtopic, platform, raw_score, total_questions, percent, scaled_score, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11) RETURNING seq`
	err := r.db.QueryRowxContext(ctx, query,
		entry.ID, entry.UID, entry.Date, entry.Section, entry.Subtopic, entry.Platform,
		entry.RawScore, entry.TotalQuestions, entry.Percent, entry.ScaledScore, entry.CreatedAt,
	).Scan(&entry.Seq)
	if err != nil {
		return fmt.Errorf("create practice log: %w", err)
	}
	return nil
}

// ListByUID returns every practice log in insertion order.
func (r *PracticeLogRepository) ListByUID(ctx context.Context, uid string) ([]models.PracticeLogEntry, error) {
	query := fmt.Sprintf(`SELECT %s FROM practice_logs WHERE uid = $1 ORDER BY seq ASC`, practiceLogColumns)
	var logs []models.PracticeLogEntry
	if err := r.db.SelectContext(ctx, &logs, query, uid); err != nil {
		return nil, fmt.Errorf("list practice logs: %w", err)
	}
	return logs, nil
}
