package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/noah-isme/mcat-progress-api/internal/models"
	"github.com/noah-isme/mcat-progress-api/pkg/database"
)

const profileColumns = `uid, email, name, zipcode, gpa, degrees, target, ecs_targets, shared_with, profile_complete, created_at, updated_at`

// ProfileRepository persists profiles and the extracurriculars captured during setup.
type ProfileRepository struct {
	db *sqlx.DB
}

// NewProfileRepository creates a new instance of ProfileRepository.
func NewProfileRepository(db *sqlx.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

// FindByUID returns the profile owned by uid. sql.ErrNoRows is returned untouched.
func (r *ProfileRepository) FindByUID(ctx context.Context, uid string) (*models.Profile, error) {
	query := fmt.Sprintf(`SELECT %s FROM profiles WHERE uid = $1 LIMIT 1`, profileColumns)
	var profile models.Profile
	if err := r.db.GetContext(ctx, &profile, query, uid); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find profile by uid: %w", err)
	}
	return &profile, nil
}

// Upsert creates the profile or updates its mutable fields. Name and email are only written on
// insert. When setup is non-nil the profile-setup extracurriculars are replaced in the same transaction.
func (r *ProfileRepository) Upsert(ctx context.Context, profile *models.Profile, setup []models.SetupActivity) error {
	now := time.Now().UTC()
	if profile.CreatedAt.IsZero() {
		profile.CreatedAt = now
	}
	profile.UpdatedAt = now
	if profile.SharedWith == nil {
		profile.SharedWith = pq.StringArray{}
	}
	if profile.CategoryTargets == nil {
		profile.CategoryTargets = models.DefaultCategoryTargets(models.DefaultCategoryHours)
	}
	profile.Target = profile.Target.Recompute()

	const query = `INSERT INTO profiles (uid, email, name, zipcode, gpa, degrees, target, ecs_targets, shared_with, profile_complete, created_at, updated_at)
VALUES (:uid, :email, :name, :zipcode, :gpa, :degrees, :target, :ecs_targets, :shared_with, :profile_complete, :created_at, :updated_at)
ON CONFLICT (uid) DO UPDATE SET zipcode = EXCLUDED.zipcode, gpa = EXCLUDED.gpa, degrees = EXCLUDED.degrees, target = EXCLUDED.target, updated_at = EXCLUDED.updated_at`

	return database.WithTx(ctx, r.db, func(tx *sqlx.Tx) error {
		if _, err := tx.NamedExecContext(ctx, query, profile); err != nil {
			return fmt.Errorf("upsert profile: %w", err)
		}
		if setup == nil {
			return nil
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM setup_extracurriculars WHERE uid = $1`, profile.UID); err != nil {
			return fmt.Errorf("clear setup extracurriculars: %w", err)
		}
		const insert = `INSERT INTO setup_extracurriculars (id, uid, category, organization, start_date, end_date, hours)
VALUES (:id, :uid, :category, :organization, :start_date, :end_date, :hours)`
		for i := range setup {
			if setup[i].ID == "" {
				setup[i].ID = uuid.NewString()
			}
			setup[i].UID = profile.UID
			if _, err := tx.NamedExecContext(ctx, insert, &setup[i]); err != nil {
				return fmt.Errorf("insert setup extracurricular: %w", err)
			}
		}
		return nil
	})
}

// ListSetupActivities returns the extracurriculars captured during profile setup.
func (r *ProfileRepository) ListSetupActivities(ctx context.Context, uid string) ([]models.SetupActivity, error) {
	const query = `SELECT id, uid, category, organization, start_date, end_date, hours FROM setup_extracurriculars WHERE uid = $1 ORDER BY category, organization`
	var out []models.SetupActivity
	if err := r.db.SelectContext(ctx, &out, query, uid); err != nil {
		return nil, fmt.Errorf("list setup extracurriculars: %w", err)
	}
	return out, nil
}

// UpdateTarget stores a new MCAT target; the total is recomputed before writing.
func (r *ProfileRepository) UpdateTarget(ctx context.Context, uid string, target models.Target) error {
	const query = `UPDATE profiles SET target = $2, updated_at = $3 WHERE uid = $1`
	return r.execOne(ctx, "update target", query, uid, target.Recompute(), time.Now().UTC())
}

// UpdateCategoryTargets stores the extracurricular hour targets.
func (r *ProfileRepository) UpdateCategoryTargets(ctx context.Context, uid string, targets models.CategoryTargets) error {
	const query = `UPDATE profiles SET ecs_targets = $2, updated_at = $3 WHERE uid = $1`
	return r.execOne(ctx, "update ecs targets", query, uid, targets, time.Now().UTC())
}

// UpdateSharedWith replaces the viewer allow-list.
func (r *ProfileRepository) UpdateSharedWith(ctx context.Context, uid string, emails []string) error {
	const query = `UPDATE profiles SET shared_with = $2, updated_at = $3 WHERE uid = $1`
	return r.execOne(ctx, "update shared with", query, uid, pq.StringArray(emails), time.Now().UTC())
}

// MarkComplete flags the profile as complete.
func (r *ProfileRepository) MarkComplete(ctx context.Context, uid string) error {
	const query = `UPDATE profiles SET profile_complete = TRUE, updated_at = $2 WHERE uid = $1 AND profile_complete = FALSE`
	if _, err := r.db.ExecContext(ctx, query, uid, time.Now().UTC()); err != nil {
		return fmt.Errorf("mark profile complete: %w", err)
	}
	return nil
}

// Delete removes the profile and every collection it owns in one transaction.
func (r *ProfileRepository) Delete(ctx context.Context, uid string) error {
	children := []string{
		`DELETE FROM practice_logs WHERE uid = $1`,
		`DELETE FROM mcat_attempts WHERE uid = $1`,
		`DELETE FROM extracurriculars WHERE uid = $1`,
		`DELETE FROM setup_extracurriculars WHERE uid = $1`,
		`DELETE FROM application_cycles WHERE uid = $1`,
	}
	return database.WithTx(ctx, r.db, func(tx *sqlx.Tx) error {
		for _, stmt := range children {
			if _, err := tx.ExecContext(ctx, stmt, uid); err != nil {
				return fmt.Errorf("delete profile children: %w", err)
			}
		}
		res, err := tx.ExecContext(ctx, `DELETE FROM profiles WHERE uid = $1`, uid)
		if err != nil {
			return fmt.Errorf("delete profile: %w", err)
		}
		return ensureAffected(res)
	})
}

func (r *ProfileRepository) execOne(ctx context.Context, op, query string, args ...interface{}) error {
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return ensureAffected(res)
}

// ensureAffected maps a zero-row write to sql.ErrNoRows.
func ensureAffected(res sql.Result) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
