package repository

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/mcat-progress-api/internal/models"
)

var profileRowColumns = []string{"uid", "email", "name", "zipcode", "gpa", "degrees", "target", "ecs_targets", "shared_with", "profile_complete", "created_at", "updated_at"}

func TestProfileFindByUID(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewProfileRepository(db)

	now := time.Now()
	rows := sqlmock.NewRows(profileRowColumns).AddRow(
		"uid-1", "amy@example.com", "Amy", "94110",
		[]byte(`{"undergrad":{"overall":3.8,"science":3.7},"grad":{}}`),
		[]byte(`{"undergrad":[{"degree":"BS Biology","school":"UCSF"}],"grad":[]}`),
		[]byte(`{"chemPhys":128,"cars":127,"bioBiochem":129,"psychSoc":130}`),
		[]byte(`{"clinical":150}`),
		"{viewer@example.com}", true, now, now,
	)
	mock.ExpectQuery(regexp.QuoteMeta("FROM profiles WHERE uid = $1 LIMIT 1")).
		WithArgs("uid-1").
		WillReturnRows(rows)

	profile, err := repo.FindByUID(context.Background(), "uid-1")
	require.NoError(t, err)
	assert.Equal(t, "Amy", profile.Name)
	assert.Equal(t, 514, profile.Target.Total)
	require.NotNil(t, profile.GPA.Undergrad.Overall)
	assert.Equal(t, 3.8, *profile.GPA.Undergrad.Overall)
	assert.Equal(t, "UCSF", profile.Degrees.Undergrad[0].School)
	assert.Equal(t, float64(150), profile.CategoryTargets[models.CategoryClinical])
	assert.Equal(t, []string{"viewer@example.com"}, []string(profile.SharedWith))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProfileFindByUIDNotFound(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewProfileRepository(db)

	mock.ExpectQuery("FROM profiles").WillReturnError(sql.ErrNoRows)

	_, err := repo.FindByUID(context.Background(), "missing")
	assert.True(t, errors.Is(err, sql.ErrNoRows))
}

func TestProfileUpsertReplacesSetupActivities(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewProfileRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO profiles").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM setup_extracurriculars WHERE uid = $1")).
		WithArgs("uid-1").
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec("INSERT INTO setup_extracurriculars").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	profile := &models.Profile{UID: "uid-1", Email: "amy@example.com", Name: "Amy", Target: models.Target{CARS: 128}}
	setup := []models.SetupActivity{{Category: models.CategoryClinical, Organization: "Free Clinic", Hours: 40}}
	require.NoError(t, repo.Upsert(context.Background(), profile, setup))

	assert.Equal(t, 128, profile.Target.Total)
	assert.NotEmpty(t, setup[0].ID)
	assert.Equal(t, "uid-1", setup[0].UID)
	assert.Len(t, profile.CategoryTargets, 4)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProfileUpsertRollsBackOnFailure(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewProfileRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO profiles").WillReturnError(errors.New("boom"))
	mock.ExpectRollback()

	err := repo.Upsert(context.Background(), &models.Profile{UID: "uid-1"}, nil)
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProfileDeleteCascades(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewProfileRepository(db)

	mock.ExpectBegin()
	for _, table := range []string{"practice_logs", "mcat_attempts", "extracurriculars", "setup_extracurriculars", "application_cycles"} {
		mock.ExpectExec(regexp.QuoteMeta("DELETE FROM " + table + " WHERE uid = $1")).
			WithArgs("uid-1").
			WillReturnResult(sqlmock.NewResult(0, 1))
	}
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM profiles WHERE uid = $1")).
		WithArgs("uid-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.Delete(context.Background(), "uid-1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProfileDeleteMissingRollsBack(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewProfileRepository(db)

	mock.ExpectBegin()
	for i := 0; i < 5; i++ {
		mock.ExpectExec("DELETE FROM").WillReturnResult(sqlmock.NewResult(0, 0))
	}
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM profiles WHERE uid = $1")).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := repo.Delete(context.Background(), "ghost")
	assert.True(t, errors.Is(err, sql.ErrNoRows))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProfileUpdateTargetRecomputesTotal(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewProfileRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE profiles SET target = $2, updated_at = $3 WHERE uid = $1")).
		WithArgs("uid-1", []byte(`{"chemPhys":128,"cars":127,"bioBiochem":0,"psychSoc":0,"total":255}`), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.UpdateTarget(context.Background(), "uid-1", models.Target{ChemPhys: 128, CARS: 127, Total: 999})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProfileUpdateSharedWithMissingProfile(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewProfileRepository(db)

	mock.ExpectExec("UPDATE profiles SET shared_with").WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateSharedWith(context.Background(), "ghost", []string{"a@example.com"})
	assert.True(t, errors.Is(err, sql.ErrNoRows))
}
