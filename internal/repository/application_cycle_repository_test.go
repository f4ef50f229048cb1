package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/mcat-progress-api/internal/models"
)

func TestApplicationCycleCreateAndList(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewApplicationCycleRepository(db)

	mock.ExpectExec("INSERT INTO application_cycles").WillReturnResult(sqlmock.NewResult(1, 1))
	cycle := &models.ApplicationCycle{UID: "uid-1", Year: 2025, Outcomes: models.CycleOutcomes{{School: "UCSF", Status: models.OutcomeInterview}}}
	require.NoError(t, repo.Create(context.Background(), cycle))
	assert.NotEmpty(t, cycle.ID)

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "uid", "year", "schools_applied", "outcomes", "notes", "created_at"}).
		AddRow("c1", "uid-1", 2025, "{UCSF,Stanford}", []byte(`[{"school":"UCSF","status":"Interview"}]`), "", now)
	mock.ExpectQuery(regexp.QuoteMeta("FROM application_cycles WHERE uid = $1 ORDER BY year DESC")).
		WithArgs("uid-1").
		WillReturnRows(rows)

	cycles, err := repo.ListByUID(context.Background(), "uid-1")
	require.NoError(t, err)
	require.Len(t, cycles, 1)
	assert.Equal(t, []string{"UCSF", "Stanford"}, []string(cycles[0].SchoolsApplied))
	assert.Equal(t, models.OutcomeInterview, cycles[0].Outcomes[0].Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}
