package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/mcat-progress-api/internal/models"
	"github.com/noah-isme/mcat-progress-api/pkg/jobs"
)

type recordingAuditStore struct {
	mu       sync.Mutex
	entries  []*models.AuditLog
	failures int
}

func (r *recordingAuditStore) Create(_ context.Context, entry *models.AuditLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failures > 0 {
		r.failures--
		return errors.New("db unavailable")
	}
	r.entries = append(r.entries, entry)
	return nil
}

func TestAuditServiceWritesAsynchronously(t *testing.T) {
	store := &recordingAuditStore{failures: 1}
	svc := NewAuditService(store, nil, jobs.QueueConfig{Workers: 1, MaxRetries: 2, RetryDelay: time.Millisecond})
	svc.Start(context.Background())

	uid := "u1"
	entry := &models.AuditLog{UID: &uid, Action: models.AuditActionPracticeLog, Resource: "practice_log", Status: 201}
	require.NoError(t, svc.Create(context.Background(), entry))
	assert.NotEmpty(t, entry.ID)
	assert.False(t, entry.CreatedAt.IsZero())

	svc.Stop()
	require.Len(t, store.entries, 1)
	assert.Equal(t, models.AuditActionPracticeLog, store.entries[0].Action)
}

func TestAuditServiceRejectsBeforeStart(t *testing.T) {
	svc := NewAuditService(&recordingAuditStore{}, nil, jobs.QueueConfig{})
	assert.Error(t, svc.Create(context.Background(), &models.AuditLog{}))
}
