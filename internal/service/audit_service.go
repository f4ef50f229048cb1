package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/mcat-progress-api/internal/models"
	"github.com/noah-isme/mcat-progress-api/pkg/jobs"
)

const auditJobKind = "audit_log"

type auditStore interface {
	Create(ctx context.Context, entry *models.AuditLog) error
}

// AuditService writes audit rows off the request path through a worker queue.
type AuditService struct {
	store   auditStore
	queue   *jobs.Queue
	logger  *zap.Logger
	timeout time.Duration
}

// NewAuditService constructs an AuditService. Call Start before use and Stop on shutdown.
func NewAuditService(store auditStore, logger *zap.Logger, cfg jobs.QueueConfig) *AuditService {
	if logger == nil {
		logger = zap.NewNop()
	}
	cfg.Logger = logger
	s := &AuditService{store: store, logger: logger, timeout: 5 * time.Second}
	s.queue = jobs.NewQueue("audit", s.handle, cfg)
	return s
}

// Start launches the audit workers.
func (s *AuditService) Start(ctx context.Context) {
	s.queue.Start(ctx)
}

// Stop flushes pending audit rows.
func (s *AuditService) Stop() {
	s.queue.Stop()
}

// Create queues an audit row. A full queue drops the row and reports it.
func (s *AuditService) Create(_ context.Context, entry *models.AuditLog) error {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}
	return s.queue.Offer(jobs.Job{ID: entry.ID, Kind: auditJobKind, Payload: entry})
}

func (s *AuditService) handle(ctx context.Context, job jobs.Job) error {
	entry, ok := job.Payload.(*models.AuditLog)
	if !ok {
		return fmt.Errorf("unexpected audit payload %T", job.Payload)
	}
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	return s.store.Create(ctx, entry)
}
