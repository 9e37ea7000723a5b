package ports

import (
	"context"

	"github.com/qiaoguanyu11/actorreal/internal/core/domain"
)

// AuditRecorder persists audit-trail entries for mutating operations.
type AuditRecorder interface {
	Record(ctx context.Context, entry *domain.AuditEntry) error
}

// AuditLog reads the trail back for the admin view.
type AuditLog interface {
	Recent(ctx context.Context, limit int) ([]domain.AuditEntry, error)
}
