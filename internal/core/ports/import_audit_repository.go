package ports

import (
	"context"

	"github.com/relaycrm/crm-system/internal/core/domain"
)

// ImportAuditRepository stores one record per import attempt.
type ImportAuditRepository interface {
	Record(ctx context.Context, run *domain.ImportRun) error
	Recent(ctx context.Context, limit int) ([]*domain.ImportRun, error)
}
