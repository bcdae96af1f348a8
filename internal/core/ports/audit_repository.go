package ports

import (
	"context"

	"rms/internal/core/domain/model/audit"
)

// AuditRepository appends audit entries for administrative actions.
type AuditRepository interface {
	Add(ctx context.Context, entry audit.Entry) error
}
