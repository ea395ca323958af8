package engagement

import (
	"context"

	"github.com/metaview/metaview/internal/model"
)

// Repository defines operations for engagement report persistence
type Repository interface {
	// GetByUploadID retrieves the live report for an upload
	GetByUploadID(ctx context.Context, uploadID int64) (*model.EngagementReport, error)

	// Exists reports whether an upload already has a live report
	Exists(ctx context.Context, uploadID int64) (bool, error)

	// Replace atomically swaps the live report for an upload with a new one
	Replace(ctx context.Context, report *model.EngagementReport) error

	// DeleteByUploadID removes the live report for an upload
	DeleteByUploadID(ctx context.Context, uploadID int64) error
}
