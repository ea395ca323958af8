package upload

import (
	"context"

	"github.com/metaview/metaview/internal/model"
)

// Repository defines operations for video upload persistence
type Repository interface {
	// Create inserts a new upload record and fills in its generated ID
	Create(ctx context.Context, upload *model.VideoUpload) error

	// GetByID retrieves an upload by its ID
	GetByID(ctx context.Context, id int64) (*model.VideoUpload, error)

	// List retrieves uploads ordered by upload date, newest first
	List(ctx context.Context, limit, offset int) ([]*model.VideoUpload, error)

	// ListMissingEngagement retrieves uploads that have no engagement analysis yet
	ListMissingEngagement(ctx context.Context) ([]*model.VideoUpload, error)

	// Delete removes an upload record
	Delete(ctx context.Context, id int64) error
}
