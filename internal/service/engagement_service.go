package service

import (
	"context"
	"errors"

	"github.com/metaview/metaview/internal/analysis"
	apperrors "github.com/metaview/metaview/internal/errors"
	"github.com/metaview/metaview/internal/model"
	engagementrepo "github.com/metaview/metaview/internal/repository/engagement"
	uploadrepo "github.com/metaview/metaview/internal/repository/upload"
	"github.com/sirupsen/logrus"
)

// Analyzer produces an engagement report for one recording. Satisfied by
// analysis.Pipeline.
type Analyzer interface {
	Analyze(ctx context.Context, in analysis.Input) *model.EngagementReport
}

// EngagementService defines operations for engagement report management
type EngagementService interface {
	// Ensure returns the upload's report, computing and persisting one when
	// none exists. With forceRecompute the stored report is replaced.
	Ensure(ctx context.Context, uploadID int64, forceRecompute bool) (*model.EngagementReport, error)

	// Backfill computes reports for every upload that has none, returning
	// the number of reports created. Per-upload failures are logged and
	// skipped.
	Backfill(ctx context.Context) (int, error)
}

// engagementService implements EngagementService
type engagementService struct {
	uploadRepo     uploadrepo.Repository
	engagementRepo engagementrepo.Repository
	analyzer       Analyzer
	log            *logrus.Logger
}

// NewEngagementService creates a new EngagementService
func NewEngagementService(uploadRepo uploadrepo.Repository, engagementRepo engagementrepo.Repository, analyzer Analyzer, log *logrus.Logger) EngagementService {
	return &engagementService{
		uploadRepo:     uploadRepo,
		engagementRepo: engagementRepo,
		analyzer:       analyzer,
		log:            log,
	}
}

// Ensure returns the upload's report, computing one only when needed.
func (s *engagementService) Ensure(ctx context.Context, uploadID int64, forceRecompute bool) (*model.EngagementReport, error) {
	if !forceRecompute {
		existing, err := s.engagementRepo.GetByUploadID(ctx, uploadID)
		if err == nil {
			return existing, nil
		}
		if !isNotFound(err) {
			return nil, err
		}
	}

	upload, err := s.uploadRepo.GetByID(ctx, uploadID)
	if err != nil {
		return nil, err
	}

	videoPath := ""
	if upload.StoredPath != nil {
		videoPath = *upload.StoredPath
	}

	report := s.analyzer.Analyze(ctx, analysis.Input{
		UploadID:        upload.ID,
		VideoPath:       videoPath,
		DurationSeconds: upload.DurationSeconds,
		IsQualified:     upload.IsQualified,
	})

	if err := s.engagementRepo.Replace(ctx, report); err != nil {
		return nil, err
	}

	return report, nil
}

// Backfill computes reports for every upload that has none.
func (s *engagementService) Backfill(ctx context.Context) (int, error) {
	uploads, err := s.uploadRepo.ListMissingEngagement(ctx)
	if err != nil {
		return 0, err
	}

	created := 0
	for _, upload := range uploads {
		if _, err := s.Ensure(ctx, upload.ID, false); err != nil {
			s.log.WithError(err).WithField("upload_id", upload.ID).Warn("backfill skipped upload")
			continue
		}
		created++
	}

	return created, nil
}

func isNotFound(err error) bool {
	var appErr *apperrors.AppError
	return errors.As(err, &appErr) && appErr.Code == apperrors.CodeNotFound
}
