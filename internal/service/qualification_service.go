package service

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	apperrors "github.com/metaview/metaview/internal/errors"
	"github.com/metaview/metaview/internal/model"
	"github.com/metaview/metaview/internal/probe"
	"github.com/metaview/metaview/internal/qualify"
	periodrepo "github.com/metaview/metaview/internal/repository/period"
	uploadrepo "github.com/metaview/metaview/internal/repository/upload"
	"github.com/sirupsen/logrus"
)

// QualificationService defines the full intake flow for one recording:
// metadata probe, period-timing verdict, persistence, and engagement report.
type QualificationService interface {
	// AnalyzeVideo runs the intake flow. targetPeriod restricts matching to
	// one period; nil tries every configured period in ascending order.
	AnalyzeVideo(ctx context.Context, videoPath string, targetPeriod *int) (*model.VideoUpload, *model.QualificationVerdict, error)
}

// qualificationService implements QualificationService
type qualificationService struct {
	prober        probe.Prober
	qualifier     *qualify.Qualifier
	periodRepo    periodrepo.Repository
	uploadRepo    uploadrepo.Repository
	engagementSvc EngagementService
	uploadDir     string
	log           *logrus.Logger
}

// NewQualificationService creates a new QualificationService
func NewQualificationService(
	prober probe.Prober,
	qualifier *qualify.Qualifier,
	periodRepo periodrepo.Repository,
	uploadRepo uploadrepo.Repository,
	engagementSvc EngagementService,
	uploadDir string,
	log *logrus.Logger,
) QualificationService {
	return &qualificationService{
		prober:        prober,
		qualifier:     qualifier,
		periodRepo:    periodRepo,
		uploadRepo:    uploadRepo,
		engagementSvc: engagementSvc,
		uploadDir:     uploadDir,
		log:           log,
	}
}

// AnalyzeVideo runs the intake flow for one recording.
func (s *qualificationService) AnalyzeVideo(ctx context.Context, videoPath string, targetPeriod *int) (*model.VideoUpload, *model.QualificationVerdict, error) {
	facts, err := s.prober.Probe(ctx, videoPath)
	if err != nil {
		return nil, nil, err
	}

	windows, err := s.periodRepo.List(ctx)
	if err != nil {
		return nil, nil, err
	}

	creationTime := ""
	if facts.CreationTime != nil {
		creationTime = *facts.CreationTime
	}

	verdict := s.qualifier.Qualify(creationTime, facts.DurationSeconds, windows, targetPeriod)

	storedPath, err := s.storeRecording(videoPath)
	if err != nil {
		return nil, nil, err
	}

	upload := &model.VideoUpload{
		Filename:          filepath.Base(videoPath),
		StoredPath:        &storedPath,
		FileSizeBytes:     facts.FileSizeBytes,
		DurationSeconds:   facts.DurationSeconds,
		Resolution:        facts.Resolution,
		VideoCodec:        facts.VideoCodec,
		AudioCodec:        facts.AudioCodec,
		IsQualified:       verdict.IsQualified,
		MatchedPeriod:     verdict.MatchedPeriod,
		ValidationMessage: verdict.Message,
		UploadDate:        time.Now(),
	}
	if verdict.Timing != nil {
		upload.VideoStartTime = &verdict.Timing.VideoStart
		upload.VideoEndTime = &verdict.Timing.VideoEnd
	}

	if err := s.uploadRepo.Create(ctx, upload); err != nil {
		return nil, nil, err
	}

	// The engagement report is derived data; its failure must not undo a
	// recorded verdict.
	if _, err := s.engagementSvc.Ensure(ctx, upload.ID, false); err != nil {
		s.log.WithError(err).WithField("upload_id", upload.ID).Warn("engagement analysis failed")
	}

	return upload, &verdict, nil
}

// storeRecording copies the recording into the configured upload directory
// under a collision-free name. An empty upload directory keeps the file in
// place and records its absolute path.
func (s *qualificationService) storeRecording(videoPath string) (string, error) {
	if s.uploadDir == "" {
		abs, err := filepath.Abs(videoPath)
		if err != nil {
			return "", apperrors.Wrap(err, apperrors.CodeInternal, "failed to resolve recording path")
		}
		return abs, nil
	}

	if err := os.MkdirAll(s.uploadDir, 0755); err != nil {
		return "", apperrors.Wrap(err, apperrors.CodeInternal, "failed to create upload directory")
	}

	dstPath := filepath.Join(s.uploadDir, fmt.Sprintf("%d_%s", time.Now().UnixNano(), filepath.Base(videoPath)))

	src, err := os.Open(videoPath)
	if err != nil {
		return "", apperrors.Wrap(err, apperrors.CodeInternal, "failed to open recording")
	}
	defer src.Close()

	dst, err := os.Create(dstPath)
	if err != nil {
		return "", apperrors.Wrap(err, apperrors.CodeInternal, "failed to create stored recording")
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(dstPath)
		return "", apperrors.Wrap(err, apperrors.CodeInternal, "failed to copy recording")
	}

	return dstPath, nil
}
