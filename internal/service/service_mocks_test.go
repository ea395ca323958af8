package service

import (
	"context"
	"io"

	"github.com/metaview/metaview/internal/analysis"
	"github.com/metaview/metaview/internal/model"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/mock"
)

// MockUploadRepository is a mock implementation of upload.Repository
type MockUploadRepository struct {
	mock.Mock
}

func (m *MockUploadRepository) Create(ctx context.Context, upload *model.VideoUpload) error {
	args := m.Called(ctx, upload)
	return args.Error(0)
}

func (m *MockUploadRepository) GetByID(ctx context.Context, id int64) (*model.VideoUpload, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.VideoUpload), args.Error(1)
}

func (m *MockUploadRepository) List(ctx context.Context, limit, offset int) ([]*model.VideoUpload, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.VideoUpload), args.Error(1)
}

func (m *MockUploadRepository) ListMissingEngagement(ctx context.Context) ([]*model.VideoUpload, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.VideoUpload), args.Error(1)
}

func (m *MockUploadRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockEngagementRepository is a mock implementation of engagement.Repository
type MockEngagementRepository struct {
	mock.Mock
}

func (m *MockEngagementRepository) GetByUploadID(ctx context.Context, uploadID int64) (*model.EngagementReport, error) {
	args := m.Called(ctx, uploadID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.EngagementReport), args.Error(1)
}

func (m *MockEngagementRepository) Exists(ctx context.Context, uploadID int64) (bool, error) {
	args := m.Called(ctx, uploadID)
	return args.Bool(0), args.Error(1)
}

func (m *MockEngagementRepository) Replace(ctx context.Context, report *model.EngagementReport) error {
	args := m.Called(ctx, report)
	return args.Error(0)
}

func (m *MockEngagementRepository) DeleteByUploadID(ctx context.Context, uploadID int64) error {
	args := m.Called(ctx, uploadID)
	return args.Error(0)
}

// MockPeriodRepository is a mock implementation of period.Repository
type MockPeriodRepository struct {
	mock.Mock
}

func (m *MockPeriodRepository) List(ctx context.Context) ([]model.PeriodWindow, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.PeriodWindow), args.Error(1)
}

func (m *MockPeriodRepository) GetByPeriod(ctx context.Context, period int) (*model.PeriodWindow, error) {
	args := m.Called(ctx, period)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.PeriodWindow), args.Error(1)
}

func (m *MockPeriodRepository) Upsert(ctx context.Context, window *model.PeriodWindow) error {
	args := m.Called(ctx, window)
	return args.Error(0)
}

func (m *MockPeriodRepository) Delete(ctx context.Context, period int) error {
	args := m.Called(ctx, period)
	return args.Error(0)
}

// MockProber is a mock implementation of probe.Prober
type MockProber struct {
	mock.Mock
}

func (m *MockProber) Probe(ctx context.Context, path string) (*model.VideoFacts, error) {
	args := m.Called(ctx, path)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.VideoFacts), args.Error(1)
}

// MockEngagementService is a mock implementation of EngagementService
type MockEngagementService struct {
	mock.Mock
}

func (m *MockEngagementService) Ensure(ctx context.Context, uploadID int64, forceRecompute bool) (*model.EngagementReport, error) {
	args := m.Called(ctx, uploadID, forceRecompute)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.EngagementReport), args.Error(1)
}

func (m *MockEngagementService) Backfill(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

// stubAnalyzer returns a canned report and records the inputs it saw.
type stubAnalyzer struct {
	report *model.EngagementReport
	inputs []analysis.Input
}

func (s *stubAnalyzer) Analyze(_ context.Context, in analysis.Input) *model.EngagementReport {
	s.inputs = append(s.inputs, in)
	return s.report
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}
