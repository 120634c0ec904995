package usecases

import (
	"context"
	"encoding/json"

	"catalog/internal/domain/dataset"
	"catalog/internal/domain/storage"
	"catalog/internal/shared/logger"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type mockDatasetRepository struct {
	mock.Mock
}

func (m *mockDatasetRepository) Retrieve(ctx context.Context, id uuid.UUID) (*dataset.Dataset, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dataset.Dataset), args.Error(1)
}

func (m *mockDatasetRepository) Upsert(ctx context.Context, ds *dataset.Dataset) (*dataset.Dataset, error) {
	args := m.Called(ctx, ds)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dataset.Dataset), args.Error(1)
}

func (m *mockDatasetRepository) Update(ctx context.Context, ds *dataset.Dataset) error {
	args := m.Called(ctx, ds)
	return args.Error(0)
}

func (m *mockDatasetRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *mockDatasetRepository) Find(ctx context.Context, sourceIDs map[dataset.StorageSystem][]string) ([]*dataset.Dataset, error) {
	args := m.Called(ctx, sourceIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*dataset.Dataset), args.Error(1)
}

func (m *mockDatasetRepository) ListAll(ctx context.Context) ([]*dataset.Dataset, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*dataset.Dataset), args.Error(1)
}

func (m *mockDatasetRepository) ListSourceIDs(ctx context.Context, system dataset.StorageSystem) ([]string, error) {
	args := m.Called(ctx, system)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

type mockStorageService struct {
	mock.Mock
}

func (m *mockStorageService) Status(ctx context.Context) storage.SystemStatus {
	args := m.Called(ctx)
	return args.Get(0).(storage.SystemStatus)
}

func (m *mockStorageService) GetDatasets(ctx context.Context, token string) (map[string]dataset.StorageSystemInformation, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]dataset.StorageSystemInformation), args.Error(1)
}

func (m *mockStorageService) GetDataset(ctx context.Context, token string, sourceID string) (dataset.StorageSystemInformation, error) {
	args := m.Called(ctx, token, sourceID)
	return args.Get(0).(dataset.StorageSystemInformation), args.Error(1)
}

func (m *mockStorageService) GetRole(ctx context.Context, token string, sourceID string) (dataset.DatasetAccessLevel, error) {
	args := m.Called(ctx, token, sourceID)
	return args.Get(0).(dataset.DatasetAccessLevel), args.Error(1)
}

func (m *mockStorageService) GetPreviewTables(ctx context.Context, token string, sourceID string) ([]storage.TableMetadata, error) {
	args := m.Called(ctx, token, sourceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]storage.TableMetadata), args.Error(1)
}

func (m *mockStorageService) PreviewTable(ctx context.Context, token string, sourceID string, tableName string, maxRows int) (*storage.TablePreview, error) {
	args := m.Called(ctx, token, sourceID, tableName, maxRows)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*storage.TablePreview), args.Error(1)
}

func (m *mockStorageService) ExportToWorkspace(ctx context.Context, token string, sourceID string, workspaceID string) error {
	args := m.Called(ctx, token, sourceID, workspaceID)
	return args.Error(0)
}

type mockSamService struct {
	mock.Mock
}

func (m *mockSamService) HasGlobalAction(ctx context.Context, token string, action dataset.SamAction) (bool, error) {
	args := m.Called(ctx, token, action)
	return args.Bool(0), args.Error(1)
}

type mockMetadataValidator struct {
	mock.Mock
}

func (m *mockMetadataValidator) Validate(metadata json.RawMessage) []string {
	args := m.Called(metadata)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]string)
}

type mockLogger struct {
	mock.Mock
}

func (m *mockLogger) Debug(msg string, args ...any) { m.Called(msg, args) }
func (m *mockLogger) Info(msg string, args ...any)  { m.Called(msg, args) }
func (m *mockLogger) Warn(msg string, args ...any)  { m.Called(msg, args) }
func (m *mockLogger) Error(msg string, args ...any) { m.Called(msg, args) }

func (m *mockLogger) With(args ...any) logger.Interface {
	callArgs := m.Called(args)
	if callArgs.Get(0) == nil {
		return m
	}
	return callArgs.Get(0).(logger.Interface)
}

func (m *mockLogger) Named(name string) logger.Interface {
	callArgs := m.Called(name)
	if callArgs.Get(0) == nil {
		return m
	}
	return callArgs.Get(0).(logger.Interface)
}

func (m *mockLogger) Debugw(msg string, keysAndValues ...interface{}) { m.Called(msg, keysAndValues) }
func (m *mockLogger) Infow(msg string, keysAndValues ...interface{})  { m.Called(msg, keysAndValues) }
func (m *mockLogger) Warnw(msg string, keysAndValues ...interface{})  { m.Called(msg, keysAndValues) }
func (m *mockLogger) Errorw(msg string, keysAndValues ...interface{}) { m.Called(msg, keysAndValues) }

// newTestLogger returns a logger mock that accepts any logging call.
func newTestLogger() *mockLogger {
	l := new(mockLogger)
	for _, method := range []string{"Debug", "Info", "Warn", "Error", "Debugw", "Infow", "Warnw", "Errorw"} {
		l.On(method, mock.Anything, mock.Anything).Maybe()
	}
	return l
}
