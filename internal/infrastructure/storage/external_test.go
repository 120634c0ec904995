package storage

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"catalog/internal/domain/dataset"
	apperrors "catalog/internal/shared/errors"
	"catalog/internal/shared/logger"
)

type stubSourceLister struct {
	sourceIDs []string
	err       error
}

func (s *stubSourceLister) ListSourceIDs(ctx context.Context, system dataset.StorageSystem) ([]string, error) {
	return s.sourceIDs, s.err
}

func (s *stubSourceLister) Retrieve(ctx context.Context, id uuid.UUID) (*dataset.Dataset, error) {
	return nil, nil
}

func (s *stubSourceLister) Upsert(ctx context.Context, ds *dataset.Dataset) (*dataset.Dataset, error) {
	return ds, nil
}

func (s *stubSourceLister) Update(ctx context.Context, ds *dataset.Dataset) error { return nil }

func (s *stubSourceLister) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	return false, nil
}

func (s *stubSourceLister) Find(ctx context.Context, sourceIDs map[dataset.StorageSystem][]string) ([]*dataset.Dataset, error) {
	return nil, nil
}

func (s *stubSourceLister) ListAll(ctx context.Context) ([]*dataset.Dataset, error) {
	return nil, nil
}

func TestExternalGetDatasets_EveryRecordIsDiscoverable(t *testing.T) {
	repo := &stubSourceLister{sourceIDs: []string{"ext-1", "ext-2"}}
	svc := NewExternalSystemService(repo, logger.NewLogger())

	result, err := svc.GetDatasets(context.Background(), "tok")

	require.NoError(t, err)
	require.Len(t, result, 2)
	assert.Equal(t, dataset.AccessLevelDiscoverer, result["ext-1"].AccessLevel)
	assert.Equal(t, dataset.AccessLevelDiscoverer, result["ext-2"].AccessLevel)
}

func TestExternalPreviewAndExportUnsupported(t *testing.T) {
	svc := NewExternalSystemService(&stubSourceLister{}, logger.NewLogger())

	tables, err := svc.GetPreviewTables(context.Background(), "tok", "ext-1")
	require.NoError(t, err)
	assert.Empty(t, tables)

	_, err = svc.PreviewTable(context.Background(), "tok", "ext-1", "anything", 10)
	assert.True(t, apperrors.IsNotFoundError(err))

	err = svc.ExportToWorkspace(context.Background(), "tok", "ext-1", "ws-1")
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrorTypeBadRequest, apperrors.GetAppError(err).Type)
}

func TestExternalStatusAlwaysHealthy(t *testing.T) {
	svc := NewExternalSystemService(&stubSourceLister{}, logger.NewLogger())
	assert.True(t, svc.Status(context.Background()).OK)
}
