package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"model-deploy-service/internal/core/domain"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "state", "deployments.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func newRecord() *domain.DeploymentRecord {
	now := time.Now().UTC()
	return &domain.DeploymentRecord{
		ID:        uuid.New(),
		ModelID:   "model-1",
		ModelName: "im_classif_resnet",
		Stage:     domain.StageRegistered,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestStore_CreateAndGet(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	rec := newRecord()
	require.NoError(t, store.Create(ctx, rec))

	got, err := store.GetByID(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, rec.ID, got.ID)
	assert.Equal(t, "model-1", got.ModelID)
	assert.Equal(t, domain.StageRegistered, got.Stage)
	assert.WithinDuration(t, rec.CreatedAt, got.CreatedAt, time.Millisecond)
}

func TestStore_Get_NotFound(t *testing.T) {
	store := openTestStore(t)

	_, err := store.GetByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, domain.ErrRecordNotFound)
}

func TestStore_Update_StageProgression(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	rec := newRecord()
	require.NoError(t, store.Create(ctx, rec))

	rec.ImageID = "img-1"
	rec.Stage = domain.StageImageBuilt
	require.NoError(t, store.Update(ctx, rec))

	rec.ServiceName = "svc-1"
	rec.ScoringURI = "http://svc-1/score"
	rec.Stage = domain.StageDeployed
	require.NoError(t, store.Update(ctx, rec))

	got, err := store.GetByID(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StageDeployed, got.Stage)
	assert.Equal(t, "img-1", got.ImageID)
	assert.Equal(t, "http://svc-1/score", got.ScoringURI)
}

func TestStore_Update_NotFound(t *testing.T) {
	store := openTestStore(t)

	err := store.Update(context.Background(), newRecord())
	assert.ErrorIs(t, err, domain.ErrRecordNotFound)
}

func TestStore_LatestAndList(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	older := newRecord()
	older.CreatedAt = time.Now().UTC().Add(-time.Hour)
	older.UpdatedAt = older.CreatedAt
	require.NoError(t, store.Create(ctx, older))

	newer := newRecord()
	require.NoError(t, store.Create(ctx, newer))

	latest, err := store.Latest(ctx)
	require.NoError(t, err)
	assert.Equal(t, newer.ID, latest.ID)

	recs, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, newer.ID, recs[0].ID)
	assert.Equal(t, older.ID, recs[1].ID)
}

func TestStore_Latest_Empty(t *testing.T) {
	store := openTestStore(t)

	_, err := store.Latest(context.Background())
	assert.ErrorIs(t, err, domain.ErrRecordNotFound)
}
