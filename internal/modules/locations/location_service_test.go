package locations

import (
	"context"
	"strings"
	"testing"

	"travel-agency/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeLocationRepo struct {
	locations map[int64]models.Location
	nextID    int64
}

func newFakeLocationRepo(names ...string) *fakeLocationRepo {
	repo := &fakeLocationRepo{locations: make(map[int64]models.Location), nextID: 1}
	for _, name := range names {
		repo.locations[repo.nextID] = models.Location{ID: repo.nextID, Name: name}
		repo.nextID++
	}
	return repo
}

func (r *fakeLocationRepo) List(_ context.Context) ([]models.Location, error) {
	all := []models.Location{}
	for _, loc := range r.locations {
		all = append(all, loc)
	}
	return all, nil
}

func (r *fakeLocationRepo) FindByID(_ context.Context, id int64) (*models.Location, error) {
	loc, ok := r.locations[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	return &loc, nil
}

func (r *fakeLocationRepo) FindByNameFold(_ context.Context, name string) (*models.Location, error) {
	for _, loc := range r.locations {
		if strings.EqualFold(loc.Name, name) {
			found := loc
			return &found, nil
		}
	}
	return nil, models.ErrNotFound
}

func (r *fakeLocationRepo) Create(_ context.Context, name string) (*models.Location, error) {
	loc := models.Location{ID: r.nextID, Name: name}
	r.nextID++
	r.locations[loc.ID] = loc
	return &loc, nil
}

func (r *fakeLocationRepo) Update(_ context.Context, id int64, name string) (*models.Location, error) {
	if _, ok := r.locations[id]; !ok {
		return nil, models.ErrNotFound
	}
	loc := models.Location{ID: id, Name: name}
	r.locations[id] = loc
	return &loc, nil
}

func (r *fakeLocationRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.locations[id]; !ok {
		return models.ErrNotFound
	}
	delete(r.locations, id)
	return nil
}

func TestCreateLocation_IgnoresCallerSuppliedID(t *testing.T) {
	repo := newFakeLocationRepo()
	svc := NewService(repo, zap.NewNop())

	created, err := svc.Create(context.Background(), models.LocationRequest{ID: 999, Name: "Agra"})
	require.NoError(t, err)
	assert.NotEqual(t, int64(999), created.ID)
	assert.Equal(t, "Agra", created.Name)
}

func TestCreateLocation_AllowsDuplicateNames(t *testing.T) {
	repo := newFakeLocationRepo("Agra")
	svc := NewService(repo, zap.NewNop())

	created, err := svc.Create(context.Background(), models.LocationRequest{Name: "Agra"})
	require.NoError(t, err)
	assert.Len(t, repo.locations, 2)
	assert.NotZero(t, created.ID)
}

func TestUpdateLocation_BlankNameKeepsStoredName(t *testing.T) {
	repo := newFakeLocationRepo("Jaipur")
	svc := NewService(repo, zap.NewNop())

	updated, err := svc.Update(context.Background(), 1, models.LocationRequest{Name: "   "})
	require.NoError(t, err)
	assert.Equal(t, "Jaipur", updated.Name)
}

func TestUpdateLocation_OverwritesName(t *testing.T) {
	repo := newFakeLocationRepo("Jaipur")
	svc := NewService(repo, zap.NewNop())

	updated, err := svc.Update(context.Background(), 1, models.LocationRequest{Name: "Udaipur"})
	require.NoError(t, err)
	assert.Equal(t, "Udaipur", updated.Name)
}

func TestUpdateLocation_NotFound(t *testing.T) {
	svc := NewService(newFakeLocationRepo(), zap.NewNop())

	_, err := svc.Update(context.Background(), 7, models.LocationRequest{Name: "Udaipur"})
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestDeleteLocation_NotFound(t *testing.T) {
	svc := NewService(newFakeLocationRepo(), zap.NewNop())
	err := svc.Delete(context.Background(), 7)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestDeleteLocation_RemovesRow(t *testing.T) {
	repo := newFakeLocationRepo("Jaipur")
	svc := NewService(repo, zap.NewNop())

	require.NoError(t, svc.Delete(context.Background(), 1))
	assert.Empty(t, repo.locations)
}

func TestGetLocationByID_NotFound(t *testing.T) {
	svc := NewService(newFakeLocationRepo(), zap.NewNop())
	_, err := svc.GetByID(context.Background(), 3)
	assert.ErrorIs(t, err, models.ErrNotFound)
}
