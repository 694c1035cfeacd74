package impl

import (
	"context"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"agrimap/internal/domain/entity"
	domainerrors "agrimap/internal/domain/errors"
	"agrimap/internal/usecase"

	"github.com/google/uuid"
	"github.com/paulmach/orb"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestFarmService(farmRepo *fakeFarmRepo, geocoder *fakeGeocoder, distances *fakeDistanceGateway) usecase.FarmUsecase {
	return NewFarmService(FarmServiceParams{
		FarmRepo:  farmRepo,
		Geocoder:  geocoder,
		Distances: distances,
		Logger:    slog.New(slog.DiscardHandler),
	})
}

func testRequester() *entity.User {
	return &entity.User{
		ID:          uuid.New(),
		Email:       "requester@example.com",
		Coordinates: orb.Point{23.5898, 46.7667},
	}
}

func testFarm(name, ownerEmail string, yield float64, createdAt time.Time) *entity.Farm {
	ownerID := uuid.New()

	return &entity.Farm{
		ID:          uuid.New(),
		UserID:      ownerID,
		Owner:       &entity.User{ID: ownerID, Email: ownerEmail},
		Address:     name + " street",
		Name:        name,
		Size:        21.5,
		Yield:       yield,
		Coordinates: orb.Point{23.6, 46.75},
		CreatedAt:   createdAt,
		UpdatedAt:   createdAt,
	}
}

func appErrFrom(t *testing.T, err error) domainerrors.AppError {
	t.Helper()

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)

	return appErr
}

func TestListFarms_EmptySystemIsNotFound(t *testing.T) {
	svc := newTestFarmService(&fakeFarmRepo{}, &fakeGeocoder{}, &fakeDistanceGateway{})

	_, err := svc.ListFarms(context.Background(), testRequester(), &usecase.ListFarmsInput{})

	appErr := appErrFrom(t, err)
	assert.Equal(t, http.StatusNotFound, appErr.HTTPCode())
	assert.Equal(t, "Farms not found.", appErr.Message())
}

func TestListFarms_MergesDistancesPositionally(t *testing.T) {
	now := time.Now()
	farms := []*entity.Farm{
		testFarm("First", "a@example.com", 100, now),
		testFarm("Second", "b@example.com", 100, now),
		testFarm("Third", "", 100, now),
	}
	farms[2].Owner = nil // relation not loaded

	distances := &fakeDistanceGateway{row: []float64{0, 1200, 3400, 5600}}
	svc := newTestFarmService(&fakeFarmRepo{farms: farms}, &fakeGeocoder{}, distances)
	requester := testRequester()

	views, err := svc.ListFarms(context.Background(), requester, &usecase.ListFarmsInput{})
	require.NoError(t, err)
	require.Len(t, views, 3)

	// One gateway call with the requester's location first.
	require.Len(t, distances.gotPoints, 4)
	assert.Equal(t, requester.Coordinates, distances.gotPoints[0])
	assert.Equal(t, farms[0].Coordinates, distances.gotPoints[1])

	// Element 0 of the row (self distance) is dropped; the rest align by position.
	require.NotNil(t, views[0].DrivingDistance)
	assert.Equal(t, 1200.0, *views[0].DrivingDistance)
	assert.Equal(t, 3400.0, *views[1].DrivingDistance)
	assert.Equal(t, 5600.0, *views[2].DrivingDistance)

	// Owner emails come from the joined relation; a missing relation yields "".
	require.NotNil(t, views[0].Owner)
	assert.Equal(t, "a@example.com", *views[0].Owner)
	require.NotNil(t, views[2].Owner)
	assert.Equal(t, "", *views[2].Owner)
}

func TestListFarms_ExcludesOutliersByDefault(t *testing.T) {
	now := time.Now()
	farms := []*entity.Farm{
		testFarm("Low", "a@example.com", 60, now),
		testFarm("Mid1", "a@example.com", 90, now),
		testFarm("Mid2", "a@example.com", 100, now),
		testFarm("Mid3", "a@example.com", 110, now),
		testFarm("High", "a@example.com", 140, now),
	}
	distances := &fakeDistanceGateway{row: []float64{0, 1, 2, 3, 4, 5}}
	svc := newTestFarmService(&fakeFarmRepo{farms: farms}, &fakeGeocoder{}, distances)

	views, err := svc.ListFarms(context.Background(), testRequester(), &usecase.ListFarmsInput{})
	require.NoError(t, err)

	require.Len(t, views, 3)
	assert.Equal(t, "Mid1", views[0].Name)
	assert.Equal(t, "Mid3", views[2].Name)

	// The filter runs after the merge, so distances stay aligned to farms.
	assert.Equal(t, 2.0, *views[0].DrivingDistance)
	assert.Equal(t, 4.0, *views[2].DrivingDistance)
}

func TestListFarms_IncludeOutliersKeepsAll(t *testing.T) {
	now := time.Now()
	farms := []*entity.Farm{
		testFarm("Low", "a@example.com", 10, now),
		testFarm("High", "a@example.com", 1000, now),
	}
	distances := &fakeDistanceGateway{row: []float64{0, 1, 2}}
	svc := newTestFarmService(&fakeFarmRepo{farms: farms}, &fakeGeocoder{}, distances)

	views, err := svc.ListFarms(context.Background(), testRequester(), &usecase.ListFarmsInput{IncludeOutliers: true})
	require.NoError(t, err)

	assert.Len(t, views, 2)
}

func TestListFarms_AllFilteredOutIsEmptyList(t *testing.T) {
	// Farms exist, so the empty-system 404 does not apply even when the
	// filter removes every record.
	now := time.Now()
	farms := []*entity.Farm{
		testFarm("Low", "a@example.com", 10, now),
		testFarm("High", "a@example.com", 1000, now),
	}
	distances := &fakeDistanceGateway{row: []float64{0, 1, 2}}
	svc := newTestFarmService(&fakeFarmRepo{farms: farms}, &fakeGeocoder{}, distances)

	views, err := svc.ListFarms(context.Background(), testRequester(), &usecase.ListFarmsInput{})
	require.NoError(t, err)

	assert.Empty(t, views)
}

func TestListFarms_SortByCreatedAtNewestFirst(t *testing.T) {
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	farms := []*entity.Farm{
		testFarm("Oldest", "a@example.com", 100, base),
		testFarm("Newest", "a@example.com", 100, base.Add(2*time.Hour)),
		testFarm("Middle", "a@example.com", 100, base.Add(time.Hour)),
	}
	distances := &fakeDistanceGateway{row: []float64{0, 1, 2, 3}}
	svc := newTestFarmService(&fakeFarmRepo{farms: farms}, &fakeGeocoder{}, distances)

	views, err := svc.ListFarms(context.Background(), testRequester(), &usecase.ListFarmsInput{
		SortKey: usecase.SortKeyCreatedAt,
	})
	require.NoError(t, err)

	require.Len(t, views, 3)
	assert.Equal(t, "Newest", views[0].Name)
	assert.Equal(t, "Middle", views[1].Name)
	assert.Equal(t, "Oldest", views[2].Name)
}

func TestListFarms_SortByDrivingDistanceAscending(t *testing.T) {
	now := time.Now()
	farms := []*entity.Farm{
		testFarm("Far", "a@example.com", 100, now),
		testFarm("Near", "a@example.com", 100, now),
	}
	distances := &fakeDistanceGateway{row: []float64{0, 9000, 100}}
	svc := newTestFarmService(&fakeFarmRepo{farms: farms}, &fakeGeocoder{}, distances)

	views, err := svc.ListFarms(context.Background(), testRequester(), &usecase.ListFarmsInput{
		SortKey: usecase.SortKeyDrivingDistance,
	})
	require.NoError(t, err)

	assert.Equal(t, "Near", views[0].Name)
	assert.Equal(t, "Far", views[1].Name)
}

func TestListFarms_GatewayFailureIsUpstreamError(t *testing.T) {
	farms := []*entity.Farm{testFarm("Only", "a@example.com", 100, time.Now())}
	distances := &fakeDistanceGateway{err: errors.New("connection refused")}
	svc := newTestFarmService(&fakeFarmRepo{farms: farms}, &fakeGeocoder{}, distances)

	_, err := svc.ListFarms(context.Background(), testRequester(), &usecase.ListFarmsInput{})

	appErr := appErrFrom(t, err)
	assert.Equal(t, http.StatusInternalServerError, appErr.HTTPCode())
	assert.Equal(t, "Driving distance service unavailable.", appErr.Message())
}

func TestListFarms_MisalignedRowIsUpstreamError(t *testing.T) {
	farms := []*entity.Farm{
		testFarm("One", "a@example.com", 100, time.Now()),
		testFarm("Two", "a@example.com", 100, time.Now()),
	}
	// Two farms need a row of three; the gateway returns two.
	distances := &fakeDistanceGateway{row: []float64{0, 1}}
	svc := newTestFarmService(&fakeFarmRepo{farms: farms}, &fakeGeocoder{}, distances)

	_, err := svc.ListFarms(context.Background(), testRequester(), &usecase.ListFarmsInput{})

	appErr := appErrFrom(t, err)
	assert.Equal(t, http.StatusInternalServerError, appErr.HTTPCode())
	assert.Equal(t, "Driving distance service returned a malformed response.", appErr.Message())
}

func TestCreateFarm_Success(t *testing.T) {
	farmRepo := &fakeFarmRepo{}
	geocoder := &fakeGeocoder{point: orb.Point{23.61, 46.76}}
	svc := newTestFarmService(farmRepo, geocoder, &fakeDistanceGateway{})
	owner := testRequester()

	view, err := svc.CreateFarm(context.Background(), owner, &usecase.CreateFarmInput{
		Address: "Field Road 7",
		Name:    "Sunny Acres",
		Size:    32.5,
		Yield:   81.2,
	})
	require.NoError(t, err)

	require.Len(t, farmRepo.created, 1)
	created := farmRepo.created[0]
	assert.Equal(t, owner.ID, created.UserID)
	assert.Equal(t, orb.Point{23.61, 46.76}, created.Coordinates)
	assert.Equal(t, []string{"Field Road 7"}, geocoder.calls)

	assert.Equal(t, "Sunny Acres", view.Name)
	assert.Nil(t, view.Owner)
	assert.Nil(t, view.DrivingDistance)
}

func TestCreateFarm_DuplicateRejectedBeforeGeocoding(t *testing.T) {
	farmRepo := &fakeFarmRepo{exists: true}
	geocoder := &fakeGeocoder{}
	svc := newTestFarmService(farmRepo, geocoder, &fakeDistanceGateway{})

	_, err := svc.CreateFarm(context.Background(), testRequester(), &usecase.CreateFarmInput{
		Address: "Field Road 7",
		Name:    "Sunny Acres",
		Size:    32.5,
		Yield:   81.2,
	})

	appErr := appErrFrom(t, err)
	assert.Equal(t, http.StatusUnprocessableEntity, appErr.HTTPCode())
	assert.Equal(t, "Farm with this address and name already exists.", appErr.Message())

	assert.Empty(t, geocoder.calls)
	assert.Empty(t, farmRepo.created)
}

func TestCreateFarm_GeocodeFailurePropagates(t *testing.T) {
	farmRepo := &fakeFarmRepo{}
	geocoder := &fakeGeocoder{err: domainerrors.ErrGeocodeNotFound.WrapMessage("empty result")}
	svc := newTestFarmService(farmRepo, geocoder, &fakeDistanceGateway{})

	_, err := svc.CreateFarm(context.Background(), testRequester(), &usecase.CreateFarmInput{
		Address: "nowhere", Name: "Ghost Farm", Size: 1, Yield: 1,
	})

	appErr := appErrFrom(t, err)
	assert.Equal(t, http.StatusUnprocessableEntity, appErr.HTTPCode())
	assert.Equal(t, "Invalid address. Geo location not found.", appErr.Message())
	assert.Empty(t, farmRepo.created)
}

func TestDeleteFarm_Success(t *testing.T) {
	requester := testRequester()
	farm := testFarm("Mine", requester.Email, 100, time.Now())
	farm.UserID = requester.ID
	farmRepo := &fakeFarmRepo{farms: []*entity.Farm{farm}}
	svc := newTestFarmService(farmRepo, &fakeGeocoder{}, &fakeDistanceGateway{})

	view, err := svc.DeleteFarm(context.Background(), requester, farm.ID)
	require.NoError(t, err)

	// Pre-deletion view comes back, and the row is gone.
	assert.Equal(t, farm.ID, view.ID)
	assert.Equal(t, "Mine", view.Name)
	assert.Equal(t, []uuid.UUID{farm.ID}, farmRepo.deletedIDs)
}

func TestDeleteFarm_MissingFarmIsNotFound(t *testing.T) {
	svc := newTestFarmService(&fakeFarmRepo{}, &fakeGeocoder{}, &fakeDistanceGateway{})

	_, err := svc.DeleteFarm(context.Background(), testRequester(), uuid.New())

	appErr := appErrFrom(t, err)
	assert.Equal(t, http.StatusNotFound, appErr.HTTPCode())
	assert.Equal(t, "Farm not found.", appErr.Message())
}

func TestDeleteFarm_ForeignFarmIsForbidden(t *testing.T) {
	farm := testFarm("Theirs", "someone@example.com", 100, time.Now())
	farmRepo := &fakeFarmRepo{farms: []*entity.Farm{farm}}
	svc := newTestFarmService(farmRepo, &fakeGeocoder{}, &fakeDistanceGateway{})

	_, err := svc.DeleteFarm(context.Background(), testRequester(), farm.ID)

	appErr := appErrFrom(t, err)
	assert.Equal(t, http.StatusForbidden, appErr.HTTPCode())
	assert.Equal(t, "Farm belongs to another user.", appErr.Message())
	assert.Empty(t, farmRepo.deletedIDs)
}
