// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"slices"
	"time"

	deliverycontext "agrimap/internal/delivery/context"
	"agrimap/internal/domain/entity"
	domainerrors "agrimap/internal/domain/errors"
	"agrimap/internal/domain/repository"
	"agrimap/internal/domain/service"
	"agrimap/internal/usecase"

	"github.com/google/uuid"
	"github.com/paulmach/orb"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// extendedFarm is the request-scoped merge of a farm with its derived
// fields. It exists only between loading and projection.
type extendedFarm struct {
	*entity.Farm
	owner           string
	drivingDistance float64
}

// farmService implements the FarmUsecase interface.
type farmService struct {
	farmRepo  repository.FarmRepository
	geocoder  service.Geocoder
	distances service.DistanceGateway
	logger    *slog.Logger
}

// FarmServiceParams holds dependencies for FarmService, injected by Fx.
type FarmServiceParams struct {
	fx.In

	FarmRepo  repository.FarmRepository
	Geocoder  service.Geocoder
	Distances service.DistanceGateway
	Logger    *slog.Logger
}

// NewFarmService is the constructor for farmService. It receives all dependencies as interfaces.
func NewFarmService(params FarmServiceParams) usecase.FarmUsecase {
	return &farmService{
		farmRepo:  params.FarmRepo,
		geocoder:  params.Geocoder,
		distances: params.Distances,
		logger:    params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *farmService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// CreateFarm registers a new farm. The duplicate (address, name) check runs
// first so a taken pair is rejected before any geocoder call or write.
func (srv *farmService) CreateFarm(ctx context.Context, owner *entity.User, input *usecase.CreateFarmInput) (*usecase.FarmView, error) {
	srv.log(ctx).Debug("Creating farm", slog.String("name", input.Name), slog.Any("ownerID", owner.ID))

	taken, err := srv.farmRepo.ExistsByAddressAndName(ctx, input.Address, input.Name)
	if err != nil {
		return nil, errors.Wrap(err, "failed to check farm uniqueness")
	}
	if taken {
		return nil, domainerrors.ErrFarmAlreadyExists.WrapMessage("duplicate address and name")
	}

	point, err := srv.geocoder.Geocode(ctx, input.Address)
	if err != nil {
		srv.log(ctx).Warn("Failed to geocode farm address", slog.String("name", input.Name), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to geocode farm address")
	}

	farm := &entity.Farm{
		UserID:      owner.ID,
		Owner:       owner,
		Address:     input.Address,
		Name:        input.Name,
		Size:        input.Size,
		Yield:       input.Yield,
		Coordinates: point,
	}

	if err := srv.farmRepo.Create(ctx, farm); err != nil {
		return nil, errors.Wrap(err, "failed to create farm")
	}

	srv.log(ctx).Info("Farm created", slog.Any("farmID", farm.ID), slog.Any("ownerID", owner.ID))

	return farmView(farm, nil, nil), nil
}

// ListFarms runs the listing pipeline: eager-join load, one distance-matrix
// call, positional merge, optional outlier filter, optional sort, projection.
func (srv *farmService) ListFarms(ctx context.Context, requester *entity.User, input *usecase.ListFarmsInput) ([]*usecase.FarmView, error) {
	farms, err := srv.farmRepo.ListWithOwners(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list farms")
	}
	if len(farms) == 0 {
		// "nothing exists yet" is distinct from "everything was filtered out".
		return nil, errors.WithStack(domainerrors.ErrFarmsNotFound)
	}

	extended, err := srv.extendFarms(ctx, requester, farms)
	if err != nil {
		return nil, err
	}

	if !input.IncludeOutliers {
		extended = excludeOutliers(extended)
	}

	if input.SortKey != usecase.SortKeyNone {
		sortFarms(extended, input.SortKey)
		if input.SortKey == usecase.SortKeyCreatedAt {
			// The underlying sort is ascending; newest first on the wire.
			slices.Reverse(extended)
		}
	}

	views := make([]*usecase.FarmView, 0, len(extended))
	for _, farm := range extended {
		owner := farm.owner
		distance := farm.drivingDistance
		views = append(views, farmView(farm.Farm, &owner, &distance))
	}

	return views, nil
}

// extendFarms merges each farm with its owner email and driving distance.
// Alignment with the distance row is positional, so farm order must be
// preserved exactly from load to merge.
func (srv *farmService) extendFarms(ctx context.Context, requester *entity.User, farms []*entity.Farm) ([]*extendedFarm, error) {
	points := make([]orb.Point, 0, len(farms)+1)
	points = append(points, requester.Coordinates)
	for _, farm := range farms {
		points = append(points, farm.Coordinates)
	}

	row, err := srv.distances.DrivingDistances(ctx, points)
	if err != nil {
		srv.log(ctx).Error("Distance gateway call failed", slog.Int("farms", len(farms)), slog.Any("error", err))

		return nil, domainerrors.NewUpstreamFailure("Driving distance service unavailable.").WrapMessage(err.Error())
	}
	if len(row) != len(farms)+1 {
		srv.log(ctx).Error("Distance gateway returned misaligned row", slog.Int("farms", len(farms)), slog.Int("row", len(row)))

		return nil, errors.WithStack(domainerrors.NewUpstreamFailure("Driving distance service returned a malformed response."))
	}

	// Element 0 is the requester's distance to itself.
	distances := row[1:]

	extended := make([]*extendedFarm, 0, len(farms))
	for i, farm := range farms {
		extended = append(extended, &extendedFarm{
			Farm:            farm,
			owner:           farm.OwnerEmail(),
			drivingDistance: distances[i],
		})
	}

	return extended, nil
}

// DeleteFarm removes a farm owned by the requester and returns its
// pre-deletion view.
func (srv *farmService) DeleteFarm(ctx context.Context, requester *entity.User, farmID uuid.UUID) (*usecase.FarmView, error) {
	farm, err := srv.farmRepo.FindByID(ctx, farmID)
	if err != nil {
		if errors.Is(err, repository.ErrFarmNotFound) {
			return nil, domainerrors.ErrFarmNotFound.WrapMessage("delete farm")
		}

		return nil, errors.Wrap(err, "failed to find farm by id")
	}

	if farm.UserID != requester.ID {
		srv.log(ctx).Warn("Rejected delete of foreign farm", slog.Any("farmID", farmID), slog.Any("requesterID", requester.ID))

		return nil, domainerrors.ErrFarmNotOwned.WrapMessage("delete farm")
	}

	view := farmView(farm, nil, nil)

	if err := srv.farmRepo.Delete(ctx, farmID); err != nil {
		return nil, errors.Wrap(err, "failed to delete farm")
	}

	srv.log(ctx).Info("Farm deleted", slog.Any("farmID", farmID), slog.Any("ownerID", requester.ID))

	return view, nil
}

// farmView projects a farm to its public shape. Owner and distance are only
// present on listing responses.
func farmView(farm *entity.Farm, owner *string, distance *float64) *usecase.FarmView {
	return &usecase.FarmView{
		ID:              farm.ID,
		Name:            farm.Name,
		Address:         farm.Address,
		Size:            farm.Size,
		Yield:           farm.Yield,
		Owner:           owner,
		DrivingDistance: distance,
		CreatedAt:       farm.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:       farm.UpdatedAt.UTC().Format(time.RFC3339),
	}
}
