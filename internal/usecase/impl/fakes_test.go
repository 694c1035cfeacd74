package impl

import (
	"context"
	"strings"
	"time"

	"agrimap/internal/domain/entity"
	"agrimap/internal/domain/repository"
	"agrimap/internal/domain/service"

	"github.com/google/uuid"
	"github.com/paulmach/orb"
)

// Hand-written fakes for the repository and gateway interfaces. They record
// calls so tests can assert on interaction order and arguments.

type fakeFarmRepo struct {
	farms []*entity.Farm

	exists    bool
	existsErr error
	listErr   error
	createErr error
	deleteErr error

	created    []*entity.Farm
	deletedIDs []uuid.UUID
}

func (f *fakeFarmRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Farm, error) {
	for _, farm := range f.farms {
		if farm.ID == id {
			return farm, nil
		}
	}

	return nil, repository.ErrFarmNotFound
}

func (f *fakeFarmRepo) ListWithOwners(_ context.Context) ([]*entity.Farm, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}

	return f.farms, nil
}

func (f *fakeFarmRepo) ExistsByAddressAndName(_ context.Context, _, _ string) (bool, error) {
	return f.exists, f.existsErr
}

func (f *fakeFarmRepo) Create(_ context.Context, farm *entity.Farm) error {
	if f.createErr != nil {
		return f.createErr
	}

	farm.ID = uuid.New()
	farm.CreatedAt = time.Now()
	farm.UpdatedAt = farm.CreatedAt
	f.created = append(f.created, farm)

	return nil
}

func (f *fakeFarmRepo) Delete(_ context.Context, id uuid.UUID) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}

	f.deletedIDs = append(f.deletedIDs, id)

	return nil
}

type fakeUserRepo struct {
	usersByEmail map[string]*entity.User
	createErr    error
	created      []*entity.User
}

func (f *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	for _, user := range f.usersByEmail {
		if user.ID == id {
			return user, nil
		}
	}

	return nil, repository.ErrUserNotFound
}

func (f *fakeUserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	if user, ok := f.usersByEmail[email]; ok {
		return user, nil
	}

	return nil, repository.ErrUserNotFound
}

func (f *fakeUserRepo) Create(_ context.Context, user *entity.User) error {
	if f.createErr != nil {
		return f.createErr
	}

	user.ID = uuid.New()
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	f.created = append(f.created, user)

	return nil
}

type fakeTokenRepo struct {
	createErr        error
	deleteExpiredErr error

	created            []*entity.AccessToken
	deleteExpiredCalls int
}

func (f *fakeTokenRepo) Create(_ context.Context, token *entity.AccessToken) error {
	if f.createErr != nil {
		return f.createErr
	}

	token.ID = uuid.New()
	f.created = append(f.created, token)

	return nil
}

func (f *fakeTokenRepo) FindByToken(_ context.Context, raw string) (*entity.AccessToken, error) {
	for _, token := range f.created {
		if token.Token == raw {
			return token, nil
		}
	}

	return nil, repository.ErrAccessTokenNotFound
}

func (f *fakeTokenRepo) DeleteExpired(_ context.Context) error {
	f.deleteExpiredCalls++

	return f.deleteExpiredErr
}

// fakeTxManager runs the callback without a real transaction, handing out
// the same fakes the test configured.
type fakeTxManager struct {
	userRepo  repository.UserRepository
	farmRepo  repository.FarmRepository
	tokenRepo repository.AccessTokenRepository
}

func (f *fakeTxManager) Execute(_ context.Context, fn func(repository.RepositoryFactory) error) error {
	return fn(f)
}

func (f *fakeTxManager) NewUserRepository() repository.UserRepository { return f.userRepo }

func (f *fakeTxManager) NewFarmRepository() repository.FarmRepository { return f.farmRepo }

func (f *fakeTxManager) NewAccessTokenRepository() repository.AccessTokenRepository {
	return f.tokenRepo
}

type fakeGeocoder struct {
	point orb.Point
	err   error
	calls []string
}

func (f *fakeGeocoder) Geocode(_ context.Context, address string) (orb.Point, error) {
	f.calls = append(f.calls, address)
	if f.err != nil {
		return orb.Point{}, f.err
	}

	return f.point, nil
}

type fakeDistanceGateway struct {
	row []float64
	err error

	gotPoints []orb.Point
}

func (f *fakeDistanceGateway) DrivingDistances(_ context.Context, points []orb.Point) ([]float64, error) {
	f.gotPoints = points
	if f.err != nil {
		return nil, f.err
	}

	return f.row, nil
}

const fakeHashPrefix = "hashed:"

type fakeHasher struct {
	hashErr error
}

func (f *fakeHasher) Hash(password string) (string, error) {
	if f.hashErr != nil {
		return "", f.hashErr
	}

	return fakeHashPrefix + password, nil
}

func (f *fakeHasher) Check(password, hash string) bool {
	return strings.TrimPrefix(hash, fakeHashPrefix) == password
}

type fakeTokenService struct {
	expiresAt time.Time
	err       error
}

func (f *fakeTokenService) GenerateToken(userID uuid.UUID, email string) (string, time.Time, error) {
	if f.err != nil {
		return "", time.Time{}, f.err
	}

	return "token-for-" + email, f.expiresAt, nil
}

func (f *fakeTokenService) ValidateToken(string) (*service.Claims, error) {
	panic("not used in these tests")
}
