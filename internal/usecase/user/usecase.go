package user

import (
	"context"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	domain "user-crud-service/internal/domain/user"
	apperrors "user-crud-service/pkg/errors"
	"user-crud-service/pkg/logger"
	"user-crud-service/pkg/security"
)

// Repository defines the interface for user data access operations.
type Repository interface {
	Create(ctx context.Context, u *domain.User) (*domain.User, error) // Insert and return the stored row
	List(ctx context.Context) ([]domain.User, error)                  // All rows, storage order
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)  // apperrors.ErrNotFound on miss
}

var _ UserUsecase = (*Usecase)(nil)

// Option customizes a Usecase.
type Option func(*Usecase)

// WithQueryTimeout bounds every repository call. Zero disables the bound.
func WithQueryTimeout(d time.Duration) Option {
	return func(uc *Usecase) {
		uc.queryTimeout = d
	}
}

// WithIDGenerator replaces uuid.New, mostly for tests.
func WithIDGenerator(gen func() uuid.UUID) Option {
	return func(uc *Usecase) {
		uc.newID = gen
	}
}

// Usecase implements the business logic for user management operations.
type Usecase struct {
	repo         Repository
	log          *zap.Logger
	validate     *validator.Validate
	queryTimeout time.Duration
	newID        func() uuid.UUID
}

// New creates a new instance of Usecase with the provided repository and logger.
func New(r Repository, log *zap.Logger, opts ...Option) *Usecase {
	uc := &Usecase{
		repo:     r,
		log:      log,
		validate: newValidator(),
		newID:    uuid.New,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// newValidator returns a validator that understands the notblank tag.
func newValidator() *validator.Validate {
	v := validator.New()
	if err := v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return !security.IsBlank(fl.Field().String())
	}); err != nil {
		panic(err)
	}
	return v
}

// formatValidationError converts validator.ValidationErrors into the client-facing validation error.
// Every failing field produces the same message, so only the first field is recorded.
func formatValidationError(err error) error {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) && len(validationErrors) > 0 {
		return apperrors.NewValidationError(validationErrors[0].Field(), apperrors.ErrEmptyFields.Message)
	}
	return apperrors.NewValidationError("", err.Error())
}

// withTimeout applies the configured per-statement timeout, if any.
func (uc *Usecase) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if uc.queryTimeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, uc.queryTimeout)
}

// CreateUser validates the request, assigns a fresh identifier and persists the user.
// The returned user is the row as stored, read back from the insert itself.
func (uc *Usecase) CreateUser(ctx context.Context, in CreateUserRequest) (*UserResponse, error) {
	log := logger.WithContext(ctx, uc.log)

	if err := uc.validate.Struct(in); err != nil {
		log.Warn("validation failed: name or email is empty", zap.Error(err))
		return nil, formatValidationError(err)
	}

	log.Info("creating user", zap.String("name", in.Name), zap.String("email", in.Email))

	ctx, cancel := uc.withTimeout(ctx)
	defer cancel()

	created, err := uc.repo.Create(ctx, &domain.User{
		ID:    uc.newID(),
		Name:  in.Name,
		Email: in.Email,
	})
	if err != nil {
		log.Error("failed to create user", zap.Error(err))
		return nil, apperrors.NewDatabaseError(err)
	}

	log.Info("user created", zap.String("id", created.ID.String()))
	return toResponse(created), nil
}

// GetAllUsers returns every stored user in storage order.
func (uc *Usecase) GetAllUsers(ctx context.Context) ([]UserResponse, error) {
	log := logger.WithContext(ctx, uc.log)
	log.Info("fetching all users")

	ctx, cancel := uc.withTimeout(ctx)
	defer cancel()

	domainUsers, err := uc.repo.List(ctx)
	if err != nil {
		log.Error("failed to list users", zap.Error(err))
		return nil, apperrors.NewDatabaseError(err)
	}

	users := make([]UserResponse, len(domainUsers))
	for i := range domainUsers {
		users[i] = *toResponse(&domainUsers[i])
	}

	log.Info("fetched users", zap.Int("count", len(users)))
	return users, nil
}

// FindUserByID retrieves a single user. A missing row yields a NotFoundError.
func (uc *Usecase) FindUserByID(ctx context.Context, id uuid.UUID) (*UserResponse, error) {
	log := logger.WithContext(ctx, uc.log)

	ctx, cancel := uc.withTimeout(ctx)
	defer cancel()

	u, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			log.Warn("user not found", zap.String("id", id.String()))
			return nil, apperrors.NewNotFoundError("user", "user not found")
		}
		log.Error("failed to get user", zap.String("id", id.String()), zap.Error(err))
		return nil, apperrors.NewDatabaseError(err)
	}

	return toResponse(u), nil
}

func toResponse(u *domain.User) *UserResponse {
	return &UserResponse{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
	}
}
