package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"applesapi/internal/model"
	"applesapi/internal/repository"
)

var (
	ErrIDRequired = errors.New("id is required")
	ErrNotFound   = errors.New("apple not found")
	ErrConflict   = errors.New("apple already exists")
)

const (
	defaultLimit = 10
	maxLimit     = 100
)

// IDPolicy decides where the id of a newly created apple comes from.
type IDPolicy int

const (
	// IDPolicyServerGenerated always assigns a fresh UUID, ignoring any id in the request.
	IDPolicyServerGenerated IDPolicy = iota
	// IDPolicyClientSupplied keeps a caller-provided id and rejects it with ErrConflict
	// when it is already taken. An empty id still gets a UUID.
	IDPolicyClientSupplied
)

func (p IDPolicy) String() string {
	switch p {
	case IDPolicyClientSupplied:
		return "client_supplied"
	default:
		return "server_generated"
	}
}

// AppleListResult is the service-level DTO for paginated apples.
type AppleListResult struct {
	Items []model.AppleDTO `json:"data"`
	Total int              `json:"total"`
}

// AppleService defines the use cases for the apple resource.
type AppleService interface {
	// Get returns a single apple by its ID.
	Get(ctx context.Context, id string) (*model.AppleDTO, error)

	// Create persists a new apple, assigning its id according to the configured IDPolicy.
	Create(ctx context.Context, in model.AppleDTO) (*model.AppleDTO, error)

	// Update replaces the name of the apple stored under id. The body id is ignored.
	Update(ctx context.Context, id string, in model.AppleDTO) (*model.AppleDTO, error)

	// Delete removes the apple stored under id.
	Delete(ctx context.Context, id string) error

	// List returns apples using limit/offset and a total count.
	List(ctx context.Context, limit, offset int) (*AppleListResult, error)
}

type appleService struct {
	repo   repository.AppleRepository
	policy IDPolicy
	newID  func() string
}

// NewAppleService constructs a new AppleService.
func NewAppleService(repo repository.AppleRepository, policy IDPolicy) AppleService {
	return &appleService{repo: repo, policy: policy, newID: uuid.NewString}
}

func (s *appleService) Get(ctx context.Context, id string) (*model.AppleDTO, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	a, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	dto := a.ToDTO()
	return &dto, nil
}

func (s *appleService) Create(ctx context.Context, in model.AppleDTO) (*model.AppleDTO, error) {
	toSave := model.AppleFromDTO(in)
	if s.policy != IDPolicyClientSupplied || toSave.ID == "" {
		toSave.ID = s.newID()
	}

	saved, err := s.repo.Insert(ctx, &toSave)
	if err != nil {
		if errors.Is(err, repository.ErrAlreadyExists) {
			return nil, ErrConflict
		}
		return nil, err
	}
	dto := saved.ToDTO()
	return &dto, nil
}

func (s *appleService) Update(ctx context.Context, id string, in model.AppleDTO) (*model.AppleDTO, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	found, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	updated := *found
	updated.Name = in.Name

	saved, err := s.repo.Save(ctx, &updated)
	if err != nil {
		return nil, err
	}
	dto := saved.ToDTO()
	return &dto, nil
}

func (s *appleService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return ErrIDRequired
	}
	exists, err := s.repo.ExistsByID(ctx, id)
	if err != nil {
		return err
	}
	if !exists {
		return ErrNotFound
	}
	return s.repo.DeleteByID(ctx, id)
}

// List returns paginated apples without exposing repository types.
func (s *appleService) List(ctx context.Context, limit, offset int) (*AppleListResult, error) {
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	if offset < 0 {
		offset = 0
	}

	res, err := s.repo.List(ctx, repository.PageQuery{Limit: limit, Offset: offset})
	if err != nil {
		return nil, err
	}
	items := make([]model.AppleDTO, 0, len(res.Items))
	for _, a := range res.Items {
		items = append(items, a.ToDTO())
	}
	return &AppleListResult{Items: items, Total: res.Total}, nil
}
