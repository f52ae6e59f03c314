package identity

import (
	"context"

	"github.com/google/uuid"

	"github.com/retailpos/backend/internal/domain/identity"
	"github.com/retailpos/backend/internal/domain/shared"
)

// UserService handles admin-side user management
type UserService struct {
	userRepo identity.UserRepository
}

// NewUserService creates a new user service
func NewUserService(userRepo identity.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// Create registers a new user account
func (s *UserService) Create(ctx context.Context, req *CreateUserRequest) (*UserResponse, error) {
	exists, err := s.userRepo.ExistsByUsername(ctx, req.Username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "username is already taken")
	}

	user, err := identity.NewUser(req.Username, req.Password, identity.Role(req.Role))
	if err != nil {
		return nil, err
	}
	if req.DisplayName != "" {
		if err := user.SetDisplayName(req.DisplayName); err != nil {
			return nil, err
		}
	}

	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}
	return ToUserResponse(user), nil
}

// GetByID returns a single user
func (s *UserService) GetByID(ctx context.Context, id uuid.UUID) (*UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToUserResponse(user), nil
}

// List returns a page of users
func (s *UserService) List(ctx context.Context, filter *UserListFilter) (*shared.Paginated[*UserResponse], error) {
	f := shared.DefaultFilter()
	if filter != nil {
		if filter.Page > 0 {
			f.Page = filter.Page
		}
		if filter.PageSize > 0 {
			f.PageSize = filter.PageSize
		}
		f.Search = filter.Search
	}

	page, err := s.userRepo.FindAll(ctx, f)
	if err != nil {
		return nil, err
	}

	responses := make([]*UserResponse, len(page.Items))
	for i := range page.Items {
		responses[i] = ToUserResponse(&page.Items[i])
	}
	return &shared.Paginated[*UserResponse]{
		Items:      responses,
		Total:      page.Total,
		Page:       page.Page,
		PageSize:   page.PageSize,
		TotalPages: page.TotalPages,
	}, nil
}

// Update applies a partial update to a user account
func (s *UserService) Update(ctx context.Context, id uuid.UUID, req *UpdateUserRequest) (*UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.DisplayName != nil {
		if err := user.SetDisplayName(*req.DisplayName); err != nil {
			return nil, err
		}
	}
	if req.Role != nil {
		if err := user.SetRole(identity.Role(*req.Role)); err != nil {
			return nil, err
		}
	}
	if req.Password != nil {
		if err := user.SetPassword(*req.Password); err != nil {
			return nil, err
		}
	}

	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}
	return ToUserResponse(user), nil
}

// Activate reinstates a locked or deactivated account
func (s *UserService) Activate(ctx context.Context, id uuid.UUID) (*UserResponse, error) {
	return s.changeStatus(ctx, id, (*identity.User).Activate)
}

// Deactivate disables an account without deleting it
func (s *UserService) Deactivate(ctx context.Context, id uuid.UUID) (*UserResponse, error) {
	return s.changeStatus(ctx, id, (*identity.User).Deactivate)
}

func (s *UserService) changeStatus(ctx context.Context, id uuid.UUID, transition func(*identity.User) error) (*UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := transition(user); err != nil {
		return nil, err
	}
	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}
	return ToUserResponse(user), nil
}

// Delete removes a user account
func (s *UserService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.userRepo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.userRepo.Delete(ctx, id)
}

func parseUserID(raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, shared.NewDomainError("INVALID_INPUT", "invalid user id")
	}
	return id, nil
}
