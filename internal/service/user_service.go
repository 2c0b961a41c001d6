package service

import (
	"context"
	"fmt"
	"strings"

	"gwp-backend/internal/dto"
	"gwp-backend/internal/models"
	"gwp-backend/internal/patch"
	"gwp-backend/internal/repository"
	"gwp-backend/internal/utils"
)

// UserService manages accounts.
type UserService struct {
	users  *repository.UserRepository
	authz  *Authorizer
	fields *patch.Set
}

// NewUserService creates a UserService.
func NewUserService(users *repository.UserRepository, authz *Authorizer) *UserService {
	return &UserService{
		users:  users,
		authz:  authz,
		fields: patch.UserFields(utils.HashPassword),
	}
}

// List returns every user without password hashes.
func (s *UserService) List(ctx context.Context) ([]dto.UserInfo, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	out := make([]dto.UserInfo, len(users))
	for i := range users {
		out[i] = userInfo(&users[i])
	}
	return out, nil
}

// Create registers a new account on behalf of an admin.
func (s *UserService) Create(ctx context.Context, req *dto.RegisterRequest) (*models.User, error) {
	return createUser(ctx, s.users, req)
}

// Update changes nombre, username or password. Users may edit themselves;
// admins may edit anyone. changed is false when the payload had no
// recognised field.
func (s *UserService) Update(ctx context.Context, caller, id uint, payload map[string]interface{}) (bool, error) {
	if caller != id && !s.authz.IsAdmin(caller) {
		return false, ErrForbidden
	}
	u, err := s.fields.Build(payload)
	if err != nil {
		return false, invalid(err.Error())
	}
	if u.Empty() {
		return false, nil
	}
	if v, ok := u.Value("username"); ok {
		username, _ := v.(string)
		if err := utils.GetValidator().Var(username, "username"); err != nil {
			return false, invalid("Nombre de usuario inválido")
		}
		taken, err := s.users.ExistsByUsername(ctx, username, id)
		if err != nil {
			return false, fmt.Errorf("check username: %w", err)
		}
		if taken {
			return false, ErrUsernameTaken
		}
	}
	if v, ok := u.Value("nombre"); ok {
		if nombre, _ := v.(string); strings.TrimSpace(nombre) == "" {
			return false, invalid("Nombre requerido")
		}
	}
	if err := s.users.Update(ctx, id, u); err != nil {
		return false, notFound(err)
	}
	return true, nil
}

// Delete removes an account.
func (s *UserService) Delete(ctx context.Context, id uint) error {
	return notFound(s.users.Delete(ctx, id))
}

func createUser(ctx context.Context, users *repository.UserRepository, req *dto.RegisterRequest) (*models.User, error) {
	req.Nombre = strings.TrimSpace(req.Nombre)
	req.Username = strings.TrimSpace(req.Username)
	if req.Nombre == "" || req.Username == "" || req.Password == "" {
		return nil, invalid("Faltan campos requeridos")
	}
	if err := utils.ValidateStruct(req); err != nil {
		return nil, invalid(err.Error())
	}

	exists, err := users.ExistsByUsername(ctx, req.Username, 0)
	if err != nil {
		return nil, fmt.Errorf("check username: %w", err)
	}
	if exists {
		return nil, ErrUsernameTaken
	}

	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{
		Nombre:       req.Nombre,
		Username:     req.Username,
		PasswordHash: hashed,
	}
	if err := users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

func userInfo(u *models.User) dto.UserInfo {
	return dto.UserInfo{
		ID:        u.ID,
		Nombre:    u.Nombre,
		Username:  u.Username,
		CreatedAt: u.CreatedAt,
	}
}
