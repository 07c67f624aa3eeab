package service

import (
	"context"
	"regexp"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/finman-app/finman-backend/internal/domain"
	"github.com/finman-app/finman-backend/internal/util"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// AuthService handles registration and credential checks for end users and
// administrators. Credentials are matched by plain equality against the
// backing collections; the mock backend stores them in the clear.
type AuthService struct {
	userRepo        domain.UserRepository
	adminRepo       domain.AdminRepository
	strictPasswords bool
}

// NewAuthService creates a new AuthService. With strictPasswords set,
// sign-up additionally requires an '@' character in the password.
func NewAuthService(userRepo domain.UserRepository, adminRepo domain.AdminRepository, strictPasswords bool) *AuthService {
	return &AuthService{
		userRepo:        userRepo,
		adminRepo:       adminRepo,
		strictPasswords: strictPasswords,
	}
}

// SignUpInput holds the registration form fields.
type SignUpInput struct {
	Fullname string
	Email    string
	Password string
	Phone    string
}

// SignUp validates and registers a new user. New users start active, with an
// empty budget list.
func (s *AuthService) SignUp(ctx context.Context, input SignUpInput) (*domain.User, error) {
	email := strings.TrimSpace(input.Email)
	if !emailPattern.MatchString(email) {
		return nil, domain.ErrInvalidEmail
	}
	if len(input.Password) < domain.MinPasswordLength {
		return nil, domain.ErrPasswordTooShort
	}
	if s.strictPasswords && !strings.Contains(input.Password, "@") {
		return nil, domain.ErrPasswordNoSymbol
	}

	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	ids := make([]int64, len(users))
	for i, u := range users {
		if u.Email == email {
			return nil, domain.ErrDuplicateEmail
		}
		ids[i] = u.ID
	}

	user := &domain.User{
		ID:                util.NextID(ids),
		Fullname:          input.Fullname,
		Email:             email,
		Password:          input.Password,
		Phone:             input.Phone,
		Gender:            true,
		Status:            true,
		MonthlyCategories: []domain.MonthlyCategory{},
	}

	created, err := s.userRepo.Create(ctx, user)
	if err != nil {
		log.Error().Err(err).Str("email", email).Msg("Failed to register user")
		return nil, err
	}
	log.Info().Int64("user_id", created.ID).Msg("User registered")
	return created, nil
}

// SignIn returns the first user whose stored email and password match
// exactly.
func (s *AuthService) SignIn(ctx context.Context, email, password string) (*domain.User, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		if u.Email == email && u.Password == password {
			return u, nil
		}
	}
	return nil, domain.ErrBadCredentials
}

// SignInAdmin matches against the admin collection.
func (s *AuthService) SignInAdmin(ctx context.Context, usename, password string) (*domain.Administrator, error) {
	admins, err := s.adminRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, a := range admins {
		if a.Usename == usename && a.Password == password {
			return a, nil
		}
	}
	return nil, domain.ErrBadCredentials
}
