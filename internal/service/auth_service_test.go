package service

import (
	"context"
	"errors"
	"testing"

	"github.com/finman-app/finman-backend/internal/domain"
	"github.com/finman-app/finman-backend/internal/testutil"
)

func TestSignUp_Success(t *testing.T) {
	userRepo := testutil.NewMockUserRepository()
	adminRepo := testutil.NewMockAdminRepository()
	authService := NewAuthService(userRepo, adminRepo, false)

	user, err := authService.SignUp(context.Background(), SignUpInput{
		Fullname: "Nguyễn Văn A",
		Email:    "a@b.co",
		Password: "secret1",
		Phone:    "0901234567",
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if user.ID != 1 {
		t.Errorf("Expected id 1, got %d", user.ID)
	}
	if !user.Status {
		t.Errorf("Expected new user active")
	}
	if user.MonthlyCategories == nil || len(user.MonthlyCategories) != 0 {
		t.Errorf("Expected empty budget list, got %v", user.MonthlyCategories)
	}
}

func TestSignUp_NextIDFollowsMax(t *testing.T) {
	userRepo := testutil.NewMockUserRepository()
	adminRepo := testutil.NewMockAdminRepository()
	authService := NewAuthService(userRepo, adminRepo, false)

	userRepo.AddUser(&domain.User{ID: 7, Email: "old@b.co"})

	user, err := authService.SignUp(context.Background(), SignUpInput{
		Fullname: "Nguyễn Văn B",
		Email:    "b@b.co",
		Password: "secret1",
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if user.ID != 8 {
		t.Errorf("Expected id 8, got %d", user.ID)
	}
}

func TestSignUp_InvalidEmail(t *testing.T) {
	userRepo := testutil.NewMockUserRepository()
	adminRepo := testutil.NewMockAdminRepository()
	authService := NewAuthService(userRepo, adminRepo, false)

	for _, email := range []string{"", "plain", "a@b", "a b@c.co", "a@b .co"} {
		_, err := authService.SignUp(context.Background(), SignUpInput{Email: email, Password: "secret1"})
		if !errors.Is(err, domain.ErrInvalidEmail) {
			t.Errorf("Expected ErrInvalidEmail for %q, got %v", email, err)
		}
	}
}

func TestSignUp_PasswordTooShort(t *testing.T) {
	userRepo := testutil.NewMockUserRepository()
	adminRepo := testutil.NewMockAdminRepository()
	authService := NewAuthService(userRepo, adminRepo, false)

	_, err := authService.SignUp(context.Background(), SignUpInput{Email: "a@b.co", Password: "five5"})
	if !errors.Is(err, domain.ErrPasswordTooShort) {
		t.Errorf("Expected ErrPasswordTooShort, got %v", err)
	}
}

func TestSignUp_StrictPasswordsRequireSymbol(t *testing.T) {
	userRepo := testutil.NewMockUserRepository()
	adminRepo := testutil.NewMockAdminRepository()
	authService := NewAuthService(userRepo, adminRepo, true)

	_, err := authService.SignUp(context.Background(), SignUpInput{Email: "a@b.co", Password: "secret1"})
	if !errors.Is(err, domain.ErrPasswordNoSymbol) {
		t.Errorf("Expected ErrPasswordNoSymbol, got %v", err)
	}

	if _, err := authService.SignUp(context.Background(), SignUpInput{Email: "a@b.co", Password: "sec@ret1"}); err != nil {
		t.Errorf("Expected no error with '@' in password, got %v", err)
	}
}

func TestSignUp_DuplicateEmail(t *testing.T) {
	userRepo := testutil.NewMockUserRepository()
	adminRepo := testutil.NewMockAdminRepository()
	authService := NewAuthService(userRepo, adminRepo, false)

	userRepo.AddUser(&domain.User{ID: 1, Email: "a@b.co", Password: "secret1"})

	_, err := authService.SignUp(context.Background(), SignUpInput{Email: "a@b.co", Password: "other99"})
	if !errors.Is(err, domain.ErrDuplicateEmail) {
		t.Errorf("Expected ErrDuplicateEmail, got %v", err)
	}
}

func TestSignIn_Success(t *testing.T) {
	userRepo := testutil.NewMockUserRepository()
	adminRepo := testutil.NewMockAdminRepository()
	authService := NewAuthService(userRepo, adminRepo, false)

	userRepo.AddUser(&domain.User{ID: 3, Email: "a@b.co", Password: "secret1"})

	user, err := authService.SignIn(context.Background(), "a@b.co", "secret1")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if user.ID != 3 {
		t.Errorf("Expected user 3, got %d", user.ID)
	}
}

func TestSignIn_BadCredentials(t *testing.T) {
	userRepo := testutil.NewMockUserRepository()
	adminRepo := testutil.NewMockAdminRepository()
	authService := NewAuthService(userRepo, adminRepo, false)

	userRepo.AddUser(&domain.User{ID: 3, Email: "a@b.co", Password: "secret1"})

	if _, err := authService.SignIn(context.Background(), "a@b.co", "wrong"); !errors.Is(err, domain.ErrBadCredentials) {
		t.Errorf("Expected ErrBadCredentials for wrong password, got %v", err)
	}
	if _, err := authService.SignIn(context.Background(), "nobody@b.co", "secret1"); !errors.Is(err, domain.ErrBadCredentials) {
		t.Errorf("Expected ErrBadCredentials for unknown email, got %v", err)
	}
}

func TestSignInAdmin_Success(t *testing.T) {
	userRepo := testutil.NewMockUserRepository()
	adminRepo := testutil.NewMockAdminRepository()
	adminRepo.Admins = append(adminRepo.Admins, &domain.Administrator{Usename: "admin", Password: "admin123"})
	authService := NewAuthService(userRepo, adminRepo, false)

	admin, err := authService.SignInAdmin(context.Background(), "admin", "admin123")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if admin.Usename != "admin" {
		t.Errorf("Expected usename 'admin', got %s", admin.Usename)
	}
}

func TestSignInAdmin_BadCredentials(t *testing.T) {
	userRepo := testutil.NewMockUserRepository()
	adminRepo := testutil.NewMockAdminRepository()
	adminRepo.Admins = append(adminRepo.Admins, &domain.Administrator{Usename: "admin", Password: "admin123"})
	authService := NewAuthService(userRepo, adminRepo, false)

	if _, err := authService.SignInAdmin(context.Background(), "admin", "nope"); !errors.Is(err, domain.ErrBadCredentials) {
		t.Errorf("Expected ErrBadCredentials, got %v", err)
	}
}
