package services

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/akulinich/foodgram-backend/internal/repos"
	"github.com/akulinich/foodgram-backend/internal/repos/testutil"
	"github.com/akulinich/foodgram-backend/internal/requestdata"
)

func newAuthService(t *testing.T) AuthService {
	t.Helper()
	gdb := testutil.DB(t)
	log := testutil.Logger(t)
	userRepo := repos.NewUserRepo(gdb, log)
	userTokenRepo := repos.NewUserTokenRepo(gdb, log)
	return NewAuthService(gdb, log, userRepo, userTokenRepo, nil, nil, "test-secret", time.Hour, 24*time.Hour)
}

func registerInput(email string) RegisterInput {
	return RegisterInput{
		Email:     email,
		Username:  email,
		FirstName: "Test",
		LastName:  "User",
		Password:  "s3cret-pw",
	}
}

func TestRegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	service := newAuthService(t)
	email := fmt.Sprintf("login-%s@example.com", uuid.New())

	user, err := service.RegisterUser(ctx, registerInput(email))
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if user.ID == uuid.Nil {
		t.Fatal("expected a user id to be assigned")
	}
	if user.Password == "s3cret-pw" {
		t.Fatal("password must not be stored in plain text")
	}

	accessToken, refreshToken, err := service.LoginUser(ctx, email, "s3cret-pw")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if accessToken == "" || refreshToken == "" {
		t.Fatal("expected both tokens on login")
	}

	// The access token identifies the user.
	authedCtx, err := service.SetContextFromToken(ctx, accessToken)
	if err != nil {
		t.Fatalf("verify token: %v", err)
	}
	rd := requestdata.GetRequestData(authedCtx)
	if rd == nil || rd.UserID != user.ID {
		t.Fatalf("expected request data for user %s, got %+v", user.ID, rd)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	ctx := context.Background()
	service := newAuthService(t)
	email := fmt.Sprintf("wrongpw-%s@example.com", uuid.New())

	if _, err := service.RegisterUser(ctx, registerInput(email)); err != nil {
		t.Fatalf("register: %v", err)
	}
	_, _, err := service.LoginUser(ctx, email, "not-the-password")
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestRegisterForbiddenUsername(t *testing.T) {
	ctx := context.Background()
	service := newAuthService(t)

	for _, username := range []string{"me", "admin", "superuser", "Me", "ADMIN"} {
		input := registerInput(fmt.Sprintf("forbidden-%s@example.com", uuid.New()))
		input.Username = username
		_, err := service.RegisterUser(ctx, input)
		if !errors.Is(err, ErrInvalidInput) {
			t.Errorf("username %q: expected ErrInvalidInput, got %v", username, err)
		}
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	service := newAuthService(t)
	email := fmt.Sprintf("dup-%s@example.com", uuid.New())

	if _, err := service.RegisterUser(ctx, registerInput(email)); err != nil {
		t.Fatalf("register: %v", err)
	}
	_, err := service.RegisterUser(ctx, registerInput(email))
	if !errors.Is(err, ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}
}

func TestRefreshRotatesToken(t *testing.T) {
	ctx := context.Background()
	service := newAuthService(t)
	email := fmt.Sprintf("refresh-%s@example.com", uuid.New())

	if _, err := service.RegisterUser(ctx, registerInput(email)); err != nil {
		t.Fatalf("register: %v", err)
	}
	_, refreshToken, err := service.LoginUser(ctx, email, "s3cret-pw")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	accessToken, newRefreshToken, err := service.RefreshUser(ctx, refreshToken)
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if accessToken == "" || newRefreshToken == "" {
		t.Fatal("expected fresh tokens")
	}
	if newRefreshToken == refreshToken {
		t.Fatal("refresh token was not rotated")
	}

	// The old refresh token is spent.
	if _, _, err := service.RefreshUser(ctx, refreshToken); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for spent token, got %v", err)
	}
}

func TestSetContextFromTokenRejectsGarbage(t *testing.T) {
	ctx := context.Background()
	service := newAuthService(t)

	if _, err := service.SetContextFromToken(ctx, "not-a-jwt"); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}
