package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	redisclient "github.com/akulinich/foodgram-backend/internal/clients/redis"
	"github.com/akulinich/foodgram-backend/internal/logger"
	"github.com/akulinich/foodgram-backend/internal/repos"
	"github.com/akulinich/foodgram-backend/internal/requestdata"
	"github.com/akulinich/foodgram-backend/internal/types"
)

// Usernames that can never be registered.
var forbiddenUsernames = []string{"me", "admin", "superuser"}

type RegisterInput struct {
	Email     string `json:"email"`
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Password  string `json:"password"`
}

type AuthService interface {
	RegisterUser(ctx context.Context, input RegisterInput) (*types.User, error)
	LoginUser(ctx context.Context, email, password string) (string, string, error)
	RefreshUser(ctx context.Context, refreshToken string) (string, string, error)
	LogoutUser(ctx context.Context) error
	SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error)
}

type authService struct {
	db            *gorm.DB
	log           *logger.Logger
	userRepo      repos.UserRepo
	userTokenRepo repos.UserTokenRepo
	avatarService AvatarService
	denylist      redisclient.TokenDenylist
	jwtSecretKey  string
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

func NewAuthService(
	db *gorm.DB,
	log *logger.Logger,
	userRepo repos.UserRepo,
	userTokenRepo repos.UserTokenRepo,
	avatarService AvatarService,
	denylist redisclient.TokenDenylist,
	jwtSecretKey string,
	accessTTL time.Duration,
	refreshTTL time.Duration,
) AuthService {
	return &authService{
		db:            db,
		log:           log.With("service", "AuthService"),
		userRepo:      userRepo,
		userTokenRepo: userTokenRepo,
		avatarService: avatarService,
		denylist:      denylist,
		jwtSecretKey:  jwtSecretKey,
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
	}
}

func (as *authService) validateRegistration(ctx context.Context, input RegisterInput) error {
	if input.Email == "" {
		return fmt.Errorf("%w: an email is required to register", ErrInvalidInput)
	}
	if input.Username == "" {
		return fmt.Errorf("%w: a username is required to register", ErrInvalidInput)
	}
	for _, name := range forbiddenUsernames {
		if strings.EqualFold(input.Username, name) {
			return fmt.Errorf("%w: username %q is not allowed", ErrInvalidInput, input.Username)
		}
	}
	if input.Password == "" {
		return fmt.Errorf("%w: a password is required to register", ErrInvalidInput)
	}
	if input.FirstName == "" || input.LastName == "" {
		return fmt.Errorf("%w: first and last name are required to register", ErrInvalidInput)
	}

	emailExists, err := as.userRepo.EmailExists(ctx, nil, input.Email)
	if err != nil {
		return fmt.Errorf("check user email: %w", err)
	}
	if emailExists {
		return fmt.Errorf("%w: email is already in use", ErrAlreadyExists)
	}
	usernameExists, err := as.userRepo.UsernameExists(ctx, nil, input.Username)
	if err != nil {
		return fmt.Errorf("check username: %w", err)
	}
	if usernameExists {
		return fmt.Errorf("%w: username is already in use", ErrAlreadyExists)
	}
	return nil
}

func (as *authService) RegisterUser(ctx context.Context, input RegisterInput) (*types.User, error) {
	input.Email = strings.TrimSpace(strings.ToLower(input.Email))
	input.Username = strings.TrimSpace(input.Username)
	input.FirstName = strings.TrimSpace(input.FirstName)
	input.LastName = strings.TrimSpace(input.LastName)

	if err := as.validateRegistration(ctx, input); err != nil {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &types.User{
		ID:        uuid.New(),
		Email:     input.Email,
		Username:  input.Username,
		Password:  string(hashed),
		FirstName: input.FirstName,
		LastName:  input.LastName,
	}

	if err := as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := as.userRepo.Create(ctx, tx, []*types.User{user}); err != nil {
			return fmt.Errorf("create user: %w", err)
		}
		return nil
	}); err != nil {
		return nil, err
	}

	if as.avatarService != nil {
		if err := as.avatarService.CreateUserAvatar(ctx, user); err != nil {
			as.log.Warn("Failed to generate user avatar", "user_id", user.ID, "error", err)
		}
	}

	return user, nil
}

func (as *authService) LoginUser(ctx context.Context, email, password string) (string, string, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || password == "" {
		return "", "", fmt.Errorf("%w: email and password are required", ErrInvalidInput)
	}

	user, err := as.userRepo.GetByEmail(ctx, nil, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", "", fmt.Errorf("%w: invalid email or password", ErrUnauthorized)
		}
		return "", "", fmt.Errorf("load user by email: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", "", fmt.Errorf("%w: invalid email or password", ErrUnauthorized)
	}

	var accessToken, refreshToken string
	if err := as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// One active session per user: replace whatever tokens exist.
		if err := as.userTokenRepo.DeleteByUserID(ctx, tx, user.ID); err != nil {
			return fmt.Errorf("delete old user tokens: %w", err)
		}
		accessToken, refreshToken, err = as.issueTokens(ctx, tx, user.ID)
		return err
	}); err != nil {
		return "", "", err
	}
	return accessToken, refreshToken, nil
}

func (as *authService) RefreshUser(ctx context.Context, refreshToken string) (string, string, error) {
	if refreshToken == "" {
		return "", "", fmt.Errorf("%w: refresh token is required", ErrInvalidInput)
	}

	var accessToken, newRefreshToken string
	if err := as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing, err := as.userTokenRepo.GetByRefreshToken(ctx, tx, refreshToken)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: unknown refresh token", ErrUnauthorized)
			}
			return fmt.Errorf("load refresh token: %w", err)
		}
		if existing.ExpiresAt.Before(time.Now()) {
			if err := as.userTokenRepo.DeleteByIDs(ctx, tx, []uuid.UUID{existing.ID}); err != nil {
				return fmt.Errorf("delete expired refresh token: %w", err)
			}
			return fmt.Errorf("%w: refresh token expired", ErrUnauthorized)
		}
		if err := as.userTokenRepo.DeleteByIDs(ctx, tx, []uuid.UUID{existing.ID}); err != nil {
			return fmt.Errorf("rotate refresh token: %w", err)
		}
		accessToken, newRefreshToken, err = as.issueTokens(ctx, tx, existing.UserID)
		return err
	}); err != nil {
		return "", "", err
	}
	return accessToken, newRefreshToken, nil
}

func (as *authService) LogoutUser(ctx context.Context) error {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return fmt.Errorf("%w: no authenticated user in context", ErrUnauthorized)
	}

	if err := as.userTokenRepo.DeleteByUserID(ctx, nil, rd.UserID); err != nil {
		return fmt.Errorf("delete user tokens: %w", err)
	}

	// The access token stays valid until exp unless denied.
	if as.denylist != nil && rd.TokenString != "" {
		if ttl := as.remainingTTL(rd.TokenString); ttl > 0 {
			if err := as.denylist.Deny(ctx, rd.TokenString, ttl); err != nil {
				as.log.Warn("Failed to deny access token", "error", err)
			}
		}
	}
	return nil
}

// SetContextFromToken verifies an access token and stores the caller's
// identity in the context. The middleware calls this before any protected
// handler runs.
func (as *authService) SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error) {
	if as.denylist != nil {
		denied, err := as.denylist.IsDenied(ctx, tokenString)
		if err != nil {
			as.log.Warn("Denylist check failed", "error", err)
		} else if denied {
			return ctx, fmt.Errorf("%w: token revoked", ErrUnauthorized)
		}
	}

	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(as.jwtSecretKey), nil
	})
	if err != nil || !token.Valid {
		return ctx, fmt.Errorf("%w: invalid token", ErrUnauthorized)
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return ctx, fmt.Errorf("%w: invalid token subject", ErrUnauthorized)
	}

	return requestdata.WithRequestData(ctx, &requestdata.RequestData{
		TokenString: tokenString,
		UserID:      userID,
	}), nil
}

func (as *authService) issueTokens(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (string, string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   userID.String(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(as.accessTTL)),
	}
	accessToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(as.jwtSecretKey))
	if err != nil {
		return "", "", fmt.Errorf("sign access token: %w", err)
	}

	refreshToken := uuid.New().String()
	userToken := &types.UserToken{
		ID:           uuid.New(),
		UserID:       userID,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresAt:    now.Add(as.refreshTTL),
	}
	if _, err := as.userTokenRepo.Create(ctx, tx, []*types.UserToken{userToken}); err != nil {
		return "", "", fmt.Errorf("store user token: %w", err)
	}
	return accessToken, refreshToken, nil
}

func (as *authService) remainingTTL(tokenString string) time.Duration {
	claims := &jwt.RegisteredClaims{}
	_, _, err := jwt.NewParser().ParseUnverified(tokenString, claims)
	if err != nil || claims.ExpiresAt == nil {
		return 0
	}
	return time.Until(claims.ExpiresAt.Time)
}
