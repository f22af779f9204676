package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/avoronova/sympathy/internal/domain"
	"github.com/avoronova/sympathy/internal/logger"
	"github.com/avoronova/sympathy/internal/repository"
	"github.com/avoronova/sympathy/internal/watermark"
)

// AvatarPlaceholder is stored on the user row while the watermarking job is
// still running in the background.
const AvatarPlaceholder = "photo_processing.jpg"

type AuthUseCase struct {
	userRepo    repository.UserRepository
	watermarker *watermark.Watermarker
	jwtSecret   []byte
	tokenTTL    time.Duration
}

func NewAuthUseCase(
	userRepo repository.UserRepository,
	watermarker *watermark.Watermarker,
	jwtSecret string,
	tokenTTL time.Duration,
) *AuthUseCase {
	return &AuthUseCase{
		userRepo:    userRepo,
		watermarker: watermarker,
		jwtSecret:   []byte(jwtSecret),
		tokenTTL:    tokenTTL,
	}
}

// RegisterInput is the validated registration form.
type RegisterInput struct {
	Email     string
	FirstName string
	LastName  string
	Password  string
	Gender    string
	Latitude  *float64
	Longitude *float64
	Avatar    []byte // optional raw JPEG, already validated by the handler
}

// TokenResult is the issued bearer token. Created distinguishes a fresh
// registration from a login of an existing account.
type TokenResult struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	Created     bool   `json:"-"`
}

// RegisterOrLogin creates the user and returns a token, or, when the email
// is already registered, authenticates with the supplied password and
// returns a token for the existing account. On a fresh registration with an
// avatar the watermarking runs as background work so the response is not
// blocked on image processing.
func (uc *AuthUseCase) RegisterOrLogin(ctx context.Context, input RegisterInput) (*TokenResult, error) {
	existing, err := uc.userRepo.GetByEmail(ctx, input.Email)
	if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	if existing != nil {
		token, err := uc.Login(ctx, input.Email, input.Password)
		if err != nil {
			return nil, err
		}
		token.Created = false
		return token, nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		Email:     input.Email,
		Password:  string(hash),
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Gender:    &input.Gender,
		Latitude:  input.Latitude,
		Longitude: input.Longitude,
	}
	if len(input.Avatar) > 0 {
		placeholder := AvatarPlaceholder
		user.Avatar = &placeholder
	}

	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	logger.L().Info("new user registered", "user_id", user.ID)

	if len(input.Avatar) > 0 {
		go uc.processAvatar(user.Email, input.Avatar)
	}

	token, err := uc.issueToken(user.Email)
	if err != nil {
		return nil, err
	}
	token.Created = true
	return token, nil
}

// Login authenticates by email and password.
func (uc *AuthUseCase) Login(ctx context.Context, email, password string) (*TokenResult, error) {
	user, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	return uc.issueToken(user.Email)
}

// CurrentUser resolves the acting user from a bearer token.
func (uc *AuthUseCase) CurrentUser(ctx context.Context, tokenString string) (*domain.User, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, domain.ErrUnauthorized
		}
		return uc.jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return nil, domain.ErrUnauthorized
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	email, ok := claims["sub"].(string)
	if !ok || email == "" {
		return nil, domain.ErrUnauthorized
	}

	user, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, domain.ErrUnauthorized
	}
	return user, nil
}

func (uc *AuthUseCase) issueToken(email string) (*TokenResult, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": email,
		"iat": now.Unix(),
		"exp": now.Add(uc.tokenTTL).Unix(),
	})

	signed, err := token.SignedString(uc.jwtSecret)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}
	return &TokenResult{AccessToken: signed, TokenType: "Bearer"}, nil
}

// processAvatar watermarks the uploaded image and swaps the placeholder for
// the final filename. Runs detached from the request, failures are logged
// and leave the placeholder in place.
func (uc *AuthUseCase) processAvatar(email string, data []byte) {
	filename := uuid.New().String() + ".jpg"

	if err := uc.watermarker.Apply(data, filename); err != nil {
		logger.L().Error("avatar watermarking failed", "email", email, "err", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := uc.userRepo.UpdateAvatarByEmail(ctx, email, filename); err != nil {
		logger.L().Error("avatar update failed", "email", email, "err", err)
	}
}
