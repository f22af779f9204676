package handler

import (
	"errors"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/avoronova/sympathy/internal/domain"
	"github.com/avoronova/sympathy/internal/usecase/auth"
)

// MaxAvatarSize bounds uploaded avatar payloads.
const MaxAvatarSize = 10 << 20

type AuthHandler struct {
	authUseCase *auth.AuthUseCase
}

func NewAuthHandler(authUseCase *auth.AuthUseCase) *AuthHandler {
	return &AuthHandler{authUseCase: authUseCase}
}

// RegisterForm is the multipart registration form.
type RegisterForm struct {
	Email     string   `form:"email" binding:"required,email"`
	FirstName string   `form:"first_name" binding:"required"`
	LastName  string   `form:"last_name" binding:"required"`
	Password  string   `form:"password" binding:"required,min=8"`
	Gender    string   `form:"gender" binding:"omitempty,gender"`
	Latitude  *float64 `form:"latitude" binding:"omitempty,min=-90,max=90"`
	Longitude *float64 `form:"longitude" binding:"omitempty,min=-180,max=180"`
}

// TokenResponse is the issued bearer token.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Create registers a user or logs an existing one in
// @Summary Register or login
// @Description Create a user from a multipart form with an optional JPEG avatar. An already registered email is authenticated with the supplied password instead.
// @Tags clients
// @Accept mpfd
// @Produce json
// @Param email formData string true "Email"
// @Param first_name formData string true "First name"
// @Param last_name formData string true "Last name"
// @Param password formData string true "Password, 8 chars minimum"
// @Param gender formData string false "male or female, defaults to male"
// @Param latitude formData number false "Latitude"
// @Param longitude formData number false "Longitude"
// @Param avatar formData file false "JPEG avatar, 10MB max"
// @Success 201 {object} TokenResponse
// @Success 200 {object} TokenResponse
// @Failure 400 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Router /clients/create [post]
func (h *AuthHandler) Create(c *gin.Context) {
	var form RegisterForm
	if err := c.ShouldBind(&form); err != nil {
		abortWithError(c, http.StatusUnprocessableEntity, "validation failed", err.Error())
		return
	}
	if form.Gender == "" {
		form.Gender = domain.GenderMale
	}

	avatar, err := readAvatar(c)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "invalid avatar", err.Error())
		return
	}

	result, err := h.authUseCase.RegisterOrLogin(c.Request.Context(), auth.RegisterInput{
		Email:     form.Email,
		FirstName: form.FirstName,
		LastName:  form.LastName,
		Password:  form.Password,
		Gender:    form.Gender,
		Latitude:  form.Latitude,
		Longitude: form.Longitude,
		Avatar:    avatar,
	})
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			abortWithError(c, http.StatusBadRequest, "invalid credentials", "email is registered with a different password")
			return
		}
		abortWithError(c, http.StatusInternalServerError, "registration failed", "")
		return
	}

	status := http.StatusOK
	if result.Created {
		status = http.StatusCreated
	}
	c.JSON(status, TokenResponse{
		AccessToken: result.AccessToken,
		TokenType:   result.TokenType,
	})
}

// readAvatar extracts and validates the optional avatar file. Returns nil
// bytes when no file was sent.
func readAvatar(c *gin.Context) ([]byte, error) {
	fh, err := c.FormFile("avatar")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, nil
		}
		return nil, err
	}

	if fh.Size > MaxAvatarSize {
		return nil, errors.New("avatar exceeds 10MB")
	}
	if ct := fh.Header.Get("Content-Type"); ct != "image/jpeg" {
		return nil, errors.New("avatar must be image/jpeg")
	}
	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if ext != ".jpg" && ext != ".jpeg" {
		return nil, errors.New("avatar must have a .jpg or .jpeg extension")
	}

	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return io.ReadAll(io.LimitReader(f, MaxAvatarSize+1))
}
