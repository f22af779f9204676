package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avoronova/sympathy/internal/cache"
	"github.com/avoronova/sympathy/internal/delivery/http/middleware"
	"github.com/avoronova/sympathy/internal/domain"
	"github.com/avoronova/sympathy/internal/repository"
	"github.com/avoronova/sympathy/internal/usecase/list"
)

type recordingUserRepo struct {
	lastFilter repository.UserListFilter
	listCalls  int
}

func (r *recordingUserRepo) Create(context.Context, *domain.User) error { return nil }

func (r *recordingUserRepo) GetByID(context.Context, int) (*domain.User, error) {
	return nil, domain.ErrUserNotFound
}

func (r *recordingUserRepo) GetByEmail(context.Context, string) (*domain.User, error) {
	return nil, domain.ErrUserNotFound
}

func (r *recordingUserRepo) UpdateAvatarByEmail(context.Context, string, string) error { return nil }

func (r *recordingUserRepo) List(_ context.Context, f repository.UserListFilter) ([]domain.User, int, error) {
	r.listCalls++
	r.lastFilter = f
	return []domain.User{}, 0, nil
}

func (r *recordingUserRepo) DeleteAll(context.Context) error { return nil }

type staticResolver struct {
	user *domain.User
}

func (s *staticResolver) CurrentUser(context.Context, string) (*domain.User, error) {
	return s.user, nil
}

func newListTestRouter(t *testing.T, repo *recordingUserRepo) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	// Same registration the production router performs in registerValidators.
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("gender", func(fl validator.FieldLevel) bool {
			g := fl.Field().String()
			return g == domain.GenderMale || g == domain.GenderFemale
		})
	}

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	uc := list.NewListUseCase(repo, cache.New(client), time.Minute)
	h := NewListHandler(uc)
	mw := middleware.NewAuthMiddleware(&staticResolver{
		user: &domain.User{ID: 1, Email: "me@example.com"},
	})

	router := gin.New()
	router.GET("/list", mw.RequireAuth(), h.List)
	return router
}

func getList(router *gin.Engine, query string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/list"+query, nil)
	req.Header.Set("Authorization", "Bearer token")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestListBindsSortByRegistrationDate(t *testing.T) {
	repo := &recordingUserRepo{}
	router := newListTestRouter(t, repo)

	w := getList(router, "?sort_by_registration_date=desc")
	assert.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, 1, repo.listCalls)
	assert.Equal(t, "desc", repo.lastFilter.SortOrder)
}

func TestListRejectsInvalidSortByRegistrationDate(t *testing.T) {
	repo := &recordingUserRepo{}
	router := newListTestRouter(t, repo)

	w := getList(router, "?sort_by_registration_date=sideways")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "sort_by_registration_date")
	assert.Equal(t, 0, repo.listCalls)
}

func TestListDefaultsLimit(t *testing.T) {
	repo := &recordingUserRepo{}
	router := newListTestRouter(t, repo)

	w := getList(router, "")
	assert.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, 1, repo.listCalls)
	assert.Equal(t, 10, repo.lastFilter.Limit)
}
