package list

import (
	"context"
	"fmt"
	"time"

	"github.com/avoronova/sympathy/internal/cache"
	"github.com/avoronova/sympathy/internal/domain"
	"github.com/avoronova/sympathy/internal/logger"
	"github.com/avoronova/sympathy/internal/repository"
)

type ListUseCase struct {
	userRepo repository.UserRepository
	cache    *cache.Cache
	ttl      time.Duration
}

func NewListUseCase(userRepo repository.UserRepository, cache *cache.Cache, ttl time.Duration) *ListUseCase {
	return &ListUseCase{userRepo: userRepo, cache: cache, ttl: ttl}
}

// Request holds the already-bound /list query parameters.
type Request struct {
	Gender    string
	FirstName string
	LastName  string
	RadiusKm  float64
	SortOrder string
	Limit     int
	Offset    int
}

// Page is one offset-paginated page of users.
type Page struct {
	Total  int           `json:"total"`
	Offset int           `json:"offset"`
	Limit  int           `json:"limit"`
	Items  []domain.User `json:"items"`
}

// ListUsers returns one filtered page. Results are memoized per requester
// and parameter combination; a cache hit skips both the page query and the
// count query. Cache read failures degrade to a miss instead of failing the
// request.
func (uc *ListUseCase) ListUsers(ctx context.Context, requester *domain.User, req Request) (*Page, error) {
	if req.SortOrder != "" && req.SortOrder != "asc" && req.SortOrder != "desc" {
		return nil, domain.ErrInvalidSortOrder
	}

	filter := repository.UserListFilter{
		Gender:    req.Gender,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		SortOrder: req.SortOrder,
		Limit:     req.Limit,
		Offset:    req.Offset,
	}
	if req.RadiusKm > 0 {
		if !requester.HasCoordinates() {
			return nil, domain.ErrMissingCoordinates
		}
		filter.RadiusKm = req.RadiusKm
		filter.Latitude = *requester.Latitude
		filter.Longitude = *requester.Longitude
	}

	key := cache.ListPageKey(requester.ID, req.Gender, req.FirstName, req.LastName,
		req.RadiusKm, req.SortOrder, req.Limit, req.Offset)

	var page Page
	hit, err := uc.cache.GetListPage(ctx, key, &page)
	if err != nil {
		logger.L().Warn("list cache read failed", "key", key, "err", err)
	}
	if hit {
		return &page, nil
	}

	users, total, err := uc.userRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	page = Page{Total: total, Offset: req.Offset, Limit: req.Limit, Items: users}

	if err := uc.cache.SetListPage(ctx, key, &page, uc.ttl); err != nil {
		logger.L().Warn("list cache write failed", "key", key, "err", err)
	}

	return &page, nil
}
