package match

import (
	"context"
	"fmt"
	"time"

	"github.com/avoronova/sympathy/internal/cache"
	"github.com/avoronova/sympathy/internal/domain"
	"github.com/avoronova/sympathy/internal/logger"
	"github.com/avoronova/sympathy/internal/repository"
)

const matchSubject = "You have a match"

// Notifier delivers a single best-effort message.
type Notifier interface {
	Send(to, subject, body string) error
}

type MatchUseCase struct {
	coincidenceRepo repository.CoincidenceRepository
	userRepo        repository.UserRepository
	cache           *cache.Cache
	notifier        Notifier
	limit           int
	window          time.Duration
}

func NewMatchUseCase(
	coincidenceRepo repository.CoincidenceRepository,
	userRepo repository.UserRepository,
	cache *cache.Cache,
	notifier Notifier,
	limit int,
	window time.Duration,
) *MatchUseCase {
	return &MatchUseCase{
		coincidenceRepo: coincidenceRepo,
		userRepo:        userRepo,
		cache:           cache,
		notifier:        notifier,
		limit:           limit,
		window:          window,
	}
}

// Result is returned only for a newly mutual match and carries the
// counterpart's contact email.
type Result struct {
	Email string `json:"email"`
}

// AttemptMatch runs one match attempt by actor against targetID.
//
// Order of checks is fixed: self-match, then the rate limit, then the
// ledger, so a throttled attempt never mutates match state. A nil Result
// with nil error means the attempt was recorded but the pair is not (newly)
// mutual. On a newly mutual pair both parties are emailed from background
// goroutines; notification failures are logged, never surfaced.
func (uc *MatchUseCase) AttemptMatch(ctx context.Context, actor *domain.User, targetID int) (*Result, error) {
	if actor.ID == targetID {
		return nil, domain.ErrSelfMatch
	}

	count, err := uc.cache.IncrMatchCount(ctx, actor.ID, uc.window)
	if err != nil {
		return nil, fmt.Errorf("rate limit check: %w", err)
	}
	if count > int64(uc.limit) {
		return nil, domain.ErrRateLimitExceeded
	}

	mutual, err := uc.coincidenceRepo.RecordLike(ctx, actor.ID, targetID)
	if err != nil {
		return nil, fmt.Errorf("record like: %w", err)
	}
	if !mutual {
		return nil, nil
	}

	target, err := uc.userRepo.GetByID(ctx, targetID)
	if err != nil {
		return nil, err
	}

	uc.notifyBoth(actor, target)

	return &Result{Email: target.Email}, nil
}

// notifyBoth tells each party about the other. Fire-and-forget: the match
// response never waits on SMTP.
func (uc *MatchUseCase) notifyBoth(actor, target *domain.User) {
	uc.sendAsync(target.Email, actor)
	uc.sendAsync(actor.Email, target)
}

func (uc *MatchUseCase) sendAsync(to string, likedBy *domain.User) {
	body := fmt.Sprintf("You were liked by %s! Contact email: %s", likedBy.FirstName, likedBy.Email)
	go func() {
		if err := uc.notifier.Send(to, matchSubject, body); err != nil {
			logger.L().Error("match notification failed", "to", to, "err", err)
		}
	}()
}
