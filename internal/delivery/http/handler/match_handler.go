package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/avoronova/sympathy/internal/delivery/http/middleware"
	"github.com/avoronova/sympathy/internal/domain"
	"github.com/avoronova/sympathy/internal/usecase/match"
)

type MatchHandler struct {
	matchUseCase *match.MatchUseCase
}

func NewMatchHandler(matchUseCase *match.MatchUseCase) *MatchHandler {
	return &MatchHandler{matchUseCase: matchUseCase}
}

// Match likes another user
// @Summary Like a user
// @Description Record a like against another user. Returns the counterpart's email when the like turns out to be mutual, 204 otherwise.
// @Tags clients
// @Security BearerAuth
// @Produce json
// @Param id path int true "Target user ID"
// @Success 200 {object} match.Result
// @Success 204
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Failure 429 {object} ErrorResponse
// @Router /clients/{id}/match [post]
func (h *MatchHandler) Match(c *gin.Context) {
	actor, ok := middleware.CurrentUser(c)
	if !ok {
		abortWithError(c, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	targetID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusUnprocessableEntity, "validation failed", "id must be an integer")
		return
	}

	result, err := h.matchUseCase.AttemptMatch(c.Request.Context(), actor, targetID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrSelfMatch):
			abortWithError(c, http.StatusBadRequest, "self match", "you cannot match with yourself")
		case errors.Is(err, domain.ErrUserNotFound):
			abortWithError(c, http.StatusBadRequest, "user not found", "target user does not exist")
		case errors.Is(err, domain.ErrRateLimitExceeded):
			abortWithError(c, http.StatusTooManyRequests, "rate limit exceeded", "daily match limit reached")
		default:
			abortWithError(c, http.StatusInternalServerError, "match failed", "")
		}
		return
	}

	if result == nil {
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusOK, result)
}
