package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/avoronova/sympathy/internal/delivery/http/middleware"
	"github.com/avoronova/sympathy/internal/domain"
	"github.com/avoronova/sympathy/internal/usecase/list"
)

type ListHandler struct {
	listUseCase *list.ListUseCase
}

func NewListHandler(listUseCase *list.ListUseCase) *ListHandler {
	return &ListHandler{listUseCase: listUseCase}
}

// ListQuery binds the /list query string.
type ListQuery struct {
	Gender    string  `form:"gender" binding:"omitempty,gender"`
	FirstName string  `form:"first_name"`
	LastName  string  `form:"last_name"`
	RadiusKm  float64 `form:"radius_km" binding:"omitempty,min=0"`
	SortOrder string  `form:"sort_by_registration_date"`
	Limit     int     `form:"limit,default=10" binding:"omitempty,min=1,max=100"`
	Offset    int     `form:"offset" binding:"omitempty,min=0"`
}

// List returns a filtered page of users
// @Summary List users
// @Description Page through users filtered by gender, name substring and distance from the requester.
// @Tags list
// @Security BearerAuth
// @Produce json
// @Param gender query string false "male or female"
// @Param first_name query string false "First name substring, case-insensitive"
// @Param last_name query string false "Last name substring, case-insensitive"
// @Param radius_km query number false "Max distance from the requester in km"
// @Param sort_by_registration_date query string false "asc or desc by registration time"
// @Param limit query int false "Page size, default 10"
// @Param offset query int false "Page offset"
// @Success 200 {object} list.Page
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Router /list [get]
func (h *ListHandler) List(c *gin.Context) {
	requester, ok := middleware.CurrentUser(c)
	if !ok {
		abortWithError(c, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	var query ListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		abortWithError(c, http.StatusUnprocessableEntity, "validation failed", err.Error())
		return
	}

	page, err := h.listUseCase.ListUsers(c.Request.Context(), requester, list.Request{
		Gender:    query.Gender,
		FirstName: query.FirstName,
		LastName:  query.LastName,
		RadiusKm:  query.RadiusKm,
		SortOrder: query.SortOrder,
		Limit:     query.Limit,
		Offset:    query.Offset,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidSortOrder):
			abortWithError(c, http.StatusBadRequest, "invalid sort order", "sort_by_registration_date must be asc or desc")
		case errors.Is(err, domain.ErrMissingCoordinates):
			abortWithError(c, http.StatusBadRequest, "missing coordinates", "radius filtering requires your profile to have coordinates")
		default:
			abortWithError(c, http.StatusInternalServerError, "list failed", "")
		}
		return
	}

	c.JSON(http.StatusOK, page)
}
