package domain

import "errors"

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("incorrect email or password")
	ErrSelfMatch          = errors.New("can't match with yourself")
	ErrRateLimitExceeded  = errors.New("too many match attempts")
	ErrUnauthorized       = errors.New("could not validate credentials")
	ErrForbidden          = errors.New("invalid token scheme")
	ErrInvalidSortOrder   = errors.New("sort_by_registration_date must be 'asc' or 'desc'")
	ErrMissingCoordinates = errors.New("user has no stored coordinates for distance filtering")
)
