package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avoronova/sympathy/internal/domain"
	"github.com/avoronova/sympathy/internal/repository"
)

func userRows(ids ...int) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{
		"id", "email", "password", "first_name", "last_name",
		"gender", "avatar", "latitude", "longitude", "created_at",
	})
	for _, id := range ids {
		rows.AddRow(id, "user@example.com", "hash", "First", "Last",
			"male", nil, nil, nil, time.Now())
	}
	return rows
}

func TestGetByEmailNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectQuery(`SELECT .+ FROM users WHERE email`).
		WithArgs("ghost@example.com").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByEmail(context.Background(), "ghost@example.com")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestUpdateAvatarByEmailMissingUser(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectExec(`UPDATE users SET avatar`).
		WithArgs("a.jpg", "ghost@example.com").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateAvatarByEmail(context.Background(), "ghost@example.com", "a.jpg")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestListUnfiltered(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectQuery(`SELECT count\(\*\) FROM users`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(42))
	mock.ExpectQuery(`SELECT .+ FROM users ORDER BY id ASC LIMIT \$1 OFFSET \$2`).
		WithArgs(10, 0).
		WillReturnRows(userRows(1, 2, 3))

	users, total, err := repo.List(context.Background(), repository.UserListFilter{Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, 42, total)
	assert.Len(t, users, 3)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListWithFilters(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectQuery(`SELECT count\(\*\) FROM users WHERE gender = \$1 AND first_name ILIKE \$2`).
		WithArgs("female", "%An%").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
	mock.ExpectQuery(`SELECT .+ FROM users WHERE gender = \$1 AND first_name ILIKE \$2 ORDER BY created_at DESC LIMIT \$3 OFFSET \$4`).
		WithArgs("female", "%An%", 5, 10).
		WillReturnRows(userRows(4, 5))

	users, total, err := repo.List(context.Background(), repository.UserListFilter{
		Gender:    "female",
		FirstName: "An",
		SortOrder: "desc",
		Limit:     5,
		Offset:    10,
	})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	assert.Len(t, users, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListWithRadius(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	// haversine condition binds requester lat, lon and the radius
	mock.ExpectQuery(`SELECT count\(\*\) FROM users WHERE latitude IS NOT NULL`).
		WithArgs(55.75, 37.61, 10.0).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(`asin\(sqrt\(`).
		WithArgs(55.75, 37.61, 10.0, 10, 0).
		WillReturnRows(userRows(6))

	users, total, err := repo.List(context.Background(), repository.UserListFilter{
		RadiusKm:  10.0,
		Latitude:  55.75,
		Longitude: 37.61,
		Limit:     10,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Len(t, users, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}
