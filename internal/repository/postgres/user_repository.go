package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/avoronova/sympathy/internal/domain"
	"github.com/avoronova/sympathy/internal/repository"
)

const userColumns = `id, email, password, first_name, last_name, gender, avatar, latitude, longitude, created_at`

type userRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) repository.UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	query := `
		INSERT INTO users (email, password, first_name, last_name, gender, avatar, latitude, longitude)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at
	`
	return r.db.QueryRowContext(
		ctx, query,
		user.Email, user.Password, user.FirstName, user.LastName,
		user.Gender, user.Avatar, user.Latitude, user.Longitude,
	).Scan(&user.ID, &user.CreatedAt)
}

func (r *userRepository) GetByID(ctx context.Context, id int) (*domain.User, error) {
	var user domain.User
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	err := r.db.GetContext(ctx, &user, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user domain.User
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	err := r.db.GetContext(ctx, &user, query, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) UpdateAvatarByEmail(ctx context.Context, email, avatar string) error {
	query := `UPDATE users SET avatar = $1 WHERE email = $2`
	result, err := r.db.ExecContext(ctx, query, avatar, email)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// List returns one page of users matching the filter plus the total count of
// matching rows. The distance condition is the haversine formula evaluated in
// SQL against the requester's coordinates (Earth radius 6371.0 km).
func (r *userRepository) List(ctx context.Context, f repository.UserListFilter) ([]domain.User, int, error) {
	var (
		conds []string
		args  []interface{}
	)

	if f.Gender != "" {
		args = append(args, f.Gender)
		conds = append(conds, fmt.Sprintf("gender = $%d", len(args)))
	}
	if f.FirstName != "" {
		args = append(args, "%"+f.FirstName+"%")
		conds = append(conds, fmt.Sprintf("first_name ILIKE $%d", len(args)))
	}
	if f.LastName != "" {
		args = append(args, "%"+f.LastName+"%")
		conds = append(conds, fmt.Sprintf("last_name ILIKE $%d", len(args)))
	}
	if f.RadiusKm > 0 {
		args = append(args, f.Latitude, f.Longitude, f.RadiusKm)
		latArg, lonArg, radArg := len(args)-2, len(args)-1, len(args)
		conds = append(conds, fmt.Sprintf(`latitude IS NOT NULL AND longitude IS NOT NULL
			AND 6371.0 * 2 * asin(sqrt(
				pow(sin(radians(latitude - $%d) / 2), 2)
				+ cos(radians($%d)) * cos(radians(latitude))
				* pow(sin(radians(longitude - $%d) / 2), 2)
			)) <= $%d`, latArg, latArg, lonArg, radArg))
	}

	where := ""
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}

	var total int
	countQuery := `SELECT count(*) FROM users` + where
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, err
	}

	order := " ORDER BY id ASC"
	switch f.SortOrder {
	case "asc":
		order = " ORDER BY created_at ASC"
	case "desc":
		order = " ORDER BY created_at DESC"
	}

	args = append(args, f.Limit, f.Offset)
	query := fmt.Sprintf(`SELECT `+userColumns+` FROM users%s%s LIMIT $%d OFFSET $%d`,
		where, order, len(args)-1, len(args))

	users := []domain.User{}
	if err := r.db.SelectContext(ctx, &users, query, args...); err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

func (r *userRepository) DeleteAll(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM users`)
	return err
}
