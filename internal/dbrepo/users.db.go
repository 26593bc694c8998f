package dbrepo

import (
	"context"
	"errors"
	"fmt"

	"github.com/bmoutsourcing/payslip-api/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ============================== Staff User Repository ==============================
type UserRepo struct {
	db *pgxpool.Pool
}

func NewUserRepo(db *pgxpool.Pool) *UserRepo {
	return &UserRepo{db: db}
}

// CreateUser inserts a new staff user. Password must already be hashed.
func (r *UserRepo) CreateUser(ctx context.Context, u *models.User) error {
	query := `
		INSERT INTO users (username, password, role, status, created_at, updated_at)
		VALUES ($1,$2,$3,$4,CURRENT_TIMESTAMP,CURRENT_TIMESTAMP)
		RETURNING id, created_at, updated_at;
	`
	err := r.db.QueryRow(ctx, query,
		u.Username, u.Password, u.Role, u.Status,
	).Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" && pgErr.ConstraintName == "users_username_key" {
			return errors.New("this username is already taken")
		}
		return fmt.Errorf("error creating user: %w", err)
	}
	return nil
}

// GetUser fetches a staff user by ID
func (r *UserRepo) GetUser(ctx context.Context, id int) (*models.User, error) {
	query := `SELECT id, username, role, status, last_login, created_at, updated_at FROM users WHERE id=$1`
	u := &models.User{}
	err := r.db.QueryRow(ctx, query, id).Scan(
		&u.ID, &u.Username, &u.Role, &u.Status, &u.LastLogin, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return u, nil
}

// GetUserByUsername fetches a staff user with the password hash, for signin
func (r *UserRepo) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	query := `SELECT id, username, password, role, status, last_login, created_at, updated_at FROM users WHERE username=$1`
	u := &models.User{}
	err := r.db.QueryRow(ctx, query, username).Scan(
		&u.ID, &u.Username, &u.Password, &u.Role, &u.Status, &u.LastLogin, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return u, nil
}

// UpdateUser updates role, status and optionally the password hash
func (r *UserRepo) UpdateUser(ctx context.Context, u *models.User) error {
	query := `
		UPDATE users
		SET role=$1, status=$2,
		    password = COALESCE(NULLIF($3,''), password),
		    updated_at=CURRENT_TIMESTAMP
		WHERE id=$4
		RETURNING updated_at;
	`
	return r.db.QueryRow(ctx, query, u.Role, u.Status, u.Password, u.ID).Scan(&u.UpdatedAt)
}

// UpdateLastLogin stamps a successful signin
func (r *UserRepo) UpdateLastLogin(ctx context.Context, id int) error {
	_, err := r.db.Exec(ctx, "UPDATE users SET last_login=CURRENT_TIMESTAMP WHERE id=$1", id)
	return err
}

// DeleteUser removes a staff user by ID
func (r *UserRepo) DeleteUser(ctx context.Context, id int) error {
	result, err := r.db.Exec(ctx, "DELETE FROM users WHERE id=$1", id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// ListUsers fetches all staff users
func (r *UserRepo) ListUsers(ctx context.Context) ([]*models.User, error) {
	query := `SELECT id, username, role, status, last_login, created_at, updated_at FROM users ORDER BY id`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := []*models.User{}
	for rows.Next() {
		var u models.User
		err := rows.Scan(&u.ID, &u.Username, &u.Role, &u.Status, &u.LastLogin, &u.CreatedAt, &u.UpdatedAt)
		if err != nil {
			return nil, err
		}
		users = append(users, &u)
	}
	return users, nil
}
