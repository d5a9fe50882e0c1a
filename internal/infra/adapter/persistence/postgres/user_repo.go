package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"content-hub/internal/domain/entity"
	"content-hub/internal/repository"
)

type UserRepo struct {
	db *sql.DB
}

func NewUserRepo(database *sql.DB) repository.UserRepository {
	return &UserRepo{db: database}
}

const userColumns = `id, username, email, password_hash, user_type, created_at, updated_at`

func scanUser(s rowScanner) (*entity.User, error) {
	var u entity.User
	var typ string
	if err := s.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &typ, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, err
	}
	u.UserType = entity.UserType(typ)
	return &u, nil
}

func (repo *UserRepo) List(ctx context.Context) ([]*entity.User, error) {
	rows, err := repo.db.QueryContext(ctx, `SELECT `+userColumns+` FROM users ORDER BY created_at ASC`)
	if err != nil {
		return nil, mapReadError("List", err)
	}
	defer func() { _ = rows.Close() }()

	var users []*entity.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("List: Scan: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (repo *UserRepo) getBy(ctx context.Context, op, column, value string) (*entity.User, error) {
	u, err := scanUser(repo.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE `+column+` = $1`, value))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", op, entity.ErrNotFound)
	}
	if err != nil {
		return nil, mapReadError(op, err)
	}
	return u, nil
}

func (repo *UserRepo) Get(ctx context.Context, id string) (*entity.User, error) {
	return repo.getBy(ctx, "Get", "id", id)
}

func (repo *UserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return repo.getBy(ctx, "GetByEmail", "email", email)
}

func (repo *UserRepo) Create(ctx context.Context, u *entity.User) error {
	const query = `
INSERT INTO users (id, username, email, password_hash, user_type, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := repo.db.ExecContext(ctx, query,
		u.ID, u.Username, u.Email, u.PasswordHash, string(u.UserType), u.CreatedAt, u.UpdatedAt)
	return mapWriteError("Create", err, entity.ErrCreationFailed)
}
