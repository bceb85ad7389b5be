package postgres

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/user-service/internal/domain/entity"
	"github.com/oksasatya/user-service/internal/domain/repository"
)

const uniqueViolation = "23505"

const userColumns = `id, first_name, last_name, email, password_hash, is_active,
	created_date, created_by, last_modified_date, last_modified_by`

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

func scanUser(row pgx.Row) (*entity.User, error) {
	u := &entity.User{}
	err := row.Scan(&u.ID, &u.FirstName, &u.LastName, &u.Email, &u.PasswordHash, &u.IsActive,
		&u.CreatedDate, &u.CreatedBy, &u.LastModifiedDate, &u.LastModifiedBy)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return u, nil
}

// mapWriteError translates the unique email index violation into ErrEmailTaken.
func mapWriteError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return fmt.Errorf("%w: %s", repository.ErrEmailTaken, pgErr.ConstraintName)
	}
	return err
}

func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	return scanUser(row)
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
	return scanUser(row)
}

// maxPrealloc bounds the result slice capacity; pageSize is caller input.
const maxPrealloc = 64

func (r *UserRepository) GetPage(ctx context.Context, pageIndex, pageSize int) ([]*entity.User, error) {
	if pageIndex < 0 || pageSize <= 0 || pageIndex > math.MaxInt/pageSize {
		return []*entity.User{}, nil
	}
	rows, err := r.pool.Query(ctx, `
		SELECT `+userColumns+`
		FROM users
		ORDER BY id
		OFFSET $1 LIMIT $2
	`, int64(pageIndex)*int64(pageSize), pageSize)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := make([]*entity.User, 0, min(pageSize, maxPrealloc))
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return users, nil
}

func (r *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE email = $1)`, email).Scan(&exists)
	return exists, err
}

func (r *UserRepository) Add(ctx context.Context, u *entity.User) (*entity.User, error) {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO users (`+userColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`, u.ID, u.FirstName, u.LastName, u.Email, u.PasswordHash, u.IsActive,
		u.CreatedDate, u.CreatedBy, u.LastModifiedDate, u.LastModifiedBy)
	if err != nil {
		return nil, mapWriteError(err)
	}
	return u, nil
}

func (r *UserRepository) Update(ctx context.Context, u *entity.User) (*entity.User, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE users
		SET first_name = $2, last_name = $3, email = $4, password_hash = $5, is_active = $6,
			last_modified_date = $7, last_modified_by = $8
		WHERE id = $1
		RETURNING `+userColumns, u.ID, u.FirstName, u.LastName, u.Email, u.PasswordHash, u.IsActive,
		u.LastModifiedDate, u.LastModifiedBy)
	updated, err := scanUser(row)
	if err != nil {
		return nil, mapWriteError(err)
	}
	return updated, nil
}

func (r *UserRepository) SetActiveState(ctx context.Context, u *entity.User, isActive bool) (bool, error) {
	res, err := r.pool.Exec(ctx, `
		UPDATE users
		SET is_active = $2, last_modified_date = $3, last_modified_by = $4
		WHERE id = $1
	`, u.ID, isActive, u.LastModifiedDate, u.LastModifiedBy)
	if err != nil {
		return false, err
	}
	if res.RowsAffected() == 0 {
		return false, nil
	}
	u.IsActive = isActive
	return true, nil
}

func (r *UserRepository) Delete(ctx context.Context, u *entity.User) (bool, error) {
	res, err := r.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, u.ID)
	if err != nil {
		return false, err
	}
	return res.RowsAffected() > 0, nil
}

var _ repository.UserRepository = (*UserRepository)(nil)
