package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/lppm/research-portal/internal/app/models"
	"github.com/lppm/research-portal/internal/db"
	"github.com/lppm/research-portal/internal/pkg/apperrors"
)

var userColumns = []string{"id", "name", "email", "password", "role", "created_at", "updated_at"}

// UserRepository handles database operations for users
type UserRepository struct {
	db *db.PostgresDB
	sb squirrel.StatementBuilderType
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(database *db.PostgresDB) *UserRepository {
	return &UserRepository{db: database, sb: newBuilder()}
}

func scanUser(row pgx.Row) (models.User, error) {
	var u models.User
	var role string
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.Password, &role, &u.CreatedAt, &u.UpdatedAt)
	u.Role = models.ParseRole(role)
	return u, err
}

// Create inserts a user. Password must already be hashed.
func (r *UserRepository) Create(ctx context.Context, u *models.User) error {
	now := time.Now()
	sql, args, err := r.sb.Insert("users").
		Columns("name", "email", "password", "role", "created_at", "updated_at").
		Values(u.Name, u.Email, u.Password, string(u.Role), now, now).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create user query: %w", err)
	}
	if err := r.db.Conn(ctx).QueryRow(ctx, sql, args...).Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return fmt.Errorf("error creating user: %w", err)
	}
	return nil
}

// Update overwrites name, email, role and password hash.
func (r *UserRepository) Update(ctx context.Context, u *models.User) error {
	sql, args, err := r.sb.Update("users").
		SetMap(map[string]interface{}{
			"name":       u.Name,
			"email":      u.Email,
			"password":   u.Password,
			"role":       string(u.Role),
			"updated_at": time.Now(),
		}).
		Where(squirrel.Eq{"id": u.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update user query: %w", err)
	}
	tag, err := r.db.Conn(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error updating user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewResourceNotFoundError("User not found")
	}
	return nil
}

func (r *UserRepository) getBy(ctx context.Context, cond squirrel.Eq) (*models.User, error) {
	sql, args, err := r.sb.Select(userColumns...).From("users").Where(cond).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get user query: %w", err)
	}
	u, err := scanUser(r.db.Conn(ctx).QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewResourceNotFoundError("User not found")
		}
		return nil, fmt.Errorf("error retrieving user: %w", err)
	}
	return &u, nil
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	return r.getBy(ctx, squirrel.Eq{"id": id})
}

// GetByEmail retrieves a user by email
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.getBy(ctx, squirrel.Eq{"email": email})
}

// List returns a page of users matching the search on name and email.
func (r *UserRepository) List(ctx context.Context, opts ListOptions) ([]models.User, int64, error) {
	base := r.sb.Select().From("users")
	if cond := searchCondition(opts.Search, "name", "email"); cond != nil {
		base = base.Where(cond)
	}
	return paginate(ctx, r.db.Conn(ctx), base, userColumns, "id ASC", opts, scanUser)
}

// EmailExists checks email uniqueness, ignoring excludeID.
func (r *UserRepository) EmailExists(ctx context.Context, email string, excludeID int64) (bool, error) {
	return existsWhere(ctx, r.db.Conn(ctx), "users", "email", email, excludeID)
}

// Delete removes a user together with their tokens and posts.
func (r *UserRepository) Delete(ctx context.Context, id int64) error {
	found, err := deleteByID(ctx, r.db.Conn(ctx), "users", id)
	if err != nil {
		return err
	}
	if !found {
		return apperrors.NewResourceNotFoundError("User not found")
	}
	return nil
}
