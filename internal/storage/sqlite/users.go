package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/mmynk/bucketpos/internal/apperr"
	"github.com/mmynk/bucketpos/internal/models"
)

const userColumns = `
	u.id, u.username, u.display_name, u.role_id, r.name, u.active, u.created_at, u.updated_at, u.password_hash
	FROM users u
	JOIN user_roles r ON r.id = u.role_id`

func scanUser(row interface{ Scan(...any) error }) (*models.User, error) {
	user := &models.User{}
	err := row.Scan(
		&user.ID,
		&user.Username,
		&user.DisplayName,
		&user.RoleID,
		&user.Role,
		&user.Active,
		&user.CreatedAt,
		&user.UpdatedAt,
		&user.PasswordHash,
	)
	if err != nil {
		return nil, err
	}
	return user, nil
}

// ListRoles returns the staff roles.
func (s *SQLiteStore) ListRoles(ctx context.Context) ([]*models.Role, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT id, name FROM user_roles ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("failed to list roles: %w", err)
	}
	defer rows.Close()

	var roles []*models.Role
	for rows.Next() {
		role := &models.Role{}
		if err := rows.Scan(&role.ID, &role.Name); err != nil {
			return nil, fmt.Errorf("failed to scan role: %w", err)
		}
		roles = append(roles, role)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating roles: %w", err)
	}
	return roles, nil
}

// ListUsers returns staff accounts ordered by username. Password hashes
// are cleared.
func (s *SQLiteStore) ListUsers(ctx context.Context) ([]*models.User, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT "+userColumns+" ORDER BY u.username COLLATE NOCASE")
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		user.PasswordHash = ""
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating users: %w", err)
	}
	return users, nil
}

// GetUserByUsername retrieves a user, including the password hash, by
// username.
func (s *SQLiteStore) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	user, err := scanUser(s.db.QueryRowContext(ctx,
		"SELECT "+userColumns+" WHERE u.username = ?", strings.TrimSpace(username),
	))
	if err == sql.ErrNoRows {
		return nil, apperr.NotFound("user not found: %s", username)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by username: %w", err)
	}
	return user, nil
}

// SaveUser inserts or updates a staff account. The caller hashes the
// password; an empty hash on update keeps the stored one.
func (s *SQLiteStore) SaveUser(ctx context.Context, user *models.User) (int64, error) {
	username := strings.TrimSpace(user.Username)
	if username == "" {
		return 0, apperr.InvalidInput("username is required")
	}
	displayName := strings.TrimSpace(user.DisplayName)
	if displayName == "" {
		displayName = username
	}
	now := s.now().Unix()

	if user.ID == 0 {
		if user.PasswordHash == "" {
			return 0, apperr.InvalidInput("password is required")
		}
		res, err := s.db.ExecContext(ctx, `
			INSERT INTO users (username, display_name, password_hash, role_id, active, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`, username, displayName, user.PasswordHash, user.RoleID, user.Active, now, now)
		if err != nil {
			return 0, userWriteError(err, username)
		}
		return res.LastInsertId()
	}

	query := `UPDATE users SET username = ?, display_name = ?, role_id = ?, active = ?, updated_at = ?`
	args := []any{username, displayName, user.RoleID, user.Active, now}
	if user.PasswordHash != "" {
		query += ", password_hash = ?"
		args = append(args, user.PasswordHash)
	}
	query += " WHERE id = ?"
	args = append(args, user.ID)

	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, userWriteError(err, username)
	}
	if err := requireAffected(res, "user", user.ID); err != nil {
		return 0, err
	}
	return user.ID, nil
}

func (s *SQLiteStore) DeleteUser(ctx context.Context, userID int64) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM users WHERE id = ?", userID)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return requireAffected(res, "user", userID)
}

func userWriteError(err error, username string) error {
	switch {
	case isUniqueViolation(err):
		return apperr.Conflict("username already taken: %s", username)
	case isForeignKeyViolation(err):
		return apperr.NotFound("role not found")
	}
	return fmt.Errorf("failed to save user: %w", err)
}
