// File: internal/store/user.go
package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"mamacare/internal/database"
	"mamacare/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// store 層的錯誤分類，handler 以 errors.Is 判讀後轉為 HTTP 狀態
var (
	ErrNotFound       = errors.New("not found")
	ErrDuplicateEmail = errors.New("email already exists")
)

const uniqueViolation = "23505"

func isDuplicate(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

const userColumns = `id, name, email, password_hash, role, is_active,
	 last_login, password_changed_at, created_at, updated_at`

func scanUser(row pgx.Row) (*model.User, error) {
	u := &model.User{}
	err := row.Scan(
		&u.ID,
		&u.Name,
		&u.Email,
		&u.PasswordHash,
		&u.Role,
		&u.IsActive,
		&u.LastLogin,
		&u.PasswordChangedAt,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return u, nil
}

func GetUserByID(ctx context.Context, db database.DB, userID int) (*model.User, error) {
	row := db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`,
		userID,
	)
	u, err := scanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("GetUserByID: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("GetUserByID: %w", err)
	}
	return u, nil
}

// GetUserByEmail 以小寫後的 email 查詢
func GetUserByEmail(ctx context.Context, db database.DB, email string) (*model.User, error) {
	row := db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = $1`,
		strings.ToLower(email),
	)
	u, err := scanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("GetUserByEmail: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("GetUserByEmail: %w", err)
	}
	return u, nil
}

func CountUsers(ctx context.Context, db database.DB) (int, error) {
	var n int
	if err := db.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&n); err != nil {
		return 0, fmt.Errorf("CountUsers: %w", err)
	}
	return n, nil
}

// CreateUser 寫入新使用者；email 重複時回傳 ErrDuplicateEmail。
// 初次建立不設定 password_changed_at。
func CreateUser(ctx context.Context, db database.DB, u *model.User) (*model.User, error) {
	row := db.QueryRow(ctx,
		`INSERT INTO users (name, email, password_hash, role)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, is_active, created_at, updated_at`,
		u.Name,
		strings.ToLower(u.Email),
		u.PasswordHash,
		u.Role,
	)
	if err := row.Scan(&u.ID, &u.IsActive, &u.CreatedAt, &u.UpdatedAt); err != nil {
		if isDuplicate(err) {
			return nil, fmt.Errorf("CreateUser: %w", ErrDuplicateEmail)
		}
		return nil, fmt.Errorf("CreateUser: %w", err)
	}
	u.Email = strings.ToLower(u.Email)
	return u, nil
}

// ListUsers 依建立時間新到舊分頁，回傳該頁資料與總筆數
func ListUsers(ctx context.Context, db database.DB, page, limit int) ([]model.User, int, error) {
	total, err := CountUsers(ctx, db)
	if err != nil {
		return nil, 0, fmt.Errorf("ListUsers: %w", err)
	}

	offset := (page - 1) * limit
	rows, err := db.Query(ctx,
		`SELECT `+userColumns+` FROM users
		 ORDER BY created_at DESC
		 LIMIT $1 OFFSET $2`,
		limit, offset,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("ListUsers: %w", err)
	}
	defer rows.Close()

	var users []model.User
	for rows.Next() {
		u := model.User{}
		if err := rows.Scan(
			&u.ID,
			&u.Name,
			&u.Email,
			&u.PasswordHash,
			&u.Role,
			&u.IsActive,
			&u.LastLogin,
			&u.PasswordChangedAt,
			&u.CreatedAt,
			&u.UpdatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("ListUsers: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("ListUsers: %w", err)
	}
	return users, total, nil
}

// UpdateUserProfile 更新姓名與 email；email 撞到他人時回傳 ErrDuplicateEmail
func UpdateUserProfile(ctx context.Context, db database.DB, userID int, name, email string) error {
	tag, err := db.Exec(ctx,
		`UPDATE users SET name = $1, email = $2, updated_at = now()
		 WHERE id = $3`,
		name,
		strings.ToLower(email),
		userID,
	)
	if err != nil {
		if isDuplicate(err) {
			return fmt.Errorf("UpdateUserProfile: %w", ErrDuplicateEmail)
		}
		return fmt.Errorf("UpdateUserProfile: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("UpdateUserProfile: %w", ErrNotFound)
	}
	return nil
}

// UpdateUserPassword 更新哈希並蓋上 password_changed_at，
// 使既有的存取令牌自此失效（中介層以時間戳比對）。
func UpdateUserPassword(ctx context.Context, db database.DB, userID int, passwordHash string) error {
	tag, err := db.Exec(ctx,
		`UPDATE users
		 SET password_hash = $1, password_changed_at = now(), updated_at = now()
		 WHERE id = $2`,
		passwordHash,
		userID,
	)
	if err != nil {
		return fmt.Errorf("UpdateUserPassword: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("UpdateUserPassword: %w", ErrNotFound)
	}
	return nil
}

func UpdateUserRole(ctx context.Context, db database.DB, userID int, role string) error {
	tag, err := db.Exec(ctx,
		`UPDATE users SET role = $1, updated_at = now() WHERE id = $2`,
		role,
		userID,
	)
	if err != nil {
		return fmt.Errorf("UpdateUserRole: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("UpdateUserRole: %w", ErrNotFound)
	}
	return nil
}

func SetUserActive(ctx context.Context, db database.DB, userID int, active bool) error {
	tag, err := db.Exec(ctx,
		`UPDATE users SET is_active = $1, updated_at = now() WHERE id = $2`,
		active,
		userID,
	)
	if err != nil {
		return fmt.Errorf("SetUserActive: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("SetUserActive: %w", ErrNotFound)
	}
	return nil
}

// TouchLastLogin 記錄成功登入（或註冊）時間
func TouchLastLogin(ctx context.Context, db database.DB, userID int) error {
	_, err := db.Exec(ctx,
		`UPDATE users SET last_login = now() WHERE id = $1`,
		userID,
	)
	if err != nil {
		return fmt.Errorf("TouchLastLogin: %w", err)
	}
	return nil
}

func DeleteUser(ctx context.Context, db database.DB, userID int) error {
	tag, err := db.Exec(ctx,
		`DELETE FROM users WHERE id = $1`,
		userID,
	)
	if err != nil {
		return fmt.Errorf("DeleteUser: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("DeleteUser: %w", ErrNotFound)
	}
	return nil
}
