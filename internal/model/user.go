// File: internal/model/user.go
package model

import "time"

// 角色常數，資料庫端亦以 CHECK 約束限定
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// ValidRole 回報 role 是否為合法值
func ValidRole(role string) bool {
	return role == RoleUser || role == RoleAdmin
}

// User 使用者帳號；PasswordHash 永不序列化
type User struct {
	ID                int        `db:"id" json:"id"`
	Name              string     `db:"name" json:"name"`
	Email             string     `db:"email" json:"email"`
	PasswordHash      string     `db:"password_hash" json:"-"`
	Role              string     `db:"role" json:"role"`
	IsActive          bool       `db:"is_active" json:"is_active"`
	LastLogin         *time.Time `db:"last_login" json:"last_login,omitempty"`
	PasswordChangedAt *time.Time `db:"password_changed_at" json:"-"`
	CreatedAt         time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt         time.Time  `db:"updated_at" json:"updated_at"`
}

// ChangedPasswordAfter 回報密碼是否在 token 簽發（epoch 秒）之後變更過。
// 同一秒視為未變更（嚴格大於）。
func (u *User) ChangedPasswordAfter(issuedAt int64) bool {
	if u.PasswordChangedAt == nil {
		return false
	}
	return u.PasswordChangedAt.Unix() > issuedAt
}
