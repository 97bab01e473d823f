// File: internal/service/token.go
package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"mamacare/internal/model"

	"github.com/golang-jwt/jwt/v5"
)

// Token 驗證失敗的分類；中介層據此決定給使用者的訊息，
// 其餘呼叫端一律以 ErrTokenInvalid 的語意處理。
var (
	ErrTokenExpired   = errors.New("token has expired")
	ErrTokenMalformed = errors.New("invalid token format")
	ErrTokenInvalid   = errors.New("invalid or expired token")
)

// TokenTypeRefresh refresh token 的 type 判別值；access token 不帶 type
const TokenTypeRefresh = "refresh"

// Claims 定義 JWT 負載內容
type Claims struct {
	UserID int    `json:"userId"`
	Role   string `json:"role,omitempty"`
	Type   string `json:"type,omitempty"`
	jwt.RegisteredClaims
}

// TokenConfig 簽發與驗證所需的固定參數，啟動時注入
type TokenConfig struct {
	Secret     string
	Issuer     string
	Audience   string
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

// Tokens 無狀態的簽發/驗證器
type Tokens struct {
	cfg TokenConfig
}

// NewTokens 以設定建立 Tokens
func NewTokens(cfg TokenConfig) *Tokens {
	return &Tokens{cfg: cfg}
}

// AccessTTL 存取令牌效期，handler 回應 expiresIn 時使用
func (t *Tokens) AccessTTL() time.Duration {
	return t.cfg.AccessTTL
}

var (
	timeNow         = time.Now
	parseWithClaims = jwt.ParseWithClaims
)

// IssueAccessToken 簽發帶有使用者 ID 與角色的存取令牌
func (t *Tokens) IssueAccessToken(user model.User) (string, error) {
	now := timeNow()
	claims := Claims{
		UserID: user.ID,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   fmt.Sprint(user.ID),
			Issuer:    t.cfg.Issuer,
			Audience:  jwt.ClaimStrings{t.cfg.Audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.cfg.AccessTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(t.cfg.Secret))
}

// IssueRefreshToken 簽發僅含使用者 ID 的更新令牌（type=refresh，不帶角色）
func (t *Tokens) IssueRefreshToken(userID int) (string, error) {
	now := timeNow()
	claims := Claims{
		UserID: userID,
		Type:   TokenTypeRefresh,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   fmt.Sprint(userID),
			Issuer:    t.cfg.Issuer,
			Audience:  jwt.ClaimStrings{t.cfg.Audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.cfg.RefreshTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(t.cfg.Secret))
}

// Verify 驗證簽章、效期、issuer 與 audience，
// 失敗時回傳 ErrTokenExpired、ErrTokenMalformed 或 ErrTokenInvalid 之一。
func (t *Tokens) Verify(tokenString string) (*Claims, error) {
	token, err := parseWithClaims(tokenString, &Claims{}, func(tok *jwt.Token) (interface{}, error) {
		if _, ok := tok.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", tok.Header["alg"])
		}
		return []byte(t.cfg.Secret), nil
	},
		jwt.WithIssuer(t.cfg.Issuer),
		jwt.WithAudience(t.cfg.Audience),
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenMalformed), errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, ErrTokenMalformed
		default:
			return nil, ErrTokenInvalid
		}
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}

// ExtractToken 從 Authorization 標頭取出 bearer token。
// 僅接受恰為兩段的 "Bearer <token>"，其餘情況回傳空字串（無 token，非錯誤）。
func ExtractToken(authHeader string) string {
	if authHeader == "" {
		return ""
	}
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}
	return parts[1]
}
