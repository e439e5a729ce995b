package jwt

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// AccessTokenClaims はアクセストークンのクレームを定義します
type AccessTokenClaims struct {
	jwt.RegisteredClaims
	SubjectID uuid.UUID `json:"uid"`
	Role      string    `json:"role"`
	Minor     bool      `json:"minor"`
	SessionID string    `json:"sid"`
	// AuthTime はログイン（認証）した時刻です。トークン更新では変わりません
	AuthTime int64 `json:"auth_time"`
}

// AuthenticatedAt は認証時刻を返します
// auth_time がない場合は発行時刻を使用します
func (c *AccessTokenClaims) AuthenticatedAt() time.Time {
	if c.AuthTime > 0 {
		return time.Unix(c.AuthTime, 0)
	}
	if c.IssuedAt != nil {
		return c.IssuedAt.Time
	}
	return time.Time{}
}

// ExpiresAtTime はトークンの有効期限を返します
func (c *AccessTokenClaims) ExpiresAtTime() time.Time {
	if c.ExpiresAt == nil {
		return time.Time{}
	}
	return c.ExpiresAt.Time
}
