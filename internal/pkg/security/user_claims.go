package security

import (
	"DigitalOrganisms/internal/api/config"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	defaultJWTSecret         = "DigitalOrganisms"
	defaultJWTExpirationTime = time.Hour * 24
	jwtIssuer                = "DigitalOrganisms"
)

// MemberClaims Token 中携带的请求方身份
type MemberClaims struct {
	UserID uint64   `json:"user_id"`
	Roles  []string `json:"roles"`
	jwt.RegisteredClaims
}

func jwtSecret() []byte {
	if config.Cfg != nil && config.Cfg.JWT.Secret != "" {
		return []byte(config.Cfg.JWT.Secret)
	}
	return []byte(defaultJWTSecret)
}

// TokenTTL Token 有效期，也是注销黑名单的保留时间
func TokenTTL() time.Duration {
	if config.Cfg != nil && config.Cfg.JWT.ExpireHours > 0 {
		return time.Duration(config.Cfg.JWT.ExpireHours) * time.Hour
	}
	return defaultJWTExpirationTime
}
