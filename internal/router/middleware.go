package router

import (
	"strconv"
	"strings"
	"time"

	"github.com/pifa-next/internal/authz"
	"github.com/pifa-next/internal/config"
	"github.com/pifa-next/internal/constants"
	"github.com/pifa-next/internal/http/response"
	"github.com/pifa-next/internal/i18n"
	"github.com/pifa-next/internal/logger"
	"github.com/pifa-next/internal/repository"
	"github.com/pifa-next/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const requestIDKey = "request_id"
const requestIDHeader = "X-Request-ID"
const userRoleContextKey = "user_role"

// CORSMiddleware 跨域中间件
func CORSMiddleware(cfg config.CORSConfig) gin.HandlerFunc {
	allowedOrigins := cfg.AllowedOrigins
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}
	allowedMethods := cfg.AllowedMethods
	if len(allowedMethods) == 0 {
		allowedMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	}
	allowedHeaders := cfg.AllowedHeaders
	if len(allowedHeaders) == 0 {
		allowedHeaders = []string{
			"Content-Type",
			"Content-Length",
			"Accept-Encoding",
			"Authorization",
			"Cache-Control",
			"X-Requested-With",
			"X-CSRF-Token",
		}
	}
	methodsHeader := strings.Join(allowedMethods, ", ")
	headersHeader := strings.Join(allowedHeaders, ", ")

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		allowedOrigin := resolveAllowedOrigin(origin, allowedOrigins, cfg.AllowCredentials)
		if allowedOrigin != "" {
			c.Writer.Header().Set("Access-Control-Allow-Origin", allowedOrigin)
			if allowedOrigin != "*" {
				c.Writer.Header().Add("Vary", "Origin")
			}
		}
		if cfg.AllowCredentials {
			c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		}
		c.Writer.Header().Set("Access-Control-Allow-Headers", headersHeader)
		c.Writer.Header().Set("Access-Control-Allow-Methods", methodsHeader)
		if cfg.MaxAge > 0 {
			c.Writer.Header().Set("Access-Control-Max-Age", strconv.Itoa(cfg.MaxAge))
		}

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}

func resolveAllowedOrigin(origin string, allowedOrigins []string, allowCredentials bool) string {
	if len(allowedOrigins) == 0 {
		return ""
	}
	for _, allowed := range allowedOrigins {
		if allowed == "*" {
			if allowCredentials && origin != "" {
				return origin
			}
			return "*"
		}
	}
	if origin == "" {
		return ""
	}
	for _, allowed := range allowedOrigins {
		if strings.EqualFold(allowed, origin) {
			return origin
		}
	}
	return ""
}

// RequestIDMiddleware 请求 ID 中间件
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := strings.TrimSpace(c.GetHeader(requestIDHeader))
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set(requestIDKey, requestID)
		c.Writer.Header().Set(requestIDHeader, requestID)
		c.Next()
	}
}

// LoggerMiddleware 结构化请求日志中间件
func LoggerMiddleware(log *zap.Logger) gin.HandlerFunc {
	if log == nil {
		log = zap.L()
	}
	sugar := log.Sugar()
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		entry := sugar.With(
			"request_id", getRequestID(c),
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency_ms", time.Since(start).Milliseconds(),
			"client_ip", c.ClientIP(),
		)
		if len(c.Errors) > 0 {
			entry.Errorw("request", "errors", c.Errors.String())
			return
		}
		entry.Infow("request")
	}
}

func getRequestID(c *gin.Context) string {
	value, ok := c.Get(requestIDKey)
	if !ok {
		return ""
	}
	if requestID, ok := value.(string); ok {
		return requestID
	}
	return ""
}

func abortUnauthorized(c *gin.Context, key string) {
	msg := i18n.T(i18n.ResolveLocale(c), key)
	response.Unauthorized(c, msg)
	c.Abort()
}

func parseBearerClaims(c *gin.Context, secretKey string) (*service.AuthJWTClaims, bool) {
	if secretKey == "" {
		abortUnauthorized(c, "error.jwt_secret_missing")
		return nil, false
	}
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		abortUnauthorized(c, "error.auth_header_missing")
		return nil, false
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if !(len(parts) == 2 && parts[0] == "Bearer") {
		abortUnauthorized(c, "error.auth_header_invalid")
		return nil, false
	}

	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	claims := &service.AuthJWTClaims{}
	token, err := parser.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(secretKey), nil
	})
	if err != nil || !token.Valid || claims.UserID == 0 {
		abortUnauthorized(c, "error.token_invalid")
		return nil, false
	}
	return claims, true
}

func loadActiveUser(c *gin.Context, userRepo repository.UserRepository, userID uint) bool {
	user, err := userRepo.GetByID(userID)
	if err != nil || user == nil {
		abortUnauthorized(c, "error.token_invalid")
		return false
	}
	if strings.ToLower(strings.TrimSpace(user.Status)) != "active" {
		abortUnauthorized(c, "error.account_disabled")
		return false
	}
	c.Set("user_id", user.ID)
	c.Set("username", user.Username)
	c.Set(userRoleContextKey, user.Role)
	return true
}

// MemberJWTAuthMiddleware 会员 JWT 鉴权中间件
func MemberJWTAuthMiddleware(secretKey string, userRepo repository.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		if userRepo == nil {
			abortUnauthorized(c, "error.token_invalid")
			return
		}
		claims, ok := parseBearerClaims(c, secretKey)
		if !ok {
			return
		}
		if claims.Role != constants.UserRoleMember {
			abortUnauthorized(c, "error.token_invalid")
			return
		}
		if !loadActiveUser(c, userRepo, claims.UserID) {
			return
		}
		c.Next()
	}
}

// StaffJWTAuthMiddleware 后台 JWT 鉴权中间件（管理员/分销商共用密钥）
func StaffJWTAuthMiddleware(secretKey string, userRepo repository.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		if userRepo == nil {
			abortUnauthorized(c, "error.token_invalid")
			return
		}
		claims, ok := parseBearerClaims(c, secretKey)
		if !ok {
			return
		}
		switch claims.Role {
		case constants.UserRoleAdmin, constants.UserRoleDistributor:
		default:
			abortUnauthorized(c, "error.token_invalid")
			return
		}
		if !loadActiveUser(c, userRepo, claims.UserID) {
			return
		}
		c.Next()
	}
}

// StaffRBACMiddleware 后台 RBAC 鉴权中间件
// admin 角色直通，其余角色走 Casbin 策略判定。
func StaffRBACMiddleware(authzService *authz.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		if authzService == nil {
			logger.Errorw("staff_rbac_service_unavailable")
			abortUnauthorized(c, "error.unauthorized")
			return
		}

		if roleRaw, ok := c.Get(userRoleContextKey); ok {
			if role, typeOK := roleRaw.(string); typeOK && role == constants.UserRoleAdmin {
				c.Next()
				return
			}
		}

		userIDRaw, exists := c.Get("user_id")
		if !exists {
			abortUnauthorized(c, "error.unauthorized")
			return
		}
		var userID uint
		switch value := userIDRaw.(type) {
		case uint:
			userID = value
		case int:
			if value > 0 {
				userID = uint(value)
			}
		case float64:
			if value > 0 {
				userID = uint(value)
			}
		}
		if userID == 0 {
			abortUnauthorized(c, "error.unauthorized")
			return
		}

		// 用户表是角色的唯一来源，按需把角色绑定同步进授权引擎
		if roleRaw, ok := c.Get(userRoleContextKey); ok {
			if role, typeOK := roleRaw.(string); typeOK {
				if err := authzService.SyncUserRole(userID, role); err != nil {
					logger.Warnw("staff_rbac_sync_role_failed", "user_id", userID, "role", role, "error", err)
				}
			}
		}

		resource := c.FullPath()
		if strings.TrimSpace(resource) == "" {
			resource = c.Request.URL.Path
		}

		allowed, err := authzService.EnforceUser(userID, resource, c.Request.Method)
		if err != nil {
			logger.Errorw("staff_rbac_enforce_failed",
				"user_id", userID,
				"method", c.Request.Method,
				"path", c.Request.URL.Path,
				"error", err,
			)
			abortUnauthorized(c, "error.unauthorized")
			return
		}
		if !allowed {
			logger.Warnw("staff_rbac_permission_denied",
				"user_id", userID,
				"method", c.Request.Method,
				"path", c.Request.URL.Path,
				"resource", authz.NormalizeObject(resource),
			)
			msg := i18n.T(i18n.ResolveLocale(c), "error.forbidden")
			response.Forbidden(c, msg)
			c.Abort()
			return
		}

		c.Next()
	}
}
