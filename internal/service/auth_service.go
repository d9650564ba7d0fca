package service

import (
	"errors"
	"strings"
	"time"

	"github.com/pifa-next/internal/config"
	"github.com/pifa-next/internal/constants"
	"github.com/pifa-next/internal/logger"
	"github.com/pifa-next/internal/models"
	"github.com/pifa-next/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// AuthService 认证服务（会员与后台共用，按角色选用签名密钥）
type AuthService struct {
	cfg            *config.Config
	userRepo       repository.UserRepository
	captchaService *CaptchaService
}

// NewAuthService 创建认证服务
func NewAuthService(cfg *config.Config, userRepo repository.UserRepository, captchaService *CaptchaService) *AuthService {
	return &AuthService{
		cfg:            cfg,
		userRepo:       userRepo,
		captchaService: captchaService,
	}
}

// AuthJWTClaims JWT 声明
type AuthJWTClaims struct {
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// LoginInput 登录输入
type LoginInput struct {
	Username    string
	Password    string
	CaptchaID   string
	CaptchaCode string
}

// RegisterMemberInput 会员注册输入
type RegisterMemberInput struct {
	Username    string
	Password    string
	Email       string
	Phone       string
	DisplayName string
}

// Login 登录并签发 JWT
func (s *AuthService) Login(input LoginInput) (*models.User, string, time.Time, error) {
	if err := s.captchaService.Verify(input.CaptchaID, input.CaptchaCode); err != nil {
		return nil, "", time.Time{}, err
	}

	username := strings.TrimSpace(input.Username)
	user, err := s.userRepo.GetByUsername(username)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	if user == nil {
		return nil, "", time.Time{}, ErrLoginFailed
	}
	if strings.ToLower(user.Status) != "active" {
		return nil, "", time.Time{}, ErrAccountDisabled
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, "", time.Time{}, ErrLoginFailed
	}

	token, expiresAt, err := s.GenerateJWT(user)
	if err != nil {
		return nil, "", time.Time{}, err
	}

	if err := s.userRepo.UpdateLastLogin(user.ID, time.Now()); err != nil {
		logger.Warnw("update_last_login_failed", "user_id", user.ID, "error", err)
	}
	return user, token, expiresAt, nil
}

// RegisterMember 注册会员账号
func (s *AuthService) RegisterMember(input RegisterMemberInput) (*models.User, error) {
	username := strings.TrimSpace(input.Username)
	if username == "" || len(input.Password) < 6 {
		return nil, ErrLoginFailed
	}
	exist, err := s.userRepo.GetByUsername(username)
	if err != nil {
		return nil, err
	}
	if exist != nil {
		return nil, ErrLoginFailed
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	displayName := strings.TrimSpace(input.DisplayName)
	if displayName == "" {
		displayName = username
	}
	user := &models.User{
		Username:     username,
		Email:        strings.TrimSpace(input.Email),
		Phone:        strings.TrimSpace(input.Phone),
		PasswordHash: string(hash),
		DisplayName:  displayName,
		Role:         constants.UserRoleMember,
		Status:       "active",
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

// GenerateJWT 按角色签发 JWT（会员走 user_jwt，后台角色走 jwt）
func (s *AuthService) GenerateJWT(user *models.User) (string, time.Time, error) {
	jwtCfg := s.jwtConfigForRole(user.Role)
	expireHours := jwtCfg.ExpireHours
	if expireHours <= 0 {
		expireHours = 24
	}
	now := time.Now()
	expiresAt := now.Add(time.Duration(expireHours) * time.Hour)
	claims := AuthJWTClaims{
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(jwtCfg.SecretKey))
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expiresAt, nil
}

// ParseMemberJWT 解析会员 JWT
func (s *AuthService) ParseMemberJWT(tokenString string) (*AuthJWTClaims, error) {
	return parseJWT(tokenString, s.cfg.UserJWT.SecretKey)
}

// ParseStaffJWT 解析后台（分销商/管理员）JWT
func (s *AuthService) ParseStaffJWT(tokenString string) (*AuthJWTClaims, error) {
	return parseJWT(tokenString, s.cfg.JWT.SecretKey)
}

// GetUserByID 获取用户信息
func (s *AuthService) GetUserByID(id uint) (*models.User, error) {
	if id == 0 {
		return nil, ErrUserNotFound
	}
	user, err := s.userRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

func (s *AuthService) jwtConfigForRole(role string) config.JWTConfig {
	if role == constants.UserRoleMember {
		return s.cfg.UserJWT
	}
	return s.cfg.JWT
}

func parseJWT(tokenString, secret string) (*AuthJWTClaims, error) {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	claims := &AuthJWTClaims{}
	token, err := parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	if claims, ok := token.Claims.(*AuthJWTClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, errors.New("无效的 token")
}
