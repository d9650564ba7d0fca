package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/pifa-next/internal/config"
	"github.com/pifa-next/internal/constants"
	"github.com/pifa-next/internal/models"
	"github.com/pifa-next/internal/repository"

	"github.com/glebarez/sqlite"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func setupAuthTest(t *testing.T) (*AuthService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:auth_svc_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("打开测试数据库失败: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}); err != nil {
		t.Fatalf("迁移测试表失败: %v", err)
	}
	models.DB = db

	cfg := &config.Config{
		JWT:     config.JWTConfig{SecretKey: "staff-test-secret", ExpireHours: 2},
		UserJWT: config.JWTConfig{SecretKey: "member-test-secret", ExpireHours: 24},
	}
	captchaService := NewCaptchaService(config.CaptchaConfig{Enabled: false})
	return NewAuthService(cfg, repository.NewUserRepository(db), captchaService), db
}

func createAuthUser(t *testing.T, db *gorm.DB, username, password, role, status string) *models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("生成密码哈希失败: %v", err)
	}
	user := &models.User{
		Username:     username,
		PasswordHash: string(hash),
		Role:         role,
		Status:       status,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("创建用户失败: %v", err)
	}
	return user
}

func TestLoginSuccess(t *testing.T) {
	svc, db := setupAuthTest(t)
	createAuthUser(t, db, "alice", "secret123", constants.UserRoleMember, "active")

	user, token, expiresAt, err := svc.Login(LoginInput{Username: "alice", Password: "secret123"})
	if err != nil {
		t.Fatalf("Login error: %v", err)
	}
	if user.Username != "alice" {
		t.Fatalf("expected alice, got %s", user.Username)
	}
	if token == "" {
		t.Fatalf("expected token to be issued")
	}
	if !expiresAt.After(time.Now()) {
		t.Fatalf("expected future expiry, got %v", expiresAt)
	}

	claims, err := svc.ParseMemberJWT(token)
	if err != nil {
		t.Fatalf("ParseMemberJWT error: %v", err)
	}
	if claims.UserID != user.ID || claims.Role != constants.UserRoleMember {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	svc, db := setupAuthTest(t)
	createAuthUser(t, db, "bob", "secret123", constants.UserRoleMember, "active")

	if _, _, _, err := svc.Login(LoginInput{Username: "bob", Password: "wrong"}); !errors.Is(err, ErrLoginFailed) {
		t.Fatalf("expected ErrLoginFailed, got %v", err)
	}
	if _, _, _, err := svc.Login(LoginInput{Username: "nobody", Password: "x"}); !errors.Is(err, ErrLoginFailed) {
		t.Fatalf("expected ErrLoginFailed for unknown user, got %v", err)
	}
}

func TestLoginDisabledAccount(t *testing.T) {
	svc, db := setupAuthTest(t)
	createAuthUser(t, db, "carol", "secret123", constants.UserRoleMember, "disabled")

	if _, _, _, err := svc.Login(LoginInput{Username: "carol", Password: "secret123"}); !errors.Is(err, ErrAccountDisabled) {
		t.Fatalf("expected ErrAccountDisabled, got %v", err)
	}
}

func TestStaffTokenUsesSeparateSecret(t *testing.T) {
	svc, db := setupAuthTest(t)
	staff := createAuthUser(t, db, "dist", "secret123", constants.UserRoleDistributor, "active")

	token, _, err := svc.GenerateJWT(staff)
	if err != nil {
		t.Fatalf("GenerateJWT error: %v", err)
	}
	claims, err := svc.ParseStaffJWT(token)
	if err != nil {
		t.Fatalf("ParseStaffJWT error: %v", err)
	}
	if claims.Role != constants.UserRoleDistributor {
		t.Fatalf("expected distributor role, got %s", claims.Role)
	}
	// 后台密钥签发的 token 不得通过会员密钥校验
	if _, err := svc.ParseMemberJWT(token); err == nil {
		t.Fatalf("expected staff token rejected by member parser")
	}
}

func TestRegisterMember(t *testing.T) {
	svc, _ := setupAuthTest(t)

	user, err := svc.RegisterMember(RegisterMemberInput{
		Username: "newbie",
		Password: "secret123",
		Email:    "newbie@example.com",
	})
	if err != nil {
		t.Fatalf("RegisterMember error: %v", err)
	}
	if user.Role != constants.UserRoleMember {
		t.Fatalf("expected member role, got %s", user.Role)
	}
	if user.DisplayName != "newbie" {
		t.Fatalf("expected display name defaulted to username, got %s", user.DisplayName)
	}
	if user.PasswordHash == "secret123" {
		t.Fatalf("expected password to be hashed")
	}

	// 重名与弱口令均拒绝
	if _, err := svc.RegisterMember(RegisterMemberInput{Username: "newbie", Password: "secret123"}); !errors.Is(err, ErrLoginFailed) {
		t.Fatalf("expected ErrLoginFailed for duplicate username, got %v", err)
	}
	if _, err := svc.RegisterMember(RegisterMemberInput{Username: "short", Password: "123"}); !errors.Is(err, ErrLoginFailed) {
		t.Fatalf("expected ErrLoginFailed for short password, got %v", err)
	}
}
