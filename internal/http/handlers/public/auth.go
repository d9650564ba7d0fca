package public

import (
	"errors"
	"time"

	"github.com/pifa-next/internal/http/response"
	"github.com/pifa-next/internal/models"
	"github.com/pifa-next/internal/service"

	"github.com/gin-gonic/gin"
)

// LoginRequest 登录请求
type LoginRequest struct {
	Username    string `json:"username" binding:"required"`
	Password    string `json:"password" binding:"required"`
	CaptchaID   string `json:"captcha_id"`
	CaptchaCode string `json:"captcha_code"`
}

// RegisterRequest 会员注册请求
type RegisterRequest struct {
	Username    string `json:"username" binding:"required"`
	Password    string `json:"password" binding:"required"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	DisplayName string `json:"display_name"`
}

func userView(user *models.User) gin.H {
	return gin.H{
		"id":           user.ID,
		"username":     user.Username,
		"display_name": user.DisplayName,
		"email":        user.Email,
		"phone":        user.Phone,
		"role":         user.Role,
	}
}

// Login 登录并签发令牌
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	user, token, expiresAt, err := h.AuthService.Login(service.LoginInput{
		Username:    req.Username,
		Password:    req.Password,
		CaptchaID:   req.CaptchaID,
		CaptchaCode: req.CaptchaCode,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCaptchaRequired):
			respondError(c, response.CodeBadRequest, "error.captcha_required", nil)
		case errors.Is(err, service.ErrCaptchaInvalid):
			respondError(c, response.CodeBadRequest, "error.captcha_invalid", nil)
		case errors.Is(err, service.ErrLoginFailed):
			respondError(c, response.CodeUnauthorized, "error.login_failed", nil)
		case errors.Is(err, service.ErrAccountDisabled):
			respondError(c, response.CodeForbidden, "error.account_disabled", nil)
		default:
			respondError(c, response.CodeInternal, "error.server_error", err)
		}
		return
	}

	response.Success(c, gin.H{
		"user":       userView(user),
		"token":      token,
		"expires_at": expiresAt.Format(time.RFC3339),
	})
}

// Register 会员注册
func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	user, err := h.AuthService.RegisterMember(service.RegisterMemberInput{
		Username:    req.Username,
		Password:    req.Password,
		Email:       req.Email,
		Phone:       req.Phone,
		DisplayName: req.DisplayName,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrLoginFailed):
			respondError(c, response.CodeBadRequest, "error.register_failed", nil)
		default:
			respondError(c, response.CodeInternal, "error.server_error", err)
		}
		return
	}

	token, expiresAt, err := h.AuthService.GenerateJWT(user)
	if err != nil {
		respondError(c, response.CodeInternal, "error.server_error", err)
		return
	}

	response.Success(c, gin.H{
		"user":       userView(user),
		"token":      token,
		"expires_at": expiresAt.Format(time.RFC3339),
	})
}

// Profile 当前登录用户信息
func (h *Handler) Profile(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	user, err := h.AuthService.GetUserByID(userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			respondError(c, response.CodeNotFound, "error.user_not_found", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.server_error", err)
		return
	}
	response.Success(c, userView(user))
}

// GetImageCaptcha 获取图片验证码挑战
func (h *Handler) GetImageCaptcha(c *gin.Context) {
	if h.CaptchaService == nil || !h.CaptchaService.Enabled() {
		respondError(c, response.CodeBadRequest, "error.captcha_unavailable", nil)
		return
	}

	challenge, err := h.CaptchaService.GenerateImageChallenge()
	if err != nil {
		respondError(c, response.CodeInternal, "error.captcha_unavailable", err)
		return
	}

	response.Success(c, gin.H{
		"captcha_id":   challenge.CaptchaID,
		"image_base64": challenge.ImageBase64,
	})
}
