package service

import (
	"strings"
	"sync"
	"time"

	"github.com/pifa-next/internal/config"

	"github.com/mojocn/base64Captcha"
)

// CaptchaImageChallenge 图片验证码挑战
type CaptchaImageChallenge struct {
	CaptchaID   string `json:"captcha_id"`
	ImageBase64 string `json:"image_base64"`
}

// CaptchaService 图片验证码服务（登录保护用）
type CaptchaService struct {
	cfg config.CaptchaConfig

	mu    sync.Mutex
	store base64Captcha.Store
}

// NewCaptchaService 创建验证码服务
func NewCaptchaService(cfg config.CaptchaConfig) *CaptchaService {
	return &CaptchaService{cfg: cfg}
}

// Enabled 验证码是否启用
func (s *CaptchaService) Enabled() bool {
	return s != nil && s.cfg.Enabled
}

// GenerateImageChallenge 生成图片验证码
func (s *CaptchaService) GenerateImageChallenge() (*CaptchaImageChallenge, error) {
	if !s.Enabled() {
		return nil, ErrCaptchaRequired
	}
	driver := base64Captcha.NewDriverString(
		resolveCaptchaInt(s.cfg.Height, 80),
		resolveCaptchaInt(s.cfg.Width, 240),
		resolveCaptchaInt(s.cfg.NoiseCount, 2),
		resolveCaptchaInt(s.cfg.ShowLine, 2),
		resolveCaptchaInt(s.cfg.Length, 5),
		"0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ",
		nil,
		base64Captcha.DefaultEmbeddedFonts,
		nil,
	)
	captcha := base64Captcha.NewCaptcha(driver, s.ensureStore())
	id, b64s, _, err := captcha.Generate()
	if err != nil {
		return nil, err
	}
	return &CaptchaImageChallenge{
		CaptchaID:   strings.TrimSpace(id),
		ImageBase64: strings.TrimSpace(b64s),
	}, nil
}

// Verify 校验验证码；未启用时直接放行
func (s *CaptchaService) Verify(captchaID, captchaCode string) error {
	if !s.Enabled() {
		return nil
	}
	id := strings.TrimSpace(captchaID)
	code := strings.TrimSpace(captchaCode)
	if id == "" || code == "" {
		return ErrCaptchaRequired
	}
	if !s.ensureStore().Verify(id, code, true) {
		return ErrCaptchaInvalid
	}
	return nil
}

func (s *CaptchaService) ensureStore() base64Captcha.Store {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.store == nil {
		s.store = base64Captcha.NewMemoryStore(
			resolveCaptchaInt(s.cfg.MaxStore, 10240),
			time.Duration(resolveCaptchaInt(s.cfg.ExpireSeconds, 300))*time.Second,
		)
	}
	return s.store
}

func resolveCaptchaInt(value, fallback int) int {
	if value <= 0 {
		return fallback
	}
	return value
}
