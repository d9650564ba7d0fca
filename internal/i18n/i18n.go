package i18n

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
)

// 支持的语言
const (
	LocaleEN   = "en"
	LocaleZHCN = "zh-CN"
)

const defaultLocale = LocaleEN

// ResolveLocale 从请求解析语言（?lang= 优先，其次 Accept-Language）
func ResolveLocale(c *gin.Context) string {
	if c == nil {
		return defaultLocale
	}
	if lang := strings.TrimSpace(c.Query("lang")); lang != "" {
		return normalize(lang)
	}
	if header := c.GetHeader("Accept-Language"); header != "" {
		first := strings.TrimSpace(strings.Split(header, ",")[0])
		if idx := strings.Index(first, ";"); idx >= 0 {
			first = first[:idx]
		}
		if first != "" {
			return normalize(first)
		}
	}
	return defaultLocale
}

func normalize(lang string) string {
	lower := strings.ToLower(lang)
	if strings.HasPrefix(lower, "zh") {
		return LocaleZHCN
	}
	return LocaleEN
}

// T 翻译 key，缺失时回退英文，再缺失时返回 key 本身
func T(locale, key string) string {
	if msgs, ok := catalog[locale]; ok {
		if msg, ok := msgs[key]; ok {
			return msg
		}
	}
	if msg, ok := catalog[defaultLocale][key]; ok {
		return msg
	}
	return key
}

// Sprintf 带参数的翻译
func Sprintf(locale, key string, args ...interface{}) string {
	format := T(locale, key)
	if len(args) == 0 {
		return format
	}
	return fmt.Sprintf(format, args...)
}

var catalog = map[string]map[string]string{
	LocaleEN: {
		"error.bad_request":               "invalid request",
		"error.unauthorized":              "unauthorized",
		"error.forbidden":                 "forbidden",
		"error.not_found":                 "not found",
		"error.server_error":              "internal server error",
		"error.jwt_secret_missing":        "jwt secret not configured",
		"error.auth_header_missing":       "authorization header missing",
		"error.auth_header_invalid":       "authorization header invalid",
		"error.token_invalid":             "invalid token",
		"error.login_failed":              "invalid username or password",
		"error.login_rate_limited":        "too many login attempts, try again later",
		"error.account_disabled":          "account is disabled",
		"error.captcha_required":          "captcha is required",
		"error.captcha_invalid":           "captcha verification failed",
		"error.user_not_found":            "user not found",
		"error.deal_not_found":            "deal not found",
		"error.deal_not_active":           "deal is not active",
		"error.deal_invalid":              "invalid deal definition",
		"error.tier_invalid":              "invalid discount tier definition",
		"error.commitment_not_found":      "commitment not found",
		"error.commitment_not_owner":      "commitment does not belong to this member",
		"error.commitment_status_invalid": "commitment status does not allow this operation",
		"error.commitment_conflict":       "commitment was changed concurrently, please retry",
		"error.commitment_fetch_failed":   "failed to load commitment",
		"error.commitment_update_failed":  "failed to update commitment",
		"error.below_minimum_quantity":    "total quantity is below the deal minimum",
		"error.unknown_size":              "unknown size for this deal",
		"error.invalid_size_line":         "invalid size quantity",
		"error.price_mismatch":            "modified price is inconsistent with modified quantity",
		"error.notification_not_found":    "notification not found",
		"error.register_failed":           "registration failed, check username and password",
		"error.captcha_unavailable":       "captcha service unavailable",
		"error.user_id_invalid":           "invalid user id",
		"error.user_id_type_invalid":      "user id type invalid",
		"error.rate_limit_unavailable":    "rate limiter unavailable, try again later",
		"error.rate_limited":              "too many requests, try again in %d seconds",
	},
	LocaleZHCN: {
		"error.bad_request":               "请求参数无效",
		"error.unauthorized":              "未授权",
		"error.forbidden":                 "无权访问",
		"error.not_found":                 "资源不存在",
		"error.server_error":              "服务器内部错误",
		"error.jwt_secret_missing":        "JWT 密钥未配置",
		"error.auth_header_missing":       "缺少认证头",
		"error.auth_header_invalid":       "认证头格式无效",
		"error.token_invalid":             "令牌无效",
		"error.login_failed":              "用户名或密码错误",
		"error.login_rate_limited":        "登录尝试过于频繁，请稍后再试",
		"error.account_disabled":          "账号已被禁用",
		"error.captcha_required":          "需要验证码",
		"error.captcha_invalid":           "验证码校验失败",
		"error.user_not_found":            "用户不存在",
		"error.deal_not_found":            "批发活动不存在",
		"error.deal_not_active":           "批发活动未开放",
		"error.deal_invalid":              "批发活动定义无效",
		"error.tier_invalid":              "折扣阶梯定义无效",
		"error.commitment_not_found":      "认购单不存在",
		"error.commitment_not_owner":      "认购单不属于当前会员",
		"error.commitment_status_invalid": "认购单当前状态不允许此操作",
		"error.commitment_conflict":       "认购单已被并发修改，请重试",
		"error.commitment_fetch_failed":   "认购单加载失败",
		"error.commitment_update_failed":  "认购单更新失败",
		"error.below_minimum_quantity":    "总数量低于活动最低起订量",
		"error.unknown_size":              "该活动不包含此规格",
		"error.invalid_size_line":         "规格数量无效",
		"error.price_mismatch":            "修改后的价格与修改后的数量不一致",
		"error.notification_not_found":    "通知不存在",
		"error.register_failed":           "注册失败，请检查用户名和密码",
		"error.captcha_unavailable":       "验证码服务不可用",
		"error.user_id_invalid":           "用户 ID 无效",
		"error.user_id_type_invalid":      "用户 ID 类型无效",
		"error.rate_limit_unavailable":    "限流服务不可用，请稍后再试",
		"error.rate_limited":              "请求过于频繁，请 %d 秒后再试",
	},
}
