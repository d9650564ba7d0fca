package service

import "errors"

// 领域校验错误（在 handler 边界映射为响应码与多语言文案）
var (
	// 通用
	ErrUserNotFound = errors.New("用户不存在")

	// 批发活动
	ErrDealNotFound  = errors.New("批发活动不存在")
	ErrDealNotActive = errors.New("批发活动未开放")
	ErrDealInvalid   = errors.New("批发活动定义无效")
	ErrTierInvalid   = errors.New("折扣阶梯定义无效")

	// 认购单
	ErrCommitmentNotFound      = errors.New("认购单不存在")
	ErrCommitmentNotOwner      = errors.New("认购单不属于当前会员")
	ErrCommitmentStatusInvalid = errors.New("认购单当前状态不允许此操作")
	ErrCommitmentConflict      = errors.New("认购单已被并发修改")
	ErrCommitmentFetchFailed   = errors.New("认购单加载失败")
	ErrCommitmentUpdateFailed  = errors.New("认购单更新失败")

	// 站内通知
	ErrNotificationNotFound = errors.New("通知不存在")

	// 计价校验
	ErrBelowMinimumQuantity = errors.New("总数量低于最低起订量")
	ErrUnknownSize          = errors.New("该活动不包含此规格")
	ErrInvalidSizeLine      = errors.New("规格数量无效")
	ErrPriceMismatch        = errors.New("改价与改量不一致")

	// 认证
	ErrLoginFailed     = errors.New("用户名或密码错误")
	ErrAccountDisabled = errors.New("账号已被禁用")
	ErrCaptchaRequired = errors.New("需要验证码")
	ErrCaptchaInvalid  = errors.New("验证码校验失败")
)
