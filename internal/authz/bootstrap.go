package authz

import (
	"fmt"

	"github.com/pifa-next/internal/constants"
)

type seedPolicy struct {
	role   string
	object string
	action string
}

// 内置角色的基础策略
// admin 拥有全部管理接口，distributor 仅限团购与认购审批
var defaultPolicies = []seedPolicy{
	{constants.UserRoleAdmin, "/admin/*", "*"},
	{constants.UserRoleDistributor, "/admin/deals", "*"},
	{constants.UserRoleDistributor, "/admin/deals/:id", "*"},
	{constants.UserRoleDistributor, "/admin/deals/:id/status", "*"},
	{constants.UserRoleDistributor, "/admin/deals/:id/notifications", "GET"},
	{constants.UserRoleDistributor, "/admin/commitments", "GET"},
	{constants.UserRoleDistributor, "/admin/commitments/:id", "GET"},
	{constants.UserRoleDistributor, "/admin/commitments/:id/status", "PUT"},
	{constants.UserRoleDistributor, "/admin/commitments/:id/payment-status", "PUT"},
	{constants.UserRoleDistributor, "/admin/message-logs", "GET"},
}

// BootstrapPolicies 写入内置角色策略（幂等）
func (s *Service) BootstrapPolicies() error {
	for _, p := range defaultPolicies {
		if err := s.GrantRolePolicy(p.role, p.object, p.action); err != nil {
			return fmt.Errorf("seed policy %s %s %s: %w", p.role, p.object, p.action, err)
		}
	}
	return nil
}

// SyncUserRole 将用户表中的角色同步到授权引擎（幂等）
func (s *Service) SyncUserRole(userID uint, role string) error {
	switch role {
	case constants.UserRoleAdmin, constants.UserRoleDistributor:
		return s.AssignRole(userID, role)
	default:
		// 普通会员不参与后台授权
		return nil
	}
}
