package admin

import "github.com/pifa-next/internal/provider"

// Handler 后台管理接口处理器入口
// 说明：该处理器用于管理员与分销商侧 API。
type Handler struct {
	*provider.Container
}

// New 创建后台处理器
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}
