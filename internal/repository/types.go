package repository

import "time"

// DealListFilter 查询批发活动列表的过滤条件
type DealListFilter struct {
	Page          int
	PageSize      int
	DistributorID uint
	Status        string
	Search        string
	OnlyActive    bool
}

// CommitmentListFilter 查询认购单列表的过滤条件
type CommitmentListFilter struct {
	Page          int
	PageSize      int
	UserID        uint
	DealID        uint
	Status        string
	PaymentStatus string
	CommitmentNo  string
	CreatedFrom   *time.Time
	CreatedTo     *time.Time
}

// NotificationListFilter 查询站内通知列表的过滤条件
type NotificationListFilter struct {
	Page        int
	PageSize    int
	RecipientID uint
	Type        string
	OnlyUnread  bool
}

// MessageLogListFilter 查询消息发送记录的过滤条件
type MessageLogListFilter struct {
	Page        int
	PageSize    int
	Channel     string
	Status      string
	Destination string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}

// UserListFilter 查询用户列表的过滤条件
type UserListFilter struct {
	Page     int
	PageSize int
	Role     string
	Keyword  string
	Status   string
}
