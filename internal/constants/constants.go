package constants

// 认购单状态常量
const (
	CommitmentStatusPending   = "pending"
	CommitmentStatusApproved  = "approved"
	CommitmentStatusDeclined  = "declined"
	CommitmentStatusCancelled = "cancelled"
)

// 认购单支付状态常量
const (
	PaymentStatusPending = "pending"
	PaymentStatusPaid    = "paid"
	PaymentStatusFailed  = "failed"
)

// 批发活动状态常量
const (
	DealStatusActive   = "active"
	DealStatusInactive = "inactive"
)

// 用户角色常量
const (
	UserRoleMember      = "member"
	UserRoleDistributor = "distributor"
	UserRoleAdmin       = "admin"
)

// 通知类型常量
const (
	NotificationTypeCommitment = "commitment"
	NotificationTypeDeal       = "deal"
)

// 通知子类型常量
const (
	NotificationSubTypeCreated   = "created"
	NotificationSubTypeRevised   = "revised"
	NotificationSubTypeApproved  = "approved"
	NotificationSubTypeDeclined  = "declined"
	NotificationSubTypeCancelled = "cancelled"
	NotificationSubTypeModified  = "modified"
	NotificationSubTypeExpired   = "expired"
)

// 通知优先级常量
const (
	NotificationPriorityHigh   = "high"
	NotificationPriorityNormal = "normal"
)

// 消息渠道常量
const (
	MessageChannelSMS   = "sms"
	MessageChannelEmail = "email"
)

// 消息投递状态常量
const (
	MessageStatusSent   = "sent"
	MessageStatusFailed = "failed"
)

// 短信/邮件模板常量
const (
	TemplateCommitmentCreated       = "commitment_created"
	TemplateCommitmentStatusChanged = "commitment_status_changed"
	TemplateCommitmentRevised       = "commitment_revised"
)

// 异步任务类型常量
const (
	TaskNotificationDispatch = "notification:dispatch"
	TaskSMSSend              = "sms:send"
	TaskEmailSend            = "email:send"
)

// QueueDefault 默认队列名称
const QueueDefault = "default"
