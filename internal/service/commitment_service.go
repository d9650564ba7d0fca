package service

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/pifa-next/internal/constants"
	"github.com/pifa-next/internal/logger"
	"github.com/pifa-next/internal/models"
	"github.com/pifa-next/internal/queue"
	"github.com/pifa-next/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CommitmentService 认购单工作流服务
type CommitmentService struct {
	commitmentRepo      repository.CommitmentRepository
	dealRepo            repository.DealRepository
	userRepo            repository.UserRepository
	queueClient         *queue.Client
	notificationService *NotificationService
	smsService          *SMSService
	emailService        *EmailService
}

// NewCommitmentService 创建认购单服务
func NewCommitmentService(commitmentRepo repository.CommitmentRepository, dealRepo repository.DealRepository, userRepo repository.UserRepository, queueClient *queue.Client, notificationService *NotificationService, smsService *SMSService, emailService *EmailService) *CommitmentService {
	return &CommitmentService{
		commitmentRepo:      commitmentRepo,
		dealRepo:            dealRepo,
		userRepo:            userRepo,
		queueClient:         queueClient,
		notificationService: notificationService,
		smsService:          smsService,
		emailService:        emailService,
	}
}

// CreateCommitmentInput 创建认购单输入
type CreateCommitmentInput struct {
	DealID uint
	UserID uint
	// Lines 规格行；为空且 Quantity 大于 0 时按活动首个规格整单认购
	Lines    []SizeLine
	Quantity int
}

// ReviseResult 规格修订结果：全零数量视为取消，以显式标记返回
type ReviseResult struct {
	Commitment *models.Commitment `json:"commitment"`
	Cancelled  bool               `json:"cancelled"`
}

// UpdateCommitmentStatusInput 分销商处理认购单输入
type UpdateCommitmentStatusInput struct {
	CommitmentID        uint
	Status              string
	DistributorResponse string
	ModifiedQuantity    *int
	ModifiedTotalPrice  *models.Money
	ActorID             uint
}

// CreateCommitment 会员创建认购单
func (s *CommitmentService) CreateCommitment(input CreateCommitmentInput) (*models.Commitment, error) {
	user, err := s.userRepo.GetByID(input.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	deal, err := s.dealRepo.GetByID(input.DealID)
	if err != nil {
		return nil, err
	}
	if deal == nil {
		return nil, ErrDealNotFound
	}
	now := time.Now()
	if !deal.IsActive(now) {
		return nil, ErrDealNotActive
	}

	lines := input.Lines
	if len(lines) == 0 && input.Quantity > 0 {
		primary := deal.PrimarySize()
		if primary == nil {
			return nil, ErrDealInvalid
		}
		lines = []SizeLine{{Size: primary.Size, Quantity: input.Quantity}}
	}

	pricing, err := PriceCommitment(deal, lines)
	if err != nil {
		return nil, err
	}

	commitment := &models.Commitment{
		CommitmentNo:  generateCommitmentNo(),
		UserID:        user.ID,
		DealID:        deal.ID,
		Status:        constants.CommitmentStatusPending,
		TotalPrice:    pricing.FinalTotal,
		PaymentStatus: constants.PaymentStatusPending,
	}
	if pricing.AppliedTier != nil {
		tierID := pricing.AppliedTier.ID
		commitment.AppliedTierID = &tierID
	}
	sizes := make([]models.CommitmentSize, 0, len(pricing.Lines))
	for _, line := range pricing.Lines {
		sizes = append(sizes, models.CommitmentSize{
			Size:         line.Size,
			Quantity:     line.Quantity,
			PricePerUnit: line.PricePerUnit,
			TotalPrice:   line.TotalPrice,
		})
	}

	err = models.DB.Transaction(func(tx *gorm.DB) error {
		return s.commitmentRepo.WithTx(tx).Create(commitment, sizes)
	})
	if err != nil {
		return nil, err
	}

	s.notifyCommitmentCreated(commitment, deal, user)
	return s.commitmentRepo.GetByID(commitment.ID)
}

// ReviseCommitmentSizes 会员修订认购单规格
//
// 仅认购单所属会员可在 pending 状态下调用；过滤后无剩余行时执行取消，
// 且不重算价格（总价保留最后一次有效值）。
func (s *CommitmentService) ReviseCommitmentSizes(commitmentID, userID uint, lines []SizeLine) (*ReviseResult, error) {
	commitment, err := s.commitmentRepo.GetByID(commitmentID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCommitmentFetchFailed, err)
	}
	if commitment == nil {
		return nil, ErrCommitmentNotFound
	}
	if commitment.UserID != userID {
		return nil, ErrCommitmentNotOwner
	}
	if commitment.Status != constants.CommitmentStatusPending {
		return nil, ErrCommitmentStatusInvalid
	}

	filtered, err := filterZeroQuantityLines(lines)
	if err != nil {
		return nil, err
	}

	deal, err := s.dealRepo.GetByID(commitment.DealID)
	if err != nil {
		return nil, err
	}
	if deal == nil {
		return nil, ErrDealNotFound
	}

	// 全部规格数量归零：按取消处理，而非改价
	if len(filtered) == 0 {
		rows, err := s.commitmentRepo.UpdateStatusFrom(commitment.ID,
			constants.CommitmentStatusPending, constants.CommitmentStatusCancelled, nil)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrCommitmentUpdateFailed, err)
		}
		if rows == 0 {
			return nil, ErrCommitmentConflict
		}
		updated, err := s.commitmentRepo.GetByID(commitment.ID)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrCommitmentFetchFailed, err)
		}
		s.notifyCommitmentStatus(updated, deal, constants.CommitmentStatusPending, constants.CommitmentStatusCancelled, "")
		return &ReviseResult{Commitment: updated, Cancelled: true}, nil
	}

	pricing, err := PriceCommitment(deal, filtered)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{
		"total_price":     pricing.FinalTotal,
		"applied_tier_id": nil,
	}
	if pricing.AppliedTier != nil {
		updates["applied_tier_id"] = pricing.AppliedTier.ID
	}
	sizes := make([]models.CommitmentSize, 0, len(pricing.Lines))
	for _, line := range pricing.Lines {
		sizes = append(sizes, models.CommitmentSize{
			Size:         line.Size,
			Quantity:     line.Quantity,
			PricePerUnit: line.PricePerUnit,
			TotalPrice:   line.TotalPrice,
		})
	}

	err = models.DB.Transaction(func(tx *gorm.DB) error {
		txRepo := s.commitmentRepo.WithTx(tx)
		rows, err := txRepo.UpdateWithVersion(commitment.ID, commitment.LockVersion, updates)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrCommitmentUpdateFailed, err)
		}
		if rows == 0 {
			// 版本号不匹配：状态或规格已被并发修改
			return ErrCommitmentConflict
		}
		return txRepo.ReplaceSizes(commitment.ID, sizes)
	})
	if err != nil {
		return nil, err
	}

	updated, err := s.commitmentRepo.GetByID(commitment.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCommitmentFetchFailed, err)
	}
	s.notifyCommitmentRevised(updated, deal)
	return &ReviseResult{Commitment: updated, Cancelled: false}, nil
}

// UpdateCommitmentStatus 分销商处理认购单（通过/拒绝/取消，可改量改价）
func (s *CommitmentService) UpdateCommitmentStatus(input UpdateCommitmentStatusInput) (*models.Commitment, error) {
	if !isValidCommitmentStatus(input.Status) {
		return nil, ErrCommitmentStatusInvalid
	}

	var oldStatus string
	var dealForNotify *models.Deal
	now := time.Now()

	err := models.DB.Transaction(func(tx *gorm.DB) error {
		txCommitmentRepo := s.commitmentRepo.WithTx(tx)
		txDealRepo := s.dealRepo.WithTx(tx)

		commitment, err := txCommitmentRepo.GetByIDForUpdate(input.CommitmentID)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrCommitmentFetchFailed, err)
		}
		if commitment == nil {
			return ErrCommitmentNotFound
		}
		oldStatus = commitment.Status
		// 终态不允许再迁移，pending → pending 也不在状态机内
		if !canTransitionCommitment(commitment.Status, input.Status) {
			return ErrCommitmentStatusInvalid
		}

		deal, err := txDealRepo.GetByID(commitment.DealID)
		if err != nil {
			return err
		}
		if deal == nil {
			return ErrDealNotFound
		}
		dealForNotify = deal

		updates := map[string]interface{}{
			"distributor_response": strings.TrimSpace(input.DistributorResponse),
			"responded_at":         now,
		}

		finalQuantity := commitment.TotalQuantity()
		finalTotal := commitment.TotalPrice

		if input.ModifiedQuantity != nil {
			qty := *input.ModifiedQuantity
			if qty < deal.MinQtyForDiscount {
				return ErrBelowMinimumQuantity
			}
			primary := deal.PrimarySize()
			if primary == nil {
				return ErrDealInvalid
			}
			expected := primary.DiscountPrice.Decimal.Mul(decimal.NewFromInt(int64(qty)))
			if input.ModifiedTotalPrice != nil {
				if !withinPriceTolerance(expected, input.ModifiedTotalPrice.Decimal) {
					return ErrPriceMismatch
				}
				expected = input.ModifiedTotalPrice.Decimal
			}
			modifiedTotal := models.NewMoneyFromDecimal(expected)
			snapshot := models.ModifiedSizeLineList{{
				Size:         primary.Size,
				Quantity:     qty,
				PricePerUnit: primary.DiscountPrice,
				TotalPrice:   modifiedTotal,
			}}
			updates["modified_by_distributor"] = true
			updates["modified_quantity"] = qty
			updates["modified_total_price"] = modifiedTotal
			updates["modified_sizes"] = snapshot

			finalQuantity = qty
			finalTotal = modifiedTotal
		} else if input.ModifiedTotalPrice != nil {
			// 改价必须伴随改量，否则无对账基准
			return ErrPriceMismatch
		}

		rows, err := txCommitmentRepo.UpdateStatusFrom(commitment.ID, commitment.Status, input.Status, updates)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrCommitmentUpdateFailed, err)
		}
		if rows == 0 {
			return ErrCommitmentConflict
		}

		// 仅通过时更新活动台账：数量金额原子累加 + 追加通知历史，
		// 与状态翻转同事务，保证每次通过恰好入账一次
		if input.Status == constants.CommitmentStatusApproved {
			if err := txDealRepo.IncrementTotals(deal.ID, finalQuantity, finalTotal); err != nil {
				return err
			}
			if err := txDealRepo.AppendNotificationHistory(deal.ID, commitment.UserID, now); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	updated, err := s.commitmentRepo.GetByID(input.CommitmentID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCommitmentFetchFailed, err)
	}
	s.notifyCommitmentStatus(updated, dealForNotify, oldStatus, input.Status, input.DistributorResponse)
	return updated, nil
}

// MarkCommitmentPaymentStatus 更新支付状态（仅已通过的认购单）
func (s *CommitmentService) MarkCommitmentPaymentStatus(commitmentID uint, paymentStatus string) (*models.Commitment, error) {
	switch paymentStatus {
	case constants.PaymentStatusPending, constants.PaymentStatusPaid, constants.PaymentStatusFailed:
	default:
		return nil, ErrCommitmentStatusInvalid
	}

	commitment, err := s.commitmentRepo.GetByID(commitmentID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCommitmentFetchFailed, err)
	}
	if commitment == nil {
		return nil, ErrCommitmentNotFound
	}
	if commitment.Status != constants.CommitmentStatusApproved {
		return nil, ErrCommitmentStatusInvalid
	}

	if err := s.commitmentRepo.UpdatePaymentStatus(commitmentID, paymentStatus); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCommitmentUpdateFailed, err)
	}
	return s.commitmentRepo.GetByID(commitmentID)
}

// PreviewCommitment 计价预览（不落库）
func (s *CommitmentService) PreviewCommitment(dealID uint, lines []SizeLine) (*PricingResult, error) {
	deal, err := s.dealRepo.GetByID(dealID)
	if err != nil {
		return nil, err
	}
	if deal == nil {
		return nil, ErrDealNotFound
	}
	return PriceCommitment(deal, lines)
}

// GetCommitmentForUser 会员获取自己的认购单
func (s *CommitmentService) GetCommitmentForUser(id, userID uint) (*models.Commitment, error) {
	commitment, err := s.commitmentRepo.GetByIDAndUser(id, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCommitmentFetchFailed, err)
	}
	if commitment == nil {
		return nil, ErrCommitmentNotFound
	}
	return commitment, nil
}

// GetCommitment 管理端获取认购单
func (s *CommitmentService) GetCommitment(id uint) (*models.Commitment, error) {
	commitment, err := s.commitmentRepo.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCommitmentFetchFailed, err)
	}
	if commitment == nil {
		return nil, ErrCommitmentNotFound
	}
	return commitment, nil
}

// ListUserCommitments 会员端认购单列表
func (s *CommitmentService) ListUserCommitments(filter repository.CommitmentListFilter) ([]models.Commitment, int64, error) {
	return s.commitmentRepo.ListByUser(filter)
}

// ListCommitmentsAdmin 管理端认购单列表
func (s *CommitmentService) ListCommitmentsAdmin(filter repository.CommitmentListFilter) ([]models.Commitment, int64, error) {
	return s.commitmentRepo.ListAdmin(filter)
}

// 副作用统一走异步队列，队列关闭时本地直发；失败只记日志，绝不影响主流程

func (s *CommitmentService) dispatchNotification(payload queue.NotificationDispatchPayload) {
	if s.queueClient.Enabled() {
		if err := s.queueClient.EnqueueNotificationDispatch(payload); err != nil {
			logger.Warnw("notification_enqueue_failed", "recipient_id", payload.RecipientID, "sub_type", payload.SubType, "error", err)
		}
		return
	}
	if s.notificationService == nil {
		return
	}
	if err := s.notificationService.Dispatch(payload); err != nil {
		logger.Warnw("notification_dispatch_failed", "recipient_id", payload.RecipientID, "sub_type", payload.SubType, "error", err)
	}
}

func (s *CommitmentService) dispatchSMS(payload queue.SMSSendPayload) {
	if payload.Destination == "" {
		return
	}
	if s.queueClient.Enabled() {
		if err := s.queueClient.EnqueueSMSSend(payload); err != nil {
			logger.Warnw("sms_enqueue_failed", "destination", payload.Destination, "template", payload.TemplateKey, "error", err)
		}
		return
	}
	if s.smsService == nil {
		return
	}
	if err := s.smsService.Send(payload); err != nil {
		logger.Warnw("sms_send_failed", "destination", payload.Destination, "template", payload.TemplateKey, "error", err)
	}
}

func (s *CommitmentService) dispatchEmail(payload queue.EmailSendPayload) {
	if payload.Destination == "" {
		return
	}
	if s.queueClient.Enabled() {
		if err := s.queueClient.EnqueueEmailSend(payload); err != nil {
			logger.Warnw("email_enqueue_failed", "destination", payload.Destination, "template", payload.TemplateKey, "error", err)
		}
		return
	}
	if s.emailService == nil {
		return
	}
	if err := s.emailService.Send(payload); err != nil {
		logger.Warnw("email_send_failed", "destination", payload.Destination, "template", payload.TemplateKey, "error", err)
	}
}

func (s *CommitmentService) notifyCommitmentCreated(commitment *models.Commitment, deal *models.Deal, member *models.User) {
	if commitment == nil || deal == nil {
		return
	}
	relatedID := commitment.ID
	title := "认购单已提交"
	message := fmt.Sprintf("认购单 %s 已提交，活动「%s」，总价 %s", commitment.CommitmentNo, deal.Name, commitment.TotalPrice.String())

	s.dispatchNotification(queue.NotificationDispatchPayload{
		RecipientID: commitment.UserID,
		Type:        constants.NotificationTypeCommitment,
		SubType:     constants.NotificationSubTypeCreated,
		Title:       title,
		Message:     message,
		RelatedID:   &relatedID,
		Priority:    constants.NotificationPriorityNormal,
	})
	s.dispatchNotification(queue.NotificationDispatchPayload{
		RecipientID: deal.DistributorID,
		SenderID:    &commitment.UserID,
		Type:        constants.NotificationTypeCommitment,
		SubType:     constants.NotificationSubTypeCreated,
		Title:       "收到新的认购单",
		Message:     message,
		RelatedID:   &relatedID,
		Priority:    constants.NotificationPriorityHigh,
	})

	admins, err := s.userRepo.ListByRole(constants.UserRoleAdmin)
	if err != nil {
		logger.Warnw("notify_admins_list_failed", "error", err)
	}
	for _, admin := range admins {
		if admin.ID == deal.DistributorID {
			continue
		}
		s.dispatchNotification(queue.NotificationDispatchPayload{
			RecipientID: admin.ID,
			SenderID:    &commitment.UserID,
			Type:        constants.NotificationTypeCommitment,
			SubType:     constants.NotificationSubTypeCreated,
			Title:       "收到新的认购单",
			Message:     message,
			RelatedID:   &relatedID,
			Priority:    constants.NotificationPriorityNormal,
		})
	}

	templateData := map[string]interface{}{
		"commitment_no": commitment.CommitmentNo,
		"deal_name":     deal.Name,
		"total_price":   commitment.TotalPrice.String(),
	}
	distributor, err := s.userRepo.GetByID(deal.DistributorID)
	if err != nil {
		logger.Warnw("notify_distributor_load_failed", "distributor_id", deal.DistributorID, "error", err)
	}
	if distributor != nil {
		s.dispatchSMS(queue.SMSSendPayload{
			Destination:  distributor.Phone,
			TemplateKey:  constants.TemplateCommitmentCreated,
			TemplateData: templateData,
		})
		s.dispatchEmail(queue.EmailSendPayload{
			Destination:  distributor.Email,
			TemplateKey:  constants.TemplateCommitmentCreated,
			TemplateData: templateData,
		})
	}
	if member != nil {
		s.dispatchEmail(queue.EmailSendPayload{
			Destination:  member.Email,
			TemplateKey:  constants.TemplateCommitmentCreated,
			TemplateData: templateData,
		})
	}
}

func (s *CommitmentService) notifyCommitmentRevised(commitment *models.Commitment, deal *models.Deal) {
	if commitment == nil || deal == nil {
		return
	}
	relatedID := commitment.ID
	message := fmt.Sprintf("认购单 %s 规格已调整，最新总价 %s", commitment.CommitmentNo, commitment.TotalPrice.String())
	s.dispatchNotification(queue.NotificationDispatchPayload{
		RecipientID: deal.DistributorID,
		SenderID:    &commitment.UserID,
		Type:        constants.NotificationTypeCommitment,
		SubType:     constants.NotificationSubTypeRevised,
		Title:       "认购单已调整",
		Message:     message,
		RelatedID:   &relatedID,
		Priority:    constants.NotificationPriorityNormal,
	})
}

func (s *CommitmentService) notifyCommitmentStatus(commitment *models.Commitment, deal *models.Deal, oldStatus, newStatus, distributorResponse string) {
	if commitment == nil || deal == nil {
		return
	}
	relatedID := commitment.ID
	subType := statusSubType(newStatus)
	message := fmt.Sprintf("认购单 %s 状态由 %s 变更为 %s", commitment.CommitmentNo, oldStatus, newStatus)
	if commitment.ModifiedByDistributor && commitment.ModifiedQuantity != nil {
		message = fmt.Sprintf("%s，分销商调整数量为 %d，总价 %s", message, *commitment.ModifiedQuantity, commitment.FinalTotalPrice().String())
	}
	if strings.TrimSpace(distributorResponse) != "" {
		message = fmt.Sprintf("%s。回复：%s", message, strings.TrimSpace(distributorResponse))
	}

	s.dispatchNotification(queue.NotificationDispatchPayload{
		RecipientID: commitment.UserID,
		Type:        constants.NotificationTypeCommitment,
		SubType:     subType,
		Title:       "认购单状态更新",
		Message:     message,
		RelatedID:   &relatedID,
		Priority:    constants.NotificationPriorityHigh,
	})

	member, err := s.userRepo.GetByID(commitment.UserID)
	if err != nil {
		logger.Warnw("notify_member_load_failed", "user_id", commitment.UserID, "error", err)
	}
	if member != nil {
		templateData := map[string]interface{}{
			"commitment_no": commitment.CommitmentNo,
			"old_status":    oldStatus,
			"new_status":    newStatus,
			"total_price":   commitment.FinalTotalPrice().String(),
		}
		s.dispatchSMS(queue.SMSSendPayload{
			Destination:  member.Phone,
			TemplateKey:  constants.TemplateCommitmentStatusChanged,
			TemplateData: templateData,
		})
		s.dispatchEmail(queue.EmailSendPayload{
			Destination:  member.Email,
			TemplateKey:  constants.TemplateCommitmentStatusChanged,
			TemplateData: templateData,
		})
	}
}

func statusSubType(status string) string {
	switch status {
	case constants.CommitmentStatusApproved:
		return constants.NotificationSubTypeApproved
	case constants.CommitmentStatusDeclined:
		return constants.NotificationSubTypeDeclined
	case constants.CommitmentStatusCancelled:
		return constants.NotificationSubTypeCancelled
	default:
		return constants.NotificationSubTypeCreated
	}
}

func generateCommitmentNo() string {
	now := time.Now().Format("20060102150405")
	return fmt.Sprintf("PF%s%s", now, randNumeric(6))
}

func randNumeric(length int) string {
	var b strings.Builder
	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			b.WriteString("0")
			continue
		}
		b.WriteString(fmt.Sprintf("%d", n.Int64()))
	}
	return b.String()
}
