package public

import (
	"errors"

	"github.com/pifa-next/internal/http/response"
	"github.com/pifa-next/internal/service"

	"github.com/gin-gonic/gin"
)

// mappedHandlerError 定义业务错误到接口错误响应的映射关系。
type mappedHandlerError struct {
	target error
	code   int
	key    string
}

func respondWithMappedError(c *gin.Context, err error, rules []mappedHandlerError, fallbackCode int, fallbackKey string) {
	for _, rule := range rules {
		if errors.Is(err, rule.target) {
			respondError(c, rule.code, rule.key, nil)
			return
		}
	}
	respondError(c, fallbackCode, fallbackKey, err)
}

func concatMappedHandlerErrors(groups ...[]mappedHandlerError) []mappedHandlerError {
	total := 0
	for _, group := range groups {
		total += len(group)
	}
	result := make([]mappedHandlerError, 0, total)
	for _, group := range groups {
		result = append(result, group...)
	}
	return result
}

var commitmentPricingErrorRules = []mappedHandlerError{
	{target: service.ErrDealNotFound, code: response.CodeNotFound, key: "error.deal_not_found"},
	{target: service.ErrDealNotActive, code: response.CodeBadRequest, key: "error.deal_not_active"},
	{target: service.ErrUnknownSize, code: response.CodeBadRequest, key: "error.unknown_size"},
	{target: service.ErrInvalidSizeLine, code: response.CodeBadRequest, key: "error.invalid_size_line"},
	{target: service.ErrBelowMinimumQuantity, code: response.CodeBadRequest, key: "error.below_minimum_quantity"},
	{target: service.ErrTierInvalid, code: response.CodeBadRequest, key: "error.tier_invalid"},
}

var commitmentCreateExtraErrorRules = []mappedHandlerError{
	{target: service.ErrUserNotFound, code: response.CodeUnauthorized, key: "error.user_not_found"},
}

var commitmentReviseExtraErrorRules = []mappedHandlerError{
	{target: service.ErrCommitmentNotFound, code: response.CodeNotFound, key: "error.commitment_not_found"},
	{target: service.ErrCommitmentNotOwner, code: response.CodeForbidden, key: "error.commitment_not_owner"},
	{target: service.ErrCommitmentStatusInvalid, code: response.CodeBadRequest, key: "error.commitment_status_invalid"},
	{target: service.ErrCommitmentConflict, code: response.CodeConflict, key: "error.commitment_conflict"},
}

func respondCommitmentCreateError(c *gin.Context, err error) {
	respondWithMappedError(c, err, concatMappedHandlerErrors(commitmentPricingErrorRules, commitmentCreateExtraErrorRules), response.CodeInternal, "error.commitment_update_failed")
}

func respondCommitmentReviseError(c *gin.Context, err error) {
	respondWithMappedError(c, err, concatMappedHandlerErrors(commitmentPricingErrorRules, commitmentReviseExtraErrorRules), response.CodeInternal, "error.commitment_update_failed")
}

func respondCommitmentPreviewError(c *gin.Context, err error) {
	respondWithMappedError(c, err, commitmentPricingErrorRules, response.CodeInternal, "error.commitment_update_failed")
}
