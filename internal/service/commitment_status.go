package service

import "github.com/pifa-next/internal/constants"

// 认购单状态机：pending 为唯一初始态，approved/declined/cancelled 均为终态，
// 终态之间不允许再迁移。
var allowedCommitmentTransitions = map[string]map[string]bool{
	constants.CommitmentStatusPending: {
		constants.CommitmentStatusApproved:  true,
		constants.CommitmentStatusDeclined:  true,
		constants.CommitmentStatusCancelled: true,
	},
}

// isValidCommitmentStatus 状态值是否合法
func isValidCommitmentStatus(status string) bool {
	switch status {
	case constants.CommitmentStatusPending,
		constants.CommitmentStatusApproved,
		constants.CommitmentStatusDeclined,
		constants.CommitmentStatusCancelled:
		return true
	default:
		return false
	}
}

// isTerminalCommitmentStatus 是否终态
func isTerminalCommitmentStatus(status string) bool {
	switch status {
	case constants.CommitmentStatusApproved,
		constants.CommitmentStatusDeclined,
		constants.CommitmentStatusCancelled:
		return true
	default:
		return false
	}
}

// canTransitionCommitment 判断状态迁移是否被状态机允许
func canTransitionCommitment(from, to string) bool {
	nexts, ok := allowedCommitmentTransitions[from]
	if !ok {
		return false
	}
	return nexts[to]
}
