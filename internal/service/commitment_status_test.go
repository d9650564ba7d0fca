package service

import (
	"testing"

	"github.com/pifa-next/internal/constants"
)

func TestCanTransitionCommitment(t *testing.T) {
	cases := []struct {
		from    string
		to      string
		allowed bool
	}{
		{constants.CommitmentStatusPending, constants.CommitmentStatusApproved, true},
		{constants.CommitmentStatusPending, constants.CommitmentStatusDeclined, true},
		{constants.CommitmentStatusPending, constants.CommitmentStatusCancelled, true},
		{constants.CommitmentStatusPending, constants.CommitmentStatusPending, false},
		{constants.CommitmentStatusApproved, constants.CommitmentStatusDeclined, false},
		{constants.CommitmentStatusApproved, constants.CommitmentStatusCancelled, false},
		{constants.CommitmentStatusApproved, constants.CommitmentStatusPending, false},
		{constants.CommitmentStatusDeclined, constants.CommitmentStatusApproved, false},
		{constants.CommitmentStatusDeclined, constants.CommitmentStatusPending, false},
		{constants.CommitmentStatusCancelled, constants.CommitmentStatusApproved, false},
		{constants.CommitmentStatusCancelled, constants.CommitmentStatusPending, false},
	}
	for _, tc := range cases {
		if got := canTransitionCommitment(tc.from, tc.to); got != tc.allowed {
			t.Fatalf("transition %s -> %s: expected %v, got %v", tc.from, tc.to, tc.allowed, got)
		}
	}
}

func TestIsValidCommitmentStatus(t *testing.T) {
	for _, status := range []string{
		constants.CommitmentStatusPending,
		constants.CommitmentStatusApproved,
		constants.CommitmentStatusDeclined,
		constants.CommitmentStatusCancelled,
	} {
		if !isValidCommitmentStatus(status) {
			t.Fatalf("expected %s to be valid", status)
		}
	}
	for _, status := range []string{"", "paid", "PENDING", "unknown"} {
		if isValidCommitmentStatus(status) {
			t.Fatalf("expected %q to be invalid", status)
		}
	}
}

func TestIsTerminalCommitmentStatus(t *testing.T) {
	if isTerminalCommitmentStatus(constants.CommitmentStatusPending) {
		t.Fatalf("pending must not be terminal")
	}
	for _, status := range []string{
		constants.CommitmentStatusApproved,
		constants.CommitmentStatusDeclined,
		constants.CommitmentStatusCancelled,
	} {
		if !isTerminalCommitmentStatus(status) {
			t.Fatalf("expected %s to be terminal", status)
		}
	}
}
