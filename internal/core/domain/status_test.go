package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestApplicationStatusTransitions(t *testing.T) {
	tests := []struct {
		from    ApplicationStatus
		to      ApplicationStatus
		allowed bool
	}{
		{StatusPending, StatusUnderReview, true},
		{StatusPending, StatusApproved, true},
		{StatusPending, StatusRejected, true},
		{StatusPending, StatusAdditionalInfo, true},
		{StatusPending, StatusPaid, false},
		{StatusUnderReview, StatusApproved, true},
		{StatusUnderReview, StatusRejected, true},
		{StatusUnderReview, StatusPending, false},
		{StatusAdditionalInfo, StatusUnderReview, true},
		{StatusAdditionalInfo, StatusApproved, false},
		{StatusApproved, StatusPaid, true},
		{StatusApproved, StatusRejected, false},
		{StatusRejected, StatusUnderReview, false},
		{StatusPaid, StatusApproved, false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to),
			"%s -> %s", tt.from, tt.to)
	}
}

func TestApplicationStatusTerminal(t *testing.T) {
	assert.True(t, StatusRejected.Terminal())
	assert.True(t, StatusPaid.Terminal())
	assert.False(t, StatusPending.Terminal())
	assert.False(t, StatusApproved.Terminal())
}

func TestApplicationStatusValid(t *testing.T) {
	assert.True(t, StatusUnderReview.Valid())
	assert.False(t, ApplicationStatus("archived").Valid())
	assert.False(t, ApplicationStatus("").Valid())
}
