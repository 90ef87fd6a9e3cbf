package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWithdrawalStatusCanTransition(t *testing.T) {
	cases := []struct {
		from, to WithdrawalStatus
		ok       bool
	}{
		{WithdrawalPending, WithdrawalAccepted, true},
		{WithdrawalPending, WithdrawalRejected, true},
		{WithdrawalPending, WithdrawalCompleted, false},
		{WithdrawalAccepted, WithdrawalCompleted, true},
		{WithdrawalAccepted, WithdrawalRejected, false},
		{WithdrawalAccepted, WithdrawalPending, false},
		{WithdrawalRejected, WithdrawalCompleted, false},
		{WithdrawalRejected, WithdrawalAccepted, false},
		{WithdrawalCompleted, WithdrawalCompleted, false},
		{WithdrawalCompleted, WithdrawalPending, false},
	}
	for _, c := range cases {
		assert.Equal(t, c.ok, c.from.CanTransition(c.to), "%s -> %s", c.from, c.to)
	}
}
