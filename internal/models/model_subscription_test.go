package models

import (
	"testing"
	"time"

	"github.com/atomictrack/atomictrack/pkg/types"

	"github.com/stretchr/testify/assert"
)

func TestSubscriptionValid(t *testing.T) {
	future := time.Now().Add(24 * time.Hour)
	past := time.Now().Add(-24 * time.Hour)

	tests := []struct {
		name string
		sub  *Subscription
		want bool
	}{
		{name: "nil", sub: nil, want: false},
		{name: "active with future expiry", sub: &Subscription{Status: types.SubscriptionStatusActive, ExpireAt: &future}, want: true},
		{name: "active but expired", sub: &Subscription{Status: types.SubscriptionStatusActive, ExpireAt: &past}, want: false},
		{name: "cancelled with future expiry", sub: &Subscription{Status: types.SubscriptionStatusCancelled, ExpireAt: &future}, want: false},
		{name: "expired status", sub: &Subscription{Status: types.SubscriptionStatusExpired, ExpireAt: &future}, want: false},
		{name: "active without expiry", sub: &Subscription{Status: types.SubscriptionStatusActive}, want: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.sub.Valid())
		})
	}
}

func TestCompletionQualifies(t *testing.T) {
	assert.False(t, (*Completion)(nil).Qualifies())
	assert.False(t, (&Completion{Percentage: 50}).Qualifies())
	assert.True(t, (&Completion{Percentage: 100}).Qualifies())
}

func TestProfileApplyXPDelta_ClampsAndRecomputesLevel(t *testing.T) {
	p := &Profile{XP: 5, Level: 1}
	p.ApplyXPDelta(-25)
	assert.Equal(t, 0, p.XP)
	assert.Equal(t, 1, p.Level)

	p.ApplyXPDelta(120)
	assert.Equal(t, 120, p.XP)
	assert.Equal(t, 2, p.Level)
}
