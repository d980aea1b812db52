package webhook

import (
	"context"
	"errors"
	"testing"

	subscription "github.com/atomictrack/atomictrack/internal/app/service/subscription"
	models "github.com/atomictrack/atomictrack/internal/models"
	"github.com/atomictrack/atomictrack/pkg/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubSubs struct {
	user             *models.User
	resolveErr       error
	alreadyProcessed bool

	approvedCalls  int
	recurringCalls []types.SubscriptionChangeReason
	cancelCalls    []types.SubscriptionChangeReason
}

func (s *stubSubs) ResolveUserByEmail(_ context.Context, _ string) (*models.User, error) {
	if s.resolveErr != nil {
		return nil, s.resolveErr
	}
	return s.user, nil
}

func (s *stubSubs) ApplyApprovedPayment(_ context.Context, _ *models.User, _ *types.WebhookData) (bool, error) {
	s.approvedCalls++
	return s.alreadyProcessed, nil
}

func (s *stubSubs) ApplyRecurring(_ context.Context, _ *models.User, _ *types.WebhookData, reason types.SubscriptionChangeReason) error {
	s.recurringCalls = append(s.recurringCalls, reason)
	return nil
}

func (s *stubSubs) Cancel(_ context.Context, _ *models.User, reason types.SubscriptionChangeReason) error {
	s.cancelCalls = append(s.cancelCalls, reason)
	return nil
}

type stubLog struct {
	entries []*models.WebhookLog
}

func (s *stubLog) Save(_ context.Context, entry *models.WebhookLog) {
	s.entries = append(s.entries, entry)
}

func newTestHandler(subs *stubSubs) (*Handler, *stubLog) {
	logSvc := &stubLog{}
	return &Handler{
		subSvc: subs,
		logSvc: logSvc,
		Logger: zap.NewNop().Sugar(),
	}, logSvc
}

func envelope(event types.PaymentEvent) *types.WebhookEnvelope {
	return &types.WebhookEnvelope{
		Event: event,
		Data: types.WebhookData{
			ID:       "pay_001",
			Customer: types.WebhookCustomer{Email: "a@example.com", Name: "A"},
			Status:   "paid",
			Amount:   49.9,
		},
	}
}

func TestHandleUnknownUser(t *testing.T) {
	subs := &stubSubs{resolveErr: subscription.ErrUserNotFound}
	h, logSvc := newTestHandler(subs)

	res, err := h.Handle(context.Background(), "trace-1", envelope(types.PaymentEventApproved))
	require.ErrorIs(t, err, subscription.ErrUserNotFound)
	assert.Nil(t, res)
	assert.Zero(t, subs.approvedCalls)

	require.Len(t, logSvc.entries, 2)
	assert.Equal(t, models.WebhookLogStatusReceived, logSvc.entries[0].Status)
	assert.Equal(t, models.WebhookLogStatusHandleFailed, logSvc.entries[1].Status)
}

func TestHandleApprovedPayment(t *testing.T) {
	subs := &stubSubs{user: &models.User{ID: "u1", Email: "a@example.com"}}
	h, logSvc := newTestHandler(subs)

	res, err := h.Handle(context.Background(), "trace-1", envelope(types.PaymentEventApproved))
	require.NoError(t, err)
	assert.Equal(t, 1, subs.approvedCalls)
	assert.False(t, res.AlreadyProcessed)
	assert.Equal(t, "Founder access granted", res.Message)

	require.Len(t, logSvc.entries, 2)
	assert.Equal(t, models.WebhookLogStatusHandled, logSvc.entries[1].Status)
	require.NotNil(t, logSvc.entries[1].UserID)
	assert.Equal(t, "u1", *logSvc.entries[1].UserID)
}

func TestHandleApprovedPaymentReplay(t *testing.T) {
	subs := &stubSubs{user: &models.User{ID: "u1"}, alreadyProcessed: true}
	h, _ := newTestHandler(subs)

	res, err := h.Handle(context.Background(), "trace-1", envelope(types.PaymentEventApproved))
	require.NoError(t, err)
	assert.True(t, res.AlreadyProcessed)
	assert.Equal(t, "Payment already processed", res.Message)
}

func TestHandleDispatch(t *testing.T) {
	tests := []struct {
		event           types.PaymentEvent
		wantRecurring   []types.SubscriptionChangeReason
		wantCancel      []types.SubscriptionChangeReason
		wantMessagePart string
	}{
		{types.PaymentEventRejected, nil, nil, "rejection"},
		{types.PaymentEventSubscriptionCreated, []types.SubscriptionChangeReason{types.SubscriptionChangeReasonPayment}, nil, "activated"},
		{types.PaymentEventSubscriptionRenewed, []types.SubscriptionChangeReason{types.SubscriptionChangeReasonRenew}, nil, "renewed"},
		{types.PaymentEventSubscriptionCancelled, nil, []types.SubscriptionChangeReason{types.SubscriptionChangeReasonCancel}, "cancelled"},
		{types.PaymentEventSubscriptionExpired, nil, []types.SubscriptionChangeReason{types.SubscriptionChangeReasonExpire}, "expired"},
		{types.PaymentEvent("payment.refunded"), nil, nil, "acknowledged"},
	}
	for _, tt := range tests {
		t.Run(string(tt.event), func(t *testing.T) {
			subs := &stubSubs{user: &models.User{ID: "u1"}}
			h, _ := newTestHandler(subs)

			res, err := h.Handle(context.Background(), "trace-1", envelope(tt.event))
			require.NoError(t, err)
			assert.Equal(t, tt.wantRecurring, subs.recurringCalls)
			assert.Equal(t, tt.wantCancel, subs.cancelCalls)
			assert.Contains(t, res.Message, tt.wantMessagePart)
		})
	}
}

func TestHandleFailureLogged(t *testing.T) {
	subs := &stubSubs{resolveErr: errors.New("db down")}
	h, logSvc := newTestHandler(subs)

	_, err := h.Handle(context.Background(), "trace-1", envelope(types.PaymentEventApproved))
	require.Error(t, err)
	require.Len(t, logSvc.entries, 2)
	assert.Equal(t, models.WebhookLogStatusHandleFailed, logSvc.entries[1].Status)
}
