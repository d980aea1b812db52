package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	subscription "github.com/atomictrack/atomictrack/internal/app/service/subscription"
	"github.com/atomictrack/atomictrack/internal/app/service/webhook"
	"github.com/atomictrack/atomictrack/pkg/config"
	"github.com/atomictrack/atomictrack/pkg/types"
)

type stubDispatcher struct {
	res   *webhook.Result
	err   error
	calls int
}

func (s *stubDispatcher) Handle(_ *gin.Context, _ string, _ *types.WebhookEnvelope) (*webhook.Result, error) {
	s.calls++
	return s.res, s.err
}

func webhookTestRouter(d webhookDispatcher, secret string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{}
	cfg.Payment.WebhookSecret = secret
	r := gin.New()
	r.POST("/webhooks/payment", ApiPaymentWebhook(d, cfg, zap.NewNop().Sugar()))
	return r
}

func postWebhook(r *gin.Engine, signature string, env types.WebhookEnvelope) *httptest.ResponseRecorder {
	body, _ := json.Marshal(env)
	req := httptest.NewRequest(http.MethodPost, "/webhooks/payment", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if signature != "" {
		req.Header.Set("x-cakto-signature", signature)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func approvedEnvelope() types.WebhookEnvelope {
	return types.WebhookEnvelope{
		Event: types.PaymentEventApproved,
		Data: types.WebhookData{
			ID:       "pay_001",
			Customer: types.WebhookCustomer{Email: "a@example.com"},
			Amount:   49.9,
		},
	}
}

func TestApiPaymentWebhook_BadSignature(t *testing.T) {
	d := &stubDispatcher{}
	r := webhookTestRouter(d, "s3cret")

	for _, sig := range []string{"", "wrong"} {
		w := postWebhook(r, sig, approvedEnvelope())
		require.Equal(t, http.StatusUnauthorized, w.Code)
		require.Contains(t, w.Body.String(), "Invalid signature")
	}
	require.Zero(t, d.calls, "nothing may be dispatched on a bad signature")
}

func TestApiPaymentWebhook_EmptyConfiguredSecretRejectsAll(t *testing.T) {
	d := &stubDispatcher{}
	r := webhookTestRouter(d, "")

	w := postWebhook(r, "", approvedEnvelope())
	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Zero(t, d.calls)
}

func TestApiPaymentWebhook_UnknownUser(t *testing.T) {
	d := &stubDispatcher{err: subscription.ErrUserNotFound}
	r := webhookTestRouter(d, "s3cret")

	w := postWebhook(r, "s3cret", approvedEnvelope())
	require.Equal(t, http.StatusNotFound, w.Code)
	require.Contains(t, w.Body.String(), "a@example.com")
	require.Contains(t, w.Body.String(), "register")
}

func TestApiPaymentWebhook_Success(t *testing.T) {
	d := &stubDispatcher{res: &webhook.Result{Message: "Founder access granted"}}
	r := webhookTestRouter(d, "s3cret")

	w := postWebhook(r, "s3cret", approvedEnvelope())
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `"success":true`)
	require.Contains(t, w.Body.String(), "Founder access granted")
	require.Equal(t, 1, d.calls)
}

func TestRegisterPaymentWebhookRoutes_RegistersEndpoint(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	g := r.Group("/webhooks")
	RegisterPaymentWebhookRoutes(g, nil, &config.Config{}, zap.NewNop().Sugar())

	found := false
	for _, rt := range r.Routes() {
		if rt.Method == http.MethodPost && rt.Path == "/webhooks/payment" {
			found = true
		}
	}
	require.True(t, found)
}
