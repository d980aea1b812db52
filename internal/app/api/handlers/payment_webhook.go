package handlers

import (
	"errors"
	"net/http"

	subscription "github.com/atomictrack/atomictrack/internal/app/service/subscription"
	"github.com/atomictrack/atomictrack/internal/app/service/webhook"
	"github.com/atomictrack/atomictrack/pkg/config"
	"github.com/atomictrack/atomictrack/pkg/logctx"
	"github.com/atomictrack/atomictrack/pkg/types"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const signatureHeader = "x-cakto-signature"

// webhookDispatcher is the slice of the webhook service this endpoint needs.
type webhookDispatcher interface {
	Handle(c *gin.Context, traceID string, env *types.WebhookEnvelope) (*webhook.Result, error)
}

type dispatcherAdapter struct{ h *webhook.Handler }

func (a dispatcherAdapter) Handle(c *gin.Context, traceID string, env *types.WebhookEnvelope) (*webhook.Result, error) {
	return a.h.Handle(c.Request.Context(), traceID, env)
}

// @Summary      Payment Webhook
// @Description  Handles payment provider events (payments and subscription lifecycle). Requires the shared-secret signature header.
// @Tags         Webhook
// @Accept       json
// @Produce      json
// @Param        x-cakto-signature header string true "Shared webhook secret"
// @Param        payload body types.WebhookEnvelope true "Webhook event envelope"
// @Success      200  {object}  map[string]any
// @Failure      401  {object}  map[string]any
// @Failure      404  {object}  map[string]any
// @Router       /webhooks/payment [post]
// ApiPaymentWebhook speaks the provider's JSON dialect, not the internal
// envelope: {success, message} on success, {error, ...} on failure.
func ApiPaymentWebhook(d webhookDispatcher, cfg *config.Config, log *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Signature first. A bad or missing secret must leave no trace of
		// side effects, so nothing is parsed or logged to storage before it.
		if cfg.Payment.WebhookSecret == "" || c.GetHeader(signatureHeader) != cfg.Payment.WebhookSecret {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid signature"})
			return
		}

		var env types.WebhookEnvelope
		if err := c.ShouldBindJSON(&env); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid payload", "message": err.Error()})
			return
		}

		traceID := c.GetString("traceID")
		logctx.FromCtx(c, log).Infow("webhook_received", "event", env.Event, "payment_id", env.Data.ID)

		res, err := d.Handle(c, traceID, &env)
		if err != nil {
			if errors.Is(err, subscription.ErrUserNotFound) {
				c.JSON(http.StatusNotFound, gin.H{
					"error":   "User not found",
					"message": "No account exists for this email. Please register first, then contact support to link your purchase.",
					"email":   env.Data.Customer.Email,
				})
				return
			}
			logctx.FromCtx(c, log).Errorw("webhook_handle_error", "event", env.Event, "error", err.Error())
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		logctx.FromCtx(c, log).Infow("webhook_handled", "event", env.Event, "message", res.Message)
		c.JSON(http.StatusOK, gin.H{"success": true, "message": res.Message})
	}
}

func RegisterPaymentWebhookRoutes(r gin.IRouter, h *webhook.Handler, cfg *config.Config, log *zap.SugaredLogger) {
	r.POST("/payment", ApiPaymentWebhook(dispatcherAdapter{h: h}, cfg, log))
}
