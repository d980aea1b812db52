package webhook

import (
	"context"
	"encoding/json"
	"fmt"
	subscription "github.com/atomictrack/atomictrack/internal/app/service/subscription"
	models "github.com/atomictrack/atomictrack/internal/models"
	"github.com/atomictrack/atomictrack/pkg/logctx"
	"github.com/atomictrack/atomictrack/pkg/types"

	"github.com/samber/lo"
	"go.uber.org/zap"
	"gorm.io/datatypes"
)

// subscriptionOps is the slice of the subscription service the dispatcher
// needs. Kept small so tests can stub it.
type subscriptionOps interface {
	ResolveUserByEmail(ctx context.Context, email string) (*models.User, error)
	ApplyApprovedPayment(ctx context.Context, user *models.User, data *types.WebhookData) (bool, error)
	ApplyRecurring(ctx context.Context, user *models.User, data *types.WebhookData, reason types.SubscriptionChangeReason) error
	Cancel(ctx context.Context, user *models.User, reason types.SubscriptionChangeReason) error
}

type deliveryLog interface {
	Save(ctx context.Context, entry *models.WebhookLog)
}

// Result is what the HTTP layer reports back to the payment provider.
type Result struct {
	Message          string
	AlreadyProcessed bool
}

type Handler struct {
	subSvc subscriptionOps
	logSvc deliveryLog
	Logger *zap.SugaredLogger
}

func NewHandler(sub *subscription.Service, logSvc *LogService, log *zap.SugaredLogger) *Handler {
	return &Handler{subSvc: sub, logSvc: logSvc, Logger: log}
}

// Handle dispatches one provider event. Every delivery is persisted to the
// webhook log twice, as received and then with its outcome. A payer email
// that matches no account returns subscription.ErrUserNotFound untouched so
// the HTTP layer can answer 404.
func (h *Handler) Handle(ctx context.Context, traceID string, env *types.WebhookEnvelope) (res *Result, resErr error) {
	dataBytes, _ := json.Marshal(env.Data)

	h.logSvc.Save(ctx, &models.WebhookLog{
		Event:     string(env.Event),
		TraceID:   traceID,
		PaymentID: env.Data.ID,
		Data:      datatypes.JSON(dataBytes),
		Status:    models.WebhookLogStatusReceived,
	})

	var userID string
	defer func() {
		resMap := map[string]any{}
		if res != nil {
			resMap["message"] = res.Message
			resMap["already_processed"] = res.AlreadyProcessed
		}
		if resErr != nil {
			resMap["error"] = resErr.Error()
		}
		resBytes, _ := json.Marshal(resMap)
		status := models.WebhookLogStatusHandled
		if resErr != nil {
			status = models.WebhookLogStatusHandleFailed
		}
		h.logSvc.Save(ctx, &models.WebhookLog{
			Event: string(env.Event),
			UserID: func() *string {
				if userID == "" {
					return nil
				}
				return lo.ToPtr(userID)
			}(),
			TraceID:   traceID,
			PaymentID: env.Data.ID,
			Data:      datatypes.JSON(dataBytes),
			Result:    func() *datatypes.JSON { j := datatypes.JSON(resBytes); return &j }(),
			Status:    status,
		})
	}()

	user, err := h.subSvc.ResolveUserByEmail(ctx, env.Data.Customer.Email)
	if err != nil {
		resErr = err
		return nil, resErr
	}
	userID = user.ID

	log := logctx.FromCtx(ctx, h.Logger)

	switch env.Event {
	case types.PaymentEventApproved:
		already, err := h.subSvc.ApplyApprovedPayment(ctx, user, &env.Data)
		if err != nil {
			resErr = fmt.Errorf("failed to handle approved payment: %w", err)
			return nil, resErr
		}
		if already {
			return &Result{Message: "Payment already processed", AlreadyProcessed: true}, nil
		}
		return &Result{Message: "Founder access granted"}, nil

	case types.PaymentEventRejected:
		log.Infow("payment rejected, no action taken", "payment_id", env.Data.ID, "user_id", user.ID)
		return &Result{Message: "Payment rejection acknowledged"}, nil

	case types.PaymentEventSubscriptionCreated:
		if err := h.subSvc.ApplyRecurring(ctx, user, &env.Data, types.SubscriptionChangeReasonPayment); err != nil {
			resErr = fmt.Errorf("failed to handle subscription creation: %w", err)
			return nil, resErr
		}
		return &Result{Message: "Subscription activated"}, nil

	case types.PaymentEventSubscriptionRenewed:
		if err := h.subSvc.ApplyRecurring(ctx, user, &env.Data, types.SubscriptionChangeReasonRenew); err != nil {
			resErr = fmt.Errorf("failed to handle subscription renewal: %w", err)
			return nil, resErr
		}
		return &Result{Message: "Subscription renewed"}, nil

	case types.PaymentEventSubscriptionCancelled:
		if err := h.subSvc.Cancel(ctx, user, types.SubscriptionChangeReasonCancel); err != nil {
			resErr = fmt.Errorf("failed to handle subscription cancellation: %w", err)
			return nil, resErr
		}
		return &Result{Message: "Subscription cancelled"}, nil

	case types.PaymentEventSubscriptionExpired:
		if err := h.subSvc.Cancel(ctx, user, types.SubscriptionChangeReasonExpire); err != nil {
			resErr = fmt.Errorf("failed to handle subscription expiry: %w", err)
			return nil, resErr
		}
		return &Result{Message: "Subscription expired"}, nil

	default:
		log.Warnw("unhandled webhook event", "event", env.Event, "payment_id", env.Data.ID)
		return &Result{Message: fmt.Sprintf("Event %s acknowledged", env.Event)}, nil
	}
}
