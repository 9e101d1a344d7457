// file: internals/features/finance/payments/controller/callback_controller.go
package controller

import (
	"encoding/json"
	"net/url"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"schoolpay_backend/internals/features/finance/payments/dto"
	"schoolpay_backend/internals/features/finance/payments/model"
	svc "schoolpay_backend/internals/features/finance/payments/service"
)

/* =======================================================================
   Callback Controller (IPN + return SSLCommerz)
======================================================================= */

type CallbackController struct {
	DB              *gorm.DB
	Engine          *svc.ReconciliationEngine
	FrontendBaseURL string
}

func NewCallbackController(db *gorm.DB, engine *svc.ReconciliationEngine, frontendBaseURL string) *CallbackController {
	return &CallbackController{
		DB:              db,
		Engine:          engine,
		FrontendBaseURL: frontendBaseURL,
	}
}

/* =======================================================================
   IPN (server-to-server, async)
   - Gateway cuma peduli endpoint menjawab; error internal dicatat di
     event log + payload intent, tidak pernah jadi drama buat caller.
======================================================================= */

// POST /api/payments/:domain/ipn
func (h *CallbackController) HandleIPN(c *fiber.Ctx) error {
	domain := c.Params("domain")
	if !model.ValidDomain(domain) {
		return c.Status(fiber.StatusNotFound).SendString("Unknown payment domain")
	}

	var cb dto.CallbackPayload
	if err := c.BodyParser(&cb); err != nil {
		return c.Status(fiber.StatusBadRequest).SendString("Invalid payload")
	}
	if cb.TranID == "" {
		return c.Status(fiber.StatusBadRequest).SendString("Missing transaction ID")
	}

	ev := h.logGatewayEvent(c, domain, cb)

	res, err := h.Engine.Process(c.UserContext(), domain, model.PayloadKeyIPN, cb, false)
	if err != nil {
		h.updateEventStatus(ev, model.GatewayEventStatusFailed, err.Error())
		return c.Status(fiber.StatusInternalServerError).SendString("IPN processing failed")
	}

	switch res.Outcome {
	case svc.OutcomeIntentNotFound:
		h.updateEventStatus(ev, model.GatewayEventStatusIgnored, "payment intent not found for tran_id="+cb.TranID)
		return c.Status(fiber.StatusNotFound).SendString("Payment not found")

	case svc.OutcomeMissingValID:
		h.updateEventStatus(ev, model.GatewayEventStatusFailed, "missing val_id")
		return c.Status(fiber.StatusBadRequest).SendString("Missing val_id")

	case svc.OutcomeValidationError:
		// intent tetap pending — retry IPN gateway berikutnya masih bisa sukses
		h.updateEventStatus(ev, model.GatewayEventStatusFailed, "gateway validation failed")
		return c.Status(fiber.StatusBadGateway).SendString("Validation failed")

	case svc.OutcomePaid:
		h.updateEventStatus(ev, model.GatewayEventStatusProcessed, "")
		return c.SendString("Payment validated")

	default: // OutcomeRejected
		h.updateEventStatus(ev, model.GatewayEventStatusProcessed, "")
		if !svc.IsConfirmedStatus(cb.Status) {
			return c.SendString("IPN received")
		}
		return c.SendString("Payment rejected")
	}
}

/* =======================================================================
   Return (browser redirect, sync, one-shot)
   - Apapun hasil internalnya: redirect ke frontend dengan
     payment=success|failed — browser tidak pernah lihat error mentah.
======================================================================= */

// GET|POST /api/payments/:domain/return
func (h *CallbackController) HandleReturn(c *fiber.Ctx) error {
	domain := c.Params("domain")
	if !model.ValidDomain(domain) {
		return c.Status(fiber.StatusNotFound).SendString("Unknown payment domain")
	}

	var cb dto.CallbackPayload
	if c.Method() == fiber.MethodPost {
		_ = c.BodyParser(&cb)
	}
	if cb.TranID == "" {
		_ = c.QueryParser(&cb)
	}

	result := "failed"
	if cb.TranID != "" {
		res, err := h.Engine.Process(c.UserContext(), domain, model.PayloadKeyValidation, cb, true)
		if err == nil && res.Outcome == svc.OutcomePaid {
			result = "success"
		}
	}

	q := url.Values{}
	q.Set("payment", result)
	q.Set("source", domain)
	if cb.TranID != "" {
		q.Set("tran_id", cb.TranID)
	}
	redirectURL := strings.TrimRight(h.FrontendBaseURL, "/") + "/student/dashboard?" + q.Encode()
	return c.Redirect(redirectURL, fiber.StatusFound)
}

/* =======================================================================
   Helpers: event log (audit callback mentah, bisa banyak row per intent)
======================================================================= */

func (h *CallbackController) logGatewayEvent(c *fiber.Ctx, domain string, cb dto.CallbackPayload) *model.PaymentGatewayEventModel {
	headers := map[string]string{}
	for k, v := range c.GetReqHeaders() { // v: []string
		headers[k] = strings.Join(v, ",")
	}
	headersJSON, _ := json.Marshal(headers)
	payloadJSON, _ := json.Marshal(cb.AsMap())
	rawQuery := string(c.Request().URI().QueryString())

	ev := &model.PaymentGatewayEventModel{
		GatewayEventDomain:     domain,
		GatewayEventTranID:     strPtr(cb.TranID),
		GatewayEventValID:      strPtr(cb.ValID),
		GatewayEventHeaders:    datatypes.JSON(headersJSON),
		GatewayEventPayload:    datatypes.JSON(payloadJSON),
		GatewayEventRawQuery:   &rawQuery,
		GatewayEventStatus:     model.GatewayEventStatusReceived,
		GatewayEventReceivedAt: time.Now(),
	}
	if err := h.DB.WithContext(c.UserContext()).Create(ev).Error; err != nil {
		// log event gagal bukan alasan menolak IPN — proses jalan terus
		return nil
	}
	return ev
}

func (h *CallbackController) updateEventStatus(ev *model.PaymentGatewayEventModel, newStatus, errMsg string) {
	if ev == nil {
		return
	}
	now := time.Now()
	ev.GatewayEventStatus = newStatus
	ev.GatewayEventError = strPtr(errMsg)
	ev.GatewayEventProcessedAt = &now
	_ = h.DB.Model(&model.PaymentGatewayEventModel{}).
		Where("gateway_event_id = ?", ev.GatewayEventID).
		Updates(map[string]any{
			"gateway_event_status":       newStatus,
			"gateway_event_error":        ev.GatewayEventError,
			"gateway_event_processed_at": now,
		}).Error
}

func strPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
