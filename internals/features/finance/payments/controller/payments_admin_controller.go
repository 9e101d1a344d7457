// file: internals/features/finance/payments/controller/payments_admin_controller.go
package controller

import (
	"errors"
	"math"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	helper "schoolpay_backend/internals/helpers"

	"schoolpay_backend/internals/features/finance/payments/dto"
	"schoolpay_backend/internals/features/finance/payments/model"
)

/* =======================================================================
   Admin Controller — monitoring intent & event log gateway
======================================================================= */

type PaymentsAdminController struct {
	DB        *gorm.DB
	Validator *validator.Validate
}

func NewPaymentsAdminController(db *gorm.DB) *PaymentsAdminController {
	return &PaymentsAdminController{DB: db, Validator: validator.New()}
}

// GET /api/a/payments
func (h *PaymentsAdminController) ListIntents(c *fiber.Ctx) error {
	var q dto.ListIntentsQuery
	if err := c.QueryParser(&q); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid query: "+err.Error())
	}
	if err := h.Validator.Struct(q); err != nil {
		return helper.ValidationError(c, err)
	}
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Size < 1 {
		q.Size = 20
	}

	tx := h.DB.WithContext(c.UserContext()).Model(&model.PaymentIntent{})
	if q.Domain != nil {
		tx = tx.Where("payment_intent_domain = ?", *q.Domain)
	}
	if q.Status != nil {
		tx = tx.Where("payment_intent_status = ?", *q.Status)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	var intents []model.PaymentIntent
	if err := tx.
		Order("payment_intent_created_at DESC").
		Offset((q.Page - 1) * q.Size).
		Limit(q.Size).
		Find(&intents).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return helper.Success(c, "OK", dto.ListIntentsResponse{
		Data:       dto.ToPaymentIntentResponses(intents),
		Page:       q.Page,
		Size:       q.Size,
		TotalItems: total,
		TotalPages: int(math.Ceil(float64(total) / float64(q.Size))),
	})
}

// GET /api/a/payments/:tran_id
func (h *PaymentsAdminController) GetIntentByTranID(c *fiber.Ctx) error {
	tranID := c.Params("tran_id")
	var m model.PaymentIntent
	if err := h.DB.WithContext(c.UserContext()).
		First(&m, "payment_intent_tran_id = ?", tranID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "payment intent not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	return helper.Success(c, "OK", dto.ToPaymentIntentResponse(m))
}

// GET /api/a/payments/events?tran_id=...
func (h *PaymentsAdminController) ListGatewayEvents(c *fiber.Ctx) error {
	tx := h.DB.WithContext(c.UserContext()).Model(&model.PaymentGatewayEventModel{})
	if tranID := c.Query("tran_id"); tranID != "" {
		tx = tx.Where("gateway_event_tran_id = ?", tranID)
	}
	if domain := c.Query("domain"); domain != "" {
		if !model.ValidDomain(domain) {
			return fiber.NewError(fiber.StatusBadRequest, "unknown payment domain")
		}
		tx = tx.Where("gateway_event_domain = ?", domain)
	}

	var events []model.PaymentGatewayEventModel
	if err := tx.
		Order("gateway_event_received_at DESC").
		Limit(200).
		Find(&events).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	return helper.Success(c, "OK", events)
}
