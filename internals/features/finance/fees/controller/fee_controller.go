// file: internals/features/finance/fees/controller/fee_controller.go
package controller

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	helper "schoolpay_backend/internals/helpers"
	authMw "schoolpay_backend/internals/middlewares/auth"

	"schoolpay_backend/internals/features/finance/fees/dto"
	"schoolpay_backend/internals/features/finance/fees/model"
	paymentModel "schoolpay_backend/internals/features/finance/payments/model"
)

type FeeController struct {
	DB        *gorm.DB
	Validator *validator.Validate
}

func NewFeeController(db *gorm.DB) *FeeController {
	return &FeeController{DB: db, Validator: validator.New()}
}

/* =======================================================================
   Admin
======================================================================= */

// POST /api/a/fees
func (h *FeeController) CreateFee(c *fiber.Ctx) error {
	var req dto.CreateFeeRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid json: "+err.Error())
	}
	if err := h.Validator.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}
	if req.FeeAmount.Sign() <= 0 {
		return fiber.NewError(fiber.StatusBadRequest, "fee_amount must be positive")
	}

	m := req.ToModel()
	if err := h.DB.WithContext(c.UserContext()).Create(&m).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "create fee failed: "+err.Error())
	}
	return helper.SuccessWithCode(c, fiber.StatusCreated, "Fee created", m)
}

// GET /api/a/fees
func (h *FeeController) ListFees(c *fiber.Ctx) error {
	var fees []model.Fee
	if err := h.DB.WithContext(c.UserContext()).
		Order("fee_created_at DESC").
		Find(&fees).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	return helper.Success(c, "OK", fees)
}

// PATCH /api/a/fees/:id/close — tutup fee dari pembayaran baru
func (h *FeeController) CloseFee(c *fiber.Ctx) error {
	feeID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid fee id")
	}
	res := h.DB.WithContext(c.UserContext()).
		Model(&model.Fee{}).
		Where("fee_id = ?", feeID).
		Update("fee_status", model.FeeStatusClosed)
	if res.Error != nil {
		return fiber.NewError(fiber.StatusInternalServerError, res.Error.Error())
	}
	if res.RowsAffected == 0 {
		return fiber.NewError(fiber.StatusNotFound, "Fee not found")
	}
	return helper.Success(c, "Fee closed", nil)
}

/* =======================================================================
   Student
======================================================================= */

// GET /api/u/fees — daftar fee + status pembayaran student ybs
func (h *FeeController) MyFees(c *fiber.Ctx) error {
	studentID, err := authMw.StudentIDFromLocals(c)
	if err != nil {
		return err
	}

	var fees []model.Fee
	if err := h.DB.WithContext(c.UserContext()).
		Where("fee_status = ?", model.FeeStatusRunning).
		Order("fee_created_at DESC").
		Find(&fees).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	// intent terakhir per fee milik student (failed paling lemah, paid menang)
	var intents []paymentModel.PaymentIntent
	if err := h.DB.WithContext(c.UserContext()).
		Where("payment_intent_student_id = ? AND payment_intent_domain = ?",
			studentID, paymentModel.PaymentDomainFee).
		Order("payment_intent_created_at ASC").
		Find(&intents).Error; err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	byFee := map[uuid.UUID]paymentModel.PaymentIntent{}
	for _, it := range intents {
		if it.PaymentIntentFeeID == nil {
			continue
		}
		prev, ok := byFee[*it.PaymentIntentFeeID]
		// paid > pending > failed; kalau seri, yang terbaru menang (iterasi ASC)
		if !ok || intentRank(it.PaymentIntentStatus) >= intentRank(prev.PaymentIntentStatus) {
			byFee[*it.PaymentIntentFeeID] = it
		}
	}

	out := make([]dto.FeeWithPaymentStatus, 0, len(fees))
	for _, f := range fees {
		row := dto.FeeWithPaymentStatus{
			FeeID:         f.FeeID,
			FeeTitle:      f.FeeTitle,
			FeeMonth:      f.FeeMonth,
			FeeAmount:     f.FeeAmount,
			FeeStatus:     f.FeeStatus,
			PaymentStatus: "not_paid",
		}
		if it, ok := byFee[f.FeeID]; ok {
			row.PaymentStatus = it.PaymentIntentStatus
			tranID := it.PaymentIntentTranID
			row.TranID = &tranID
			row.PaidAt = it.PaymentIntentPaidAt
		}
		out = append(out, row)
	}
	return helper.Success(c, "OK", out)
}

func intentRank(status string) int {
	switch status {
	case paymentModel.IntentStatusPaid:
		return 2
	case paymentModel.IntentStatusPending:
		return 1
	default:
		return 0
	}
}
