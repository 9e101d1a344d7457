// file: internals/features/finance/payments/controller/intent_controller.go
package controller

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"schoolpay_backend/internals/configs"
	helper "schoolpay_backend/internals/helpers"
	authMw "schoolpay_backend/internals/middlewares/auth"

	feeModel "schoolpay_backend/internals/features/finance/fees/model"
	"schoolpay_backend/internals/features/finance/payments/dto"
	"schoolpay_backend/internals/features/finance/payments/model"
	svc "schoolpay_backend/internals/features/finance/payments/service"
)

/* =======================================================================
   Intent Controller — init payment per domain (student)
   Satu alur init untuk tiga domain; beda cuma amount + konteks.
======================================================================= */

type PaymentIntentController struct {
	DB        *gorm.DB
	Validator *validator.Validate
	Gateway   *svc.SSLCommerzClient
	Store     *svc.IntentStore
}

func NewPaymentIntentController(db *gorm.DB, gateway *svc.SSLCommerzClient, store *svc.IntentStore) *PaymentIntentController {
	return &PaymentIntentController{
		DB:        db,
		Validator: validator.New(),
		Gateway:   gateway,
		Store:     store,
	}
}

/* =======================================================================
   Handlers: init per domain
======================================================================= */

// POST /api/u/fees/:id/pay
func (h *PaymentIntentController) PayFee(c *fiber.Ctx) error {
	studentID, err := authMw.StudentIDFromLocals(c)
	if err != nil {
		return err
	}
	feeID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid fee id")
	}

	var fee feeModel.Fee
	if err := h.DB.WithContext(c.UserContext()).
		First(&fee, "fee_id = ?", feeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Fee not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	if !fee.IsRunning() {
		return fiber.NewError(fiber.StatusBadRequest, "This fee is not available for payment")
	}

	// Satu intent hidup per (student, fee): pending / paid menolak intent baru,
	// failed boleh coba lagi
	var existing model.PaymentIntent
	err = h.DB.WithContext(c.UserContext()).
		First(&existing,
			"payment_intent_student_id = ? AND payment_intent_fee_id = ? AND payment_intent_status <> ?",
			studentID, feeID, model.IntentStatusFailed).Error
	if err == nil {
		return fiber.NewError(fiber.StatusBadRequest,
			"You already have a "+existing.PaymentIntentStatus+" payment for this fee")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return h.startPayment(c, svc.NewIntent{
		Domain:    model.PaymentDomainFee,
		StudentID: studentID,
		FeeID:     &feeID,
		Amount:    fee.FeeAmount,
		Currency:  h.Gateway.Config.Currency,
	}, fee.FeeTitle, h.Gateway.Config.FeeIPNURL)
}

// POST /api/u/transcripts/pay
func (h *PaymentIntentController) PayTranscript(c *fiber.Ctx) error {
	studentID, err := authMw.StudentIDFromLocals(c)
	if err != nil {
		return err
	}
	return h.startPayment(c, svc.NewIntent{
		Domain:    model.PaymentDomainTranscript,
		StudentID: studentID,
		Amount:    configs.TranscriptFeeAmount(),
		Currency:  h.Gateway.Config.Currency,
	}, "Transcript Request", h.Gateway.Config.TranscriptIPNURL)
}

// POST /api/u/admissions/pay
func (h *PaymentIntentController) PayAdmission(c *fiber.Ctx) error {
	studentID, err := authMw.StudentIDFromLocals(c)
	if err != nil {
		return err
	}
	return h.startPayment(c, svc.NewIntent{
		Domain:    model.PaymentDomainAdmission,
		StudentID: studentID,
		Amount:    configs.AdmissionFeeAmount(),
		Currency:  h.Gateway.Config.Currency,
	}, "Admission Form", h.Gateway.Config.AdmissionIPNURL)
}

// GET /api/u/payments/me
func (h *PaymentIntentController) MyPayments(c *fiber.Ctx) error {
	studentID, err := authMw.StudentIDFromLocals(c)
	if err != nil {
		return err
	}
	var intents []model.PaymentIntent
	if err := h.DB.WithContext(c.UserContext()).
		Where("payment_intent_student_id = ?", studentID).
		Order("payment_intent_created_at DESC").
		Find(&intents).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	return helper.Success(c, "OK", dto.ToPaymentIntentResponses(intents))
}

/* =======================================================================
   Alur init bersama
======================================================================= */

func (h *PaymentIntentController) startPayment(c *fiber.Ctx, in svc.NewIntent, productName, ipnURL string) error {
	if !h.Gateway.Config.Configured() {
		return fiber.NewError(fiber.StatusServiceUnavailable, "Payment gateway not configured")
	}

	intent, err := h.Store.Create(c.UserContext(), in)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "create payment intent failed: "+err.Error())
	}

	returnBase := c.BaseURL() + "/api/payments/" + in.Domain + "/return"
	res, err := h.Gateway.Initiate(c.UserContext(), svc.InitiateParams{
		Amount:      in.Amount,
		TranID:      intent.PaymentIntentTranID,
		SuccessURL:  returnBase + "?result=success",
		FailURL:     returnBase + "?result=fail",
		CancelURL:   returnBase + "?result=cancel",
		IPNURL:      ipnURL,
		ProductName: productName,
		Customer:    customerFromClaims(c),
	})

	if err != nil {
		// catat respons mentah / error, intent langsung failed — tanpa retry
		if res != nil && res.Raw != nil {
			_ = h.Store.AppendGatewayPayload(c.UserContext(), intent, model.PayloadKeyInitResponse, res.Raw)
		} else {
			_ = h.Store.AppendGatewayPayload(c.UserContext(), intent, model.PayloadKeyInitResponse, map[string]any{"error": err.Error()})
		}
		if terr := h.Store.Transition(c.UserContext(), intent, model.IntentStatusFailed); terr != nil {
			return fiber.NewError(fiber.StatusInternalServerError, terr.Error())
		}
		if errors.Is(err, svc.ErrInitRejected) {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		return fiber.NewError(fiber.StatusBadGateway, "Failed to connect with SSLCOMMERZ")
	}

	if err := h.Store.AppendGatewayPayload(c.UserContext(), intent, model.PayloadKeyInitResponse, res.Raw); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return helper.SuccessWithCode(c, fiber.StatusCreated, "Payment initiated", dto.InitPaymentResponse{
		TranID:         intent.PaymentIntentTranID,
		Amount:         intent.PaymentIntentAmount,
		Currency:       intent.PaymentIntentCurrency,
		GatewayPageURL: res.GatewayPageURL,
		StoreLogo:      res.StoreLogo,
	})
}

// customerFromClaims: best-effort info customer dari JWT (name/email/phone)
func customerFromClaims(c *fiber.Ctx) svc.CustomerInfo {
	info := svc.CustomerInfo{}
	claims, ok := c.Locals("jwt_claims").(jwt.MapClaims)
	if !ok {
		return info
	}
	if v, ok := claims["name"].(string); ok {
		info.Name = v
	} else if v, ok := claims["full_name"].(string); ok {
		info.Name = v
	}
	if v, ok := claims["email"].(string); ok {
		info.Email = v
	}
	if v, ok := claims["phone"].(string); ok {
		info.Phone = v
	}
	return info
}
