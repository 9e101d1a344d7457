// file: internals/features/finance/payments/dto/callback_dto.go
package dto

/* =========================================================
   Payload callback SSLCommerz (IPN & return) — field minimum
   yang kita pakai; sisanya tetap tersimpan raw di gateway_payload.
========================================================= */

type CallbackPayload struct {
	TranID string `json:"tran_id" form:"tran_id" query:"tran_id"`
	Status string `json:"status" form:"status" query:"status"`
	ValID  string `json:"val_id" form:"val_id" query:"val_id"`

	// opsional, cuma buat log
	Amount      string `json:"amount" form:"amount" query:"amount"`
	CardType    string `json:"card_type" form:"card_type" query:"card_type"`
	BankTranID  string `json:"bank_tran_id" form:"bank_tran_id" query:"bank_tran_id"`
	StoreAmount string `json:"store_amount" form:"store_amount" query:"store_amount"`
}

// AsMap: bentuk yang direkam ke payment_intent_gateway_payload
func (p CallbackPayload) AsMap() map[string]any {
	m := map[string]any{
		"tran_id": p.TranID,
		"status":  p.Status,
		"val_id":  p.ValID,
	}
	if p.Amount != "" {
		m["amount"] = p.Amount
	}
	if p.CardType != "" {
		m["card_type"] = p.CardType
	}
	if p.BankTranID != "" {
		m["bank_tran_id"] = p.BankTranID
	}
	if p.StoreAmount != "" {
		m["store_amount"] = p.StoreAmount
	}
	return m
}
