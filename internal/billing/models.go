package billing

import (
	"clinic-desk/internal/apierrors"
)

// Payment statuses.
const (
	StatusUnpaid   = "unpaid"
	StatusPaid     = "paid"
	StatusRefunded = "refunded"
)

// Accepted payment methods.
const (
	MethodCash          = "cash"
	MethodWechat        = "wechat"
	MethodAlipay        = "alipay"
	MethodBankCard      = "bank_card"
	MethodInsuranceCard = "insurance_card"
)

// SettlementRequest carries the fields needed to settle the charges of a
// visit at departure.
type SettlementRequest struct {
	VisitID       int64   `json:"visit_id"`
	PatientID     int64   `json:"patient_id"`
	TotalFee      float64 `json:"total_fee"`
	InsuranceFee  float64 `json:"insurance_fee"`
	PaymentMethod string  `json:"payment_method"`
}

// Validate checks if the given settlement request is valid.
func (r SettlementRequest) Validate() error {
	if r.VisitID == 0 {
		return apierrors.NewValidationError("visit_id", "required")
	}
	if r.PatientID == 0 {
		return apierrors.NewValidationError("patient_id", "required")
	}
	if r.TotalFee <= 0 {
		return apierrors.NewValidationError("total_fee", "must be greater than zero")
	}
	if r.InsuranceFee < 0 {
		return apierrors.NewValidationError("insurance_fee", "must not be negative")
	}
	switch r.PaymentMethod {
	case MethodCash, MethodWechat, MethodAlipay, MethodBankCard, MethodInsuranceCard:
	default:
		return apierrors.NewValidationError("payment_method", "unknown payment method")
	}
	return nil
}

// SettlementResult carries the identifier of a created billing record
// together with the fee the patient actually paid.
type SettlementResult struct {
	BillID  int64   `json:"bill_id"`
	SelfFee float64 `json:"self_fee"`
}
