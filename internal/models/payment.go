package models

import "fmt"

// PaymentType is the TLC payment type code of a trip
type PaymentType int

// Payment type codes as published by the TLC
const (
	PaymentCreditCard PaymentType = 1
	PaymentCash       PaymentType = 2
	PaymentNoCharge   PaymentType = 3
	PaymentDispute    PaymentType = 4
	PaymentUnknown    PaymentType = 5
)

// PaymentLabelOther labels any code outside the published set
const PaymentLabelOther = "Other"

var paymentLabels = map[PaymentType]string{
	PaymentCreditCard: "Credit Card",
	PaymentCash:       "Cash",
	PaymentNoCharge:   "No Charge",
	PaymentDispute:    "Dispute",
	PaymentUnknown:    "Unknown",
}

// PaymentTypes returns the selectable payment types in code order
func PaymentTypes() []PaymentType {
	return []PaymentType{PaymentCreditCard, PaymentCash, PaymentNoCharge, PaymentDispute, PaymentUnknown}
}

// ParsePaymentType converts a code into a PaymentType, rejecting codes
// outside 1-5
func ParsePaymentType(code int) (PaymentType, error) {
	p := PaymentType(code)
	if !p.Valid() {
		return 0, fmt.Errorf("unknown payment type %d", code)
	}
	return p, nil
}

// Valid reports whether p is one of the published codes
func (p PaymentType) Valid() bool {
	_, ok := paymentLabels[p]
	return ok
}

// Label returns the display label, "Other" for unpublished codes
func (p PaymentType) Label() string {
	if l, ok := paymentLabels[p]; ok {
		return l
	}
	return PaymentLabelOther
}

// PaymentOption is a selectable payment type for the filter sidebar
type PaymentOption struct {
	Code  PaymentType `json:"code"`
	Label string      `json:"label"`
}

// PaymentOptions lists every selectable payment type with its label
func PaymentOptions() []PaymentOption {
	types := PaymentTypes()
	opts := make([]PaymentOption, 0, len(types))
	for _, p := range types {
		opts = append(opts, PaymentOption{Code: p, Label: p.Label()})
	}
	return opts
}
