package models

import (
	"errors"
	"slices"
	"time"

	"github.com/go-playground/validator/v10"
)

// DateLayout is the wire format of filter dates
const DateLayout = "2006-01-02"

// SelectionQuery represents the filter parameters of a dashboard request
type SelectionQuery struct {
	StartDate time.Time `form:"start" time_format:"2006-01-02" time_utc:"1"`
	EndDate   time.Time `form:"end" time_format:"2006-01-02" time_utc:"1"`
	HourStart *int      `form:"hourStart"` // 0-23, defaults to 0 together with HourEnd
	HourEnd   *int      `form:"hourEnd"`   // 0-23, defaults to 23 together with HourStart
	Payment   []int     `form:"payment"`   // repeated: payment=1&payment=2
}

// FilterSelection is the immutable user selection one recompute cycle runs
// with. Build it with NewFilterSelection or SelectionQuery.Selection.
type FilterSelection struct {
	StartDate    time.Time     `json:"start_date" validate:"required"`
	EndDate      time.Time     `json:"end_date" validate:"required,gtefield=StartDate"`
	HourStart    int           `json:"hour_start" validate:"gte=0,lte=23"`
	HourEnd      int           `json:"hour_end" validate:"gte=0,lte=23,gtefield=HourStart"`
	PaymentTypes []PaymentType `json:"payment_types" validate:"required,min=1,dive,gte=1,lte=5"`
}

var validate = validator.New()

// NewFilterSelection normalizes dates to UTC calendar days and the payment
// set to sorted unique codes. It does not validate.
func NewFilterSelection(start, end time.Time, hourStart, hourEnd int, payments ...PaymentType) FilterSelection {
	p := slices.Clone(payments)
	slices.Sort(p)
	p = slices.Compact(p)

	return FilterSelection{
		StartDate:    truncateDay(start),
		EndDate:      truncateDay(end),
		HourStart:    hourStart,
		HourEnd:      hourEnd,
		PaymentTypes: p,
	}
}

func truncateDay(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Selection converts bound query parameters into a FilterSelection. Missing
// dates or payment types are a ValidationError, never defaulted.
func (q SelectionQuery) Selection() (FilterSelection, error) {
	if len(q.Payment) == 0 {
		return FilterSelection{}, NewValidationError("payment", MsgSelectPayment)
	}
	if q.StartDate.IsZero() || q.EndDate.IsZero() {
		return FilterSelection{}, NewValidationError("start,end", MsgSelectDateRange)
	}

	hourStart, hourEnd := 0, HoursPerDay-1
	switch {
	case q.HourStart != nil && q.HourEnd != nil:
		hourStart, hourEnd = *q.HourStart, *q.HourEnd
	case q.HourStart != nil || q.HourEnd != nil:
		return FilterSelection{}, NewValidationError("hourStart,hourEnd", MsgHourRange)
	}

	payments := make([]PaymentType, 0, len(q.Payment))
	for _, code := range q.Payment {
		p, err := ParsePaymentType(code)
		if err != nil {
			return FilterSelection{}, NewValidationError("payment", MsgPaymentCode)
		}
		payments = append(payments, p)
	}

	sel := NewFilterSelection(q.StartDate, q.EndDate, hourStart, hourEnd, payments...)
	if err := sel.Validate(); err != nil {
		return FilterSelection{}, err
	}
	return sel, nil
}

// Validate checks the selection invariants and returns a ValidationError
// carrying the message for the first violated one
func (s FilterSelection) Validate() error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return NewValidationError("", err.Error())
	}

	fe := verrs[0]
	switch fe.Field() {
	case "StartDate", "EndDate":
		if fe.Tag() == "gtefield" {
			return NewValidationError("end", MsgDateOrder)
		}
		return NewValidationError("start,end", MsgSelectDateRange)
	case "HourStart", "HourEnd":
		return NewValidationError("hourStart,hourEnd", MsgHourRange)
	case "PaymentTypes":
		return NewValidationError("payment", MsgSelectPayment)
	default:
		// dive errors are reported as PaymentTypes[i]
		return NewValidationError("payment", MsgPaymentCode)
	}
}

// StartDay and EndDay format the date range for the query layer
func (s FilterSelection) StartDay() string { return s.StartDate.Format(DateLayout) }
func (s FilterSelection) EndDay() string   { return s.EndDate.Format(DateLayout) }

// PaymentCodes returns the selected codes as plain ints
func (s FilterSelection) PaymentCodes() []int {
	codes := make([]int, len(s.PaymentTypes))
	for i, p := range s.PaymentTypes {
		codes[i] = int(p)
	}
	return codes
}
