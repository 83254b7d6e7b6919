package service

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"billdocs/internal/billing"
	"billdocs/internal/model"
)

// LineItemInput is one submitted line.
type LineItemInput struct {
	Label     string          `json:"label" validate:"required,max=200"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// CreateDocumentInput is everything a caller may submit to issue a document.
// There is no total field: totals are always computed from LineItems.
type CreateDocumentInput struct {
	Type                  model.DocumentType   `json:"type" validate:"required,oneof=QUOTE INVOICE CREDIT_NOTE"`
	Status                model.DocumentStatus `json:"status" validate:"omitempty,oneof=DRAFT SENT ACCEPTED REJECTED PAID OVERDUE CANCELLED"`
	ClientID              *string              `json:"client_id" validate:"omitnil,uuid"`
	ClientNameSnapshot    string               `json:"client_name_snapshot" validate:"required_without=ClientID,max=200"`
	ClientAddressSnapshot string               `json:"client_address_snapshot" validate:"max=500"`
	IssueDate             string               `json:"issue_date" validate:"required,datetime=2006-01-02"`
	DueDate               string               `json:"due_date" validate:"required,datetime=2006-01-02"`
	LineItems             []LineItemInput      `json:"line_items" validate:"required,min=1,max=500,dive"`
	PrivateNotes          *string              `json:"private_notes" validate:"omitnil,max=5000"`
	LegalNotices          *string              `json:"legal_notices" validate:"omitnil,max=5000"`
}

// UpdateDocumentInput is a partial update. Nil fields are left untouched.
// An empty ClientID detaches the document from its client.
type UpdateDocumentInput struct {
	Status                *model.DocumentStatus `json:"status" validate:"omitnil,oneof=DRAFT SENT ACCEPTED REJECTED PAID OVERDUE CANCELLED"`
	ClientID              *string               `json:"client_id" validate:"omitnil,len=0|uuid"`
	ClientNameSnapshot    *string               `json:"client_name_snapshot" validate:"omitnil,min=1,max=200"`
	ClientAddressSnapshot *string               `json:"client_address_snapshot" validate:"omitnil,max=500"`
	IssueDate             *string               `json:"issue_date" validate:"omitnil,datetime=2006-01-02"`
	DueDate               *string               `json:"due_date" validate:"omitnil,datetime=2006-01-02"`
	LineItems             *[]LineItemInput      `json:"line_items" validate:"-"`
	PrivateNotes          *string               `json:"private_notes" validate:"omitnil,max=5000"`
	LegalNotices          *string               `json:"legal_notices" validate:"omitnil,max=5000"`
}

type lineItemsPayload struct {
	LineItems []LineItemInput `json:"line_items" validate:"required,min=1,max=500,dive"`
}

// Quantities and unit prices have at most amountScale decimal places and
// amountDigits integer digits, so a line amount is exact at 8 places.
const (
	amountScale  = 4
	amountDigits = 10
)

// maxTotal keeps totals inside the NUMERIC(24,8) columns.
var maxTotal = decimal.New(1, 16)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	v.RegisterStructValidation(lineItemAmounts, LineItemInput{})
	return v
}

func lineItemAmounts(sl validator.StructLevel) {
	it := sl.Current().Interface().(LineItemInput)
	if tag, param := checkAmount(it.Quantity); tag != "" {
		sl.ReportError(it.Quantity, "quantity", "Quantity", tag, param)
	}
	if tag, param := checkAmount(it.UnitPrice); tag != "" {
		sl.ReportError(it.UnitPrice, "unit_price", "UnitPrice", tag, param)
	}
}

// checkAmount returns the failed rule for d, if any. Only the sign, exponent and
// coefficient length are inspected: a value like 1e10000000 must be rejected
// without ever being expanded.
func checkAmount(d decimal.Decimal) (tag, param string) {
	switch {
	case d.Sign() < 0:
		return "gte", "0"
	case d.IsZero():
		return "", ""
	case d.Exponent() < -amountScale:
		return "scale", strconv.Itoa(amountScale)
	case int64(d.Exponent())+int64(d.NumDigits()) > amountDigits:
		return "lt", decimal.New(1, amountDigits).String()
	}
	return "", ""
}

// checkTotals rejects line items whose sum would not fit the totals columns.
func checkTotals(t billing.Totals) error {
	if t.Total.GreaterThanOrEqual(maxTotal) {
		return &ValidationError{Problems: []string{"line_items total must be less than " + maxTotal.String()}}
	}
	return nil
}

func validateStruct(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	problems := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		problems = append(problems, describe(fe))
	}
	return &ValidationError{Problems: problems}
}

func describe(fe validator.FieldError) string {
	field := fe.Namespace()
	if i := strings.Index(field, "."); i >= 0 {
		field = field[i+1:]
	}
	switch fe.Tag() {
	case "required", "required_without":
		return field + " is required"
	case "gte":
		return fmt.Sprintf("%s must be >= %s", field, fe.Param())
	case "min":
		return fmt.Sprintf("%s must have at least %s element(s)", field, fe.Param())
	case "max":
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("%s must have at most %s element(s)", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s long", field, fe.Param())
	case "lt":
		return fmt.Sprintf("%s must be less than %s", field, fe.Param())
	case "scale":
		return fmt.Sprintf("%s must have at most %s decimal places", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	case "datetime":
		return field + " must be a date formatted YYYY-MM-DD"
	default:
		return fmt.Sprintf("%s is invalid (%s)", field, fe.Tag())
	}
}

func (in CreateDocumentInput) validate() error {
	return validateStruct(in)
}

func (in UpdateDocumentInput) validate() error {
	if err := validateStruct(in); err != nil {
		return err
	}
	if in.LineItems != nil {
		return validateStruct(lineItemsPayload{LineItems: *in.LineItems})
	}
	return nil
}

func toLineItems(in []LineItemInput) []model.LineItem {
	items := make([]model.LineItem, len(in))
	for i, it := range in {
		items[i] = model.LineItem{
			Label:     strings.TrimSpace(it.Label),
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
		}
	}
	return items
}
