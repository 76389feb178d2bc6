package handler

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/dafibh/drivelog/drivelog-backend/internal/domain"
	"github.com/dafibh/drivelog/drivelog-backend/internal/util"
	"github.com/shopspring/decimal"
)

// fieldErrors maps domain validation failures to the request field they concern
var fieldErrors = []struct {
	err     error
	field   string
	message string
}{
	{domain.ErrInvalidDate, "data", "Must be a valid date (YYYY-MM-DD)"},
	{domain.ErrInvalidAmount, "valor", "Amount must be greater than zero"},
	{domain.ErrNegativeValue, "values", "Values must not be negative"},
	{domain.ErrCategoryRequired, "categoria", "Category is required"},
	{domain.ErrCategoryTooLong, "categoria", "Category must be 100 characters or less"},
	{domain.ErrDescriptionTooLong, "descricao", "Description must be 255 characters or less"},
	{domain.ErrModelRequired, "modelo", "Vehicle model is required"},
	{domain.ErrModelTooLong, "modelo", "Vehicle model must be 255 characters or less"},
	{domain.ErrInvalidPeriod, "period", "Invalid period"},
}

// validationFor returns the field errors of a domain validation failure, nil
// when err is not one
func validationFor(err error) []ValidationError {
	for _, fe := range fieldErrors {
		if errors.Is(err, fe.err) {
			return []ValidationError{{Field: fe.field, Message: fe.message}}
		}
	}
	return nil
}

// decimalParser collects field errors while parsing decimal strings
type decimalParser struct {
	errs []ValidationError
}

// optional parses a decimal, treating an empty value as zero
func (p *decimalParser) optional(field, value string) decimal.Decimal {
	if strings.TrimSpace(value) == "" {
		return decimal.Zero
	}
	return p.required(field, value)
}

func (p *decimalParser) required(field, value string) decimal.Decimal {
	d, err := decimal.NewFromString(strings.TrimSpace(value))
	if err != nil {
		p.errs = append(p.errs, ValidationError{Field: field, Message: "Must be a valid decimal number"})
		return decimal.Zero
	}
	return d
}

// parseOptionalDate parses a YYYY-MM-DD value, returning nil when it is empty
func parseOptionalDate(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	date, err := util.ParseDate(value)
	if err != nil {
		return nil, err
	}
	return &date, nil
}

// dateOrToday parses a YYYY-MM-DD query value, defaulting to today
func dateOrToday(value string) (time.Time, error) {
	if value == "" {
		return util.Today(), nil
	}
	return util.ParseDate(value)
}

func parseID(value string) (int32, error) {
	id, err := strconv.ParseInt(value, 10, 32)
	if err != nil {
		return 0, err
	}
	return int32(id), nil
}

func formatOptionalDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := util.FormatDate(*t)
	return &s
}
