package service

import (
	"strings"
	"unicode/utf8"

	"github.com/dafibh/drivelog/drivelog-backend/internal/domain"
	"github.com/shopspring/decimal"
)

// normalizeCategory trims the category and enforces the length limit
func normalizeCategory(category string) (string, error) {
	category = strings.TrimSpace(category)
	if category == "" {
		return "", domain.ErrCategoryRequired
	}
	if utf8.RuneCountInString(category) > domain.MaxCategoryLength {
		return "", domain.ErrCategoryTooLong
	}
	return category, nil
}

// normalizeDescription trims an optional description, dropping it when blank
func normalizeDescription(description *string) (*string, error) {
	if description == nil {
		return nil, nil
	}
	trimmed := strings.TrimSpace(*description)
	if trimmed == "" {
		return nil, nil
	}
	if utf8.RuneCountInString(trimmed) > domain.MaxDescriptionSize {
		return nil, domain.ErrDescriptionTooLong
	}
	return &trimmed, nil
}

func requirePositive(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return domain.ErrInvalidAmount
	}
	return nil
}

func requireNonNegative(values ...decimal.Decimal) error {
	for _, v := range values {
		if v.IsNegative() {
			return domain.ErrNegativeValue
		}
	}
	return nil
}

func requireNonNegativeInts(values ...int32) error {
	for _, v := range values {
		if v < 0 {
			return domain.ErrNegativeValue
		}
	}
	return nil
}
