package handlers

import (
	"strings"
)

type ItemValidationError struct {
	Field       string `json:"field"`
	Description string `json:"description"`
}

func validateItem(req ItemRequest) []ItemValidationError {
	errs := []ItemValidationError{}
	if strings.TrimSpace(req.Name) == "" {
		errs = append(errs, ItemValidationError{Field: "Name", Description: "Name is required"})
	}
	if strings.TrimSpace(req.Category) == "" {
		errs = append(errs, ItemValidationError{Field: "Category", Description: "Category is required"})
	}
	if strings.TrimSpace(req.Unit) == "" {
		errs = append(errs, ItemValidationError{Field: "Unit", Description: "Unit is required"})
	}
	if req.Quantity < 0 {
		errs = append(errs, ItemValidationError{Field: "Quantity", Description: "Quantity cannot be negative"})
	}
	if req.UnitPrice < 0 {
		errs = append(errs, ItemValidationError{Field: "UnitPrice", Description: "Unit price cannot be negative"})
	}
	return errs
}
