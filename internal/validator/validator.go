// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"milyem/internal/costing"
)

// validCurrencies contains the ISO 4217 currency codes the API accepts for
// market-rate snapshots.
var validCurrencies = map[string]bool{
	"AED": true, "AUD": true, "BGN": true, "BRL": true, "CAD": true,
	"CHF": true, "CNY": true, "CZK": true, "DKK": true, "EGP": true,
	"EUR": true, "GBP": true, "HKD": true, "HUF": true, "IDR": true,
	"ILS": true, "INR": true, "JPY": true, "KRW": true, "KWD": true,
	"MXN": true, "MYR": true, "NOK": true, "NZD": true, "PLN": true,
	"QAR": true, "RON": true, "RSD": true, "RUB": true, "SAR": true,
	"SEK": true, "SGD": true, "THB": true, "TRY": true, "TWD": true,
	"UAH": true, "USD": true, "VND": true, "ZAR": true,
}

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("iso4217", validateISO4217)
		_ = v.RegisterValidation("karat", validateKarat)
		_ = v.RegisterValidation("labor_unit", validateLaborUnit)
		_ = v.RegisterValidation("stone_category", validateStoneCategory)
		_ = v.RegisterValidation("pricing_mode", validatePricingMode)
		_ = v.RegisterValidation("rate_source", validateRateSource)
	}
}

func validateISO4217(fl validator.FieldLevel) bool {
	return validCurrencies[fl.Field().String()]
}

func validateKarat(fl validator.FieldLevel) bool {
	_, ok := costing.PurityFactor(fl.Field().String())
	return ok
}

func validateLaborUnit(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "currency", "gold_grams":
		return true
	}
	return false
}

func validateStoneCategory(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "diamond", "colored":
		return true
	}
	return false
}

func validatePricingMode(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "per_stone", "per_carat":
		return true
	}
	return false
}

func validateRateSource(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "manual", "fetched":
		return true
	}
	return false
}
