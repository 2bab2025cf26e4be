package fraud

import (
	"math"
	"strconv"
	"strings"
	"time"
)

const (
	// DateLayout is the layout of the transaction_date form field.
	DateLayout = "2006-01-02"

	// DefaultHour is used when the hour field is left empty.
	DefaultHour = 12
)

// RawTransaction holds the form fields exactly as submitted.
type RawTransaction struct {
	CardNumber     string
	Amount         string
	MerchantID     string
	Category       string
	Gender         string
	CustomerLat    string
	CustomerLong   string
	CityPopulation string
	JobID          string
	Date           string
	Hour           string
	MerchantLat    string
	MerchantLong   string
}

// Parse converts the raw fields and applies Validate. Empty numeric fields
// other than the card number read as zero.
func (r RawTransaction) Parse() (Transaction, error) {
	var (
		tx  Transaction
		err error
	)

	if tx.CardNumber, err = parseCardNumber(r.CardNumber); err != nil {
		return Transaction{}, err
	}
	if tx.Amount, err = parseFloat("amount", r.Amount); err != nil {
		return Transaction{}, err
	}
	if tx.MerchantID, err = parseInt("merchant_id", r.MerchantID); err != nil {
		return Transaction{}, err
	}
	if tx.Category, err = ParseCategory(r.Category); err != nil {
		return Transaction{}, err
	}
	if tx.Gender, err = ParseGender(r.Gender); err != nil {
		return Transaction{}, err
	}
	if tx.CustomerLat, err = parseFloat("customer_latitude", r.CustomerLat); err != nil {
		return Transaction{}, err
	}
	if tx.CustomerLong, err = parseFloat("customer_longitude", r.CustomerLong); err != nil {
		return Transaction{}, err
	}
	if tx.CityPopulation, err = parseInt("city_population", r.CityPopulation); err != nil {
		return Transaction{}, err
	}
	if tx.JobID, err = parseInt("job_id", r.JobID); err != nil {
		return Transaction{}, err
	}
	if tx.Date, err = parseDate(r.Date); err != nil {
		return Transaction{}, err
	}
	if tx.Hour, err = parseHour(r.Hour); err != nil {
		return Transaction{}, err
	}
	if tx.MerchantLat, err = parseFloat("merchant_latitude", r.MerchantLat); err != nil {
		return Transaction{}, err
	}
	if tx.MerchantLong, err = parseFloat("merchant_longitude", r.MerchantLong); err != nil {
		return Transaction{}, err
	}

	if err := tx.Validate(); err != nil {
		return Transaction{}, err
	}
	return tx, nil
}

// MissingRequired returns the fields that must be filled in before a
// transaction is analyzed: the card number, and an amount that is not zero.
func (r RawTransaction) MissingRequired() []string {
	var missing []string
	if strings.TrimSpace(r.CardNumber) == "" {
		missing = append(missing, "card_number")
	}
	amount := strings.TrimSpace(r.Amount)
	if value, err := strconv.ParseFloat(amount, 64); amount == "" || (err == nil && value == 0) {
		missing = append(missing, "amount")
	}
	return missing
}

// MaskCardNumber keeps only the last four digits of a card number.
func MaskCardNumber(raw string) string {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, raw)
	if len(digits) > 4 {
		digits = digits[len(digits)-4:]
	}
	return "•••• " + digits
}

// parseCardNumber accepts digits with optional space or dash grouping.
// Errors carry the masked number only.
func parseCardNumber(raw string) (float64, error) {
	digits := strings.Map(func(r rune) rune {
		if r == ' ' || r == '-' {
			return -1
		}
		return r
	}, strings.TrimSpace(raw))
	if digits == "" {
		return 0, inputError("card_number", "", ErrRequired)
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return 0, inputError("card_number", MaskCardNumber(raw), ErrNotNumeric)
		}
	}
	value, err := strconv.ParseFloat(digits, 64)
	if err != nil {
		return 0, inputError("card_number", MaskCardNumber(raw), ErrNotNumeric)
	}
	return value, nil
}

func parseFloat(field, raw string) (float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, inputError(field, raw, ErrNotNumeric)
	}
	return value, nil
}

func parseInt(field, raw string) (int64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, inputError(field, raw, ErrNotNumeric)
	}
	return value, nil
}

func parseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, inputError("transaction_date", raw, ErrRequired)
	}
	date, err := time.Parse(DateLayout, raw)
	if err != nil {
		return time.Time{}, inputError("transaction_date", raw, err)
	}
	return date, nil
}

func parseHour(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return DefaultHour, nil
	}
	hour, err := strconv.Atoi(raw)
	if err != nil {
		return 0, inputError("transaction_hour", raw, ErrNotNumeric)
	}
	if hour < 0 || hour > 23 {
		return 0, inputError("transaction_hour", raw, ErrOutOfRange)
	}
	return hour, nil
}
