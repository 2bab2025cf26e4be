package fraud

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoryCodes(t *testing.T) {
	tests := []struct {
		label string
		want  int
	}{
		{"Retail", 0},
		{"Grocery", 1},
		{"Entertainment", 2},
		{"Travel", 3},
		{"Restaurant", 4},
		{"Other", 5},
		{"grocery", 1},
		{"  TRAVEL ", 3},
		{"", 0},
	}
	for _, tt := range tests {
		category, err := ParseCategory(tt.label)
		require.NoError(t, err, tt.label)
		assert.Equal(t, tt.want, category.Code(), tt.label)
	}

	assert.Equal(t, 0, CategoryUnset.Code())
	assert.Equal(t, 0, Category(42).Code())
	for _, c := range Categories() {
		assert.GreaterOrEqual(t, c.Code(), 0)
		assert.LessOrEqual(t, c.Code(), 5)
	}
}

func TestParseCategoryRejectsUnknown(t *testing.T) {
	_, err := ParseCategory("Gambling")
	assert.ErrorIs(t, err, ErrUnknownLabel)
	assert.Equal(t, KindInputParse, Kind(err))
}

func TestGenderCodes(t *testing.T) {
	tests := []struct {
		label string
		want  int
	}{
		{"Male", 1},
		{"male", 1},
		{"Female", 0},
		{"", 0},
		{GenderPlaceholder, 0},
	}
	for _, tt := range tests {
		gender, err := ParseGender(tt.label)
		require.NoError(t, err, tt.label)
		assert.Equal(t, tt.want, gender.Code(), tt.label)
	}

	_, err := ParseGender("Robot")
	assert.ErrorIs(t, err, ErrUnknownLabel)
}

func TestRawTransactionParse(t *testing.T) {
	raw := RawTransaction{
		CardNumber:     "4111 1111-1111 1111",
		Amount:         "125.50",
		MerchantID:     "42",
		Category:       "Grocery",
		Gender:         "Female",
		CustomerLat:    "40.7128",
		CustomerLong:   "-74.0060",
		CityPopulation: "8000000",
		JobID:          "7",
		Date:           "2025-03-15",
		Hour:           "14",
		MerchantLat:    "40.70",
		MerchantLong:   "-74.01",
	}

	tx, err := raw.Parse()
	require.NoError(t, err)
	assert.Equal(t, 4111111111111111.0, tx.CardNumber)
	assert.Equal(t, 125.5, tx.Amount)
	assert.Equal(t, int64(42), tx.MerchantID)
	assert.Equal(t, CategoryGrocery, tx.Category)
	assert.Equal(t, GenderFemale, tx.Gender)
	assert.Equal(t, int64(8000000), tx.CityPopulation)
	assert.Equal(t, 14, tx.Hour)
	assert.Equal(t, 15, tx.Date.Day())
}

func TestRawTransactionParseDefaults(t *testing.T) {
	tx, err := RawTransaction{CardNumber: "123", Amount: "1", Date: "2025-01-01"}.Parse()
	require.NoError(t, err)
	assert.Equal(t, DefaultHour, tx.Hour)
	assert.Equal(t, CategoryUnset, tx.Category)
	assert.Equal(t, GenderUnset, tx.Gender)
	assert.Zero(t, tx.MerchantID)
	assert.Zero(t, tx.CustomerLat)
}

func TestRawTransactionParseErrors(t *testing.T) {
	valid := RawTransaction{CardNumber: "4111111111111111", Amount: "10", Date: "2025-01-01", Hour: "3"}

	tests := []struct {
		name   string
		mutate func(r *RawTransaction)
		field  string
		target error
	}{
		{"empty card", func(r *RawTransaction) { r.CardNumber = " " }, "card_number", ErrRequired},
		{"letters in card", func(r *RawTransaction) { r.CardNumber = "4111abcd" }, "card_number", ErrNotNumeric},
		{"exponent card", func(r *RawTransaction) { r.CardNumber = "1e5" }, "card_number", ErrNotNumeric},
		{"amount text", func(r *RawTransaction) { r.Amount = "ten" }, "amount", ErrNotNumeric},
		{"amount nan", func(r *RawTransaction) { r.Amount = "NaN" }, "amount", ErrNotNumeric},
		{"negative amount", func(r *RawTransaction) { r.Amount = "-1" }, "amount", ErrOutOfRange},
		{"merchant float", func(r *RawTransaction) { r.MerchantID = "1.5" }, "merchant_id", ErrNotNumeric},
		{"negative population", func(r *RawTransaction) { r.CityPopulation = "-3" }, "city_population", ErrOutOfRange},
		{"hour too large", func(r *RawTransaction) { r.Hour = "24" }, "transaction_hour", ErrOutOfRange},
		{"missing date", func(r *RawTransaction) { r.Date = "" }, "transaction_date", ErrRequired},
		{"latitude", func(r *RawTransaction) { r.CustomerLat = "91" }, "customer_latitude", ErrOutOfRange},
		{"merchant longitude", func(r *RawTransaction) { r.MerchantLong = "-181" }, "merchant_longitude", ErrOutOfRange},
		{"category", func(r *RawTransaction) { r.Category = "Crypto" }, "category", ErrUnknownLabel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := valid
			tt.mutate(&raw)
			_, err := raw.Parse()
			require.Error(t, err)

			var inputErr *InputError
			require.ErrorAs(t, err, &inputErr)
			assert.Equal(t, tt.field, inputErr.Field)
			assert.ErrorIs(t, err, tt.target)
		})
	}
}

func TestRawTransactionParseBadDateFormat(t *testing.T) {
	_, err := RawTransaction{CardNumber: "1", Amount: "1", Date: "15/03/2025"}.Parse()
	var inputErr *InputError
	require.ErrorAs(t, err, &inputErr)
	assert.Equal(t, "transaction_date", inputErr.Field)
}

func TestCardNumberErrorIsMasked(t *testing.T) {
	_, err := RawTransaction{CardNumber: "4111 1111 1111 111x", Amount: "1", Date: "2025-01-01"}.Parse()
	require.Error(t, err)

	var inputErr *InputError
	require.ErrorAs(t, err, &inputErr)
	assert.Equal(t, "card_number", inputErr.Field)
	assert.Equal(t, "•••• 1111", inputErr.Value)
	assert.NotContains(t, err.Error(), "4111 1111")
	assert.NotContains(t, err.Error(), "411111111111111")
}

func TestMaskCardNumber(t *testing.T) {
	assert.Equal(t, "•••• 1111", MaskCardNumber("4111-1111 1111 1111"))
	assert.Equal(t, "•••• 12", MaskCardNumber("12"))
	assert.Equal(t, "•••• ", MaskCardNumber("abcd"))
}

func TestMissingRequired(t *testing.T) {
	tests := []struct {
		name string
		raw  RawTransaction
		want []string
	}{
		{"complete", RawTransaction{CardNumber: "4111", Amount: "12.5"}, nil},
		{"no card", RawTransaction{Amount: "12.5"}, []string{"card_number"}},
		{"blank card", RawTransaction{CardNumber: "  ", Amount: "12.5"}, []string{"card_number"}},
		{"no amount", RawTransaction{CardNumber: "4111"}, []string{"amount"}},
		{"zero amount", RawTransaction{CardNumber: "4111", Amount: "0.00"}, []string{"amount"}},
		{"both", RawTransaction{}, []string{"card_number", "amount"}},
		// left to Parse, which reports it as not numeric
		{"bad amount", RawTransaction{CardNumber: "4111", Amount: "ten"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.raw.MissingRequired())
		})
	}
}
