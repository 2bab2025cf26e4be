package fraud

import (
	"math"
	"strings"
	"time"

	"golang.org/x/text/cases"
)

// Category is the merchant category picked on the form.
type Category int

const (
	CategoryUnset Category = iota
	CategoryRetail
	CategoryGrocery
	CategoryEntertainment
	CategoryTravel
	CategoryRestaurant
	CategoryOther
)

// Categories lists the selectable categories in form order.
func Categories() []Category {
	return []Category{
		CategoryRetail,
		CategoryGrocery,
		CategoryEntertainment,
		CategoryTravel,
		CategoryRestaurant,
		CategoryOther,
	}
}

// Code is the integer the classifier was trained on.
func (c Category) Code() int {
	switch c {
	case CategoryRetail:
		return 0
	case CategoryGrocery:
		return 1
	case CategoryEntertainment:
		return 2
	case CategoryTravel:
		return 3
	case CategoryRestaurant:
		return 4
	case CategoryOther:
		return 5
	default:
		return 0
	}
}

func (c Category) String() string {
	switch c {
	case CategoryRetail:
		return "Retail"
	case CategoryGrocery:
		return "Grocery"
	case CategoryEntertainment:
		return "Entertainment"
	case CategoryTravel:
		return "Travel"
	case CategoryRestaurant:
		return "Restaurant"
	case CategoryOther:
		return "Other"
	default:
		return ""
	}
}

// ParseCategory matches a label case-insensitively. An empty label is
// CategoryUnset; any other unknown label is rejected.
func ParseCategory(label string) (Category, error) {
	folded := fold(label)
	if folded == "" {
		return CategoryUnset, nil
	}
	for _, c := range Categories() {
		if fold(c.String()) == folded {
			return c, nil
		}
	}
	return CategoryUnset, inputError("category", label, ErrUnknownLabel)
}

// Gender is the cardholder gender picked on the form.
type Gender int

const (
	GenderUnset Gender = iota
	GenderMale
	GenderFemale
)

// GenderPlaceholder is the form's "nothing selected" option.
const GenderPlaceholder = "Select Gender"

func Genders() []Gender {
	return []Gender{GenderMale, GenderFemale}
}

func (g Gender) Code() int {
	switch g {
	case GenderMale:
		return 1
	case GenderFemale:
		return 0
	default:
		return 0
	}
}

func (g Gender) String() string {
	switch g {
	case GenderMale:
		return "Male"
	case GenderFemale:
		return "Female"
	default:
		return ""
	}
}

func ParseGender(label string) (Gender, error) {
	folded := fold(label)
	if folded == "" || folded == fold(GenderPlaceholder) {
		return GenderUnset, nil
	}
	for _, g := range Genders() {
		if fold(g.String()) == folded {
			return g, nil
		}
	}
	return GenderUnset, inputError("gender", label, ErrUnknownLabel)
}

// Transaction is one form submission after parsing. Date carries only the
// calendar day; Hour supplies the time of day.
type Transaction struct {
	CardNumber     float64
	Amount         float64
	MerchantID     int64
	Category       Category
	Gender         Gender
	CustomerLat    float64
	CustomerLong   float64
	CityPopulation int64
	JobID          int64
	Date           time.Time
	Hour           int
	MerchantLat    float64
	MerchantLong   float64
}

// Validate applies the range checks every submission must pass.
func (t Transaction) Validate() error {
	switch {
	case !finite(t.CardNumber) || t.CardNumber < 0:
		return inputError("card_number", "", ErrOutOfRange)
	case !finite(t.Amount) || t.Amount < 0:
		return inputError("amount", "", ErrOutOfRange)
	case t.MerchantID < 0:
		return inputError("merchant_id", "", ErrOutOfRange)
	case t.CityPopulation < 0:
		return inputError("city_population", "", ErrOutOfRange)
	case t.JobID < 0:
		return inputError("job_id", "", ErrOutOfRange)
	case t.Hour < 0 || t.Hour > 23:
		return inputError("transaction_hour", "", ErrOutOfRange)
	case t.Date.IsZero():
		return inputError("transaction_date", "", ErrRequired)
	case !validLatitude(t.CustomerLat):
		return inputError("customer_latitude", "", ErrOutOfRange)
	case !validLongitude(t.CustomerLong):
		return inputError("customer_longitude", "", ErrOutOfRange)
	case !validLatitude(t.MerchantLat):
		return inputError("merchant_latitude", "", ErrOutOfRange)
	case !validLongitude(t.MerchantLong):
		return inputError("merchant_longitude", "", ErrOutOfRange)
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func validLatitude(v float64) bool {
	return v >= -90 && v <= 90
}

func validLongitude(v float64) bool {
	return v >= -180 && v <= 180
}

func fold(s string) string {
	return cases.Fold().String(strings.TrimSpace(s))
}
