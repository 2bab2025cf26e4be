package http

import (
	"embed"
	"html/template"
	"net/http"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"fraudcheck/fraud"
)

//go:embed templates/index.html
var templateFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/index.html"))

var amountPrinter = message.NewPrinter(language.English)

var fieldLabels = map[string]string{
	"card_number":        "Credit Card Number",
	"amount":             "Transaction Amount",
	"merchant_id":        "Merchant ID",
	"category":           "Category",
	"gender":             "Gender",
	"customer_latitude":  "Customer Latitude",
	"customer_longitude": "Customer Longitude",
	"city_population":    "City Population",
	"job_id":             "Job ID",
	"transaction_date":   "Transaction Date",
	"transaction_hour":   "Hour",
	"merchant_latitude":  "Merchant Latitude",
	"merchant_longitude": "Merchant Longitude",
}

// formValues are the submitted fields, echoed back into the form on re-render.
type formValues struct {
	CardNumber     string
	Amount         string
	Date           string
	Hour           string
	Gender         string
	CustomerLat    string
	CustomerLong   string
	CityPopulation string
	MerchantID     string
	Category       string
	MerchantLat    string
	MerchantLong   string
	JobID          string
}

func readForm(r *http.Request) formValues {
	get := func(key string) string {
		return strings.TrimSpace(r.PostFormValue(key))
	}
	return formValues{
		CardNumber:     get("card_number"),
		Amount:         get("amount"),
		Date:           get("transaction_date"),
		Hour:           get("transaction_hour"),
		Gender:         get("gender"),
		CustomerLat:    get("customer_latitude"),
		CustomerLong:   get("customer_longitude"),
		CityPopulation: get("city_population"),
		MerchantID:     get("merchant_id"),
		Category:       get("category"),
		MerchantLat:    get("merchant_latitude"),
		MerchantLong:   get("merchant_longitude"),
		JobID:          get("job_id"),
	}
}

// missingRequired returns the labels of the required fields left empty.
func (f formValues) missingRequired() []string {
	var labels []string
	for _, field := range f.raw().MissingRequired() {
		labels = append(labels, fieldLabels[field])
	}
	return labels
}

func (f formValues) raw() fraud.RawTransaction {
	return fraud.RawTransaction{
		CardNumber:     f.CardNumber,
		Amount:         f.Amount,
		MerchantID:     f.MerchantID,
		Category:       f.Category,
		Gender:         f.Gender,
		CustomerLat:    f.CustomerLat,
		CustomerLong:   f.CustomerLong,
		CityPopulation: f.CityPopulation,
		JobID:          f.JobID,
		Date:           f.Date,
		Hour:           f.Hour,
		MerchantLat:    f.MerchantLat,
		MerchantLong:   f.MerchantLong,
	}
}

type pageData struct {
	Form       formValues
	Categories []string
	Genders    []string
	Hours      []string
	Notice     string
	Error      string
	Result     *resultView
}

func newPage(form formValues) *pageData {
	categories := make([]string, 0, len(fraud.Categories()))
	for _, c := range fraud.Categories() {
		categories = append(categories, c.String())
	}
	genders := []string{fraud.GenderPlaceholder}
	for _, g := range fraud.Genders() {
		genders = append(genders, g.String())
	}
	hours := make([]string, 24)
	for i := range hours {
		hours[i] = strconv.Itoa(i)
	}
	return &pageData{
		Form:       form,
		Categories: categories,
		Genders:    genders,
		Hours:      hours,
	}
}

type summaryItem struct {
	Label string
	Value string
}

type resultView struct {
	Fraudulent bool
	Title      string
	Message    string
	Heading    string
	Actions    []string
	Summary    []summaryItem
}

func newResultView(result *fraud.Result, tx fraud.Transaction, form formValues, loc *time.Location) *resultView {
	view := &resultView{Fraudulent: result.Verdict.IsFraud()}
	if view.Fraudulent {
		view.Title = "FRAUDULENT TRANSACTION DETECTED"
		view.Message = "This transaction has been flagged as potentially fraudulent."
		view.Heading = "Recommended actions:"
		view.Actions = []string{
			"Verify the transaction with the cardholder",
			"Check for unusual patterns",
			"Consider blocking the card temporarily",
		}
	} else {
		view.Title = "LEGITIMATE TRANSACTION"
		view.Message = "This transaction appears to be normal and legitimate."
		view.Actions = []string{
			"Risk level: Low",
			"Transaction can be processed",
		}
	}

	category := tx.Category
	if category == fraud.CategoryUnset {
		category = fraud.CategoryRetail
	}
	view.Summary = []summaryItem{
		{Label: "Card", Value: fraud.MaskCardNumber(form.CardNumber)},
		{Label: "Amount", Value: formatAmount(tx.Amount)},
		{Label: "Category", Value: category.String()},
		{Label: "Time", Value: time.Unix(result.Timestamp, 0).In(loc).Format("2006-01-02 15:04 MST")},
	}
	return view
}

func formatAmount(amount float64) string {
	return amountPrinter.Sprintf("$%.2f", amount)
}
