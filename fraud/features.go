package fraud

import "time"

// NumFeatures is the row width the classifier was trained on.
const NumFeatures = 15

// FeatureVector is one model input row. Its order must match FeatureNames;
// a reordered row still scores, just wrongly.
type FeatureVector [NumFeatures]float64

func FeatureNames() []string {
	return []string{
		"card_number",
		"merchant_id",
		"category_code",
		"amount",
		"gender_code",
		"customer_latitude",
		"customer_longitude",
		"city_population",
		"job_id",
		"unix_timestamp",
		"merchant_latitude",
		"merchant_longitude",
		"hour",
		"day_of_month",
		"month",
	}
}

// UnixTimestamp is midnight of date in loc plus hour whole hours.
func UnixTimestamp(date time.Time, hour int, loc *time.Location) int64 {
	if loc == nil {
		loc = time.UTC
	}
	midnight := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, loc)
	return midnight.Unix() + int64(hour)*3600
}

func BuildFeatureVector(tx Transaction, loc *time.Location) FeatureVector {
	return FeatureVector{
		tx.CardNumber,
		float64(tx.MerchantID),
		float64(tx.Category.Code()),
		tx.Amount,
		float64(tx.Gender.Code()),
		tx.CustomerLat,
		tx.CustomerLong,
		float64(tx.CityPopulation),
		float64(tx.JobID),
		float64(UnixTimestamp(tx.Date, tx.Hour, loc)),
		tx.MerchantLat,
		tx.MerchantLong,
		float64(tx.Hour),
		float64(tx.Date.Day()),
		float64(tx.Date.Month()),
	}
}

// Row returns the vector as a fresh slice for the ml package.
func (v FeatureVector) Row() []float64 {
	row := make([]float64, NumFeatures)
	copy(row, v[:])
	return row
}
