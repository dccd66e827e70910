package models

import "time"

// TripRecord represents one row of the trips view: a raw taxi trip plus the
// fields derived from it at query time
type TripRecord struct {
	// Raw columns
	PickupTime      time.Time `json:"pickup_time" db:"tpep_pickup_datetime"`
	DropoffTime     time.Time `json:"dropoff_time" db:"tpep_dropoff_datetime"`
	PickupLocation  int64     `json:"pickup_location_id" db:"PULocationID"`
	DropoffLocation int64     `json:"dropoff_location_id" db:"DOLocationID"`
	TripDistance    float64   `json:"trip_distance" db:"trip_distance"` // Miles
	FareAmount      float64   `json:"fare_amount" db:"fare_amount"`
	TotalAmount     float64   `json:"total_amount" db:"total_amount"`
	PaymentType     int64     `json:"payment_type" db:"payment_type"`

	// Derived columns
	DurationMinutes int64   `json:"trip_duration_minutes" db:"trip_duration_minutes"`
	SpeedMph        float64 `json:"trip_speed_mph" db:"trip_speed_mph"` // 0 when duration is 0
	PickupHour      int64   `json:"pickup_hour" db:"pickup_hour"`       // 0-23
	PickupDOW       int64   `json:"pickup_dow" db:"pickup_dow"`         // ISO weekday, 1 = Monday
	PickupDayName   string  `json:"pickup_day_of_week" db:"pickup_day_of_week"`
}

// DateBounds is the first and last pickup date present in the trips view
type DateBounds struct {
	MinDate time.Time `json:"min_date" db:"min_date"`
	MaxDate time.Time `json:"max_date" db:"max_date"`
}

// Column names of the raw trip file
const (
	ColPickupTime      = "tpep_pickup_datetime"
	ColDropoffTime     = "tpep_dropoff_datetime"
	ColPickupLocation  = "PULocationID"
	ColDropoffLocation = "DOLocationID"
	ColTripDistance    = "trip_distance"
	ColFareAmount      = "fare_amount"
	ColTotalAmount     = "total_amount"
	ColPaymentType     = "payment_type"
)

// RequiredTripColumns lists the columns the trip file must carry
var RequiredTripColumns = []string{
	ColPickupTime,
	ColDropoffTime,
	ColPickupLocation,
	ColDropoffLocation,
	ColTripDistance,
	ColFareAmount,
	ColTotalAmount,
	ColPaymentType,
}

// Admission bounds for the trips view
const (
	MaxFareAmount     = 500.0
	MaxHistogramMiles = 30.0
	HistogramBinMiles = 0.5
	TopZonesLimit     = 10
)
