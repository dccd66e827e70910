package models

// Zone represents one row of the taxi zone lookup table
type Zone struct {
	LocationID  int    `json:"location_id" db:"location_id"`
	Borough     string `json:"borough" db:"borough"`
	Name        string `json:"zone" db:"zone"`
	ServiceZone string `json:"service_zone,omitempty" db:"service_zone"`
}

// Column names of the zone lookup file
const (
	ColZoneLocationID  = "LocationID"
	ColZoneBorough     = "Borough"
	ColZoneName        = "Zone"
	ColZoneServiceZone = "service_zone"
)

// RequiredZoneColumns lists the columns the zone file must carry
var RequiredZoneColumns = []string{ColZoneLocationID, ColZoneBorough, ColZoneName}
