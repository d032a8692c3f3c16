package domain

import "time"

// ImportRow is one spreadsheet data line after normalization, held for human
// review before commit. Error is empty when the row can be imported.
type ImportRow struct {
	Index         int        `json:"idx"`
	RegisteredAt  time.Time  `json:"registered_at"`
	Status        Status     `json:"status"`
	ClientName    string     `json:"client_name"`
	Neighborhood  string     `json:"neighborhood"`
	Contact       string     `json:"contact"`
	City          string     `json:"city"`
	CityRaw       string     `json:"city_raw"`
	Region        Region     `json:"region"`
	RegionRaw     string     `json:"region_raw"`
	PickupDate    *time.Time `json:"pickup_date,omitempty"`
	PickupText    string     `json:"pickup_text,omitempty"`
	AttendantName string     `json:"attendant_name"`
	Motive        Motive     `json:"motive,omitempty"`
	MotiveRaw     string     `json:"motive_raw,omitempty"`
	Notes         string     `json:"notes,omitempty"`
	Error         string     `json:"error,omitempty"`
}

func (r *ImportRow) Valid() bool {
	return r.Error == ""
}
