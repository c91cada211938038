package models

import (
	"math"
	"time"
)

// Number is a JSON number that encodes non-finite values as null.
type Number *float64

// Num wraps v, mapping NaN and ±Inf to null.
func Num(v float64) Number {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

// BatteriesResponse lists the resources and the default selection
type BatteriesResponse struct {
	Batteries []string `json:"batteries"`
	Default   string   `json:"default"`
	// NewBatteries came online after the data starts.
	NewBatteries []string `json:"new_batteries"`
	// Unobserved batteries never report a status.
	Unobserved  []string             `json:"unobserved"`
	OnlineSince map[string]time.Time `json:"online_since"`
}

// StatusResponse is the status timeline of one battery
type StatusResponse struct {
	Battery string      `json:"battery"`
	Runs    []StatusRun `json:"runs"`
}

// StatusRun is one contiguous status stretch, End exclusive
type StatusRun struct {
	Status string    `json:"status"`
	Color  string    `json:"color"`
	Start  time.Time `json:"start"`
	End    time.Time `json:"end"`
	Hours  float64   `json:"hours"`
}

// LineItem is one revenue category total in $
type LineItem struct {
	Name  string `json:"name"`
	Value Number `json:"value"`
}

// BatteryRevenueResponse is one battery's revenue breakdown
type BatteryRevenueResponse struct {
	Battery    string     `json:"battery"`
	Items      []LineItem `json:"items"`
	Total      Number     `json:"total"`
	MaxPowerMW Number     `json:"max_power_mw"`
	TotalPerMW Number     `json:"total_per_mw"`
}

// RankResponse represents the revenue ranking across batteries
type RankResponse struct {
	Mode     string    `json:"mode"`
	Label    string    `json:"label"`
	Unit     string    `json:"unit"`
	Rankings []Ranking `json:"rankings"`
}

// Ranking represents one ranked battery
type Ranking struct {
	Rank       int    `json:"rank"`
	Battery    string `json:"battery"`
	Value      Number `json:"value"`
	Total      Number `json:"total"`
	MaxPowerMW Number `json:"max_power_mw"`
	TotalPerMW Number `json:"total_per_mw"`
}

// VariationResponse summarizes the hourly cross-battery price variation (%)
type VariationResponse struct {
	Kind   string    `json:"kind"`
	Series []Summary `json:"series"`
}

// Summary describes one distribution
type Summary struct {
	Name   string `json:"name"`
	Count  int    `json:"count"`
	Min    Number `json:"min"`
	P25    Number `json:"p25"`
	Median Number `json:"median"`
	P75    Number `json:"p75"`
	Max    Number `json:"max"`
	Mean   Number `json:"mean"`
}

// DatasetInfo describes one loaded table
type DatasetInfo struct {
	Name      string   `json:"name"`
	Rows      int      `json:"rows"`
	Resources int      `json:"resources"`
	Columns   []string `json:"columns"`
}

// DatasetsResponse lists the loaded tables
type DatasetsResponse struct {
	Fingerprint string        `json:"fingerprint"`
	LoadedAt    time.Time     `json:"loaded_at"`
	Datasets    []DatasetInfo `json:"datasets"`
}

// ReloadResponse reports whether a reload picked up new data
type ReloadResponse struct {
	Changed     bool   `json:"changed"`
	Fingerprint string `json:"fingerprint"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information
type ErrorDetail struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}
