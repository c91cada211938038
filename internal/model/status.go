package model

import (
	"fmt"
	"strings"
)

// Status is the operating state a resource reports for an hour.
// Keep these values stable; they are used as chart legend labels and in JSON.
type Status string

const (
	StatusUnknown         Status = "UNKNOWN"
	StatusOut             Status = "OUT"
	StatusOnTest          Status = "ON-TEST"
	StatusOn              Status = "ON"
	StatusOff             Status = "OFF"
	StatusOnRegulation    Status = "ON-REGULATION"
	StatusOnOutageService Status = "ON-OUTAGE-SERVICE"
)

// Statuses lists every known status in legend order.
var Statuses = []Status{
	StatusUnknown,
	StatusOut,
	StatusOnTest,
	StatusOn,
	StatusOff,
	StatusOnRegulation,
	StatusOnOutageService,
}

// statusCodes maps the raw market codes found in the datasets.
var statusCodes = map[string]Status{
	"UNKNOWN STATUS": StatusUnknown,
	"OUT":            StatusOut,
	"ONTEST":         StatusOnTest,
	"ON":             StatusOn,
	"OFF":            StatusOff,
	"ONREG":          StatusOnRegulation,
	"ONOS":           StatusOnOutageService,
}

// StatusError reports a status value outside the fixed label set.
type StatusError struct {
	Value string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unknown resource status %q", e.Value)
}

// ParseStatus maps a raw status value to a Status. An empty value is a
// missing observation and maps to StatusUnknown.
func ParseStatus(raw string) (Status, error) {
	v := strings.TrimSpace(raw)
	if v == "" {
		return StatusUnknown, nil
	}
	if s, ok := statusCodes[strings.ToUpper(v)]; ok {
		return s, nil
	}
	for _, s := range Statuses {
		if strings.EqualFold(v, string(s)) {
			return s, nil
		}
	}
	return "", &StatusError{Value: raw}
}
