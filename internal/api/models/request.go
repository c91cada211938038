package models

// BatteryURI binds the battery name path parameter.
type BatteryURI struct {
	Name string `uri:"name" binding:"required"`
}

// VariationURI binds the price family path parameter.
type VariationURI struct {
	Kind string `uri:"kind" binding:"required,oneof=energy ancillary"`
}

// RevenueQuery selects the revenue metric: "total" ($, default) or "per_mw"
// ($/MW). "$" and "$/MW" are accepted too.
type RevenueQuery struct {
	Mode string `form:"mode"`
}
