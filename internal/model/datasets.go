package model

import "fmt"

// Dataset names. The six source tables are loaded in this order; the first
// one is the reference table for resource enumeration.
const (
	DatasetGenPriceAS  = "gen_price_as"
	DatasetLoadPriceAS = "load_price_as"
	DatasetDAMGen      = "dam_gen"
	DatasetDAMLoad     = "dam_load"
	DatasetBESSLMPs    = "bess_lmps"
	DatasetRTMPower    = "rtm_pwr"

	// DatasetPriceAS is derived from the generation- and load-side prices.
	DatasetPriceAS = "price_as"
)

var SourceDatasets = []string{
	DatasetGenPriceAS,
	DatasetLoadPriceAS,
	DatasetDAMGen,
	DatasetDAMLoad,
	DatasetBESSLMPs,
	DatasetRTMPower,
}

// Column names.
const (
	ColTimestamp    = "timestamp"
	ColResourceName = "resource_name"

	ColResourceStatus = "resource_status"
	ColNonSpinAwarded = "nonspin_awarded"
	ColRRSAwarded     = "rrs_awarded"
	ColRegUpAwarded   = "regup_awarded"
	ColRegDownAwarded = "regdown_awarded"
	ColMaxPower       = "max_power_consumption_for_load_resource"

	ColNonSpin = "nonspin"
	ColRRS     = "rrs"
	ColRegUp   = "reg_up"
	ColRegDown = "reg_down"

	ColMW      = "MW"
	ColRTMLMPs = "rtm_lmps"
)

// Datasets is an ordered mapping of dataset name to Frame.
type Datasets struct {
	// Fingerprint identifies the source content; equal fingerprints mean
	// equal inputs.
	Fingerprint string

	names  []string
	frames map[string]*Frame
}

func NewDatasets() *Datasets {
	return &Datasets{frames: map[string]*Frame{}}
}

// Add registers a frame. Re-adding a name replaces the frame but keeps its position.
func (d *Datasets) Add(name string, f *Frame) {
	if _, ok := d.frames[name]; !ok {
		d.names = append(d.names, name)
	}
	d.frames[name] = f
}

func (d *Datasets) Names() []string {
	out := make([]string, len(d.names))
	copy(out, d.names)
	return out
}

func (d *Datasets) Get(name string) (*Frame, error) {
	f, ok := d.frames[name]
	if !ok {
		return nil, fmt.Errorf("dataset %q not loaded", name)
	}
	return f, nil
}

// First returns the first loaded frame, or nil when empty.
func (d *Datasets) First() *Frame {
	if len(d.names) == 0 {
		return nil
	}
	return d.frames[d.names[0]]
}
