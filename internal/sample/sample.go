// Package sample builds a deterministic synthetic market dataset with the same
// shape as the real extracts. It backs cmd/sample and the package tests.
package sample

import (
	"math"
	"time"

	"bess-dashboard/internal/model"
)

type Options struct {
	Start time.Time
	Hours int
	// Resources are battery names; the default is three batteries.
	Resources []string
	// LateStart maps a resource to the first hour it reports a status.
	LateStart map[string]int
	// IntervalsPerHour is the real-time granularity of rtm_pwr and bess_lmps.
	IntervalsPerHour int
	// MaxPowerMW maps a resource to its declared max power consumption.
	MaxPowerMW map[string]float64
}

func DefaultOptions() Options {
	return Options{
		Start:            time.Date(2021, 1, 1, 6, 0, 0, 0, time.UTC),
		Hours:            24 * 14,
		Resources:        []string{"BATT_ALPHA", "BATT_BRAVO", "BATT_CHARLIE"},
		LateStart:        map[string]int{"BATT_CHARLIE": 24 * 3},
		IntervalsPerHour: 4,
		MaxPowerMW:       map[string]float64{"BATT_ALPHA": 10, "BATT_BRAVO": 9.95, "BATT_CHARLIE": 50},
	}
}

// Generate returns the six source datasets plus the merged price_as table.
func Generate(opts Options) *model.Datasets {
	if opts.IntervalsPerHour <= 0 {
		opts.IntervalsPerHour = 1
	}

	genPrice := model.NewFrame(model.DatasetGenPriceAS)
	loadPrice := model.NewFrame(model.DatasetLoadPriceAS)
	for _, f := range []*model.Frame{genPrice, loadPrice} {
		for _, c := range []string{model.ColNonSpin, model.ColRRS, model.ColRegUp, model.ColRegDown} {
			f.AddFloatColumn(c)
		}
	}

	damGen := model.NewFrame(model.DatasetDAMGen)
	damGen.AddStringColumn(model.ColResourceStatus)
	damGen.AddFloatColumn(model.ColNonSpinAwarded)
	damGen.AddFloatColumn(model.ColRRSAwarded)
	damGen.AddFloatColumn(model.ColRegUpAwarded)

	damLoad := model.NewFrame(model.DatasetDAMLoad)
	damLoad.AddFloatColumn(model.ColRegDownAwarded)
	damLoad.AddFloatColumn(model.ColMaxPower)

	lmps := model.NewFrame(model.DatasetBESSLMPs)
	lmps.AddFloatColumn(model.ColRTMLMPs)

	rtm := model.NewFrame(model.DatasetRTMPower)
	rtm.AddFloatColumn(model.ColMW)

	for h := 0; h < opts.Hours; h++ {
		ts := opts.Start.Add(time.Duration(h) * time.Hour)
		hod := ts.Hour()

		for ri, res := range opts.Resources {
			k := model.NewKey(ts, res)
			online := h >= opts.LateStart[res]

			// Ancillary prices are system-wide: identical for every resource.
			prices := asPrices(h)
			for c, v := range prices {
				_ = genPrice.SetFloat(k, c, v)
				_ = loadPrice.SetFloat(k, c, v)
			}
			if h%5 == 0 {
				// The generation side misses some hours; the load side has them.
				_ = genPrice.SetFloat(k, model.ColRegUp, math.NaN())
			}

			status := ""
			awards := [3]float64{}
			regDown := 0.0
			if online {
				status = statusFor(h, hod, ri)
				if status == "ONREG" {
					awards = [3]float64{0, 1, 2 + float64(ri)}
					regDown = 2 + float64(ri)
				} else if status == "ON" {
					awards = [3]float64{1, 2, 0}
				}
			}
			_ = damGen.SetString(k, model.ColResourceStatus, status)
			_ = damGen.SetFloat(k, model.ColNonSpinAwarded, awards[0])
			_ = damGen.SetFloat(k, model.ColRRSAwarded, awards[1])
			_ = damGen.SetFloat(k, model.ColRegUpAwarded, awards[2])
			_ = damLoad.SetFloat(k, model.ColRegDownAwarded, regDown)
			_ = damLoad.SetFloat(k, model.ColMaxPower, opts.MaxPowerMW[res])

			step := time.Hour / time.Duration(opts.IntervalsPerHour)
			for i := 0; i < opts.IntervalsPerHour; i++ {
				sk := model.NewKey(ts.Add(time.Duration(i)*step), res)
				_ = lmps.SetFloat(sk, model.ColRTMLMPs, lmp(hod, ri, i))
				mw := 0.0
				if online {
					mw = dispatch(hod, opts.MaxPowerMW[res])
				}
				_ = rtm.SetFloat(sk, model.ColMW, mw)
			}
		}
	}

	ds := model.NewDatasets()
	ds.Add(model.DatasetGenPriceAS, genPrice)
	ds.Add(model.DatasetLoadPriceAS, loadPrice)
	ds.Add(model.DatasetDAMGen, damGen)
	ds.Add(model.DatasetDAMLoad, damLoad)
	ds.Add(model.DatasetBESSLMPs, lmps)
	ds.Add(model.DatasetRTMPower, rtm)
	ds.Add(model.DatasetPriceAS, model.CombineFirst(model.DatasetPriceAS, genPrice, loadPrice))
	ds.Fingerprint = "sample"
	return ds
}

func asPrices(h int) map[string]float64 {
	base := 3 + 2*math.Sin(float64(h)/24*2*math.Pi)
	return map[string]float64{
		model.ColNonSpin: round2(base),
		model.ColRRS:     round2(base * 1.5),
		model.ColRegUp:   round2(base * 2),
		model.ColRegDown: round2(base * 0.8),
	}
}

func statusFor(h, hod, resourceIdx int) string {
	switch {
	case (h/24)%7 == 5 && resourceIdx == 1:
		return "OUT"
	case hod < 6:
		return "OFF"
	case hod < 10:
		return "ONREG"
	case hod < 17:
		return "ON"
	case hod < 21:
		return "ONTEST"
	default:
		return "ONOS"
	}
}

func lmp(hod, resourceIdx, interval int) float64 {
	base := 25 + 20*math.Sin(float64(hod-11)/24*2*math.Pi)
	return round2(base + float64(resourceIdx)*1.5 + float64(interval)*0.25)
}

func dispatch(hod int, maxMW float64) float64 {
	switch {
	case hod >= 11 && hod < 15:
		return -maxMW / 2
	case hod >= 18 && hod < 21:
		return maxMW / 2
	default:
		return 0
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
