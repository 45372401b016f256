// Package pricing extracts price points from free-text revenue model
// descriptions and classifies them into price bands.
package pricing

import (
	"regexp"
	"strconv"
	"strings"
)

// Band buckets a revenue model by its average price point.
type Band string

const (
	BandLow  Band = "low"
	BandMid  Band = "mid"
	BandHigh Band = "high"
)

// Thresholds are the band boundaries applied to the average parsed price.
type Thresholds struct {
	LowMax float64
	MidMax float64
}

// DefaultThresholds returns the standard band boundaries.
func DefaultThresholds() Thresholds {
	return Thresholds{LowMax: 100, MidMax: 500}
}

// Info is the parse result for one revenue model string.
type Info struct {
	Prices       []float64
	ContactSales bool
	Freemium     bool
	// OpenEnded is set when the model advertised an unbounded upper price
	// ("$500+").
	OpenEnded bool
}

// Phrases that signal negotiated enterprise pricing.
var contactPhrases = []string{
	"contact sales",
	"contact us",
	"talk to sales",
	"custom pricing",
	"enterprise pricing",
	"request a quote",
}

// priceRe matches a currency-prefixed amount, optionally joined to a range
// endpoint by a dash ("$49–149", "$1,000 - $2,500").
var priceRe = regexp.MustCompile(`[$€£]\s*([0-9][0-9,]*(?:\.[0-9]+)?)(?:\s*[–—-]\s*[$€£]?\s*([0-9][0-9,]*(?:\.[0-9]+)?))?`)

// Parse scans a revenue model string. Malformed input never fails; it
// degrades to an Info with no prices.
func Parse(revenueModel string) Info {
	info := Info{}
	lowered := strings.ToLower(revenueModel)

	for _, phrase := range contactPhrases {
		if strings.Contains(lowered, phrase) {
			info.ContactSales = true
			break
		}
	}
	info.Freemium = strings.Contains(lowered, "free")
	info.OpenEnded = strings.Contains(revenueModel, "+") && strings.ContainsAny(revenueModel, "$€£")

	for _, m := range priceRe.FindAllStringSubmatch(revenueModel, -1) {
		for _, group := range m[1:] {
			if group == "" {
				continue
			}
			v, err := strconv.ParseFloat(strings.ReplaceAll(group, ",", ""), 64)
			if err != nil {
				continue
			}
			info.Prices = append(info.Prices, v)
		}
	}
	return info
}

// Average returns the mean of the collected price endpoints, or 0 when no
// prices were parsed.
func (i Info) Average() float64 {
	if len(i.Prices) == 0 {
		return 0
	}
	var sum float64
	for _, p := range i.Prices {
		sum += p
	}
	return sum / float64(len(i.Prices))
}

// Band classifies the parse result against the given thresholds.
//
// Contact-sales pricing always lands high; freemium with no explicit price
// lands low; an unparseable model defaults to mid.
func (i Info) Band(t Thresholds) Band {
	switch {
	case i.ContactSales:
		return BandHigh
	case i.Freemium && len(i.Prices) == 0:
		return BandLow
	case len(i.Prices) == 0:
		return BandMid
	}
	avg := i.Average()
	switch {
	case avg <= t.LowMax:
		return BandLow
	case avg <= t.MidMax:
		return BandMid
	default:
		return BandHigh
	}
}
