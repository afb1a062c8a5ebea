package shipping

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"mercator-hq/shipquote/pkg/rules"
)

// AlertKind identifies which threshold produced an alert.
type AlertKind string

const (
	AlertHeavy         AlertKind = "heavy"
	AlertOversized     AlertKind = "oversized"
	AlertBulky         AlertKind = "bulky"
	AlertInternational AlertKind = "international"
)

// Alert is an advisory message attached to a quote.
type Alert struct {
	Kind    AlertKind
	Message string
}

// GenerateAlerts evaluates the alert thresholds against params. Checks run in
// a fixed order (heavy, oversized, bulky, international), each independently,
// and every comparison is a strict greater-than.
func GenerateAlerts(params Params, thresholds rules.Alerts) ([]Alert, error) {
	length, width, height, weight, err := params.dimensions()
	if err != nil {
		return nil, err
	}

	var alerts []Alert

	if weight > thresholds.HeavyWeightKg {
		alerts = append(alerts, Alert{
			Kind:    AlertHeavy,
			Message: fmt.Sprintf("Heavy package (%skg): special handling may be required", formatNumber(weight)),
		})
	}

	maxDim := max(length, width, height)
	if maxDim > thresholds.OversizedCm {
		alerts = append(alerts, Alert{
			Kind:    AlertOversized,
			Message: fmt.Sprintf("Oversized dimension (%scm): check transport limits", formatNumber(maxDim)),
		})
	}

	volume := length * width * height
	if !finite(volume) {
		return nil, errTooLarge()
	}
	if volume > thresholds.BulkyVolumeCm3 {
		alerts = append(alerts, Alert{
			Kind:    AlertBulky,
			Message: fmt.Sprintf("Bulky package (%.0fcm³): may require extra space", volume),
		})
	}

	if params.Destination() == DestinationInternational {
		alerts = append(alerts, Alert{
			Kind:    AlertInternational,
			Message: "International shipment: customs documentation may be required",
		})
	}

	return alerts, nil
}

// Messages returns the alert texts in order. The result is never nil.
func Messages(alerts []Alert) []string {
	msgs := make([]string, 0, len(alerts))
	for _, a := range alerts {
		msgs = append(msgs, a.Message)
	}
	return msgs
}

// formatNumber prints a float in its shortest form, keeping a trailing ".0"
// on whole numbers: 25 -> "25.0", 12.5 -> "12.5". Magnitudes below 1e-4 or
// from 1e16 up switch to exponent form: 1e16 -> "1e+16".
func formatNumber(v float64) string {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	if v != 0 {
		e := strconv.FormatFloat(v, 'e', -1, 64)
		if exp, err := strconv.Atoi(e[strings.IndexByte(e, 'e')+1:]); err == nil && (exp < -4 || exp >= 16) {
			return e
		}
	}
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
