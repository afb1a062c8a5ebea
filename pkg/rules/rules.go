package rules

import (
	"maps"
	"slices"
)

// DefaultCurrency is used when the document does not name a currency.
const DefaultCurrency = "EUR"

// Delivery-time table keys. A key is composed as "<destination>_<speed>".
const (
	KeyNationalStandard      = "national_standard"
	KeyNationalExpress       = "national_express"
	KeyInternationalStandard = "international_standard"
	KeyInternationalExpress  = "international_express"
)

// DeliveryKeys lists every key a complete delivery-time table carries.
var DeliveryKeys = []string{
	KeyNationalStandard,
	KeyNationalExpress,
	KeyInternationalStandard,
	KeyInternationalExpress,
}

// Pricing holds the coefficients of the price formula.
type Pricing struct {
	// BasePrice is the flat amount every quote starts from.
	BasePrice float64 `json:"base_price" yaml:"base_price" validate:"gte=0"`

	// PricePerKg is added once per kilogram of package weight.
	PricePerKg float64 `json:"price_per_kg" yaml:"price_per_kg" validate:"gte=0"`

	// PricePerCubicCm is added once per cubic centimeter of package volume.
	PricePerCubicCm float64 `json:"price_per_cubic_cm" yaml:"price_per_cubic_cm" validate:"gte=0"`

	// ExpressMultiplier scales the whole subtotal for express shipments.
	ExpressMultiplier float64 `json:"express_multiplier" yaml:"express_multiplier" validate:"gte=0"`

	// InternationalMultiplier scales the whole subtotal for international shipments.
	InternationalMultiplier float64 `json:"international_multiplier" yaml:"international_multiplier" validate:"gte=0"`
}

// Alerts holds the thresholds that trigger advisory messages.
// Every threshold is compared with a strict greater-than.
type Alerts struct {
	HeavyWeightKg  float64 `json:"heavy_weight_kg" yaml:"heavy_weight_kg" validate:"gte=0"`
	OversizedCm    float64 `json:"oversized_cm" yaml:"oversized_cm" validate:"gte=0"`
	BulkyVolumeCm3 float64 `json:"bulky_volume_cm3" yaml:"bulky_volume_cm3" validate:"gte=0"`
}

// DeliveryTimes maps a delivery key (see DeliveryKeys) to a human-readable estimate.
type DeliveryTimes map[string]string

// Lookup returns the estimate stored under key.
func (d DeliveryTimes) Lookup(key string) (string, bool) {
	v, ok := d[key]
	return v, ok
}

// Keys returns the configured keys in sorted order.
func (d DeliveryTimes) Keys() []string {
	return slices.Sorted(maps.Keys(d))
}

// Document is the decoded shape of a rules file. Sections are pointers so a
// missing section can be told apart from a section of zero values.
type Document struct {
	Pricing       *Pricing      `json:"pricing" yaml:"pricing" validate:"required"`
	Alerts        *Alerts       `json:"alerts" yaml:"alerts" validate:"required"`
	DeliveryTimes DeliveryTimes `json:"delivery_times" yaml:"delivery_times" validate:"omitempty,dive,keys,oneof=national_standard national_express international_standard international_express,endkeys,required"`
	Currency      string        `json:"currency" yaml:"currency" validate:"omitempty,len=3,alpha,uppercase"`
}

// Section names as they appear in a rules document.
const (
	SectionPricing       = "pricing"
	SectionAlerts        = "alerts"
	SectionDeliveryTimes = "delivery_times"
)

// Sections reports which sections of a RuleSet were loaded.
type Sections struct {
	Pricing       bool `json:"pricing"`
	Alerts        bool `json:"alerts"`
	DeliveryTimes bool `json:"delivery_times"`
}

// RuleSet is the immutable, process-wide rule configuration.
// Accessors return copies; nothing can modify a RuleSet after New returns.
type RuleSet struct {
	pricing       Pricing
	alerts        Alerts
	deliveryTimes DeliveryTimes
	currency      string
	sections      Sections
}

// New validates doc and builds a RuleSet from it. When strict is set, the
// delivery-time table must contain every key in DeliveryKeys.
func New(doc Document, strict bool) (*RuleSet, error) {
	if err := Validate(&doc, strict); err != nil {
		return nil, err
	}

	rs := &RuleSet{
		pricing:       *doc.Pricing,
		alerts:        *doc.Alerts,
		deliveryTimes: maps.Clone(doc.DeliveryTimes),
		currency:      doc.Currency,
		sections: Sections{
			Pricing:       true,
			Alerts:        true,
			DeliveryTimes: len(doc.DeliveryTimes) > 0,
		},
	}
	if rs.deliveryTimes == nil {
		rs.deliveryTimes = DeliveryTimes{}
	}
	if rs.currency == "" {
		rs.currency = DefaultCurrency
	}

	return rs, nil
}

// MustNew is like New but panics on error. It is intended for tests and
// package-level fixtures.
func MustNew(doc Document, strict bool) *RuleSet {
	rs, err := New(doc, strict)
	if err != nil {
		panic(err)
	}
	return rs
}

// Pricing returns a copy of the pricing coefficients.
func (r *RuleSet) Pricing() Pricing { return r.pricing }

// Alerts returns a copy of the alert thresholds.
func (r *RuleSet) Alerts() Alerts { return r.alerts }

// DeliveryTimes returns a copy of the delivery-time table.
func (r *RuleSet) DeliveryTimes() DeliveryTimes { return maps.Clone(r.deliveryTimes) }

// Currency returns the currency code prices are expressed in.
func (r *RuleSet) Currency() string { return r.currency }

// Sections reports which sections were present in the source document.
func (r *RuleSet) Sections() Sections { return r.sections }

// MissingDeliveryKeys returns the entries of DeliveryKeys that the table lacks.
func (r *RuleSet) MissingDeliveryKeys() []string {
	var missing []string
	for _, k := range DeliveryKeys {
		if _, ok := r.deliveryTimes[k]; !ok {
			missing = append(missing, k)
		}
	}
	return missing
}

// Loaded returns the load state of each section keyed by section name.
func (s Sections) Loaded() map[string]bool {
	return map[string]bool{
		SectionPricing:       s.Pricing,
		SectionAlerts:        s.Alerts,
		SectionDeliveryTimes: s.DeliveryTimes,
	}
}
