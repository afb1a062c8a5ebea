package shipping

import (
	"encoding/json"
	"errors"
	"math"
	"strings"
	"testing"

	"mercator-hq/shipquote/pkg/rules"
)

var testPricing = rules.Pricing{
	BasePrice:               5,
	PricePerKg:              2,
	PricePerCubicCm:         0.001,
	ExpressMultiplier:       1.5,
	InternationalMultiplier: 2.0,
}

var testAlerts = rules.Alerts{
	HeavyWeightKg:  20,
	OversizedCm:    100,
	BulkyVolumeCm3: 50000,
}

func mustParams(t *testing.T, body string) Params {
	t.Helper()
	p, err := DecodeParams(strings.NewReader(body))
	if err != nil {
		t.Fatalf("DecodeParams(%s) error = %v", body, err)
	}
	return p
}

func TestVolume(t *testing.T) {
	tests := []struct {
		name          string
		l, w, h       any
		want          float64
		tolerance     float64
		wantErrorType bool
	}{
		{name: "integers", l: 10, w: 5, h: 2, want: 100},
		{name: "large package", l: 100, w: 50, h: 30, want: 150000},
		{name: "fractional", l: 10.5, w: 2.2, h: 3.0, want: 69.3, tolerance: 1e-9},
		{name: "zero dimension", l: 10, w: 0, h: 5, want: 0},
		{name: "numeric strings", l: "10", w: " 5 ", h: "2.0", want: 100},
		{name: "json numbers", l: json.Number("4"), w: json.Number("2.5"), h: json.Number("2"), want: 20},
		{name: "not a number", l: "ten", w: 5, h: 2, wantErrorType: true},
		{name: "null", l: 10, w: nil, h: 2, wantErrorType: true},
		{name: "boolean", l: 10, w: 5, h: true, wantErrorType: true},
		{name: "infinity string", l: "inf", w: 5, h: 2, wantErrorType: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Volume(tt.l, tt.w, tt.h)
			if tt.wantErrorType {
				var ie *InvalidInputError
				if !errors.As(err, &ie) {
					t.Fatalf("Volume() error = %v, want InvalidInputError", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Volume() error = %v", err)
			}
			if math.Abs(got-tt.want) > tt.tolerance {
				t.Errorf("Volume() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestVolume_Commutative(t *testing.T) {
	dims := [][3]float64{{1, 2, 3}, {30, 20, 15}, {0.5, 100, 7}, {0, 12, 9}}
	for _, d := range dims {
		a, _ := Volume(d[0], d[1], d[2])
		b, _ := Volume(d[1], d[0], d[2])
		c, _ := Volume(d[2], d[1], d[0])
		if a != b || a != c {
			t.Errorf("Volume%v not commutative: %v, %v, %v", d, a, b, c)
		}
	}
}

func TestPrice_Scenarios(t *testing.T) {
	tests := []struct {
		name string
		body string
		want float64
	}{
		{
			name: "national standard",
			body: `{"length_cm":30,"width_cm":20,"height_cm":15,"weight_kg":10,"destination":"national","is_express":false}`,
			want: 34.0,
		},
		{
			name: "international express",
			body: `{"length_cm":30,"width_cm":20,"height_cm":15,"weight_kg":5,"destination":"international","is_express":true}`,
			want: 72.0,
		},
		{
			name: "unknown destination priced as national",
			body: `{"length_cm":30,"width_cm":20,"height_cm":15,"weight_kg":10,"destination":"mars"}`,
			want: 34.0,
		},
		{
			name: "absent fields default to zero",
			body: `{"weight_kg":1}`,
			want: 7.0,
		},
		{
			name: "truthy express string",
			body: `{"length_cm":0,"width_cm":0,"height_cm":0,"weight_kg":0,"is_express":"yes"}`,
			want: 7.5,
		},
		{
			name: "rounded to two decimals",
			body: `{"length_cm":1,"width_cm":1,"height_cm":1,"weight_kg":0.333}`,
			want: 5.67,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Price(mustParams(t, tt.body), testPricing)
			if err != nil {
				t.Fatalf("Price() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Price() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPrice_Negative(t *testing.T) {
	for _, field := range []string{FieldLength, FieldWidth, FieldHeight, FieldWeight} {
		t.Run(field, func(t *testing.T) {
			p := Params{
				FieldLength: 30.0, FieldWidth: 20.0, FieldHeight: 15.0, FieldWeight: 10.0,
				FieldDestination: "international", FieldExpress: true,
			}
			p[field] = -10.0

			_, err := Price(p, testPricing)
			var ve *ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("Price() error = %v, want ValidationError", err)
			}
			if !strings.Contains(ve.Error(), "negative") {
				t.Errorf("error %q does not mention negative", ve)
			}
			if ve.Field != field {
				t.Errorf("Field = %q, want %q", ve.Field, field)
			}
		})
	}
}

func TestPrice_Overflow(t *testing.T) {
	tests := []struct {
		name   string
		params Params
	}{
		{
			name:   "huge dimensions",
			params: Params{FieldLength: 1e200, FieldWidth: 1e200, FieldHeight: 1e200, FieldWeight: 5.0},
		},
		{
			name:   "huge weight",
			params: Params{FieldLength: 1.0, FieldWidth: 1.0, FieldHeight: 1.0, FieldWeight: 1e308},
		},
		{
			name: "multipliers overflow",
			params: Params{
				FieldLength: 1.0, FieldWidth: 1.0, FieldHeight: 1.0, FieldWeight: 1e308 / 2,
				FieldExpress: true, FieldDestination: "international",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Price(tt.params, testPricing)
			var ve *ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("Price() error = %v, want ValidationError", err)
			}
			if !strings.Contains(ve.Error(), "too large") {
				t.Errorf("error %q does not mention too large", ve)
			}
			if StatusCode(err) != 400 {
				t.Errorf("StatusCode = %d, want 400", StatusCode(err))
			}
		})
	}
}

func TestGenerateAlerts_Overflow(t *testing.T) {
	p := Params{FieldLength: 1e200, FieldWidth: 1e200, FieldHeight: 1e200, FieldWeight: 5.0}
	_, err := GenerateAlerts(p, testAlerts)
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("GenerateAlerts() error = %v, want ValidationError", err)
	}
}

func TestGenerateAlerts_ExponentForm(t *testing.T) {
	p := Params{FieldLength: 1.0, FieldWidth: 1.0, FieldHeight: 1.0, FieldWeight: 1e16}
	alerts, err := GenerateAlerts(p, testAlerts)
	if err != nil {
		t.Fatalf("GenerateAlerts() error = %v", err)
	}
	want := "Heavy package (1e+16kg): special handling may be required"
	if len(alerts) == 0 || alerts[0].Message != want {
		t.Errorf("alerts = %v, want first %q", alerts, want)
	}
}

func TestPrice_EmptyRequest(t *testing.T) {
	for _, p := range []Params{nil, {}} {
		_, err := Price(p, testPricing)
		var ve *ValidationError
		if !errors.As(err, &ve) {
			t.Errorf("Price(%v) error = %v, want ValidationError", p, err)
		}
	}
}

func TestPrice_Monotonic(t *testing.T) {
	prev := -1.0
	for w := 0.0; w <= 50; w += 2.5 {
		p := Params{FieldLength: 10.0, FieldWidth: 10.0, FieldHeight: 10.0, FieldWeight: w}
		got, err := Price(p, testPricing)
		if err != nil {
			t.Fatal(err)
		}
		if got < prev {
			t.Fatalf("price decreased with weight %v: %v < %v", w, got, prev)
		}
		prev = got
	}

	prev = -1.0
	for l := 0.0; l <= 200; l += 10 {
		p := Params{FieldLength: l, FieldWidth: 20.0, FieldHeight: 15.0, FieldWeight: 5.0}
		got, err := Price(p, testPricing)
		if err != nil {
			t.Fatal(err)
		}
		if got < prev {
			t.Fatalf("price decreased with length %v: %v < %v", l, got, prev)
		}
		prev = got
	}
}

func TestPrice_MultipliersCompound(t *testing.T) {
	base := Params{FieldLength: 42.0, FieldWidth: 17.0, FieldHeight: 9.5, FieldWeight: 3.2, FieldDestination: "national", FieldExpress: false}
	both := Params{FieldLength: 42.0, FieldWidth: 17.0, FieldHeight: 9.5, FieldWeight: 3.2, FieldDestination: "international", FieldExpress: true}

	plain, err := Price(base, testPricing)
	if err != nil {
		t.Fatal(err)
	}
	compounded, err := Price(both, testPricing)
	if err != nil {
		t.Fatal(err)
	}

	want := plain * testPricing.ExpressMultiplier * testPricing.InternationalMultiplier
	if math.Abs(compounded-want) > 0.03 {
		t.Errorf("compounded price = %v, want %v (within rounding)", compounded, want)
	}
}

func TestGenerateAlerts(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		kinds []AlertKind
		msgs  []string
	}{
		{
			name:  "heavy oversized international",
			body:  `{"weight_kg":25,"length_cm":150,"destination":"international","width_cm":20,"height_cm":15}`,
			kinds: []AlertKind{AlertHeavy, AlertOversized, AlertInternational},
			msgs: []string{
				"Heavy package (25.0kg): special handling may be required",
				"Oversized dimension (150.0cm): check transport limits",
				"International shipment: customs documentation may be required",
			},
		},
		{
			name:  "all four",
			body:  `{"weight_kg":20.5,"length_cm":101,"width_cm":50,"height_cm":30,"destination":"international"}`,
			kinds: []AlertKind{AlertHeavy, AlertOversized, AlertBulky, AlertInternational},
			msgs: []string{
				"Heavy package (20.5kg): special handling may be required",
				"Oversized dimension (101.0cm): check transport limits",
				"Bulky package (151500cm³): may require extra space",
				"International shipment: customs documentation may be required",
			},
		},
		{
			name:  "thresholds are strict",
			body:  `{"weight_kg":20,"length_cm":100,"width_cm":25,"height_cm":20,"destination":"national"}`,
			kinds: nil,
		},
		{
			name:  "bulky only",
			body:  `{"weight_kg":1,"length_cm":60,"width_cm":60,"height_cm":60,"destination":"national"}`,
			kinds: []AlertKind{AlertBulky},
			msgs:  []string{"Bulky package (216000cm³): may require extra space"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			alerts, err := GenerateAlerts(mustParams(t, tt.body), testAlerts)
			if err != nil {
				t.Fatalf("GenerateAlerts() error = %v", err)
			}
			if len(alerts) != len(tt.kinds) {
				t.Fatalf("got %d alerts (%v), want %d", len(alerts), alerts, len(tt.kinds))
			}
			for i, a := range alerts {
				if a.Kind != tt.kinds[i] {
					t.Errorf("alert[%d].Kind = %q, want %q", i, a.Kind, tt.kinds[i])
				}
				if tt.msgs != nil && a.Message != tt.msgs[i] {
					t.Errorf("alert[%d].Message = %q, want %q", i, a.Message, tt.msgs[i])
				}
			}
		})
	}
}

func TestMessages_NeverNil(t *testing.T) {
	if got := Messages(nil); got == nil {
		t.Error("Messages(nil) = nil, want empty slice")
	}
}

func TestDeliveryTime(t *testing.T) {
	full := rules.DeliveryTimes{
		rules.KeyNationalStandard:      "3-5 business days",
		rules.KeyNationalExpress:       "1-2 business days",
		rules.KeyInternationalStandard: "7-14 business days",
		rules.KeyInternationalExpress:  "3-5 business days",
	}

	tests := []struct {
		name        string
		destination any
		express     any
		table       rules.DeliveryTimes
		want        string
		check       func(t *testing.T, err error)
	}{
		{name: "national standard", destination: "national", express: false, table: full, want: "3-5 business days"},
		{name: "national express", destination: "national", express: true, table: full, want: "1-2 business days"},
		{name: "international standard", destination: "international", express: false, table: full, want: "7-14 business days"},
		{
			name: "unknown destination", destination: "mars", express: false, table: full,
			check: func(t *testing.T, err error) {
				var ve *ValidationError
				if !errors.As(err, &ve) {
					t.Errorf("error = %v, want ValidationError", err)
				}
			},
		},
		{
			name: "destination case sensitive", destination: "National", express: false, table: full,
			check: func(t *testing.T, err error) {
				var ve *ValidationError
				if !errors.As(err, &ve) {
					t.Errorf("error = %v, want ValidationError", err)
				}
			},
		},
		{
			name: "non-string destination", destination: json.Number("1"), express: false, table: full,
			check: func(t *testing.T, err error) {
				var ve *ValidationError
				if !errors.As(err, &ve) {
					t.Errorf("error = %v, want ValidationError", err)
				}
			},
		},
		{
			name: "string express flag", destination: "national", express: "true", table: full,
			check: func(t *testing.T, err error) {
				var tm *TypeMismatchError
				if !errors.As(err, &tm) {
					t.Fatalf("error = %v, want TypeMismatchError", err)
				}
				if tm.Got != "string" {
					t.Errorf("Got = %q, want string", tm.Got)
				}
			},
		},
		{
			name: "numeric express flag", destination: "national", express: json.Number("1"), table: full,
			check: func(t *testing.T, err error) {
				var tm *TypeMismatchError
				if !errors.As(err, &tm) {
					t.Errorf("error = %v, want TypeMismatchError", err)
				}
			},
		},
		{
			name:        "missing key",
			destination: "international",
			express:     true,
			table: rules.DeliveryTimes{
				rules.KeyNationalStandard: "3-5 business days",
				rules.KeyNationalExpress:  "1-2 business days",
			},
			check: func(t *testing.T, err error) {
				var ce *ConfigurationError
				if !errors.As(err, &ce) {
					t.Fatalf("error = %v, want ConfigurationError", err)
				}
				if ce.Key != rules.KeyInternationalExpress {
					t.Errorf("Key = %q", ce.Key)
				}
				if !strings.Contains(ce.Error(), "national_express, national_standard") {
					t.Errorf("error %q does not list available keys", ce)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DeliveryTime(tt.destination, tt.express, tt.table)
			if tt.check != nil {
				if err == nil {
					t.Fatalf("DeliveryTime() = %q, want error", got)
				}
				tt.check(t, err)
				return
			}
			if err != nil {
				t.Fatalf("DeliveryTime() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("DeliveryTime() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDestinationAsymmetry(t *testing.T) {
	p := Params{FieldLength: 1.0, FieldWidth: 1.0, FieldHeight: 1.0, FieldWeight: 1.0, FieldDestination: "moon"}

	if _, err := Price(p, testPricing); err != nil {
		t.Errorf("Price() error = %v, want unknown destination accepted", err)
	}
	if _, err := DeliveryTime(p[FieldDestination], false, rules.DeliveryTimes{rules.KeyNationalStandard: "x"}); err == nil {
		t.Error("DeliveryTime() error = nil, want unknown destination rejected")
	}
}

func TestStatusCode(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{nil, 200},
		{&MalformedRequestError{}, 400},
		{&MissingFieldsError{Fields: []string{FieldWeight}}, 400},
		{&ValidationError{Message: "bad"}, 400},
		{&InvalidInputError{Field: FieldLength, Value: "x"}, 400},
		{&TypeMismatchError{Field: FieldExpress, Expected: "boolean", Got: "string"}, 400},
		{&ConfigurationError{Key: "k"}, 500},
		{errors.New("boom"), 500},
	}
	for _, tt := range tests {
		if got := StatusCode(tt.err); got != tt.want {
			t.Errorf("StatusCode(%T) = %d, want %d", tt.err, got, tt.want)
		}
	}
}

func TestFormatNumber(t *testing.T) {
	tests := map[float64]string{
		25:     "25.0",
		20.5:   "20.5",
		150:    "150.0",
		0.1:    "0.1",
		-10:    "-10.0",
		1e6:    "1000000.0",
		69.375: "69.375",
		1e15:   "1000000000000000.0",
		1e16:   "1e+16",
		-1e16:  "-1e+16",
		1.5e20: "1.5e+20",
		0.0001: "0.0001",
		1.5e-5: "1.5e-05",
		0:      "0.0",
	}
	for in, want := range tests {
		if got := formatNumber(in); got != want {
			t.Errorf("formatNumber(%v) = %q, want %q", in, got, want)
		}
	}
}
