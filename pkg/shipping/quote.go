package shipping

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"time"

	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"mercator-hq/shipquote/pkg/rules"
	"mercator-hq/shipquote/pkg/telemetry/tracing"
)

// QuoteResult is the full answer to a quote request.
type QuoteResult struct {
	CalculationID     string         `json:"calculation_id"`
	TotalPrice        float64        `json:"total_price"`
	Currency          string         `json:"currency"`
	PriceBreakdown    Breakdown      `json:"price_breakdown"`
	Alerts            []string       `json:"alerts"`
	EstimatedDelivery string         `json:"estimated_delivery"`
	Timestamp         string         `json:"timestamp"`
	PackageSummary    PackageSummary `json:"package_summary"`

	alertKinds []AlertKind
}

// PackageSummary echoes the normalized request back to the caller.
type PackageSummary struct {
	Dimensions      Dimensions `json:"dimensions"`
	WeightKg        float64    `json:"weight_kg"`
	Destination     string     `json:"destination"`
	ExpressShipping bool       `json:"express_shipping"`
}

// Dimensions are the package measurements in centimeters.
type Dimensions struct {
	LengthCm  float64 `json:"length_cm"`
	WidthCm   float64 `json:"width_cm"`
	HeightCm  float64 `json:"height_cm"`
	VolumeCm3 float64 `json:"volume_cm3"`
}

// Recorder receives quote outcomes. The metrics collector implements it.
type Recorder interface {
	RecordQuote(destination string, express bool, outcome string)
	RecordQuotePrice(currency string, price float64)
	RecordAlert(kind string)
}

// Quoter runs the full quote pipeline against a fixed RuleSet. It holds no
// mutable state and is safe for concurrent use.
type Quoter struct {
	rules    *rules.RuleSet
	tracer   trace.Tracer
	recorder Recorder
	now      func() time.Time
}

// NewQuoter creates a Quoter. tracer and recorder may be nil.
func NewQuoter(rs *rules.RuleSet, tracer trace.Tracer, recorder Recorder) *Quoter {
	if tracer == nil {
		tracer = noop.NewTracerProvider().Tracer("shipquote")
	}
	return &Quoter{
		rules:    rs,
		tracer:   tracer,
		recorder: recorder,
		now:      time.Now,
	}
}

// Quote validates params and computes a QuoteResult.
//
// Errors are returned as the typed errors of this package; StatusCode maps
// them to HTTP statuses.
func (q *Quoter) Quote(ctx context.Context, params Params) (*QuoteResult, error) {
	_, span := q.tracer.Start(ctx, "shipping.Quote")
	defer span.End()

	result, err := q.quote(params)

	express := params.Express()
	dest := destinationLabel(params)
	tracing.SetQuoteRequestAttributes(span, dest, express, Outcome(err))
	if err != nil {
		tracing.SetError(span, err)
	} else {
		tracing.SetQuoteResultAttributes(span, result.CalculationID, result.TotalPrice, result.Currency, len(result.Alerts))
	}
	tracing.SetStatus(span, err)

	q.record(dest, express, result, err)
	return result, err
}

func (q *Quoter) quote(params Params) (*QuoteResult, error) {
	if len(params) == 0 {
		return nil, &MalformedRequestError{Reason: "no fields supplied"}
	}
	if missing := params.Missing(); len(missing) > 0 {
		return nil, &MissingFieldsError{Fields: missing}
	}

	pricing := q.rules.Pricing()

	total, err := Price(params, pricing)
	if err != nil {
		return nil, err
	}

	alerts, err := GenerateAlerts(params, q.rules.Alerts())
	if err != nil {
		return nil, err
	}

	isExpress, ok := params[FieldExpress]
	if !ok {
		isExpress = false
	}
	estimate, err := DeliveryTime(params[FieldDestination], isExpress, q.rules.DeliveryTimes())
	if err != nil {
		return nil, err
	}

	bd, err := breakdown(params, pricing)
	if err != nil {
		return nil, err
	}
	length, width, height, weight, err := params.dimensions()
	if err != nil {
		return nil, err
	}
	volume := length * width * height
	if !finite(volume) {
		return nil, errTooLarge()
	}

	timestamp := q.now().UTC().Format(time.RFC3339Nano)

	return &QuoteResult{
		CalculationID:     calculationID(params, timestamp),
		TotalPrice:        total,
		Currency:          q.rules.Currency(),
		PriceBreakdown:    bd,
		Alerts:            Messages(alerts),
		EstimatedDelivery: estimate,
		Timestamp:         timestamp,
		PackageSummary: PackageSummary{
			Dimensions: Dimensions{
				LengthCm:  length,
				WidthCm:   width,
				HeightCm:  height,
				VolumeCm3: round2(volume),
			},
			WeightKg:        weight,
			Destination:     params.Destination(),
			ExpressShipping: isExpress.(bool),
		},
		alertKinds: kinds(alerts),
	}, nil
}

func (q *Quoter) record(dest string, express bool, result *QuoteResult, err error) {
	if q.recorder == nil {
		return
	}
	q.recorder.RecordQuote(dest, express, Outcome(err))
	if result == nil {
		return
	}
	q.recorder.RecordQuotePrice(result.Currency, result.TotalPrice)
	for _, k := range result.alertKinds {
		q.recorder.RecordAlert(string(k))
	}
}

// calculationID derives a short correlation token from the request and the
// timestamp. It is not unique and must not be used for anything but logs.
func calculationID(params Params, timestamp string) string {
	payload, _ := json.Marshal(params)
	sum := md5.Sum(append(payload, timestamp...))
	return "calc_" + hex.EncodeToString(sum[:])[:8]
}

// destinationLabel bounds metric cardinality: free-form destinations are
// folded into "other".
func destinationLabel(params Params) string {
	switch d := params.Destination(); d {
	case DestinationNational, DestinationInternational:
		return d
	default:
		return "other"
	}
}

func kinds(alerts []Alert) []AlertKind {
	out := make([]AlertKind, len(alerts))
	for i, a := range alerts {
		out[i] = a.Kind
	}
	return out
}
