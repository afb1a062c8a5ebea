package shipping

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// Request field names.
const (
	FieldLength      = "length_cm"
	FieldWidth       = "width_cm"
	FieldHeight      = "height_cm"
	FieldWeight      = "weight_kg"
	FieldExpress     = "is_express"
	FieldDestination = "destination"
)

// Destinations recognised by the delivery-time lookup.
const (
	DestinationNational      = "national"
	DestinationInternational = "international"
)

// RequiredFields lists the fields a quote request must carry, in the order
// they are reported when missing.
var RequiredFields = []string{FieldLength, FieldWidth, FieldHeight, FieldWeight, FieldDestination}

// numericFields are checked for negative values in this order.
var numericFields = []string{FieldLength, FieldWidth, FieldHeight, FieldWeight}

// Params is a raw quote request as decoded from JSON. Values keep their JSON
// types; numbers are json.Number when produced by DecodeParams.
type Params map[string]any

// DecodeParams reads a single JSON object from r. Anything else, including
// an empty body, is reported as a MalformedRequestError.
func DecodeParams(r io.Reader) (Params, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &MalformedRequestError{Reason: err.Error()}
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, &MalformedRequestError{Reason: "body is empty"}
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, &MalformedRequestError{Reason: "invalid JSON"}
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, &MalformedRequestError{Reason: "unexpected data after JSON object"}
	}

	obj, ok := v.(map[string]any)
	if !ok {
		return nil, &MalformedRequestError{Reason: fmt.Sprintf("got %s", typeName(v))}
	}
	return Params(obj), nil
}

// Number returns the numeric value of field, or 0 when it is absent.
func (p Params) Number(field string) (float64, error) {
	v, ok := p[field]
	if !ok {
		return 0, nil
	}
	return toFloat(field, v)
}

// Destination returns the destination as a string. Absent and non-string
// values yield "national", which is how pricing treats them.
func (p Params) Destination() string {
	if s, ok := p[FieldDestination].(string); ok {
		return s
	}
	return DestinationNational
}

// Express reports whether the express flag is set using loose truthiness:
// false, null, 0, "" and empty collections are false, everything else true.
func (p Params) Express() bool {
	return truthy(p[FieldExpress])
}

// Missing returns the required fields that are not present.
func (p Params) Missing() []string {
	var missing []string
	for _, f := range RequiredFields {
		if _, ok := p[f]; !ok {
			missing = append(missing, f)
		}
	}
	return missing
}

// dimensions coerces the three linear dimensions and the weight.
func (p Params) dimensions() (length, width, height, weight float64, err error) {
	vals := make([]float64, len(numericFields))
	for i, f := range numericFields {
		if vals[i], err = p.Number(f); err != nil {
			return 0, 0, 0, 0, err
		}
	}
	return vals[0], vals[1], vals[2], vals[3], nil
}

// toFloat coerces a decoded JSON value to a finite float64. Numbers and
// numeric strings are accepted; null, booleans and containers are not.
func toFloat(field string, v any) (float64, error) {
	var f float64
	switch t := v.(type) {
	case float64:
		f = t
	case float32:
		f = float64(t)
	case int:
		f = float64(t)
	case int32:
		f = float64(t)
	case int64:
		f = float64(t)
	case uint:
		f = float64(t)
	case uint64:
		f = float64(t)
	case json.Number:
		parsed, err := strconv.ParseFloat(t.String(), 64)
		if err != nil {
			return 0, &InvalidInputError{Field: field, Value: v}
		}
		f = parsed
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0, &InvalidInputError{Field: field, Value: v}
		}
		f = parsed
	default:
		return 0, &InvalidInputError{Field: field, Value: v}
	}

	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, &InvalidInputError{Field: field, Value: v}
	}
	return f, nil
}

func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return t != ""
	case json.Number:
		f, err := strconv.ParseFloat(t.String(), 64)
		return err != nil || f != 0
	case float64:
		return t != 0
	case int:
		return t != 0
	case []any:
		return len(t) > 0
	case map[string]any:
		return len(t) > 0
	default:
		return true
	}
}
