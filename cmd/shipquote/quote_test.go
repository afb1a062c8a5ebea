package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"mercator-hq/shipquote/pkg/rules"
	"mercator-hq/shipquote/pkg/shipping"
)

func quoteFor(t *testing.T, params shipping.Params) *shipping.QuoteResult {
	t.Helper()
	rs, err := rules.LoadFile(writeFile(t, "rules.json", completeRules), false)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	result, err := shipping.NewQuoter(rs, nil, nil).Quote(context.Background(), params)
	if err != nil {
		t.Fatalf("Quote() error = %v", err)
	}
	return result
}

func TestQuoteView_WriteText(t *testing.T) {
	result := quoteFor(t, shipping.Params{
		shipping.FieldLength:      120.0,
		shipping.FieldWidth:       50.0,
		shipping.FieldHeight:      40.0,
		shipping.FieldWeight:      25.0,
		shipping.FieldDestination: "international",
		shipping.FieldExpress:     true,
	})

	var buf bytes.Buffer
	if err := (quoteView{result}).WriteText(&buf); err != nil {
		t.Fatalf("WriteText() error = %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"Quote " + result.CalculationID,
		"international express",
		"Delivery:    3-5 business days",
		"Alerts:\n",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if got := strings.Count(out, "⚠"); got != len(result.Alerts) {
		t.Errorf("rendered %d alerts, want %d", got, len(result.Alerts))
	}
}

func TestQuoteView_NoAlerts(t *testing.T) {
	result := quoteFor(t, shipping.Params{
		shipping.FieldLength:      30.0,
		shipping.FieldWidth:       20.0,
		shipping.FieldHeight:      15.0,
		shipping.FieldWeight:      10.0,
		shipping.FieldDestination: "national",
	})

	var buf bytes.Buffer
	if err := (quoteView{result}).WriteText(&buf); err != nil {
		t.Fatalf("WriteText() error = %v", err)
	}
	if !strings.Contains(buf.String(), "Total:       34.00 EUR") {
		t.Errorf("unexpected total:\n%s", buf.String())
	}
	if !strings.Contains(buf.String(), "Alerts:      none") {
		t.Errorf("expected no alerts:\n%s", buf.String())
	}
}

func TestQuoteView_JSONMatchesResult(t *testing.T) {
	result := quoteFor(t, shipping.Params{
		shipping.FieldLength:      30.0,
		shipping.FieldWidth:       20.0,
		shipping.FieldHeight:      15.0,
		shipping.FieldWeight:      10.0,
		shipping.FieldDestination: "national",
	})

	viewJSON, err := json.Marshal(quoteView{result})
	if err != nil {
		t.Fatalf("marshal view: %v", err)
	}
	resultJSON, err := json.Marshal(result)
	if err != nil {
		t.Fatalf("marshal result: %v", err)
	}
	if !bytes.Equal(viewJSON, resultJSON) {
		t.Errorf("view JSON = %s, want %s", viewJSON, resultJSON)
	}
}

func TestReadParams(t *testing.T) {
	body := `{"length_cm":30,"width_cm":20,"height_cm":15,"weight_kg":10,"destination":"national"}`

	t.Run("stdin", func(t *testing.T) {
		params, err := readParams("-", strings.NewReader(body))
		if err != nil {
			t.Fatalf("readParams() error = %v", err)
		}
		if params.Destination() != "national" {
			t.Errorf("destination = %q", params.Destination())
		}
	})

	t.Run("file", func(t *testing.T) {
		params, err := readParams(writeFile(t, "req.json", body), nil)
		if err != nil {
			t.Fatalf("readParams() error = %v", err)
		}
		if len(params.Missing()) != 0 {
			t.Errorf("missing = %v", params.Missing())
		}
	})

	t.Run("missing file", func(t *testing.T) {
		if _, err := readParams("/nonexistent/req.json", nil); err == nil {
			t.Error("expected error for missing file")
		}
	})

	t.Run("malformed", func(t *testing.T) {
		_, err := readParams("-", strings.NewReader("[1,2]"))
		if shipping.StatusCode(err) != 400 {
			t.Errorf("StatusCode(%v) = %d, want 400", err, shipping.StatusCode(err))
		}
	})
}

func TestQuote_OversizedInputFile(t *testing.T) {
	body := `{"length_cm":1e200,"width_cm":1e200,"height_cm":1e200,"weight_kg":5,"destination":"national"}`
	params, err := readParams(writeFile(t, "req.json", body), nil)
	if err != nil {
		t.Fatalf("readParams() error = %v", err)
	}
	rs, err := rules.LoadFile(writeFile(t, "rules.json", completeRules), false)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}

	_, err = shipping.NewQuoter(rs, nil, nil).Quote(context.Background(), params)
	var ve *shipping.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("Quote() error = %v, want ValidationError", err)
	}
	if !strings.Contains(err.Error(), "too large") {
		t.Errorf("error %q does not mention too large", err)
	}
}

func TestParamsFromFlags(t *testing.T) {
	flags := quoteCmd.Flags()
	orig := quoteFlags
	t.Cleanup(func() {
		quoteFlags = orig
		for _, name := range []string{"length", "width"} {
			if f := flags.Lookup(name); f != nil {
				f.Changed = false
			}
		}
	})

	if err := flags.Set("length", "30"); err != nil {
		t.Fatal(err)
	}
	if err := flags.Set("width", "20"); err != nil {
		t.Fatal(err)
	}

	params := paramsFromFlags(flags)
	if got := params.Missing(); strings.Join(got, ",") != "height_cm,weight_kg" {
		t.Errorf("Missing() = %v, want [height_cm weight_kg]", got)
	}
	if params[shipping.FieldLength] != 30.0 {
		t.Errorf("length = %v", params[shipping.FieldLength])
	}
	if params[shipping.FieldExpress] != false {
		t.Errorf("is_express = %v", params[shipping.FieldExpress])
	}
}
