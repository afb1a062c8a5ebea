package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestValidateRules(t *testing.T) {
	tests := []struct {
		name        string
		file        string
		content     string
		strict      bool
		wantValid   bool
		wantMissing int
	}{
		{name: "complete json", file: "rules.json", content: completeRules, wantValid: true},
		{name: "partial yaml", file: "rules.yaml", content: partialRules, wantValid: true, wantMissing: 3},
		{name: "partial yaml strict", file: "rules.yaml", content: partialRules, strict: true, wantValid: false},
		{name: "broken json", file: "rules.json", content: `{"pricing":`, wantValid: false},
		{name: "unsupported extension", file: "rules.toml", content: completeRules, wantValid: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report := validateRules(writeFile(t, tt.file, tt.content), tt.strict)

			if report.Valid != tt.wantValid {
				t.Fatalf("Valid = %v, want %v (error: %s)", report.Valid, tt.wantValid, report.Error)
			}
			if !tt.wantValid {
				if report.Error == "" {
					t.Error("invalid report has no error")
				}
				return
			}
			if report.Currency != "EUR" {
				t.Errorf("Currency = %q", report.Currency)
			}
			if len(report.MissingDeliveryKeys) != tt.wantMissing {
				t.Errorf("missing keys = %v, want %d", report.MissingDeliveryKeys, tt.wantMissing)
			}
		})
	}
}

func TestValidationReport_WriteText(t *testing.T) {
	var buf bytes.Buffer
	report := validateRules(writeFile(t, "rules.yaml", partialRules), false)
	if err := report.WriteText(&buf); err != nil {
		t.Fatalf("WriteText() error = %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "is valid") {
		t.Errorf("expected valid header:\n%s", out)
	}
	if !strings.Contains(out, "missing delivery times: national_express, international_standard, international_express") {
		t.Errorf("expected missing keys:\n%s", out)
	}

	buf.Reset()
	bad := validateRules(writeFile(t, "rules.json", "{}"), false)
	if err := bad.WriteText(&buf); err != nil {
		t.Fatalf("WriteText() error = %v", err)
	}
	if !strings.HasPrefix(buf.String(), "✗ ") {
		t.Errorf("expected failure line, got %q", buf.String())
	}
}

func TestValidationReport_JSON(t *testing.T) {
	report := validateRules(writeFile(t, "rules.json", completeRules), false)

	data, err := json.Marshal(report)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded["valid"] != true {
		t.Errorf("valid = %v", decoded["valid"])
	}
	sections, ok := decoded["sections"].(map[string]any)
	if !ok || sections["delivery_times"] != true {
		t.Errorf("sections = %v", decoded["sections"])
	}
	if _, ok := decoded["missing_delivery_keys"]; ok {
		t.Error("complete table should omit missing_delivery_keys")
	}
}
