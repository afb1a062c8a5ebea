package main

import (
	"os"
	"path/filepath"
	"testing"
)

const completeRules = `{
  "pricing": {
    "base_price": 5.0,
    "price_per_kg": 2.0,
    "price_per_cubic_cm": 0.001,
    "express_multiplier": 1.5,
    "international_multiplier": 2.0
  },
  "alerts": {
    "heavy_weight_kg": 20,
    "oversized_cm": 100,
    "bulky_volume_cm3": 50000
  },
  "delivery_times": {
    "national_standard": "3-5 business days",
    "national_express": "1-2 business days",
    "international_standard": "7-14 business days",
    "international_express": "3-5 business days"
  }
}`

const partialRules = `pricing:
  base_price: 5
  price_per_kg: 2
  price_per_cubic_cm: 0.001
  express_multiplier: 1.5
  international_multiplier: 2
alerts:
  heavy_weight_kg: 20
  oversized_cm: 100
  bulky_volume_cm3: 50000
delivery_times:
  national_standard: 3-5 business days
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}
