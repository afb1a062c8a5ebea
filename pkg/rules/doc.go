// Package rules loads and validates the shipping rules document.
//
// A rules document supplies four sections:
//
//	{
//	  "pricing": {
//	    "base_price": 5.0,
//	    "price_per_kg": 2.0,
//	    "price_per_cubic_cm": 0.001,
//	    "express_multiplier": 1.5,
//	    "international_multiplier": 2.0
//	  },
//	  "alerts": {
//	    "heavy_weight_kg": 20,
//	    "oversized_cm": 100,
//	    "bulky_volume_cm3": 50000
//	  },
//	  "delivery_times": {
//	    "national_standard": "3-5 business days",
//	    "national_express": "1-2 business days",
//	    "international_standard": "7-14 business days",
//	    "international_express": "3-5 business days"
//	  },
//	  "currency": "EUR"
//	}
//
// Documents ending in .json are decoded as JSON; .yaml and .yml are decoded
// as YAML. Unknown fields are rejected in both formats.
//
// The document is read once at startup and turned into a RuleSet. A RuleSet
// has no setters and hands out copies of its sections, so it can be shared by
// any number of concurrent requests without locking.
package rules
