// Package handlers implements the JSON endpoints of the shipping quote API.
//
// # Endpoints
//
//   - GET /               service description (IndexHandler)
//   - GET /api/health     service health and loaded rule sections (HealthHandler)
//   - POST /api/calculate quote computation (CalculateHandler)
//
// # Responses
//
// A successful quote is returned with status 200:
//
//	{
//	  "success": true,
//	  "calculation_id": "calc_1a2b3c4d",
//	  "total_price": 34.0,
//	  "currency": "EUR",
//	  "price_breakdown": {...},
//	  "alerts": [],
//	  "estimated_delivery": "3-5 business days",
//	  "timestamp": "2026-03-14T09:26:53.123Z",
//	  "package_summary": {...}
//	}
//
// Client errors (malformed body, missing fields, invalid values) use status
// 400 and carry the error message:
//
//	{"success": false, "error": "Missing required fields: weight_kg"}
//
// Configuration and unexpected errors use status 500 with a generic message.
// Outside production the underlying error is added as "details".
package handlers
