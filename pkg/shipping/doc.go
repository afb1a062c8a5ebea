// Package shipping computes shipping quotes from package measurements and a
// rules.RuleSet.
//
// The package is split into small calculators that can be used on their own
// and a Quoter that runs them in sequence:
//
//   - Volume multiplies the three linear dimensions.
//   - Price applies the linear formula and the compounding express and
//     international multipliers, then rounds to two decimals.
//   - GenerateAlerts evaluates the heavy, oversized, bulky and international
//     checks in that order.
//   - DeliveryTime resolves the estimate from the delivery-time table.
//
// # Destination handling
//
// Price treats any destination other than "international" as national, while
// DeliveryTime rejects anything other than "national" or "international".
// Callers relying on the lenient behaviour of Price must not assume the same
// value will pass through Quote.
//
// # Errors
//
// All failures are typed so that the HTTP layer can classify them:
//
//	result, err := quoter.Quote(ctx, params)
//	if err != nil {
//	    status := shipping.StatusCode(err) // 400 or 500
//	    ...
//	}
//
// ConfigurationError is the only domain error that maps to 500; it means the
// rules file lacks a delivery-time entry the request legitimately asked for.
package shipping
