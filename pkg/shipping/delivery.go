package shipping

import (
	"fmt"

	"mercator-hq/shipquote/pkg/rules"
)

// DeliveryTime looks up the delivery estimate for destination and speed.
//
// Unlike Price, it is strict about its inputs: destination must be exactly
// "national" or "international" and isExpress must be a real boolean. A key
// missing from the table is a ConfigurationError because the request itself
// was valid.
func DeliveryTime(destination, isExpress any, table rules.DeliveryTimes) (string, error) {
	dest, ok := destination.(string)
	if !ok || (dest != DestinationNational && dest != DestinationInternational) {
		return "", &ValidationError{
			Field: FieldDestination,
			Message: fmt.Sprintf("invalid destination %s: must be %q or %q",
				describe(destination), DestinationNational, DestinationInternational),
		}
	}

	express, ok := isExpress.(bool)
	if !ok {
		return "", &TypeMismatchError{Field: FieldExpress, Expected: "boolean", Got: typeName(isExpress)}
	}

	speed := "standard"
	if express {
		speed = "express"
	}
	key := dest + "_" + speed

	estimate, ok := table.Lookup(key)
	if !ok {
		return "", &ConfigurationError{Key: key, Available: table.Keys()}
	}
	return estimate, nil
}
