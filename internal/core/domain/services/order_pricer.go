package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"freight/internal/core/domain/model/order"
	"freight/internal/core/domain/model/pricing"
	"freight/internal/pkg/errs"
)

// OrderPricer applies the acceptance rules and the pricing engine to orders.
//
// Business rules:
//   - The combined weight of all pieces may not exceed the configured maximum
//   - The requested pickup date may not lie before today
//   - Destinations in excluded postal codes are refused
//   - Costs come only from current items, current rates and current percentages
//
// Example usage:
//
//	pricer, _ := services.NewOrderPricer(settings, []string{"X0A 0H0"})
//	if err := pricer.CheckAcceptance(o, time.Now()); err != nil {
//	    // reject the submission before any external call
//	}
//	if err := pricer.Price(o, discount); err != nil {
//	    // ...
//	}
type OrderPricer struct {
	settings pricing.Settings
	excluded map[string]struct{}
}

// NewOrderPricer validates settings. Postal codes are compared without whitespace and case.
func NewOrderPricer(settings pricing.Settings, excludedPostalCodes []string) (OrderPricer, error) {
	if err := settings.Validate(); err != nil {
		return OrderPricer{}, err
	}
	excluded := make(map[string]struct{}, len(excludedPostalCodes))
	for _, code := range excludedPostalCodes {
		if c := compact(code); c != "" {
			excluded[c] = struct{}{}
		}
	}
	return OrderPricer{settings: settings, excluded: excluded}, nil
}

func (p OrderPricer) Settings() pricing.Settings {
	return p.settings
}

// CheckAcceptance reports every rule the order breaks.
func (p OrderPricer) CheckAcceptance(o *order.Order, now time.Time) error {
	if err := o.Validate(); err != nil {
		return err
	}

	var problems []error
	if total := o.TotalWeight(); total.GreaterThan(p.settings.MaxOrderWeight) {
		problems = append(problems, errs.NewValueIsOutOfRangeErrorWithCause(
			"totalWeight", total.String(), 0, p.settings.MaxOrderWeight.String(),
			fmt.Errorf("maximum combined weight is %s lbs", p.settings.MaxOrderWeight)))
	}

	y, m, d := now.Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	if o.RequestedDate().Before(today) {
		problems = append(problems, errs.NewValueIsInvalidErrorWithCause("requestedDate",
			fmt.Errorf("%s is in the past", o.RequestedDate().Format(time.DateOnly))))
	}

	if _, ok := p.excluded[o.Destination().CompactPostalCode()]; ok {
		problems = append(problems, errs.NewValueIsInvalidErrorWithCause("destination postal code",
			fmt.Errorf("shipping is not available to %s", o.Destination().PostalCode())))
	}

	return errors.Join(problems...)
}

// Price recomputes and stores every cost of the order. discount may be nil.
func (p OrderPricer) Price(o *order.Order, discount *pricing.ClientDiscount) error {
	if err := o.Validate(); err != nil {
		return err
	}
	quote, err := p.settings.Price(o.Parcels(), discount)
	if err != nil {
		return err
	}
	return o.ApplyQuote(quote)
}

func compact(code string) string {
	return strings.ToUpper(strings.Join(strings.Fields(code), ""))
}
