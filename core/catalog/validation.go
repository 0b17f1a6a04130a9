// Package catalog - Catalog validation
// Ensures every rate table honours the tier invariants before it is used for quotes.
package catalog

import (
	stderrors "errors"
	"fmt"

	"studio-quote/core/types"
	"studio-quote/internal/errors"
)

// ValidationRule checks one rate of a service table
type ValidationRule func(service types.ServiceType, r Rate) error

// DefaultValidationRules returns the standard validation rules
func DefaultValidationRules() []ValidationRule {
	return []ValidationRule{
		validateKnownSize,
		validateNonNegativePrice,
		validateTierPricingMode,
	}
}

// Validate checks a catalog against validation rules and returns every violation
func (c *Catalog) Validate(rules []ValidationRule) []error {
	var errs []error

	for _, service := range types.ServiceTypes {
		if _, ok := c.tables[service]; !ok {
			errs = append(errs, fmt.Errorf("%s: no rate table", service))
		}
	}

	for _, service := range c.serviceList {
		if !service.IsValid() {
			errs = append(errs, fmt.Errorf("%s: unknown service type", service))
			continue
		}
		table := c.tables[service]

		single, ok := table.Get(types.SizeSingle)
		if !ok {
			errs = append(errs, fmt.Errorf("%s: table has no %q entry", service, types.SizeSingle))
		} else if single.PerSong {
			errs = append(errs, fmt.Errorf("%s:%s: single must be priced flat", service, single.Key))
		}

		for _, r := range table.rates {
			for _, rule := range rules {
				if err := rule(service, r); err != nil {
					errs = append(errs, fmt.Errorf("%s:%s: %w", service, r.Key, err))
				}
			}
		}
	}

	for _, a := range c.addOns {
		if !a.Key.IsValid() {
			errs = append(errs, fmt.Errorf("add-on %s: unknown key", a.Key))
		}
		if a.Price.IsNegative() {
			errs = append(errs, fmt.Errorf("add-on %s: price %s is negative", a.Key, a.Price))
		}
	}

	return errs
}

// Check runs the default rules and folds violations into one CONFIG_ERROR
func (c *Catalog) Check() error {
	errs := c.Validate(DefaultValidationRules())
	if len(errs) == 0 {
		return nil
	}
	return errors.Wrapf(errors.TypeConfig, stderrors.Join(errs...), "catalog has %d invalid entries", len(errs))
}

// validateKnownSize rejects size keys outside the closed set
func validateKnownSize(_ types.ServiceType, r Rate) error {
	if !r.Key.IsValid() {
		return fmt.Errorf("unknown project size")
	}
	return nil
}

// validateNonNegativePrice rejects negative unit prices
func validateNonNegativePrice(_ types.ServiceType, r Rate) error {
	if r.Price.IsNegative() {
		return fmt.Errorf("price %s is negative", r.Price)
	}
	return nil
}

// validateTierPricingMode requires every tier past single to be priced per song
func validateTierPricingMode(_ types.ServiceType, r Rate) error {
	if r.Key != types.SizeSingle && !r.PerSong {
		return fmt.Errorf("multi-song tier must be priced per song")
	}
	return nil
}
