// Package services contains domain services that coordinate several domain
// objects without belonging to any single aggregate.
//
// OrderPricer decides whether a submitted order can be accepted (combined
// weight, requested date, destination postal code) and prices it with the
// global rates or a customer's discount.
package services
