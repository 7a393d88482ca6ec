// Package kernel holds value objects shared by the order and address-book aggregates.
//
// The package includes:
//   - UUID: external identifier of orders and address-book entries
//   - Actor and Owner: who is calling and who an aggregate belongs to
//   - PostalAddress: pickup and destination addresses
//
// All values are immutable and must be built through their constructors.
package kernel
