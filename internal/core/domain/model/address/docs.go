// Package address models a customer's address book.
//
// Business rules:
//   - An entry belongs to one registered customer and is either a pickup or a destination address
//   - Pickup entries carry the shipper's contact details, destination entries the consignee's
//   - Only the owner may list or delete their entries
package address
