// Package order models a freight shipment order and its fulfillment state machine.
//
// The package includes:
//   - Order: the aggregate root holding items, addresses, costs and provider references
//   - Item: one order line of identical pieces
//   - Status and Step: the fulfillment states and the status whitelist of every step
//   - ShippingType: who pays the carrier
//
// Key business rules:
//   - Collect and third-party shipments, and orders placed by account holders,
//     skip the payment gateway and start in collect_billing
//   - Payment may be requested or confirmed from order_created, pending_payment or preauth_failed
//   - Finalization runs only from preauth_success or collect_billing
//   - A booked shipment is captured; a failed booking is refunded; a failed
//     capture or refund ends in capture_failed for manual reconciliation
//   - A label id and gateway references are only written by the transition
//     that records them
package order
