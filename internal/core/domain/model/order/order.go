package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/pricing"
	"freight/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order was not created through
	// NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")
)

// Details is everything the customer enters on the order form.
type Details struct {
	Items         []Item
	Pickup        kernel.PostalAddress
	Destination   kernel.PostalAddress
	Contact       Contact
	ShippingType  ShippingType
	AccountNumber string
	RequestedDate time.Time
	Comments      string

	// SavePickup and SaveDestination ask for the addresses to be copied into
	// the customer's address book when the order is finalized.
	SavePickup      bool
	SaveDestination bool
}

func (d Details) normalized() Details {
	d.Contact = d.Contact.normalized()
	d.AccountNumber = strings.TrimSpace(d.AccountNumber)
	d.Comments = strings.TrimSpace(d.Comments)
	if d.ShippingType == "" {
		d.ShippingType = Prepaid
	}
	if !d.RequestedDate.IsZero() {
		y, m, day := d.RequestedDate.Date()
		d.RequestedDate = time.Date(y, m, day, 0, 0, 0, 0, time.UTC)
	}
	return d
}

func (d Details) validate() error {
	problems := []error{
		d.Pickup.Validate(),
		d.Destination.Validate(),
		d.Contact.Validate(),
	}
	if len(d.Items) == 0 {
		problems = append(problems, errs.NewValueIsRequiredError("items"))
	}
	for i, item := range d.Items {
		if err := item.Validate(); err != nil {
			problems = append(problems, fmt.Errorf("item %d: %w", i+1, err))
		}
	}
	if _, err := ParseShippingType(string(d.ShippingType)); err != nil {
		problems = append(problems, err)
	}
	if d.RequestedDate.IsZero() {
		problems = append(problems, errs.NewValueIsRequiredError("requestedDate"))
	}
	return errors.Join(problems...)
}

// Costs is the priced breakdown stored on the order.
type Costs struct {
	Subtotal      decimal.Decimal
	FuelSurcharge decimal.Decimal
	Tax           decimal.Decimal
	Total         decimal.Decimal
}

// PaymentRefs are the identifiers the payment gateway handed out for the order.
type PaymentRefs struct {
	Ticket         string
	TicketIssuedAt time.Time
	GatewayOrderNo string
	GatewayTxnNo   string
}

// Order is the aggregate root of a shipment order. It owns the fulfillment
// status and the provider references, and only its methods change them.
//
// Order follows these invariants:
//   - It has an external UUID and an owner (customer or guest session)
//   - It has at least one item, a pickup and a destination address
//   - Provider references are written only together with a status change
//   - Costs are whatever the last ApplyQuote produced
type Order struct {
	number  int64
	id      kernel.UUID
	owner   kernel.Owner
	status  Status
	details Details
	costs   Costs
	payment PaymentRefs
	labelID string
	version int

	isConstructed bool
}

// NewOrder validates a submitted order. The initial status is CollectBilling
// when billing happens outside the payment gateway (collect or third-party
// shipping, or a registered account holder) and OrderCreated otherwise.
//
// The order is not priced yet; callers apply a pricing.Quote before saving.
func NewOrder(id kernel.UUID, actor kernel.Actor, details Details) (*Order, error) {
	if !actor.IsAuthenticated() {
		return nil, errs.ErrUnauthenticated
	}
	details = details.normalized()
	if err := errors.Join(id.Validate(), details.validate()); err != nil {
		return nil, err
	}

	return &Order{
		id:            id,
		owner:         actor.Owner(),
		status:        initialStatus(actor, details.ShippingType),
		details:       details,
		isConstructed: true,
	}, nil
}

func initialStatus(actor kernel.Actor, shippingType ShippingType) Status {
	if shippingType.BillsOutOfBand() || actor.IsAccountHolder() {
		return CollectBilling
	}
	return OrderCreated
}

// Snapshot is the full persisted state of an order.
type Snapshot struct {
	Number  int64
	ID      kernel.UUID
	Owner   kernel.Owner
	Status  Status
	Details Details
	Costs   Costs
	Payment PaymentRefs
	LabelID string
	Version int
}

// RestoreOrder rebuilds an order loaded from storage. Only the identity and
// status are checked; stored rows are trusted otherwise.
func RestoreOrder(s Snapshot) (*Order, error) {
	if err := errors.Join(s.ID.Validate(), s.Status.Validate()); err != nil {
		return nil, err
	}
	return &Order{
		number:        s.Number,
		id:            s.ID,
		owner:         s.Owner,
		status:        s.Status,
		details:       s.Details,
		costs:         s.Costs,
		payment:       s.Payment,
		labelID:       s.LabelID,
		version:       s.Version,
		isConstructed: true,
	}, nil
}

// Snapshot exports the state for persistence.
func (o *Order) Snapshot() Snapshot {
	details := o.details
	details.Items = append([]Item(nil), o.details.Items...)
	return Snapshot{
		Number:  o.number,
		ID:      o.id,
		Owner:   o.owner,
		Status:  o.status,
		Details: details,
		Costs:   o.costs,
		Payment: o.payment,
		LabelID: o.labelID,
		Version: o.version,
	}
}

func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.UUID {
	return o.id
}

// Number is the storage sequence number; zero until the order is first saved.
func (o *Order) Number() int64 {
	return o.number
}

func (o *Order) Owner() kernel.Owner {
	return o.owner
}

func (o *Order) Status() Status {
	return o.status
}

func (o *Order) Items() []Item {
	return append([]Item(nil), o.details.Items...)
}

func (o *Order) Pickup() kernel.PostalAddress {
	return o.details.Pickup
}

func (o *Order) Destination() kernel.PostalAddress {
	return o.details.Destination
}

func (o *Order) Contact() Contact {
	return o.details.Contact
}

func (o *Order) ShippingType() ShippingType {
	return o.details.ShippingType
}

// AccountNumber is the carrier account entered for collect or third-party billing.
func (o *Order) AccountNumber() string {
	return o.details.AccountNumber
}

func (o *Order) RequestedDate() time.Time {
	return o.details.RequestedDate
}

func (o *Order) Comments() string {
	return o.details.Comments
}

func (o *Order) Costs() Costs {
	return o.costs
}

func (o *Order) Payment() PaymentRefs {
	return o.payment
}

func (o *Order) LabelID() string {
	return o.labelID
}

func (o *Order) Version() int {
	return o.version
}

// AssignNumber is called by the repository once the row exists.
func (o *Order) AssignNumber(n int64) error {
	if o.number != 0 && o.number != n {
		return errs.NewValueIsInvalidErrorWithCause("number", fmt.Errorf("order already numbered %d", o.number))
	}
	if n <= 0 {
		return errs.NewValueIsOutOfRangeError("number", n, 1, "max int64")
	}
	o.number = n
	return nil
}

// SyncVersion is called by the repository after a successful versioned write.
func (o *Order) SyncVersion(v int) {
	o.version = v
}

// Parcels are the items as the pricing engine sees them.
func (o *Order) Parcels() []pricing.Parcel {
	parcels := make([]pricing.Parcel, len(o.details.Items))
	for i, item := range o.details.Items {
		parcels[i] = item
	}
	return parcels
}

// TotalWeight is the combined weight of every piece in the order.
func (o *Order) TotalWeight() decimal.Decimal {
	total := decimal.Zero
	for _, item := range o.details.Items {
		total = total.Add(item.TotalWeight())
	}
	return total
}

// ApplyQuote stores the line costs and totals computed for the current items.
func (o *Order) ApplyQuote(q pricing.Quote) error {
	if len(q.ItemCosts) != len(o.details.Items) {
		return errs.NewValueIsInvalidErrorWithCause("quote",
			fmt.Errorf("quote has %d item costs for %d items", len(q.ItemCosts), len(o.details.Items)))
	}
	for i := range o.details.Items {
		o.details.Items[i] = o.details.Items[i].withCost(q.ItemCosts[i])
	}
	o.costs = Costs{
		Subtotal:      q.Subtotal,
		FuelSurcharge: q.FuelSurcharge,
		Tax:           q.Tax,
		Total:         q.Total,
	}
	return nil
}

// Edit replaces the entered details while the order is still editable and
// re-derives the initial status. The order must be repriced afterwards.
func (o *Order) Edit(actor kernel.Actor, details Details) error {
	if err := o.status.ValidateStep(StepEdit); err != nil {
		return err
	}
	details = details.normalized()
	if err := details.validate(); err != nil {
		return err
	}
	o.details = details
	o.costs = Costs{}
	o.status = initialStatus(actor, details.ShippingType)
	return nil
}

// ValidateStep fails with errs.ErrInvalidStatus when the step is not allowed now.
func (o *Order) ValidateStep(step Step) error {
	return o.status.ValidateStep(step)
}

// LiveTicket returns the payment ticket if one was issued for the current
// pending payment and is younger than ttl.
func (o *Order) LiveTicket(now time.Time, ttl time.Duration) (string, bool) {
	if o.status != PendingPayment || o.payment.Ticket == "" {
		return "", false
	}
	if !now.Before(o.payment.TicketIssuedAt.Add(ttl)) {
		return "", false
	}
	return o.payment.Ticket, true
}

// AttachPaymentTicket records a freshly issued gateway ticket and moves the order to PendingPayment.
func (o *Order) AttachPaymentTicket(ticket string, issuedAt time.Time) error {
	if strings.TrimSpace(ticket) == "" {
		return errs.NewValueIsRequiredError("ticket")
	}
	next, err := o.status.RequestPayment()
	if err != nil {
		return err
	}
	o.status = next
	o.payment.Ticket = ticket
	o.payment.TicketIssuedAt = issuedAt
	return nil
}

// Authorize records an accepted preauthorization and its gateway references.
func (o *Order) Authorize(gatewayOrderNo, gatewayTxnNo string) error {
	if err := errors.Join(
		requireText("gatewayOrderNo", gatewayOrderNo),
		requireText("gatewayTxnNo", gatewayTxnNo),
	); err != nil {
		return err
	}
	next, err := o.status.Preauthorize(true)
	if err != nil {
		return err
	}
	o.status = next
	o.payment.GatewayOrderNo = gatewayOrderNo
	o.payment.GatewayTxnNo = gatewayTxnNo
	return nil
}

// Decline records a declined or failed preauthorization. The payment step may be retried.
func (o *Order) Decline() error {
	next, err := o.status.Preauthorize(false)
	if err != nil {
		return err
	}
	o.status = next
	return nil
}

// IsPreauthorized reports whether the gateway holds funds for this order.
func (o *Order) IsPreauthorized() bool {
	return o.payment.GatewayTxnNo != ""
}

// RecordLabel stores the carrier label of a successful booking.
func (o *Order) RecordLabel(labelID string) error {
	if err := requireText("labelID", labelID); err != nil {
		return err
	}
	next, err := o.status.Book(true)
	if err != nil {
		return err
	}
	o.status = next
	o.labelID = labelID
	return nil
}

// RecordBookingFailure marks the booking as failed.
func (o *Order) RecordBookingFailure() error {
	next, err := o.status.Book(false)
	if err != nil {
		return err
	}
	o.status = next
	return nil
}

// Capture marks a booked order as paid.
func (o *Order) Capture() error {
	next, err := o.status.Capture()
	if err != nil {
		return err
	}
	o.status = next
	return nil
}

// Refund marks the preauthorization of a failed booking as released.
func (o *Order) Refund() error {
	next, err := o.status.Refund()
	if err != nil {
		return err
	}
	o.status = next
	return nil
}

// FailSettlement marks a failed capture or refund. The label id, if any, is kept.
func (o *Order) FailSettlement() error {
	next, err := o.status.FailSettlement()
	if err != nil {
		return err
	}
	o.status = next
	return nil
}

// PendingAddressBookSaves reports which addresses still have to be copied to the address book.
func (o *Order) PendingAddressBookSaves() (pickup, destination bool) {
	return o.details.SavePickup, o.details.SaveDestination
}

// AddressBookSavesDone consumes the save flags.
func (o *Order) AddressBookSavesDone() {
	o.details.SavePickup = false
	o.details.SaveDestination = false
}

func requireText(name, v string) error {
	if strings.TrimSpace(v) == "" {
		return errs.NewValueIsRequiredError(name)
	}
	return nil
}
