package order

import (
	"fmt"

	"freight/internal/pkg/errs"
)

// Status is the fulfillment state of an order.
//
// State transitions:
//
//	OrderCreated ──> PendingPayment ──┬──> PreauthSuccess ──┐
//	      │               ▲           └──> PreauthFailed ───┤(retry payment)
//	      │               └─────────────────────────────────┘
//	      │                                    │
//	      └──> CollectBilling ─────────────────┤ finalize
//	                                           ▼
//	                 ShippingLabelSuccess ──┬──> CaptureSuccess
//	                                        └──> CaptureFailed
//	                 ShippingLabelFailed  ──┬──> RefundSuccess
//	                                        └──> CaptureFailed
//
// Statuses are persisted by their code (see Code).
type Status int

const (
	Unknown Status = iota
	OrderCreated
	PendingPayment
	CollectBilling
	PreauthSuccess
	PreauthFailed
	ShippingLabelSuccess
	ShippingLabelFailed
	CaptureSuccess
	CaptureFailed
	RefundSuccess
)

func getStatusCodes() map[Status]string {
	return map[Status]string{
		OrderCreated:         "order_created",
		PendingPayment:       "pending_payment",
		CollectBilling:       "collect_billing",
		PreauthSuccess:       "preauth_success",
		PreauthFailed:        "preauth_failed",
		ShippingLabelSuccess: "shipping_label_success",
		ShippingLabelFailed:  "shipping_label_failed",
		CaptureSuccess:       "capture_success",
		CaptureFailed:        "capture_failed",
		RefundSuccess:        "refund_success",
	}
}

// ParseStatus maps a persisted code back to a Status.
func ParseStatus(code string) (Status, error) {
	for s, c := range getStatusCodes() {
		if c == code {
			return s, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a known status", code))
}

func (s Status) Validate() error {
	if _, ok := getStatusCodes()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// Code is the stable machine name stored in the database and shown in APIs.
func (s Status) Code() string {
	if c, ok := getStatusCodes()[s]; ok {
		return c
	}
	return "unknown"
}

func (s Status) String() string {
	return s.Code()
}

// Step is a workflow operation guarded by a status whitelist.
type Step int

const (
	// StepEdit changes items or addresses and reprices the order.
	StepEdit Step = iota + 1
	// StepPayment requests a payment ticket or confirms a preauthorization.
	StepPayment
	// StepFinalize books the shipment and settles payment.
	StepFinalize
	// StepComplete shows the outcome page.
	StepComplete
)

func (st Step) String() string {
	switch st {
	case StepEdit:
		return "edit"
	case StepPayment:
		return "payment"
	case StepFinalize:
		return "finalize"
	case StepComplete:
		return "complete"
	default:
		return "unknown step"
	}
}

func getStepWhitelists() map[Step][]Status {
	return map[Step][]Status{
		StepEdit:     {OrderCreated, CollectBilling},
		StepPayment:  {OrderCreated, PendingPayment, PreauthFailed},
		StepFinalize: {PreauthSuccess, CollectBilling},
		StepComplete: {CaptureSuccess, CaptureFailed, RefundSuccess},
	}
}

// Allows reports whether a step may run in this status.
func (s Status) Allows(step Step) bool {
	for _, allowed := range getStepWhitelists()[step] {
		if allowed == s {
			return true
		}
	}
	return false
}

// ValidateStep is Allows with an errs.ErrInvalidStatus error.
func (s Status) ValidateStep(step Step) error {
	if !s.Allows(step) {
		return invalidTransition(s, step.String())
	}
	return nil
}

// IsTerminal reports whether no step can move the order any further.
func (s Status) IsTerminal() bool {
	return s == CaptureSuccess || s == CaptureFailed || s == RefundSuccess
}

// RequestPayment moves a payable order to PendingPayment.
func (s Status) RequestPayment() (Status, error) {
	if err := s.ValidateStep(StepPayment); err != nil {
		return Unknown, err
	}
	return PendingPayment, nil
}

// Preauthorize records the gateway's verdict on the preauthorization.
func (s Status) Preauthorize(accepted bool) (Status, error) {
	if err := s.ValidateStep(StepPayment); err != nil {
		return Unknown, err
	}
	if accepted {
		return PreauthSuccess, nil
	}
	return PreauthFailed, nil
}

// Book records the carrier's booking outcome.
func (s Status) Book(succeeded bool) (Status, error) {
	if err := s.ValidateStep(StepFinalize); err != nil {
		return Unknown, err
	}
	if succeeded {
		return ShippingLabelSuccess, nil
	}
	return ShippingLabelFailed, nil
}

// Capture settles a booked order.
func (s Status) Capture() (Status, error) {
	if s != ShippingLabelSuccess {
		return Unknown, invalidTransition(s, "capture")
	}
	return CaptureSuccess, nil
}

// Refund releases the preauthorization of an order whose booking failed.
func (s Status) Refund() (Status, error) {
	if s != ShippingLabelFailed {
		return Unknown, invalidTransition(s, "refund")
	}
	return RefundSuccess, nil
}

// FailSettlement records a failed capture or refund. Both need manual reconciliation.
func (s Status) FailSettlement() (Status, error) {
	if s != ShippingLabelSuccess && s != ShippingLabelFailed {
		return Unknown, invalidTransition(s, "fail settlement")
	}
	return CaptureFailed, nil
}

func invalidTransition(s Status, action string) error {
	return fmt.Errorf("%w: %s is not a valid status to %s", errs.ErrInvalidStatus, s, action)
}
