package errs

import (
	"errors"
	"fmt"
)

// Failure classes reported by the order fulfillment steps.
var (
	ErrInvalidStatus        = errors.New("order status does not allow this step")
	ErrNotOwner             = errors.New("order belongs to another customer")
	ErrUnauthenticated      = errors.New("customer identity is required")
	ErrGatewayFailure       = errors.New("payment gateway failure")
	ErrCarrierFailure       = errors.New("carrier booking failure")
	ErrCaptureInconsistency = errors.New("shipment booked but payment capture failed")
	ErrOrderLocked          = errors.New("another step is in progress for this order")
)

// StepError ties a failure to the order and the step that produced it.
type StepError struct {
	OrderID   string
	Operation string
	Err       error
}

func NewStepError(orderID, operation string, err error) *StepError {
	return &StepError{OrderID: orderID, Operation: operation, Err: err}
}

func (e *StepError) Error() string {
	return fmt.Sprintf("%s failed for order %s: %v", e.Operation, e.OrderID, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}
