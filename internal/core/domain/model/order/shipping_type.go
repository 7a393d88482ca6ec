package order

import (
	"fmt"

	"freight/internal/pkg/errs"
)

// ShippingType says who pays the carrier.
type ShippingType string

const (
	Prepaid    ShippingType = "prepaid"
	Collect    ShippingType = "collect"
	ThirdParty ShippingType = "third_party"
)

// ParseShippingType defaults an empty value to Prepaid.
func ParseShippingType(v string) (ShippingType, error) {
	switch ShippingType(v) {
	case "":
		return Prepaid, nil
	case Prepaid, Collect, ThirdParty:
		return ShippingType(v), nil
	default:
		return "", errs.NewValueIsInvalidErrorWithCause("shippingType", fmt.Errorf("%q is not a shipping type", v))
	}
}

// ServiceCode is the carrier's name for the shipping type.
func (t ShippingType) ServiceCode() string {
	switch t {
	case Collect:
		return "COLLECT"
	case ThirdParty:
		return "3RDPARTY"
	default:
		return "PREPAID"
	}
}

// BillsOutOfBand reports whether payment is arranged outside the gateway.
func (t ShippingType) BillsOutOfBand() bool {
	return t == Collect || t == ThirdParty
}
