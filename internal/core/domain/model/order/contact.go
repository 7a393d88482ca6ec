package order

import (
	"errors"
	"net/mail"
	"strings"

	"freight/internal/pkg/errs"
)

// Contact holds the people the carrier notifies: the shipper at pickup and the consignee at delivery.
type Contact struct {
	UserEmail        string
	UserPhone        string
	DestinationEmail string
	DestinationPhone string
}

func (c Contact) normalized() Contact {
	return Contact{
		UserEmail:        strings.TrimSpace(c.UserEmail),
		UserPhone:        strings.TrimSpace(c.UserPhone),
		DestinationEmail: strings.TrimSpace(c.DestinationEmail),
		DestinationPhone: strings.TrimSpace(c.DestinationPhone),
	}
}

// Validate requires the shipper's email and phone; consignee details are optional.
func (c Contact) Validate() error {
	var problems []error
	if c.UserEmail == "" {
		problems = append(problems, errs.NewValueIsRequiredError("userEmail"))
	} else if _, err := mail.ParseAddress(c.UserEmail); err != nil {
		problems = append(problems, errs.NewValueIsInvalidErrorWithCause("userEmail", err))
	}
	if c.UserPhone == "" {
		problems = append(problems, errs.NewValueIsRequiredError("userPhone"))
	}
	if c.DestinationEmail != "" {
		if _, err := mail.ParseAddress(c.DestinationEmail); err != nil {
			problems = append(problems, errs.NewValueIsInvalidErrorWithCause("destinationEmail", err))
		}
	}
	return errors.Join(problems...)
}
