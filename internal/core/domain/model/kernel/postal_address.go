package kernel

import (
	"errors"
	"strings"

	"freight/internal/pkg/errs"
	"freight/internal/pkg/guard"
)

var ErrPostalAddressIsNotConstructed = errors.New("postal address must be created via NewPostalAddress")

// PostalAddress is a pickup or delivery address as the carrier expects it.
type PostalAddress struct {
	organization       string
	addressLine1       string
	addressLine2       string
	locality           string
	administrativeArea string
	postalCode         string
	countryCode        string

	guard guard.ConstructorGuard
}

// PostalAddressFields carries the raw address parts into NewPostalAddress.
type PostalAddressFields struct {
	Organization       string
	AddressLine1       string
	AddressLine2       string
	Locality           string
	AdministrativeArea string
	PostalCode         string
	CountryCode        string
}

// NewPostalAddress trims every part and requires street, city, province, postal code and country.
func NewPostalAddress(f PostalAddressFields) (PostalAddress, error) {
	a := PostalAddress{
		organization:       strings.TrimSpace(f.Organization),
		addressLine1:       strings.TrimSpace(f.AddressLine1),
		addressLine2:       strings.TrimSpace(f.AddressLine2),
		locality:           strings.TrimSpace(f.Locality),
		administrativeArea: strings.ToUpper(strings.TrimSpace(f.AdministrativeArea)),
		postalCode:         strings.ToUpper(strings.TrimSpace(f.PostalCode)),
		countryCode:        strings.ToUpper(strings.TrimSpace(f.CountryCode)),
		guard:              guard.NewConstructorGuard(),
	}

	var problems []error
	for name, value := range map[string]string{
		"addressLine1":       a.addressLine1,
		"locality":           a.locality,
		"administrativeArea": a.administrativeArea,
		"postalCode":         a.postalCode,
		"countryCode":        a.countryCode,
	} {
		if value == "" {
			problems = append(problems, errs.NewValueIsRequiredError(name))
		}
	}
	if len(a.countryCode) > 0 && len(a.countryCode) != 2 {
		problems = append(problems, errs.NewValueIsInvalidErrorWithCause("countryCode",
			errors.New("expected a two letter ISO code")))
	}
	if err := errors.Join(problems...); err != nil {
		return PostalAddress{}, err
	}
	return a, nil
}

func (a PostalAddress) Organization() string {
	return a.organization
}

func (a PostalAddress) AddressLine1() string {
	return a.addressLine1
}

func (a PostalAddress) AddressLine2() string {
	return a.addressLine2
}

func (a PostalAddress) Locality() string {
	return a.locality
}

func (a PostalAddress) AdministrativeArea() string {
	return a.administrativeArea
}

func (a PostalAddress) PostalCode() string {
	return a.postalCode
}

func (a PostalAddress) CountryCode() string {
	return a.countryCode
}

// Fields returns the address parts, e.g. for persistence or an edit form.
func (a PostalAddress) Fields() PostalAddressFields {
	return PostalAddressFields{
		Organization:       a.organization,
		AddressLine1:       a.addressLine1,
		AddressLine2:       a.addressLine2,
		Locality:           a.locality,
		AdministrativeArea: a.administrativeArea,
		PostalCode:         a.postalCode,
		CountryCode:        a.countryCode,
	}
}

// CompactPostalCode is the postal code with all whitespace removed ("R3C 4T3" -> "R3C4T3").
func (a PostalAddress) CompactPostalCode() string {
	return strings.Join(strings.Fields(a.postalCode), "")
}

func (a PostalAddress) Validate() error {
	return a.guard.Validate(ErrPostalAddressIsNotConstructed)
}
