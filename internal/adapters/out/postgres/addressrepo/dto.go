// Package addressrepo stores address-book entries.
package addressrepo

import (
	"time"

	"freight/internal/core/domain/model/address"
	"freight/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// AddressDTO is one row of the addresses table.
type AddressDTO struct {
	ID                 uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID             int64     `gorm:"index;not null"`
	Type               string    `gorm:"type:varchar(16);not null"`
	Organization       string    `gorm:"type:varchar(255)"`
	AddressLine1       string    `gorm:"type:varchar(255);not null"`
	AddressLine2       string    `gorm:"type:varchar(255)"`
	Locality           string    `gorm:"type:varchar(128);not null"`
	AdministrativeArea string    `gorm:"type:varchar(64);not null"`
	PostalCode         string    `gorm:"type:varchar(16);not null"`
	CountryCode        string    `gorm:"type:char(2);not null"`
	Email              string    `gorm:"type:varchar(255)"`
	Phone              string    `gorm:"type:varchar(32)"`
	CreatedAt          time.Time
}

func (AddressDTO) TableName() string {
	return "addresses"
}

func fromDomain(a *address.Address) AddressDTO {
	f := a.Postal().Fields()
	return AddressDTO{
		ID:                 a.ID().Value(),
		UserID:             a.OwnerID(),
		Type:               string(a.Type()),
		Organization:       f.Organization,
		AddressLine1:       f.AddressLine1,
		AddressLine2:       f.AddressLine2,
		Locality:           f.Locality,
		AdministrativeArea: f.AdministrativeArea,
		PostalCode:         f.PostalCode,
		CountryCode:        f.CountryCode,
		Email:              a.Email(),
		Phone:              a.Phone(),
	}
}

func toDomain(dto AddressDTO) (*address.Address, error) {
	id, err := kernel.UUIDFrom(dto.ID)
	if err != nil {
		return nil, err
	}
	addressType, err := address.ParseType(dto.Type)
	if err != nil {
		return nil, err
	}
	postal, err := kernel.NewPostalAddress(kernel.PostalAddressFields{
		Organization:       dto.Organization,
		AddressLine1:       dto.AddressLine1,
		AddressLine2:       dto.AddressLine2,
		Locality:           dto.Locality,
		AdministrativeArea: dto.AdministrativeArea,
		PostalCode:         dto.PostalCode,
		CountryCode:        dto.CountryCode,
	})
	if err != nil {
		return nil, err
	}
	return address.RestoreAddress(id, dto.UserID, addressType, postal, dto.Email, dto.Phone), nil
}
