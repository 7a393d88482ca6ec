package shiptrack

import (
	"bytes"
	"encoding/json"
	"strings"

	"golang.org/x/net/html"
)

type client struct {
	EDIClientID string `json:"EDIClientID"`
}

type serviceType struct {
	ServiceCode        string   `json:"ServiceCode"`
	ServiceTypeOptions []string `json:"ServiceTypeOptions"`
}

type details struct {
	Client          client      `json:"Client"`
	RequestedDate   string      `json:"RequestedDate"`
	ServiceType     serviceType `json:"ServiceType"`
	JobOption       *string     `json:"JobOption"`
	PaymentTypeCode string      `json:"PaymentTypeCode"`
	AccountNumber   *string     `json:"AccountNumber"`
	DeclaredValue   *string     `json:"DeclaredValue"`
	Description     *string     `json:"Description"`
	ParcelType      *string     `json:"ParcelType"`
	SalesOrder      *string     `json:"SalesOrder"`
	CarrierRef      string      `json:"CarrierRef"`
	Reference1      *string     `json:"Reference1"`
	Reference2      *string     `json:"Reference2"`
	Comments        *string     `json:"Comments"`
}

type address struct {
	RouteCode           string `json:"RouteCode"`
	CompanyName         string `json:"CompanyName"`
	Address1            string `json:"Address1"`
	Address2            string `json:"Address2"`
	Address3            string `json:"Address3"`
	City                string `json:"City"`
	ProvinceStateCode   string `json:"ProvinceStateCode"`
	PostalZipCode       string `json:"PostalZipCode"`
	CountryCode         string `json:"CountryCode"`
	PhoneNumber         string `json:"PhoneNumber"`
	Email               string `json:"Email"`
	TransitNotification bool   `json:"TransitNotification"`
	PODNotification     bool   `json:"PODNotification"`
}

type piece struct {
	Description string  `json:"Description"`
	Weight      string  `json:"Weight"`
	Length      string  `json:"Length"`
	Width       string  `json:"Width"`
	Height      string  `json:"Height"`
	Barcode     *string `json:"Barcode"`
}

// itemsInfo always uses pounds and inches.
type itemsInfo struct {
	UOMW  string  `json:"UOM_W"`
	UOML  string  `json:"UOM_L"`
	Items []piece `json:"Items"`
}

type jobRequest struct {
	Details         details   `json:"Details"`
	PickUpAddress   address   `json:"PickUpAddress"`
	DeliveryAddress address   `json:"DeliveryAddress"`
	ItemsInfo       itemsInfo `json:"ItemsInfo"`
}

type jobResponse struct {
	Results struct {
		Success bool `json:"Success"`
		Errors  []struct {
			Message string `json:"Message"`
		} `json:"Errors"`
	} `json:"Results"`
	ID jobID `json:"ID"`
}

// jobID accepts the job identifier as a JSON string or number.
type jobID string

func (id *jobID) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*id = jobID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*id = jobID(n.String())
	return nil
}

// stripMarkup returns the text content of s with every tag removed.
func stripMarkup(s string) string {
	var b strings.Builder
	z := html.NewTokenizer(strings.NewReader(s))
	for {
		switch z.Next() {
		case html.ErrorToken:
			return strings.TrimSpace(b.String())
		case html.TextToken:
			b.Write(z.Text())
		}
	}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
