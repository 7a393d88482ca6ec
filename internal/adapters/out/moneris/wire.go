package moneris

import (
	"encoding/json"
	"strings"
)

// flag decodes the gateway's booleans, which arrive either as JSON booleans
// or as the strings "true" and "false".
type flag bool

func (f *flag) UnmarshalJSON(data []byte) error {
	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		*f = flag(b)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*f = flag(strings.EqualFold(strings.TrimSpace(s), "true"))
	return nil
}

type cartItem struct {
	Description string `json:"description"`
	UnitCost    string `json:"unit_cost"`
	Quantity    int    `json:"quantity"`
	Weight      string `json:"weight"`
	Length      string `json:"length"`
	Width       string `json:"width"`
	Height      string `json:"height"`
}

type cartTax struct {
	Amount      string `json:"amount"`
	Description string `json:"description"`
	Rate        string `json:"rate"`
}

type cart struct {
	Items    []cartItem `json:"items"`
	Subtotal string     `json:"subtotal"`
	Tax      cartTax    `json:"tax"`
}

type contactDetails struct {
	Email string `json:"email"`
}

type preloadRequest struct {
	StoreID        string         `json:"store_id"`
	APIToken       string         `json:"api_token"`
	CheckoutID     string         `json:"checkout_id"`
	TxnTotal       string         `json:"txn_total"`
	Environment    string         `json:"environment"`
	Action         string         `json:"action"`
	CustID         string         `json:"cust_id"`
	Cart           cart           `json:"cart"`
	ContactDetails contactDetails `json:"contact_details"`
}

type preloadResponse struct {
	Response struct {
		Success flag   `json:"success"`
		Ticket  string `json:"ticket"`
	} `json:"response"`
}

type receiptRequest struct {
	StoreID     string `json:"store_id"`
	APIToken    string `json:"api_token"`
	CheckoutID  string `json:"checkout_id"`
	Ticket      string `json:"ticket"`
	Environment string `json:"environment"`
	Action      string `json:"action"`
}

type receiptResponse struct {
	Response struct {
		Success flag `json:"success"`
		Receipt struct {
			Result string `json:"result"`
			CC     struct {
				OrderNo       string `json:"order_no"`
				TransactionNo string `json:"transaction_no"`
			} `json:"cc"`
		} `json:"receipt"`
	} `json:"response"`
}

type completionRequest struct {
	StoreID               string `json:"store_id"`
	APIToken              string `json:"api_token"`
	Type                  string `json:"type"`
	TxnNumber             string `json:"txn_number"`
	OrderID               string `json:"order_id"`
	CompAmount            string `json:"comp_amount"`
	CryptType             string `json:"crypt_type"`
	ProcessingCountryCode string `json:"processing_country_code"`
	TestMode              bool   `json:"test_mode"`
}

type completionResponse struct {
	Response struct {
		Complete  flag   `json:"complete"`
		Message   string `json:"message"`
		ReceiptID string `json:"receipt_id"`
	} `json:"response"`
}
