// Package moneris is the payment gateway adapter. It drives the hosted
// checkout (preload and receipt) and sends completion transactions that
// capture or release a preauthorization.
package moneris

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"freight/internal/core/domain/model/order"
	"freight/internal/core/domain/model/pricing"
	"freight/internal/core/ports"
	"freight/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	EnvironmentQA   = "qa"
	EnvironmentProd = "prod"

	resultAccepted = "a"
	cryptType      = "7"
	countryCode    = "CA"
)

// Config holds the merchant credentials and endpoints. TaxLabel and TaxRate
// are shown on the hosted checkout page.
type Config struct {
	StoreID             string
	APIToken            string
	CheckoutID          string
	Environment         string
	RequestEndpointQA   string
	RequestEndpointProd string
	CompletionEndpoint  string
	TaxLabel            string
	TaxRate             decimal.Decimal
}

func (c Config) validate() error {
	var problems []error
	for name, v := range map[string]string{
		"storeID":            c.StoreID,
		"apiToken":           c.APIToken,
		"checkoutID":         c.CheckoutID,
		"completionEndpoint": c.CompletionEndpoint,
	} {
		if strings.TrimSpace(v) == "" {
			problems = append(problems, errs.NewValueIsRequiredError(name))
		}
	}
	switch c.Environment {
	case EnvironmentQA:
		if c.RequestEndpointQA == "" {
			problems = append(problems, errs.NewValueIsRequiredError("requestEndpointQA"))
		}
	case EnvironmentProd:
		if c.RequestEndpointProd == "" {
			problems = append(problems, errs.NewValueIsRequiredError("requestEndpointProd"))
		}
	default:
		problems = append(problems, errs.NewValueIsInvalidErrorWithCause("environment",
			fmt.Errorf("%q is neither %q nor %q", c.Environment, EnvironmentQA, EnvironmentProd)))
	}
	return errors.Join(problems...)
}

// Client implements ports.PaymentGateway.
type Client struct {
	cfg    Config
	http   *http.Client
	logger *zap.Logger
}

func NewClient(cfg Config, httpClient *http.Client, logger *zap.Logger) (*Client, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if cfg.TaxLabel == "" {
		cfg.TaxLabel = "Tax"
	}
	return &Client{
		cfg:    cfg,
		http:   httpClient,
		logger: logger.With(zap.String("component", "moneris")),
	}, nil
}

func (c *Client) requestEndpoint() string {
	if c.cfg.Environment == EnvironmentProd {
		return c.cfg.RequestEndpointProd
	}
	return c.cfg.RequestEndpointQA
}

// Preload opens a checkout for the order total and returns its ticket.
func (c *Client) Preload(ctx context.Context, o *order.Order) (string, error) {
	costs := o.Costs()
	email := o.Contact().UserEmail

	items := make([]cartItem, 0, len(o.Items()))
	for _, item := range o.Items() {
		items = append(items, cartItem{
			Description: item.Description(),
			UnitCost:    pricing.FormatPrice(item.Cost()),
			Quantity:    item.Quantity(),
			Weight:      item.Weight().String(),
			Length:      item.Length().String(),
			Width:       item.Width().String(),
			Height:      item.Height().String(),
		})
	}

	req := preloadRequest{
		StoreID:     c.cfg.StoreID,
		APIToken:    c.cfg.APIToken,
		CheckoutID:  c.cfg.CheckoutID,
		TxnTotal:    pricing.PlainAmount(costs.Total),
		Environment: c.cfg.Environment,
		Action:      "preload",
		CustID:      email,
		Cart: cart{
			Items:    items,
			Subtotal: pricing.PlainAmount(costs.Subtotal),
			Tax: cartTax{
				Amount:      pricing.PlainAmount(costs.Tax),
				Description: c.cfg.TaxLabel,
				Rate:        c.cfg.TaxRate.StringFixed(2),
			},
		},
		ContactDetails: contactDetails{Email: email},
	}

	log := c.logger.With(zap.String("order_id", o.ID().String()))
	log.Info("requesting preload ticket", zap.String("total", req.TxnTotal))

	var resp preloadResponse
	if err := c.post(ctx, c.requestEndpoint(), req, &resp); err != nil {
		return "", err
	}
	if !resp.Response.Success || resp.Response.Ticket == "" {
		log.Error("preload ticket refused")
		return "", fmt.Errorf("%w: preload was not successful", errs.ErrGatewayFailure)
	}

	log.Info("preload ticket acquired", zap.String("ticket", resp.Response.Ticket))
	return resp.Response.Ticket, nil
}

// Receipt reads the outcome of the checkout opened with ticket.
func (c *Client) Receipt(ctx context.Context, ticket string) (ports.Receipt, error) {
	req := receiptRequest{
		StoreID:     c.cfg.StoreID,
		APIToken:    c.cfg.APIToken,
		CheckoutID:  c.cfg.CheckoutID,
		Ticket:      ticket,
		Environment: c.cfg.Environment,
		Action:      "receipt",
	}

	var resp receiptResponse
	if err := c.post(ctx, c.requestEndpoint(), req, &resp); err != nil {
		return ports.Receipt{}, err
	}
	if !resp.Response.Success {
		c.logger.Error("receipt unavailable", zap.String("ticket", ticket))
		return ports.Receipt{}, fmt.Errorf("%w: receipt was not successful", errs.ErrGatewayFailure)
	}

	r := resp.Response.Receipt
	receipt := ports.Receipt{
		Accepted:   r.Result == resultAccepted,
		ResultCode: r.Result,
	}
	if receipt.Accepted {
		receipt.OrderNo = r.CC.OrderNo
		receipt.TransactionNo = r.CC.TransactionNo
	}

	c.logger.Info("receipt acquired",
		zap.String("ticket", ticket),
		zap.String("result", r.Result),
		zap.Bool("accepted", receipt.Accepted),
	)
	return receipt, nil
}

// Complete captures the order total, or sends a zero completion that
// releases the preauthorization when capture is false.
func (c *Client) Complete(ctx context.Context, o *order.Order, capture bool) error {
	refs := o.Payment()
	action := "refund"
	amount := "0.00"
	if capture {
		action = "capture"
		amount = pricing.PlainAmount(o.Costs().Total)
	}

	log := c.logger.With(
		zap.String("order_id", o.ID().String()),
		zap.String("action", action),
		zap.String("ticket", refs.Ticket),
	)

	if refs.GatewayOrderNo == "" || refs.GatewayTxnNo == "" {
		log.Error("completion without preauthorization references")
		return fmt.Errorf("%w: order has no preauthorization", errs.ErrGatewayFailure)
	}

	req := completionRequest{
		StoreID:               c.cfg.StoreID,
		APIToken:              c.cfg.APIToken,
		Type:                  "completion",
		TxnNumber:             refs.GatewayTxnNo,
		OrderID:               refs.GatewayOrderNo,
		CompAmount:            amount,
		CryptType:             cryptType,
		ProcessingCountryCode: countryCode,
		TestMode:              c.cfg.Environment == EnvironmentQA,
	}

	log.Info("sending completion", zap.String("amount", amount))

	var resp completionResponse
	if err := c.post(ctx, c.cfg.CompletionEndpoint, req, &resp); err != nil {
		return err
	}
	if !resp.Response.Complete {
		log.Error("completion refused", zap.String("message", resp.Response.Message))
		return fmt.Errorf("%w: %s not completed: %s", errs.ErrGatewayFailure, action, resp.Response.Message)
	}

	log.Info("completion accepted", zap.String("receipt_id", resp.Response.ReceiptID))
	return nil
}

// post sends body as JSON and decodes the answer into out. Every failure
// wraps errs.ErrGatewayFailure.
func (c *Client) post(ctx context.Context, endpoint string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("%w: encode request: %w", errs.ErrGatewayFailure, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("%w: build request: %w", errs.ErrGatewayFailure, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", errs.ErrGatewayFailure, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		_, _ = io.Copy(io.Discard, resp.Body)
		return fmt.Errorf("%w: unexpected status %d", errs.ErrGatewayFailure, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decode response: %w", errs.ErrGatewayFailure, err)
	}
	return nil
}
