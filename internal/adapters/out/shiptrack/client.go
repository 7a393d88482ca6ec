// Package shiptrack books shipments and downloads labels through the
// carrier's ShipTrack API.
package shiptrack

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/order"
	"freight/internal/core/ports"
	"freight/internal/pkg/errs"

	"github.com/gabriel-vasile/mimetype"
	"go.uber.org/zap"
)

const (
	DefaultAccount      = "O0067"
	DefaultClientPrefix = "MBW"

	// carrierRefOffset is added to the order number in carrier references.
	carrierRefOffset = 2200

	maxLabelSize = 20 << 20
)

type Config struct {
	Endpoint       string
	Username       string
	Password       string
	DefaultAccount string
	ClientPrefix   string
}

// Client implements ports.Carrier.
type Client struct {
	cfg    Config
	http   *http.Client
	now    func() time.Time
	logger *zap.Logger
}

func NewClient(cfg Config, httpClient *http.Client, logger *zap.Logger) (*Client, error) {
	var problems []error
	if strings.TrimSpace(cfg.Endpoint) == "" {
		problems = append(problems, errs.NewValueIsRequiredError("endpoint"))
	}
	if cfg.Username == "" {
		problems = append(problems, errs.NewValueIsRequiredError("username"))
	}
	if err := errors.Join(problems...); err != nil {
		return nil, err
	}
	if cfg.DefaultAccount == "" {
		cfg.DefaultAccount = DefaultAccount
	}
	if cfg.ClientPrefix == "" {
		cfg.ClientPrefix = DefaultClientPrefix
	}
	cfg.Endpoint = strings.TrimRight(cfg.Endpoint, "/")

	return &Client{
		cfg:    cfg,
		http:   httpClient,
		now:    time.Now,
		logger: logger.With(zap.String("component", "shiptrack")),
	}, nil
}

// CarrierRef is the reference the carrier files the shipment under.
func (c *Client) CarrierRef(o *order.Order) string {
	return c.cfg.ClientPrefix + strconv.FormatInt(o.Number()+carrierRefOffset, 10)
}

// CreateShipment books the order. Prepaid orders of customers with their own
// carrier account are billed to that account; everything else goes to the
// default agency account.
func (c *Client) CreateShipment(ctx context.Context, o *order.Order, clientAccount string) ports.Booking {
	log := c.logger.With(zap.String("order_id", o.ID().String()))
	log.Info("creating shipment")

	account := c.cfg.DefaultAccount
	if clientAccount != "" && o.ShippingType() == order.Prepaid {
		account = clientAccount
	}

	contact := o.Contact()
	payload := jobRequest{
		Details: details{
			Client:        client{EDIClientID: account},
			RequestedDate: o.RequestedDate().Format(time.DateOnly),
			ServiceType: serviceType{
				ServiceCode:        o.ShippingType().ServiceCode(),
				ServiceTypeOptions: []string{},
			},
			CarrierRef: c.CarrierRef(o),
			Reference2: optional(o.AccountNumber()),
			Comments:   optional(stripMarkup(o.Comments())),
		},
		PickUpAddress:   toAddress(o.Pickup(), contact.UserPhone, contact.UserEmail),
		DeliveryAddress: toAddress(o.Destination(), contact.DestinationPhone, contact.DestinationEmail),
		ItemsInfo: itemsInfo{
			UOMW:  "L",
			UOML:  "I",
			Items: pieces(o.Items()),
		},
	}

	resp, err := c.createJob(ctx, payload)
	if err != nil {
		log.Error("shipment could not be created", zap.Error(err))
		return ports.Booking{Reason: err.Error()}
	}
	if !resp.Results.Success || resp.ID == "" {
		reason := "booking rejected"
		if len(resp.Results.Errors) > 0 && resp.Results.Errors[0].Message != "" {
			reason = resp.Results.Errors[0].Message
		}
		log.Error("shipment could not be created", zap.String("reason", reason))
		return ports.Booking{Reason: reason}
	}

	log.Info("shipment created", zap.String("label_id", string(resp.ID)))
	return ports.Booking{Succeeded: true, LabelID: string(resp.ID)}
}

func (c *Client) createJob(ctx context.Context, payload jobRequest) (jobResponse, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return jobResponse{}, fmt.Errorf("encode job: %w", err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/Jobs/Create", bytes.NewReader(body))
	if err != nil {
		return jobResponse{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return jobResponse{}, fmt.Errorf("carrier unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		_, _ = io.Copy(io.Discard, resp.Body)
		return jobResponse{}, fmt.Errorf("carrier answered with status %d", resp.StatusCode)
	}

	var out jobResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return jobResponse{}, fmt.Errorf("decode job response: %w", err)
	}
	return out, nil
}

// FetchLabel downloads the label document of a booked shipment. The content
// type is sniffed when the carrier does not send a specific one.
func (c *Client) FetchLabel(ctx context.Context, labelID string) (ports.LabelDocument, error) {
	if strings.TrimSpace(labelID) == "" {
		return ports.LabelDocument{}, errs.NewValueIsRequiredError("labelID")
	}
	log := c.logger.With(zap.String("label_id", labelID))

	req, err := c.newRequest(ctx, http.MethodGet, "/Label/GetLabel/"+url.PathEscape(labelID), nil)
	if err != nil {
		return ports.LabelDocument{}, fmt.Errorf("%w: %w", errs.ErrCarrierFailure, err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		log.Error("label download failed", zap.Error(err))
		return ports.LabelDocument{}, fmt.Errorf("%w: %w", errs.ErrCarrierFailure, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		log.Error("label download refused", zap.Int("status_code", resp.StatusCode))
		return ports.LabelDocument{}, fmt.Errorf("%w: label request answered with status %d",
			errs.ErrCarrierFailure, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxLabelSize))
	if err != nil {
		return ports.LabelDocument{}, fmt.Errorf("%w: read label: %w", errs.ErrCarrierFailure, err)
	}
	if len(body) == 0 {
		return ports.LabelDocument{}, fmt.Errorf("%w: empty label", errs.ErrCarrierFailure)
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" || strings.HasPrefix(contentType, "application/octet-stream") {
		contentType = mimetype.Detect(body).String()
	}

	log.Info("label downloaded", zap.Int("bytes", len(body)), zap.String("content_type", contentType))
	return ports.LabelDocument{ContentType: contentType, Body: body}, nil
}

func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.cfg.Endpoint+path, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.SetBasicAuth(c.cfg.Username, c.cfg.Password)
	req.Header.Set("TranDateTime", c.now().Format(time.RFC3339))
	req.Header.Set("Accept", "application/json")
	return req, nil
}

func toAddress(a kernel.PostalAddress, phone, email string) address {
	return address{
		CompanyName:         a.Organization(),
		Address1:            a.AddressLine1(),
		Address2:            a.AddressLine2(),
		City:                a.Locality(),
		ProvinceStateCode:   a.AdministrativeArea(),
		PostalZipCode:       a.PostalCode(),
		CountryCode:         a.CountryCode(),
		PhoneNumber:         phone,
		Email:               email,
		TransitNotification: true,
		PODNotification:     true,
	}
}

// pieces lists one entry per physical piece.
func pieces(items []order.Item) []piece {
	out := make([]piece, 0, len(items))
	for _, item := range items {
		p := piece{
			Description: item.Description(),
			Weight:      item.Weight().String(),
			Length:      item.Length().String(),
			Width:       item.Width().String(),
			Height:      item.Height().String(),
		}
		for range item.Quantity() {
			out = append(out, p)
		}
	}
	return out
}
