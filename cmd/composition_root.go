package cmd

import (
	"fmt"

	httpin "freight/internal/adapters/in/http"
	"freight/internal/adapters/out/moneris"
	"freight/internal/adapters/out/postgres"
	"freight/internal/adapters/out/redislock"
	"freight/internal/adapters/out/s3labels"
	"freight/internal/adapters/out/shiptrack"
	"freight/internal/core/application/usecases/commands"
	"freight/internal/core/application/usecases/queries"
	"freight/internal/core/domain/services"
	"freight/internal/core/ports"
	"freight/internal/jobs"
	"freight/internal/pkg/httpclient"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	cfg        Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	logger     *zap.Logger

	pricer  services.OrderPricer
	locker  ports.OrderLocker
	gateway ports.PaymentGateway
	carrier ports.Carrier
	labels  ports.LabelStore
}

// NewCompositionRoot builds the outbound adapters shared by every use case.
func NewCompositionRoot(
	cfg Config, gormDB *gorm.DB, redisClient *redis.Client, objects s3labels.ObjectAPI, logger *zap.Logger,
) (CompositionRoot, error) {
	settings, err := cfg.Pricing.Settings()
	if err != nil {
		return CompositionRoot{}, fmt.Errorf("pricing settings: %w", err)
	}
	pricer, err := services.NewOrderPricer(settings, cfg.Pricing.ExcludedPostalCodes)
	if err != nil {
		return CompositionRoot{}, fmt.Errorf("order pricer: %w", err)
	}

	external := httpclient.NewClient(cfg.ExternalCallTimeout, logger)

	gateway, err := moneris.NewClient(moneris.Config{
		StoreID:             cfg.Payment.StoreID,
		APIToken:            cfg.Payment.APIToken,
		CheckoutID:          cfg.Payment.CheckoutID,
		Environment:         cfg.Payment.Environment,
		RequestEndpointQA:   cfg.Payment.EndpointQA,
		RequestEndpointProd: cfg.Payment.EndpointProd,
		CompletionEndpoint:  cfg.Payment.CompletionEndpoint,
		TaxLabel:            settings.TaxLabel,
		TaxRate:             settings.TaxRate,
	}, external, logger)
	if err != nil {
		return CompositionRoot{}, fmt.Errorf("payment gateway: %w", err)
	}

	carrier, err := shiptrack.NewClient(shiptrack.Config{
		Endpoint:       cfg.Carrier.Endpoint,
		Username:       cfg.Carrier.Username,
		Password:       cfg.Carrier.Password,
		DefaultAccount: cfg.Carrier.DefaultAccount,
		ClientPrefix:   cfg.Carrier.ClientPrefix,
	}, external, logger)
	if err != nil {
		return CompositionRoot{}, fmt.Errorf("carrier: %w", err)
	}

	labels, err := s3labels.NewStore(objects, cfg.Labels.Bucket, logger)
	if err != nil {
		return CompositionRoot{}, fmt.Errorf("label store: %w", err)
	}

	return CompositionRoot{
		cfg:        cfg,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		logger:     logger,
		pricer:     pricer,
		locker:     redislock.NewLocker(redisClient, cfg.Redis.OrderLockTTL, logger),
		gateway:    gateway,
		carrier:    carrier,
		labels:     labels,
	}, nil
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateSubmitOrderCommandHandler() commands.SubmitOrderCommandHandler {
	return commands.NewSubmitOrderCommandHandler(c.orderUoWFactory(), c.pricer, c.logger)
}

func (c *CompositionRoot) CreateEditOrderCommandHandler() commands.EditOrderCommandHandler {
	return commands.NewEditOrderCommandHandler(c.orderUoWFactory(), c.locker, c.pricer, c.logger)
}

func (c *CompositionRoot) CreateRequestPaymentTokenCommandHandler() commands.RequestPaymentTokenCommandHandler {
	return commands.NewRequestPaymentTokenCommandHandler(
		c.orderUoWFactory(), c.locker, c.gateway, c.cfg.Payment.TicketTTL, c.logger)
}

func (c *CompositionRoot) CreateConfirmPaymentCommandHandler() commands.ConfirmPaymentCommandHandler {
	return commands.NewConfirmPaymentCommandHandler(c.orderUoWFactory(), c.locker, c.gateway, c.logger)
}

func (c *CompositionRoot) CreateFinalizeOrderCommandHandler() commands.FinalizeOrderCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewFinalizeOrderCommandHandler(f, c.locker, c.carrier, c.gateway, c.logger)
}

func (c *CompositionRoot) CreateRetrieveLabelCommandHandler() commands.RetrieveLabelCommandHandler {
	return commands.NewRetrieveLabelCommandHandler(c.orderUoWFactory(), c.carrier, c.labels, c.logger)
}

func (c *CompositionRoot) CreateDeleteAddressCommandHandler() commands.DeleteAddressCommandHandler {
	var f commands.AddressUoWFactory = FuncAddressUoWFactory(func() commands.AddressUoW {
		return c.uowFactory.Create()
	})
	return commands.NewDeleteAddressCommandHandler(f, c.logger)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListAddressesQueryHandler() queries.ListAddressesQueryHandler {
	return queries.NewListAddressesQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetUnreconciledOrdersQueryHandler() queries.GetUnreconciledOrdersQueryHandler {
	return queries.NewGetUnreconciledOrdersQueryHandler(c.gormDB)
}

// CreateRouter wires every use case behind the HTTP API.
func (c *CompositionRoot) CreateRouter() (*echo.Echo, error) {
	server := httpin.NewServer(httpin.Handlers{
		SubmitOrder:         c.CreateSubmitOrderCommandHandler(),
		EditOrder:           c.CreateEditOrderCommandHandler(),
		RequestPaymentToken: c.CreateRequestPaymentTokenCommandHandler(),
		ConfirmPayment:      c.CreateConfirmPaymentCommandHandler(),
		FinalizeOrder:       c.CreateFinalizeOrderCommandHandler(),
		RetrieveLabel:       c.CreateRetrieveLabelCommandHandler(),
		DeleteAddress:       c.CreateDeleteAddressCommandHandler(),
		GetOrder:            c.CreateGetOrderQueryHandler(),
		ListAddresses:       c.CreateListAddressesQueryHandler(),
	}, c.logger)
	return httpin.NewRouter(server, c.logger)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		jobs.NewReconciliationJob(c.CreateGetUnreconciledOrdersQueryHandler(), c.cfg.ReconciliationSchedule, c.logger),
	)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}

type FuncAddressUoWFactory func() commands.AddressUoW

func (f FuncAddressUoWFactory) Create() commands.AddressUoW {
	return f()
}
