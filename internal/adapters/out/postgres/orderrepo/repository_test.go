package orderrepo_test

import (
	"context"
	"testing"
	"time"

	"freight/internal/adapters/out/postgres/orderrepo"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/order"
	"freight/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// OrderRepositoryTestSuite runs the repository contract against whatever
// database open returns. SQLite covers it in every run; the integration file
// repeats it on PostgreSQL.
type OrderRepositoryTestSuite struct {
	suite.Suite
	open       func() *gorm.DB
	db         *gorm.DB
	repository *orderrepo.GormOrderRepository
}

func TestOrderRepositorySQLite(t *testing.T) {
	suite.Run(t, &OrderRepositoryTestSuite{open: func() *gorm.DB {
		db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Discard})
		if err != nil {
			t.Fatalf("open sqlite: %v", err)
		}
		sqlDB, err := db.DB()
		if err != nil {
			t.Fatalf("sqlite pool: %v", err)
		}
		// every connection to :memory: is a separate database
		sqlDB.SetMaxOpenConns(1)
		return db
	}})
}

func (suite *OrderRepositoryTestSuite) SetupSuite() {
	suite.db = suite.open()
	suite.Require().NoError(suite.db.AutoMigrate(&orderrepo.OrderDTO{}, &orderrepo.OrderItemDTO{}))
}

func (suite *OrderRepositoryTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("DELETE FROM order_items").Error)
	suite.Require().NoError(suite.db.Exec("DELETE FROM orders").Error)
	suite.repository = orderrepo.NewGormOrderRepository(suite.db)
}

func (suite *OrderRepositoryTestSuite) TestAdd_AssignsIncreasingNumbers() {
	ctx := context.Background()

	first := suite.newOrder(suite.guest())
	second := suite.newOrder(suite.guest())

	suite.Require().NoError(suite.repository.Add(ctx, first))
	suite.Require().NoError(suite.repository.Add(ctx, second))

	suite.Positive(first.Number())
	suite.Greater(second.Number(), first.Number())
	suite.assertOrderCount(2)
}

func (suite *OrderRepositoryTestSuite) TestAdd_UnconstructedOrder_Fails() {
	err := suite.repository.Add(context.Background(), &order.Order{})

	suite.Require().ErrorIs(err, order.ErrOrderIsNotConstructed)
	suite.assertOrderCount(0)
}

func (suite *OrderRepositoryTestSuite) TestGet_RoundTripsEveryField() {
	ctx := context.Background()
	customer, err := kernel.NewCustomer(42, "ACC-42")
	suite.Require().NoError(err)

	original := suite.newOrder(customer)
	suite.Require().NoError(suite.repository.Add(ctx, original))

	loaded, err := suite.repository.Get(ctx, original.ID())
	suite.Require().NoError(err)

	suite.True(original.IsEqual(loaded))
	suite.Equal(original.Number(), loaded.Number())
	suite.Equal(int64(42), loaded.Owner().UserID())
	suite.Equal(order.CollectBilling, loaded.Status())
	suite.Equal(original.Pickup(), loaded.Pickup())
	suite.Equal(original.Destination(), loaded.Destination())
	suite.Equal(original.Contact(), loaded.Contact())
	suite.Equal("Tailgate required", loaded.Comments())
	suite.True(original.RequestedDate().Equal(loaded.RequestedDate()))
	suite.True(decimal.RequireFromString("51.45").Equal(loaded.Costs().Total))

	suite.Require().Len(loaded.Items(), 2)
	suite.Equal("Pallet", loaded.Items()[0].EnteredDescription())
	suite.Equal(3, loaded.Items()[1].Quantity())
	suite.True(decimal.RequireFromString("15").Equal(loaded.Items()[1].Cost()))
}

func (suite *OrderRepositoryTestSuite) TestGet_MissingOrder_ReturnsNotFound() {
	_, err := suite.repository.Get(context.Background(), kernel.NewUUID())

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryTestSuite) TestUpdate_WritesStatusAndBumpsVersion() {
	ctx := context.Background()
	o := suite.newOrder(suite.guest())
	suite.Require().NoError(suite.repository.Add(ctx, o))

	issuedAt := time.Now().UTC().Truncate(time.Second)
	suite.Require().NoError(o.AttachPaymentTicket("tkt-9", issuedAt))
	suite.Require().NoError(suite.repository.Update(ctx, o))
	suite.Equal(1, o.Version())

	loaded, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Equal(order.PendingPayment, loaded.Status())
	suite.Equal("tkt-9", loaded.Payment().Ticket)
	suite.True(issuedAt.Equal(loaded.Payment().TicketIssuedAt))
	suite.Equal(1, loaded.Version())
	suite.Len(loaded.Items(), 2)
}

func (suite *OrderRepositoryTestSuite) TestUpdate_ReplacesItems() {
	ctx := context.Background()
	actor := suite.guest()
	o := suite.newOrder(actor)
	suite.Require().NoError(suite.repository.Add(ctx, o))

	details := suite.details()
	details.Items = details.Items[:1]
	suite.Require().NoError(o.Edit(actor, details))
	suite.Require().NoError(suite.repository.Update(ctx, o))

	loaded, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Len(loaded.Items(), 1)

	var rows int64
	suite.Require().NoError(suite.db.Model(&orderrepo.OrderItemDTO{}).Count(&rows).Error)
	suite.Equal(int64(1), rows)
}

func (suite *OrderRepositoryTestSuite) TestUpdate_StaleVersion_ReturnsVersionError() {
	ctx := context.Background()
	o := suite.newOrder(suite.guest())
	suite.Require().NoError(suite.repository.Add(ctx, o))

	stale, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)

	suite.Require().NoError(o.AttachPaymentTicket("tkt-1", time.Now()))
	suite.Require().NoError(suite.repository.Update(ctx, o))

	suite.Require().NoError(stale.AttachPaymentTicket("tkt-2", time.Now()))
	err = suite.repository.Update(ctx, stale)

	suite.Require().ErrorIs(err, errs.ErrVersionIsInvalid)
	loaded, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Equal("tkt-1", loaded.Payment().Ticket)
}

func (suite *OrderRepositoryTestSuite) TestUpdate_MissingOrder_ReturnsNotFound() {
	o := suite.newOrder(suite.guest())

	err := suite.repository.Update(context.Background(), o)

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryTestSuite) TestListByStatus_FiltersAndOrdersByNumber() {
	ctx := context.Background()
	customer, err := kernel.NewCustomer(5, "")
	suite.Require().NoError(err)

	failedA := suite.newOrder(suite.guest())
	other := suite.newOrder(customer)
	failedB := suite.newOrder(suite.guest())
	for _, o := range []*order.Order{failedA, other, failedB} {
		suite.Require().NoError(suite.repository.Add(ctx, o))
	}
	suite.Require().NoError(suite.db.Model(&orderrepo.OrderDTO{}).
		Where("id IN ?", []any{failedA.ID().Value(), failedB.ID().Value()}).
		Update("status", order.CaptureFailed.Code()).Error)

	found, err := suite.repository.ListByStatus(ctx, order.CaptureFailed)
	suite.Require().NoError(err)

	suite.Require().Len(found, 2)
	suite.True(found[0].IsEqual(failedA))
	suite.True(found[1].IsEqual(failedB))
	suite.Len(found[0].Items(), 2)
}

func (suite *OrderRepositoryTestSuite) assertOrderCount(expected int64) {
	var count int64
	suite.Require().NoError(suite.db.Model(&orderrepo.OrderDTO{}).Count(&count).Error)
	suite.Equal(expected, count)
}

func (suite *OrderRepositoryTestSuite) guest() kernel.Actor {
	actor, err := kernel.NewGuest("sess-" + kernel.NewUUID().String())
	suite.Require().NoError(err)
	return actor
}

func (suite *OrderRepositoryTestSuite) details() order.Details {
	pallet, err := order.NewItem(order.ItemFields{
		Description: "Pallet",
		Quantity:    1,
		Weight:      decimal.NewFromInt(120),
		Length:      decimal.NewFromInt(48),
		Width:       decimal.NewFromInt(40),
		Height:      decimal.NewFromInt(36),
	})
	suite.Require().NoError(err)
	boxes, err := order.NewItem(order.ItemFields{
		Quantity: 3,
		Weight:   decimal.RequireFromString("4.5"),
		Length:   decimal.NewFromInt(12),
		Width:    decimal.NewFromInt(12),
		Height:   decimal.NewFromInt(12),
	})
	suite.Require().NoError(err)

	return order.Details{
		Items:       []order.Item{pallet, boxes},
		Pickup:      suite.postal("Acme Ltd", "R3C 4T3"),
		Destination: suite.postal("", "R2W 1A1"),
		Contact: order.Contact{
			UserEmail:        "shipper@example.com",
			UserPhone:        "204-555-0100",
			DestinationEmail: "consignee@example.com",
			DestinationPhone: "204-555-0199",
		},
		ShippingType:  order.Prepaid,
		RequestedDate: time.Now().AddDate(0, 0, 3),
		Comments:      "Tailgate required",
	}
}

func (suite *OrderRepositoryTestSuite) postal(organization, code string) kernel.PostalAddress {
	a, err := kernel.NewPostalAddress(kernel.PostalAddressFields{
		Organization:       organization,
		AddressLine1:       "100 Main St",
		Locality:           "Winnipeg",
		AdministrativeArea: "MB",
		PostalCode:         code,
		CountryCode:        "CA",
	})
	suite.Require().NoError(err)
	return a
}

// newOrder builds a priced, unsaved order.
func (suite *OrderRepositoryTestSuite) newOrder(actor kernel.Actor) *order.Order {
	o, err := order.NewOrder(kernel.NewUUID(), actor, suite.details())
	suite.Require().NoError(err)

	snap := o.Snapshot()
	snap.Details.Items[0] = order.RestoreItem(snap.Details.Items[0].Fields(), decimal.NewFromInt(34))
	snap.Details.Items[1] = order.RestoreItem(snap.Details.Items[1].Fields(), decimal.NewFromInt(15))
	snap.Costs = order.Costs{
		Subtotal:      decimal.NewFromInt(49),
		FuelSurcharge: decimal.Zero,
		Tax:           decimal.RequireFromString("2.45"),
		Total:         decimal.RequireFromString("51.45"),
	}
	priced, err := order.RestoreOrder(snap)
	suite.Require().NoError(err)
	return priced
}
