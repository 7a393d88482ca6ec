package queries_test

import (
	"testing"

	"freight/internal/core/application/usecases/queries"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGetUnreconciledOrdersQuery_Valid(t *testing.T) {
	query := queries.NewGetUnreconciledOrdersQuery()
	require.NoError(t, query.Validate())
}

func TestGetUnreconciledOrdersQuery_NotConstructedViaConstructor(t *testing.T) {
	query := queries.GetUnreconciledOrdersQuery{}
	assert.ErrorIs(t, query.Validate(), queries.ErrGetUnreconciledOrdersQueryIsNotConstructed)
}

func TestNewGetOrderQuery(t *testing.T) {
	actor, err := kernel.NewGuest("sess-1")
	require.NoError(t, err)
	id := kernel.NewUUID()

	query, err := queries.NewGetOrderQuery(id, actor)
	require.NoError(t, err)
	assert.NoError(t, query.Validate())
	assert.Equal(t, id, query.OrderID())

	_, err = queries.NewGetOrderQuery(kernel.UUID{}, actor)
	assert.Error(t, err)

	assert.ErrorIs(t, queries.GetOrderQuery{}.Validate(), queries.ErrGetOrderQueryIsNotConstructed)
}

func TestNewListAddressesQuery(t *testing.T) {
	actor, err := kernel.NewCustomer(7, "")
	require.NoError(t, err)

	all, err := queries.NewListAddressesQuery(actor, "")
	require.NoError(t, err)
	assert.Empty(t, all.AddressType())

	pickups, err := queries.NewListAddressesQuery(actor, "pickup")
	require.NoError(t, err)
	assert.EqualValues(t, "pickup", pickups.AddressType())

	_, err = queries.NewListAddressesQuery(actor, "billing")
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)

	assert.ErrorIs(t, queries.ListAddressesQuery{}.Validate(), queries.ErrListAddressesQueryIsNotConstructed)
}
