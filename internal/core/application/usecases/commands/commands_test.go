package commands_test

import (
	"testing"

	"freight/internal/core/application/usecases/commands"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/order"
	"freight/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSubmitOrderCommand(t *testing.T) {
	t.Run("should keep the caller and details", func(t *testing.T) {
		id := kernel.NewUUID()
		cmd, err := commands.NewSubmitOrderCommand(id, guest(t), details(t, order.Collect))

		require.NoError(t, err)
		require.NoError(t, cmd.Validate())
		assert.Equal(t, id, cmd.OrderID())
		assert.Equal(t, order.Collect, cmd.Details().ShippingType)
	})

	t.Run("should reject anonymous callers", func(t *testing.T) {
		_, err := commands.NewSubmitOrderCommand(kernel.NewUUID(), kernel.Anonymous(), details(t, order.Prepaid))

		require.ErrorIs(t, err, errs.ErrUnauthenticated)
	})

	t.Run("should reject a zero order id", func(t *testing.T) {
		_, err := commands.NewSubmitOrderCommand(kernel.UUID{}, guest(t), details(t, order.Prepaid))

		require.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
	})
}

func TestStepCommands_RejectZeroIDs(t *testing.T) {
	actor := guest(t)
	constructors := map[string]func() error{
		"edit": func() error {
			_, err := commands.NewEditOrderCommand(kernel.UUID{}, actor, details(t, order.Prepaid))
			return err
		},
		"token": func() error {
			_, err := commands.NewRequestPaymentTokenCommand(kernel.UUID{}, actor, false)
			return err
		},
		"confirm": func() error {
			_, err := commands.NewConfirmPaymentCommand(kernel.UUID{}, actor)
			return err
		},
		"finalize": func() error {
			_, err := commands.NewFinalizeOrderCommand(kernel.UUID{}, actor)
			return err
		},
		"label": func() error {
			_, err := commands.NewRetrieveLabelCommand(kernel.UUID{}, actor)
			return err
		},
		"delete address": func() error {
			_, err := commands.NewDeleteAddressCommand(kernel.UUID{}, actor)
			return err
		},
	}
	for name, construct := range constructors {
		t.Run(name, func(t *testing.T) {
			require.ErrorIs(t, construct(), kernel.ErrUUIDIsNotConstructed)
		})
	}
}

func TestCommands_ZeroValueIsNotConstructed(t *testing.T) {
	assert.ErrorIs(t, commands.SubmitOrderCommand{}.Validate(), commands.ErrSubmitOrderCommandIsNotConstructed)
	assert.ErrorIs(t, commands.EditOrderCommand{}.Validate(), commands.ErrEditOrderCommandIsNotConstructed)
	assert.ErrorIs(t, commands.RequestPaymentTokenCommand{}.Validate(),
		commands.ErrRequestPaymentTokenCommandIsNotConstructed)
	assert.ErrorIs(t, commands.ConfirmPaymentCommand{}.Validate(), commands.ErrConfirmPaymentCommandIsNotConstructed)
	assert.ErrorIs(t, commands.FinalizeOrderCommand{}.Validate(), commands.ErrFinalizeOrderCommandIsNotConstructed)
	assert.ErrorIs(t, commands.RetrieveLabelCommand{}.Validate(), commands.ErrRetrieveLabelCommandIsNotConstructed)
	assert.ErrorIs(t, commands.DeleteAddressCommand{}.Validate(), commands.ErrDeleteAddressCommandIsNotConstructed)
}
