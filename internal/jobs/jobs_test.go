package jobs

import (
	"context"
	"errors"
	"testing"

	"freight/internal/core/application/usecases/queries"
	"freight/internal/core/domain/model/kernel"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type stubReader struct {
	orders []queries.GetUnreconciledOrdersQueryResponse
	err    error
	calls  int
}

func (r *stubReader) Handle(
	_ context.Context, query queries.GetUnreconciledOrdersQuery,
) ([]queries.GetUnreconciledOrdersQueryResponse, error) {
	r.calls++
	if err := query.Validate(); err != nil {
		return nil, err
	}
	return r.orders, r.err
}

func TestReconciliationJob_SweepLogsEveryOrder(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	id := kernel.NewUUID()
	reader := &stubReader{orders: []queries.GetUnreconciledOrdersQueryResponse{{
		ID:             id,
		Number:         42,
		Total:          decimal.RequireFromString("34.65"),
		UserEmail:      "shipper@example.com",
		GatewayOrderNo: "GW-1",
		GatewayTxnNo:   "TX-1",
		LabelID:        "L-991",
	}}}

	NewReconciliationJob(reader, "", zap.New(core)).Sweep()

	entries := logs.FilterMessage("order needs manual payment reconciliation").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, id.String(), fields["order_id"])
	assert.Equal(t, "34.65", fields["total"])
	assert.Equal(t, "TX-1", fields["gateway_txn_no"])
	assert.Equal(t, "L-991", fields["label_id"])
	assert.Equal(t, 1, logs.FilterMessage("unreconciled orders found").Len())
}

func TestReconciliationJob_SweepFailure(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	reader := &stubReader{err: errors.New("connection refused")}

	NewReconciliationJob(reader, "", zap.New(core)).Sweep()

	assert.Equal(t, 1, logs.FilterMessage("reconciliation sweep failed").Len())
}

func TestReconciliationJob_StartRejectsBadSchedule(t *testing.T) {
	job := NewReconciliationJob(&stubReader{}, "not a schedule", zap.NewNop())

	assert.Error(t, job.Start())
}

type recordingJob struct {
	name     string
	startErr error
	events   *[]string
}

func (j recordingJob) Start() error {
	*j.events = append(*j.events, "start "+j.name)
	return j.startErr
}

func (j recordingJob) Stop() {
	*j.events = append(*j.events, "stop "+j.name)
}

func TestJobManager(t *testing.T) {
	t.Run("starts in order and stops in reverse", func(t *testing.T) {
		var events []string
		jm := NewJobManager(recordingJob{"a", nil, &events}, recordingJob{"b", nil, &events})

		require.NoError(t, jm.StartAll())
		jm.StopAll()

		assert.Equal(t, []string{"start a", "start b", "stop b", "stop a"}, events)
	})

	t.Run("failed start stops the running jobs", func(t *testing.T) {
		var events []string
		jm := NewJobManager(recordingJob{"a", nil, &events}, recordingJob{"b", errors.New("boom"), &events})

		require.Error(t, jm.StartAll())

		assert.Equal(t, []string{"start a", "start b", "stop a"}, events)
	})

	t.Run("real job", func(t *testing.T) {
		jm := NewJobManager(NewReconciliationJob(&stubReader{}, DefaultReconciliationSchedule, zap.NewNop()))

		require.NoError(t, jm.StartAll())
		jm.StopAll()
	})
}
