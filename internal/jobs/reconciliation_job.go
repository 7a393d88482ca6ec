package jobs

import (
	"context"
	"time"

	"freight/internal/core/application/usecases/queries"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// DefaultReconciliationSchedule runs the sweep every 15 minutes.
const DefaultReconciliationSchedule = "0 */15 * * * *"

const sweepTimeout = 30 * time.Second

// UnreconciledOrdersReader lists orders waiting for manual settlement.
type UnreconciledOrdersReader interface {
	Handle(ctx context.Context, query queries.GetUnreconciledOrdersQuery) ([]queries.GetUnreconciledOrdersQueryResponse, error)
}

// ReconciliationJob reports every order whose payment could not be settled
// after booking, with the references needed to settle it at the gateway.
type ReconciliationJob struct {
	reader   UnreconciledOrdersReader
	schedule string
	cron     *cron.Cron
	logger   *zap.Logger
}

// NewReconciliationJob uses a six field cron schedule (seconds first).
// An empty schedule means DefaultReconciliationSchedule.
func NewReconciliationJob(reader UnreconciledOrdersReader, schedule string, logger *zap.Logger) *ReconciliationJob {
	if schedule == "" {
		schedule = DefaultReconciliationSchedule
	}
	return &ReconciliationJob{
		reader:   reader,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With(zap.String("component", "reconciliation_job")),
	}
}

func (j *ReconciliationJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, j.Sweep); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info("reconciliation job started", zap.String("schedule", j.schedule))
	return nil
}

// Sweep logs one warning per unreconciled order.
func (j *ReconciliationJob) Sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), sweepTimeout)
	defer cancel()

	orders, err := j.reader.Handle(ctx, queries.NewGetUnreconciledOrdersQuery())
	if err != nil {
		j.logger.Error("reconciliation sweep failed", zap.Error(err))
		return
	}

	for _, o := range orders {
		j.logger.Warn("order needs manual payment reconciliation",
			zap.String("order_id", o.ID.String()),
			zap.Int64("number", o.Number),
			zap.String("total", o.Total.StringFixed(2)),
			zap.String("user_email", o.UserEmail),
			zap.String("gateway_order_no", o.GatewayOrderNo),
			zap.String("gateway_txn_no", o.GatewayTxnNo),
			zap.String("label_id", o.LabelID),
		)
	}
	if len(orders) > 0 {
		j.logger.Warn("unreconciled orders found", zap.Int("count", len(orders)))
	}
}

// Stop waits for a running sweep to finish.
func (j *ReconciliationJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.Info("reconciliation job stopped")
}
