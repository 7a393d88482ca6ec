// Package jobs provides scheduled background tasks for the freight service.
//
// Jobs are cron based (github.com/robfig/cron/v3, six field schedules with
// seconds) and are started and stopped together through JobManager:
//
//	manager := jobs.NewJobManager(
//		jobs.NewReconciliationJob(unreconciledHandler, cfg.ReconciliationSchedule, logger),
//	)
//	if err := manager.StartAll(); err != nil {
//		return err
//	}
//	defer manager.StopAll()
//
// # Available Jobs
//
// ReconciliationJob lists orders left in capture_failed. These were booked
// with the carrier (or had their booking fail) but the payment could not be
// captured or released, so staff settle them at the gateway by hand.
package jobs
