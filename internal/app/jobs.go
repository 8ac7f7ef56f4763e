package app

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

var cronParser = cron.NewParser(
	cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

func (a *Application) initJob() {
	loc, _ := time.LoadLocation(a.appConfig.System.Location)
	a.sched = cron.New(cron.WithLocation(loc), cron.WithParser(cronParser))

	pruneCron := a.appConfig.Store.PruneCron
	if pruneCron == "" {
		pruneCron = "@daily"
	}
	if _, err := a.sched.AddFunc(pruneCron, a.SchedPruneSnapshotsTask); err != nil {
		zap.S().Errorf("init job error %s", err.Error())
	}

	warmCron := a.appConfig.Store.WarmCron
	if warmCron == "" {
		warmCron = "@every 5m"
	}
	if _, err := a.sched.AddFunc(warmCron, a.SchedWarmCacheTask); err != nil {
		zap.S().Errorf("init job error %s", err.Error())
	}

	a.sched.Start()
}

// SchedPruneSnapshotsTask deletes product snapshots beyond the configured
// retention count. Every write creates a new snapshot, so without this the
// collection grows without bound.
func (a *Application) SchedPruneSnapshotsTask() {
	defer func() {
		if err := recover(); err != nil {
			zap.S().Error(err)
		}
	}()

	keep := a.appConfig.Store.SnapshotKeep
	if keep <= 0 {
		keep = 20
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	if _, err := a.products.PruneSnapshots(ctx, keep); err != nil {
		zap.S().Warnf("snapshot prune failed: %v", err)
	}
}

// SchedWarmCacheTask refreshes the fallback mirror so the last-good copy
// stays close to the store contents between requests.
func (a *Application) SchedWarmCacheTask() {
	defer func() {
		if err := recover(); err != nil {
			zap.S().Error(err)
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	products := a.products.ListAll(ctx)
	messages := a.messages.ListAll(ctx)
	zap.S().Debugf("cache warm complete: %d products, %d messages",
		len(products), len(messages))
}
