package retention

import (
	"context"
	"testing"

	"mercator-hq/minerva/pkg/audit"
)

func TestScheduler_EmptyScheduleIsNoop(t *testing.T) {
	pruner := NewPruner(audit.NewLog(), &Config{PruneSchedule: ""})

	if err := pruner.Start(context.Background()); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if pruner.scheduler.IsRunning() {
		t.Error("scheduler should not run without a schedule")
	}
}

func TestScheduler_InvalidSchedule(t *testing.T) {
	pruner := NewPruner(audit.NewLog(), &Config{PruneSchedule: "not a cron expression"})

	if err := pruner.Start(context.Background()); err == nil {
		t.Error("expected error for invalid cron expression")
	}
}

func TestScheduler_StartAndStop(t *testing.T) {
	pruner := NewPruner(audit.NewLog(), &Config{PruneSchedule: "0 3 * * *"})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := pruner.Start(ctx); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if !pruner.scheduler.IsRunning() {
		t.Fatal("scheduler should be running")
	}
	if pruner.NextPruning() == nil {
		t.Error("expected a next pruning time")
	}

	pruner.Stop()
	if pruner.scheduler.IsRunning() {
		t.Error("scheduler should be stopped")
	}
}
