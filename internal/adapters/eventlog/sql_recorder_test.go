package eventlog

import (
	"context"
	"testing"
	"time"

	"stopline-planner-service/internal/domain"
)

// SQLite binds $1..$n parameters by ordinal when they appear in
// order, so the Postgres recorder's statements run unchanged against
// the in-memory test database (only the schema DDL differs per
// backend).
func TestSQLRecorderRoundTrip(t *testing.T) {
	r := NewSQLStopEventRecorder(openTestDB(t))
	ctx := context.Background()

	at := time.Date(2026, 3, 1, 12, 0, 0, 123456789, time.UTC)
	events := []domain.StopEvent{
		{ModuleID: 1, From: domain.StateApproach, To: domain.StateStopped, DistanceToStop: 0.5, At: at},
		{ModuleID: 2, From: domain.StateApproach, To: domain.StateStopped, DistanceToStop: -0.2, At: at.Add(time.Second)},
		{ModuleID: 1, From: domain.StateStopped, To: domain.StateStart, DistanceToStop: 0, At: at.Add(3 * time.Second)},
	}
	for _, ev := range events {
		if err := r.Record(ctx, ev); err != nil {
			t.Fatalf("record: %v", err)
		}
	}

	all, err := r.List(ctx, 0)
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("listed %d events, want 3", len(all))
	}

	got, err := r.List(ctx, 1)
	if err != nil {
		t.Fatalf("list module 1: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("listed %d events for module 1, want 2", len(got))
	}
	if got[0].From != domain.StateApproach || got[1].To != domain.StateStart {
		t.Fatalf("events = %s->%s, %s->%s, want oldest-first ordering",
			got[0].From, got[0].To, got[1].From, got[1].To)
	}
	if !got[0].At.Equal(at) {
		t.Fatalf("timestamp = %v, want %v (nanosecond round trip)", got[0].At, at)
	}
}

func TestSQLRecorderValidation(t *testing.T) {
	r := NewSQLStopEventRecorder(nil)
	ctx := context.Background()

	if err := r.Record(ctx, domain.StopEvent{ModuleID: 1}); err == nil {
		t.Fatal("expected an error with a nil db")
	}
	if _, err := r.List(ctx, 0); err == nil {
		t.Fatal("expected an error with a nil db")
	}

	live := NewSQLStopEventRecorder(openTestDB(t))
	if err := live.Record(ctx, domain.StopEvent{ModuleID: 0, At: time.Now()}); err == nil {
		t.Fatal("expected an error for module id 0")
	}
}

func TestInitPostgresSchemaNilDB(t *testing.T) {
	if err := InitPostgresSchema(nil); err == nil {
		t.Fatal("expected an error with a nil db")
	}
}
