package metrics

import (
	"sync"

	"github.com/SimplyHuzu/body-works-gym-rep/pkg/telemetry"
)

var (
	// Reservation counters
	ReservationsCreated   *telemetry.Counter
	ReservationConflicts  *telemetry.Counter
	ReservationsCancelled *telemetry.Counter
	ReservationsRejected  *telemetry.Counter

	// Suggestion counters
	SuggestionsServed *telemetry.Counter

	// Histograms
	ReserveDuration *telemetry.Histogram

	initOnce sync.Once
	initErr  error
)

// Init initializes all booking metrics. Uninitialized instruments are no-ops.
func Init() error {
	initOnce.Do(func() {
		initErr = initMetrics()
	})
	return initErr
}

func initMetrics() error {
	var err error

	ReservationsCreated, err = telemetry.NewCounter(telemetry.MetricOpts{
		Name:        "reservation_created_total",
		Description: "Total number of reservations committed",
		Unit:        "1",
	})
	if err != nil {
		return err
	}

	ReservationConflicts, err = telemetry.NewCounter(telemetry.MetricOpts{
		Name:        "reservation_conflicts_total",
		Description: "Total number of reserve attempts rejected with a slot conflict",
		Unit:        "1",
	})
	if err != nil {
		return err
	}

	ReservationsCancelled, err = telemetry.NewCounter(telemetry.MetricOpts{
		Name:        "reservation_cancelled_total",
		Description: "Total number of reservations cancelled",
		Unit:        "1",
	})
	if err != nil {
		return err
	}

	ReservationsRejected, err = telemetry.NewCounter(telemetry.MetricOpts{
		Name:        "reservation_rejected_total",
		Description: "Total number of reserve attempts rejected during validation",
		Unit:        "1",
	})
	if err != nil {
		return err
	}

	SuggestionsServed, err = telemetry.NewCounter(telemetry.MetricOpts{
		Name:        "suggestions_served_total",
		Description: "Total number of suggestion lists produced",
		Unit:        "1",
	})
	if err != nil {
		return err
	}

	ReserveDuration, err = telemetry.NewHistogram(telemetry.MetricOpts{
		Name:        "reservation_commit_duration_seconds",
		Description: "Latency of the validate-and-commit reservation path",
		Unit:        "s",
	})
	if err != nil {
		return err
	}

	return nil
}
