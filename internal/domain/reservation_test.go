package domain

import (
	"testing"
	"time"
)

func mustTime(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.Parse(time.RFC3339, value)
	if err != nil {
		t.Fatalf("bad test timestamp %q: %v", value, err)
	}
	return parsed
}

func TestReservationValidate(t *testing.T) {
	start := mustTime(t, "2026-09-01T10:00:00Z")
	end := mustTime(t, "2026-09-01T11:00:00Z")

	tests := []struct {
		name        string
		reservation Reservation
		wantErr     error
	}{
		{
			name: "valid",
			reservation: Reservation{
				ID: "r1", ResourceID: "treadmill-1", UserID: "u1",
				StartTime: start, EndTime: end, Status: ReservationStatusConfirmed,
			},
			wantErr: nil,
		},
		{
			name: "missing resource",
			reservation: Reservation{
				ID: "r1", UserID: "u1",
				StartTime: start, EndTime: end, Status: ReservationStatusConfirmed,
			},
			wantErr: ErrResourceNotFound,
		},
		{
			name: "missing user",
			reservation: Reservation{
				ID: "r1", ResourceID: "treadmill-1",
				StartTime: start, EndTime: end, Status: ReservationStatusConfirmed,
			},
			wantErr: ErrInvalidUserID,
		},
		{
			name: "start equals end",
			reservation: Reservation{
				ID: "r1", ResourceID: "treadmill-1", UserID: "u1",
				StartTime: start, EndTime: start, Status: ReservationStatusConfirmed,
			},
			wantErr: ErrInvalidInterval,
		},
		{
			name: "start after end",
			reservation: Reservation{
				ID: "r1", ResourceID: "treadmill-1", UserID: "u1",
				StartTime: end, EndTime: start, Status: ReservationStatusConfirmed,
			},
			wantErr: ErrInvalidInterval,
		},
		{
			name: "bad status",
			reservation: Reservation{
				ID: "r1", ResourceID: "treadmill-1", UserID: "u1",
				StartTime: start, EndTime: end, Status: ReservationStatus("pending"),
			},
			wantErr: ErrInvalidStatus,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.reservation.Validate(); err != tt.wantErr {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestReservationOverlapsHalfOpen(t *testing.T) {
	r := Reservation{
		StartTime: mustTime(t, "2026-09-01T10:00:00Z"),
		EndTime:   mustTime(t, "2026-09-01T11:00:00Z"),
	}

	tests := []struct {
		name       string
		start, end string
		want       bool
	}{
		{"identical", "2026-09-01T10:00:00Z", "2026-09-01T11:00:00Z", true},
		{"partial overlap", "2026-09-01T10:30:00Z", "2026-09-01T11:30:00Z", true},
		{"containing", "2026-09-01T09:00:00Z", "2026-09-01T12:00:00Z", true},
		{"contained", "2026-09-01T10:15:00Z", "2026-09-01T10:45:00Z", true},
		{"touching after", "2026-09-01T11:00:00Z", "2026-09-01T12:00:00Z", false},
		{"touching before", "2026-09-01T09:00:00Z", "2026-09-01T10:00:00Z", false},
		{"disjoint", "2026-09-01T13:00:00Z", "2026-09-01T14:00:00Z", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := r.Overlaps(mustTime(t, tt.start), mustTime(t, tt.end))
			if got != tt.want {
				t.Errorf("Overlaps(%s, %s) = %v, want %v", tt.start, tt.end, got, tt.want)
			}
		})
	}
}

func TestReservationCancelIdempotent(t *testing.T) {
	r := Reservation{
		ID: "r1", ResourceID: "treadmill-1", UserID: "u1",
		StartTime: mustTime(t, "2026-09-01T10:00:00Z"),
		EndTime:   mustTime(t, "2026-09-01T11:00:00Z"),
		Status:    ReservationStatusConfirmed,
	}

	r.Cancel()
	if !r.IsCancelled() {
		t.Fatal("expected reservation to be cancelled")
	}
	if r.CancelledAt == nil {
		t.Fatal("expected CancelledAt to be set")
	}
	firstCancelledAt := *r.CancelledAt

	r.Cancel()
	if !r.CancelledAt.Equal(firstCancelledAt) {
		t.Error("second cancel must not move CancelledAt")
	}
}
