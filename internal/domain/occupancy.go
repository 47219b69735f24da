package domain

import (
	"sort"
	"time"
)

// Overlapping filters reservations down to confirmed ones overlapping [start, end).
func Overlapping(reservations []*Reservation, start, end time.Time) []*Reservation {
	var out []*Reservation
	for _, r := range reservations {
		if r.IsConfirmed() && r.Overlaps(start, end) {
			out = append(out, r)
		}
	}
	return out
}

// MaxOccupancy returns the peak number of confirmed reservations covering any
// single instant within [start, end). Counting reservations that merely overlap
// the window would overcount: two reservations can each overlap the window
// while never overlapping each other, so a sweep over clipped endpoints is used.
func MaxOccupancy(reservations []*Reservation, start, end time.Time) int {
	type event struct {
		at    time.Time
		delta int
	}

	var events []event
	for _, r := range reservations {
		if !r.IsConfirmed() || !r.Overlaps(start, end) {
			continue
		}
		from := r.StartTime
		if from.Before(start) {
			from = start
		}
		to := r.EndTime
		if to.After(end) {
			to = end
		}
		events = append(events, event{at: from, delta: 1}, event{at: to, delta: -1})
	}

	if len(events) == 0 {
		return 0
	}

	// Ends sort before starts at the same instant: [a,b) and [b,c) never
	// occupy a shared instant.
	sort.Slice(events, func(i, j int) bool {
		if events[i].at.Equal(events[j].at) {
			return events[i].delta < events[j].delta
		}
		return events[i].at.Before(events[j].at)
	})

	var current, peak int
	for _, e := range events {
		current += e.delta
		if current > peak {
			peak = current
		}
	}
	return peak
}

// CountOverlapping returns how many confirmed reservations overlap [start, end).
// This is the slot occupancy count surfaced by the calendar.
func CountOverlapping(reservations []*Reservation, start, end time.Time) int {
	count := 0
	for _, r := range reservations {
		if r.IsConfirmed() && r.Overlaps(start, end) {
			count++
		}
	}
	return count
}
