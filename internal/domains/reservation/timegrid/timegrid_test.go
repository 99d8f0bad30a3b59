package timegrid_test

import (
	"testing"
	"time"

	"labdesk/internal/domains/reservation/timegrid"

	"github.com/stretchr/testify/assert"
)

func at(hour, minute int) time.Time {
	return time.Date(2026, 9, 1, hour, minute, 0, 0, time.UTC)
}

func TestAligned(t *testing.T) {
	tests := []struct {
		name    string
		instant time.Time
		want    bool
	}{
		{name: "on the hour", instant: at(9, 0), want: true},
		{name: "quarter past", instant: at(9, 15), want: true},
		{name: "half past", instant: at(9, 30), want: true},
		{name: "quarter to", instant: at(9, 45), want: true},
		{name: "off grid minute", instant: at(9, 10), want: false},
		{name: "stray seconds", instant: at(9, 15).Add(30 * time.Second), want: false},
		{name: "stray nanoseconds", instant: at(9, 15).Add(time.Nanosecond), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, timegrid.Aligned(tt.instant))
		})
	}
}

func TestValidateSlot(t *testing.T) {
	now := at(8, 0)

	tests := []struct {
		name    string
		start   time.Time
		end     time.Time
		wantErr string
	}{
		{
			name:  "valid one hour slot",
			start: at(10, 0),
			end:   at(11, 0),
		},
		{
			name:  "valid single slot",
			start: at(10, 0),
			end:   at(10, 15),
		},
		{
			name:  "valid exactly eight hours",
			start: at(9, 0),
			end:   at(17, 0),
		},
		{
			name:    "start off grid",
			start:   at(10, 5),
			end:     at(11, 0),
			wantErr: "start and end must align to the 15-minute grid",
		},
		{
			name:    "end off grid",
			start:   at(10, 0),
			end:     at(11, 20),
			wantErr: "start and end must align to the 15-minute grid",
		},
		{
			name:    "end equals start",
			start:   at(10, 0),
			end:     at(10, 0),
			wantErr: "end must be after start",
		},
		{
			name:    "end before start",
			start:   at(11, 0),
			end:     at(10, 0),
			wantErr: "end must be after start",
		},
		{
			name:    "over eight hours",
			start:   at(9, 0),
			end:     at(17, 15),
			wantErr: "reservation may not exceed 8 hours",
		},
		{
			name:    "start equals now",
			start:   at(8, 0),
			end:     at(9, 0),
			wantErr: "start must be in the future",
		},
		{
			name:    "start in the past",
			start:   at(7, 0),
			end:     at(8, 0),
			wantErr: "start must be in the future",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := timegrid.ValidateSlot(tt.start, tt.end, now)

			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				assert.EqualError(t, err, tt.wantErr)
			}
		})
	}
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name   string
		aStart time.Time
		aEnd   time.Time
		bStart time.Time
		bEnd   time.Time
		want   bool
	}{
		{
			name:   "identical windows",
			aStart: at(10, 0), aEnd: at(11, 0),
			bStart: at(10, 0), bEnd: at(11, 0),
			want: true,
		},
		{
			name:   "partial overlap",
			aStart: at(10, 0), aEnd: at(11, 0),
			bStart: at(10, 30), bEnd: at(11, 30),
			want: true,
		},
		{
			name:   "containment",
			aStart: at(10, 0), aEnd: at(12, 0),
			bStart: at(10, 30), bEnd: at(11, 0),
			want: true,
		},
		{
			name:   "touching end to start",
			aStart: at(10, 0), aEnd: at(11, 0),
			bStart: at(11, 0), bEnd: at(12, 0),
			want: false,
		},
		{
			name:   "touching start to end",
			aStart: at(11, 0), aEnd: at(12, 0),
			bStart: at(10, 0), bEnd: at(11, 0),
			want: false,
		},
		{
			name:   "disjoint",
			aStart: at(8, 0), aEnd: at(9, 0),
			bStart: at(11, 0), bEnd: at(12, 0),
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, timegrid.Overlaps(tt.aStart, tt.aEnd, tt.bStart, tt.bEnd))

			// The predicate is symmetric in its two windows.
			assert.Equal(t, tt.want, timegrid.Overlaps(tt.bStart, tt.bEnd, tt.aStart, tt.aEnd))
		})
	}
}

func TestClamp(t *testing.T) {
	winStart := at(9, 0)
	winEnd := at(17, 0)

	tests := []struct {
		name      string
		start     time.Time
		end       time.Time
		wantStart time.Time
		wantEnd   time.Time
		wantOK    bool
	}{
		{
			name:  "fully inside",
			start: at(10, 0), end: at(11, 0),
			wantStart: at(10, 0), wantEnd: at(11, 0),
			wantOK: true,
		},
		{
			name:  "starts before window",
			start: at(8, 0), end: at(10, 0),
			wantStart: at(9, 0), wantEnd: at(10, 0),
			wantOK: true,
		},
		{
			name:  "ends after window",
			start: at(16, 0), end: at(18, 0),
			wantStart: at(16, 0), wantEnd: at(17, 0),
			wantOK: true,
		},
		{
			name:  "spans the whole window",
			start: at(8, 0), end: at(18, 0),
			wantStart: at(9, 0), wantEnd: at(17, 0),
			wantOK: true,
		},
		{
			name:  "entirely before window",
			start: at(7, 0), end: at(8, 0),
			wantOK: false,
		},
		{
			name:  "entirely after window",
			start: at(18, 0), end: at(19, 0),
			wantOK: false,
		},
		{
			name:  "clamps to zero width",
			start: at(8, 0), end: at(9, 0),
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotStart, gotEnd, ok := timegrid.Clamp(tt.start, tt.end, winStart, winEnd)

			assert.Equal(t, tt.wantOK, ok)

			if tt.wantOK {
				assert.Equal(t, tt.wantStart, gotStart)
				assert.Equal(t, tt.wantEnd, gotEnd)
			}
		})
	}
}
