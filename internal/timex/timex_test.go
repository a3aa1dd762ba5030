package timex

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDuration_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    time.Duration
		wantErr bool
	}{
		{name: "string form", in: `"3s"`, want: 3 * time.Second},
		{name: "nanoseconds form", in: `1500000000`, want: 1500 * time.Millisecond},
		{name: "bad string", in: `"abc"`, wantErr: true},
		{name: "bad type", in: `true`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Duration
			err := json.Unmarshal([]byte(tt.in), &d)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, d.Duration)
		})
	}
}

func TestDuration_MarshalRoundTrip(t *testing.T) {
	d := Duration{Duration: 90 * time.Second}
	b, err := json.Marshal(d)
	require.NoError(t, err)

	var back Duration
	require.NoError(t, json.Unmarshal(b, &back))
	assert.Equal(t, d.Duration, back.Duration)
}

func TestDateKey_IgnoresClockTime(t *testing.T) {
	morning := time.Date(2025, 3, 14, 6, 59, 0, 0, time.UTC)
	night := time.Date(2025, 3, 14, 23, 1, 0, 0, time.UTC)
	assert.Equal(t, "2025-03-14", DateKey(morning))
	assert.True(t, SameDate(morning, night))
	assert.False(t, SameDate(morning, night.AddDate(0, 0, 1)))
}

func TestNextClockTime(t *testing.T) {
	loc, err := time.LoadLocation("America/Sao_Paulo")
	require.NoError(t, err)

	before := time.Date(2025, 3, 14, 6, 0, 0, 0, loc)
	next := NextClockTime(before, 7, 0, loc)
	assert.Equal(t, time.Date(2025, 3, 14, 7, 0, 0, 0, loc), next)

	after := time.Date(2025, 3, 14, 7, 0, 0, 0, loc)
	next = NextClockTime(after, 7, 0, loc)
	assert.Equal(t, time.Date(2025, 3, 15, 7, 0, 0, 0, loc), next)
}
