package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    TimeString
		wantErr bool
	}{
		{name: "valid morning time", input: "09:30", want: "09:30"},
		{name: "valid midnight", input: "00:00", want: "00:00"},
		{name: "valid last minute", input: "23:59", want: "23:59"},
		{name: "missing leading zero", input: "9:30", wantErr: true},
		{name: "out of range hour", input: "24:00", wantErr: true},
		{name: "out of range minute", input: "10:60", wantErr: true},
		{name: "garbage", input: "abc", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewTimeStringFromString(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidTimeFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTimeString_AddMinutes(t *testing.T) {
	tests := []struct {
		name    string
		start   TimeString
		minutes int
		want    TimeString
		wantErr error
	}{
		{name: "simple addition", start: "09:00", minutes: 30, want: "09:30"},
		{name: "crosses hour", start: "09:45", minutes: 30, want: "10:15"},
		{name: "zero minutes", start: "12:00", minutes: 0, want: "12:00"},
		{name: "lands exactly on midnight", start: "23:30", minutes: 30, want: "24:00"},
		{name: "crosses midnight", start: "23:45", minutes: 30, wantErr: ErrTimeOutOfRange},
		{name: "negative below zero", start: "00:10", minutes: -20, wantErr: ErrTimeOutOfRange},
		{name: "negative within day", start: "10:00", minutes: -30, want: "09:30"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.start.AddMinutes(tt.minutes)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTimeString_Compare(t *testing.T) {
	assert.True(t, TimeString("09:00").IsBefore("10:00"))
	assert.True(t, TimeString("09:59").IsBefore("10:00"))
	assert.False(t, TimeString("10:00").IsBefore("10:00"))
	assert.True(t, TimeString("18:00").IsAfter("09:00"))
	// "24:00" sorts after every valid wall-clock time
	assert.True(t, TimeString("23:59").IsBefore("24:00"))
}

func TestTimeString_Minutes(t *testing.T) {
	m, err := TimeString("10:30").Minutes()
	require.NoError(t, err)
	assert.Equal(t, 630, m)

	_, err = TimeString("bad").Minutes()
	assert.ErrorIs(t, err, ErrInvalidTimeFormat)
}

func TestTimeString_Scan(t *testing.T) {
	tests := []struct {
		name string
		src  interface{}
		want TimeString
	}{
		{name: "time.Time", src: time.Date(2026, 9, 15, 14, 30, 0, 0, time.UTC), want: "14:30"},
		{name: "HH:MM string", src: "09:00", want: "09:00"},
		{name: "HH:MM:SS string truncated", src: "09:00:00", want: "09:00"},
		{name: "bytes", src: []byte("18:45:00"), want: "18:45"},
		{name: "nil", src: nil, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ts TimeString
			require.NoError(t, ts.Scan(tt.src))
			assert.Equal(t, tt.want, ts)
		})
	}

	var ts TimeString
	assert.Error(t, ts.Scan(42))
}

func TestTimeString_Value(t *testing.T) {
	v, err := TimeString("10:00").Value()
	require.NoError(t, err)
	assert.Equal(t, "10:00", v)

	_, err = TimeString("10:0").Value()
	assert.ErrorIs(t, err, ErrInvalidTimeFormat)
}
