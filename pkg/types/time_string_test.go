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
		{name: "HH:MM", input: "09:30", want: "09:30"},
		{name: "with seconds from postgres", input: "13:00:00", want: "13:00"},
		{name: "surrounding spaces", input: " 17:05 ", want: "17:05"},
		{name: "garbage", input: "9h30", wantErr: true},
		{name: "out of range hour", input: "25:00", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewTimeStringFromString(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidTimeString)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTimeString_AddMinutes(t *testing.T) {
	got, err := TimeString("09:45").AddMinutes(30)
	require.NoError(t, err)
	assert.Equal(t, TimeString("10:15"), got)

	_, err = TimeString("23:30").AddMinutes(60)
	assert.ErrorIs(t, err, ErrTimeOutOfRange)

	_, err = TimeString("bad").AddMinutes(10)
	assert.ErrorIs(t, err, ErrInvalidTimeString)
}

func TestTimeString_Compare(t *testing.T) {
	assert.True(t, TimeString("09:00").IsBefore("09:01"))
	assert.False(t, TimeString("09:00").IsBefore("09:00"))
	assert.True(t, TimeString("18:00").IsAfter("08:00"))
	assert.True(t, TimeString("07:00").Equal("07:00"))
	assert.Equal(t, 13*60+30, TimeString("13:30").Minutes())
	assert.Equal(t, -1, TimeString("").Minutes())
}

func TestTimeString_OnDate(t *testing.T) {
	loc := time.FixedZone("clinic", 3*60*60)
	date := time.Date(2025, time.March, 10, 0, 0, 0, 0, loc)

	got := TimeString("14:15").OnDate(date)

	assert.Equal(t, time.Date(2025, time.March, 10, 14, 15, 0, 0, loc), got)
}

func TestTimeString_ScanValue(t *testing.T) {
	var ts TimeString

	require.NoError(t, ts.Scan([]byte("08:30:00")))
	assert.Equal(t, TimeString("08:30"), ts)

	require.NoError(t, ts.Scan(time.Date(0, 1, 1, 16, 45, 0, 0, time.UTC)))
	assert.Equal(t, TimeString("16:45"), ts)

	require.NoError(t, ts.Scan(nil))
	assert.True(t, ts.IsZero())

	assert.Error(t, ts.Scan(42))

	v, err := TimeString("10:00").Value()
	require.NoError(t, err)
	assert.Equal(t, "10:00", v)

	v, err = TimeString("").Value()
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestTimeString_Canonical(t *testing.T) {
	assert.Equal(t, TimeString("09:00"), TimeString("9:00").Canonical())
	assert.Equal(t, TimeString("09:00"), TimeString("09:00").Canonical())
	assert.Equal(t, TimeString("13:05"), TimeString("13:05").Canonical())
	assert.Equal(t, TimeString("10am"), TimeString("10am").Canonical())
}
