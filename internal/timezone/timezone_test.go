package timezone

import (
	"testing"
	"time"

	"github.com/Domenick1991/fitstudio/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormat_Layout(t *testing.T) {
	instant := time.Date(2025, 3, 14, 9, 30, 5, 0, time.UTC)

	got, err := Format(instant, "UTC")
	require.NoError(t, err)
	assert.Equal(t, "2025-03-14 09:30:05", got)

	got, err = Format(instant, DefaultZone)
	require.NoError(t, err)
	assert.Equal(t, "2025-03-14 15:00:05", got)
}

func TestFormat_KolkataIsFiveAndAHalfHoursAheadOfUTC(t *testing.T) {
	instant := time.Now().Add(10 * 24 * time.Hour).Truncate(time.Second)

	utc, err := Format(instant, "UTC")
	require.NoError(t, err)
	ist, err := Format(instant, "Asia/Kolkata")
	require.NoError(t, err)

	utcWall, err := time.Parse(Layout, utc)
	require.NoError(t, err)
	istWall, err := time.Parse(Layout, ist)
	require.NoError(t, err)

	assert.Equal(t, 5*time.Hour+30*time.Minute, istWall.Sub(utcWall))
}

func TestFormat_FollowsDaylightSaving(t *testing.T) {
	winter := time.Date(2025, 1, 15, 12, 0, 0, 0, time.UTC)
	summer := time.Date(2025, 7, 15, 12, 0, 0, 0, time.UTC)

	got, err := Format(winter, "America/New_York")
	require.NoError(t, err)
	assert.Equal(t, "2025-01-15 07:00:00", got)

	got, err = Format(summer, "America/New_York")
	require.NoError(t, err)
	assert.Equal(t, "2025-07-15 08:00:00", got)
}

func TestFormat_IgnoresSourceZone(t *testing.T) {
	ist, err := time.LoadLocation("Asia/Kolkata")
	require.NoError(t, err)
	instant := time.Date(2025, 3, 14, 15, 0, 0, 0, ist)

	got, err := Format(instant, "UTC")
	require.NoError(t, err)
	assert.Equal(t, "2025-03-14 09:30:00", got)
}

func TestValidate(t *testing.T) {
	testCases := []struct {
		name    string
		zone    string
		wantErr bool
	}{
		{name: "default zone", zone: DefaultZone},
		{name: "utc", zone: "UTC"},
		{name: "america", zone: "America/Los_Angeles"},
		{name: "unknown", zone: "Mars/Olympus_Mons", wantErr: true},
		{name: "empty", zone: "", wantErr: true},
		{name: "blank", zone: "   ", wantErr: true},
		{name: "local", zone: "Local", wantErr: true},
		{name: "lowercase local", zone: "local", wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := Validate(tc.zone)
			if tc.wantErr {
				assert.ErrorIs(t, err, domain.ErrInvalidTimezone)
				assert.ErrorIs(t, err, domain.ErrInvalidInput)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestFormat_InvalidZone(t *testing.T) {
	got, err := Format(time.Now(), "Nowhere/Unknown")
	assert.ErrorIs(t, err, domain.ErrInvalidTimezone)
	assert.Empty(t, got)
	assert.Contains(t, err.Error(), "Nowhere/Unknown")
}

func TestLoad_IgnoresCase(t *testing.T) {
	testCases := []struct {
		zone string
		want string
	}{
		{zone: "utc", want: "UTC"},
		{zone: "asia/kolkata", want: "Asia/Kolkata"},
		{zone: "AMERICA/NEW_YORK", want: "America/New_York"},
		{zone: "Asia/Kolkata", want: "Asia/Kolkata"},
	}

	for _, tc := range testCases {
		t.Run(tc.zone, func(t *testing.T) {
			loc, err := Load(tc.zone)
			require.NoError(t, err)
			assert.Equal(t, tc.want, loc.String())
		})
	}

	got, err := Format(time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC), "asia/kolkata")
	require.NoError(t, err)
	assert.Equal(t, "2025-03-14 15:00:00", got)
}

func TestZoneList(t *testing.T) {
	names := canonicalNames()
	assert.Equal(t, "Asia/Kolkata", names["asia/kolkata"])
	assert.NotContains(t, names, "local")
}
