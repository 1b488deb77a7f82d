package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/checkinhq/checkin-bot/internal/domain"
)

func TestParseResetTime(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		hour    int
		minute  int
		second  int
		wantErr bool
	}{
		{name: "midnight", input: "000000", hour: 0, minute: 0, second: 0},
		{name: "end of day", input: "235959", hour: 23, minute: 59, second: 59},
		{name: "morning", input: "090030", hour: 9, minute: 0, second: 30},
		{name: "hour out of range", input: "240000", wantErr: true},
		{name: "minute out of range", input: "126000", wantErr: true},
		{name: "second out of range", input: "120060", wantErr: true},
		{name: "too short", input: "945", wantErr: true},
		{name: "not numeric", input: "12ab59", wantErr: true},
		{name: "negative components", input: "-10000", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hour, minute, second, err := ParseResetTime(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, domain.ErrInvalidResetTime)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.hour, hour)
			assert.Equal(t, tt.minute, minute)
			assert.Equal(t, tt.second, second)
		})
	}
}

func TestFormatResetTime(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{input: "000000", want: "12:00:00 AM"},
		{input: "091500", want: "09:15:00 AM"},
		{input: "120000", want: "12:00:00 PM"},
		{input: "235959", want: "11:59:59 PM"},
	}
	for _, tt := range tests {
		got, err := FormatResetTime(tt.input)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}

	_, err := FormatResetTime("bogus")
	assert.Error(t, err)
}

func TestGuildSettings_Location(t *testing.T) {
	gs := DefaultGuildSettings()
	loc, valid := gs.Location()
	assert.True(t, valid)
	assert.Equal(t, "America/Los_Angeles", loc.String())

	gs.Timezone = "Not/AZone"
	loc, valid = gs.Location()
	assert.False(t, valid)
	assert.Equal(t, "America/Los_Angeles", loc.String(), "invalid zone falls back to the default")
}

func TestChannelSettings_DisplayName(t *testing.T) {
	cs := NewChannelSettings()
	cs.NameMap["u1"] = "Alice"

	assert.Equal(t, "Alice", cs.DisplayName("u1", "nick"))
	assert.Equal(t, "nick", cs.DisplayName("u2", "nick"))
	assert.Equal(t, "Unknown User (u3)", cs.DisplayName("u3", ""))
}

func TestChannelSettings_HasCheckedToday(t *testing.T) {
	cs := NewChannelSettings()
	assert.False(t, cs.HasCheckedToday("u1"))

	cs.DailyChecked = append(cs.DailyChecked, "u1")
	assert.True(t, cs.HasCheckedToday("u1"))
	assert.False(t, cs.HasCheckedToday("u2"))
}
