package entity

import (
	"fmt"
	"strconv"
	"time"

	"github.com/checkinhq/checkin-bot/internal/domain"
)

// GuildSettings holds guild-wide configuration shared by all channels of a
// guild. Persisted under the reserved channel key domain.GuildSettingsChannelID.
type GuildSettings struct {
	Admins   IDSet
	Timezone string
}

func DefaultGuildSettings() *GuildSettings {
	return &GuildSettings{
		Admins:   NewIDSet(),
		Timezone: domain.DefaultTimezone,
	}
}

// Location resolves the guild timezone. The second return value is false when
// the stored name did not resolve and the default zone was substituted; the
// caller is expected to correct the stored value.
func (g *GuildSettings) Location() (*time.Location, bool) {
	loc, err := time.LoadLocation(g.Timezone)
	if err != nil {
		loc, _ = time.LoadLocation(domain.DefaultTimezone)
		return loc, false
	}
	return loc, true
}

// ChannelSettings holds per-channel check-in state and configuration. The two
// count maps are persisted in the leaderboard tables, everything else in the
// channel's settings blob.
type ChannelSettings struct {
	CheckinCounts map[string]int64
	MissedCounts  map[string]int64
	DailyChecked  []string // insertion order, a user appears at most once
	NameMap       map[string]string
	Banned        IDSet
	RequireMedia  bool
	WordMinimum   int
	ResetTime     string    // HHMMSS in the guild timezone, empty disables resets
	LastReset     time.Time // zero means never reset
}

func NewChannelSettings() *ChannelSettings {
	return &ChannelSettings{
		CheckinCounts: make(map[string]int64),
		MissedCounts:  make(map[string]int64),
		DailyChecked:  []string{},
		NameMap:       make(map[string]string),
		Banned:        NewIDSet(),
		WordMinimum:   domain.DefaultWordMinimum,
	}
}

// HasCheckedToday reports whether the user already checked in since the last
// reset of this channel.
func (c *ChannelSettings) HasCheckedToday(userID string) bool {
	for _, id := range c.DailyChecked {
		if id == userID {
			return true
		}
	}
	return false
}

// DisplayName resolves a user ID through the channel's name mapping. The
// fallback is used when no mapping exists; an empty fallback synthesizes an
// unknown-user label.
func (c *ChannelSettings) DisplayName(userID, fallback string) string {
	if name, ok := c.NameMap[userID]; ok {
		return name
	}
	if fallback != "" {
		return fallback
	}
	return fmt.Sprintf("Unknown User (%s)", userID)
}

// GuildRecord is the merged load-time view of one guild: its guild-wide
// settings plus all channel records.
type GuildRecord struct {
	Settings *GuildSettings
	Channels map[string]*ChannelSettings
}

// ParseResetTime validates an HHMMSS reset time string and returns its
// components.
func ParseResetTime(s string) (hour, minute, second int, err error) {
	if len(s) != 6 {
		return 0, 0, 0, domain.ErrInvalidResetTime
	}
	hour, err1 := strconv.Atoi(s[:2])
	minute, err2 := strconv.Atoi(s[2:4])
	second, err3 := strconv.Atoi(s[4:])
	if err1 != nil || err2 != nil || err3 != nil {
		return 0, 0, 0, domain.ErrInvalidResetTime
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 || second < 0 || second > 59 {
		return 0, 0, 0, domain.ErrInvalidResetTime
	}
	return hour, minute, second, nil
}

// FormatResetTime renders an HHMMSS reset time in 12-hour clock form for user
// facing output.
func FormatResetTime(s string) (string, error) {
	hour, minute, second, err := ParseResetTime(s)
	if err != nil {
		return "", err
	}
	period := "AM"
	hour12 := hour
	switch {
	case hour == 0:
		hour12 = 12
	case hour == 12:
		period = "PM"
	case hour > 12:
		hour12 = hour - 12
		period = "PM"
	}
	return fmt.Sprintf("%02d:%02d:%02d %s", hour12, minute, second, period), nil
}
