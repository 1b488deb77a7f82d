package database

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/checkinhq/checkin-bot/internal/domain"
	"github.com/checkinhq/checkin-bot/internal/domain/contract"
	"github.com/checkinhq/checkin-bot/internal/domain/entity"
)

const (
	settingsTable     = "channel_settings"
	checkinBoardTable = "checkin_leaderboard"
	missedBoardTable  = "missed_leaderboard"
)

// channelData is the wire form of the channel settings blob: sets travel as
// sorted lists, the last reset timestamp as an ISO-8601 string. The two
// leaderboard maps live in their own tables, not in the blob.
type channelData struct {
	DailyChecked []string          `json:"daily_checked"`
	NameMap      map[string]string `json:"name_map"`
	BannedUsers  []string          `json:"banned_users"`
	RequireMedia bool              `json:"require_media"`
	WordMin      int               `json:"word_min"`
	ResetTime    string            `json:"reset_time,omitempty"`
	LastReset    string            `json:"last_reset_time,omitempty"`
}

// guildData is the wire form of the guild-wide settings blob, stored under
// the reserved sentinel channel key.
type guildData struct {
	ServerAdmins []string `json:"server_admins"`
	Timezone     string   `json:"timezone"`
}

type settingsRepository struct {
	db     dbConn
	driver string
}

func newSettingsRepository(db dbConn, driver string) contract.SettingsRepo {
	return &settingsRepository{db: db, driver: driver}
}

func (r *settingsRepository) exec(query string, args ...interface{}) (sql.Result, error) {
	return r.db.Exec(rebind(r.driver, query), args...)
}

func (r *settingsRepository) query(query string, args ...interface{}) (*sql.Rows, error) {
	return r.db.Query(rebind(r.driver, query), args...)
}

func (r *settingsRepository) queryRow(query string, args ...interface{}) *sql.Row {
	return r.db.QueryRow(rebind(r.driver, query), args...)
}

func (r *settingsRepository) LoadGuild(guildID string) (*entity.GuildSettings, error) {
	var raw []byte
	err := r.queryRow(
		"SELECT data FROM "+settingsTable+" WHERE guild_id = ? AND channel_id = ?",
		guildID, domain.GuildSettingsChannelID,
	).Scan(&raw)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load guild settings: %w", err)
	}

	var data guildData
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("failed to decode guild settings: %w", err)
	}
	return guildFromData(data), nil
}

func (r *settingsRepository) SaveGuild(guildID string, settings *entity.GuildSettings) error {
	raw, err := json.Marshal(guildData{
		ServerAdmins: settings.Admins.Sorted(),
		Timezone:     settings.Timezone,
	})
	if err != nil {
		return fmt.Errorf("failed to encode guild settings: %w", err)
	}

	return r.upsertSettings(guildID, domain.GuildSettingsChannelID, raw)
}

func (r *settingsRepository) LoadChannel(guildID, channelID string) (*entity.ChannelSettings, error) {
	settings := entity.NewChannelSettings()
	found := false

	var raw []byte
	err := r.queryRow(
		"SELECT data FROM "+settingsTable+" WHERE guild_id = ? AND channel_id = ?",
		guildID, channelID,
	).Scan(&raw)
	switch {
	case err == sql.ErrNoRows:
	case err != nil:
		return nil, fmt.Errorf("failed to load channel settings: %w", err)
	default:
		var data channelData
		if err := json.Unmarshal(raw, &data); err != nil {
			return nil, fmt.Errorf("failed to decode channel settings: %w", err)
		}
		applyChannelData(settings, data)
		found = true
	}

	for _, board := range []struct {
		table  string
		counts map[string]int64
	}{
		{checkinBoardTable, settings.CheckinCounts},
		{missedBoardTable, settings.MissedCounts},
	} {
		n, err := r.loadBoard(board.table, guildID, channelID, board.counts)
		if err != nil {
			return nil, err
		}
		if n > 0 {
			found = true
		}
	}

	if !found {
		return nil, nil
	}
	return settings, nil
}

func (r *settingsRepository) loadBoard(table, guildID, channelID string, into map[string]int64) (int, error) {
	rows, err := r.query(
		"SELECT user_id, count FROM "+table+" WHERE guild_id = ? AND channel_id = ?",
		guildID, channelID,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to load %s: %w", table, err)
	}
	defer rows.Close()

	n := 0
	for rows.Next() {
		var userID string
		var count int64
		if err := rows.Scan(&userID, &count); err != nil {
			return 0, fmt.Errorf("failed to scan %s row: %w", table, err)
		}
		into[userID] = count
		n++
	}
	return n, rows.Err()
}

func (r *settingsRepository) SaveChannel(guildID, channelID string, settings *entity.ChannelSettings) error {
	data := channelData{
		DailyChecked: settings.DailyChecked,
		NameMap:      settings.NameMap,
		BannedUsers:  settings.Banned.Sorted(),
		RequireMedia: settings.RequireMedia,
		WordMin:      settings.WordMinimum,
		ResetTime:    settings.ResetTime,
	}
	if data.DailyChecked == nil {
		data.DailyChecked = []string{}
	}
	if !settings.LastReset.IsZero() {
		data.LastReset = settings.LastReset.UTC().Format(time.RFC3339)
	}

	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to encode channel settings: %w", err)
	}

	if err := r.upsertSettings(guildID, channelID, raw); err != nil {
		return err
	}

	// Leaderboard rows are fully replaced on every save. The display name is
	// denormalized from the name map at write time.
	for _, board := range []struct {
		table  string
		counts map[string]int64
	}{
		{checkinBoardTable, settings.CheckinCounts},
		{missedBoardTable, settings.MissedCounts},
	} {
		if err := r.replaceBoard(board.table, guildID, channelID, board.counts, settings); err != nil {
			return err
		}
	}
	return nil
}

func (r *settingsRepository) replaceBoard(table, guildID, channelID string, counts map[string]int64, settings *entity.ChannelSettings) error {
	if _, err := r.exec(
		"DELETE FROM "+table+" WHERE guild_id = ? AND channel_id = ?",
		guildID, channelID,
	); err != nil {
		return fmt.Errorf("failed to clear %s: %w", table, err)
	}

	for _, userID := range sortedKeys(counts) {
		name := settings.NameMap[userID]
		if name == "" {
			name = "User_" + userID
		}
		if _, err := r.exec(
			"INSERT INTO "+table+" (guild_id, channel_id, user_id, user_name, count) VALUES (?, ?, ?, ?, ?)",
			guildID, channelID, userID, name, counts[userID],
		); err != nil {
			return fmt.Errorf("failed to insert %s row: %w", table, err)
		}
	}
	return nil
}

func (r *settingsRepository) upsertSettings(guildID, channelID string, raw []byte) error {
	_, err := r.exec(
		"INSERT INTO "+settingsTable+" (guild_id, channel_id, data) VALUES (?, ?, ?) "+
			"ON CONFLICT (guild_id, channel_id) DO UPDATE SET data = excluded.data",
		guildID, channelID, string(raw),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert settings row: %w", err)
	}
	return nil
}

func (r *settingsRepository) LoadAll() (map[string]*entity.GuildRecord, error) {
	records := make(map[string]*entity.GuildRecord)

	guildOf := func(guildID string) *entity.GuildRecord {
		rec, ok := records[guildID]
		if !ok {
			rec = &entity.GuildRecord{Channels: make(map[string]*entity.ChannelSettings)}
			records[guildID] = rec
		}
		return rec
	}
	channelOf := func(guildID, channelID string) *entity.ChannelSettings {
		rec := guildOf(guildID)
		settings, ok := rec.Channels[channelID]
		if !ok {
			settings = entity.NewChannelSettings()
			rec.Channels[channelID] = settings
		}
		return settings
	}

	rows, err := r.query("SELECT guild_id, channel_id, data FROM " + settingsTable)
	if err != nil {
		return nil, fmt.Errorf("failed to load settings rows: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var guildID, channelID string
		var raw []byte
		if err := rows.Scan(&guildID, &channelID, &raw); err != nil {
			return nil, fmt.Errorf("failed to scan settings row: %w", err)
		}
		if channelID == domain.GuildSettingsChannelID {
			var data guildData
			if err := json.Unmarshal(raw, &data); err != nil {
				return nil, fmt.Errorf("failed to decode guild settings for guild %s: %w", guildID, err)
			}
			guildOf(guildID).Settings = guildFromData(data)
			continue
		}
		var data channelData
		if err := json.Unmarshal(raw, &data); err != nil {
			return nil, fmt.Errorf("failed to decode channel settings for channel %s: %w", channelID, err)
		}
		applyChannelData(channelOf(guildID, channelID), data)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, board := range []struct {
		table string
		pick  func(*entity.ChannelSettings) map[string]int64
	}{
		{checkinBoardTable, func(c *entity.ChannelSettings) map[string]int64 { return c.CheckinCounts }},
		{missedBoardTable, func(c *entity.ChannelSettings) map[string]int64 { return c.MissedCounts }},
	} {
		rows, err := r.query("SELECT guild_id, channel_id, user_id, count FROM " + board.table)
		if err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", board.table, err)
		}
		for rows.Next() {
			var guildID, channelID, userID string
			var count int64
			if err := rows.Scan(&guildID, &channelID, &userID, &count); err != nil {
				rows.Close()
				return nil, fmt.Errorf("failed to scan %s row: %w", board.table, err)
			}
			board.pick(channelOf(guildID, channelID))[userID] = count
		}
		if err := rows.Err(); err != nil {
			rows.Close()
			return nil, err
		}
		rows.Close()
	}

	return records, nil
}

func guildFromData(data guildData) *entity.GuildSettings {
	settings := entity.DefaultGuildSettings()
	settings.Admins = entity.NewIDSet(data.ServerAdmins...)
	if data.Timezone != "" {
		settings.Timezone = data.Timezone
	}
	return settings
}

// applyChannelData merges a decoded blob over channel defaults, so fields
// missing from older rows keep their default values.
func applyChannelData(settings *entity.ChannelSettings, data channelData) {
	if data.DailyChecked != nil {
		settings.DailyChecked = data.DailyChecked
	}
	if data.NameMap != nil {
		settings.NameMap = data.NameMap
	}
	settings.Banned = entity.NewIDSet(data.BannedUsers...)
	settings.RequireMedia = data.RequireMedia
	if data.WordMin > 0 {
		settings.WordMinimum = data.WordMin
	}
	settings.ResetTime = data.ResetTime
	if data.LastReset != "" {
		// A malformed timestamp means "never reset", not a load failure.
		if t, err := time.Parse(time.RFC3339, data.LastReset); err == nil {
			settings.LastReset = t
		}
	}
}

func sortedKeys(m map[string]int64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
