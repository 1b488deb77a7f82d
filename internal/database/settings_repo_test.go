package database

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/checkinhq/checkin-bot/internal/domain/entity"
)

func TestSettingsRepository_GuildRoundTrip(t *testing.T) {
	db := SetupTestDB(t)
	defer CleanupTestDB(t, db)

	repo := newSettingsRepository(db.conn, db.driver)

	loaded, err := repo.LoadGuild("g1")
	require.NoError(t, err)
	assert.Nil(t, loaded, "missing guild should load as nil, not defaults")

	gs := entity.DefaultGuildSettings()
	gs.Timezone = "Europe/London"
	gs.Admins.Add("u1")
	gs.Admins.Add("u2")
	require.NoError(t, repo.SaveGuild("g1", gs))

	loaded, err = repo.LoadGuild("g1")
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, "Europe/London", loaded.Timezone)
	assert.Equal(t, []string{"u1", "u2"}, loaded.Admins.Sorted())

	// Saving again overwrites rather than duplicating.
	gs.Admins.Remove("u2")
	require.NoError(t, repo.SaveGuild("g1", gs))
	loaded, err = repo.LoadGuild("g1")
	require.NoError(t, err)
	assert.Equal(t, []string{"u1"}, loaded.Admins.Sorted())
}

func TestSettingsRepository_ChannelRoundTrip(t *testing.T) {
	db := SetupTestDB(t)
	defer CleanupTestDB(t, db)

	repo := newSettingsRepository(db.conn, db.driver)

	loaded, err := repo.LoadChannel("g1", "c1")
	require.NoError(t, err)
	assert.Nil(t, loaded, "missing channel should load as nil, not defaults")

	cs := entity.NewChannelSettings()
	cs.DailyChecked = []string{"u1", "u2"}
	cs.NameMap["u1"] = "Alice"
	cs.Banned.Add("u9")
	cs.RequireMedia = true
	cs.WordMinimum = 5
	cs.ResetTime = "235959"
	cs.LastReset = time.Date(2025, 6, 15, 9, 0, 3, 0, time.UTC)
	cs.CheckinCounts["u1"] = 4
	cs.CheckinCounts["u2"] = 1
	cs.MissedCounts["u2"] = 7
	require.NoError(t, repo.SaveChannel("g1", "c1", cs))

	loaded, err = repo.LoadChannel("g1", "c1")
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, []string{"u1", "u2"}, loaded.DailyChecked)
	assert.Equal(t, map[string]string{"u1": "Alice"}, loaded.NameMap)
	assert.True(t, loaded.Banned.Has("u9"))
	assert.True(t, loaded.RequireMedia)
	assert.Equal(t, 5, loaded.WordMinimum)
	assert.Equal(t, "235959", loaded.ResetTime)
	assert.True(t, loaded.LastReset.Equal(cs.LastReset), "last reset survives to the second")
	assert.Equal(t, int64(4), loaded.CheckinCounts["u1"])
	assert.Equal(t, int64(7), loaded.MissedCounts["u2"])
}

func TestSettingsRepository_SaveChannelReplacesBoards(t *testing.T) {
	db := SetupTestDB(t)
	defer CleanupTestDB(t, db)

	repo := newSettingsRepository(db.conn, db.driver)

	cs := entity.NewChannelSettings()
	cs.CheckinCounts["u1"] = 3
	cs.CheckinCounts["u2"] = 2
	require.NoError(t, repo.SaveChannel("g1", "c1", cs))

	// Dropping a user from the map must drop the row, not leave it stale.
	delete(cs.CheckinCounts, "u2")
	cs.CheckinCounts["u1"] = 9
	require.NoError(t, repo.SaveChannel("g1", "c1", cs))

	loaded, err := repo.LoadChannel("g1", "c1")
	require.NoError(t, err)
	assert.Equal(t, map[string]int64{"u1": 9}, loaded.CheckinCounts)
}

func TestSettingsRepository_ChannelsAreIsolated(t *testing.T) {
	db := SetupTestDB(t)
	defer CleanupTestDB(t, db)

	repo := newSettingsRepository(db.conn, db.driver)

	c1 := entity.NewChannelSettings()
	c1.CheckinCounts["u1"] = 1
	c2 := entity.NewChannelSettings()
	c2.WordMinimum = 10
	require.NoError(t, repo.SaveChannel("g1", "c1", c1))
	require.NoError(t, repo.SaveChannel("g1", "c2", c2))

	loaded1, err := repo.LoadChannel("g1", "c1")
	require.NoError(t, err)
	loaded2, err := repo.LoadChannel("g1", "c2")
	require.NoError(t, err)

	assert.Equal(t, int64(1), loaded1.CheckinCounts["u1"])
	assert.Equal(t, 1, loaded1.WordMinimum)
	assert.Empty(t, loaded2.CheckinCounts)
	assert.Equal(t, 10, loaded2.WordMinimum)
}

func TestSettingsRepository_LoadAll(t *testing.T) {
	db := SetupTestDB(t)
	defer CleanupTestDB(t, db)

	repo := newSettingsRepository(db.conn, db.driver)

	gs := entity.DefaultGuildSettings()
	gs.Admins.Add("admin")
	require.NoError(t, repo.SaveGuild("g1", gs))

	cs := entity.NewChannelSettings()
	cs.ResetTime = "090000"
	cs.CheckinCounts["u1"] = 2
	require.NoError(t, repo.SaveChannel("g1", "c1", cs))

	// A guild known only through a channel row still gets a record.
	require.NoError(t, repo.SaveChannel("g2", "c9", entity.NewChannelSettings()))

	records, err := repo.LoadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)

	g1 := records["g1"]
	require.NotNil(t, g1)
	require.NotNil(t, g1.Settings)
	assert.True(t, g1.Settings.Admins.Has("admin"))
	require.Contains(t, g1.Channels, "c1")
	assert.Equal(t, "090000", g1.Channels["c1"].ResetTime)
	assert.Equal(t, int64(2), g1.Channels["c1"].CheckinCounts["u1"])

	g2 := records["g2"]
	require.NotNil(t, g2)
	assert.Nil(t, g2.Settings, "a guild known only through channels has no settings row yet")
	require.Contains(t, g2.Channels, "c9")

	// The sentinel row never surfaces as a channel.
	assert.NotContains(t, g1.Channels, "0")
}

func TestSettingsRepository_MalformedLastReset(t *testing.T) {
	db := SetupTestDB(t)
	defer CleanupTestDB(t, db)

	_, err := db.conn.Exec(
		`INSERT INTO channel_settings (guild_id, channel_id, data) VALUES (?, ?, ?)`,
		"g1", "c1", `{"daily_checked":[],"name_map":{},"banned_users":[],"require_media":false,"word_min":1,"last_reset_time":"not-a-time"}`,
	)
	require.NoError(t, err)

	repo := newSettingsRepository(db.conn, db.driver)
	loaded, err := repo.LoadChannel("g1", "c1")
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.True(t, loaded.LastReset.IsZero(), "unparseable timestamp degrades to absent")
}
