// Package cache holds the process-wide in-memory mirror of the settings
// store: guild-wide settings plus every channel record, keyed by guild then
// channel. The cache exclusively owns the live mutable records; the store
// only ever sees copies serialized on save.
package cache

import (
	"context"
	"sort"
	"sync"

	"github.com/checkinhq/checkin-bot/internal/domain/contract"
	"github.com/checkinhq/checkin-bot/internal/domain/entity"
	"github.com/rs/zerolog"
)

type Cache struct {
	dm  contract.DataManager
	log zerolog.Logger

	mu     sync.RWMutex
	guilds map[string]*guildEntry
}

// guildEntry groups one guild's records under a single lock. Chat handlers
// run on discordgo's event goroutines while the reset scheduler runs on its
// own, so every mutation of a guild's records must hold entry.mu.
type guildEntry struct {
	mu       sync.Mutex
	settings *entity.GuildSettings
	channels map[string]*entity.ChannelSettings
}

func New(dm contract.DataManager, log zerolog.Logger) *Cache {
	return &Cache{
		dm:     dm,
		log:    log.With().Str("component", "cache").Logger(),
		guilds: make(map[string]*guildEntry),
	}
}

// Preload replaces the cache content with everything the store knows. Called
// once at startup; a failure leaves the cache empty and records are then
// loaded lazily on first access.
func (c *Cache) Preload() error {
	records, err := c.dm.Settings().LoadAll()
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.guilds = make(map[string]*guildEntry, len(records))
	for guildID, record := range records {
		entry := &guildEntry{
			settings: record.Settings,
			channels: record.Channels,
		}
		if entry.channels == nil {
			entry.channels = make(map[string]*entity.ChannelSettings)
		}
		c.guilds[guildID] = entry
	}
	c.log.Info().Int("guilds", len(records)).Msg("cache preloaded")
	return nil
}

// GuildIDs returns a snapshot of the cached guild keys, sorted for
// deterministic iteration.
func (c *Cache) GuildIDs() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	ids := make([]string, 0, len(c.guilds))
	for id := range c.guilds {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// ChannelIDs returns a snapshot of the channel keys cached for a guild.
func (c *Cache) ChannelIDs(guildID string) []string {
	c.mu.RLock()
	entry, ok := c.guilds[guildID]
	c.mu.RUnlock()
	if !ok {
		return nil
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()
	ids := make([]string, 0, len(entry.channels))
	for id := range entry.channels {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// WithGuild runs fn with the guild's settings under the guild lock, creating
// and persisting defaults on first access. fn may mutate the settings; the
// caller is responsible for saving afterwards.
func (c *Cache) WithGuild(guildID string, fn func(gs *entity.GuildSettings) error) error {
	entry := c.entry(guildID)
	entry.mu.Lock()
	defer entry.mu.Unlock()

	c.ensureGuildLocked(guildID, entry)
	return fn(entry.settings)
}

// WithChannel runs fn with the guild settings and one channel's settings
// under the guild lock, creating and persisting defaults on first access.
func (c *Cache) WithChannel(guildID, channelID string, fn func(gs *entity.GuildSettings, cs *entity.ChannelSettings) error) error {
	entry := c.entry(guildID)
	entry.mu.Lock()
	defer entry.mu.Unlock()

	c.ensureGuildLocked(guildID, entry)

	settings, ok := entry.channels[channelID]
	if !ok {
		loaded, err := c.dm.Settings().LoadChannel(guildID, channelID)
		if err != nil {
			// Storage failures on load degrade to defaults, never crash.
			c.log.Error().Err(err).Str("guild_id", guildID).Str("channel_id", channelID).
				Msg("failed to load channel settings, using defaults")
		}
		if loaded != nil {
			settings = loaded
		} else {
			settings = entity.NewChannelSettings()
			c.persistChannel(guildID, channelID, settings)
		}
		entry.channels[channelID] = settings
	}

	return fn(entry.settings, settings)
}

func (c *Cache) entry(guildID string) *guildEntry {
	c.mu.Lock()
	defer c.mu.Unlock()
	entry, ok := c.guilds[guildID]
	if !ok {
		entry = &guildEntry{channels: make(map[string]*entity.ChannelSettings)}
		c.guilds[guildID] = entry
	}
	return entry
}

func (c *Cache) ensureGuildLocked(guildID string, entry *guildEntry) {
	if entry.settings != nil {
		return
	}
	loaded, err := c.dm.Settings().LoadGuild(guildID)
	if err != nil {
		c.log.Error().Err(err).Str("guild_id", guildID).
			Msg("failed to load guild settings, using defaults")
	}
	if loaded != nil {
		entry.settings = loaded
		return
	}
	entry.settings = entity.DefaultGuildSettings()
	if err := c.dm.Settings().SaveGuild(guildID, entry.settings); err != nil {
		c.log.Error().Err(err).Str("guild_id", guildID).Msg("failed to persist default guild settings")
	}
}

// persistChannel writes through a newly created channel record. Save errors
// are logged only; the in-memory record stays ahead of the store.
func (c *Cache) persistChannel(guildID, channelID string, settings *entity.ChannelSettings) {
	err := c.dm.WithTransaction(context.Background(), func(dm contract.DataManager) error {
		return dm.Settings().SaveChannel(guildID, channelID, settings)
	})
	if err != nil {
		c.log.Error().Err(err).Str("guild_id", guildID).Str("channel_id", channelID).
			Msg("failed to persist default channel settings")
	}
}
