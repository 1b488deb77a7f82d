package contract

import (
	"context"

	"github.com/checkinhq/checkin-bot/internal/domain/entity"
)

// DataManager aggregates all repository interfaces
type DataManager interface {
	WithTransaction(ctx context.Context, fn func(dm DataManager) error) error
	Settings() SettingsRepo
}

// SettingsRepo defines the persistence contract for guild and channel
// settings plus the two leaderboard tables. Load methods return (nil, nil)
// when no row exists; callers treat that as "use defaults".
type SettingsRepo interface {
	// LoadGuild reads the guild-wide settings row (reserved sentinel channel).
	LoadGuild(guildID string) (*entity.GuildSettings, error)

	// LoadChannel reads one channel's settings merged with its leaderboard rows.
	LoadChannel(guildID, channelID string) (*entity.ChannelSettings, error)

	// SaveGuild upserts the guild-wide settings row.
	SaveGuild(guildID string, settings *entity.GuildSettings) error

	// SaveChannel upserts the channel settings row and fully replaces the
	// channel's leaderboard rows (delete then insert, not an incremental
	// diff). Call it inside WithTransaction so the replacement is atomic.
	SaveChannel(guildID, channelID string, settings *entity.ChannelSettings) error

	// LoadAll reads every guild and channel record for the startup preload.
	LoadAll() (map[string]*entity.GuildRecord, error)
}
