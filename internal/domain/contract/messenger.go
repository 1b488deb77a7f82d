package contract

import "github.com/checkinhq/checkin-bot/internal/domain/entity"

// Messenger defines the chat-platform operations the domain layer needs.
// This allows mocking in tests while keeping the real implementation simple.
type Messenger interface {
	// SendText posts a plain text message to a channel.
	SendText(channelID, text string) error

	// SendSummary renders and posts a daily reset summary, chunking oversized
	// sections under the platform's size limits.
	SendSummary(channelID string, summary *entity.ResetSummary) error

	// DisplayName resolves a user ID to the platform display name.
	DisplayName(userID string) (string, error)

	// GuildMembers enumerates the known members of a guild.
	GuildMembers(guildID string) ([]entity.Member, error)

	// GuildOwnerID returns the guild owner's user ID.
	GuildOwnerID(guildID string) (string, error)

	// BotInviterID returns the user who added the bot to the guild, read from
	// the audit log. Returns empty without error when the log is inaccessible.
	BotInviterID(guildID string) (string, error)
}
