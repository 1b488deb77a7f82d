package contract

import "github.com/checkinhq/checkin-bot/internal/domain/entity"

// CheckinService is the command surface consumed by the chat layer. Methods
// returning an error from the validation taxonomy leave all state unchanged;
// the error text is suitable for display to the invoking user.
type CheckinService interface {
	// CheckIn records a daily check-in. wordCount is the word count of the
	// check-in text; hasMedia reports whether the message carried an
	// attachment or a link.
	CheckIn(guildID, channelID, userID string, wordCount int, hasMedia bool) error

	// TodayStatus lists resolved names of members who checked in since the
	// last reset and of eligible members who did not.
	TodayStatus(guildID, channelID string) (checked, unchecked []string, err error)

	CheckinBoard(guildID, channelID string) ([]entity.BoardEntry, error)
	MissedBoard(guildID, channelID string) ([]entity.BoardEntry, error)
	ResetBoard(guildID, channelID, board string) error

	// ResetInfo returns the channel's HHMMSS reset time (empty when unset)
	// and the guild timezone.
	ResetInfo(guildID, channelID string) (resetTime, timezone string, err error)
	SetResetTime(guildID, channelID, resetTime string) error
	SetTimezone(guildID, zone string) error

	SetWordMinimum(guildID, channelID string, minimum int) error
	ToggleRequireMedia(guildID, channelID string) (required bool, err error)

	// AdjustCheckins shifts a user's cumulative check-in count by delta,
	// flooring at zero; zero entries are pruned. Returns the new count.
	AdjustCheckins(guildID, channelID, userID string, delta int64) (int64, error)

	// BanUsers bans the users and purges them from both leaderboards in a
	// single persisted write.
	BanUsers(guildID, channelID string, userIDs []string) error
	// UnbanUsers lifts bans and returns the IDs that were actually banned.
	UnbanUsers(guildID, channelID string, userIDs []string) ([]string, error)
	BannedUsers(guildID, channelID string) ([]string, error)

	// MapNames sets display-name overrides; RefreshNames rebuilds the map
	// from the guild's current non-bot, non-banned members.
	MapNames(guildID, channelID string, pairs map[string]string) (map[string]string, error)
	RefreshNames(guildID, channelID string) (map[string]string, error)

	IsAdmin(guildID, userID string) (bool, error)
	AddAdmin(guildID, userID string) error
	RemoveAdmin(guildID, userID string) error
	Admins(guildID string) ([]string, error)

	// BootstrapAdmins seeds the admin set of a newly joined guild with the
	// bot's inviter when the audit log permits, else the guild owner. A guild
	// that already has admins is left untouched.
	BootstrapAdmins(guildID string) error
}
