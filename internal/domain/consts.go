package domain

import "errors"

// GuildSettingsChannelID is the reserved channel key under which guild-wide
// settings are persisted. Real Discord channel IDs are snowflakes and can
// never collide with it.
const GuildSettingsChannelID = "0"

// DefaultTimezone is used whenever a guild has no timezone configured or the
// stored zone name no longer resolves.
const DefaultTimezone = "America/Los_Angeles"

// DefaultWordMinimum is the minimum word count applied to check-ins of
// channels that never configured one.
const DefaultWordMinimum = 1

// EmbedFieldLimit is Discord's maximum length for a single embed field value.
// Longer leaderboard texts are split into continuation fields.
const EmbedFieldLimit = 1024

// MessageLimit is Discord's maximum length for a plain text message.
const MessageLimit = 2000

// Validation errors reported back to the invoking user. State is never
// mutated when one of these is returned.
var (
	ErrBanned           = errors.New("you are banned from checking in")
	ErrAlreadyChecked   = errors.New("you've already checked in today in this channel")
	ErrMediaRequired    = errors.New("you must attach an image/file or include a link in your check-in")
	ErrInvalidResetTime = errors.New("reset time must be a 6-digit HHMMSS value, e.g. 235959")
	ErrInvalidTimezone  = errors.New("unknown timezone, use the timezone list to see valid names")
	ErrUnknownBoard     = errors.New("unknown leaderboard, use 'wl' or 'll'")
	ErrNotAdmin         = errors.New("this command is only accessible to server admins")
	ErrOwnerIsAdmin     = errors.New("the guild owner cannot be removed from admin status")
)
