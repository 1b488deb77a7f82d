package bot

import (
	"fmt"
	"strings"
)

type CommandType string

const (
	CmdManual       CommandType = "m"
	CmdCheckIn      CommandType = "c"
	CmdToday        CommandType = "t"
	CmdCheckinBoard CommandType = "wl"
	CmdMissedBoard  CommandType = "ll"
	CmdResetInfo    CommandType = "cr"
	CmdNames        CommandType = "n"
	CmdAdjust       CommandType = "a"
	CmdSetReset     CommandType = "r"
	CmdToggleMedia  CommandType = "e"
	CmdBans         CommandType = "d"
	CmdAdmins       CommandType = "g"
	CmdTimezone     CommandType = "tz"
	CmdWordMin      CommandType = "w"
	CmdBoardReset   CommandType = "lr"
)

type Command struct {
	Type CommandType
	Args []string
	// Raw is the untokenized text after the command word, for commands whose
	// argument is free text (check-in bodies, comma-separated name pairs).
	Raw string
}

// ParseCommand parses a message addressed to the bot. It returns (nil, nil)
// when the message does not carry the bot prefix and is not for us.
func ParseCommand(content, prefix string) (*Command, error) {
	if !strings.HasPrefix(strings.ToLower(content), strings.ToLower(prefix)) {
		return nil, nil
	}

	rest := strings.TrimSpace(content[len(prefix):])
	parts := strings.Fields(rest)
	if len(parts) == 0 {
		return nil, fmt.Errorf("missing command, see `%sm` for the manual", prefix)
	}

	word := strings.ToLower(parts[0])
	switch word {
	case "m", "c", "t", "wl", "ll", "cr", "n", "a", "r", "e", "d", "g", "tz", "w", "lr":
		return &Command{
			Type: CommandType(word),
			Args: parts[1:],
			Raw:  strings.TrimSpace(rest[len(parts[0]):]),
		}, nil
	default:
		return nil, fmt.Errorf("unknown command: %s", parts[0])
	}
}

func GetHelpText(prefix string) string {
	p := prefix
	return "**Commands accessible by everyone**:" +
		"\n`" + p + "m` - Manual" +
		"\n`" + p + "c` - Post check-in (channel-specific)" +
		"\n`" + p + "t` - Check who sent a check-in today (channel-specific)" +
		"\n`" + p + "wl` - Leaderboard for checking in (channel-specific)" +
		"\n`" + p + "ll` - Leaderboard for NOT checking in (channel-specific)" +
		"\n`" + p + "cr` - Shows the current reset time for this channel and timezone for this guild" +
		"\n\n**Commands only accessible by server admins**:" +
		"\n`" + p + "n` - Maps users to their real names (channel-specific)" +
		"\n`" + p + "a` - Adds/removes check-ins from a user's count (negative number to remove) (channel-specific)" +
		"\n`" + p + "r` - Sets the reset time for check-ins for this channel (HHMMSS)" +
		"\n`" + p + "e` - Requires evidence for check-ins (channel-specific)" +
		"\n`" + p + "d` - Manages banned users (ban, unban, list) (channel-specific)" +
		"\n`" + p + "g` - Manages server admins (guild-wide)" +
		"\n`" + p + "tz` - Sets the guild timezone (guild-wide)" +
		"\n`" + p + "w` - Sets a minimum number of words required in the check-in (channel-specific)" +
		"\n`" + p + "lr` - Resets a leaderboard, 'wl' or 'll' (channel-specific)"
}
