package bot

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/checkinhq/checkin-bot/internal/domain"
	"github.com/checkinhq/checkin-bot/internal/domain/entity"
)

func (b *Bot) dispatch(cmd *Command, m *discordgo.MessageCreate) {
	adminOnly := map[CommandType]bool{
		CmdNames: true, CmdAdjust: true, CmdSetReset: true, CmdToggleMedia: true,
		CmdBans: true, CmdAdmins: true, CmdTimezone: true, CmdWordMin: true, CmdBoardReset: true,
	}
	if adminOnly[cmd.Type] {
		ok, err := b.svc.IsAdmin(m.GuildID, m.Author.ID)
		if err != nil {
			b.log.Error().Err(err).Str("guild_id", m.GuildID).Msg("admin check failed")
			b.reply(m.ChannelID, "Something went wrong, please try again.")
			return
		}
		if !ok {
			b.reply(m.ChannelID, fmt.Sprintf("<@%s>, %s.", m.Author.ID, domain.ErrNotAdmin.Error()))
			return
		}
	}

	switch cmd.Type {
	case CmdManual:
		b.reply(m.ChannelID, GetHelpText(b.prefix))
	case CmdCheckIn:
		b.handleCheckIn(cmd, m)
	case CmdToday:
		b.handleToday(m)
	case CmdCheckinBoard:
		b.handleBoard(m, "wl")
	case CmdMissedBoard:
		b.handleBoard(m, "ll")
	case CmdResetInfo:
		b.handleResetInfo(m)
	case CmdNames:
		b.handleNames(cmd, m)
	case CmdAdjust:
		b.handleAdjust(cmd, m)
	case CmdSetReset:
		b.handleSetReset(cmd, m)
	case CmdToggleMedia:
		b.handleToggleMedia(m)
	case CmdBans:
		b.handleBans(cmd, m)
	case CmdAdmins:
		b.handleAdmins(cmd, m)
	case CmdTimezone:
		b.handleTimezone(cmd, m)
	case CmdWordMin:
		b.handleWordMin(cmd, m)
	case CmdBoardReset:
		b.handleBoardReset(cmd, m)
	}
}

func (b *Bot) handleCheckIn(cmd *Command, m *discordgo.MessageCreate) {
	wordCount := len(strings.Fields(cmd.Raw))
	hasMedia := len(m.Attachments) > 0 || containsLink(m.Content)

	if err := b.svc.CheckIn(m.GuildID, m.ChannelID, m.Author.ID, wordCount, hasMedia); err != nil {
		b.reply(m.ChannelID, fmt.Sprintf("<@%s>, %s.", m.Author.ID, err.Error()))
		return
	}
	b.reply(m.ChannelID, fmt.Sprintf("<@%s>, you've successfully checked in today in this channel!", m.Author.ID))
}

func (b *Bot) handleToday(m *discordgo.MessageCreate) {
	checked, unchecked, err := b.svc.TodayStatus(m.GuildID, m.ChannelID)
	if err != nil {
		b.reply(m.ChannelID, fmt.Sprintf("<@%s>, %s.", m.Author.ID, err.Error()))
		return
	}

	checkedList := "No users checked in today in this channel."
	if len(checked) > 0 {
		checkedList = strings.Join(checked, "\n")
	}
	uncheckedList := "Everyone checked in today in this channel!"
	if len(unchecked) > 0 {
		uncheckedList = strings.Join(unchecked, "\n")
	}

	b.reply(m.ChannelID, fmt.Sprintf(
		"**Users who checked in today in <#%s>:**\n%s\n\n**Users who have yet to check-in today in <#%s>:**\n%s",
		m.ChannelID, checkedList, m.ChannelID, uncheckedList))
}

func (b *Bot) handleBoard(m *discordgo.MessageCreate, board string) {
	var (
		entries []entity.BoardEntry
		err     error
		title   string
		unit    string
		empty   string
	)
	if board == "wl" {
		entries, err = b.svc.CheckinBoard(m.GuildID, m.ChannelID)
		title = "Check-in Leaderboard"
		unit = "check-in(s)"
		empty = "No check-ins recorded yet in this channel!"
	} else {
		entries, err = b.svc.MissedBoard(m.GuildID, m.ChannelID)
		title = "Missed Check-ins Leaderboard"
		unit = "missed check-in(s)"
		empty = "No missed check-ins recorded yet in this channel!"
	}
	if err != nil {
		b.reply(m.ChannelID, fmt.Sprintf("<@%s>, %s.", m.Author.ID, err.Error()))
		return
	}

	body := empty
	if len(entries) > 0 {
		body = strings.Join(formatBoard(entries, unit), "\n")
	}
	b.reply(m.ChannelID, fmt.Sprintf("**%s for <#%s>:**\n%s", title, m.ChannelID, body))
}

func (b *Bot) handleResetInfo(m *discordgo.MessageCreate) {
	resetTime, timezone, err := b.svc.ResetInfo(m.GuildID, m.ChannelID)
	if err != nil {
		b.reply(m.ChannelID, fmt.Sprintf("<@%s>, %s.", m.Author.ID, err.Error()))
		return
	}
	if resetTime == "" {
		b.reply(m.ChannelID, fmt.Sprintf("No reset time configured for this channel. The guild timezone is **%s**.", timezone))
		return
	}
	formatted, err := entity.FormatResetTime(resetTime)
	if err != nil {
		b.reply(m.ChannelID, fmt.Sprintf(
			"Error: Invalid reset time format stored for this channel (%s). Please set it again using `%sr`.",
			resetTime, b.prefix))
		return
	}
	b.reply(m.ChannelID, fmt.Sprintf("The reset time for this channel is **%s** (%s).", formatted, timezone))
}

func (b *Bot) handleNames(cmd *Command, m *discordgo.MessageCreate) {
	var (
		mapping map[string]string
		err     error
	)
	if strings.TrimSpace(cmd.Raw) == "" {
		mapping, err = b.svc.RefreshNames(m.GuildID, m.ChannelID)
	} else {
		pairs := map[string]string{}
		for _, pair := range strings.Split(cmd.Raw, ",") {
			pair = strings.TrimSpace(pair)
			parts := strings.SplitN(pair, ":", 2)
			if len(parts) != 2 {
				b.reply(m.ChannelID, fmt.Sprintf("Invalid format for '%s'. Use 'UserID:RealName' or '@Mention:RealName' format.", pair))
				return
			}
			userID, ok := parseUserRef(strings.TrimSpace(parts[0]))
			realName := strings.TrimSpace(parts[1])
			if !ok || realName == "" {
				b.reply(m.ChannelID, fmt.Sprintf("Invalid format for '%s'. Use 'UserID:RealName' or '@Mention:RealName' format.", pair))
				return
			}
			pairs[userID] = realName
		}
		mapping, err = b.svc.MapNames(m.GuildID, m.ChannelID, pairs)
	}
	if err != nil {
		b.reply(m.ChannelID, fmt.Sprintf("<@%s>, %s.", m.Author.ID, err.Error()))
		return
	}

	lines := make([]string, 0, len(mapping))
	for _, userID := range sortedMapKeys(mapping) {
		lines = append(lines, fmt.Sprintf("<@%s> -> %s", userID, mapping[userID]))
	}
	b.reply(m.ChannelID, fmt.Sprintf("User IDs mapped to real names in <#%s>:\n%s", m.ChannelID, strings.Join(lines, "\n")))
}

func (b *Bot) handleAdjust(cmd *Command, m *discordgo.MessageCreate) {
	if len(cmd.Args) < 2 {
		b.reply(m.ChannelID, fmt.Sprintf("Usage: `%sa @User [count]` (negative count removes check-ins).", b.prefix))
		return
	}
	userID, ok := parseUserRef(cmd.Args[0])
	if !ok {
		b.reply(m.ChannelID, fmt.Sprintf("User '%s' not found in the server. Please use a mention or user ID.", cmd.Args[0]))
		return
	}
	delta, err := strconv.ParseInt(cmd.Args[1], 10, 64)
	if err != nil {
		b.reply(m.ChannelID, fmt.Sprintf("<@%s>, please enter a valid number.", m.Author.ID))
		return
	}

	if _, err := b.svc.AdjustCheckins(m.GuildID, m.ChannelID, userID, delta); err != nil {
		b.reply(m.ChannelID, fmt.Sprintf("<@%s>, %s.", m.Author.ID, err.Error()))
		return
	}

	name, err := b.Messenger().DisplayName(userID)
	if err != nil {
		name = fmt.Sprintf("Unknown User (%s)", userID)
	}
	action := "added to"
	if delta < 0 {
		action = "removed from"
		delta = -delta
	}
	b.reply(m.ChannelID, fmt.Sprintf("**%d** check-in(s) have been %s **%s** in <#%s>.", delta, action, name, m.ChannelID))
}

func (b *Bot) handleSetReset(cmd *Command, m *discordgo.MessageCreate) {
	if len(cmd.Args) == 0 {
		b.reply(m.ChannelID, fmt.Sprintf("<@%s>, please enter a 6-digit number (e.g., 235959 for 11:59:59 PM).", m.Author.ID))
		return
	}
	resetTime := cmd.Args[0]
	if err := b.svc.SetResetTime(m.GuildID, m.ChannelID, resetTime); err != nil {
		b.reply(m.ChannelID, fmt.Sprintf("<@%s>, %s.", m.Author.ID, err.Error()))
		return
	}
	hour, minute, second, _ := entity.ParseResetTime(resetTime)
	b.reply(m.ChannelID, fmt.Sprintf("Reset time for this channel set to **%02d:%02d:%02d**.", hour, minute, second))
}

func (b *Bot) handleToggleMedia(m *discordgo.MessageCreate) {
	required, err := b.svc.ToggleRequireMedia(m.GuildID, m.ChannelID)
	if err != nil {
		b.reply(m.ChannelID, fmt.Sprintf("<@%s>, %s.", m.Author.ID, err.Error()))
		return
	}
	status := "now"
	if !required {
		status = "no longer"
	}
	b.reply(m.ChannelID, fmt.Sprintf("Check-ins in this channel **%s** require evidence (an image or file).", status))
}

func (b *Bot) handleBans(cmd *Command, m *discordgo.MessageCreate) {
	if len(cmd.Args) == 0 {
		b.reply(m.ChannelID, fmt.Sprintf(
			"Usage: `%sd @User1 @User2 ...` to ban users, `%sd -u @User1 @User2 ...` to unban, or `%sd -list` to view banned users for <#%s>.",
			b.prefix, b.prefix, b.prefix, m.ChannelID))
		return
	}

	switch strings.ToLower(cmd.Args[0]) {
	case "-list":
		banned, err := b.svc.BannedUsers(m.GuildID, m.ChannelID)
		if err != nil {
			b.reply(m.ChannelID, fmt.Sprintf("<@%s>, %s.", m.Author.ID, err.Error()))
			return
		}
		if len(banned) == 0 {
			b.reply(m.ChannelID, "No users are currently banned from checking in this channel.")
			return
		}
		mentions := make([]string, 0, len(banned))
		for _, id := range banned {
			mentions = append(mentions, "<@"+id+">")
		}
		b.reply(m.ChannelID, fmt.Sprintf("**Banned users for <#%s>**:\n%s", m.ChannelID, strings.Join(mentions, "\n")))

	case "-u":
		userIDs, ok := parseUserRefs(cmd.Args[1:])
		if !ok || len(userIDs) == 0 {
			b.reply(m.ChannelID, "No users specified. Please use mentions or user IDs.")
			return
		}
		unbanned, err := b.svc.UnbanUsers(m.GuildID, m.ChannelID, userIDs)
		if err != nil {
			b.reply(m.ChannelID, fmt.Sprintf("<@%s>, %s.", m.Author.ID, err.Error()))
			return
		}
		if len(unbanned) == 0 {
			b.reply(m.ChannelID, "No matching users were banned in this channel.")
			return
		}
		mentions := make([]string, 0, len(unbanned))
		for _, id := range unbanned {
			mentions = append(mentions, "<@"+id+">")
		}
		b.reply(m.ChannelID, fmt.Sprintf("**Unbanned users for <#%s>**:\n%s", m.ChannelID, strings.Join(mentions, ", ")))

	default:
		userIDs, ok := parseUserRefs(cmd.Args)
		if !ok || len(userIDs) == 0 {
			b.reply(m.ChannelID, "No valid users specified to ban in this channel.")
			return
		}
		if err := b.svc.BanUsers(m.GuildID, m.ChannelID, userIDs); err != nil {
			b.reply(m.ChannelID, fmt.Sprintf("<@%s>, %s.", m.Author.ID, err.Error()))
			return
		}
		mentions := make([]string, 0, len(userIDs))
		for _, id := range userIDs {
			mentions = append(mentions, "<@"+id+">")
		}
		b.reply(m.ChannelID, fmt.Sprintf("**Banned users for <#%s>**:\n%s", m.ChannelID, strings.Join(mentions, ", ")))
	}
}

func (b *Bot) handleAdmins(cmd *Command, m *discordgo.MessageCreate) {
	usage := fmt.Sprintf("Usage: `%sg add @User`, `%sg remove @User`, or `%sg list`.", b.prefix, b.prefix, b.prefix)
	if len(cmd.Args) == 0 {
		b.reply(m.ChannelID, "Please specify an action. "+usage)
		return
	}

	switch strings.ToLower(cmd.Args[0]) {
	case "list":
		admins, err := b.svc.Admins(m.GuildID)
		if err != nil {
			b.reply(m.ChannelID, fmt.Sprintf("<@%s>, %s.", m.Author.ID, err.Error()))
			return
		}
		mentions := make([]string, 0, len(admins))
		for _, id := range admins {
			mentions = append(mentions, "<@"+id+">")
		}
		b.reply(m.ChannelID, "**Server Admins:**\n"+strings.Join(mentions, "\n"))

	case "add", "remove":
		if len(cmd.Args) < 2 {
			b.reply(m.ChannelID, usage)
			return
		}
		userID, ok := parseUserRef(cmd.Args[1])
		if !ok {
			b.reply(m.ChannelID, fmt.Sprintf("User '%s' not found in the server. Please use a mention or user ID.", cmd.Args[1]))
			return
		}
		if strings.ToLower(cmd.Args[0]) == "add" {
			if err := b.svc.AddAdmin(m.GuildID, userID); err != nil {
				b.reply(m.ChannelID, fmt.Sprintf("<@%s>, %s.", userID, err.Error()))
				return
			}
			b.reply(m.ChannelID, fmt.Sprintf("<@%s> has been added as a server admin.", userID))
			return
		}
		if err := b.svc.RemoveAdmin(m.GuildID, userID); err != nil {
			b.reply(m.ChannelID, fmt.Sprintf("<@%s>, %s.", userID, err.Error()))
			return
		}
		b.reply(m.ChannelID, fmt.Sprintf("<@%s> has been removed as a server admin.", userID))

	default:
		b.reply(m.ChannelID, "Invalid command. "+usage)
	}
}

func (b *Bot) handleTimezone(cmd *Command, m *discordgo.MessageCreate) {
	if len(cmd.Args) == 0 {
		b.reply(m.ChannelID, fmt.Sprintf("Usage: `%stz list` to view all timezones or `%stz [timezone]` to set one.", b.prefix, b.prefix))
		return
	}
	if strings.ToLower(cmd.Args[0]) == "list" {
		b.reply(m.ChannelID, "Timezones follow IANA tz database names, e.g. `America/Los_Angeles`, `Europe/London`, `Asia/Tokyo`. "+
			"See <https://en.wikipedia.org/wiki/List_of_tz_database_time_zones> for the full list.")
		return
	}

	zone := strings.Join(cmd.Args, " ")
	if err := b.svc.SetTimezone(m.GuildID, zone); err != nil {
		b.reply(m.ChannelID, fmt.Sprintf("Invalid timezone. Use `%stz list` to see valid timezones.", b.prefix))
		return
	}
	b.reply(m.ChannelID, fmt.Sprintf("Guild timezone set to **%s**.", zone))
}

func (b *Bot) handleWordMin(cmd *Command, m *discordgo.MessageCreate) {
	if len(cmd.Args) == 0 {
		b.reply(m.ChannelID, fmt.Sprintf("<@%s>, please enter a valid number.", m.Author.ID))
		return
	}
	minimum, err := strconv.Atoi(cmd.Args[0])
	if err != nil {
		b.reply(m.ChannelID, fmt.Sprintf("<@%s>, please enter a valid number.", m.Author.ID))
		return
	}
	if err := b.svc.SetWordMinimum(m.GuildID, m.ChannelID, minimum); err != nil {
		b.reply(m.ChannelID, fmt.Sprintf("<@%s>, %s.", m.Author.ID, err.Error()))
		return
	}
	b.reply(m.ChannelID, fmt.Sprintf("Word minimum set to **%d** words for <#%s>.", minimum, m.ChannelID))
}

func (b *Bot) handleBoardReset(cmd *Command, m *discordgo.MessageCreate) {
	if len(cmd.Args) == 0 {
		b.reply(m.ChannelID, "Please select a leaderboard to reset (either 'wl' or 'll').")
		return
	}
	board := strings.ToLower(cmd.Args[0])
	if err := b.svc.ResetBoard(m.GuildID, m.ChannelID, board); err != nil {
		b.reply(m.ChannelID, "Invalid leaderboard specified. Use 'wl' to reset the check-in leaderboard or 'll' to reset the missed check-in leaderboard.")
		return
	}
	if board == "wl" {
		b.reply(m.ChannelID, "Check-in leaderboard for this channel has been reset.")
		return
	}
	b.reply(m.ChannelID, "Missed check-in leaderboard for this channel has been reset.")
}

// parseUserRef extracts a user ID from a raw mention (<@id> or <@!id>) or a
// bare numeric ID.
func parseUserRef(s string) (string, bool) {
	if strings.HasPrefix(s, "<@") && strings.HasSuffix(s, ">") {
		s = strings.TrimSuffix(strings.TrimPrefix(s, "<@"), ">")
		s = strings.TrimPrefix(s, "!")
	}
	if s == "" {
		return "", false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return "", false
		}
	}
	return s, true
}

func parseUserRefs(args []string) ([]string, bool) {
	seen := map[string]bool{}
	ids := make([]string, 0, len(args))
	for _, arg := range args {
		id, ok := parseUserRef(arg)
		if !ok {
			return nil, false
		}
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	return ids, true
}

func containsLink(content string) bool {
	return strings.Contains(content, "http://") || strings.Contains(content, "https://")
}

func sortedMapKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
