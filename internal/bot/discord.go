package bot

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog"

	"github.com/checkinhq/checkin-bot/internal/domain"
	"github.com/checkinhq/checkin-bot/internal/domain/entity"
	"github.com/checkinhq/checkin-bot/pkg/chunk"
)

// discordMessenger implements contract.Messenger over a discordgo session.
type discordMessenger struct {
	session *discordgo.Session
	log     zerolog.Logger
}

func (d *discordMessenger) SendText(channelID, text string) error {
	for _, part := range chunk.Lines(strings.Split(text, "\n"), domain.MessageLimit) {
		if _, err := d.session.ChannelMessageSend(channelID, part); err != nil {
			return fmt.Errorf("failed to send message: %w", err)
		}
	}
	return nil
}

func (d *discordMessenger) SendSummary(channelID string, summary *entity.ResetSummary) error {
	embed := &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("Daily Check-in Summary — %s", summary.Date),
		Description: fmt.Sprintf("Here is the breakdown of today's check-ins for this channel (<#%s>):", summary.ChannelID),
		Color:       0x3498db,
	}

	var overflow []string
	addSection := func(name string, lines []string, empty string) {
		if len(lines) == 0 {
			lines = []string{empty}
		}
		parts := chunk.Lines(lines, domain.EmbedFieldLimit)
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  name,
			Value: parts[0],
		})
		// Later chunks continue the ordered list in follow-up messages.
		for _, part := range parts[1:] {
			overflow = append(overflow, fmt.Sprintf("**%s (continued)**\n%s", name, part))
		}
	}

	addSection("Checked-in Users", summary.Checked, "No users checked in today.")
	addSection("Users Who Didn't Check-in", summary.Unchecked, "Everyone checked in today!")
	addSection("Check-in Leaderboard", formatBoard(summary.CheckinBoard, "check-in(s)"), "No valid check-ins recorded.")
	addSection("Missed Check-ins Leaderboard", formatBoard(summary.MissedBoard, "missed check-in(s)"), "No missed check-ins.")
	embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
		Name:  "Reset Notice",
		Value: "Daily check-in data has been reset for this channel.",
	})

	if _, err := d.session.ChannelMessageSendEmbed(channelID, embed); err != nil {
		return fmt.Errorf("failed to send summary embed: %w", err)
	}
	for _, text := range overflow {
		if err := d.SendText(channelID, text); err != nil {
			return err
		}
	}
	return nil
}

func (d *discordMessenger) DisplayName(userID string) (string, error) {
	user, err := d.session.User(userID)
	if err != nil {
		return "", fmt.Errorf("failed to fetch user %s: %w", userID, err)
	}
	if user.GlobalName != "" {
		return user.GlobalName, nil
	}
	return user.Username, nil
}

func (d *discordMessenger) GuildMembers(guildID string) ([]entity.Member, error) {
	// The state cache is populated when the members intent is granted; fall
	// back to REST paging otherwise.
	if guild, err := d.session.State.Guild(guildID); err == nil && len(guild.Members) > 0 {
		members := make([]entity.Member, 0, len(guild.Members))
		for _, m := range guild.Members {
			members = append(members, convertMember(m))
		}
		return members, nil
	}

	var members []entity.Member
	after := ""
	for {
		page, err := d.session.GuildMembers(guildID, after, 1000)
		if err != nil {
			return nil, fmt.Errorf("failed to list members of guild %s: %w", guildID, err)
		}
		if len(page) == 0 {
			break
		}
		for _, m := range page {
			members = append(members, convertMember(m))
		}
		after = page[len(page)-1].User.ID
		if len(page) < 1000 {
			break
		}
	}
	return members, nil
}

func (d *discordMessenger) GuildOwnerID(guildID string) (string, error) {
	if guild, err := d.session.State.Guild(guildID); err == nil && guild.OwnerID != "" {
		return guild.OwnerID, nil
	}
	guild, err := d.session.Guild(guildID)
	if err != nil {
		return "", fmt.Errorf("failed to fetch guild %s: %w", guildID, err)
	}
	return guild.OwnerID, nil
}

func (d *discordMessenger) BotInviterID(guildID string) (string, error) {
	me := d.session.State.User
	if me == nil {
		return "", nil
	}

	auditLog, err := d.session.GuildAuditLog(guildID, "", "", int(discordgo.AuditLogActionBotAdd), 10)
	if err != nil {
		// Reading the audit log is permission-gated and best-effort.
		d.log.Warn().Err(err).Str("guild_id", guildID).Msg("cannot read audit log")
		return "", nil
	}
	for _, e := range auditLog.AuditLogEntries {
		if e.TargetID == me.ID {
			return e.UserID, nil
		}
	}
	return "", nil
}

func convertMember(m *discordgo.Member) entity.Member {
	name := m.Nick
	if name == "" && m.User != nil {
		name = m.User.GlobalName
		if name == "" {
			name = m.User.Username
		}
	}
	var id string
	var isBot bool
	if m.User != nil {
		id = m.User.ID
		isBot = m.User.Bot
	}
	return entity.Member{ID: id, DisplayName: name, IsBot: isBot}
}

func formatBoard(board []entity.BoardEntry, unit string) []string {
	lines := make([]string, 0, len(board))
	for i, e := range board {
		lines = append(lines, fmt.Sprintf("%d. **%s**: %d %s", i+1, e.Name, e.Count, unit))
	}
	return lines
}
