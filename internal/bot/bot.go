package bot

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog"

	"github.com/checkinhq/checkin-bot/internal/domain/contract"
)

// Bot owns the Discord session and routes prefixed text commands to the
// check-in service.
type Bot struct {
	session *discordgo.Session
	svc     contract.CheckinService
	prefix  string
	log     zerolog.Logger
}

func New(token, prefix string, log zerolog.Logger) (*Bot, error) {
	session, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("failed to create discord session: %w", err)
	}

	session.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMessages |
		discordgo.IntentsGuildMembers |
		discordgo.IntentsMessageContent

	b := &Bot{
		session: session,
		prefix:  prefix,
		log:     log.With().Str("component", "bot").Logger(),
	}
	session.AddHandler(b.messageCreate)
	session.AddHandler(b.guildCreate)

	return b, nil
}

// Messenger exposes the session as the platform interface the domain layer
// consumes.
func (b *Bot) Messenger() contract.Messenger {
	return &discordMessenger{session: b.session, log: b.log}
}

// SetService attaches the command service. Set after construction because the
// service itself needs the Messenger.
func (b *Bot) SetService(svc contract.CheckinService) {
	b.svc = svc
}

func (b *Bot) Start() error {
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("failed to open discord connection: %w", err)
	}
	b.log.Info().Msg("bot connected")
	return nil
}

func (b *Bot) Stop() error {
	return b.session.Close()
}

func (b *Bot) guildCreate(_ *discordgo.Session, g *discordgo.GuildCreate) {
	if b.svc == nil {
		return
	}
	b.log.Info().Str("guild_id", g.ID).Str("guild_name", g.Name).Msg("joined guild")
	if err := b.svc.BootstrapAdmins(g.ID); err != nil {
		b.log.Error().Err(err).Str("guild_id", g.ID).Msg("failed to bootstrap guild admins")
	}
}

func (b *Bot) messageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	if b.svc == nil || m.Author == nil || m.Author.Bot {
		return
	}
	if s.State.User != nil && m.Author.ID == s.State.User.ID {
		return
	}
	if m.GuildID == "" {
		// Check-ins are tracked per guild channel; private messages are out.
		return
	}

	cmd, err := ParseCommand(m.Content, b.prefix)
	if cmd == nil && err == nil {
		return
	}
	if err != nil {
		b.reply(m.ChannelID, fmt.Sprintf("<@%s>, %s", m.Author.ID, err.Error()))
		return
	}

	b.dispatch(cmd, m)
}

func (b *Bot) reply(channelID, text string) {
	if err := b.Messenger().SendText(channelID, text); err != nil {
		b.log.Error().Err(err).Str("channel_id", channelID).Msg("failed to send reply")
	}
}
