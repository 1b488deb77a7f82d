package service

import (
	"context"
	"fmt"
	"time"

	"github.com/checkinhq/checkin-bot/internal/cache"
	"github.com/checkinhq/checkin-bot/internal/domain"
	"github.com/checkinhq/checkin-bot/internal/domain/contract"
	"github.com/checkinhq/checkin-bot/internal/domain/entity"
	"github.com/rs/zerolog"
)

// resetScheduler polls every cached channel once per second and fires the
// daily reset transaction for channels whose scheduled time has been reached.
type resetScheduler struct {
	cache     *cache.Cache
	dm        contract.DataManager
	messenger contract.Messenger
	log       zerolog.Logger
	interval  time.Duration
	now       func() time.Time
	stopChan  chan struct{}
	running   bool
}

func newResetScheduler(c *cache.Cache, dm contract.DataManager, messenger contract.Messenger, log zerolog.Logger) *resetScheduler {
	return &resetScheduler{
		cache:     c,
		dm:        dm,
		messenger: messenger,
		log:       log.With().Str("component", "reset-scheduler").Logger(),
		interval:  time.Second,
		now:       time.Now,
		stopChan:  make(chan struct{}),
	}
}

func (s *resetScheduler) Start() {
	if s.running {
		return
	}
	s.running = true
	s.log.Info().Msg("scheduler starting")
	go s.mainLoop()
}

func (s *resetScheduler) Stop() {
	if !s.running {
		return
	}
	s.log.Info().Msg("scheduler stopping")
	close(s.stopChan)
	s.running = false
}

func (s *resetScheduler) mainLoop() {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.tick(s.now())
		case <-s.stopChan:
			return
		}
	}
}

// tick evaluates every cached channel once. A failure in one guild or
// channel never prevents the rest of the tick from proceeding.
func (s *resetScheduler) tick(now time.Time) {
	for _, guildID := range s.cache.GuildIDs() {
		loc := s.guildLocation(guildID)
		nowLocal := now.In(loc)
		for _, channelID := range s.cache.ChannelIDs(guildID) {
			s.tickChannel(guildID, channelID, nowLocal)
		}
	}
}

// guildLocation resolves the guild timezone, correcting an invalid stored
// zone to the default and persisting the fix (self-healing, not fatal).
func (s *resetScheduler) guildLocation(guildID string) *time.Location {
	var loc *time.Location
	err := s.cache.WithGuild(guildID, func(gs *entity.GuildSettings) error {
		var valid bool
		loc, valid = gs.Location()
		if !valid {
			s.log.Warn().Str("guild_id", guildID).Str("timezone", gs.Timezone).
				Msg("invalid guild timezone, resetting to default")
			gs.Timezone = domain.DefaultTimezone
			if err := s.dm.Settings().SaveGuild(guildID, gs); err != nil {
				s.log.Error().Err(err).Str("guild_id", guildID).Msg("failed to persist corrected timezone")
			}
		}
		return nil
	})
	if err != nil || loc == nil {
		loc, _ = time.LoadLocation(domain.DefaultTimezone)
	}
	return loc
}

func (s *resetScheduler) tickChannel(guildID, channelID string, nowLocal time.Time) {
	var summary *entity.ResetSummary
	err := s.cache.WithChannel(guildID, channelID, func(_ *entity.GuildSettings, cs *entity.ChannelSettings) error {
		if cs.ResetTime == "" {
			return nil
		}
		due, err := resetDue(cs, nowLocal)
		if err != nil {
			// Malformed reset time skips the channel, it never stops the
			// scheduler.
			s.log.Error().Err(err).Str("guild_id", guildID).Str("channel_id", channelID).
				Str("reset_time", cs.ResetTime).Msg("invalid reset time, skipping channel")
			return nil
		}
		if !due {
			return nil
		}
		summary = s.runReset(guildID, channelID, cs, nowLocal)
		return nil
	})
	if err != nil {
		s.log.Error().Err(err).Str("guild_id", guildID).Str("channel_id", channelID).Msg("tick failed")
		return
	}

	// The reset is complete once persisted; a failed send is logged only.
	if summary != nil {
		if err := s.messenger.SendSummary(channelID, summary); err != nil {
			s.log.Error().Err(err).Str("guild_id", guildID).Str("channel_id", channelID).
				Msg("failed to send reset summary")
		}
	}
}

// resetDue reports whether a reset should fire now. A channel is due when the
// guild-local clock has reached today's scheduled instant and the last reset
// happened before it. This window guard cannot double-fire within a day and
// still fires when the exact matching second was skipped by a busy tick.
func resetDue(cs *entity.ChannelSettings, nowLocal time.Time) (bool, error) {
	hour, minute, second, err := entity.ParseResetTime(cs.ResetTime)
	if err != nil {
		return false, err
	}

	scheduled := time.Date(nowLocal.Year(), nowLocal.Month(), nowLocal.Day(),
		hour, minute, second, 0, nowLocal.Location())
	if nowLocal.Before(scheduled) {
		return false, nil
	}
	if !cs.LastReset.IsZero() && !cs.LastReset.In(nowLocal.Location()).Before(scheduled) {
		return false, nil
	}
	return true, nil
}

// runReset performs the daily reset transaction for one channel. The caller
// holds the channel's guild lock, so no other mutation can interleave.
func (s *resetScheduler) runReset(guildID, channelID string, cs *entity.ChannelSettings, nowLocal time.Time) *entity.ResetSummary {
	dateLabel := nowLocal.Format("2006-01-02")
	s.log.Info().Str("guild_id", guildID).Str("channel_id", channelID).Str("date", dateLabel).
		Msg("running daily reset")

	cs.LastReset = nowLocal

	checked := make([]string, 0, len(cs.DailyChecked))
	for _, userID := range cs.DailyChecked {
		checked = append(checked, s.resolveName(cs, userID))
	}

	var unchecked []string
	members, err := s.messenger.GuildMembers(guildID)
	if err != nil {
		s.log.Warn().Err(err).Str("guild_id", guildID).Msg("failed to list members for reset")
	}
	for _, member := range members {
		if member.IsBot || cs.Banned.Has(member.ID) || contains(cs.DailyChecked, member.ID) {
			continue
		}
		unchecked = append(unchecked, cs.DisplayName(member.ID, member.DisplayName))
		cs.MissedCounts[member.ID]++
	}

	cs.DailyChecked = []string{}

	// Admin adjustments can leave zero entries behind; prune them.
	for userID, count := range cs.CheckinCounts {
		if count <= 0 {
			delete(cs.CheckinCounts, userID)
		}
	}

	s.persist(guildID, channelID, cs)

	resolve := func(userID string) string { return s.resolveName(cs, userID) }
	return &entity.ResetSummary{
		GuildID:      guildID,
		ChannelID:    channelID,
		Date:         dateLabel,
		Checked:      checked,
		Unchecked:    unchecked,
		CheckinBoard: entity.BuildBoard(cs.CheckinCounts, resolve),
		MissedBoard:  entity.BuildBoard(cs.MissedCounts, resolve),
	}
}

func (s *resetScheduler) persist(guildID, channelID string, cs *entity.ChannelSettings) {
	err := s.dm.WithTransaction(context.Background(), func(dm contract.DataManager) error {
		return dm.Settings().SaveChannel(guildID, channelID, cs)
	})
	if err != nil {
		// The cached record is now ahead of the store; the next successful
		// save catches it up.
		s.log.Error().Err(err).Str("guild_id", guildID).Str("channel_id", channelID).
			Msg("failed to persist reset")
	}
}

func (s *resetScheduler) resolveName(cs *entity.ChannelSettings, userID string) string {
	if name, ok := cs.NameMap[userID]; ok {
		return name
	}
	name, err := s.messenger.DisplayName(userID)
	if err != nil || name == "" {
		return fmt.Sprintf("Unknown User (%s)", userID)
	}
	return name
}

func contains(ids []string, id string) bool {
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}
	return false
}
