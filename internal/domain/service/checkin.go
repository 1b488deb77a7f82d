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

type checkinService struct {
	cache     *cache.Cache
	dm        contract.DataManager
	messenger contract.Messenger
	log       zerolog.Logger
}

func newCheckin(c *cache.Cache, dm contract.DataManager, messenger contract.Messenger, log zerolog.Logger) *checkinService {
	return &checkinService{
		cache:     c,
		dm:        dm,
		messenger: messenger,
		log:       log.With().Str("component", "checkin").Logger(),
	}
}

func (s *checkinService) CheckIn(guildID, channelID, userID string, wordCount int, hasMedia bool) error {
	return s.cache.WithChannel(guildID, channelID, func(_ *entity.GuildSettings, cs *entity.ChannelSettings) error {
		if cs.Banned.Has(userID) {
			return domain.ErrBanned
		}
		if cs.HasCheckedToday(userID) {
			return domain.ErrAlreadyChecked
		}
		if cs.RequireMedia && !hasMedia {
			return domain.ErrMediaRequired
		}
		// The word minimum is waived when the media requirement was satisfied
		// by an attachment or link.
		if cs.WordMinimum > 1 && !(cs.RequireMedia && hasMedia) && wordCount < cs.WordMinimum {
			return fmt.Errorf("your check-in must be at least %d words", cs.WordMinimum)
		}

		cs.DailyChecked = append(cs.DailyChecked, userID)
		cs.CheckinCounts[userID]++
		s.persistChannel(guildID, channelID, cs)
		s.log.Info().Str("guild_id", guildID).Str("channel_id", channelID).Str("user_id", userID).
			Msg("check-in recorded")
		return nil
	})
}

func (s *checkinService) TodayStatus(guildID, channelID string) (checked, unchecked []string, err error) {
	err = s.cache.WithChannel(guildID, channelID, func(_ *entity.GuildSettings, cs *entity.ChannelSettings) error {
		for _, userID := range cs.DailyChecked {
			checked = append(checked, s.resolveName(cs, userID))
		}
		for _, member := range s.eligibleMembers(guildID, cs) {
			if !cs.HasCheckedToday(member.ID) {
				unchecked = append(unchecked, cs.DisplayName(member.ID, member.DisplayName))
			}
		}
		return nil
	})
	return checked, unchecked, err
}

func (s *checkinService) CheckinBoard(guildID, channelID string) (board []entity.BoardEntry, err error) {
	err = s.cache.WithChannel(guildID, channelID, func(_ *entity.GuildSettings, cs *entity.ChannelSettings) error {
		board = entity.BuildBoard(cs.CheckinCounts, func(userID string) string { return s.resolveName(cs, userID) })
		return nil
	})
	return board, err
}

func (s *checkinService) MissedBoard(guildID, channelID string) (board []entity.BoardEntry, err error) {
	err = s.cache.WithChannel(guildID, channelID, func(_ *entity.GuildSettings, cs *entity.ChannelSettings) error {
		board = entity.BuildBoard(cs.MissedCounts, func(userID string) string { return s.resolveName(cs, userID) })
		return nil
	})
	return board, err
}

func (s *checkinService) ResetBoard(guildID, channelID, board string) error {
	return s.cache.WithChannel(guildID, channelID, func(_ *entity.GuildSettings, cs *entity.ChannelSettings) error {
		switch board {
		case "wl":
			cs.CheckinCounts = make(map[string]int64)
		case "ll":
			cs.MissedCounts = make(map[string]int64)
		default:
			return domain.ErrUnknownBoard
		}
		s.persistChannel(guildID, channelID, cs)
		s.log.Info().Str("guild_id", guildID).Str("channel_id", channelID).Str("board", board).
			Msg("leaderboard reset")
		return nil
	})
}

func (s *checkinService) ResetInfo(guildID, channelID string) (resetTime, timezone string, err error) {
	err = s.cache.WithChannel(guildID, channelID, func(gs *entity.GuildSettings, cs *entity.ChannelSettings) error {
		resetTime = cs.ResetTime
		timezone = gs.Timezone
		return nil
	})
	return resetTime, timezone, err
}

func (s *checkinService) SetResetTime(guildID, channelID, resetTime string) error {
	if _, _, _, err := entity.ParseResetTime(resetTime); err != nil {
		return err
	}
	return s.cache.WithChannel(guildID, channelID, func(_ *entity.GuildSettings, cs *entity.ChannelSettings) error {
		cs.ResetTime = resetTime
		s.persistChannel(guildID, channelID, cs)
		s.log.Info().Str("guild_id", guildID).Str("channel_id", channelID).Str("reset_time", resetTime).
			Msg("reset time configured")
		return nil
	})
}

func (s *checkinService) SetTimezone(guildID, zone string) error {
	if _, err := time.LoadLocation(zone); err != nil {
		return domain.ErrInvalidTimezone
	}
	return s.cache.WithGuild(guildID, func(gs *entity.GuildSettings) error {
		gs.Timezone = zone
		s.persistGuild(guildID, gs)
		s.log.Info().Str("guild_id", guildID).Str("timezone", zone).Msg("guild timezone configured")
		return nil
	})
}

func (s *checkinService) SetWordMinimum(guildID, channelID string, minimum int) error {
	if minimum <= 0 {
		return fmt.Errorf("please enter a positive number (greater than zero)")
	}
	return s.cache.WithChannel(guildID, channelID, func(_ *entity.GuildSettings, cs *entity.ChannelSettings) error {
		cs.WordMinimum = minimum
		s.persistChannel(guildID, channelID, cs)
		return nil
	})
}

func (s *checkinService) ToggleRequireMedia(guildID, channelID string) (required bool, err error) {
	err = s.cache.WithChannel(guildID, channelID, func(_ *entity.GuildSettings, cs *entity.ChannelSettings) error {
		cs.RequireMedia = !cs.RequireMedia
		required = cs.RequireMedia
		s.persistChannel(guildID, channelID, cs)
		return nil
	})
	return required, err
}

func (s *checkinService) AdjustCheckins(guildID, channelID, userID string, delta int64) (newCount int64, err error) {
	err = s.cache.WithChannel(guildID, channelID, func(_ *entity.GuildSettings, cs *entity.ChannelSettings) error {
		count := cs.CheckinCounts[userID] + delta
		if count < 0 {
			count = 0
		}
		if count == 0 {
			delete(cs.CheckinCounts, userID)
		} else {
			cs.CheckinCounts[userID] = count
		}
		newCount = count
		s.persistChannel(guildID, channelID, cs)
		s.log.Info().Str("guild_id", guildID).Str("channel_id", channelID).Str("user_id", userID).
			Int64("delta", delta).Int64("count", count).Msg("check-in count adjusted")
		return nil
	})
	return newCount, err
}

func (s *checkinService) BanUsers(guildID, channelID string, userIDs []string) error {
	return s.cache.WithChannel(guildID, channelID, func(_ *entity.GuildSettings, cs *entity.ChannelSettings) error {
		for _, userID := range userIDs {
			cs.Banned.Add(userID)
			// A ban also purges the user from both leaderboards.
			delete(cs.CheckinCounts, userID)
			delete(cs.MissedCounts, userID)
		}
		s.persistChannel(guildID, channelID, cs)
		s.log.Info().Str("guild_id", guildID).Str("channel_id", channelID).Strs("user_ids", userIDs).
			Msg("users banned from check-ins")
		return nil
	})
}

func (s *checkinService) UnbanUsers(guildID, channelID string, userIDs []string) (unbanned []string, err error) {
	err = s.cache.WithChannel(guildID, channelID, func(_ *entity.GuildSettings, cs *entity.ChannelSettings) error {
		for _, userID := range userIDs {
			if cs.Banned.Has(userID) {
				cs.Banned.Remove(userID)
				unbanned = append(unbanned, userID)
			}
		}
		if len(unbanned) > 0 {
			s.persistChannel(guildID, channelID, cs)
		}
		return nil
	})
	return unbanned, err
}

func (s *checkinService) BannedUsers(guildID, channelID string) (banned []string, err error) {
	err = s.cache.WithChannel(guildID, channelID, func(_ *entity.GuildSettings, cs *entity.ChannelSettings) error {
		banned = cs.Banned.Sorted()
		return nil
	})
	return banned, err
}

func (s *checkinService) MapNames(guildID, channelID string, pairs map[string]string) (mappings map[string]string, err error) {
	err = s.cache.WithChannel(guildID, channelID, func(_ *entity.GuildSettings, cs *entity.ChannelSettings) error {
		for userID, name := range pairs {
			cs.NameMap[userID] = name
		}
		mappings = copyNameMap(cs.NameMap)
		s.persistChannel(guildID, channelID, cs)
		return nil
	})
	return mappings, err
}

func (s *checkinService) RefreshNames(guildID, channelID string) (mappings map[string]string, err error) {
	members, err := s.messenger.GuildMembers(guildID)
	if err != nil {
		return nil, fmt.Errorf("failed to list guild members: %w", err)
	}
	err = s.cache.WithChannel(guildID, channelID, func(_ *entity.GuildSettings, cs *entity.ChannelSettings) error {
		cs.NameMap = make(map[string]string, len(members))
		for _, member := range members {
			if member.IsBot || cs.Banned.Has(member.ID) {
				continue
			}
			cs.NameMap[member.ID] = member.DisplayName
		}
		mappings = copyNameMap(cs.NameMap)
		s.persistChannel(guildID, channelID, cs)
		return nil
	})
	return mappings, err
}

func (s *checkinService) IsAdmin(guildID, userID string) (bool, error) {
	// The guild owner is always an implicit admin. When the owner lookup
	// fails we still honor the stored admin set.
	owner, err := s.messenger.GuildOwnerID(guildID)
	if err != nil {
		s.log.Warn().Err(err).Str("guild_id", guildID).Msg("failed to resolve guild owner")
	} else if userID == owner {
		return true, nil
	}

	isAdmin := false
	err = s.cache.WithGuild(guildID, func(gs *entity.GuildSettings) error {
		isAdmin = gs.Admins.Has(userID)
		return nil
	})
	return isAdmin, err
}

func (s *checkinService) AddAdmin(guildID, userID string) error {
	return s.cache.WithGuild(guildID, func(gs *entity.GuildSettings) error {
		if gs.Admins.Has(userID) {
			return fmt.Errorf("user is already a server admin")
		}
		gs.Admins.Add(userID)
		s.persistGuild(guildID, gs)
		return nil
	})
}

func (s *checkinService) RemoveAdmin(guildID, userID string) error {
	owner, err := s.messenger.GuildOwnerID(guildID)
	if err == nil && userID == owner {
		return domain.ErrOwnerIsAdmin
	}
	return s.cache.WithGuild(guildID, func(gs *entity.GuildSettings) error {
		if !gs.Admins.Has(userID) {
			return fmt.Errorf("user is not currently a server admin")
		}
		gs.Admins.Remove(userID)
		s.persistGuild(guildID, gs)
		return nil
	})
}

func (s *checkinService) Admins(guildID string) (admins []string, err error) {
	err = s.cache.WithGuild(guildID, func(gs *entity.GuildSettings) error {
		admins = gs.Admins.Sorted()
		return nil
	})
	return admins, err
}

func (s *checkinService) BootstrapAdmins(guildID string) error {
	return s.cache.WithGuild(guildID, func(gs *entity.GuildSettings) error {
		if len(gs.Admins) > 0 {
			return nil
		}

		adminID, err := s.messenger.BotInviterID(guildID)
		if err != nil {
			s.log.Warn().Err(err).Str("guild_id", guildID).Msg("could not read audit log for inviter")
		}
		if adminID == "" {
			adminID, err = s.messenger.GuildOwnerID(guildID)
			if err != nil {
				return fmt.Errorf("failed to determine initial admin: %w", err)
			}
		}

		gs.Admins.Add(adminID)
		s.persistGuild(guildID, gs)
		s.log.Info().Str("guild_id", guildID).Str("user_id", adminID).Msg("initial guild admin set")
		return nil
	})
}

// resolveName resolves a user ID to a display name: channel name mapping
// first, then the platform display name, else a synthesized unknown label.
func (s *checkinService) resolveName(cs *entity.ChannelSettings, userID string) string {
	if name, ok := cs.NameMap[userID]; ok {
		return name
	}
	name, err := s.messenger.DisplayName(userID)
	if err != nil || name == "" {
		return fmt.Sprintf("Unknown User (%s)", userID)
	}
	return name
}

// eligibleMembers lists the guild's non-bot, non-banned members. Lookup
// failures degrade to an empty list, they never fail the calling operation.
func (s *checkinService) eligibleMembers(guildID string, cs *entity.ChannelSettings) []entity.Member {
	members, err := s.messenger.GuildMembers(guildID)
	if err != nil {
		s.log.Warn().Err(err).Str("guild_id", guildID).Msg("failed to list guild members")
		return nil
	}
	eligible := members[:0]
	for _, member := range members {
		if member.IsBot || cs.Banned.Has(member.ID) {
			continue
		}
		eligible = append(eligible, member)
	}
	return eligible
}

// persistChannel writes the channel record through to the store. A failed
// save is logged and the cached value stays ahead of the durable one.
func (s *checkinService) persistChannel(guildID, channelID string, cs *entity.ChannelSettings) {
	err := s.dm.WithTransaction(context.Background(), func(dm contract.DataManager) error {
		return dm.Settings().SaveChannel(guildID, channelID, cs)
	})
	if err != nil {
		s.log.Error().Err(err).Str("guild_id", guildID).Str("channel_id", channelID).
			Msg("failed to persist channel settings")
	}
}

func (s *checkinService) persistGuild(guildID string, gs *entity.GuildSettings) {
	if err := s.dm.Settings().SaveGuild(guildID, gs); err != nil {
		s.log.Error().Err(err).Str("guild_id", guildID).Msg("failed to persist guild settings")
	}
}

func copyNameMap(m map[string]string) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
