package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/checkinhq/checkin-bot/internal/domain"
	"github.com/checkinhq/checkin-bot/internal/domain/entity"
)

const (
	testGuildID   = "100000000000000001"
	testChannelID = "200000000000000001"
	testUserID    = "300000000000000001"
)

func Test_checkinService_CheckIn(t *testing.T) {
	type args struct {
		wordCount int
		hasMedia  bool
	}
	tests := []struct {
		name      string
		args      args
		buildMock func(t *testing.T, m allMocks)
		wantErr   error
	}{
		{
			name: "Should record a check-in and persist it",
			args: args{wordCount: 3},
			buildMock: func(t *testing.T, m allMocks) {
				m.mockSettingsRepo.EXPECT().
					LoadChannel(testGuildID, testChannelID).
					Return(entity.NewChannelSettings(), nil).Times(1)

				m.mockSettingsRepo.EXPECT().
					SaveChannel(testGuildID, testChannelID, gomock.Any()).
					DoAndReturn(func(_, _ string, cs *entity.ChannelSettings) error {
						require.Equal(t, []string{testUserID}, cs.DailyChecked)
						require.Equal(t, int64(1), cs.CheckinCounts[testUserID])
						return nil
					}).Times(1)
			},
		},
		{
			name: "Should reject a banned user without writing",
			args: args{wordCount: 3},
			buildMock: func(t *testing.T, m allMocks) {
				cs := entity.NewChannelSettings()
				cs.Banned.Add(testUserID)
				m.mockSettingsRepo.EXPECT().
					LoadChannel(testGuildID, testChannelID).
					Return(cs, nil).Times(1)
			},
			wantErr: domain.ErrBanned,
		},
		{
			name: "Should reject a second check-in on the same day",
			args: args{wordCount: 3},
			buildMock: func(t *testing.T, m allMocks) {
				cs := entity.NewChannelSettings()
				cs.DailyChecked = []string{testUserID}
				m.mockSettingsRepo.EXPECT().
					LoadChannel(testGuildID, testChannelID).
					Return(cs, nil).Times(1)
			},
			wantErr: domain.ErrAlreadyChecked,
		},
		{
			name: "Should reject a check-in without media when evidence is required",
			args: args{wordCount: 50},
			buildMock: func(t *testing.T, m allMocks) {
				cs := entity.NewChannelSettings()
				cs.RequireMedia = true
				m.mockSettingsRepo.EXPECT().
					LoadChannel(testGuildID, testChannelID).
					Return(cs, nil).Times(1)
			},
			wantErr: domain.ErrMediaRequired,
		},
		{
			name: "Should reject a check-in below the word minimum",
			args: args{wordCount: 3},
			buildMock: func(t *testing.T, m allMocks) {
				cs := entity.NewChannelSettings()
				cs.WordMinimum = 5
				m.mockSettingsRepo.EXPECT().
					LoadChannel(testGuildID, testChannelID).
					Return(cs, nil).Times(1)
			},
			wantErr: assert.AnError,
		},
		{
			name: "Should waive the word minimum when media satisfied the evidence requirement",
			args: args{wordCount: 0, hasMedia: true},
			buildMock: func(t *testing.T, m allMocks) {
				cs := entity.NewChannelSettings()
				cs.RequireMedia = true
				cs.WordMinimum = 5
				m.mockSettingsRepo.EXPECT().
					LoadChannel(testGuildID, testChannelID).
					Return(cs, nil).Times(1)
				m.mockSettingsRepo.EXPECT().
					SaveChannel(testGuildID, testChannelID, gomock.Any()).
					Return(nil).Times(1)
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, svc, _, ctrl := newServiceTestMock(t)
			defer ctrl.Finish()

			tt.buildMock(t, m)

			err := svc.Checkin.CheckIn(testGuildID, testChannelID, testUserID, tt.args.wordCount, tt.args.hasMedia)
			if tt.wantErr == nil {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			if tt.wantErr != assert.AnError {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func Test_checkinService_CheckIn_wordMinimumMessage(t *testing.T) {
	m, svc, _, ctrl := newServiceTestMock(t)
	defer ctrl.Finish()

	cs := entity.NewChannelSettings()
	cs.WordMinimum = 10
	m.mockSettingsRepo.EXPECT().LoadChannel(testGuildID, testChannelID).Return(cs, nil)

	err := svc.Checkin.CheckIn(testGuildID, testChannelID, testUserID, 2, false)
	require.Error(t, err)
	assert.Equal(t, "your check-in must be at least 10 words", err.Error())
}

func Test_checkinService_BanUsers(t *testing.T) {
	m, svc, _, ctrl := newServiceTestMock(t)
	defer ctrl.Finish()

	cs := entity.NewChannelSettings()
	cs.CheckinCounts["u1"] = 3
	cs.CheckinCounts["u2"] = 2
	cs.MissedCounts["u1"] = 4
	m.mockSettingsRepo.EXPECT().LoadChannel(testGuildID, testChannelID).Return(cs, nil)

	// Banning purges both leaderboards in a single write.
	m.mockSettingsRepo.EXPECT().
		SaveChannel(testGuildID, testChannelID, gomock.Any()).
		DoAndReturn(func(_, _ string, saved *entity.ChannelSettings) error {
			require.True(t, saved.Banned.Has("u1"))
			_, hasCheckins := saved.CheckinCounts["u1"]
			_, hasMissed := saved.MissedCounts["u1"]
			require.False(t, hasCheckins)
			require.False(t, hasMissed)
			require.Equal(t, int64(2), saved.CheckinCounts["u2"])
			return nil
		}).Times(1)

	require.NoError(t, svc.Checkin.BanUsers(testGuildID, testChannelID, []string{"u1"}))
}

func Test_checkinService_UnbanUsers(t *testing.T) {
	t.Run("Should unban only matching users and persist once", func(t *testing.T) {
		m, svc, _, ctrl := newServiceTestMock(t)
		defer ctrl.Finish()

		cs := entity.NewChannelSettings()
		cs.Banned.Add("u1")
		m.mockSettingsRepo.EXPECT().LoadChannel(testGuildID, testChannelID).Return(cs, nil)
		m.mockSettingsRepo.EXPECT().SaveChannel(testGuildID, testChannelID, gomock.Any()).Return(nil).Times(1)

		unbanned, err := svc.Checkin.UnbanUsers(testGuildID, testChannelID, []string{"u1", "u2"})
		require.NoError(t, err)
		assert.Equal(t, []string{"u1"}, unbanned)
	})

	t.Run("Should not write when no user was banned", func(t *testing.T) {
		m, svc, _, ctrl := newServiceTestMock(t)
		defer ctrl.Finish()

		m.mockSettingsRepo.EXPECT().
			LoadChannel(testGuildID, testChannelID).
			Return(entity.NewChannelSettings(), nil)

		unbanned, err := svc.Checkin.UnbanUsers(testGuildID, testChannelID, []string{"u1"})
		require.NoError(t, err)
		assert.Empty(t, unbanned)
	})
}

func Test_checkinService_AdjustCheckins(t *testing.T) {
	tests := []struct {
		name      string
		initial   int64
		delta     int64
		wantCount int64
		wantKept  bool
	}{
		{name: "Should add check-ins", initial: 2, delta: 3, wantCount: 5, wantKept: true},
		{name: "Should floor at zero on excessive removal", initial: 2, delta: -10, wantCount: 0},
		{name: "Should prune an entry adjusted to exactly zero", initial: 2, delta: -2, wantCount: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, svc, _, ctrl := newServiceTestMock(t)
			defer ctrl.Finish()

			cs := entity.NewChannelSettings()
			cs.CheckinCounts[testUserID] = tt.initial
			m.mockSettingsRepo.EXPECT().LoadChannel(testGuildID, testChannelID).Return(cs, nil)
			m.mockSettingsRepo.EXPECT().
				SaveChannel(testGuildID, testChannelID, gomock.Any()).
				DoAndReturn(func(_, _ string, saved *entity.ChannelSettings) error {
					_, kept := saved.CheckinCounts[testUserID]
					require.Equal(t, tt.wantKept, kept)
					return nil
				}).Times(1)

			count, err := svc.Checkin.AdjustCheckins(testGuildID, testChannelID, testUserID, tt.delta)
			require.NoError(t, err)
			assert.Equal(t, tt.wantCount, count)
		})
	}
}

func Test_checkinService_SetTimezone(t *testing.T) {
	t.Run("Should reject an unknown timezone without touching state", func(t *testing.T) {
		_, svc, _, ctrl := newServiceTestMock(t)
		defer ctrl.Finish()

		err := svc.Checkin.SetTimezone(testGuildID, "Not/AZone")
		assert.ErrorIs(t, err, domain.ErrInvalidTimezone)
	})

	t.Run("Should set a valid timezone and persist it", func(t *testing.T) {
		m, svc, _, ctrl := newServiceTestMock(t)
		defer ctrl.Finish()

		m.mockSettingsRepo.EXPECT().LoadGuild(testGuildID).Return(entity.DefaultGuildSettings(), nil)
		m.mockSettingsRepo.EXPECT().
			SaveGuild(testGuildID, gomock.Any()).
			DoAndReturn(func(_ string, gs *entity.GuildSettings) error {
				require.Equal(t, "Europe/London", gs.Timezone)
				return nil
			}).Times(1)

		require.NoError(t, svc.Checkin.SetTimezone(testGuildID, "Europe/London"))
	})
}

func Test_checkinService_SetWordMinimum(t *testing.T) {
	t.Run("Should reject a non-positive minimum", func(t *testing.T) {
		_, svc, _, ctrl := newServiceTestMock(t)
		defer ctrl.Finish()

		require.Error(t, svc.Checkin.SetWordMinimum(testGuildID, testChannelID, 0))
	})

	t.Run("Should set and persist the minimum", func(t *testing.T) {
		m, svc, _, ctrl := newServiceTestMock(t)
		defer ctrl.Finish()

		m.mockSettingsRepo.EXPECT().
			LoadChannel(testGuildID, testChannelID).
			Return(entity.NewChannelSettings(), nil)
		m.mockSettingsRepo.EXPECT().
			SaveChannel(testGuildID, testChannelID, gomock.Any()).
			DoAndReturn(func(_, _ string, cs *entity.ChannelSettings) error {
				require.Equal(t, 5, cs.WordMinimum)
				return nil
			}).Times(1)

		require.NoError(t, svc.Checkin.SetWordMinimum(testGuildID, testChannelID, 5))
	})
}

func Test_checkinService_ToggleRequireMedia(t *testing.T) {
	m, svc, _, ctrl := newServiceTestMock(t)
	defer ctrl.Finish()

	m.mockSettingsRepo.EXPECT().
		LoadChannel(testGuildID, testChannelID).
		Return(entity.NewChannelSettings(), nil)
	m.mockSettingsRepo.EXPECT().
		SaveChannel(testGuildID, testChannelID, gomock.Any()).
		Return(nil).Times(2)

	required, err := svc.Checkin.ToggleRequireMedia(testGuildID, testChannelID)
	require.NoError(t, err)
	assert.True(t, required)

	required, err = svc.Checkin.ToggleRequireMedia(testGuildID, testChannelID)
	require.NoError(t, err)
	assert.False(t, required)
}

func Test_checkinService_TodayStatus(t *testing.T) {
	m, svc, _, ctrl := newServiceTestMock(t)
	defer ctrl.Finish()

	cs := entity.NewChannelSettings()
	cs.DailyChecked = []string{"u1"}
	cs.NameMap["u1"] = "Alice"
	cs.Banned.Add("u3")
	m.mockSettingsRepo.EXPECT().LoadChannel(testGuildID, testChannelID).Return(cs, nil)
	m.mockMessenger.EXPECT().GuildMembers(testGuildID).Return([]entity.Member{
		{ID: "u1", DisplayName: "alice"},
		{ID: "u2", DisplayName: "Bob"},
		{ID: "u3", DisplayName: "Carol"},
		{ID: "u4", DisplayName: "Beep", IsBot: true},
	}, nil)

	checked, unchecked, err := svc.Checkin.TodayStatus(testGuildID, testChannelID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Alice"}, checked)
	assert.Equal(t, []string{"Bob"}, unchecked)
}

func Test_checkinService_RefreshNames(t *testing.T) {
	m, svc, _, ctrl := newServiceTestMock(t)
	defer ctrl.Finish()

	cs := entity.NewChannelSettings()
	cs.Banned.Add("u2")
	m.mockSettingsRepo.EXPECT().LoadChannel(testGuildID, testChannelID).Return(cs, nil)
	m.mockMessenger.EXPECT().GuildMembers(testGuildID).Return([]entity.Member{
		{ID: "u1", DisplayName: "Alice"},
		{ID: "u2", DisplayName: "Banned"},
		{ID: "u3", DisplayName: "Beep", IsBot: true},
	}, nil)
	m.mockSettingsRepo.EXPECT().SaveChannel(testGuildID, testChannelID, gomock.Any()).Return(nil).Times(1)

	mapping, err := svc.Checkin.RefreshNames(testGuildID, testChannelID)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"u1": "Alice"}, mapping)
}

func Test_checkinService_IsAdmin(t *testing.T) {
	t.Run("Should treat the guild owner as implicit admin", func(t *testing.T) {
		m, svc, _, ctrl := newServiceTestMock(t)
		defer ctrl.Finish()

		m.mockMessenger.EXPECT().GuildOwnerID(testGuildID).Return(testUserID, nil)

		isAdmin, err := svc.Checkin.IsAdmin(testGuildID, testUserID)
		require.NoError(t, err)
		assert.True(t, isAdmin)
	})

	t.Run("Should honor the stored admin set when owner lookup fails", func(t *testing.T) {
		m, svc, _, ctrl := newServiceTestMock(t)
		defer ctrl.Finish()

		m.mockMessenger.EXPECT().GuildOwnerID(testGuildID).Return("", assert.AnError)
		gs := entity.DefaultGuildSettings()
		gs.Admins.Add(testUserID)
		m.mockSettingsRepo.EXPECT().LoadGuild(testGuildID).Return(gs, nil)

		isAdmin, err := svc.Checkin.IsAdmin(testGuildID, testUserID)
		require.NoError(t, err)
		assert.True(t, isAdmin)
	})

	t.Run("Should report non-admins as such", func(t *testing.T) {
		m, svc, _, ctrl := newServiceTestMock(t)
		defer ctrl.Finish()

		m.mockMessenger.EXPECT().GuildOwnerID(testGuildID).Return("someone-else", nil)
		m.mockSettingsRepo.EXPECT().LoadGuild(testGuildID).Return(entity.DefaultGuildSettings(), nil)

		isAdmin, err := svc.Checkin.IsAdmin(testGuildID, testUserID)
		require.NoError(t, err)
		assert.False(t, isAdmin)
	})
}

func Test_checkinService_RemoveAdmin(t *testing.T) {
	t.Run("Should refuse to remove the guild owner", func(t *testing.T) {
		m, svc, _, ctrl := newServiceTestMock(t)
		defer ctrl.Finish()

		m.mockMessenger.EXPECT().GuildOwnerID(testGuildID).Return(testUserID, nil)

		err := svc.Checkin.RemoveAdmin(testGuildID, testUserID)
		assert.ErrorIs(t, err, domain.ErrOwnerIsAdmin)
	})

	t.Run("Should remove a stored admin", func(t *testing.T) {
		m, svc, _, ctrl := newServiceTestMock(t)
		defer ctrl.Finish()

		m.mockMessenger.EXPECT().GuildOwnerID(testGuildID).Return("someone-else", nil)
		gs := entity.DefaultGuildSettings()
		gs.Admins.Add(testUserID)
		m.mockSettingsRepo.EXPECT().LoadGuild(testGuildID).Return(gs, nil)
		m.mockSettingsRepo.EXPECT().
			SaveGuild(testGuildID, gomock.Any()).
			DoAndReturn(func(_ string, saved *entity.GuildSettings) error {
				require.False(t, saved.Admins.Has(testUserID))
				return nil
			}).Times(1)

		require.NoError(t, svc.Checkin.RemoveAdmin(testGuildID, testUserID))
	})
}

func Test_checkinService_BootstrapAdmins(t *testing.T) {
	t.Run("Should leave a guild with existing admins untouched", func(t *testing.T) {
		m, svc, _, ctrl := newServiceTestMock(t)
		defer ctrl.Finish()

		gs := entity.DefaultGuildSettings()
		gs.Admins.Add("existing")
		m.mockSettingsRepo.EXPECT().LoadGuild(testGuildID).Return(gs, nil)

		require.NoError(t, svc.Checkin.BootstrapAdmins(testGuildID))
	})

	t.Run("Should seed the inviter from the audit log", func(t *testing.T) {
		m, svc, _, ctrl := newServiceTestMock(t)
		defer ctrl.Finish()

		m.mockSettingsRepo.EXPECT().LoadGuild(testGuildID).Return(entity.DefaultGuildSettings(), nil)
		m.mockMessenger.EXPECT().BotInviterID(testGuildID).Return("inviter", nil)
		m.mockSettingsRepo.EXPECT().
			SaveGuild(testGuildID, gomock.Any()).
			DoAndReturn(func(_ string, saved *entity.GuildSettings) error {
				require.True(t, saved.Admins.Has("inviter"))
				return nil
			}).Times(1)

		require.NoError(t, svc.Checkin.BootstrapAdmins(testGuildID))
	})

	t.Run("Should fall back to the guild owner when the audit log is inaccessible", func(t *testing.T) {
		m, svc, _, ctrl := newServiceTestMock(t)
		defer ctrl.Finish()

		m.mockSettingsRepo.EXPECT().LoadGuild(testGuildID).Return(entity.DefaultGuildSettings(), nil)
		m.mockMessenger.EXPECT().BotInviterID(testGuildID).Return("", nil)
		m.mockMessenger.EXPECT().GuildOwnerID(testGuildID).Return("owner", nil)
		m.mockSettingsRepo.EXPECT().
			SaveGuild(testGuildID, gomock.Any()).
			DoAndReturn(func(_ string, saved *entity.GuildSettings) error {
				require.True(t, saved.Admins.Has("owner"))
				return nil
			}).Times(1)

		require.NoError(t, svc.Checkin.BootstrapAdmins(testGuildID))
	})
}

func Test_checkinService_ResetBoard(t *testing.T) {
	t.Run("Should reject an unknown board", func(t *testing.T) {
		m, svc, _, ctrl := newServiceTestMock(t)
		defer ctrl.Finish()

		m.mockSettingsRepo.EXPECT().
			LoadChannel(testGuildID, testChannelID).
			Return(entity.NewChannelSettings(), nil)

		err := svc.Checkin.ResetBoard(testGuildID, testChannelID, "nope")
		assert.ErrorIs(t, err, domain.ErrUnknownBoard)
	})

	t.Run("Should clear only the selected board", func(t *testing.T) {
		m, svc, _, ctrl := newServiceTestMock(t)
		defer ctrl.Finish()

		cs := entity.NewChannelSettings()
		cs.CheckinCounts["u1"] = 3
		cs.MissedCounts["u1"] = 2
		m.mockSettingsRepo.EXPECT().LoadChannel(testGuildID, testChannelID).Return(cs, nil)
		m.mockSettingsRepo.EXPECT().
			SaveChannel(testGuildID, testChannelID, gomock.Any()).
			DoAndReturn(func(_, _ string, saved *entity.ChannelSettings) error {
				require.Empty(t, saved.CheckinCounts)
				require.Equal(t, int64(2), saved.MissedCounts["u1"])
				return nil
			}).Times(1)

		require.NoError(t, svc.Checkin.ResetBoard(testGuildID, testChannelID, "wl"))
	})
}
