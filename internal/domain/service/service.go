package service

import (
	"github.com/checkinhq/checkin-bot/internal/cache"
	"github.com/checkinhq/checkin-bot/internal/domain/contract"
	"github.com/rs/zerolog"
)

type Services struct {
	Checkin   *checkinService
	Scheduler *resetScheduler
}

func New(c *cache.Cache, dm contract.DataManager, messenger contract.Messenger, log zerolog.Logger) *Services {
	return &Services{
		Checkin:   newCheckin(c, dm, messenger, log),
		Scheduler: newResetScheduler(c, dm, messenger, log),
	}
}
