package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/checkinhq/checkin-bot/internal/cache"
	"github.com/checkinhq/checkin-bot/internal/domain/contract"
	"github.com/checkinhq/checkin-bot/mocks"
)

type allMocks struct {
	mockDataManager  *mocks.MockDataManager
	mockSettingsRepo *mocks.MockSettingsRepo
	mockMessenger    *mocks.MockMessenger
}

// newServiceTestMock wires a mocked store behind a real cache. Transactions
// run the callback against the mock directly, so repository expectations see
// the same calls production code would issue.
func newServiceTestMock(t *testing.T) (m allMocks, svc *Services, store *cache.Cache, ctrl *gomock.Controller) {
	t.Helper()

	ctrl = gomock.NewController(t)

	dm := mocks.NewMockDataManager(ctrl)
	repo := mocks.NewMockSettingsRepo(ctrl)
	dm.EXPECT().Settings().Return(repo).AnyTimes()
	dm.EXPECT().WithTransaction(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, fn func(contract.DataManager) error) error {
			return fn(dm)
		}).AnyTimes()

	messenger := mocks.NewMockMessenger(ctrl)

	m = allMocks{
		mockDataManager:  dm,
		mockSettingsRepo: repo,
		mockMessenger:    messenger,
	}

	store = cache.New(dm, zerolog.Nop())
	svc = New(store, dm, messenger, zerolog.Nop())
	require.NotNil(t, svc)

	return
}
