package factory

import (
	"time"

	"github.com/gesturelabs/gestris/internal/dependencies/mocks"
	"github.com/gesturelabs/gestris/internal/services/game"
	"github.com/gesturelabs/gestris/internal/services/gesture"
	"github.com/gesturelabs/gestris/internal/storage/memory"
	"github.com/gesturelabs/gestris/internal/testutil"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock  *mocks.MockClock
	MockRandom *mocks.MockRandom
}

// NewTestApp creates an App configured for testing with mocked dependencies.
// Gravity is effectively disabled so tests drive all transitions themselves.
func NewTestApp() *TestApp {
	store := memory.New()
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	mockRandom := mocks.NewMockRandom()

	gameCfg := game.DefaultConfig()
	gameCfg.GravityInterval = time.Hour

	app := newWithDependencies(store, mockClock, mockRandom, gameCfg, gesture.DefaultConfig(), testutil.NopLogger())

	return &TestApp{
		App:        app,
		MockClock:  mockClock,
		MockRandom: mockRandom,
	}
}
