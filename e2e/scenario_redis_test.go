package e2e

import (
	"context"
	"testing"

	"tab-mirror/bus"
	"tab-mirror/domain"
	"tab-mirror/storage"

	"github.com/stretchr/testify/suite"
)

type testRedisSuite struct {
	BaseTabSuite
}

func TestRedisSuite(t *testing.T) {
	suite.Run(t, &testRedisSuite{})
}

func (s *testRedisSuite) SetupTest() {
	if s.Config.RedisURL == "" {
		s.T().Skip("REDIS_URL not set")
	}
}

func (s *testRedisSuite) port(channel string) bus.Port {
	client, err := storage.DialRedis(context.Background(), s.Config.RedisURL)
	s.Require().NoError(err)
	return bus.NewRedisPort(client, channel, s.Log)
}

func (s *testRedisSuite) store() *storage.RedisStore {
	client, err := storage.DialRedis(context.Background(), s.Config.RedisURL)
	s.Require().NoError(err)
	store := storage.NewRedisStore(client, "tab-mirror-e2e:", s.Log)
	s.T().Cleanup(func() { _ = store.Close() })
	return store
}

func (s *testRedisSuite) TestMirroringAcrossProcessesLikeTabs() {
	channel := UniqueKey("chat_app_sync")
	key := UniqueKey("chat_app_history")
	store := s.store()

	s.Step("Open Tab A (u1) and Tab B (u2)")
	tabA := s.OpenTab("u1", s.port(channel), store, key)
	tabB := s.OpenTab("u2", s.port(channel), store, key)

	s.Step("Tab A types, Tab B shows the indicator")
	tabA.Controller.InputChanged("h")
	s.Require().Eventually(func() bool {
		return tabB.View.Indicator(domain.TypingIndicator)
	}, waitFor, tick)

	s.Step("Tab A sends, both tabs render and the history is shared")
	tabA.Controller.Send("hi")
	s.AwaitTexts(tabA, "hi")
	s.AwaitTexts(tabB, "hi")
	s.Require().Eventually(func() bool {
		return !tabB.View.Indicator(domain.TypingIndicator)
	}, waitFor, tick)
	s.AwaitHistory(store, key, 1)

	s.Step("A late Tab C loads the shared history")
	tabC := s.OpenTab("u3", s.port(channel), store, key)
	s.AwaitTexts(tabC, "hi")
}
