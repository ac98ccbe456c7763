//go:build integration

package allowlist_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"geotrack/internal/track/store/allowlist"
	"geotrack/pkg/testutil/containers"
)

type RedisStoreSuite struct {
	suite.Suite
	redis *containers.RedisContainer
	store *allowlist.RedisStore
}

func TestRedisStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(RedisStoreSuite))
}

func (s *RedisStoreSuite) SetupSuite() {
	s.redis = containers.NewRedisContainer(s.T())
	s.store = allowlist.NewRedis(s.redis.Client)
}

func (s *RedisStoreSuite) SetupTest() {
	s.Require().NoError(s.redis.FlushAll(context.Background()))
}

func (s *RedisStoreSuite) TestMembership() {
	ctx := context.Background()

	s.Run("unknown device is denied", func() {
		ok, err := s.store.IsAuthorized(ctx, "5511999999999")
		s.Require().NoError(err)
		s.False(ok)
	})

	s.Run("added device is authorized under both spellings", func() {
		s.Require().NoError(s.store.Add(ctx, "+5511988887777"))

		ok, err := s.store.IsAuthorized(ctx, "5511988887777")
		s.Require().NoError(err)
		s.True(ok)

		ok, err = s.store.IsAuthorized(ctx, "+5511988887777")
		s.Require().NoError(err)
		s.True(ok)
	})
}
