package allowlist

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"
)

type InMemoryStoreSuite struct {
	suite.Suite
	store *InMemoryStore
	ctx   context.Context
}

func TestInMemoryStoreSuite(t *testing.T) {
	suite.Run(t, new(InMemoryStoreSuite))
}

func (s *InMemoryStoreSuite) SetupTest() {
	s.store = NewInMemory()
	s.ctx = context.Background()
}

func (s *InMemoryStoreSuite) TestIsAuthorized() {
	s.Run("unknown device is denied", func() {
		ok, err := s.store.IsAuthorized(s.ctx, "5511999999999")
		s.Require().NoError(err)
		s.False(ok)
	})

	s.Run("added device is authorized", func() {
		s.Require().NoError(s.store.Add(s.ctx, "5511999999999"))

		ok, err := s.store.IsAuthorized(s.ctx, "5511999999999")
		s.Require().NoError(err)
		s.True(ok)
	})

	s.Run("membership is normalization invariant", func() {
		s.Require().NoError(s.store.Add(s.ctx, "+5511988887777"))

		ok, err := s.store.IsAuthorized(s.ctx, "5511988887777")
		s.Require().NoError(err)
		s.True(ok)

		ok, err = s.store.IsAuthorized(s.ctx, "+5511988887777")
		s.Require().NoError(err)
		s.True(ok)
	})
}
