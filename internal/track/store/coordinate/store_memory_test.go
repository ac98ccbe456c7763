package coordinate

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"geotrack/internal/track"
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

func (s *InMemoryStoreSuite) SetupSubTest() {
	s.SetupTest()
}

func (s *InMemoryStoreSuite) TestAppend() {
	s.Run("stores a sample with normalized device id", func() {
		storedAt := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
		err := s.store.Append(s.ctx, "+5511988887777", -23.55, -46.63, storedAt)
		s.Require().NoError(err)

		samples, err := s.store.ScanAll(s.ctx)
		s.Require().NoError(err)
		s.Require().Len(samples, 1)
		s.Equal("5511988887777", samples[0].DeviceID)
		s.Equal(-23.55, samples[0].Latitude)
		s.Equal(-46.63, samples[0].Longitude)
		s.Equal(storedAt, samples[0].StoredAt)

		wantKey, err := track.SequenceKey(storedAt)
		s.Require().NoError(err)
		s.Equal(wantKey, samples[0].SequenceKey)
	})

	s.Run("same tick overwrites instead of duplicating", func() {
		storedAt := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
		s.Require().NoError(s.store.Append(s.ctx, "5511988887777", -23.55, -46.63, storedAt))
		s.Require().NoError(s.store.Append(s.ctx, "5511988887777", -23.56, -46.64, storedAt))

		samples, err := s.store.ScanAll(s.ctx)
		s.Require().NoError(err)
		s.Require().Len(samples, 1)
		s.Equal(-23.56, samples[0].Latitude)
		s.Equal(-46.64, samples[0].Longitude)
	})

	s.Run("rejects timestamps outside the key range", func() {
		err := s.store.Append(s.ctx, "5511988887777", -23.55, -46.63, time.Date(10000, 1, 1, 0, 0, 0, 0, time.UTC))
		s.Require().ErrorIs(err, track.ErrTimeOutOfRange)

		samples, err := s.store.ScanAll(s.ctx)
		s.Require().NoError(err)
		s.Empty(samples)
	})
}

func (s *InMemoryStoreSuite) TestScanAll() {
	s.Run("empty store scans to nothing", func() {
		samples, err := s.store.ScanAll(s.ctx)
		s.Require().NoError(err)
		s.Empty(samples)
	})

	s.Run("returns samples across devices", func() {
		base := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
		s.Require().NoError(s.store.Append(s.ctx, "111", 1.5, 2.5, base))
		s.Require().NoError(s.store.Append(s.ctx, "111", 1.6, 2.6, base.Add(time.Second)))
		s.Require().NoError(s.store.Append(s.ctx, "222", 3.5, 4.5, base))

		samples, err := s.store.ScanAll(s.ctx)
		s.Require().NoError(err)
		s.Len(samples, 3)

		perDevice := map[string]int{}
		for _, sample := range samples {
			perDevice[sample.DeviceID]++
		}
		s.Equal(map[string]int{"111": 2, "222": 1}, perDevice)
	})
}
