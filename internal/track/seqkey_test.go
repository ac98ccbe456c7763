package track

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

type SequenceKeySuite struct {
	suite.Suite
}

func TestSequenceKeySuite(t *testing.T) {
	suite.Run(t, new(SequenceKeySuite))
}

func (s *SequenceKeySuite) TestFixedWidth() {
	times := []time.Time{
		time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 6, 15, 12, 30, 45, 123456700, time.UTC),
		time.Date(2026, 8, 28, 23, 59, 59, 999999900, time.UTC),
		time.Date(9999, 12, 31, 23, 59, 59, 0, time.UTC),
	}
	for _, tt := range times {
		key, err := SequenceKey(tt)
		s.Require().NoError(err, "time %v", tt)
		s.Len(key, 20, "time %v", tt)
	}
}

func (s *SequenceKeySuite) TestOrderingInvertsTime() {
	s.Run("newer time sorts first", func() {
		older := time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC)
		newer := older.Add(5 * time.Second)

		olderKey, err := SequenceKey(older)
		s.Require().NoError(err)
		newerKey, err := SequenceKey(newer)
		s.Require().NoError(err)

		s.Less(newerKey, olderKey)
	})

	s.Run("single tick resolution", func() {
		t1 := time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC)
		t2 := t1.Add(100 * time.Nanosecond)

		k1, err := SequenceKey(t1)
		s.Require().NoError(err)
		k2, err := SequenceKey(t2)
		s.Require().NoError(err)

		s.Less(k2, k1)
	})

	s.Run("same tick yields same key", func() {
		t1 := time.Date(2026, 8, 28, 10, 0, 0, 150, time.UTC)
		t2 := time.Date(2026, 8, 28, 10, 0, 0, 199, time.UTC)

		k1, err := SequenceKey(t1)
		s.Require().NoError(err)
		k2, err := SequenceKey(t2)
		s.Require().NoError(err)

		s.Equal(k1, k2)
	})

	s.Run("ordering holds across year boundaries", func() {
		prev := ""
		for year := 2020; year <= 2100; year += 10 {
			key, err := SequenceKey(time.Date(year, 1, 1, 0, 0, 0, 0, time.UTC))
			s.Require().NoError(err)
			if prev != "" {
				s.Less(key, prev, "year %d", year)
			}
			prev = key
		}
	})
}

func (s *SequenceKeySuite) TestOutOfRange() {
	s.Run("rejects times at the tick ceiling", func() {
		_, err := SequenceKey(time.Date(10000, 1, 1, 0, 0, 0, 0, time.UTC))
		s.Require().ErrorIs(err, ErrTimeOutOfRange)
	})

	s.Run("rejects times before the tick epoch", func() {
		_, err := SequenceKey(time.Date(-2000, 1, 1, 0, 0, 0, 0, time.UTC))
		s.Require().ErrorIs(err, ErrTimeOutOfRange)
	})
}

func (s *SequenceKeySuite) TestKnownValue() {
	// Unix epoch: maxTicks - unixEpochTicks.
	key, err := SequenceKey(time.Unix(0, 0))
	s.Require().NoError(err)
	s.Equal("02534023007999999999", key)
}

func TestNormalizeDeviceID(t *testing.T) {
	cases := map[string]string{
		"+5511999999999": "5511999999999",
		"5511999999999":  "5511999999999",
		"+55+11":         "5511",
		"":               "",
	}
	for in, want := range cases {
		if got := NormalizeDeviceID(in); got != want {
			t.Fatalf("NormalizeDeviceID(%q) = %q, want %q", in, got, want)
		}
	}
}
