package models

import (
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/suite"
)

// ContextSuite is a test suite for the time-context derivation.
type ContextSuite struct {
	suite.Suite
}

func TestContextSuite(t *testing.T) {
	suite.Run(t, new(ContextSuite))
}

// =============================================================================
// GOOD SCENARIOS - Expected normal operations
// =============================================================================

func (s *ContextSuite) TestTimeOfDayAt_Buckets() {
	cases := map[int]TimeOfDay{
		6: TimeMorning, 11: TimeMorning,
		12: TimeDay, 17: TimeDay,
		18: TimeEvening, 21: TimeEvening,
		22: TimeNight, 23: TimeNight, 0: TimeNight, 5: TimeNight,
	}
	for hour, want := range cases {
		t := time.Date(2025, 1, 10, hour, 30, 0, 0, time.UTC)
		s.Equal(want, TimeOfDayAt(t), "hour %d", hour)
	}
}

func (s *ContextSuite) TestSeasonAt_Buckets() {
	cases := map[time.Month]Season{
		time.March: SeasonSpring, time.May: SeasonSpring,
		time.June: SeasonSummer, time.August: SeasonSummer,
		time.September: SeasonAutumn, time.November: SeasonAutumn,
		time.December: SeasonWinter, time.January: SeasonWinter, time.February: SeasonWinter,
	}
	for month, want := range cases {
		t := time.Date(2025, month, 10, 12, 0, 0, 0, time.UTC)
		s.Equal(want, SeasonAt(t), "month %s", month)
	}
}

func (s *ContextSuite) TestDeriveContext_SummerAfternoon() {
	// 14:00 in June maps to day/summer
	t := time.Date(2025, time.June, 15, 14, 0, 0, 0, time.UTC)
	ctx := DeriveContext(t)

	s.Equal(TimeDay, ctx.TimeOfDay)
	s.Equal(SeasonSummer, ctx.Season)
}

// =============================================================================
// EDGE CASES - Totality over all inputs
// =============================================================================

func (s *ContextSuite) TestTimeOfDayAt_TotalOverAllHours() {
	valid := map[TimeOfDay]bool{
		TimeMorning: true, TimeDay: true, TimeEvening: true, TimeNight: true,
	}
	for hour := 0; hour < 24; hour++ {
		t := time.Date(2025, 1, 10, hour, 0, 0, 0, time.UTC)
		s.True(valid[TimeOfDayAt(t)], "hour %d must map to a known bucket", hour)
	}
}

func (s *ContextSuite) TestSeasonAt_TotalOverAllMonths() {
	valid := map[Season]bool{
		SeasonWinter: true, SeasonSpring: true, SeasonSummer: true, SeasonAutumn: true,
	}
	for month := time.January; month <= time.December; month++ {
		t := time.Date(2025, month, 10, 0, 0, 0, 0, time.UTC)
		s.True(valid[SeasonAt(t)], "month %s must map to a known bucket", month)
	}
}

// TrainingRecordSuite is a test suite for TrainingRecord.
type TrainingRecordSuite struct {
	suite.Suite
	now time.Time
}

func (s *TrainingRecordSuite) SetupTest() {
	s.now = time.Date(2025, time.June, 15, 14, 0, 0, 0, time.UTC)
}

func TestTrainingRecordSuite(t *testing.T) {
	suite.Run(t, new(TrainingRecordSuite))
}

func (s *TrainingRecordSuite) TestNewTrainingRecord_DerivesContextAtCreation() {
	post := &Post{ID: "p1", Type: PostTypeAccident, Photo: "photo.jpg", Description: "pileup near the bridge"}

	record := NewTrainingRecord(post, DecisionApprove, 0.9, s.now)

	s.NotEmpty(record.ID)
	s.Equal("p1", record.PostID)
	s.Equal(PostTypeAccident, record.PostType)
	s.True(record.HasPhoto)
	s.Equal(TimeDay, record.TimeOfDay)
	s.Equal(SeasonSummer, record.Season)
	s.Equal(s.now.UnixMilli(), record.CreatedAtEpoch)
	s.False(record.Labeled())
}

func (s *TrainingRecordSuite) TestNewTrainingRecord_TruncatesDescription() {
	post := &Post{ID: "p1", Type: PostTypeOther, Description: strings.Repeat("x", 500)}

	record := NewTrainingRecord(post, DecisionReject, 0.4, s.now)

	s.Len(record.DescriptionExcerpt, ExcerptLength)
}

func (s *TrainingRecordSuite) TestNewTrainingRecord_TruncatesOnRuneBoundary() {
	// Offset by one byte so the cut point lands mid-rune in the Cyrillic text
	post := &Post{ID: "p1", Type: PostTypeOther, Description: "x" + strings.Repeat("ж", 300)}

	record := NewTrainingRecord(post, DecisionReject, 0.4, s.now)

	s.True(utf8.ValidString(record.DescriptionExcerpt))
	s.LessOrEqual(len(record.DescriptionExcerpt), ExcerptLength)
	s.Len(record.DescriptionExcerpt, ExcerptLength-1)
}

func (s *TrainingRecordSuite) TestNewTrainingRecord_UniqueIDs() {
	post := &Post{ID: "p1", Type: PostTypeDPS}

	a := NewTrainingRecord(post, DecisionApprove, 0.5, s.now)
	b := NewTrainingRecord(post, DecisionApprove, 0.5, s.now)

	s.NotEqual(a.ID, b.ID)
}

func (s *TrainingRecordSuite) TestCorrectAgainst_AgreementRule() {
	approve := &TrainingRecord{AIDecision: DecisionApprove}
	reject := &TrainingRecord{AIDecision: DecisionReject}

	s.True(approve.CorrectAgainst(ModeratorApproved))
	s.False(approve.CorrectAgainst(ModeratorRejected))
	s.True(reject.CorrectAgainst(ModeratorRejected))
	s.False(reject.CorrectAgainst(ModeratorApproved))
}
