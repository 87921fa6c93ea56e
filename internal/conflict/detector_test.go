package conflict

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func existingItem(id string, days []Weekday, start, end string) ScheduleItem {
	s, _ := ParseClock(start)
	e, _ := ParseClock(end)
	return ScheduleItem{
		ID:           id,
		Label:        "Existing " + id,
		BusinessID:   "biz-1",
		BusinessName: "Apex Academy",
		ScheduleDays: days,
		StartMinutes: s,
		EndMinutes:   e,
		Source:       SourceEnrollment,
	}
}

func candidate(days []Weekday, start, end string) Candidate {
	return Candidate{
		Label:        "Physics - Evening",
		BusinessID:   "biz-1",
		BusinessName: "Apex Academy",
		ScheduleDays: days,
		StartTime:    start,
		EndTime:      end,
	}
}

var mwf = []Weekday{Monday, Wednesday, Friday}

func TestDetectPartialOverlap(t *testing.T) {
	res := Detect(candidate(mwf, "16:00", "18:00"), []ScheduleItem{existingItem("e1", mwf, "17:00", "19:00")})

	require.True(t, res.HasConflict)
	require.Len(t, res.Conflicts, 1)
	got := res.Conflicts[0]
	assert.Equal(t, ConflictTimeOverlap, got.Type)
	assert.Equal(t, mwf, got.OverlapDays)
	assert.Equal(t, 60, got.OverlapMinutes)
	require.NotNil(t, got.OverlapWindow)
	assert.Equal(t, 1020, got.OverlapWindow.StartMinutes)
	assert.Equal(t, 1080, got.OverlapWindow.EndMinutes)
	assert.Equal(t, "5:00 PM - 6:00 PM", got.OverlapWindow.Label)
	assert.Equal(t,
		"Physics - Evening (4:00 PM - 6:00 PM) overlaps with Existing e1 (5:00 PM - 7:00 PM) on Monday, Wednesday and Friday from 5:00 PM - 6:00 PM, clashing for 1 hour.",
		got.Message,
	)
	assert.Empty(t, res.InfoMessages)
}

func TestDetectDisjointDaysDifferentSubjects(t *testing.T) {
	c := candidate([]Weekday{Tuesday, Thursday}, "09:00", "10:00")
	c.SubjectID = "chem"
	e := existingItem("e1", mwf, "09:00", "10:00")
	e.SubjectID = "math"

	res := Detect(c, []ScheduleItem{e})

	assert.False(t, res.HasConflict)
	assert.Empty(t, res.Conflicts)
	assert.Empty(t, res.InfoMessages)
}

func TestDetectBackToBackSameBusiness(t *testing.T) {
	res := Detect(
		candidate([]Weekday{Monday}, "18:00", "19:00"),
		[]ScheduleItem{existingItem("e1", []Weekday{Monday}, "17:00", "18:00")},
	)

	assert.False(t, res.HasConflict)
	assert.Empty(t, res.Conflicts)
	require.Len(t, res.InfoMessages, 1)
	assert.Equal(t,
		"Consecutive classes at Apex Academy on Monday: Existing e1 (5:00 PM - 6:00 PM) followed by Physics - Evening (6:00 PM - 7:00 PM).",
		res.InfoMessages[0],
	)
}

func TestDetectBackToBackDifferentBusinessWarnsAboutTravel(t *testing.T) {
	e := existingItem("e1", []Weekday{Monday, Tuesday}, "19:00", "20:00")
	e.BusinessID = "biz-2"
	e.BusinessName = "Zenith Tutors"

	res := Detect(candidate([]Weekday{Monday}, "18:00", "19:00"), []ScheduleItem{e})

	assert.False(t, res.HasConflict)
	require.Len(t, res.InfoMessages, 1)
	assert.Equal(t,
		"Back-to-back at different locations on Monday: Physics - Evening at Apex Academy ends at 7:00 PM and Existing e1 at Zenith Tutors starts right away. Allow time to travel.",
		res.InfoMessages[0],
	)
}

func TestDetectSeparatedSlotsAreSilent(t *testing.T) {
	res := Detect(
		candidate([]Weekday{Monday}, "18:00", "19:00"),
		[]ScheduleItem{existingItem("e1", []Weekday{Monday}, "16:00", "17:30")},
	)
	assert.False(t, res.HasConflict)
	assert.Empty(t, res.InfoMessages)
}

func TestDetectDuplicateBatchDominates(t *testing.T) {
	c := candidate([]Weekday{Monday}, "18:00", "19:00")
	c.BatchID = "b1"
	c.SubjectID = "phy"
	cartItem := existingItem("c9", []Weekday{Monday}, "18:00", "19:00")
	cartItem.BatchID = "b1"
	cartItem.SubjectID = "phy"
	cartItem.Source = SourceCart

	res := Detect(c, []ScheduleItem{cartItem})

	require.True(t, res.HasConflict)
	require.Len(t, res.Conflicts, 1)
	assert.Equal(t, ConflictDuplicateBatch, res.Conflicts[0].Type)
	assert.Equal(t, "Existing c9 is already in your cart.", res.Conflicts[0].Message)
	assert.Empty(t, res.InfoMessages)
}

func TestDetectDuplicateBatchIgnoresTimes(t *testing.T) {
	c := candidate([]Weekday{Sunday}, "06:00", "07:00")
	c.BatchID = "b1"
	enrolled := existingItem("p1", []Weekday{Monday}, "18:00", "19:00")
	enrolled.BatchID = "b1"

	res := Detect(c, []ScheduleItem{enrolled})

	require.Len(t, res.Conflicts, 1)
	assert.Equal(t, ConflictDuplicateBatch, res.Conflicts[0].Type)
	assert.Equal(t, "You are already enrolled in Existing p1.", res.Conflicts[0].Message)
}

func TestDetectSameSubjectSameCenter(t *testing.T) {
	c := candidate([]Weekday{Saturday}, "10:00", "11:00")
	c.SubjectID = "phy"
	c.SubjectName = "Physics"
	e := existingItem("p1", mwf, "17:00", "18:00")
	e.SubjectID = "phy"

	res := Detect(c, []ScheduleItem{e})

	require.Len(t, res.Conflicts, 1)
	assert.Equal(t, ConflictSameSubjectSameCenter, res.Conflicts[0].Type)
	assert.Equal(t,
		"You already have a Physics batch at Apex Academy (Existing p1, enrolled). Contact the center to switch batches.",
		res.Conflicts[0].Message,
	)
}

func TestDetectSameSubjectOtherCenterOnOtherDaysIsInfo(t *testing.T) {
	c := candidate([]Weekday{Saturday}, "10:00", "11:00")
	c.SubjectID = "phy"
	c.SubjectName = "Physics"
	e := existingItem("p1", mwf, "10:00", "11:00")
	e.SubjectID = "phy"
	e.BusinessID = "biz-2"
	e.BusinessName = "Zenith Tutors"

	res := Detect(c, []ScheduleItem{e})

	assert.False(t, res.HasConflict)
	assert.Equal(t, []string{"You will be taking Physics at both Apex Academy and Zenith Tutors."}, res.InfoMessages)
}

func TestDetectSameSubjectOtherCenterSharedDayOverlapBlocks(t *testing.T) {
	c := candidate([]Weekday{Monday}, "10:00", "11:00")
	c.SubjectID = "phy"
	e := existingItem("p1", mwf, "10:30", "11:30")
	e.SubjectID = "phy"
	e.BusinessID = "biz-2"

	res := Detect(c, []ScheduleItem{e})

	require.Len(t, res.Conflicts, 1)
	assert.Equal(t, ConflictTimeOverlap, res.Conflicts[0].Type)
	assert.Empty(t, res.InfoMessages)
}

func TestDetectOverlapShapes(t *testing.T) {
	cases := []struct {
		name       string
		start, end string
		want       string
	}{
		{"exact", "17:00", "19:00", "Physics - Evening runs at exactly the same time as Existing e1 (5:00 PM - 7:00 PM) on Monday, clashing for 2 hours."},
		{"inside", "17:30", "18:00", "Physics - Evening (5:30 PM - 6:00 PM) falls entirely within Existing e1 (5:00 PM - 7:00 PM) on Monday, clashing for 30 minutes."},
		{"covers", "16:00", "20:00", "Physics - Evening (4:00 PM - 8:00 PM) completely covers Existing e1 (5:00 PM - 7:00 PM) on Monday, clashing for 2 hours."},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res := Detect(
				candidate([]Weekday{Monday}, tc.start, tc.end),
				[]ScheduleItem{existingItem("e1", []Weekday{Monday}, "17:00", "19:00")},
			)
			require.Len(t, res.Conflicts, 1)
			assert.Equal(t, tc.want, res.Conflicts[0].Message)
		})
	}
}

func TestDetectReportsEveryConflict(t *testing.T) {
	c := candidate(mwf, "09:00", "12:00")
	c.BatchID = "b1"
	dup := existingItem("e1", []Weekday{Sunday}, "06:00", "07:00")
	dup.BatchID = "b1"
	overlapA := existingItem("e2", []Weekday{Monday}, "10:00", "11:00")
	overlapB := existingItem("e3", []Weekday{Friday}, "11:30", "13:00")
	adjacent := existingItem("e4", []Weekday{Wednesday}, "12:00", "13:00")

	res := Detect(c, []ScheduleItem{dup, overlapA, adjacent, overlapB})

	require.Len(t, res.Conflicts, 3)
	assert.Equal(t, "e1", res.Conflicts[0].Existing.ID)
	assert.Equal(t, "e2", res.Conflicts[1].Existing.ID)
	assert.Equal(t, "e3", res.Conflicts[2].Existing.ID)
	assert.Len(t, res.InfoMessages, 1)
}

func TestDetectNoDayOverlapNeverTimeConflict(t *testing.T) {
	weekend := []Weekday{Saturday, Sunday}
	for _, slot := range [][2]string{{"00:00", "23:59"}, {"09:00", "10:00"}, {"17:00", "19:00"}} {
		res := Detect(candidate(weekend, slot[0], slot[1]), []ScheduleItem{existingItem("e1", mwf, "09:00", "19:00")})
		for _, c := range res.Conflicts {
			assert.NotEqual(t, ConflictTimeOverlap, c.Type)
		}
	}
}

func TestDetectIsDeterministic(t *testing.T) {
	c := candidate(mwf, "16:00", "18:00")
	existing := []ScheduleItem{
		existingItem("e1", mwf, "17:00", "19:00"),
		existingItem("e2", []Weekday{Monday}, "18:00", "19:00"),
	}
	assert.Equal(t, Detect(c, existing), Detect(c, existing))
}

func TestDetectDefaultCandidateLabel(t *testing.T) {
	c := candidate([]Weekday{Monday}, "17:00", "19:00")
	c.Label = ""
	res := Detect(c, []ScheduleItem{existingItem("e1", []Weekday{Monday}, "17:00", "19:00")})
	require.Len(t, res.Conflicts, 1)
	assert.Contains(t, res.Conflicts[0].Message, "This batch runs at exactly")
}

func TestClassifyKinds(t *testing.T) {
	e := existingItem("e1", []Weekday{Monday}, "17:00", "18:00")
	cases := map[string]relationKind{
		"18:00-19:00": relationAdjacent,
		"16:00-17:00": relationAdjacent,
		"19:00-20:00": relationSeparated,
		"17:30-18:30": relationOverlap,
	}
	for slotText, want := range cases {
		start, end, ok := ParseSlot(slotText)
		require.True(t, ok)
		c := slot{Candidate: candidate([]Weekday{Monday}, "", ""), start: start, end: end}
		assert.Equal(t, want.String(), classify(c, e).kind.String(), slotText)
	}
}

func TestDetectMessagesWithoutNames(t *testing.T) {
	t.Run("other center on other days", func(t *testing.T) {
		c := candidate([]Weekday{Saturday}, "10:00", "11:00")
		c.Label = ""
		c.SubjectID = "phy"
		c.BusinessName = "B1"
		e := existingItem("p1", mwf, "10:00", "11:00")
		e.Label = ""
		e.SubjectID = "phy"
		e.BusinessID = "biz-2"
		e.BusinessName = "B2"

		res := Detect(c, []ScheduleItem{e})

		assert.Equal(t, []string{"You will be taking this subject at both B1 and B2."}, res.InfoMessages)
	})

	t.Run("overlap", func(t *testing.T) {
		c := candidate([]Weekday{Wednesday}, "10:00", "11:00")
		c.Label = ""
		e := existingItem("e1", []Weekday{Wednesday}, "10:30", "11:30")
		e.Label = ""

		res := Detect(c, []ScheduleItem{e})

		require.Len(t, res.Conflicts, 1)
		assert.Equal(t,
			"This batch (10:00 AM - 11:00 AM) overlaps with another class (10:30 AM - 11:30 AM) on Wednesday from 10:30 AM - 11:00 AM, clashing for 30 minutes.",
			res.Conflicts[0].Message,
		)
	})

	t.Run("adjacent", func(t *testing.T) {
		c := candidate([]Weekday{Monday}, "11:00", "12:00")
		c.Label = ""
		e := existingItem("e1", []Weekday{Monday}, "10:00", "11:00")
		e.Label = "  "

		res := Detect(c, []ScheduleItem{e})

		require.Len(t, res.InfoMessages, 1)
		assert.Contains(t, res.InfoMessages[0], "another class (10:00 AM - 11:00 AM) followed by This batch (11:00 AM - 12:00 PM)")
		assert.NotContains(t, res.InfoMessages[0], "  ")
	})

	t.Run("duplicate", func(t *testing.T) {
		c := candidate([]Weekday{Monday}, "10:00", "11:00")
		c.BatchID = "b1"
		e := existingItem("e1", []Weekday{Monday}, "10:00", "11:00")
		e.BatchID = "b1"
		e.Label = ""

		res := Detect(c, []ScheduleItem{e})

		require.Len(t, res.Conflicts, 1)
		assert.Equal(t, "You are already enrolled in another class.", res.Conflicts[0].Message)
	})
}
