package services

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/terraincognita07/kalender/internal/models"
)

func TestToggleDayMergesIntervalsAcrossBridgingDay(t *testing.T) {
	intervals := []models.CycleInterval{
		makeInterval("a", "2024-01-01", "2024-01-03"),
		makeInterval("b", "2024-01-05", "2024-01-07"),
	}

	got := ToggleDay(intervals, mustParseDay("2024-01-04"), models.MidIntervalRemove, sequentialIDs())
	if spans := intervalSpans(got); spans != "2024-01-01..2024-01-07" {
		t.Fatalf("expected merged interval, got %s", spans)
	}
	if got[0].ID != "a" {
		t.Fatalf("expected merged interval to keep id a, got %q", got[0].ID)
	}
}

func TestToggleDayRemovesSingleDayInterval(t *testing.T) {
	intervals := []models.CycleInterval{makeInterval("a", "2024-01-10", "2024-01-10")}

	got := ToggleDay(intervals, mustParseDay("2024-01-10"), models.MidIntervalRemove, sequentialIDs())
	if len(got) != 0 {
		t.Fatalf("expected empty list, got %s", intervalSpans(got))
	}
}

func TestToggleDayRemovesOpenEndedSingleDayInterval(t *testing.T) {
	intervals := []models.CycleInterval{{ID: "a", StartDate: mustParseDay("2024-01-10")}}

	got := ToggleDay(intervals, mustParseDay("2024-01-10"), models.MidIntervalRemove, sequentialIDs())
	if len(got) != 0 {
		t.Fatalf("expected empty list, got %s", intervalSpans(got))
	}
}

func TestToggleDayShrinksIntervalEdges(t *testing.T) {
	original := []models.CycleInterval{makeInterval("a", "2024-01-10", "2024-01-15")}

	fromStart := ToggleDay(original, mustParseDay("2024-01-10"), models.MidIntervalRemove, sequentialIDs())
	if spans := intervalSpans(fromStart); spans != "2024-01-11..2024-01-15" {
		t.Fatalf("expected start shrink, got %s", spans)
	}

	fromEnd := ToggleDay(original, mustParseDay("2024-01-15"), models.MidIntervalRemove, sequentialIDs())
	if spans := intervalSpans(fromEnd); spans != "2024-01-10..2024-01-14" {
		t.Fatalf("expected end shrink, got %s", spans)
	}

	if spans := intervalSpans(original); spans != "2024-01-10..2024-01-15" {
		t.Fatalf("expected input to stay untouched, got %s", spans)
	}
}

func TestToggleDayInsideIntervalRemovesWholeIntervalByDefault(t *testing.T) {
	intervals := []models.CycleInterval{
		makeInterval("a", "2024-01-10", "2024-01-15"),
		makeInterval("b", "2024-02-07", "2024-02-11"),
	}

	got := ToggleDay(intervals, mustParseDay("2024-01-12"), models.MidIntervalRemove, sequentialIDs())
	if spans := intervalSpans(got); spans != "2024-02-07..2024-02-11" {
		t.Fatalf("expected the whole interval to be dropped, got %s", spans)
	}
}

func TestToggleDayInsideIntervalSplitsWithSplitPolicy(t *testing.T) {
	intervals := []models.CycleInterval{makeInterval("a", "2024-01-10", "2024-01-15")}

	got := ToggleDay(intervals, mustParseDay("2024-01-12"), models.MidIntervalSplit, sequentialIDs())
	if spans := intervalSpans(got); spans != "2024-01-10..2024-01-11,2024-01-13..2024-01-15" {
		t.Fatalf("expected split intervals, got %s", spans)
	}
	if got[0].ID != "a" || got[1].ID != "id-1" {
		t.Fatalf("expected ids a and id-1, got %q and %q", got[0].ID, got[1].ID)
	}
}

func TestToggleDayExtendsNeighbours(t *testing.T) {
	intervals := []models.CycleInterval{
		makeInterval("a", "2024-01-01", "2024-01-03"),
		{ID: "b", StartDate: mustParseDay("2024-01-20")},
	}

	forward := ToggleDay(intervals, mustParseDay("2024-01-04"), models.MidIntervalRemove, sequentialIDs())
	if spans := intervalSpans(forward); spans != "2024-01-01..2024-01-04,2024-01-20..2024-01-20" {
		t.Fatalf("expected forward extension, got %s", spans)
	}

	backward := ToggleDay(intervals, mustParseDay("2024-01-19"), models.MidIntervalRemove, sequentialIDs())
	if spans := intervalSpans(backward); spans != "2024-01-01..2024-01-03,2024-01-19..2024-01-20" {
		t.Fatalf("expected backward extension of open-ended interval, got %s", spans)
	}
	if backward[1].ID != "b" {
		t.Fatalf("expected extended interval to keep id b, got %q", backward[1].ID)
	}
}

func TestToggleDayCreatesNewIntervalWithFreshID(t *testing.T) {
	intervals := []models.CycleInterval{makeInterval("a", "2024-01-01", "2024-01-03")}

	got := ToggleDay(intervals, mustParseDay("2023-12-20"), models.MidIntervalRemove, sequentialIDs())
	if spans := intervalSpans(got); spans != "2023-12-20..2023-12-20,2024-01-01..2024-01-03" {
		t.Fatalf("expected new sorted interval, got %s", spans)
	}
	if got[0].ID != "id-1" {
		t.Fatalf("expected generated id id-1, got %q", got[0].ID)
	}
	if got[0].EndDate == nil {
		t.Fatal("expected new interval to carry an explicit end date")
	}
}

func TestToggleDayNormalizesTimeOfDay(t *testing.T) {
	location, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}

	day := time.Date(2024, time.January, 10, 23, 30, 0, 0, location)
	got := ToggleDay(nil, day, models.MidIntervalRemove, sequentialIDs())
	if spans := intervalSpans(got); spans != "2024-01-10..2024-01-10" {
		t.Fatalf("expected calendar day of the input, got %s", spans)
	}
}

func TestToggleDayRoundTripWithSplitPolicy(t *testing.T) {
	original := roundTripFixture()
	want := intervalSpans(original)

	for day := mustParseDay("2023-12-28"); !day.After(mustParseDay("2024-01-24")); day = AddDays(day, 1) {
		once := ToggleDay(original, day, models.MidIntervalSplit, sequentialIDs())
		twice := ToggleDay(once, day, models.MidIntervalSplit, sequentialIDs())
		if got := intervalSpans(twice); got != want {
			t.Fatalf("toggling %s twice: expected %s, got %s", FormatDay(day), want, got)
		}
	}
}

func TestToggleDayRoundTripWithRemovePolicy(t *testing.T) {
	original := roundTripFixture()
	want := intervalSpans(original)
	lossy := map[string]bool{
		"2024-01-02": true, "2024-01-04": true, "2024-01-06": true,
		"2024-01-16": true, "2024-01-17": true, "2024-01-18": true, "2024-01-19": true,
	}

	for day := mustParseDay("2023-12-28"); !day.After(mustParseDay("2024-01-24")); day = AddDays(day, 1) {
		once := ToggleDay(original, day, models.MidIntervalRemove, sequentialIDs())
		twice := ToggleDay(once, day, models.MidIntervalRemove, sequentialIDs())
		got := intervalSpans(twice)
		if lossy[FormatDay(day)] {
			if got == want {
				t.Fatalf("expected toggling interior day %s twice to lose data", FormatDay(day))
			}
			continue
		}
		if got != want {
			t.Fatalf("toggling %s twice: expected %s, got %s", FormatDay(day), want, got)
		}
	}
}

func TestToggleDayKeepsInvariantsUnderRandomSequences(t *testing.T) {
	for _, policy := range []string{models.MidIntervalRemove, models.MidIntervalSplit} {
		random := rand.New(rand.NewSource(42))
		store := NewIntervalStore(nil, WithMidIntervalPolicy(policy), WithIntervalIDFunc(sequentialIDs()))
		origin := mustParseDay("2024-01-01")

		for step := 0; step < 500; step++ {
			day := AddDays(origin, random.Intn(60))
			store = store.Toggle(day)
			if err := CheckIntervalInvariants(store.Intervals()); err != nil {
				t.Fatalf("policy %s step %d toggling %s: %v (%s)", policy, step, FormatDay(day), err, intervalSpans(store.Intervals()))
			}
		}
	}
}

func TestIntervalStoreToggleLeavesReceiverUntouched(t *testing.T) {
	store := NewIntervalStore([]models.CycleInterval{makeInterval("a", "2024-01-01", "2024-01-03")})
	next := store.Toggle(mustParseDay("2024-01-04"))

	if spans := intervalSpans(store.Intervals()); spans != "2024-01-01..2024-01-03" {
		t.Fatalf("expected original store unchanged, got %s", spans)
	}
	if spans := intervalSpans(next.Intervals()); spans != "2024-01-01..2024-01-04" {
		t.Fatalf("expected toggled store, got %s", spans)
	}

	copied := next.Intervals()
	copied[0].StartDate = mustParseDay("2020-01-01")
	if spans := intervalSpans(next.Intervals()); spans != "2024-01-01..2024-01-04" {
		t.Fatalf("expected Intervals to return a copy, got %s", spans)
	}
}

func TestCheckIntervalInvariants(t *testing.T) {
	overlapping := []models.CycleInterval{
		makeInterval("a", "2024-01-01", "2024-01-05"),
		makeInterval("b", "2024-01-05", "2024-01-07"),
	}
	if err := CheckIntervalInvariants(overlapping); !errors.Is(err, ErrIntervalsOverlap) {
		t.Fatalf("expected ErrIntervalsOverlap, got %v", err)
	}

	adjacent := []models.CycleInterval{
		makeInterval("b", "2024-01-06", "2024-01-07"),
		makeInterval("a", "2024-01-01", "2024-01-05"),
	}
	if err := CheckIntervalInvariants(adjacent); !errors.Is(err, ErrIntervalsAdjacent) {
		t.Fatalf("expected ErrIntervalsAdjacent, got %v", err)
	}

	reversed := []models.CycleInterval{makeInterval("a", "2024-01-05", "2024-01-01")}
	if err := CheckIntervalInvariants(reversed); !errors.Is(err, ErrIntervalEndBeforeStart) {
		t.Fatalf("expected ErrIntervalEndBeforeStart, got %v", err)
	}

	if err := CheckIntervalInvariants(roundTripFixture()); err != nil {
		t.Fatalf("expected valid fixture, got %v", err)
	}
}

func roundTripFixture() []models.CycleInterval {
	return []models.CycleInterval{
		makeInterval("a", "2024-01-01", "2024-01-03"),
		makeInterval("b", "2024-01-05", "2024-01-07"),
		{ID: "c", StartDate: mustParseDay("2024-01-10")},
		makeInterval("d", "2024-01-15", "2024-01-20"),
	}
}

func makeInterval(id string, start string, end string) models.CycleInterval {
	endDay := mustParseDay(end)
	return models.CycleInterval{
		ID:        id,
		StartDate: mustParseDay(start),
		EndDate:   &endDay,
	}
}

func intervalSpans(intervals []models.CycleInterval) string {
	spans := make([]string, 0, len(intervals))
	for _, interval := range sortIntervals(cloneIntervals(intervals)) {
		spans = append(spans, FormatDay(interval.StartDate)+".."+FormatDay(interval.EffectiveEnd()))
	}
	return strings.Join(spans, ",")
}

func sequentialIDs() IntervalIDFunc {
	next := 0
	return func() string {
		next++
		return fmt.Sprintf("id-%d", next)
	}
}

func mustParseDay(raw string) time.Time {
	parsed, err := ParseDay(raw)
	if err != nil {
		panic(err)
	}
	return parsed
}
