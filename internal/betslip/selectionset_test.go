package betslip

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/betbot/sportsbook/internal/domain"
)

func makeSelection(outcomeID int64, odds string) Selection {
	var price *decimal.Decimal
	if odds != "" {
		d := decimal.RequireFromString(odds)
		price = &d
	}
	return Selection{
		OutcomeID: outcomeID,
		Event:     domain.Event{ID: outcomeID * 100, TeamA: "Home", TeamB: "Away"},
		Market:    domain.Market{ID: outcomeID * 10, Name: "Match Winner"},
		Outcome: domain.Outcome{
			ID:          outcomeID,
			Name:        "Home Win",
			CurrentOdds: price,
			Active:      true,
		},
	}
}

func TestSelectionSetAdd(t *testing.T) {
	t.Run("adding the same outcome twice keeps one entry", func(t *testing.T) {
		var set SelectionSet
		if !set.Add(makeSelection(1, "1.50")) {
			t.Fatal("first add should succeed")
		}
		if set.Add(makeSelection(1, "1.60")) {
			t.Error("duplicate add should be rejected")
		}
		if set.Len() != 1 {
			t.Errorf("len = %d, want 1", set.Len())
		}
	})

	t.Run("insertion order is preserved", func(t *testing.T) {
		var set SelectionSet
		set.Add(makeSelection(3, "2.00"))
		set.Add(makeSelection(1, "1.50"))
		set.Add(makeSelection(2, "1.80"))

		got := set.OutcomeIDs()
		want := []int64{3, 1, 2}
		if len(got) != len(want) {
			t.Fatalf("ids = %v, want %v", got, want)
		}
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("ids[%d] = %d, want %d", i, got[i], want[i])
			}
		}
	})
}

func TestSelectionSetRemove(t *testing.T) {
	var set SelectionSet
	set.Add(makeSelection(1, "1.50"))
	set.Add(makeSelection(2, "2.00"))

	if !set.Remove(1) {
		t.Error("removing a present outcome should report true")
	}
	if set.Remove(1) {
		t.Error("removing an absent outcome should report false")
	}
	if set.Contains(1) {
		t.Error("outcome 1 should be gone")
	}
	if !set.Contains(2) {
		t.Error("outcome 2 should survive")
	}
}

func TestSelectionSetClear(t *testing.T) {
	var set SelectionSet
	set.Add(makeSelection(1, "1.50"))
	set.Add(makeSelection(2, "2.00"))
	set.Clear()
	if set.Len() != 0 {
		t.Errorf("len after clear = %d, want 0", set.Len())
	}
}

func TestSelectionSetSelectionsReturnsCopy(t *testing.T) {
	var set SelectionSet
	set.Add(makeSelection(1, "1.50"))

	sels := set.Selections()
	sels[0].OutcomeID = 99
	if !set.Contains(1) || set.Contains(99) {
		t.Error("mutating the returned slice must not affect the set")
	}
}
