package models

import (
	"testing"
)

// TestCounterFieldColumns verifies every counter maps to a non-empty,
// unique column name.
func TestCounterFieldColumns(t *testing.T) {
	seen := make(map[string]CounterField)
	for _, f := range AllCounterFields {
		col := f.Column()
		if col == "" {
			t.Errorf("counter %d has no column", int(f))
			continue
		}
		if prev, dup := seen[col]; dup {
			t.Errorf("column %q mapped by both %d and %d", col, int(prev), int(f))
		}
		seen[col] = f
	}
	if len(seen) != len(AllCounterFields) {
		t.Errorf("expected %d distinct columns, got %d", len(AllCounterFields), len(seen))
	}
}

// TestCounterFieldOutOfRange verifies an invalid value maps to "".
func TestCounterFieldOutOfRange(t *testing.T) {
	if got := CounterField(-1).Column(); got != "" {
		t.Errorf("CounterField(-1).Column() = %q, want empty", got)
	}
	if got := CounterField(1000).Column(); got != "" {
		t.Errorf("CounterField(1000).Column() = %q, want empty", got)
	}
}

// TestKillFieldColumns verifies the kill counter column mapping.
func TestKillFieldColumns(t *testing.T) {
	tests := []struct {
		field   KillField
		col     string
		dateCol string
	}{
		{KillKilled, "killed_count", "date_last_killed"},
		{KillSlaughtered, "slaughtered_count", "date_last_slaughtered"},
		{KillVanquished, "vanquished_count", "date_last_vanquished"},
		{KillDispatched, "dispatched_count", "date_last_dispatched"},
		{KillAssistedKill, "assisted_kill_count", ""},
		{KillAssistedSlaughter, "assisted_slaughter_count", ""},
		{KillAssistedVanquish, "assisted_vanquish_count", ""},
		{KillAssistedDispatch, "assisted_dispatch_count", ""},
		{KillKilledBy, "killed_by_count", ""},
	}

	for _, tt := range tests {
		if got := tt.field.Column(); got != tt.col {
			t.Errorf("Column(%d) = %q, want %q", int(tt.field), got, tt.col)
		}
		if got := tt.field.DateColumn(); got != tt.dateCol {
			t.Errorf("DateColumn(%d) = %q, want %q", int(tt.field), got, tt.dateCol)
		}
	}
}

// TestKillScore verifies the highest-value-kill metric: solo kills
// times creature value, assisted kills excluded.
func TestKillScore(t *testing.T) {
	rat := Kill{CreatureName: "Rat", KilledCount: 10, CreatureValue: 2}
	vermine := Kill{CreatureName: "Vermine", KilledCount: 3, CreatureValue: 5}

	if rat.Score() != 20 {
		t.Errorf("Rat score = %d, want 20", rat.Score())
	}
	if vermine.Score() != 15 {
		t.Errorf("Vermine score = %d, want 15", vermine.Score())
	}
	if rat.Score() <= vermine.Score() {
		t.Error("Rat (10 kills x 2) should outscore Vermine (3 kills x 5)")
	}
}

// TestKillTotals checks solo/assisted counter sums.
func TestKillTotals(t *testing.T) {
	k := Kill{
		KilledCount:       1,
		SlaughteredCount:  2,
		VanquishedCount:   3,
		DispatchedCount:   4,
		AssistedKillCount: 5,
	}
	if k.SoloTotal() != 10 {
		t.Errorf("SoloTotal = %d, want 10", k.SoloTotal())
	}
	if k.AssistedTotal() != 5 {
		t.Errorf("AssistedTotal = %d, want 5", k.AssistedTotal())
	}
	if k.Total() != 15 {
		t.Errorf("Total = %d, want 15", k.Total())
	}
}

// TestTrainerTotalRanks verifies effective rank arithmetic.
func TestTrainerTotalRanks(t *testing.T) {
	tr := Trainer{Ranks: 50, ModifiedRanks: 25, ApplyLearningRanks: 10}
	if tr.TotalRanks() != 85 {
		t.Errorf("TotalRanks = %d, want 85", tr.TotalRanks())
	}
}

// TestLastyTypeFromKeyword verifies study keyword mapping.
func TestLastyTypeFromKeyword(t *testing.T) {
	tests := []struct {
		keyword string
		want    LastyType
	}{
		{"ways", LastyBefriend},
		{"movements", LastyMovements},
		{"essence", LastyMorph},
		{"nonsense", ""},
		{"", ""},
	}
	for _, tt := range tests {
		if got := LastyTypeFromKeyword(tt.keyword); got != tt.want {
			t.Errorf("LastyTypeFromKeyword(%q) = %q, want %q", tt.keyword, got, tt.want)
		}
	}
}

// TestCharacterIsMerged verifies the merge pointer check.
func TestCharacterIsMerged(t *testing.T) {
	var c Character
	if c.IsMerged() {
		t.Error("fresh character should not be merged")
	}
	target := UUID("f47ac10b-58cc-4372-a567-0e02b2c3d479")
	c.MergedInto = &target
	if !c.IsMerged() {
		t.Error("character with merged_into set should report merged")
	}
}

// TestUUIDScan verifies sql.Scanner accepts the driver value types.
func TestUUIDScan(t *testing.T) {
	var u UUID
	if err := u.Scan("abc"); err != nil || u != "abc" {
		t.Errorf("Scan(string) = %v, %q", err, u)
	}
	if err := u.Scan([]byte("def")); err != nil || u != "def" {
		t.Errorf("Scan([]byte) = %v, %q", err, u)
	}
	if err := u.Scan(nil); err != nil || u != "" {
		t.Errorf("Scan(nil) = %v, %q", err, u)
	}
}
