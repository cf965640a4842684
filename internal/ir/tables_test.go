package ir

import "testing"

func TestPowerTable(t *testing.T) {
	if tbl, ok := PowerTable("on"); !ok || tbl.Name != "power_on" {
		t.Errorf("PowerTable(on) = %q, %v", tbl.Name, ok)
	}
	if tbl, ok := PowerTable("off"); !ok || tbl.Name != "power_off" {
		t.Errorf("PowerTable(off) = %q, %v", tbl.Name, ok)
	}
	if _, ok := PowerTable("standby"); ok {
		t.Error("PowerTable(standby) should be rejected")
	}
}

func TestModeTable(t *testing.T) {
	for arg, want := range map[string]string{
		"cooling": "mode_cooling",
		"super":   "mode_super",
		"quiet":   "mode_quiet",
	} {
		if tbl, ok := ModeTable(arg); !ok || tbl.Name != want {
			t.Errorf("ModeTable(%s) = %q, %v, want %q", arg, tbl.Name, ok, want)
		}
	}
	if _, ok := ModeTable("heat"); ok {
		t.Error("ModeTable(heat) should be rejected")
	}
}

func TestTempTableSecondCharacter(t *testing.T) {
	cases := map[string]string{
		"16": "temp16",
		"17": "temp17",
		"19": "temp19",
		"20": "temp20",
		"21": "temp21",
		"25": "temp25",
		// Only the second character is consulted.
		"t7": "temp17",
		"t0": "temp20",
	}
	for arg, want := range cases {
		tbl, ok := TempTable(arg)
		if !ok || tbl.Name != want {
			t.Errorf("TempTable(%s) = %q, %v, want %q", arg, tbl.Name, ok, want)
		}
	}
}

func TestTempTableRejectsOutOfRange(t *testing.T) {
	for _, arg := range []string{"", "1", "tx", "t-", "2b", "high"} {
		if _, ok := TempTable(arg); ok {
			t.Errorf("TempTable(%q) should be rejected", arg)
		}
	}
}

func TestTablesShareFrameShape(t *testing.T) {
	// Header pair + 32 bit pairs + stop mark.
	const wantPulses = 2 + 32*2 + 1
	all := []Table{TurnOn, TurnOff, ModeCooling, ModeSuper, ModeQuiet}
	all = append(all, tempTables[:]...)
	for _, tbl := range all {
		if len(tbl.Pulses) != wantPulses {
			t.Errorf("%s: %d pulses, want %d", tbl.Name, len(tbl.Pulses), wantPulses)
		}
		if tbl.Pulses[0] != headerMark || tbl.Pulses[1] != headerSpace {
			t.Errorf("%s: missing header", tbl.Name)
		}
	}
}
