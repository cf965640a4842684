package ir

import "time"

// NEC-style frame timings for this AC unit's remote.
const (
	headerMark  = 9000 * time.Microsecond
	headerSpace = 4500 * time.Microsecond
	bitMark     = 560 * time.Microsecond
	zeroSpace   = 560 * time.Microsecond
	oneSpace    = 1690 * time.Microsecond
	stopMark    = 560 * time.Microsecond
)

// deviceAddr is the fixed address byte of the AC unit.
const deviceAddr = 0xB2

// MinTargetTemp and MaxTargetTemp bound the ten preset temperature tables.
const (
	MinTargetTemp = 16
	MaxTargetTemp = 25
)

// Preset tables, one per remote button the node can press.
var (
	TurnOn      = necTable("power_on", 0x1F)
	TurnOff     = necTable("power_off", 0x20)
	ModeCooling = necTable("mode_cooling", 0x31)
	ModeSuper   = necTable("mode_super", 0x32)
	ModeQuiet   = necTable("mode_quiet", 0x33)
)

// tempTables holds the preset tables for 16..25 degrees in order.
var tempTables = [10]Table{
	necTable("temp16", 0x40),
	necTable("temp17", 0x41),
	necTable("temp18", 0x42),
	necTable("temp19", 0x43),
	necTable("temp20", 0x44),
	necTable("temp21", 0x45),
	necTable("temp22", 0x46),
	necTable("temp23", 0x47),
	necTable("temp24", 0x48),
	necTable("temp25", 0x49),
}

// PowerTable maps a power argument to its table.
func PowerTable(arg string) (Table, bool) {
	switch arg {
	case "on":
		return TurnOn, true
	case "off":
		return TurnOff, true
	}
	return Table{}, false
}

// ModeTable maps a mode argument to its table.
func ModeTable(arg string) (Table, bool) {
	switch arg {
	case "cooling":
		return ModeCooling, true
	case "super":
		return ModeSuper, true
	case "quiet":
		return ModeQuiet, true
	}
	return Table{}, false
}

// TempTable maps a target-temperature argument to its preset table. The
// second character is the discriminant: targets run 16..25, so '6'..'9'
// select 16..19 and '0'..'5' select 20..25. Anything else is rejected.
func TempTable(arg string) (Table, bool) {
	if len(arg) < 2 {
		return Table{}, false
	}
	c := arg[1]
	switch {
	case c >= '6' && c <= '9':
		return tempTables[c-'6'], true
	case c >= '0' && c <= '5':
		return tempTables[4+c-'0'], true
	}
	return Table{}, false
}

// necTable builds the mark/space sequence for one NEC frame carrying the
// device address and the given command byte (with their complements).
func necTable(name string, cmd byte) Table {
	addr := byte(deviceAddr)
	bytes := [4]byte{addr, ^addr, cmd, ^cmd}

	pulses := make([]time.Duration, 0, 2+len(bytes)*16+1)
	pulses = append(pulses, headerMark, headerSpace)
	for _, b := range bytes {
		for bit := 0; bit < 8; bit++ {
			pulses = append(pulses, bitMark)
			if b&(1<<bit) != 0 {
				pulses = append(pulses, oneSpace)
			} else {
				pulses = append(pulses, zeroSpace)
			}
		}
	}
	pulses = append(pulses, stopMark)

	return Table{Name: name, Pulses: pulses}
}
