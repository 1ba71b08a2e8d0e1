package trace

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// WriteVCD renders the commit trace as a Value Change Dump, the text
// format waveform viewers consume. Signals appear in first-commit order;
// each signal's initial value is the pre-transition value of its first
// record. Deterministic for a deterministic trace.
func WriteVCD(w io.Writer, st *SimulationTrace) error {
	var sb strings.Builder

	order := make([]string, 0)
	initial := make(map[string]int64)
	for _, c := range st.Commits {
		if _, ok := initial[c.Signal]; !ok {
			order = append(order, c.Signal)
			initial[c.Signal] = c.Old
		}
	}

	codes := make(map[string]string, len(order))
	for i, name := range order {
		codes[name] = idCode(i)
	}

	sb.WriteString("$timescale 1ns $end\n")
	sb.WriteString("$scope module top $end\n")
	for _, name := range order {
		fmt.Fprintf(&sb, "$var wire 64 %s %s $end\n", codes[name], name)
	}
	sb.WriteString("$upscope $end\n")
	sb.WriteString("$enddefinitions $end\n")

	sb.WriteString("$dumpvars\n")
	for _, name := range order {
		fmt.Fprintf(&sb, "b%s %s\n", strconv.FormatUint(uint64(initial[name]), 2), codes[name])
	}
	sb.WriteString("$end\n")

	lastClock := int64(-1)
	for _, c := range st.Commits {
		if c.Clock != lastClock {
			fmt.Fprintf(&sb, "#%d\n", c.Clock)
			lastClock = c.Clock
		}
		fmt.Fprintf(&sb, "b%s %s\n", strconv.FormatUint(uint64(c.New), 2), codes[c.Signal])
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

// idCode maps a signal index to a short VCD identifier code using the
// printable range '!'..'~'.
func idCode(i int) string {
	const base = 94
	code := ""
	for {
		code = string(rune('!'+i%base)) + code
		i = i/base - 1
		if i < 0 {
			return code
		}
	}
}
