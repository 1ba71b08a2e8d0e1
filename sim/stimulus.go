// Generator-style stimulus processes: prebuilt ProcessFunc bodies for the
// drivers every testbench needs. Each is an explicit state machine; local
// state between suspension points lives in the closure.

package sim

// Clock returns a free-running clock body toggling sig every halfPeriod
// ticks, starting with a rising edge at time zero. It never terminates on
// its own, so runs using it need a horizon or a Stop.
func Clock(sig *Signal, halfPeriod int64) ProcessFunc {
	level := Low
	return func(ctx *ExecContext) (Suspend, error) {
		if level == Low {
			level = High
		} else {
			level = Low
		}
		ctx.Write(sig, level)
		return After(halfPeriod), nil
	}
}

// ResetPulse returns a body that asserts sig high at time zero, deasserts
// it after duration ticks, and terminates.
func ResetPulse(sig *Signal, duration int64) ProcessFunc {
	asserted := false
	return func(ctx *ExecContext) (Suspend, error) {
		if !asserted {
			asserted = true
			ctx.Write(sig, High)
			return After(duration), nil
		}
		ctx.Write(sig, Low)
		return Done(), nil
	}
}

// RandomStimulus returns a body that drives sig with a uniformly random
// value in [0, max] every period ticks. Draws come from the process's own
// partitioned stream, so the sequence depends only on the run seed and the
// process name.
func RandomStimulus(sig *Signal, period int64, max int64) ProcessFunc {
	return func(ctx *ExecContext) (Suspend, error) {
		ctx.Write(sig, Value(ctx.Rand().Int63n(max+1)))
		return After(period), nil
	}
}
