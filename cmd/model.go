// Model file loading and elaboration. The kernel takes an already
// elaborated set of signals and processes; this file is the external
// elaborator the CLI uses, turning a YAML description of a small circuit
// into ProcessFunc bodies.

package cmd

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/delta-sim/delta-sim/sim"
)

// SignalSpec declares one signal.
type SignalSpec struct {
	Name string `yaml:"name"`
	Init int64  `yaml:"init"`
}

// ProcessSpec declares one process. Kind selects the body; the remaining
// fields are kind-specific.
type ProcessSpec struct {
	Name string `yaml:"name"`
	Kind string `yaml:"kind"`

	// clock / reset / random stimuli
	Signal     string `yaml:"signal"`
	HalfPeriod int64  `yaml:"half_period"`
	Duration   int64  `yaml:"duration"`
	Period     int64  `yaml:"period"`
	Max        int64  `yaml:"max"`

	// register
	Clock  string `yaml:"clock"`
	Reset  string `yaml:"reset"`
	Source string `yaml:"source"`
	Target string `yaml:"target"`

	// combinational gates
	A   string `yaml:"a"`
	B   string `yaml:"b"`
	Out string `yaml:"out"`
}

// ModelSpec is the YAML schema of a model file.
type ModelSpec struct {
	Name      string        `yaml:"name"`
	Signals   []SignalSpec  `yaml:"signals"`
	Processes []ProcessSpec `yaml:"processes"`
}

// LoadModelSpec reads and parses a model file.
func LoadModelSpec(path string) (*ModelSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read model file %s", path)
	}
	var spec ModelSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, errors.Wrapf(err, "parse model file %s", path)
	}
	return &spec, nil
}

// Elaborate builds the simulation from the spec.
func (spec *ModelSpec) Elaborate(cfg sim.Config) (*sim.Simulation, error) {
	b := sim.NewBuilder()

	sigs := make(map[string]*sim.Signal, len(spec.Signals))
	for _, ss := range spec.Signals {
		sigs[ss.Name] = b.Signal(ss.Name, sim.Value(ss.Init))
	}
	lookup := func(name string) (*sim.Signal, error) {
		if name == "" {
			return nil, errors.New("missing signal reference")
		}
		sig, ok := sigs[name]
		if !ok {
			return nil, errors.Errorf("unknown signal %q", name)
		}
		return sig, nil
	}

	for _, ps := range spec.Processes {
		if err := elaborateProcess(b, ps, lookup); err != nil {
			return nil, errors.Wrapf(err, "process %q", ps.Name)
		}
	}

	return b.Build(cfg)
}

func elaborateProcess(b *sim.Builder, ps ProcessSpec, lookup func(string) (*sim.Signal, error)) error {
	switch ps.Kind {
	case "clock":
		sig, err := lookup(ps.Signal)
		if err != nil {
			return err
		}
		if ps.HalfPeriod <= 0 {
			return errors.New("clock needs half_period > 0")
		}
		b.Process(ps.Name, sim.Clock(sig, ps.HalfPeriod), sim.Drives(sig))

	case "reset":
		sig, err := lookup(ps.Signal)
		if err != nil {
			return err
		}
		if ps.Duration <= 0 {
			return errors.New("reset needs duration > 0")
		}
		b.Process(ps.Name, sim.ResetPulse(sig, ps.Duration), sim.Drives(sig))

	case "random":
		sig, err := lookup(ps.Signal)
		if err != nil {
			return err
		}
		if ps.Period <= 0 || ps.Max <= 0 {
			return errors.New("random needs period > 0 and max > 0")
		}
		b.Process(ps.Name, sim.RandomStimulus(sig, ps.Period, ps.Max), sim.Drives(sig))

	case "register":
		return elaborateRegister(b, ps, lookup)

	case "not":
		in, err := lookup(ps.A)
		if err != nil {
			return err
		}
		out, err := lookup(ps.Out)
		if err != nil {
			return err
		}
		body := func(ctx *sim.ExecContext) (sim.Suspend, error) {
			if ctx.Read(in) == sim.Low {
				ctx.Write(out, sim.High)
			} else {
				ctx.Write(out, sim.Low)
			}
			return sim.OnAnyRead(), nil
		}
		b.Process(ps.Name, body, sim.Reads(in), sim.Drives(out))

	case "and", "or", "xor", "add":
		return elaborateBinary(b, ps, lookup)

	default:
		return errors.Errorf("unknown process kind %q", ps.Kind)
	}
	return nil
}

// elaborateRegister builds a posedge-sampled register: on each rising clock
// edge the target loads zero under reset, the source value when a source is
// given, or increments (a free-running counter) otherwise.
func elaborateRegister(b *sim.Builder, ps ProcessSpec, lookup func(string) (*sim.Signal, error)) error {
	clk, err := lookup(ps.Clock)
	if err != nil {
		return err
	}
	target, err := lookup(ps.Target)
	if err != nil {
		return err
	}
	var rst, src *sim.Signal
	if ps.Reset != "" {
		if rst, err = lookup(ps.Reset); err != nil {
			return err
		}
	}
	if ps.Source != "" {
		if src, err = lookup(ps.Source); err != nil {
			return err
		}
	}

	body := func(ctx *sim.ExecContext) (sim.Suspend, error) {
		if ctx.Wake().Cause == sim.WakeEdge {
			switch {
			case rst != nil && ctx.Read(rst) != sim.Low:
				ctx.Write(target, sim.Low)
			case src != nil:
				ctx.Write(target, ctx.Read(src))
			default:
				ctx.Write(target, ctx.Read(target)+1)
			}
		}
		return sim.OnEdge(sim.Posedge(clk)), nil
	}

	opts := []sim.ProcessOpt{sim.Reads(clk), sim.Drives(target)}
	if rst != nil {
		opts = append(opts, sim.Reads(rst))
	}
	if src != nil {
		opts = append(opts, sim.Reads(src))
	}
	b.Process(ps.Name, body, opts...)
	return nil
}

func elaborateBinary(b *sim.Builder, ps ProcessSpec, lookup func(string) (*sim.Signal, error)) error {
	a, err := lookup(ps.A)
	if err != nil {
		return err
	}
	bb, err := lookup(ps.B)
	if err != nil {
		return err
	}
	out, err := lookup(ps.Out)
	if err != nil {
		return err
	}

	kind := ps.Kind
	body := func(ctx *sim.ExecContext) (sim.Suspend, error) {
		va, vb := ctx.Read(a), ctx.Read(bb)
		var v sim.Value
		switch kind {
		case "and":
			v = va & vb
		case "or":
			v = va | vb
		case "xor":
			v = va ^ vb
		case "add":
			v = va + vb
		}
		ctx.Write(out, v)
		return sim.OnAnyRead(), nil
	}
	b.Process(ps.Name, body, sim.Reads(a, bb), sim.Drives(out))
	return nil
}
