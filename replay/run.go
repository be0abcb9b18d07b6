package replay

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/plus3/puppet/anim"
	"github.com/plus3/puppet/control"
	"github.com/plus3/puppet/ecs"
	"go.uber.org/zap"
)

type Options struct {
	Library *anim.Library
	Names   [control.CatalogSize]string
	Speed   float32
	Logger  *zap.Logger
}

// Switch is one Play call observed on the playback target.
type Switch struct {
	Tick    uint64
	State   control.StateCode
	Clip    string
	Startup bool
}

type Result struct {
	Script   string
	DT       float64
	Ticks    uint64
	State    control.StateCode
	I, J     float32
	Switches []Switch
	Stats    *ecs.SchedulerStats
	Elapsed  time.Duration
}

// SwitchCount counts switches made by the selector, excluding the startup
// clip.
func (r *Result) SwitchCount() int {
	n := 0
	for _, s := range r.Switches {
		if !s.Startup {
			n++
		}
	}
	return n
}

// switchRecorder watches the playback target's Play count. It runs last in
// the tick so it sees both the startup clip and the selector's switch.
type switchRecorder struct {
	Targets ecs.Query[struct{ *anim.Player }]
	Player  ecs.Singleton[control.PlayerState]

	library  *anim.Library
	seen     int
	startup  bool
	switches []Switch
}

func (r *switchRecorder) Execute(frame *ecs.UpdateFrame) {
	_, target, err := r.Targets.Single()
	if err != nil {
		return
	}
	delta := target.Player.Plays - r.seen
	r.seen = target.Player.Plays

	state := r.Player.MustGet().State
	clip := r.library.Name(target.Player.Current)
	for ; delta > 0; delta-- {
		first := !r.startup
		r.startup = true
		r.switches = append(r.switches, Switch{Tick: frame.Tick, State: state, Clip: clip, Startup: first})
	}
}

// Run plays script against a fresh world and returns the final state.
func Run(script *Script, opts Options) (*Result, error) {
	if script.DT == 0 {
		script.DT = DefaultDT
	}
	if err := script.validate(); err != nil {
		return nil, err
	}
	if opts.Library == nil {
		lib, err := anim.DefaultLibrary()
		if err != nil {
			return nil, err
		}
		opts.Library = lib
	}
	if opts.Names == ([control.CatalogSize]string{}) {
		opts.Names = control.DefaultClipNames
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	catalog, err := control.LoadClipCatalog(opts.Library, opts.Names)
	if err != nil {
		return nil, err
	}

	registry := ecs.NewComponentRegistry()
	control.Register(registry)
	storage := ecs.NewStorage(registry)
	scheduler := ecs.NewScheduler(storage)

	player := control.Setup(storage, "replay", catalog)
	source := &control.InputSnapshot{}
	control.Install(scheduler, control.Options{
		Source:  source,
		Speed:   opts.Speed,
		Library: opts.Library,
		Scene:   "replay",
		Logger:  logger,
	})
	recorder := &switchRecorder{library: opts.Library}
	scheduler.Register(recorder)

	start := time.Now()
	for i, step := range script.Steps {
		snap, err := step.snapshot()
		if err != nil {
			return nil, fmt.Errorf("replay: step %d: %w", i, err)
		}
		*source = snap
		for range step.Ticks {
			scheduler.Once(script.DT)
		}
	}

	logger.Debug("replay finished",
		zap.String("script", script.Name),
		zap.Uint64("ticks", scheduler.Tick()),
	)

	return &Result{
		Script:   script.Name,
		DT:       script.DT,
		Ticks:    scheduler.Tick(),
		State:    player.State,
		I:        player.I,
		J:        player.J,
		Switches: recorder.switches,
		Stats:    scheduler.GetStats(),
		Elapsed:  time.Since(start),
	}, nil
}

// positionTolerance absorbs float32 accumulation error.
const positionTolerance = 1e-4

// Check compares r with want and returns every mismatch.
func (r *Result) Check(want *Expect) error {
	if want == nil {
		return nil
	}
	var errs []error
	if want.State != "" && want.State != r.State.String() {
		errs = append(errs, fmt.Errorf("state: got %s, want %s", r.State, want.State))
	}
	if want.I != nil && math.Abs(float64(r.I-*want.I)) > positionTolerance {
		errs = append(errs, fmt.Errorf("i: got %.6f, want %.6f", r.I, *want.I))
	}
	if want.J != nil && math.Abs(float64(r.J-*want.J)) > positionTolerance {
		errs = append(errs, fmt.Errorf("j: got %.6f, want %.6f", r.J, *want.J))
	}
	if want.Switches != nil && *want.Switches != r.SwitchCount() {
		errs = append(errs, fmt.Errorf("switches: got %d, want %d", r.SwitchCount(), *want.Switches))
	}
	return errors.Join(errs...)
}
