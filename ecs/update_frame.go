package ecs

// UpdateFrame is handed to every system during a tick.
type UpdateFrame struct {
	// Tick counts scheduler passes, starting at zero.
	Tick uint64
	// DeltaTime is the elapsed time in seconds since the previous tick.
	DeltaTime float64
	Commands  *Commands
	Storage   *Storage
}

func newUpdateFrame(tick uint64, dt float64, storage *Storage, commands *Commands) *UpdateFrame {
	return &UpdateFrame{
		Tick:      tick,
		DeltaTime: dt,
		Commands:  commands,
		Storage:   storage,
	}
}
