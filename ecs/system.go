package ecs

// System is one step of a tick. Systems are plain structs: Query and Singleton
// fields are wired by the Scheduler on Register, every other field is private
// state that survives from one tick to the next.
type System interface {
	Execute(frame *UpdateFrame)
}

// SystemFunc adapts a function into a stateless System.
type SystemFunc func(frame *UpdateFrame)

func (f SystemFunc) Execute(frame *UpdateFrame) {
	f(frame)
}

// Named can be implemented by a System to override the name reported in
// scheduler statistics.
type Named interface {
	Name() string
}
