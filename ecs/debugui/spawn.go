package debugui

import "github.com/plus3/puppet/ecs"

// Register adds the debugui components to registry.
func Register(registry *ecs.ComponentRegistry) {
	ecs.RegisterComponent[ImguiItem](registry)
}

// Install adds the ImguiInputState singleton, spawns the stats window and
// registers ImguiSystem as the last system of scheduler.
func Install(scheduler *ecs.Scheduler) *ImguiSystem {
	storage := scheduler.Storage()
	ecs.NewSingleton[ImguiInputState](storage)
	storage.Spawn(ImguiItem{Render: NewStatsWindow(storage, scheduler, 120).Render})

	system := &ImguiSystem{}
	scheduler.Register(system)
	return system
}
