package control

import (
	"github.com/plus3/puppet/ecs"
	"go.uber.org/zap"
)

// CursorReportSystem logs the cursor position on every tick the left button
// is held. It is diagnostic only and never touches PlayerState.
type CursorReportSystem struct {
	Input  ecs.Singleton[InputSnapshot]
	Logger *zap.Logger
}

func (s *CursorReportSystem) Execute(frame *ecs.UpdateFrame) {
	in := s.Input.MustGet()
	if !in.ButtonHeld(ButtonLeft) || s.Logger == nil {
		return
	}

	x, y, ok := in.CursorPosition()
	if !ok {
		s.Logger.Info("cursor outside window", zap.Uint64("tick", frame.Tick))
		return
	}
	s.Logger.Info("cursor",
		zap.Uint64("tick", frame.Tick),
		zap.Float64("x", x),
		zap.Float64("y", y),
	)
}
