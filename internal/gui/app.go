package gui

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/san-kum/springlab/internal/config"
	"github.com/san-kum/springlab/internal/lattice"
)

const (
	windowWidth  = 800
	windowHeight = 600
	targetFPS    = 60
)

// Run opens the render window and blocks until it is closed.
//
// Keys: SPACE toggles stepping, PERIOD toggles wind, ENTER rebuilds the
// grid from the configuration.
func Run(cfg *config.Config) error {
	stepper, err := cfg.NewStepper()
	if err != nil {
		return err
	}

	rl.InitWindow(windowWidth, windowHeight, "springlab")
	defer rl.CloseWindow()
	rl.SetTargetFPS(targetFPS)

	sys := stepper.System()
	running := false

	for !rl.WindowShouldClose() {
		if rl.IsKeyPressed(rl.KeySpace) {
			running = !running
		}
		if rl.IsKeyPressed(rl.KeyPeriod) {
			stepper.ToggleWind()
		}
		if rl.IsKeyPressed(rl.KeyEnter) {
			if err := lattice.BuildGrid(sys, cfg.GridSpec()); err != nil {
				return err
			}
			stepper.Reset()
		}

		rl.BeginDrawing()
		rl.ClearBackground(rl.Black)
		drawSystem(sys)
		rl.EndDrawing()

		if !running {
			continue
		}
		stepper.Tick(cfg.Run.TimeScale * float64(rl.GetFrameTime()))
	}
	return nil
}
