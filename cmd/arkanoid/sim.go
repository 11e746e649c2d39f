package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-arkanoid/internal/arkanoid"
	"github.com/vovakirdan/tui-arkanoid/internal/core"
	"github.com/vovakirdan/tui-arkanoid/internal/registry"
)

var (
	flagTicks  int
	flagRender bool
)

var simCmd = &cobra.Command{
	Use:   "sim [variant]",
	Short: "Run a headless game with the autopilot",
	Long: `Run the simulation without a terminal UI. The autopilot keeps the
Vaus under the ball. The final state and a hash of it are printed, so two
runs with the same seed can be compared.

Examples:
  arkanoid sim --seed 42
  arkanoid sim arkanoid_hard --ticks 20000 --render`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSim,
}

func init() {
	simCmd.Flags().IntVar(&flagTicks, "ticks", 10000, "Maximum number of ticks to run")
	simCmd.Flags().BoolVar(&flagRender, "render", false, "Print the final screen")
}

func runSim(_ *cobra.Command, args []string) error {
	gameID := variantID(flagDifficulty)
	if len(args) == 1 {
		gameID = args[0]
	}
	g, err := registry.Create(gameID)
	if err != nil {
		return err
	}
	app, ok := g.(*arkanoid.App)
	if !ok {
		return fmt.Errorf("variant %q cannot be simulated", gameID)
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	cfg := core.RuntimeConfig{ScreenW: 80, ScreenH: 40, TickRate: flagFPS, Seed: seed}
	app.Reset(cfg)

	var pilot arkanoid.Autopilot
	start := time.Now()
	steps := 0
	for ; steps < flagTicks && !app.Game().Over(); steps++ {
		app.Step(pilot.Next(app))
	}
	elapsed := time.Since(start)

	snap := app.Snapshot()
	logger.Debug("simulation finished", "steps", steps, "elapsed", elapsed)

	if flagRender {
		screen := core.NewScreen(cfg.ScreenW, cfg.ScreenH)
		app.Render(screen)
		fmt.Println(screen.String())
	}

	fmt.Printf("variant  %s\n", gameID)
	fmt.Printf("seed     %d\n", seed)
	fmt.Printf("ticks    %d\n", snap.Tick)
	fmt.Printf("state    %s\n", snap.State)
	fmt.Printf("score    %d\n", snap.Score)
	fmt.Printf("round    %d\n", snap.Round)
	fmt.Printf("lives    %d\n", snap.Lives)
	fmt.Printf("hash     %016x\n", snap.Hash())
	return nil
}
