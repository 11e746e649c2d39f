// arkanoid is the brick-breaker game for the terminal.
//
// Usage:
//
//	arkanoid list              - List game variants
//	arkanoid play [variant]    - Play a variant
//	arkanoid menu              - Pick variants and rounds interactively
//	arkanoid serve             - Start SSH server for remote play
//	arkanoid scores [variant]  - Show the score history
//	arkanoid sim               - Run a headless game with the autopilot
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible gameplay
//	--db <path>           - Set database path (default: ~/.arkanoid/scores.db)
//	--config <path>       - Use a custom arkanoid.yaml
//	--difficulty <name>   - easy, normal or hard
//	--round <n>           - Start at round n
//	--log-level <level>   - debug, info, warn or error
//	--log-file <path>     - Write logs to a file
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-arkanoid/internal/arkanoid"
	"github.com/vovakirdan/tui-arkanoid/internal/config"
	"github.com/vovakirdan/tui-arkanoid/internal/logging"
)

var (
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagRound      int
	flagLogLevel   string
	flagLogFile    string
)

// logger is set up before every command runs.
var (
	logger  *log.Logger
	logFile *os.File
)

func main() {
	err := rootCmd.Execute()
	if logFile != nil {
		logFile.Close()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "arkanoid",
	Short: "Arkanoid - break bricks in your terminal",
	Long: `Arkanoid is a terminal brick-breaker: bounce the ball off the Vaus,
clear every brick, catch the capsules and dodge the enemies that drop
through the doors in the top edge.

Available commands:
  list     - Show the game variants
  play     - Play a variant directly
  menu     - Interactive variant and round picker
  serve    - Start SSH server for remote play
  scores   - View the score history
  sim      - Run a headless game with the autopilot

Examples:
  arkanoid play
  arkanoid play --difficulty hard --round 2
  arkanoid menu
  arkanoid serve --ssh :2222
  arkanoid sim --ticks 5000 --seed 7`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	pf.Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	pf.StringVar(&flagDBPath, "db", "~/.arkanoid/scores.db", "Path to scores database")
	pf.StringVar(&flagConfig, "config", "", "Path to custom arkanoid.yaml")
	pf.StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	pf.IntVar(&flagRound, "round", 0, "Start at this round (0 = round 1)")
	pf.StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	pf.StringVar(&flagLogFile, "log-file", "", "Write logs to this file")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(simCmd)
}

// setup validates the global flags and configures logging and the game.
// Interactive commands log nowhere unless --log-file is given, since the
// terminal belongs to the game.
func setup(cmd *cobra.Command, _ []string) error {
	if flagFPS <= 0 {
		return fmt.Errorf("--fps must be positive, got %d", flagFPS)
	}
	if flagRound < 0 {
		return fmt.Errorf("--round must not be negative, got %d", flagRound)
	}
	if _, err := config.ParsePreset(flagDifficulty); err != nil {
		return err
	}
	level, err := logging.ParseLevel(flagLogLevel)
	if err != nil {
		return err
	}

	var w io.Writer = os.Stderr
	switch {
	case flagLogFile != "":
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return fmt.Errorf("cannot open log file: %w", err)
		}
		logFile = f
		w = f
	case cmd == playCmd || cmd == menuCmd:
		w = io.Discard
	}
	logger = logging.New(w, level, "arkanoid")

	arkanoid.SetConfigPath(flagConfig)
	if n := len(arkanoid.RoundNames()); flagRound > n {
		return fmt.Errorf("--round %d does not exist, there are %d rounds", flagRound, n)
	}
	arkanoid.SetStartRound(flagRound)
	arkanoid.SetLogger(logger)
	return nil
}

// variantID returns the registry ID of the variant for a difficulty.
func variantID(difficulty string) string {
	preset, _ := config.ParsePreset(difficulty)
	if preset == config.DifficultyNormal {
		return "arkanoid"
	}
	return "arkanoid_" + string(preset)
}
