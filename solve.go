package main

import (
	"errors"
	"fmt"
	"io"
	"math/rand"
	"os"
	"path/filepath"

	"github.com/beka-birhanu/vinom-pathviz/config"
	"github.com/beka-birhanu/vinom-pathviz/maze"
	"github.com/beka-birhanu/vinom-pathviz/metrics"
	"github.com/beka-birhanu/vinom-pathviz/pathfinding"
	"github.com/beka-birhanu/vinom-pathviz/render"
	"github.com/spf13/cobra"
)

// solveOptions configures a headless run.
type solveOptions struct {
	Algorithm string
	Width     int
	Height    int
	Generator string
	Seed      int64 // zero picks a random maze
	MaxSteps  int   // zero selects the configured step limit
	CellSize  int
	PNG       string // final frame, skipped when empty
	Frames    string // per-step frames directory, skipped when empty
}

// solveResult summarises a headless run.
type solveResult struct {
	Seed    int64
	Steps   int
	Visited int
	Path    []maze.Position
	Outcome string
}

func newSolveCmd() *cobra.Command {
	o := solveOptions{}
	solveCmd := &cobra.Command{
		Use:   "solve",
		Short: "Run an engine over a generated maze and print the result",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := solve(cmd.OutOrStdout(), o)
			return err
		},
	}

	flags := solveCmd.Flags()
	flags.StringVar(&o.Algorithm, "algorithm", pathfinding.AStar, "Engine to run")
	flags.IntVar(&o.Width, "width", config.Envs.MazeWidth, "Maze width")
	flags.IntVar(&o.Height, "height", config.Envs.MazeHeight, "Maze height")
	flags.StringVar(&o.Generator, "generator", config.Envs.MazeGenerator, "Maze generator (backtracker, wilson, random)")
	flags.Int64Var(&o.Seed, "seed", 0, "Maze seed, 0 for a random maze")
	flags.IntVar(&o.MaxSteps, "max-steps", 0, "Step limit, 0 for step-limit-factor x width x height")
	flags.IntVar(&o.CellSize, "cell-size", config.Envs.CellSize, "Pixels per cell in PNG output")
	flags.StringVar(&o.PNG, "png", "", "Write the final frame to this file")
	flags.StringVar(&o.Frames, "frames", "", "Write a frame per step into this directory")
	return solveCmd
}

// solve generates a maze, steps the engine until it finishes or hits the step
// limit and writes the traced maze and a summary to out.
func solve(out io.Writer, o solveOptions) (*solveResult, error) {
	g, err := maze.ParseGenerator(o.Generator)
	if err != nil {
		return nil, err
	}
	seed := o.Seed
	for seed == 0 {
		seed = rand.Int63()
	}
	m, err := maze.Generate(g, o.Width, o.Height, seed)
	if err != nil {
		return nil, err
	}
	engine, err := pathfinding.New(o.Algorithm, m, m)
	if err != nil {
		return nil, err
	}

	limit := o.MaxSteps
	if limit <= 0 {
		limit = config.Envs.StepLimitFactor * m.Width * m.Height
	}
	if o.Frames != "" {
		if err := os.MkdirAll(o.Frames, 0o755); err != nil {
			return nil, err
		}
	}

	steps := 0
	for !engine.Done() && steps < limit {
		engine.Step()
		steps++
		if o.Frames != "" {
			name := filepath.Join(o.Frames, fmt.Sprintf("step-%05d.png", steps))
			if err := writeFrame(name, m, engine, o.CellSize); err != nil {
				return nil, err
			}
		}
	}
	if o.PNG != "" {
		if err := writeFrame(o.PNG, m, engine, o.CellSize); err != nil {
			return nil, err
		}
	}

	state := engine.State()
	res := &solveResult{
		Seed:    seed,
		Steps:   steps,
		Visited: len(state.Visited),
		Path:    state.CurrentPath,
		Outcome: metrics.OutcomeStalled,
	}
	switch {
	case state.Found:
		res.Path = state.FinalPath
		res.Outcome = metrics.OutcomeFound
	case state.Done:
		res.Outcome = metrics.OutcomeExhausted
	}

	fmt.Fprintln(out, m.Trace(res.Path))
	fmt.Fprintf(out, "algorithm: %s\n", o.Algorithm)
	fmt.Fprintf(out, "maze:      %dx%d %s seed %d\n", m.Width, m.Height, g, seed)
	fmt.Fprintf(out, "outcome:   %s\n", res.Outcome)
	fmt.Fprintf(out, "steps:     %d\n", res.Steps)
	fmt.Fprintf(out, "visited:   %d\n", res.Visited)
	fmt.Fprintf(out, "path:      %d cells\n", len(res.Path))
	return res, nil
}

func writeFrame(name string, m *maze.Maze, d render.Drawer, cellSize int) (err error) {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, f.Close())
	}()
	return render.WritePNG(f, m, d, cellSize)
}
