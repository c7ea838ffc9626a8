package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"k8s.io/klog/v2"
	"q.log/tableau/config"
	"q.log/tableau/instance"
	"q.log/tableau/reference"
	"q.log/tableau/simplex"
)

const verifyTol = 1e-7

func main() {
	cmd := newCommand(os.Stdin, os.Stdout)
	err := cmd.Execute()
	klog.Flush()
	if err != nil {
		os.Exit(1)
	}
}

func newCommand(in io.Reader, out io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:           "tableau [file]",
		Short:         "Solve a linear program with the tableau simplex method",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(config.New())
			if err != nil {
				return report(out, err)
			}
			setVerbosity(cfg.Verbosity)

			path := cfg.Input
			if len(args) == 1 {
				path = args[0]
			}
			err = run(out, path, cfg)
			if cfg.Pause {
				fmt.Fprintln(out, "\npress Enter to exit")
				_, _ = bufio.NewReader(in).ReadString('\n')
			}
			return report(out, err)
		},
	}
}

func report(out io.Writer, err error) error {
	if err != nil {
		fmt.Fprintf(out, "error: %v\n", err)
	}
	return err
}

func setVerbosity(level int) {
	fs := flag.NewFlagSet("klog", flag.ContinueOnError)
	klog.InitFlags(fs)
	if err := fs.Set("v", strconv.Itoa(level)); err != nil {
		klog.Warningf("setting verbosity: %v", err)
	}
}

// run reads the problem at path, solves it and prints the result to out.
func run(out io.Writer, path string, cfg *config.Config) error {
	m, err := instance.NewReader(path).ConstructModelFromFile()
	if err != nil {
		return err
	}

	m.PrintC(out)
	m.PrintA(out)
	m.PrintB(out)

	form := cfg.Form.Resolve(m.Orientation)
	t, err := simplex.Build(m, form)
	if err != nil {
		return errors.Wrap(err, "building tableau")
	}
	fmt.Fprintf(out, "\ninitial tableau (%s form):\n", form)
	t.Print(out)

	sol, err := simplex.SolveTableau(t, m, simplex.Options{Form: form, MaxIterations: cfg.MaxIterations})
	if err != nil {
		return err
	}
	for _, s := range sol.Steps {
		klog.V(2).Infof("iteration %d: column %d enters through row %d, ratio %v, cost %v",
			s.Iteration, s.Entering, s.Leaving, s.Ratio, s.Cost)
	}
	simplex.PrintSteps(out, sol)
	simplex.PrintSolution(out, sol)

	if cfg.Verify && sol.IsOptimal() {
		ref, err := reference.Solve(m)
		if err != nil {
			return errors.Wrap(err, "reference solve")
		}
		if err := reference.Compare(ref, sol.Objective, verifyTol); err != nil {
			return err
		}
		fmt.Fprintf(out, "verified against reference solver: p = %v\n", ref.Objective)
	}
	return nil
}
