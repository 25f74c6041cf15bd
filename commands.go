package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"q.log/mip/instance"
	"q.log/mip/instance/mps"
	"q.log/mip/metrics"
	"q.log/mip/model"
	"q.log/mip/row"
	"q.log/mip/simplex"
)

type inputFlags struct {
	format string
}

func (f *inputFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.format, "format", "f", "", "problem file format, yaml or mps (default: from the file extension)")
}

func (f *inputFlags) read(path string) (*instance.Description, error) {
	format := f.format
	if format == "" {
		switch strings.ToLower(filepath.Ext(path)) {
		case ".mps", ".fmps":
			format = "mps"
		default:
			format = "yaml"
		}
	}
	switch format {
	case "yaml":
		return instance.ReadYAMLFile(path)
	case "mps":
		return mps.NewReader(path).Read()
	}
	return nil, errors.Errorf("unknown format %q", format)
}

type solverFlags struct {
	inputFlags
	pricing    string
	rowKind    string
	branching  string
	workers    int
	showMatrix bool
	trace      bool
	metrics    bool
}

func (f *solverFlags) register(cmd *cobra.Command) {
	f.inputFlags.register(cmd)
	cmd.Flags().StringVar(&f.pricing, "pricing", simplex.PricingSteepestEdgeFloat.String(),
		"entering variable selection: textbook, steepest-edge-exact or steepest-edge-float")
	cmd.Flags().StringVar(&f.rowKind, "row", row.DenseKind.String(), "tableau row storage: dense or sparse")
	cmd.Flags().StringVar(&f.branching, "branching", simplex.BranchFirstFractional.String(),
		"branching variable selection: first or most")
	cmd.Flags().IntVar(&f.workers, "workers", 1, "branch-and-bound nodes explored at once")
	cmd.Flags().BoolVar(&f.showMatrix, "show-matrix", false, "print the constraint matrix before solving")
	cmd.Flags().BoolVar(&f.trace, "trace", false, "print every pivot and branch-and-bound node")
	cmd.Flags().BoolVar(&f.metrics, "metrics", false, "print solver metrics after solving")
}

// problem reads the file and builds the problem with the solver options of
// the flags.
func (f *solverFlags) problem(path string, logger log.FieldLogger, out io.Writer) (*instance.Description, *simplex.Problem, *prometheus.Registry, error) {
	d, err := f.read(path)
	if err != nil {
		return nil, nil, nil, err
	}
	pricing, err := simplex.ParseControlParameter(f.pricing)
	if err != nil {
		return nil, nil, nil, err
	}
	kind, err := row.ParseKind(f.rowKind)
	if err != nil {
		return nil, nil, nil, err
	}
	branching, err := simplex.ParseBranchingPolicy(f.branching)
	if err != nil {
		return nil, nil, nil, err
	}

	var tracers simplex.MultiTracer
	var registry *prometheus.Registry
	if f.metrics {
		registry = prometheus.NewRegistry()
		if err := metrics.RegisterSolver(registry); err != nil {
			return nil, nil, nil, err
		}
		tracers = append(tracers, &metrics.Tracer{})
	}
	if f.trace {
		tracers = append(tracers, &simplex.LoggingTracer{Writer: out})
	}
	var tracer simplex.Tracer = simplex.DefaultTracer{}
	switch len(tracers) {
	case 0:
	case 1:
		tracer = tracers[0]
	default:
		tracer = tracers
	}

	if f.showMatrix {
		fmt.Fprintln(out, "objective:")
		model.PrintObjective(out, d.Dimension, d.Objective)
		fmt.Fprintln(out, "constraints:")
		model.PrintConstraints(out, d.Dimension, d.Constraints)
	}

	p, err := d.Problem(
		simplex.WithPricing(pricing),
		simplex.WithRowKind(kind),
		simplex.WithBranching(branching),
		simplex.WithBranchWorkers(f.workers),
		simplex.WithLogger(logger.WithField("problem", d.Name)),
		simplex.WithTracer(tracer),
	)
	if err != nil {
		return nil, nil, nil, err
	}
	return d, p, registry, nil
}

func writeMetrics(w io.Writer, registry *prometheus.Registry) error {
	if registry == nil {
		return nil
	}
	families, err := registry.Gather()
	if err != nil {
		return errors.Wrap(err, "gathering metrics")
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return errors.Wrap(err, "writing metrics")
		}
	}
	return nil
}

// writeAndClose runs write on wc and closes it, reporting the close error
// when the write succeeded.
func writeAndClose(wc io.WriteCloser, write func(io.Writer) error) error {
	if err := write(wc); err != nil {
		_ = wc.Close()
		return err
	}
	return errors.Wrap(wc.Close(), "closing output")
}

func newSolveCmd(logger *log.Logger) *cobra.Command {
	var flags solverFlags
	cmd := &cobra.Command{
		Use:   "solve FILE",
		Short: "Optimize the objective of a problem",
		Long: `The mip solve command optimizes the objective of the problem in FILE and
prints the resulting status, the optimal value and an optimizing point.

        $ mip solve knapsack.yaml --branching most
        `,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			d, p, registry, err := flags.problem(args[0], logger, out)
			if err != nil {
				return err
			}

			status := p.Solve()
			fmt.Fprintf(out, "status: %s\n", status)
			switch status {
			case simplex.Optimized:
				num, den, err := p.OptimalValue()
				if err != nil {
					return err
				}
				if den.IsInt64() && den.Int64() == 1 {
					fmt.Fprintf(out, "value: %s\n", num)
				} else {
					fmt.Fprintf(out, "value: %s/%s\n", num, den)
				}
				g, err := p.OptimizingPoint()
				if err != nil {
					return err
				}
				d.WritePoint(out, g)
			case simplex.Unbounded:
				g, err := p.FeasiblePoint()
				if err != nil {
					return err
				}
				fmt.Fprintln(out, "feasible point:")
				d.WritePoint(out, g)
			}
			return writeMetrics(out, registry)
		},
	}
	flags.register(cmd)
	return cmd
}

func newCheckCmd(logger *log.Logger) *cobra.Command {
	var flags solverFlags
	cmd := &cobra.Command{
		Use:   "check FILE",
		Short: "Decide whether a problem has a feasible point",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			d, p, registry, err := flags.problem(args[0], logger, out)
			if err != nil {
				return err
			}
			if !p.IsSatisfiable() {
				fmt.Fprintln(out, "unsatisfiable")
				return writeMetrics(out, registry)
			}
			g, err := p.FeasiblePoint()
			if err != nil {
				return err
			}
			fmt.Fprintln(out, "satisfiable")
			d.WritePoint(out, g)
			return writeMetrics(out, registry)
		},
	}
	flags.register(cmd)
	return cmd
}

func newConvertCmd() *cobra.Command {
	var flags inputFlags
	var output string
	cmd := &cobra.Command{
		Use:   "convert FILE",
		Short: "Rewrite a problem as a YAML document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := flags.read(args[0])
			if err != nil {
				return err
			}
			if output == "" {
				return instance.WriteYAML(cmd.OutOrStdout(), d)
			}
			f, err := os.Create(output)
			if err != nil {
				return errors.Wrap(err, "creating output")
			}
			return writeAndClose(f, func(w io.Writer) error {
				return instance.WriteYAML(w, d)
			})
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the document to this file instead of stdout")
	return cmd
}
