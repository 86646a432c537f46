package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/vmihailenco/msgpack/v5"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/qbitops/swapnet/callgraph"
)

var reportCmd = &cobra.Command{
	Use:   "report [flags]",
	Short: "Cost one or more swap-network operators",
	Long: `Expand each operator's call graph and report its aggregated
non-Clifford cost. Operators come either from the flags (one instance)
or from a TOML config with one [[bloq]] table per instance.`,
	RunE: reportExecution,
}

func init() {
	reportCmd.Flags().String("config", "", "TOML file describing the operators to cost")
	reportCmd.Flags().String("kind", "", "operator kind: cswap | swapzero | muxswap")
	reportCmd.Flags().String("bits", "", "cswap register width (integer or symbol)")
	reportCmd.Flags().StringSlice("sel-bits", nil, "selection width per axis")
	reportCmd.Flags().String("target-bits", "", "data register width")
	reportCmd.Flags().StringSlice("n-targets", nil, "register count per axis")
	reportCmd.Flags().String("iter-len", "", "muxswap iteration length")
	reportCmd.Flags().Int("controls", 0, "muxswap external control count")
	reportCmd.Flags().Int("max-depth", callgraph.DefaultMaxDepth, "call-graph expansion depth")
	reportCmd.Flags().Bool("raw", false, "keep bookkeeping and Clifford leaves in the ledger")
	reportCmd.Flags().String("format", "text", "output format: text | json | msgpack")
	reportCmd.Flags().String("out", "", "write the report to a file instead of stdout")
}

// reportResult is one costed operator, shaped for the json and msgpack
// encoders.
type reportResult struct {
	Name    string       `json:"name" msgpack:"name"`
	Key     string       `json:"key" msgpack:"key"`
	TCount  string       `json:"t_count" msgpack:"t_count"`
	Toffoli string       `json:"toffoli,omitempty" msgpack:"toffoli,omitempty"`
	Leaves  []leafResult `json:"leaves" msgpack:"leaves"`
}

type leafResult struct {
	Key   string `json:"key" msgpack:"key"`
	Count string `json:"count" msgpack:"count"`
}

func reportExecution(cmd *cobra.Command, _ []string) error {
	log, err := newLogger(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	specs, err := collectSpecs(cmd)
	if err != nil {
		return err
	}

	maxDepth, err := cmd.Flags().GetInt("max-depth")
	if err != nil {
		return err
	}
	raw, err := cmd.Flags().GetBool("raw")
	if err != nil {
		return err
	}

	opts := []callgraph.Option{callgraph.WithMaxDepth(maxDepth)}
	if !raw {
		opts = append(opts, callgraph.WithGeneralizer(
			callgraph.Compose(callgraph.IgnoreBookkeeping, callgraph.IgnoreCliffords)))
	}

	// Each expansion is independent and pure, so the entries cost in
	// parallel.
	results := make([]reportResult, len(specs))
	var g errgroup.Group
	for i, spec := range specs {
		i, spec := i, spec
		g.Go(func() error {
			b, err := spec.build()
			if err != nil {
				return err
			}
			log.Debug("expanding call graph", zap.String("bloq", b.Key()), zap.Int("max_depth", maxDepth))

			_, sigma, err := callgraph.Expand(b, opts...)
			if err != nil {
				return errors.Wrapf(err, "costing %s", spec.name(b))
			}

			res := reportResult{Name: spec.name(b), Key: b.Key(), TCount: sigma.TCount().String()}
			if toff, err := sigma.ToffoliCount(); err == nil {
				res.Toffoli = toff.String()
			}
			for _, k := range sigma.Keys() {
				res.Leaves = append(res.Leaves, leafResult{Key: k, Count: sigma[k].Count.String()})
			}
			results[i] = res

			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	return writeReport(cmd, results)
}

// collectSpecs reads the operator list from --config, or synthesizes a
// single spec from the flags.
func collectSpecs(cmd *cobra.Command) ([]bloqSpec, error) {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}
	if path != "" {
		cfg, err := loadConfig(path)
		if err != nil {
			return nil, err
		}

		return cfg.Bloqs, nil
	}

	spec := bloqSpec{}
	if spec.Kind, err = cmd.Flags().GetString("kind"); err != nil {
		return nil, err
	}
	if spec.Kind == "" {
		return nil, errors.New("either --config or --kind is required")
	}
	if spec.Bits, err = cmd.Flags().GetString("bits"); err != nil {
		return nil, err
	}
	if spec.SelBits, err = cmd.Flags().GetStringSlice("sel-bits"); err != nil {
		return nil, err
	}
	if spec.TargetBits, err = cmd.Flags().GetString("target-bits"); err != nil {
		return nil, err
	}
	if spec.NTargets, err = cmd.Flags().GetStringSlice("n-targets"); err != nil {
		return nil, err
	}
	if spec.IterLen, err = cmd.Flags().GetString("iter-len"); err != nil {
		return nil, err
	}
	if spec.Controls, err = cmd.Flags().GetInt("controls"); err != nil {
		return nil, err
	}

	return []bloqSpec{spec}, nil
}

func writeReport(cmd *cobra.Command, results []reportResult) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return err
	}
	outPath, err := cmd.Flags().GetString("out")
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if outPath != "" {
		f, err := os.Create(outPath)
		if err != nil {
			return errors.Wrapf(err, "creating %s", outPath)
		}
		defer func() { _ = f.Close() }()
		out = f
	}

	switch format {
	case "text":
		header := color.New(color.Bold)
		name := color.New(color.FgCyan)
		for _, r := range results {
			_, _ = header.Fprintf(out, "%s\n", r.Name)
			fmt.Fprintf(out, "  key:     %s\n", r.Key)
			fmt.Fprintf(out, "  T count: %s\n", r.TCount)
			if r.Toffoli != "" {
				fmt.Fprintf(out, "  Toffoli: %s\n", r.Toffoli)
			}
			for _, leaf := range r.Leaves {
				_, _ = name.Fprintf(out, "    %s", leaf.Key)
				fmt.Fprintf(out, " × %s\n", leaf.Count)
			}
		}

		return nil

	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")

		return errors.Wrap(enc.Encode(results), "encoding report")

	case "msgpack":
		data, err := msgpack.Marshal(results)
		if err != nil {
			return errors.Wrap(err, "encoding report")
		}
		_, err = out.Write(data)

		return errors.Wrap(err, "writing report")

	default:
		return errors.Errorf("unknown format %q", format)
	}
}

// newLogger builds the command logger: development output under
// --verbose, silent otherwise.
func newLogger(cmd *cobra.Command) (*zap.Logger, error) {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		return nil, err
	}
	if !verbose {
		return zap.NewNop(), nil
	}

	return zap.NewDevelopment()
}
