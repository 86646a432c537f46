package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"

	"github.com/qbitops/swapnet/core"
	"github.com/qbitops/swapnet/cswap"
	"github.com/qbitops/swapnet/muxswap"
	"github.com/qbitops/swapnet/swapzero"
	"github.com/qbitops/swapnet/symb"
)

// reportConfig is the TOML shape of a report file: one [[bloq]] table per
// operator to cost.
type reportConfig struct {
	Bloqs []bloqSpec `toml:"bloq"`
}

// bloqSpec describes one operator. Width fields accept either a decimal
// integer or a symbol name, so symbolic cost reports work from config
// files too.
type bloqSpec struct {
	Kind       string   `toml:"kind"` // cswap | swapzero | muxswap
	Label      string   `toml:"label,omitempty"`
	Bits       string   `toml:"bits,omitempty"`        // cswap
	SelBits    []string `toml:"sel_bits,omitempty"`    // swapzero (per axis), muxswap (single)
	TargetBits string   `toml:"target_bits,omitempty"` // swapzero, muxswap
	NTargets   []string `toml:"n_targets,omitempty"`   // swapzero (per axis)
	IterLen    string   `toml:"iter_len,omitempty"`    // muxswap
	Controls   int      `toml:"controls,omitempty"`    // muxswap
}

func loadConfig(path string) (reportConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return reportConfig{}, errors.Wrapf(err, "reading config %s", path)
	}

	var cfg reportConfig
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return reportConfig{}, errors.Wrapf(err, "parsing config %s", path)
	}
	if len(cfg.Bloqs) == 0 {
		return reportConfig{}, errors.Errorf("config %s declares no [[bloq]] entries", path)
	}

	return cfg, nil
}

// parseValue reads a width parameter: a decimal integer becomes a
// concrete value, anything else a positive symbol.
func parseValue(s string) (symb.Value, error) {
	if s == "" {
		return symb.Value{}, fmt.Errorf("%w: missing width parameter", core.ErrConstruction)
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return symb.I(n), nil
	}
	if strings.Contains(s, "*") {
		return symb.Value{}, fmt.Errorf("%w: invalid symbol name %q", core.ErrConstruction, s)
	}

	return symb.Sym(s), nil
}

func parseValues(ss []string) ([]symb.Value, error) {
	out := make([]symb.Value, len(ss))
	for i, s := range ss {
		v, err := parseValue(s)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}

	return out, nil
}

// build instantiates the operator a spec describes.
func (s bloqSpec) build() (core.Bloq, error) {
	switch s.Kind {
	case "cswap":
		bits, err := parseValue(s.Bits)
		if err != nil {
			return nil, err
		}
		b, err := cswap.New(bits)
		if err != nil {
			return nil, err
		}

		return b, nil

	case "swapzero":
		sel, err := parseValues(s.SelBits)
		if err != nil {
			return nil, err
		}
		target, err := parseValue(s.TargetBits)
		if err != nil {
			return nil, err
		}
		n, err := parseValues(s.NTargets)
		if err != nil {
			return nil, err
		}
		b, err := swapzero.New(sel, target, n)
		if err != nil {
			return nil, err
		}

		return b, nil

	case "muxswap":
		if len(s.SelBits) != 1 {
			return nil, fmt.Errorf("%w: muxswap takes exactly one sel_bits entry, got %d",
				core.ErrConstruction, len(s.SelBits))
		}
		sel, err := parseValue(s.SelBits[0])
		if err != nil {
			return nil, err
		}
		iter, err := parseValue(s.IterLen)
		if err != nil {
			return nil, err
		}
		target, err := parseValue(s.TargetBits)
		if err != nil {
			return nil, err
		}
		b, err := muxswap.New(sel, iter, target, s.Controls)
		if err != nil {
			return nil, err
		}

		return b, nil

	default:
		return nil, fmt.Errorf("%w: unknown bloq kind %q", core.ErrConstruction, s.Kind)
	}
}

// name returns the report label, falling back to the structural key.
func (s bloqSpec) name(b core.Bloq) string {
	if s.Label != "" {
		return s.Label
	}

	return b.Key()
}
