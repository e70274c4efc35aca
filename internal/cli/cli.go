// Package cli implements the salesreport command-line interface.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/okian/salesrank/internal/config"
)

// ErrUsage marks errors caused by bad arguments.
var ErrUsage = errors.New("usage error")

// Env is what a command needs from the process.
type Env struct {
	Config *config.Config
	Stdout io.Writer
}

// Run executes the CLI with the given arguments (without the program name).
func Run(ctx context.Context, env Env, args []string) error {
	if env.Config == nil {
		env.Config = config.New()
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: salesreport <command> [options]\ncommands: report, generate, help", ErrUsage)
	}

	switch args[0] {
	case "report":
		return runReport(ctx, env, args[1:])
	case "generate":
		return runGenerate(ctx, env, args[1:])
	case "help", "-h", "-help", "--help":
		ShowHelp(env.Stdout)
		return nil
	default:
		return fmt.Errorf("%w: unknown command: %s", ErrUsage, args[0])
	}
}

// ShowHelp prints usage information.
func ShowHelp(w io.Writer) {
	_, _ = io.WriteString(w, `Sales Report Tool
=================

Ranks sellers by profit and computes their bonuses.

Usage:
  salesreport report [options] FILE...
  salesreport report -generate [generator options]
  salesreport generate -out FILE [generator options]

Report options:
  -format string
        Output format: json or table (default from SALES_OUTPUT_FORMAT, json)
  -generate
        Analyze a generated dataset instead of files
  -parallel int
        Number of files analyzed at once (default CPU cores)

Generator options:
  -seed uint      Random seed (default 1)
  -sellers int    Number of sellers (default 5)
  -products int   Number of products (default 20)
  -records int    Number of purchase records (default 200)
  -max-items int  Maximum lines per receipt (default 4)
  -customers int  Size of the customer pool (default 50)
  -start date     First receipt date, YYYY-MM-DD (default 2024-01-01)

Configuration is read from SALES_CONFIG (YAML) and SALES_* variables,
e.g. SALES_BONUS_LEADER_RATE=0.2.

Examples:
  salesreport report -format table data/january.json data/february.json
  salesreport generate -out data/sample.json -seed 7 -records 1000
`)
}
