package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/zephyrtronium/formula"
	"github.com/zephyrtronium/formula/internal/config"
)

const logLevelEnv = "FORMULA_LOG_LEVEL"

type settings struct {
	configPath string
	scale      uint
	rounding   string
	logLevel   string
	in         string
	fallback   string

	cfg   *config.Config
	arith *formula.Arithmetic
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		log.Fatal().Err(err).Msg("formula failed")
	}
}

func newRootCmd() *cobra.Command {
	var s settings
	rootCmd := &cobra.Command{
		Use:           "formula",
		Short:         "Evaluate decimal formulas with fixed scale and rounding",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return s.prerun(cmd)
		},
	}
	rootCmd.PersistentFlags().StringVar(&s.configPath, "config", "", "TOML or YAML configuration file")
	rootCmd.PersistentFlags().UintVar(&s.scale, "scale", formula.DefaultScale, "number of fractional digits in results")
	rootCmd.PersistentFlags().StringVar(&s.rounding, "rounding", formula.HalfUp.String(), "rounding mode: half_up, half_down, half_even, up, down, ceiling, floor, or unnecessary")
	rootCmd.PersistentFlags().StringVar(&s.logLevel, "log-level", zerolog.LevelInfoValue, "log level (default from "+logLevelEnv+")")

	evalCmd := &cobra.Command{
		Use:     "eval formula [value...]",
		Short:   "Evaluate a formula with values for its operands in order",
		Example: `  formula eval "bonus = (grossProfit - base) * rate" 8844.43 5000 0.01`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return s.evalLines(cmd.OutOrStdout(), args[0], args[1:])
		},
	}
	evalCmd.Flags().StringVar(&s.in, "in", "", `file of value lines, one evaluation per line ("-" for stdin)`)
	rootCmd.AddCommand(evalCmd)

	computeCmd := &cobra.Command{
		Use:     "compute token...",
		Short:   "Evaluate an expression of space-separated numbers, operators, and parentheses",
		Example: `  formula compute "( 2 + 3 ) * 4"`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var toks []string
			for _, arg := range args {
				toks = append(toks, strings.Fields(arg)...)
			}
			r, err := s.arith.Compute(formula.Tokens(toks...)...)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), r)
			return nil
		},
	}
	rootCmd.AddCommand(computeCmd)

	runCmd := &cobra.Command{
		Use:   "run name [value...]",
		Short: "Evaluate a formula named in the configuration file",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := s.cfg.Formula(args[0])
			if err != nil {
				return err
			}
			return s.evalLines(cmd.OutOrStdout(), f, args[1:])
		},
	}
	runCmd.Flags().StringVar(&s.in, "in", "", `file of value lines, one evaluation per line ("-" for stdin)`)
	rootCmd.AddCommand(runCmd)

	divCmd := &cobra.Command{
		Use:   "div dividend divisor",
		Short: "Divide with the configured scale and rounding",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			x, y := formula.Text(args[0]), formula.Text(args[1])
			var (
				r   formula.Decimal
				err error
			)
			if cmd.Flags().Changed("fallback") {
				fb, perr := formula.Parse(s.fallback)
				if perr != nil {
					return errors.Wrap(perr, "fallback")
				}
				r, err = s.arith.DivWithJudge(x, y, fb)
			} else {
				r, err = s.arith.Div(x, y)
			}
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), r)
			return nil
		},
	}
	divCmd.Flags().StringVar(&s.fallback, "fallback", "0", "result when the divisor is zero; without it, dividing by zero fails")
	rootCmd.AddCommand(divCmd)

	return rootCmd
}

// prerun sets up logging and loads the configuration. Flags given explicitly
// override the configuration file, which overrides the defaults. The log
// level environment variable sits between flags and the file.
func (s *settings) prerun(cmd *cobra.Command) error {
	env := os.Getenv(logLevelEnv)
	prepLogging(env)

	s.cfg = config.Default()
	if s.configPath != "" {
		cfg, err := config.Load(s.configPath)
		if err != nil {
			return err
		}
		s.cfg = cfg
	}
	flags := cmd.Flags()
	if flags.Changed("scale") {
		s.cfg.Scale = s.scale
	}
	if flags.Changed("rounding") {
		m, err := formula.ParseRoundingMode(s.rounding)
		if err != nil {
			return err
		}
		s.cfg.Rounding = m
	}
	switch {
	case flags.Changed("log-level"):
		s.cfg.LogLevel = s.logLevel
	case env != "":
		s.cfg.LogLevel = env
	}
	if err := s.cfg.Validate(); err != nil {
		return err
	}
	zerolog.SetGlobalLevel(s.cfg.Level())
	s.arith = s.cfg.Arithmetic(log.Logger)
	log.Debug().
		Int("scale", s.arith.Scale()).
		Stringer("rounding", s.arith.Rounding()).
		Str("config", s.configPath).
		Msg("ready")
	return nil
}

func prepLogging(logLevel string) {
	if logLevel == "" {
		logLevel = zerolog.LevelInfoValue
	}

	badParse := false
	lvl, err := zerolog.ParseLevel(logLevel)
	if err != nil {
		lvl = zerolog.InfoLevel
		badParse = true
	}

	zerolog.SetGlobalLevel(lvl)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "2006-01-02T15:04:05.999"})

	if badParse {
		log.Error().
			Msgf("Bad value for %s: %s", logLevelEnv, logLevel)
	}
}

// evalLines evaluates f with values, or, if an input file is set, once for
// each non-blank line of whitespace-separated values appended to values.
func (s *settings) evalLines(w io.Writer, f string, values []string) error {
	in, err := infile(s.in)
	if err != nil {
		return err
	}
	if in == nil {
		return s.evalOne(w, f, values)
	}
	defer in.Close()
	sc := bufio.NewScanner(in)
	for n := 1; sc.Scan(); n++ {
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}
		vals := append(append([]string(nil), values...), fields...)
		if err := s.evalOne(w, f, vals); err != nil {
			return errors.Wrapf(err, "line %d", n)
		}
	}
	return errors.Wrap(sc.Err(), "reading values")
}

func (s *settings) evalOne(w io.Writer, f string, values []string) error {
	nums := make([]formula.Number, len(values))
	for i, v := range values {
		nums[i] = formula.Text(v)
	}
	r, err := s.arith.ComputeByFormula(f, nums...)
	if err != nil {
		return err
	}
	fmt.Fprintln(w, r)
	return nil
}

func infile(inname string) (io.ReadCloser, error) {
	switch inname {
	case "":
		return nil, nil
	case "-":
		return io.NopCloser(os.Stdin), nil
	default:
		f, err := os.Open(inname)
		if err != nil {
			return nil, errors.Wrap(err, "opening input")
		}
		return f, nil
	}
}
