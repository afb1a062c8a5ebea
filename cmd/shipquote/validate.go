package main

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"mercator-hq/shipquote/pkg/cli"
	"mercator-hq/shipquote/pkg/rules"
)

var validateFlags struct {
	rulesPath string
	strict    bool
	watch     bool
	debounce  time.Duration
	format    string
}

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a rules file",
	Long: `Load and validate a rules file without starting the server.

The validate command decodes the rules document, checks every section
and reports which sections were loaded and which delivery-time keys are
missing. With --watch it keeps running and validates the file again on
every save.

Examples:
  # Validate the rules file named in the configuration
  shipquote validate

  # Validate a specific file, requiring a complete delivery-time table
  shipquote validate --rules rules.yaml --strict

  # Re-validate on every change
  shipquote validate --rules rules.json --watch`,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().StringVarP(&validateFlags.rulesPath, "rules", "r", "", "rules file path (uses config if not specified)")
	validateCmd.Flags().BoolVar(&validateFlags.strict, "strict", false, "require every delivery-time key")
	validateCmd.Flags().BoolVar(&validateFlags.watch, "watch", false, "validate again whenever the file changes")
	validateCmd.Flags().DurationVar(&validateFlags.debounce, "debounce", rules.DefaultDebounceInterval, "quiet period before re-validating in watch mode")
	validateCmd.Flags().StringVarP(&validateFlags.format, "format", "f", "text", "output format: text, json")
}

func runValidate(cmd *cobra.Command, args []string) error {
	format, err := cli.ParseOutputFormat(validateFlags.format)
	if err != nil {
		return cli.WrapConfigError("format", "invalid output format", err)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	path := rulesPath(validateFlags.rulesPath, cfg)
	strict := validateFlags.strict || cfg.Rules.Strict
	formatter := cli.NewFormatter(format)
	out := cmd.OutOrStdout()

	report := validateRules(path, strict)
	if err := formatter.FormatTo(out, report); err != nil {
		return err
	}

	if !validateFlags.watch {
		if !report.Valid {
			return cli.NewConfigError("rules.path", report.Error)
		}
		return nil
	}

	watcher, err := rules.NewWatcher(path, validateFlags.debounce, slog.Default())
	if err != nil {
		return cli.NewCommandError("validate", err)
	}

	ctx, stop := cli.SetupSignalHandler(cmd.Context())
	defer stop()

	err = watcher.Watch(ctx, func() {
		if err := formatter.FormatTo(out, validateRules(path, strict)); err != nil {
			slog.Error("failed to write validation report", "error", err)
		}
	})
	if err != nil {
		return cli.NewCommandError("validate", err)
	}
	return nil
}

// validationReport is the outcome of loading one rules file.
type validationReport struct {
	Path                string          `json:"path"`
	Valid               bool            `json:"valid"`
	Error               string          `json:"error,omitempty"`
	Currency            string          `json:"currency,omitempty"`
	Sections            *rules.Sections `json:"sections,omitempty"`
	MissingDeliveryKeys []string        `json:"missing_delivery_keys,omitempty"`
	CheckedAt           time.Time       `json:"checked_at"`
}

func validateRules(path string, strict bool) validationReport {
	report := validationReport{Path: path, CheckedAt: time.Now().UTC()}

	rs, err := rules.LoadFile(path, strict)
	if err != nil {
		report.Error = err.Error()
		return report
	}

	sections := rs.Sections()
	report.Valid = true
	report.Currency = rs.Currency()
	report.Sections = &sections
	report.MissingDeliveryKeys = rs.MissingDeliveryKeys()
	return report
}

func (r validationReport) WriteText(w io.Writer) error {
	var sb strings.Builder
	if !r.Valid {
		fmt.Fprintf(&sb, "✗ %s: %s\n", r.Path, r.Error)
		_, err := io.WriteString(w, sb.String())
		return err
	}

	fmt.Fprintf(&sb, "✓ %s is valid\n", r.Path)
	fmt.Fprintf(&sb, "  Currency: %s\n", r.Currency)
	for _, s := range []struct {
		name   string
		loaded bool
	}{
		{rules.SectionPricing, r.Sections.Pricing},
		{rules.SectionAlerts, r.Sections.Alerts},
		{rules.SectionDeliveryTimes, r.Sections.DeliveryTimes},
	} {
		mark := "✓"
		if !s.loaded {
			mark = "✗"
		}
		fmt.Fprintf(&sb, "  %s %s\n", mark, s.name)
	}
	if len(r.MissingDeliveryKeys) > 0 {
		fmt.Fprintf(&sb, "  ⚠ missing delivery times: %s\n", strings.Join(r.MissingDeliveryKeys, ", "))
	}

	_, err := io.WriteString(w, sb.String())
	return err
}
