package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"mercator-hq/shipquote/pkg/cli"
	"mercator-hq/shipquote/pkg/rules"
	"mercator-hq/shipquote/pkg/shipping"
)

var quoteFlags struct {
	length      float64
	width       float64
	height      float64
	weight      float64
	express     bool
	destination string
	input       string
	rulesPath   string
	format      string
}

var quoteCmd = &cobra.Command{
	Use:   "quote",
	Short: "Calculate a shipping quote",
	Long: `Calculate a shipping quote locally against a rules file.

The package is described either with flags or with a JSON request body in
the same shape POST /api/calculate accepts. Dimension flags that are not
given are treated as missing fields.

Examples:
  # Quote a national standard shipment
  shipquote quote --length 30 --width 20 --height 15 --weight 10

  # Quote an express international shipment as JSON
  shipquote quote -L 30 -W 20 -H 15 -w 10 --express --destination international --format json

  # Quote a request body read from stdin
  echo '{"length_cm":30,"width_cm":20,"height_cm":15,"weight_kg":10,"destination":"national"}' | shipquote quote --input -`,
	RunE: runQuote,
}

func init() {
	rootCmd.AddCommand(quoteCmd)

	quoteCmd.Flags().Float64VarP(&quoteFlags.length, "length", "L", 0, "package length in cm")
	quoteCmd.Flags().Float64VarP(&quoteFlags.width, "width", "W", 0, "package width in cm")
	quoteCmd.Flags().Float64VarP(&quoteFlags.height, "height", "H", 0, "package height in cm")
	quoteCmd.Flags().Float64VarP(&quoteFlags.weight, "weight", "w", 0, "package weight in kg")
	quoteCmd.Flags().BoolVar(&quoteFlags.express, "express", false, "express shipping")
	quoteCmd.Flags().StringVarP(&quoteFlags.destination, "destination", "d", shipping.DestinationNational, "destination: national, international")
	quoteCmd.Flags().StringVarP(&quoteFlags.input, "input", "i", "", "read the request as JSON from a file (- for stdin) instead of flags")
	quoteCmd.Flags().StringVarP(&quoteFlags.rulesPath, "rules", "r", "", "rules file path (uses config if not specified)")
	quoteCmd.Flags().StringVarP(&quoteFlags.format, "format", "f", "text", "output format: text, json")
}

func runQuote(cmd *cobra.Command, args []string) error {
	format, err := cli.ParseOutputFormat(quoteFlags.format)
	if err != nil {
		return cli.WrapConfigError("format", "invalid output format", err)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	path := rulesPath(quoteFlags.rulesPath, cfg)
	rs, err := rules.LoadFile(path, cfg.Rules.Strict)
	if err != nil {
		return cli.WrapConfigError("rules.path", "failed to load rules", err)
	}

	var params shipping.Params
	if quoteFlags.input != "" {
		params, err = readParams(quoteFlags.input, cmd.InOrStdin())
	} else {
		params = paramsFromFlags(cmd.Flags())
	}
	if err != nil {
		return cli.NewCommandError("quote", err)
	}

	result, err := shipping.NewQuoter(rs, nil, nil).Quote(cmd.Context(), params)
	if err != nil {
		return cli.NewCommandError("quote", err)
	}

	return cli.NewFormatter(format).FormatTo(cmd.OutOrStdout(), quoteView{result})
}

// paramsFromFlags builds a request from the flags that were set, so that
// unset dimensions surface as missing fields.
func paramsFromFlags(flags *pflag.FlagSet) shipping.Params {
	params := shipping.Params{
		shipping.FieldDestination: quoteFlags.destination,
		shipping.FieldExpress:     quoteFlags.express,
	}
	dims := []struct {
		flag  string
		field string
		value float64
	}{
		{"length", shipping.FieldLength, quoteFlags.length},
		{"width", shipping.FieldWidth, quoteFlags.width},
		{"height", shipping.FieldHeight, quoteFlags.height},
		{"weight", shipping.FieldWeight, quoteFlags.weight},
	}
	for _, d := range dims {
		if flags.Changed(d.flag) {
			params[d.field] = d.value
		}
	}
	return params
}

func readParams(path string, stdin io.Reader) (shipping.Params, error) {
	if path == "-" {
		return shipping.DecodeParams(stdin)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open request file: %w", err)
	}
	defer f.Close()
	return shipping.DecodeParams(f)
}

// quoteView renders a QuoteResult for the terminal. It marshals to the same
// JSON as the API response body.
type quoteView struct {
	*shipping.QuoteResult
}

func (v quoteView) WriteText(w io.Writer) error {
	r := v.QuoteResult
	pkg := r.PackageSummary
	speed := "standard"
	if pkg.ExpressShipping {
		speed = "express"
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Quote %s\n", r.CalculationID)
	fmt.Fprintf(&sb, "  Package:     %g x %g x %g cm (%g cm3), %g kg\n",
		pkg.Dimensions.LengthCm, pkg.Dimensions.WidthCm, pkg.Dimensions.HeightCm,
		pkg.Dimensions.VolumeCm3, pkg.WeightKg)
	fmt.Fprintf(&sb, "  Shipping:    %s %s\n", pkg.Destination, speed)
	fmt.Fprintf(&sb, "  Base price:  %.2f\n", r.PriceBreakdown.BasePrice)
	fmt.Fprintf(&sb, "  Weight cost: %.2f\n", r.PriceBreakdown.WeightCost)
	fmt.Fprintf(&sb, "  Volume cost: %.2f\n", r.PriceBreakdown.VolumeCost)
	fmt.Fprintf(&sb, "  Multipliers: express x%g, destination x%g\n",
		r.PriceBreakdown.ExpressMultiplier, r.PriceBreakdown.DestinationMultiplier)
	fmt.Fprintf(&sb, "  Total:       %.2f %s\n", r.TotalPrice, r.Currency)
	fmt.Fprintf(&sb, "  Delivery:    %s\n", r.EstimatedDelivery)
	if len(r.Alerts) == 0 {
		sb.WriteString("  Alerts:      none\n")
	} else {
		sb.WriteString("  Alerts:\n")
		for _, a := range r.Alerts {
			fmt.Fprintf(&sb, "    ⚠ %s\n", a)
		}
	}

	_, err := io.WriteString(w, sb.String())
	return err
}
