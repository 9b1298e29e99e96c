package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matzehuels/gridboard/pkg/autoscale"
	apperr "github.com/matzehuels/gridboard/pkg/errors"
)

// scaleCommand prints the autoscale parameters for a widget box.
func (c *CLI) scaleCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "scale <width> <height>",
		Short: "Print the autoscale parameters for a widget size",
		Long: `Print the presentation parameters a widget gets for a pixel box.

Bar size follows the width. Every other parameter follows the height, so a
taller widget gets larger text and looser spacing.`,
		Example: `  gridboard scale 320 240
  gridboard scale 1200 600 --json`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			width, err := parseDimension("width", args[0])
			if err != nil {
				return err
			}
			height, err := parseDimension("height", args[1])
			if err != nil {
				return err
			}

			p := autoscale.Scale(width, height)
			if asJSON {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(p)
			}
			printParams(p)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}

func parseDimension(name, s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, apperr.New(apperr.ErrCodeInvalidInput, "%s must be a number, got %q", name, s)
	}
	return v, nil
}

func printParams(p autoscale.Params) {
	fmt.Println(StyleTitle.Render(fmt.Sprintf("%g × %g px", p.Width, p.Height)))
	printKeyValue("font", formatPx(p.FontSize))
	printKeyValue("title font", formatPx(p.TitleFontSize))
	printKeyValue("chart pad", formatPx(p.ChartPadding))
	printKeyValue("rows", strconv.Itoa(p.RowCount))
	printKeyValue("bar size", formatPx(p.BarSize))
	printKeyValue("icon size", formatPx(p.IconSize))
	printKeyValue("card pad", formatPx(p.CardPadding))
}

func formatPx(v float64) string {
	return fmt.Sprintf("%.1fpx", v)
}
