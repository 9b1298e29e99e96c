package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/gridboard/pkg/controller"
	apperr "github.com/matzehuels/gridboard/pkg/errors"
	"github.com/matzehuels/gridboard/pkg/layout"
)

// layoutFlags are shared by every layout subcommand.
type layoutFlags struct {
	breakpoint string
	offline    bool
}

// layoutCommand creates the layout command and its subcommands.
func (c *CLI) layoutCommand() *cobra.Command {
	var lf layoutFlags

	cmd := &cobra.Command{
		Use:   "layout",
		Short: "Show and edit the dashboard layout",
		Long: `Show and edit the dashboard layout for one breakpoint.

Layouts load from the layout store, then the local cache, then the built-in
default. Every edit is written to the local cache at once and to the layout
store before the command exits.`,
	}

	cmd.PersistentFlags().StringVarP(&lf.breakpoint, "breakpoint", "b", string(layout.BreakpointLG), "breakpoint: lg, md, sm, xs")
	cmd.PersistentFlags().BoolVar(&lf.offline, "offline", false, "skip the layout store; use the local cache only")

	cmd.AddCommand(c.layoutShowCommand(&lf))
	cmd.AddCommand(c.layoutMoveCommand(&lf))
	cmd.AddCommand(c.layoutCollapseCommand(&lf))
	cmd.AddCommand(c.layoutResetCommand(&lf))
	cmd.AddCommand(c.layoutExportCommand(&lf))
	cmd.AddCommand(c.layoutImportCommand(&lf))

	return cmd
}

// openLayout parses the breakpoint flag and loads its layout.
func (c *CLI) openLayout(cmd *cobra.Command, lf *layoutFlags) (*controller.Controller, error) {
	bp, err := layout.ParseBreakpoint(lf.breakpoint)
	if err != nil {
		return nil, err
	}
	return c.newController(cmd, bp, lf.offline)
}

// closeLayout sends pending writes before the process exits.
func (c *CLI) closeLayout(ctx context.Context, ctrl *controller.Controller) error {
	if err := ctrl.Close(ctx); err != nil {
		return fmt.Errorf("save layout: %w", err)
	}
	return nil
}

func (c *CLI) layoutShowCommand(lf *layoutFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the current layout",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl, err := c.openLayout(cmd, lf)
			if err != nil {
				return err
			}
			defer ctrl.Close(cmd.Context())

			printLayout(ctrl.Breakpoint(), ctrl.Source(), ctrl.GetLayout(), "")
			return nil
		},
	}
}

func (c *CLI) layoutMoveCommand(lf *layoutFlags) *cobra.Command {
	var x, y, w, h int

	cmd := &cobra.Command{
		Use:   "move <widget>",
		Short: "Move or resize a widget",
		Long: `Move or resize a widget. Only the given coordinates change.

A widget that is not in the layout yet is added with the given geometry.
Sizes below the widget's minimums are raised to them. Heights of collapsed
widgets are kept until they are expanded.`,
		Example: `  gridboard layout move chart_sales_trend --x 0 --y 3 --w 12
  gridboard layout move kpi_sales -b md --h 4`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			if err := apperr.ValidateWidgetID(id); err != nil {
				return err
			}

			patch := layout.Patch{ID: id}
			flags := cmd.Flags()
			if flags.Changed("x") {
				patch.X = layout.Int(x)
			}
			if flags.Changed("y") {
				patch.Y = layout.Int(y)
			}
			if flags.Changed("w") {
				patch.W = layout.Int(w)
			}
			if flags.Changed("h") {
				patch.H = layout.Int(h)
			}
			if patch.X == nil && patch.Y == nil && patch.W == nil && patch.H == nil {
				return apperr.New(apperr.ErrCodeInvalidInput, "nothing to change: pass at least one of --x, --y, --w, --h")
			}

			ctrl, err := c.openLayout(cmd, lf)
			if err != nil {
				return err
			}
			ctrl.Apply(cmd.Context(), patch)
			if err := c.closeLayout(cmd.Context(), ctrl); err != nil {
				return err
			}

			printSuccess("Updated %s", StyleHighlight.Render(id))
			printLayout(ctrl.Breakpoint(), ctrl.Source(), ctrl.GetLayout(), id)
			return nil
		},
	}

	cmd.Flags().IntVar(&x, "x", 0, "column")
	cmd.Flags().IntVar(&y, "y", 0, "row")
	cmd.Flags().IntVar(&w, "w", 0, "width in columns")
	cmd.Flags().IntVar(&h, "h", 0, "height in rows")

	return cmd
}

func (c *CLI) layoutCollapseCommand(lf *layoutFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "collapse <widget>",
		Short: "Collapse or expand a widget",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			ctrl, err := c.openLayout(cmd, lf)
			if err != nil {
				return err
			}
			if !ctrl.ToggleCollapse(cmd.Context(), id) {
				_ = ctrl.Close(cmd.Context())
				return apperr.New(apperr.ErrCodeNotFound, "widget %q is not in the %s layout", id, ctrl.Breakpoint())
			}
			if err := c.closeLayout(cmd.Context(), ctrl); err != nil {
				return err
			}

			r, _ := ctrl.GetLayout().Find(id)
			state := "Expanded"
			if r.Collapsed {
				state = "Collapsed"
			}
			printSuccess("%s %s", state, StyleHighlight.Render(id))
			printLayout(ctrl.Breakpoint(), ctrl.Source(), ctrl.GetLayout(), id)
			return nil
		},
	}
}

func (c *CLI) layoutResetCommand(lf *layoutFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Restore the built-in default layout",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl, err := c.openLayout(cmd, lf)
			if err != nil {
				return err
			}
			ctrl.Reset(cmd.Context())
			if err := c.closeLayout(cmd.Context(), ctrl); err != nil {
				return err
			}
			printSuccess("Reset %s layout", ctrl.Breakpoint())
			return nil
		},
	}
}

func (c *CLI) layoutExportCommand(lf *layoutFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "export <file>",
		Short: "Write the current layout to a JSON file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl, err := c.openLayout(cmd, lf)
			if err != nil {
				return err
			}
			defer ctrl.Close(cmd.Context())

			if err := layout.WriteFile(ctrl.GetLayout(), args[0]); err != nil {
				return fmt.Errorf("export layout: %w", err)
			}
			printSuccess("Exported %s layout", ctrl.Breakpoint())
			printFile(args[0])
			printNewline()
			printNextStep("Restore it with", fmt.Sprintf("%s layout import -b %s %s", appName, ctrl.Breakpoint(), args[0]))
			return nil
		},
	}
}

func (c *CLI) layoutImportCommand(lf *layoutFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Replace the layout with one read from a JSON file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := layout.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("import layout: %w", err)
			}
			if len(l) == 0 {
				return apperr.New(apperr.ErrCodeInvalidLayout, "%s holds no widgets", args[0])
			}

			ctrl, err := c.openLayout(cmd, lf)
			if err != nil {
				return err
			}
			for _, id := range unknownWidgets(l) {
				printWarning("%s is not a dashboard widget; it is kept but not rendered", id)
			}
			ctrl.Replace(cmd.Context(), l)
			if err := c.closeLayout(cmd.Context(), ctrl); err != nil {
				return err
			}
			printSuccess("Imported %d widgets into the %s layout", len(ctrl.GetLayout()), ctrl.Breakpoint())
			return nil
		},
	}
}

// unknownWidgets returns the ids in l that no default layout places.
func unknownWidgets(l layout.Layout) []string {
	known := make(map[string]bool)
	for _, id := range layout.KnownWidgets() {
		known[id] = true
	}
	var ids []string
	for _, r := range l {
		if !known[r.ID] {
			ids = append(ids, r.ID)
		}
	}
	return ids
}
