package layout

// Known widget ids. Ids are stable and never reused across widget types.
const (
	WidgetKPISales              = "kpi_sales"
	WidgetKPIOrders             = "kpi_orders"
	WidgetKPIExpenses           = "kpi_expenses"
	WidgetKPIInventory          = "kpi_inventory"
	WidgetChartSalesTrend       = "chart_sales_trend"
	WidgetChartExpenseBreakdown = "chart_expense_breakdown"
	WidgetTableTopDealers       = "table_top_dealers"
	WidgetTableLowStock         = "table_low_stock"
)

// KnownWidgets returns every widget id the default layouts place.
func KnownWidgets() []string {
	return []string{
		WidgetKPISales,
		WidgetKPIOrders,
		WidgetKPIExpenses,
		WidgetKPIInventory,
		WidgetChartSalesTrend,
		WidgetChartExpenseBreakdown,
		WidgetTableTopDealers,
		WidgetTableLowStock,
	}
}

// Default returns the built-in layout for bp. Unknown breakpoints get the lg
// layout. Every default is normalized, compact and overlap-free, and each
// call returns a fresh slice.
func Default(bp Breakpoint) Layout {
	switch bp {
	case BreakpointMD:
		return Layout{
			{ID: WidgetKPISales, X: 0, Y: 0, W: 5, H: 3, MinH: 3},
			{ID: WidgetKPIOrders, X: 5, Y: 0, W: 5, H: 3, MinH: 3},
			{ID: WidgetKPIExpenses, X: 0, Y: 3, W: 5, H: 3, MinH: 3},
			{ID: WidgetKPIInventory, X: 5, Y: 3, W: 5, H: 3, MinH: 3},
			{ID: WidgetChartSalesTrend, X: 0, Y: 6, W: 10, H: 6, MinW: 4, MinH: 4},
			{ID: WidgetChartExpenseBreakdown, X: 0, Y: 12, W: 5, H: 6, MinW: 3, MinH: 4},
			{ID: WidgetTableTopDealers, X: 5, Y: 12, W: 5, H: 6, MinW: 3, MinH: 3},
			{ID: WidgetTableLowStock, X: 0, Y: 18, W: 10, H: 5, MinW: 3, MinH: 3},
		}
	case BreakpointSM:
		return Layout{
			{ID: WidgetKPISales, X: 0, Y: 0, W: 3, H: 3, MinH: 3},
			{ID: WidgetKPIOrders, X: 3, Y: 0, W: 3, H: 3, MinH: 3},
			{ID: WidgetKPIExpenses, X: 0, Y: 3, W: 3, H: 3, MinH: 3},
			{ID: WidgetKPIInventory, X: 3, Y: 3, W: 3, H: 3, MinH: 3},
			{ID: WidgetChartSalesTrend, X: 0, Y: 6, W: 6, H: 6, MinW: 4, MinH: 4},
			{ID: WidgetChartExpenseBreakdown, X: 0, Y: 12, W: 6, H: 6, MinW: 3, MinH: 4},
			{ID: WidgetTableTopDealers, X: 0, Y: 18, W: 6, H: 5, MinW: 3, MinH: 3},
			{ID: WidgetTableLowStock, X: 0, Y: 23, W: 6, H: 5, MinW: 3, MinH: 3},
		}
	case BreakpointXS:
		return Layout{
			{ID: WidgetKPISales, X: 0, Y: 0, W: 2, H: 3, MinH: 3},
			{ID: WidgetKPIOrders, X: 2, Y: 0, W: 2, H: 3, MinH: 3},
			{ID: WidgetKPIExpenses, X: 0, Y: 3, W: 2, H: 3, MinH: 3},
			{ID: WidgetKPIInventory, X: 2, Y: 3, W: 2, H: 3, MinH: 3},
			{ID: WidgetChartSalesTrend, X: 0, Y: 6, W: 4, H: 5, MinW: 4, MinH: 4},
			{ID: WidgetChartExpenseBreakdown, X: 0, Y: 11, W: 4, H: 5, MinW: 3, MinH: 4},
			{ID: WidgetTableTopDealers, X: 0, Y: 16, W: 4, H: 5, MinW: 3, MinH: 3},
			{ID: WidgetTableLowStock, X: 0, Y: 21, W: 4, H: 5, MinW: 3, MinH: 3},
		}
	default:
		return Layout{
			{ID: WidgetKPISales, X: 0, Y: 0, W: 3, H: 3, MinH: 3},
			{ID: WidgetKPIOrders, X: 3, Y: 0, W: 3, H: 3, MinH: 3},
			{ID: WidgetKPIExpenses, X: 6, Y: 0, W: 3, H: 3, MinH: 3},
			{ID: WidgetKPIInventory, X: 9, Y: 0, W: 3, H: 3, MinH: 3},
			{ID: WidgetChartSalesTrend, X: 0, Y: 3, W: 8, H: 6, MinW: 4, MinH: 4},
			{ID: WidgetChartExpenseBreakdown, X: 8, Y: 3, W: 4, H: 6, MinW: 3, MinH: 4},
			{ID: WidgetTableTopDealers, X: 0, Y: 9, W: 6, H: 5, MinW: 3, MinH: 3},
			{ID: WidgetTableLowStock, X: 6, Y: 9, W: 6, H: 5, MinW: 3, MinH: 3},
		}
	}
}
