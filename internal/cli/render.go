package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/okian/salesrank/internal/domain/types"
)

// tableTopProducts is how many top products a table row lists.
const tableTopProducts = 3

func renderJSON(w io.Writer, reports []fileReport) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(reports); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

func renderTable(w io.Writer, reports []fileReport) error {
	for i, r := range reports {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return fmt.Errorf("write report: %w", err)
			}
		}
		if _, err := fmt.Fprintf(w, "== %s ==\n", r.Source); err != nil {
			return fmt.Errorf("write report: %w", err)
		}
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		if _, err := fmt.Fprintln(tw, "RANK\tSELLER\tNAME\tREVENUE\tPROFIT\tSALES\tBONUS\tTOP PRODUCTS\t"); err != nil {
			return fmt.Errorf("write report: %w", err)
		}
		for rank, row := range r.Report {
			if _, err := fmt.Fprintf(tw, "%d\t%s\t%s\t%.2f\t%.2f\t%d\t%.2f\t%s\t\n",
				rank+1, row.SellerID, row.Name, row.Revenue, row.Profit, row.SalesCount, row.Bonus,
				formatTopProducts(row.TopProducts)); err != nil {
				return fmt.Errorf("write report: %w", err)
			}
		}
		if err := tw.Flush(); err != nil {
			return fmt.Errorf("write report: %w", err)
		}
	}
	return nil
}

func formatTopProducts(top []types.TopProduct) string {
	if len(top) > tableTopProducts {
		top = top[:tableTopProducts]
	}
	parts := make([]string, len(top))
	for i, p := range top {
		parts[i] = fmt.Sprintf("%s x%d", p.SKU, p.Quantity)
	}
	if len(parts) == 0 {
		return "-"
	}
	return strings.Join(parts, ", ")
}
