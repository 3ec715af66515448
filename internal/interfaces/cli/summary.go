package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/aquaboard/aquaboard/internal/application/dashboard"
	"github.com/aquaboard/aquaboard/internal/infrastructure/monitoring/logging"
)

func newSummaryCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Fetch the permit dataset and print a KPI summary",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}

			source, closeSource, err := buildSource(cmd.Context(), cfg, logging.NewNopLogger())
			if err != nil {
				return err
			}
			defer closeSource()

			coord := dashboard.NewCoordinator(source, logging.NewNopLogger())
			coord.Init(cmd.Context())

			printSummary(cmd.OutOrStdout(), coord.View())
			return nil
		},
	}
}

// printSummary renders the KPI cards and the sector breakdown as text.
func printSummary(w io.Writer, v dashboard.View) {
	if v.Advisory != "" {
		fmt.Fprintf(w, "note: %s\n\n", v.Advisory)
	}

	kpi := v.Aggs.KPI
	fmt.Fprintf(w, "Permits:          %d\n", kpi.TotalCount)
	fmt.Fprintf(w, "Authorized total: %s\n", dashboard.FormatVolume(kpi.TotalVolume))
	fmt.Fprintf(w, "Average term:     %.1f years\n", kpi.AverageTerm)
	if kpi.TopExtractor != nil {
		fmt.Fprintf(w, "Top extractor:    %s (%s)\n",
			kpi.TopExtractor.FullName, dashboard.FormatVolume(kpi.TopExtractor.Volume))
	}

	if len(v.Aggs.SectorTotals) > 0 {
		fmt.Fprintf(w, "\nBy sector:\n")
		for _, s := range v.Aggs.SectorTotals {
			fmt.Fprintf(w, "  %-24s %12s  %s\n",
				s.Sector, dashboard.FormatVolume(s.Volume), dashboard.FormatShare(s.Share))
		}
	}
}
