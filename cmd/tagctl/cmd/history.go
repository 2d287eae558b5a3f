package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"pet-qr-tracker/internal/domain/scans"
	"pet-qr-tracker/internal/domain/tracking"
)

func newHistoryCmd(gf *globalFlags) *cobra.Command {
	var f scans.ListFilter

	c := &cobra.Command{
		Use:   "history",
		Short: "Historial de escaneos, más reciente primero",
		Long: `Muestra el historial paginado. Las fechas son YYYY-MM-DD en UTC y
ambos extremos se incluyen.

Ejemplos:
  tagctl history --pet frida
  tagctl history --from 2025-03-01 --to 2025-03-10 --page 2 --page-size 50
  tagctl history --pet frida --located`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := openServices(gf)
			if err != nil {
				return err
			}
			defer svc.Close()

			page, err := svc.scans.List(cmd.Context(), f)
			if err != nil {
				return fmt.Errorf("history: %w", err)
			}

			out := cmd.OutOrStdout()
			if wantJSON(gf) {
				resp := tracking.HistoryResponse{
					Total:    page.Total,
					Page:     page.Page,
					PageSize: page.PageSize,
					Pages:    page.Pages,
					Rows:     make([]tracking.EventResponse, 0, len(page.Rows)),
				}
				for _, e := range page.Rows {
					resp.Rows = append(resp.Rows, tracking.ToEventResponse(e))
				}
				return printJSON(out, resp)
			}

			if len(page.Rows) == 0 {
				fmt.Fprintln(out, "No events found.")
				return nil
			}

			fmt.Fprintf(out, "%-8s  %-23s  %-12s  %-9s  %-15s  %-22s  %s\n", "ID", "TS (UTC)", "PET", "KIND", "IP", "LOCATION", "NOTE")
			fmt.Fprintln(out, strings.Repeat("-", 120))
			for _, e := range page.Rows {
				loc := "-"
				if e.Location != nil {
					loc = fmt.Sprintf("%.5f,%.5f", e.Location.Lat, e.Location.Lon)
				}
				fmt.Fprintf(out, "%-8d  %-23s  %-12s  %-9s  %-15s  %-22s  %s\n",
					e.ID,
					e.Timestamp.UTC().Format(scans.TimestampLayout),
					truncate(e.PetID, 12),
					e.Kind,
					truncate(e.IP, 15),
					loc,
					truncate(e.Note, 40),
				)
			}
			fmt.Fprintf(out, "\nPage %d/%d (%d event(s))\n", page.Page, page.Pages, page.Total)
			return nil
		},
	}
	c.Flags().StringVar(&f.PetID, "pet", "", "slug de la mascota (vacío = todas)")
	c.Flags().StringVar(&f.DateFrom, "from", "", "desde (YYYY-MM-DD)")
	c.Flags().StringVar(&f.DateTo, "to", "", "hasta (YYYY-MM-DD)")
	c.Flags().BoolVar(&f.LocatedOnly, "located", false, "solo eventos con ubicación")
	c.Flags().IntVar(&f.Page, "page", 1, "página")
	c.Flags().IntVar(&f.PageSize, "page-size", scans.DefaultPageSize, "tamaño de página (5..200)")
	return c
}

func newStatsCmd(gf *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "stats <pet-id>",
		Short: "Resumen de actividad de una mascota",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := openServices(gf)
			if err != nil {
				return err
			}
			defer svc.Close()

			ok, err := svc.pets.Exists(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("pet %q not found", args[0])
			}

			st, err := svc.scans.Stats(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("stats: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Events:  %d\n", st.Total)
			fmt.Fprintf(out, "Located: %d\n", st.Located)
			if st.Last != nil {
				fmt.Fprintf(out, "Last:    %s (%s)\n", st.Last.Timestamp.UTC().Format(scans.TimestampLayout), st.Last.Kind)
			} else {
				fmt.Fprintln(out, "Last:    never")
			}
			return nil
		},
	}
}
