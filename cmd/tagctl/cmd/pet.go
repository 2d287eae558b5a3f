package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"pet-qr-tracker/internal/domain/pets"
	"pet-qr-tracker/internal/platform/geo"
)

func newPetCmd(gf *globalFlags) *cobra.Command {
	petCmd := &cobra.Command{
		Use:   "pet",
		Short: "Comandos de mascotas",
	}
	petCmd.AddCommand(newPetListCmd(gf))
	petCmd.AddCommand(newPetCreateCmd(gf))
	petCmd.AddCommand(newPetStatusCmd(gf))
	petCmd.AddCommand(newPetHomeCmd(gf))
	petCmd.AddCommand(newPetDeleteCmd(gf))
	return petCmd
}

func newPetListCmd(gf *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Lista las mascotas",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := openServices(gf)
			if err != nil {
				return err
			}
			defer svc.Close()

			items, err := svc.pets.List(cmd.Context())
			if err != nil {
				return fmt.Errorf("list pets: %w", err)
			}

			out := cmd.OutOrStdout()
			if wantJSON(gf) {
				resp := make([]pets.PetResponse, 0, len(items))
				for _, p := range items {
					resp = append(resp, pets.ToPetResponse(p))
				}
				return printJSON(out, resp)
			}

			if len(items) == 0 {
				fmt.Fprintln(out, "No pets found.")
				return nil
			}

			fmt.Fprintf(out, "%-20s  %-20s  %-6s  %-24s  %s\n", "ID", "NAME", "STATUS", "HOME", "LAST SEEN")
			fmt.Fprintln(out, strings.Repeat("-", 96))
			for _, p := range items {
				fmt.Fprintf(out, "%-20s  %-20s  %-6s  %-24s  %s\n",
					truncate(p.ID, 20),
					truncate(p.Name, 20),
					p.Status,
					formatHome(p.Home),
					formatLastSeen(p.LastSeen),
				)
			}
			fmt.Fprintf(out, "\nTotal: %d pet(s)\n", len(items))
			return nil
		},
	}
}

func newPetCreateCmd(gf *globalFlags) *cobra.Command {
	var id, name, photo, status string

	c := &cobra.Command{
		Use:   "create",
		Short: "Crea una mascota",
		Long: `Crea una mascota. El id es el slug de la chapita (a-z 0-9 - _).

Ejemplo:
  tagctl pet create --id frida --name Frida`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if id == "" || name == "" {
				return fmt.Errorf("--id and --name are required")
			}

			svc, err := openServices(gf)
			if err != nil {
				return err
			}
			defer svc.Close()

			p, err := svc.pets.Create(cmd.Context(), pets.CreateInput{
				ID:     id,
				Name:   name,
				Photo:  photo,
				Status: pets.Status(strings.ToLower(strings.TrimSpace(status))),
			})
			if err != nil {
				return fmt.Errorf("create pet: %w", err)
			}

			if wantJSON(gf) {
				return printJSON(cmd.OutOrStdout(), pets.ToPetResponse(p))
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Pet created: %s (%s), status %s\n", p.ID, p.Name, p.Status)
			return nil
		},
	}
	c.Flags().StringVar(&id, "id", "", "slug de la mascota (requerido)")
	c.Flags().StringVar(&name, "name", "", "nombre (requerido)")
	c.Flags().StringVar(&photo, "photo", "", "URL de la foto")
	c.Flags().StringVar(&status, "status", "", "estado inicial (lost, home); default lost")
	return c
}

func newPetStatusCmd(gf *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "status <pet-id> <lost|home>",
		Short: "Marca la mascota como perdida o en casa",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := openServices(gf)
			if err != nil {
				return err
			}
			defer svc.Close()

			p, err := svc.pets.SetStatus(cmd.Context(), args[0], pets.Status(strings.ToLower(strings.TrimSpace(args[1]))))
			if err != nil {
				return fmt.Errorf("set status: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s is now %s\n", p.ID, p.Status)
			return nil
		},
	}
}

func newPetHomeCmd(gf *globalFlags) *cobra.Command {
	var lat, lon float64
	var clearHome bool

	c := &cobra.Command{
		Use:   "home <pet-id>",
		Short: "Carga o borra el hogar de la mascota",
		Long: `Carga el hogar usado por la alerta de distancia.

Ejemplos:
  tagctl pet home frida --lat -34.6037 --lon -58.3816
  tagctl pet home frida --clear`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !clearHome && (!cmd.Flags().Changed("lat") || !cmd.Flags().Changed("lon")) {
				return fmt.Errorf("--lat and --lon are required (or --clear)")
			}

			svc, err := openServices(gf)
			if err != nil {
				return err
			}
			defer svc.Close()

			var p pets.Pet
			if clearHome {
				p, err = svc.pets.ClearHomeLocation(cmd.Context(), args[0])
			} else {
				p, err = svc.pets.SetHomeLocation(cmd.Context(), args[0], lat, lon)
			}
			if err != nil {
				return fmt.Errorf("set home: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s home: %s\n", p.ID, formatHome(p.Home))
			return nil
		},
	}
	c.Flags().Float64Var(&lat, "lat", 0, "latitud")
	c.Flags().Float64Var(&lon, "lon", 0, "longitud")
	c.Flags().BoolVar(&clearHome, "clear", false, "borra el hogar")
	return c
}

func newPetDeleteCmd(gf *globalFlags) *cobra.Command {
	var force bool

	c := &cobra.Command{
		Use:   "delete <pet-id>",
		Short: "Borra una mascota con su historial y contactos",
		Long: `Borra la mascota, todos sus escaneos y sus contactos.
La mascota default (DEFAULT_PET_ID) no se puede borrar.

Ejemplos:
  tagctl pet delete rocky
  tagctl pet delete rocky --force  # sin confirmación`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := openServices(gf)
			if err != nil {
				return err
			}
			defer svc.Close()

			p, err := svc.pets.Get(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("get pet: %w", err)
			}

			out := cmd.OutOrStdout()
			if !force {
				fmt.Fprintf(out, "Delete pet '%s' and all its events and contacts? [y/N]: ", p.ID)
				var confirm string
				_, _ = fmt.Fscanln(cmd.InOrStdin(), &confirm)
				if strings.ToLower(strings.TrimSpace(confirm)) != "y" {
					fmt.Fprintln(out, "Canceled.")
					return nil
				}
			}

			if err := svc.pets.Delete(cmd.Context(), p.ID); err != nil {
				return fmt.Errorf("delete pet: %w", err)
			}
			fmt.Fprintf(out, "Pet deleted: %s\n", p.ID)
			return nil
		},
	}
	c.Flags().BoolVar(&force, "force", false, "no pide confirmación")
	return c
}

func formatHome(h *geo.Point) string {
	if h == nil {
		return "-"
	}
	return fmt.Sprintf("%.5f,%.5f", h.Lat, h.Lon)
}

func formatLastSeen(ls *pets.LastSeen) string {
	if ls == nil {
		return "never"
	}
	s := ls.At.UTC().Format("2006-01-02 15:04")
	if ls.Location != nil {
		s += fmt.Sprintf(" @ %.5f,%.5f", ls.Location.Lat, ls.Location.Lon)
	}
	return s
}
