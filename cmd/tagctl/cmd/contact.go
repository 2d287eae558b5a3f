package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"pet-qr-tracker/internal/domain/contacts"
)

func newContactCmd(gf *globalFlags) *cobra.Command {
	contactCmd := &cobra.Command{
		Use:   "contact",
		Short: "Contactos que se muestran en la página de la mascota",
	}
	contactCmd.AddCommand(newContactAddCmd(gf))
	contactCmd.AddCommand(newContactListCmd(gf))
	return contactCmd
}

func newContactAddCmd(gf *globalFlags) *cobra.Command {
	var in contacts.AddInput

	c := &cobra.Command{
		Use:   "add <pet-id>",
		Short: "Agrega un contacto",
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

			in.PetID = args[0]
			ct, err := svc.contacts.Add(cmd.Context(), in)
			if err != nil {
				return fmt.Errorf("add contact: %w", err)
			}

			if wantJSON(gf) {
				return printJSON(cmd.OutOrStdout(), contacts.ToContactResponse(ct))
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Contact added: #%d %s (%s) for %s\n", ct.ID, ct.Name, ct.Label, ct.PetID)
			return nil
		},
	}
	c.Flags().StringVar(&in.Name, "name", "", "nombre (requerido)")
	c.Flags().StringVar(&in.Label, "label", "", "etiqueta (default Contacto)")
	c.Flags().StringVar(&in.Phone, "phone", "", "teléfono")
	c.Flags().StringVar(&in.WhatsApp, "whatsapp", "", "WhatsApp")
	c.Flags().IntVar(&in.Priority, "priority", 1, "orden en la página (menor primero)")
	return c
}

func newContactListCmd(gf *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "list <pet-id>",
		Short: "Lista los contactos de una mascota",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := openServices(gf)
			if err != nil {
				return err
			}
			defer svc.Close()

			items, err := svc.contacts.ListByPet(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("list contacts: %w", err)
			}

			out := cmd.OutOrStdout()
			if wantJSON(gf) {
				resp := make([]contacts.ContactResponse, 0, len(items))
				for _, ct := range items {
					resp = append(resp, contacts.ToContactResponse(ct))
				}
				return printJSON(out, resp)
			}

			if len(items) == 0 {
				fmt.Fprintln(out, "No contacts found.")
				return nil
			}
			fmt.Fprintf(out, "%-4s  %-6s  %-16s  %-20s  %-18s  %s\n", "PRIO", "ID", "LABEL", "NAME", "PHONE", "WHATSAPP")
			fmt.Fprintln(out, strings.Repeat("-", 90))
			for _, ct := range items {
				fmt.Fprintf(out, "%-4d  %-6d  %-16s  %-20s  %-18s  %s\n",
					ct.Priority, ct.ID, truncate(ct.Label, 16), truncate(ct.Name, 20), ct.Phone, ct.WhatsApp)
			}
			return nil
		},
	}
}
