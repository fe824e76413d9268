package main

import (
	"fmt"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"github.com/tealeg/xlsx/v2"
	"go.uber.org/zap"

	"github.com/sahoojanmejaya-aorbotreks/aorboweb/internal/store"
)

var (
	contactsLimit  int
	contactsOffset int
	contactsXLSX   string
)

var contactsCmd = &cobra.Command{
	Use:   "contacts",
	Short: "List contact submissions, optionally exporting to XLSX",
	RunE: func(cmd *cobra.Command, _ []string) error {
		if err := cfg.Validate("contacts"); err != nil {
			return err
		}
		ctx := cmd.Context()

		st, err := store.New(ctx, cfg.Store.Driver, cfg.Store.DatabaseURL)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		contacts, err := st.ListContacts(ctx, contactsLimit, contactsOffset)
		if err != nil {
			return err
		}

		if contactsXLSX != "" {
			file := xlsx.NewFile()
			sheet, err := file.AddSheet("Contacts")
			if err != nil {
				return eris.Wrap(err, "add sheet")
			}

			header := sheet.AddRow()
			for _, col := range []string{"ID", "Name", "Email", "Mobile", "User Type", "Message", "Created At"} {
				header.AddCell().SetString(col)
			}
			for _, c := range contacts {
				row := sheet.AddRow()
				row.AddCell().SetString(c.ID)
				row.AddCell().SetString(c.Name)
				row.AddCell().SetString(c.Email)
				row.AddCell().SetString(c.Mobile)
				row.AddCell().SetString(c.UserType)
				row.AddCell().SetString(c.Message)
				row.AddCell().SetString(c.CreatedAt.Format(time.RFC3339))
			}

			if err := file.Save(contactsXLSX); err != nil {
				return eris.Wrap(err, "save xlsx")
			}
			zap.L().Info("contacts exported",
				zap.Int("count", len(contacts)),
				zap.String("file", contactsXLSX),
			)
			return nil
		}

		for _, c := range contacts {
			fmt.Printf("%s  %-20s  %-30s  %-10s  %s\n",
				c.CreatedAt.Format("2006-01-02 15:04"), c.Name, c.Email, c.UserType, c.Message)
		}
		fmt.Printf("%d contact(s)\n", len(contacts))
		return nil
	},
}

func init() {
	contactsCmd.Flags().IntVar(&contactsLimit, "limit", 50, "max contacts to list")
	contactsCmd.Flags().IntVar(&contactsOffset, "offset", 0, "pagination offset")
	contactsCmd.Flags().StringVar(&contactsXLSX, "xlsx", "", "export to XLSX file instead of printing")
	rootCmd.AddCommand(contactsCmd)
}
