package cli

import (
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

type settingsFunc func() (settings, error)

func newItemCommand(deps Dependencies, resolve settingsFunc) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "item",
		Short: "Show menu items and price configurations.",
	}
	cmd.AddCommand(newItemShowCommand(deps, resolve))
	cmd.AddCommand(newItemQuoteCommand(deps, resolve))
	return cmd
}

func newItemShowCommand(deps Dependencies, resolve settingsFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "show <item-id>",
		Short: "Show a menu item with its addon types and options.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := resolve()
			if err != nil {
				return err
			}
			api, err := newAPI(deps, s)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			item, err := api.FetchMenuItem(ctx, args[0])
			if err != nil {
				return err
			}
			orderable, err := api.Orderable(ctx, *item)
			if err != nil {
				return err
			}
			view := toItemView(*item, orderable)
			return render(cmd.OutOrStdout(), s.Format, view, func(w io.Writer) error {
				row(w, "ITEM", view.Name)
				row(w, "PRICE", priceLabel(view))
				if view.Offer != "" {
					row(w, "OFFER", view.Offer)
				}
				row(w, "ORDERABLE", strconv.FormatBool(view.Orderable))
				row(w)
				row(w, "TYPE", "OPTION", "ID", "PRICE", "")
				for _, t := range view.AddonTypes {
					for _, o := range t.Options {
						row(w, typeLabel(t), o.Name, o.ID, "+"+o.Price, optionFlags(o))
					}
				}
				return nil
			})
		},
	}
}

func newItemQuoteCommand(deps Dependencies, resolve settingsFunc) *cobra.Command {
	var f selectionFlags
	cmd := &cobra.Command{
		Use:   "quote <item-id>",
		Short: "Price a configuration locally without adding it to a cart.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := resolve()
			if err != nil {
				return err
			}
			api, err := newAPI(deps, s)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			item, err := api.FetchMenuItem(ctx, args[0])
			if err != nil {
				return err
			}
			orderable, err := api.Orderable(ctx, *item)
			if err != nil {
				return err
			}
			session, err := buildSession(*item, f)
			if err != nil {
				return err
			}
			view := toQuoteView(session, orderable)
			return render(cmd.OutOrStdout(), s.Format, view, func(w io.Writer) error {
				writeQuoteTable(w, view)
				return nil
			})
		},
	}
	addSelectionFlags(cmd, &f)
	return cmd
}

func addSelectionFlags(cmd *cobra.Command, f *selectionFlags) {
	cmd.Flags().StringArrayVarP(&f.Options, "option", "o", nil, "Option to select as type=option or option (repeatable).")
	cmd.Flags().IntVarP(&f.Quantity, "quantity", "q", 1, "Quantity.")
	cmd.Flags().StringVar(&f.Note, "note", "", "Note for the kitchen.")
}

func writeQuoteTable(w io.Writer, v quoteView) {
	row(w, "ITEM", v.Name)
	for _, name := range v.Options {
		row(w, "OPTION", name)
	}
	row(w, "BASE", v.UnitBase)
	row(w, "ADDONS", v.AddonUnitSum)
	row(w, "UNIT", v.UnitPrice)
	row(w, "QUANTITY", strconv.Itoa(v.Quantity))
	row(w, "TOTAL", v.Total)
	row(w, "STATE", v.State)
	if len(v.MissingRequired) > 0 {
		row(w, "MISSING", strings.Join(v.MissingRequired, ", "))
	}
	if !v.Orderable {
		row(w, "ORDERABLE", "false")
	}
}

func priceLabel(v itemView) string {
	if v.PriceOnRequest {
		return "on request"
	}
	return v.BasePrice
}

func typeLabel(t typeView) string {
	label := t.Title
	if t.Required {
		label += " *"
	}
	if t.Multiple {
		label += " (multi)"
	}
	return label
}

func optionFlags(o optionView) string {
	if !o.Active {
		return "unavailable"
	}
	return ""
}
