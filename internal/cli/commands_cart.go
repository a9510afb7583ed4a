package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"restaurant-ordering/internal/configurator"
	"restaurant-ordering/internal/contract"
)

func newCartCommand(deps Dependencies, resolve settingsFunc) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cart",
		Short: "Show the active cart or add configured items.",
	}
	cmd.AddCommand(newCartShowCommand(deps, resolve))
	cmd.AddCommand(newCartAddCommand(deps, resolve))
	return cmd
}

func newCartShowCommand(deps Dependencies, resolve settingsFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the active cart.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := resolve()
			if err != nil {
				return err
			}
			api, err := newAPI(deps, s)
			if err != nil {
				return err
			}
			cart, err := api.ActiveCart(cmd.Context())
			if err != nil {
				return err
			}
			return writeCart(cmd.OutOrStdout(), s.Format, *cart)
		},
	}
}

func newCartAddCommand(deps Dependencies, resolve settingsFunc) *cobra.Command {
	var f selectionFlags
	cmd := &cobra.Command{
		Use:   "add <cart-id> <item-id>",
		Short: "Configure an item and add it to a cart.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := resolve()
			if err != nil {
				return err
			}
			if s.Token == "" {
				return errors.New("token is required, run orderctl login first")
			}
			api, err := newAPI(deps, s)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			item, err := api.FetchMenuItem(ctx, args[1])
			if err != nil {
				return err
			}
			orderable, err := api.Orderable(ctx, *item)
			if err != nil {
				return err
			}
			if !orderable {
				return fmt.Errorf("%s cannot be ordered right now", item.Name)
			}
			session, err := buildSession(*item, f)
			if err != nil {
				return err
			}

			var cart *contract.Cart
			submit := configurator.SubmitterFunc(func(ctx context.Context, sub configurator.CartSubmission) error {
				c, err := api.AddToCart(ctx, args[0], sub)
				cart = c
				return err
			})
			if err := session.Submit(ctx, submit); err != nil {
				var verr *configurator.ValidationError
				if errors.As(err, &verr) && len(verr.MissingRequired) > 0 {
					return fmt.Errorf("choose an option for: %s", strings.Join(verr.MissingRequired, ", "))
				}
				return err
			}
			return writeCart(cmd.OutOrStdout(), s.Format, *cart)
		},
	}
	addSelectionFlags(cmd, &f)
	return cmd
}

func writeCart(w io.Writer, format Format, cart contract.Cart) error {
	view := toCartView(cart)
	return render(w, format, view, func(w io.Writer) error {
		row(w, "CART", view.ID, view.State)
		row(w)
		row(w, "ITEM", "QTY", "UNIT", "TOTAL", "OPTIONS")
		for _, l := range view.Lines {
			row(w, l.Name, strconv.Itoa(l.Quantity), l.UnitPrice, l.Total, strings.Join(l.Options, ","))
		}
		row(w, "", "", "", view.Total+" "+view.Currency, "")
		return nil
	})
}
