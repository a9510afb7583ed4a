package cli

import (
	"errors"
	"io"

	"github.com/spf13/cobra"
)

type tokenView struct {
	AccessToken string `json:"accessToken" yaml:"accessToken"`
}

func newLoginCommand(deps Dependencies, resolve settingsFunc) *cobra.Command {
	var email, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Exchange email and password for an access token.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if email == "" || password == "" {
				return errors.New("--email and --password are required")
			}
			s, err := resolve()
			if err != nil {
				return err
			}
			api, err := newAPI(deps, s)
			if err != nil {
				return err
			}
			token, err := api.Login(cmd.Context(), email, password)
			if err != nil {
				return err
			}
			view := tokenView{AccessToken: token}
			return render(cmd.OutOrStdout(), s.Format, view, func(w io.Writer) error {
				row(w, "TOKEN", token)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "Account email.")
	cmd.Flags().StringVar(&password, "password", "", "Account password.")
	return cmd
}
