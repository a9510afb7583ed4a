package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	defaultAPIURL = "http://localhost:8080"
	envPrefix     = "ORDERCTL"
)

type settings struct {
	APIURL string
	Token  string
	Format Format
}

// NewRootCommand builds the complete command tree. Settings resolve from
// flags, then ORDERCTL_* env vars, then the optional yaml config file.
func NewRootCommand(deps Dependencies) *cobra.Command {
	v := viper.New()
	var cfgFile string

	root := &cobra.Command{
		Use:           "orderctl",
		Short:         "Inspect the menu, price configurations, and add items to a cart.",
		Version:       resolvedVersion(deps.Version),
		SilenceErrors: true,
		SilenceUsage:  true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return loadConfig(v, cfgFile)
		},
	}
	flags := root.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "Path to a yaml config file.")
	flags.String("api-url", defaultAPIURL, "Base URL of the ordering API.")
	flags.String("token", "", "Access token for cart commands.")
	flags.String("format", string(FormatTable), "Output format: table, json, or yaml.")
	_ = v.BindPFlags(flags)

	resolve := func() (settings, error) {
		format, err := ParseFormat(v.GetString("format"))
		if err != nil {
			return settings{}, err
		}
		return settings{
			APIURL: strings.TrimSpace(v.GetString("api-url")),
			Token:  strings.TrimSpace(v.GetString("token")),
			Format: format,
		}, nil
	}

	root.AddCommand(newItemCommand(deps, resolve))
	root.AddCommand(newCartCommand(deps, resolve))
	root.AddCommand(newLoginCommand(deps, resolve))
	return root
}

func loadConfig(v *viper.Viper, cfgFile string) error {
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if cfgFile == "" {
		return nil
	}
	v.SetConfigFile(cfgFile)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("read config %s: %w", cfgFile, err)
	}
	return nil
}

func resolvedVersion(v string) string {
	if strings.TrimSpace(v) == "" {
		return "dev"
	}
	return v
}

func newAPI(deps Dependencies, s settings) (API, error) {
	if deps.NewAPI == nil {
		return nil, fmt.Errorf("no API client configured")
	}
	if s.APIURL == "" {
		return nil, fmt.Errorf("api-url is required")
	}
	return deps.NewAPI(s.APIURL, s.Token), nil
}
