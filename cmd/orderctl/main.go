package main

import (
	"context"
	"os"

	"restaurant-ordering/internal/cli"
	"restaurant-ordering/internal/client"
)

var version = "dev"

func main() {
	deps := cli.Dependencies{
		NewAPI: func(baseURL, token string) cli.API {
			return client.New(baseURL, client.WithToken(token), client.WithUserAgent("orderctl/"+version))
		},
		Version: version,
	}
	os.Exit(cli.Execute(context.Background(), os.Args[1:], deps, os.Stdout, os.Stderr))
}
