// Package flags declares the CLI surface of the aurum genesis tool.

package flags

import (
	"os"

	cli "gopkg.in/urfave/cli.v1"
)

// NewApp returns the base CLI application.
func NewApp() *cli.App {
	app := cli.NewApp()
	app.Name = "aurum"
	app.Usage = "Aurum ledger genesis tool"
	app.Version = "0.1.0"
	app.Writer = os.Stdout
	return app
}

// CommonFlags returns the base set of CLI flags shared across commands.
func CommonFlags() []cli.Flag {
	return []cli.Flag{
		cli.StringFlag{
			Name:  "profile",
			Usage: "Run profile (prod|dev|check)",
			Value: "prod",
		},
		cli.StringFlag{
			Name:  "log.format",
			Usage: "Log output format (text|json)",
			Value: "text",
		},
		cli.IntFlag{
			Name:  "log.verbosity",
			Usage: "Logging verbosity (0=panic,1=fatal,2=error,3=warn,4=info,5=debug,6=trace)",
			Value: 4,
		},
		cli.StringFlag{
			Name:  "log.sentry.dsn",
			Usage: "Sentry DSN for error reporting (disabled when empty)",
		},
	}
}

// GenesisFlags returns the flags of the `genesis` command.
func GenesisFlags() []cli.Flag {
	return []cli.Flag{
		cli.StringFlag{
			Name:  "genesis",
			Usage: "Path to the genesis configuration document (JSON)",
		},
		cli.BoolFlag{
			Name:  "dry-run",
			Usage: "Validate and bootstrap in memory without handing state to storage",
		},
	}
}

// FakeNetFlags returns the flags of the `fakenet` command.
func FakeNetFlags() []cli.Flag {
	return []cli.Flag{
		cli.IntFlag{
			Name:  "validators",
			Usage: "Number of deterministic fakenet validators",
			Value: 3,
		},
		cli.BoolFlag{
			Name:  "fund",
			Usage: "Create and fund the core resources test account (dev bootstrap path)",
		},
		cli.Uint64Flag{
			Name:  "fund.amount",
			Usage: "Initial balance of the core resources test account",
			Value: 1_000_000_000,
		},
	}
}
