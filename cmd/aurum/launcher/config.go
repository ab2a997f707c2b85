// Maps the CLI context onto the tool configuration and sets up logging.

package launcher

import (
	"github.com/evalphobia/logrus_sentry"
	"github.com/sirupsen/logrus"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/aurumchain/go-aurum/integration"
)

// Config aggregates everything the launcher needs for one run.
type Config struct {
	Profile integration.Profile

	GenesisPath string
	DryRun      bool

	FakeValidators int
	Fund           bool
	FundAmount     uint64

	Logging LoggingConfig
}

// LoggingConfig captures the logging flags.
type LoggingConfig struct {
	Verbosity int
	Format    string
	SentryDSN string
}

// MakeConfig merges the selected profile with CLI flag overrides.
func MakeConfig(ctx *cli.Context) (Config, error) {
	profile, err := integration.GetProfileByName(ctx.GlobalString("profile"))
	if err != nil {
		return Config{}, err
	}
	cfg := Config{
		Profile:        profile,
		GenesisPath:    ctx.String("genesis"),
		DryRun:         profile.DryRun || ctx.Bool("dry-run"),
		FakeValidators: ctx.Int("validators"),
		Fund:           ctx.Bool("fund"),
		FundAmount:     ctx.Uint64("fund.amount"),
		Logging: LoggingConfig{
			Verbosity: profile.LogVerbosity,
			Format:    "text",
			SentryDSN: ctx.GlobalString("log.sentry.dsn"),
		},
	}
	if profile.LogJSON {
		cfg.Logging.Format = "json"
	}
	if ctx.GlobalIsSet("log.verbosity") {
		cfg.Logging.Verbosity = ctx.GlobalInt("log.verbosity")
	}
	if ctx.GlobalIsSet("log.format") {
		cfg.Logging.Format = ctx.GlobalString("log.format")
	}
	return cfg, nil
}

// SetupLogging configures the global logrus logger from the config:
// verbosity, output format, and the optional sentry hook for error
// reporting.
func SetupLogging(cfg LoggingConfig) error {
	logrus.SetLevel(logrus.Level(cfg.Verbosity))
	if cfg.Format == "json" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	if cfg.SentryDSN != "" {
		hook, err := logrus_sentry.NewSentryHook(cfg.SentryDSN, []logrus.Level{
			logrus.PanicLevel,
			logrus.FatalLevel,
			logrus.ErrorLevel,
		})
		if err != nil {
			return err
		}
		logrus.AddHook(hook)
	}
	return nil
}
