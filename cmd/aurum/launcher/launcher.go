// Package launcher wires the CLI commands of the aurum genesis tool: loading
// a genesis document and bootstrapping it, or generating and bootstrapping a
// deterministic fakenet.

package launcher

import (
	"fmt"

	"github.com/sirupsen/logrus"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/aurumchain/go-aurum/aurum"
	"github.com/aurumchain/go-aurum/aurum/genesis"
	"github.com/aurumchain/go-aurum/flags"
)

// Launch parses the arguments and runs the selected command.
func Launch(args []string) error {
	app := flags.NewApp()
	app.Flags = flags.CommonFlags()
	app.Commands = []cli.Command{
		{
			Name:   "genesis",
			Usage:  "Bootstrap a ledger from a genesis configuration document",
			Flags:  flags.GenesisFlags(),
			Action: genesisAction,
		},
		{
			Name:   "fakenet",
			Usage:  "Generate a deterministic fakenet genesis and bootstrap it",
			Flags:  flags.FakeNetFlags(),
			Action: fakenetAction,
		},
	}
	return app.Run(args)
}

func genesisAction(ctx *cli.Context) error {
	cfg, err := MakeConfig(ctx)
	if err != nil {
		return err
	}
	if err := SetupLogging(cfg.Logging); err != nil {
		return err
	}
	if cfg.GenesisPath == "" {
		return fmt.Errorf("--genesis is required")
	}
	g, err := genesis.LoadGenesis(cfg.GenesisPath)
	if err != nil {
		return err
	}
	res, err := genesis.Bootstrap(g)
	if err != nil {
		return reportBootstrapError(err)
	}
	reportValidatorSet(res)
	fmt.Fprintf(ctx.App.Writer, "genesis fingerprint: %s\n", res.Fingerprint().String())
	if cfg.DryRun {
		logrus.Info("dry run: discarding bootstrapped state")
	}
	return nil
}

func fakenetAction(ctx *cli.Context) error {
	cfg, err := MakeConfig(ctx)
	if err != nil {
		return err
	}
	if err := SetupLogging(cfg.Logging); err != nil {
		return err
	}
	g, err := genesis.FakeGenesis(cfg.FakeValidators)
	if err != nil {
		return err
	}
	var res *genesis.Result
	if cfg.Fund {
		if !cfg.Profile.AllowTestFunding {
			return fmt.Errorf("profile %q forbids the funded bootstrap path", cfg.Profile.Name)
		}
		res, err = genesis.BootstrapWithTestFunding(g, cfg.FundAmount)
	} else {
		res, err = genesis.Bootstrap(g)
	}
	if err != nil {
		return reportBootstrapError(err)
	}
	reportValidatorSet(res)
	fmt.Fprintf(ctx.App.Writer, "fakenet fingerprint: %s\n", res.Fingerprint().String())
	return nil
}

// reportValidatorSet logs the promoted validator set of the first epoch.
func reportValidatorSet(res *genesis.Result) {
	for _, v := range res.Stake.EpochState().Profiles.SortedValidators() {
		logrus.WithFields(logrus.Fields{
			"id":     v.ValidatorID,
			"weight": v.Validator.Weight,
			"pubkey": v.Validator.PubKey.String(),
		}).Info("active validator")
	}
}

// reportBootstrapError logs the failure with its taxonomy class before
// returning it. Bootstrap errors are never retried; the operator must fix
// the configuration and rerun against a fresh state.
func reportBootstrapError(err error) error {
	logrus.WithFields(logrus.Fields{
		"class": errorClass(err),
		"error": err.Error(),
	}).Error("genesis bootstrap failed; state discarded")
	return err
}

func errorClass(err error) string {
	switch err.(type) {
	case *aurum.ConfigurationError:
		return "configuration"
	case *aurum.DuplicateAddressError:
		return "duplicate-address"
	case *aurum.InvariantViolationError:
		return "invariant-violation"
	case *aurum.SequencingError:
		return "sequencing"
	default:
		return "unknown"
	}
}
