// Package integration provides run-profile presets for the aurum genesis
// tool. Profiles bundle common settings into named configurations (prod, dev,
// check) so operators can run the tool for its different purposes without
// tweaking individual flags.
//
// Usage:
//
//	profile := integration.ProdProfile()  // bootstrap a production lineage
//	profile := integration.DevProfile()   // fakenet-style development run
//	profile := integration.CheckProfile() // validate a document, discard state
//
// A profile is merged into the launcher's config during startup; explicit
// CLI flags still override individual fields afterwards.

package integration

import "fmt"

// Profile captures the tunable parameters that vary across run profiles.
type Profile struct {
	Name             string // profile identifier (e.g. "prod", "dev")
	AllowTestFunding bool   // whether the dev-only funded bootstrap path may be used
	DryRun           bool   // bootstrap in memory and discard the result
	LogVerbosity     int    // logrus level as an integer
	LogJSON          bool   // emit JSON log lines instead of text
}

// ProdProfile returns the production profile: strict bootstrap only, no test
// funding, no dry-run shortcuts.
func ProdProfile() Profile {
	return Profile{
		Name:             "prod",
		AllowTestFunding: false, // the funded path must be unreachable in production
		DryRun:           false,
		LogVerbosity:     4, // info
		LogJSON:          true,
	}
}

// DevProfile returns the development profile: test funding allowed, verbose
// text logging.
func DevProfile() Profile {
	return Profile{
		Name:             "dev",
		AllowTestFunding: true,
		DryRun:           false,
		LogVerbosity:     5, // debug
		LogJSON:          false,
	}
}

// CheckProfile returns the validation profile: the document is bootstrapped
// in memory to surface configuration errors, and the state is discarded.
func CheckProfile() Profile {
	return Profile{
		Name:             "check",
		AllowTestFunding: false,
		DryRun:           true,
		LogVerbosity:     3, // warn
		LogJSON:          false,
	}
}

// GetProfileByName looks up a profile by its identifier. Returns an error for
// unrecognized names, enabling CLI flags like --profile=dev.
func GetProfileByName(name string) (Profile, error) {
	switch name {
	case "prod":
		return ProdProfile(), nil
	case "dev":
		return DevProfile(), nil
	case "check":
		return CheckProfile(), nil
	default:
		return Profile{}, fmt.Errorf("unknown profile: %q (valid: prod, dev, check)", name)
	}
}
