package config

import (
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/urfave/cli/v3"

	domainConfig "github.com/campus-desk/caseinbox/pkg/domain/model/config"
	"github.com/campus-desk/caseinbox/pkg/domain/types"
	"github.com/campus-desk/caseinbox/pkg/utils/logging"
)

// SLA holds CLI flags for the SLA policy table
type SLA struct {
	path string
}

// NewSLA builds an SLA config bound to an explicit policy file path
func NewSLA(path string) *SLA {
	return &SLA{path: path}
}

// slaFile is the TOML shape of a policy file:
//
//	default_hours = 48
//
//	[resolution.Finance]
//	Low = 48
//	Normal = 24
//	High = 24
//	Urgent = 4
type slaFile struct {
	DefaultHours int                       `toml:"default_hours"`
	Resolution   map[string]map[string]int `toml:"resolution"`
}

// Flags returns CLI flags for SLA policy configuration
func (s *SLA) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "sla-policy",
			Usage:       "Path to a TOML SLA policy file (omit for the built-in table)",
			Sources:     cli.EnvVars("CASEINBOX_SLA_POLICY"),
			Destination: &s.path,
		},
	}
}

// Configure loads the SLA policy table. Without a path it returns the
// built-in defaults.
func (s *SLA) Configure() (*domainConfig.SLAPolicy, error) {
	if s.path == "" {
		return domainConfig.DefaultSLAPolicy(), nil
	}

	// #nosec G304 - path is expected to be provided by CLI argument
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read SLA policy file", goerr.V("path", s.path))
	}

	var file slaFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, goerr.Wrap(err, "failed to parse SLA policy TOML", goerr.V("path", s.path))
	}

	resolution := make(map[types.Department]map[types.Priority]int, len(file.Resolution))
	for dept, byPriority := range file.Resolution {
		entry := make(map[types.Priority]int, len(byPriority))
		for prio, hours := range byPriority {
			entry[types.Priority(prio)] = hours
		}
		resolution[types.Department(dept)] = entry
	}

	policy, err := domainConfig.NewSLAPolicy(file.DefaultHours, resolution)
	if err != nil {
		return nil, goerr.Wrap(err, "invalid SLA policy", goerr.V("path", s.path))
	}

	logging.Default().Info("Loaded SLA policy", "path", s.path, "departments", len(resolution))
	return policy, nil
}
