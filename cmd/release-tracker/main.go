// release-tracker queries release-engineering state (integration-test runs,
// distribution builds, release readiness) from the metrics cluster,
// collapses the cluster's redundant rows into canonical records, and prints
// records plus aggregate summaries as JSON. It can also run as a thin HTTP
// service exposing the same queries.
package main

import (
	"encoding/json"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/opensearch-ci/release-tracker/go/config"
	"github.com/opensearch-ci/release-tracker/go/engine"
	"github.com/opensearch-ci/release-tracker/go/filter"
	"github.com/opensearch-ci/release-tracker/go/search"
	"github.com/opensearch-ci/release-tracker/go/sklog"
	"github.com/opensearch-ci/release-tracker/go/types"
)

// flag names
const (
	backendURLFlagName     = "backend-url"
	usernameFlagName       = "username"
	passwordFlagName       = "password"
	testIndexFlagName      = "test-index"
	buildIndexFlagName     = "build-index"
	readinessIndexFlagName = "readiness-index"
	maxResultsFlagName     = "max-results"

	versionFlagName         = "version"
	rcFlagName              = "rc"
	componentFlagName       = "component"
	buildNumberFlagName     = "build-number"
	integBuildFlagName      = "integ-build-number"
	statusFlagName          = "status"
	withSecurityFlagName    = "with-security"
	withoutSecurityFlagName = "without-security"

	portFlagName = "port"
)

func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:     backendURLFlagName,
			Usage:    "URL of the metrics cluster, e.g. https://metrics.example.org:9200",
			EnvVars:  []string{"RELEASE_TRACKER_BACKEND_URL"},
			Required: true,
		},
		&cli.StringFlag{
			Name:    usernameFlagName,
			Usage:   "Basic-auth username for the metrics cluster",
			EnvVars: []string{"RELEASE_TRACKER_USERNAME"},
		},
		&cli.StringFlag{
			Name:    passwordFlagName,
			Usage:   "Basic-auth password for the metrics cluster",
			EnvVars: []string{"RELEASE_TRACKER_PASSWORD"},
		},
		&cli.StringFlag{
			Name:  testIndexFlagName,
			Value: config.DefaultTestResultsIndex,
			Usage: "Index holding integration-test results",
		},
		&cli.StringFlag{
			Name:  buildIndexFlagName,
			Value: config.DefaultBuildResultsIndex,
			Usage: "Index holding distribution-build results",
		},
		&cli.StringFlag{
			Name:  readinessIndexFlagName,
			Value: config.DefaultReleaseReadinessIndex,
			Usage: "Index holding release-readiness snapshots",
		},
		&cli.IntFlag{
			Name:  maxResultsFlagName,
			Value: config.DefaultMaxResults,
			Usage: "Maximum raw hits fetched per query; must be generous enough that dedup sees every duplicate",
		},
	}
}

func queryFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:     versionFlagName,
			Usage:    "Release version, e.g. 3.0.0",
			Required: true,
		},
		&cli.StringFlag{
			Name:  rcFlagName,
			Usage: "Release-candidate number",
		},
		&cli.StringSliceFlag{
			Name:  componentFlagName,
			Usage: "Component name; repeatable",
		},
		&cli.StringSliceFlag{
			Name:  buildNumberFlagName,
			Usage: "Distribution build number; repeatable",
		},
		&cli.StringSliceFlag{
			Name:  integBuildFlagName,
			Usage: "Integration-test build number; repeatable",
		},
		&cli.StringFlag{
			Name:  statusFlagName,
			Usage: "Filter on component_build_result (passed|failed); applied after dedup",
		},
		&cli.StringFlag{
			Name:  withSecurityFlagName,
			Usage: "Filter on the with-security test outcome (pass|fail); applied after dedup",
		},
		&cli.StringFlag{
			Name:  withoutSecurityFlagName,
			Usage: "Filter on the without-security test outcome (pass|fail); applied after dedup",
		},
	}
}

func newEngine(c *cli.Context) (*engine.Engine, error) {
	cfg := config.New(c.String(backendURLFlagName))
	cfg.Username = c.String(usernameFlagName)
	cfg.Password = c.String(passwordFlagName)
	cfg.Indices.TestResults = c.String(testIndexFlagName)
	cfg.Indices.BuildResults = c.String(buildIndexFlagName)
	cfg.Indices.ReleaseReadiness = c.String(readinessIndexFlagName)
	cfg.MaxResults = c.Int(maxResultsFlagName)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	client, err := search.NewESClient(cfg)
	if err != nil {
		return nil, err
	}
	return engine.New(cfg, client), nil
}

func requestFromFlags(c *cli.Context) engine.Request {
	return engine.Request{
		Version:                  c.String(versionFlagName),
		RCNumber:                 c.String(rcFlagName),
		DistributionBuildNumbers: types.NormalizeStringList(c.StringSlice(buildNumberFlagName)),
		IntegTestBuildNumbers:    types.NormalizeStringList(c.StringSlice(integBuildFlagName)),
		Components:               types.NormalizeStringList(c.StringSlice(componentFlagName)),
		Filters: filter.StatusFilters{
			Status:          c.String(statusFlagName),
			WithSecurity:    c.String(withSecurityFlagName),
			WithoutSecurity: c.String(withoutSecurityFlagName),
		},
	}
}

func queryAction(family types.Family) cli.ActionFunc {
	return func(c *cli.Context) error {
		eng, err := newEngine(c)
		if err != nil {
			return err
		}
		res, err := eng.Query(c.Context, family, requestFromFlags(c))
		if err != nil {
			return err
		}
		return printJSON(res)
	}
}

func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func main() {
	app := &cli.App{
		Name:  "release-tracker",
		Usage: "Query deduplicated release-engineering state from the metrics cluster.",
		Flags: globalFlags(),
		Commands: []*cli.Command{
			{
				Name:   "test-results",
				Usage:  "Integration-test results for a version",
				Flags:  queryFlags(),
				Action: queryAction(types.FamilyTestResults),
			},
			{
				Name:   "build-results",
				Usage:  "Distribution-build results for a version",
				Flags:  queryFlags(),
				Action: queryAction(types.FamilyBuildResults),
			},
			{
				Name:   "release-readiness",
				Usage:  "Release-readiness snapshots for a version",
				Flags:  queryFlags(),
				Action: queryAction(types.FamilyReleaseReadiness),
			},
			{
				Name:  "resolve-components",
				Usage: "Map distribution build numbers to the components built under them",
				Flags: queryFlags(),
				Action: func(c *cli.Context) error {
					eng, err := newEngine(c)
					if err != nil {
						return err
					}
					res, err := eng.ResolveComponentsFromBuildNumbers(c.Context, c.String(versionFlagName), types.NormalizeStringList(c.StringSlice(buildNumberFlagName)))
					if err != nil {
						return err
					}
					return printJSON(res)
				},
			},
			{
				Name:  "rc-builds",
				Usage: "List distribution build numbers for (version, rc), optionally for one component",
				Flags: queryFlags(),
				Action: func(c *cli.Context) error {
					eng, err := newEngine(c)
					if err != nil {
						return err
					}
					version := c.String(versionFlagName)
					rc := c.String(rcFlagName)
					if components := c.StringSlice(componentFlagName); len(components) > 0 {
						res, err := eng.RCBuildNumbersForComponent(c.Context, version, rc, components[0])
						if err != nil {
							return err
						}
						return printJSON(res)
					}
					res, err := eng.RCBuildNumbersByComponent(c.Context, version, rc)
					if err != nil {
						return err
					}
					return printJSON(res)
				},
			},
			{
				Name:  "serve",
				Usage: "Run the HTTP query service",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  portFlagName,
						Value: ":8000",
						Usage: "HTTP service port (e.g., ':8000')",
					},
				},
				Action: func(c *cli.Context) error {
					eng, err := newEngine(c)
					if err != nil {
						return err
					}
					return serve(eng, c.String(portFlagName))
				},
			},
		},
	}
	if err := app.Run(os.Args); err != nil {
		sklog.Fatal(err)
	}
}
