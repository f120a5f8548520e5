package main

import (
	"fmt"
	"os"

	_ "github.com/joho/godotenv/autoload"

	"github.com/fediwatch/trollhunter/mastodon"

	"github.com/carlmjohnson/versioninfo"
	"github.com/urfave/cli/v2"
)

func main() {
	if err := run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {

	app := cli.App{
		Name:      "trollhunter",
		Usage:     "look for troll replies on a Mastodon account's recent posts",
		ArgsUsage: "[nickname]",
		Version:   versioninfo.Short(),
	}
	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "instance",
			Usage:   "base URL of the Mastodon instance to query",
			Value:   mastodon.DefaultHost,
			EnvVars: []string{"MASTODON_INSTANCE"},
		},
		&cli.StringFlag{
			Name:    "token",
			Usage:   "API token used to file reports; prompted for when unset, leave blank for read-only",
			EnvVars: []string{"MASTODON_TOKEN"},
		},
		&cli.StringFlag{
			Name:    "keywords-file",
			Usage:   "JSON file with keyword lists overriding the built-in ones",
			EnvVars: []string{"TROLLHUNTER_KEYWORDS_FILE"},
		},
		&cli.Float64Flag{
			Name:    "rate-limit",
			Usage:   "maximum API requests per second",
			Value:   5,
			EnvVars: []string{"TROLLHUNTER_RATE_LIMIT"},
		},
		&cli.IntFlag{
			Name:    "max-posts",
			Usage:   "number of recent posts to inspect (0 for the server default)",
			EnvVars: []string{"TROLLHUNTER_MAX_POSTS"},
		},
		&cli.BoolFlag{
			Name:  "json",
			Usage: "print the collected data as JSON instead of the interactive listing",
		},
		&cli.StringFlag{
			Name:    "log-level",
			Usage:   "log verbosity level (eg: warn, info, debug)",
			Value:   "warn",
			EnvVars: []string{"TROLLHUNTER_LOG_LEVEL", "GO_LOG_LEVEL", "LOG_LEVEL"},
		},
		&cli.StringFlag{
			Name:    "metrics-textfile",
			Usage:   "write prometheus metrics to this file on exit",
			EnvVars: []string{"TROLLHUNTER_METRICS_TEXTFILE"},
		},
	}
	app.Action = runHunt
	return app.Run(args)
}
