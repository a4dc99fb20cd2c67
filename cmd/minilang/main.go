package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"minilang/interpreter-go/pkg/driver"
)

const cliToolVersion = "minilang-cli 0.1.0"

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// cli holds state shared by every subcommand of one invocation.
type cli struct {
	stdout io.Writer
	stderr io.Writer

	logLevel     string
	colorMode    string
	manifestPath string

	manifest *driver.Manifest
	logger   *logrus.Logger
}

func run(args []string, stdout, stderr io.Writer) int {
	c := &cli{stdout: stdout, stderr: stderr}
	root := c.rootCommand()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	if err := root.ExecuteContext(context.Background()); err != nil {
		c.reportError(err)
		return 1
	}
	return 0
}

func (c *cli) rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:               "minilang",
		Short:             "Tokenize, parse and run minilang programs",
		SilenceErrors:     true,
		SilenceUsage:      true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error { return c.setup() },
	}
	flags := root.PersistentFlags()
	flags.StringVar(&c.logLevel, "log-level", "", "log level (overrides settings.log_level, default warn)")
	flags.StringVar(&c.colorMode, "color", "", "colorize diagnostics: auto, always or never")
	flags.StringVar(&c.manifestPath, "manifest", "", "path to minilang.yml (default: search upward from the working directory)")

	root.AddCommand(
		c.runCommand(),
		c.tokensCommand(),
		c.astCommand(),
		c.demoCommand(),
		c.versionCommand(),
	)
	return root
}

// setup loads the manifest and builds the logger; flags win over manifest
// settings.
func (c *cli) setup() error {
	manifest, err := c.loadManifest()
	if err != nil {
		return err
	}
	c.manifest = manifest

	if c.colorMode == "" && manifest != nil {
		c.colorMode = string(manifest.Settings.Color)
	}
	if c.colorMode == "" {
		c.colorMode = string(driver.ColorAuto)
	}
	if !driver.ColorMode(c.colorMode).IsValid() {
		mode := c.colorMode
		c.colorMode = string(driver.ColorAuto)
		return fmt.Errorf("invalid --color %q (want auto, always or never)", mode)
	}

	levelName := c.logLevel
	if levelName == "" && manifest != nil {
		levelName = manifest.Settings.LogLevel
	}
	if levelName == "" {
		levelName = "warn"
	}
	level, err := logrus.ParseLevel(levelName)
	if err != nil {
		return err
	}

	logger := logrus.New()
	logger.SetOutput(c.stderr)
	logger.SetLevel(level)
	logger.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
		ForceColors:      c.colorMode == string(driver.ColorAlways),
		DisableColors:    c.colorMode == string(driver.ColorNever),
	})
	c.logger = logger
	if manifest != nil {
		logger.WithField("manifest", manifest.Path).Debug("loaded manifest")
	}
	return nil
}

func (c *cli) loadManifest() (*driver.Manifest, error) {
	path := c.manifestPath
	if path == "" {
		found, err := driver.FindManifest(".")
		if errors.Is(err, driver.ErrManifestNotFound) {
			return nil, nil
		}
		if err != nil {
			return nil, err
		}
		path = found
	}
	manifest, err := driver.LoadManifest(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("failed to load manifest: %w", err)
	}
	return manifest, nil
}

func (c *cli) loader() *driver.Loader {
	return driver.NewLoader(c.manifest, driver.WithLogger(c.logger))
}

func (c *cli) reportError(err error) {
	label := color.New(color.FgRed, color.Bold)
	switch driver.ColorMode(c.colorMode) {
	case driver.ColorAlways:
		label.EnableColor()
	case driver.ColorNever:
		label.DisableColor()
	}
	label.Fprint(c.stderr, "error:")
	fmt.Fprintf(c.stderr, " %v\n", err)
}
