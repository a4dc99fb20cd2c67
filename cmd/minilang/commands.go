package main

import (
	"encoding/json"
	"fmt"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"minilang/interpreter-go/pkg/driver"
	"minilang/interpreter-go/pkg/interpreter"
	"minilang/interpreter-go/pkg/lexer"
	"minilang/interpreter-go/pkg/parser"
)

// demoProgram is the withdrawal loop shipped as `minilang demo`.
const demoProgram = `let balance = 1000
let withdrawal = 100
let counter = 0

while counter < 10 THEN
    print balance
    if balance > 200 THEN
        let balance = balance - withdrawal
        print 1
        print balance
        if balance < 500 THEN
            print 2
            if balance < 300 THEN
                print 3
            ENDIF
        ENDIF
    ENDIF
    let counter = counter + 1
ENDWHILE
`

func (c *cli) runCommand() *cobra.Command {
	var showGlobals, verbose bool
	cmd := &cobra.Command{
		Use:   "run [program|file]",
		Short: "Run a manifest program or a source file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			target := ""
			if len(args) == 1 {
				target = args[0]
			}
			if target == "" && c.manifest == nil {
				return fmt.Errorf("run requires a program name or source file (%s not found)", driver.ManifestFileName)
			}
			src, err := c.loader().Load(cmd.Context(), target)
			if err != nil {
				return err
			}
			if verbose {
				fmt.Fprintf(c.stderr, "running %s (%s) blake3:%s\n", src.Name, src.Origin, src.Checksum)
			}
			return c.execute(src, showGlobals)
		},
	}
	cmd.Flags().BoolVar(&showGlobals, "globals", false, "print the final global variables after execution")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "report the resolved source and its checksum")
	return cmd
}

func (c *cli) demoCommand() *cobra.Command {
	var showGlobals bool
	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Run the built-in balance withdrawal program",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return c.execute(driver.NewSource("demo", "builtin", demoProgram), showGlobals)
		},
	}
	cmd.Flags().BoolVar(&showGlobals, "globals", false, "print the final global variables after execution")
	return cmd
}

func (c *cli) execute(src *driver.Source, showGlobals bool) error {
	c.logger.WithFields(logrus.Fields{
		"program":  src.Name,
		"origin":   src.Origin,
		"checksum": src.Checksum,
	}).Info("running program")

	interp := interpreter.New(interpreter.WithStdout(c.stdout), interpreter.WithLogger(c.logger))
	if _, err := interp.Run(src.Text); err != nil {
		return errors.Wrap(err, src.Name)
	}
	if showGlobals {
		globals := interp.Globals()
		for _, name := range globals.Keys() {
			fmt.Fprintf(c.stdout, "%s = %s\n", name, interpreter.Describe(globals[name]))
		}
	}
	return nil
}

func (c *cli) tokensCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "tokens <program|file>",
		Short: "Print the token stream of a program",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := c.loader().Load(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			tokens, err := lexer.Tokenize(src.Text)
			if err != nil {
				return errors.Wrap(err, src.Name)
			}
			for _, tok := range tokens {
				fmt.Fprintln(c.stdout, tok.String())
			}
			return nil
		},
	}
}

func (c *cli) astCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "ast <program|file>",
		Short: "Dump the parsed program as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := c.loader().Load(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			program, err := parser.ParseSource(src.Text, parser.WithLogger(c.logger))
			if err != nil {
				return errors.Wrap(err, src.Name)
			}
			encoded, err := json.MarshalIndent(program, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(c.stdout, string(encoded))
			return nil
		},
	}
}

func (c *cli) versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the CLI version",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			fmt.Fprintln(c.stdout, cliToolVersion)
			return nil
		},
	}
}
