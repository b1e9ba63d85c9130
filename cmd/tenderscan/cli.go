package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	"tenderscan/internal/config"
	"tenderscan/internal/errors"
	"tenderscan/internal/ops"
)

// newCLIApp creates the CLI application with all commands.
func newCLIApp(db *sql.DB, cfg *config.Config) *cli.App {
	app := &cli.App{
		Name:    "tenderscan",
		Usage:   "Tender document extraction pipeline",
		Version: Version,
		Commands: []*cli.Command{
			processCmd(db, cfg),
			scanCmd(cfg),
			classifyCmd(),
			idCmd(cfg),
			fetchCmd(db, cfg),
			listCmd(db),
			reportCmd(db, cfg),
		},
	}
	// Disable default exit error handler to allow proper error return in tests
	app.ExitErrHandler = func(_ *cli.Context, _ error) {}
	return app
}

// processCmd creates the process command.
func processCmd(db *sql.DB, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "process",
		Usage: "Process the drop folder, one file, or text piped via stdin",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "file", Aliases: []string{"f"}, Usage: "Process a single file from the drop folder"},
			&cli.StringFlag{Name: "filename", Usage: "Filename to associate with piped text (used for ID resolution)"},
			&cli.BoolFlag{Name: "no-links", Usage: "Skip linked documents found beside each main file"},
		},
		Action: func(c *cli.Context) error {
			input := ops.ProcessInput{
				File:    c.String("file"),
				NoLinks: c.Bool("no-links"),
			}

			// Piped text processes a single document directly
			if input.File == "" && stdinHasData() {
				text, err := readStdin()
				if err != nil {
					return outputError(errors.NewInternal(err))
				}
				input.Text = text
				input.Filename = c.String("filename")
			}

			output, err := ops.Process(context.Background(), db, cfg, input)
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// scanCmd creates the scan command.
func scanCmd(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "scan",
		Usage: "Run extraction over text piped via stdin without persisting anything",
		Action: func(c *cli.Context) error {
			if !stdinHasData() {
				return outputError(errors.NewInvalidRequest("text must be piped via stdin"))
			}
			text, err := readStdin()
			if err != nil {
				return outputError(errors.NewInternal(err))
			}

			output, err := ops.Scan(cfg, ops.ScanInput{Text: text})
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// classifyCmd creates the classify command.
func classifyCmd() *cli.Command {
	return &cli.Command{
		Name:  "classify",
		Usage: "Decide whether a message or piped text is tender-related",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "subject", Aliases: []string{"s"}, Usage: "Message subject line"},
			&cli.StringFlag{Name: "body", Aliases: []string{"b"}, Usage: "Message body (read from stdin when piped)"},
			&cli.StringFlag{Name: "sender", Usage: "Message sender address"},
			&cli.BoolFlag{Name: "pdf", Usage: "Message carries a PDF attachment"},
			&cli.BoolFlag{Name: "text", Aliases: []string{"t"}, Usage: "Classify stdin as a bare text blob"},
		},
		Action: func(c *cli.Context) error {
			input := ops.ClassifyInput{
				Subject: c.String("subject"),
				Body:    c.String("body"),
				Sender:  c.String("sender"),
				HasPDF:  c.Bool("pdf"),
			}

			if stdinHasData() {
				piped, err := readStdin()
				if err != nil {
					return outputError(errors.NewInternal(err))
				}
				if c.Bool("text") {
					input.Text = piped
				} else if input.Body == "" {
					input.Body = piped
				}
			}

			output, err := ops.Classify(input)
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// idCmd creates the id command.
func idCmd(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:      "id",
		Usage:     "Resolve a tender identifier from a filename and/or piped text",
		ArgsUsage: "[filename]",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "no-generate", Usage: "Report NOT_FOUND instead of generating an ID"},
		},
		Action: func(c *cli.Context) error {
			input := ops.ResolveIDInput{
				NoGenerate: c.Bool("no-generate"),
			}

			if c.NArg() > 0 {
				input.Filename = c.Args().First()
			}
			if stdinHasData() {
				text, err := readStdin()
				if err != nil {
					return outputError(errors.NewInternal(err))
				}
				input.Text = text
			}

			output, err := ops.ResolveID(cfg, input)
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// fetchCmd creates the fetch command.
func fetchCmd(db *sql.DB, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:      "fetch",
		Usage:     "Fetch a processed tender record by ID",
		ArgsUsage: "<tender-id>",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "from-file", Usage: "Read the JSON output record instead of the database index"},
		},
		Action: func(c *cli.Context) error {
			input := ops.FetchInput{
				FromFile: c.Bool("from-file"),
			}
			if c.NArg() > 0 {
				input.TenderID = c.Args().First()
			}

			output, err := ops.Fetch(db, cfg, input)
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// listCmd creates the list command.
func listCmd(db *sql.DB) *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "List processed tenders, most recently updated first",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "limit", Aliases: []string{"l"}, Value: 20, Usage: "Maximum items to return"},
			&cli.IntFlag{Name: "offset", Aliases: []string{"o"}, Value: 0, Usage: "Items to skip"},
		},
		Action: func(c *cli.Context) error {
			input := ops.ListInput{
				Limit:  c.Int("limit"),
				Offset: c.Int("offset"),
			}

			output, err := ops.List(db, input)
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// reportCmd creates the report command.
func reportCmd(db *sql.DB, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "report",
		Usage: "Write a Markdown summary of processed tenders under the output directory",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "limit", Aliases: []string{"l"}, Usage: "Cap how many tenders the report covers"},
			&cli.BoolFlag{Name: "html", Usage: "Additionally write the rendered HTML file"},
		},
		Action: func(c *cli.Context) error {
			input := ops.ReportInput{
				Limit: c.Int("limit"),
				HTML:  c.Bool("html"),
			}

			output, err := ops.Report(db, cfg, input)
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// Helper functions

// outputJSON marshals result to stdout as JSON.
func outputJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// outputError formats error for CLI.
func outputError(err error) error {
	if scanErr, ok := err.(*errors.ScanError); ok {
		return cli.Exit(fmt.Sprintf("[%s] %s", scanErr.Code, scanErr.Message), 1)
	}
	return cli.Exit(err.Error(), 1)
}

// stdinHasData returns true if stdin has piped data (not a terminal).
func stdinHasData() bool {
	stat, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (stat.Mode() & os.ModeCharDevice) == 0
}

// readStdin reads all content from stdin.
func readStdin() (string, error) {
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}
