package main

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/ndelgado/abasto/internal/catalog"
	"github.com/ndelgado/abasto/internal/config"
	"github.com/ndelgado/abasto/internal/errors"
	"github.com/ndelgado/abasto/internal/ops"
)

// newCLIApp creates the CLI application with all commands.
func newCLIApp(db *sql.DB, cfg *config.Config) *cli.App {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	app := &cli.App{
		Name:    "abasto",
		Usage:   "Supply catalog query and checkout tool",
		Version: Version,
		Commands: []*cli.Command{
			loadCmd(cfg),
			brandsCmd(cfg),
			groupedCmd(cfg),
			searchCmd(cfg),
			sortCmd(cfg),
			shopCmd(db, cfg),
			exportCmd(cfg),
			importCmd(cfg),
			repriceCmd(cfg),
			historyCmd(db),
		},
	}
	// Disable default exit error handler to allow proper error return in tests
	app.ExitErrHandler = func(_ *cli.Context, _ error) {}
	return app
}

// catalogFlag is shared by every command that reads the catalog file.
func catalogFlag(cfg *config.Config) *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "catalog",
		Aliases: []string{"c"},
		Value:   cfg.CatalogPath,
		Usage:   "Catalog CSV path",
	}
}

// loadCmd creates the load command.
func loadCmd(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "load",
		Usage: "Load the catalog and print every record",
		Flags: []cli.Flag{catalogFlag(cfg)},
		Action: func(c *cli.Context) error {
			records, err := catalog.LoadFile(c.String("catalog"))
			if err != nil {
				return outputError(err)
			}

			return outputJSON(map[string]any{
				"path":  c.String("catalog"),
				"count": len(records),
				"items": records,
			})
		},
	}
}

// brandsCmd creates the brands command.
func brandsCmd(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "brands",
		Usage: "Count records per brand, in first-occurrence order",
		Flags: []cli.Flag{catalogFlag(cfg)},
		Action: func(c *cli.Context) error {
			records, err := catalog.LoadFile(c.String("catalog"))
			if err != nil {
				return outputError(err)
			}

			return outputJSON(map[string]any{
				"brands": ops.CountByBrand(records),
				"total":  len(records),
			})
		},
	}
}

// groupedCmd creates the grouped command.
func groupedCmd(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "grouped",
		Usage: "Print (brand, name, price) per record in catalog order",
		Flags: []cli.Flag{catalogFlag(cfg)},
		Action: func(c *cli.Context) error {
			records, err := catalog.LoadFile(c.String("catalog"))
			if err != nil {
				return outputError(err)
			}

			return outputJSON(map[string]any{
				"items": ops.GroupedView(records),
			})
		},
	}
}

// searchCmd creates the search command.
func searchCmd(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:      "search",
		Usage:     "Find records whose feature tags contain the query",
		ArgsUsage: "<query>",
		Flags:     []cli.Flag{catalogFlag(cfg)},
		Action: func(c *cli.Context) error {
			if c.NArg() < 1 {
				return outputError(errors.NewInvalidRequest("query is required"))
			}

			records, err := catalog.LoadFile(c.String("catalog"))
			if err != nil {
				return outputError(err)
			}

			output, err := ops.FindByFeature(records, c.Args().First())
			if err != nil {
				return outputError(err)
			}

			if len(output.Items) == 0 {
				fmt.Fprintf(os.Stderr, "no records matched feature %q\n", output.Query)
			}
			return outputJSON(output)
		},
	}
}

// sortCmd creates the sort command.
func sortCmd(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "sort",
		Usage: "Print the catalog sorted by brand ascending, price descending within brand",
		Flags: []cli.Flag{
			catalogFlag(cfg),
			&cli.BoolFlag{Name: "keep-tags", Usage: "Keep full feature tag lists instead of truncating to the first tag"},
		},
		Action: func(c *cli.Context) error {
			records, err := catalog.LoadFile(c.String("catalog"))
			if err != nil {
				return outputError(err)
			}

			ops.Sort(records)
			if !c.Bool("keep-tags") {
				ops.NormalizeFeatures(records)
			}

			return outputJSON(map[string]any{
				"items": records,
			})
		},
	}
}

// shopCmd creates the interactive shop command.
func shopCmd(db *sql.DB, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "shop",
		Usage: "Run an interactive checkout session and write an invoice",
		Flags: []cli.Flag{catalogFlag(cfg)},
		Action: func(c *cli.Context) error {
			records, err := catalog.LoadFile(c.String("catalog"))
			if err != nil {
				return outputError(err)
			}

			if err := runShop(db, records, os.Stdin, os.Stdout); err != nil {
				return outputError(err)
			}
			return nil
		},
	}
}

// exportCmd creates the export command.
func exportCmd(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "Export name-filtered records to a JSON artifact",
		Flags: []cli.Flag{
			catalogFlag(cfg),
			&cli.StringFlag{Name: "path", Aliases: []string{"p"}, Value: cfg.ExportPath, Usage: "Export file path"},
			&cli.StringFlag{Name: "filter", Aliases: []string{"f"}, Value: cfg.ExportFilter, Usage: "Name substring records must contain"},
		},
		Action: func(c *cli.Context) error {
			records, err := catalog.LoadFile(c.String("catalog"))
			if err != nil {
				return outputError(err)
			}

			output, err := ops.ExportJSON(records, ops.ExportInput{
				Path:   c.String("path"),
				Filter: c.String("filter"),
			})
			if err != nil {
				return outputError(err)
			}

			if output.Count == 0 {
				fmt.Fprintf(os.Stderr, "no records matched filter %q; nothing written\n", c.String("filter"))
			}
			return outputJSON(output)
		},
	}
}

// importCmd creates the import command.
func importCmd(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "import",
		Usage: "Read records back from a JSON artifact",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "path", Aliases: []string{"p"}, Value: cfg.ExportPath, Usage: "Import file path"},
		},
		Action: func(c *cli.Context) error {
			output, err := ops.ImportJSON(c.String("path"))
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// repriceCmd creates the reprice command.
func repriceCmd(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "reprice",
		Usage: "Apply a percentage price revision and write the revised catalog",
		Flags: []cli.Flag{
			catalogFlag(cfg),
			&cli.Float64Flag{Name: "percent", Value: cfg.RevisionPercent, Usage: "Revision percentage (negative lowers prices)"},
			&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Value: cfg.RevisedPath, Usage: "Revised catalog output path"},
		},
		Action: func(c *cli.Context) error {
			records, err := catalog.LoadFile(c.String("catalog"))
			if err != nil {
				return outputError(err)
			}

			output, err := ops.Reprice(records, c.Float64("percent"), c.String("out"))
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// historyCmd creates the history command.
func historyCmd(db *sql.DB) *cli.Command {
	return &cli.Command{
		Name:  "history",
		Usage: "List recorded checkout sessions, most recent first",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "limit", Aliases: []string{"l"}, Value: 20, Usage: "Maximum sales to return"},
		},
		Action: func(c *cli.Context) error {
			sales, err := listSales(db, c.Int("limit"))
			if err != nil {
				return outputError(err)
			}

			return outputJSON(map[string]any{
				"sales": sales,
			})
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
	if cErr, ok := err.(*errors.CatalogError); ok {
		return cli.Exit(fmt.Sprintf("[%s] %s", cErr.Code, cErr.Message), 1)
	}
	return cli.Exit(err.Error(), 1)
}
