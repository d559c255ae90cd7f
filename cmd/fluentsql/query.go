package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/arthur-debert/fluentsql/fluentsql"
	"github.com/arthur-debert/fluentsql/formats"
	"github.com/arthur-debert/fluentsql/internal/source"
	"github.com/arthur-debert/fluentsql/types"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/text/language"
)

var errMissingSeparator = errors.New("missing '='")

// queryOptions holds the per-run query flags. Output format, locale and input
// format live in viper so they can come from the environment or config file.
type queryOptions struct {
	where   []string
	selects []string
	orderBy string
	limit   int
}

func (cli *CLI) newQueryCommand() *cobra.Command {
	opts := &queryOptions{}

	cmd := &cobra.Command{
		Use:   "query [file|-]",
		Short: "Filter, project, order and limit a collection",
		Long: `Run a query against a JSON or YAML collection.

The collection is read from file, or from stdin when the file is - or omitted.
File input format follows the extension (.yaml and .yml are YAML).

Each --where takes field=pattern. Patterns are regular expressions matched
anywhere in the field's text; all --where conditions must hold.

Examples:
  fluentsql query people.json --where category=Developer
  fluentsql query people.json --where 'name=^M' --select name,category
  fluentsql query people.yaml --order-by name --limit 10 --format table`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cli.runQuery(cmd, args, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringArrayVarP(&opts.where, "where", "w", nil, "Condition field=pattern (repeatable)")
	flags.StringSliceVarP(&opts.selects, "select", "s", nil, "Fields to keep, comma separated (default all)")
	flags.StringVarP(&opts.orderBy, "order-by", "o", "", "Field to order results by")
	flags.IntVarP(&opts.limit, "limit", "l", 0, "Maximum number of results (0 for no limit)")

	flags.StringP("format", "f", "json", fmt.Sprintf("Output format: %s", strings.Join(formats.List(), "|")))
	flags.String("locale", "en", "Locale used to order text")
	flags.String("input-format", source.FormatJSON, "Format of stdin input: json|yaml")

	cli.bindFlags(flags, "format", "locale", "input-format")

	return cmd
}

func (cli *CLI) runQuery(cmd *cobra.Command, args []string, opts *queryOptions) error {
	logger := cli.logger.With("query_id", uuid.NewString())
	start := time.Now()

	formatName := cli.viperInst.GetString("format")
	format, err := formats.Get(formatName)
	if err != nil {
		return NewValidationError("run query", "format", formatName,
			fmt.Sprintf("Available formats: %s", strings.Join(formats.List(), ", ")))
	}

	localeName := cli.viperInst.GetString("locale")
	locale, err := language.Parse(localeName)
	if err != nil {
		return NewValidationError("run query", "locale", localeName,
			"Use a BCP 47 language tag such as en, sv or pt-BR")
	}

	records, origin, err := cli.loadCollection(cmd, args)
	if err != nil {
		return NewSourceError("load collection", origin, err)
	}
	logger.Debug("collection loaded", "source", origin, "records", len(records))

	builder := fluentsql.For(records, fluentsql.WithLocale(locale))
	for _, expr := range opts.where {
		field, pattern, err := parseWhere(expr)
		if err != nil {
			return NewFilterError("run query", expr, err.Error(), err)
		}
		builder.Where(fluentsql.Match(field, pattern))
	}
	builder.Select(opts.selects...).OrderBy(opts.orderBy).Limit(opts.limit)

	logger.Debug("query built", "query", builder.String())

	results, err := builder.Build()
	if err != nil {
		logger.Error("query failed", "query", builder.String(), "error", err)
		return WrapQueryError("run query", err)
	}

	logger.Info("query executed",
		"query", builder.String(),
		"records_in", len(records),
		"records_out", len(results),
		"duration", time.Since(start))

	if err := format.Render(cmd.OutOrStdout(), results); err != nil {
		return fmt.Errorf("failed to write results: %w", err)
	}
	return nil
}

// loadCollection reads the collection named by args, or stdin for "-" and no
// argument. It also returns a description of where the records came from.
func (cli *CLI) loadCollection(cmd *cobra.Command, args []string) ([]types.Record, string, error) {
	if len(args) == 0 || args[0] == "-" {
		records, err := source.Decode(cmd.InOrStdin(), cli.viperInst.GetString("input-format"))
		return records, "stdin", err
	}

	records, err := source.Load(cmd.Context(), args[0])
	return records, args[0], err
}

// parseWhere splits a field=pattern expression at the first '='.
// An empty pattern matches every record.
func parseWhere(expr string) (field, pattern string, err error) {
	field, pattern, found := strings.Cut(expr, "=")
	if !found {
		return "", "", errMissingSeparator
	}
	field = strings.TrimSpace(field)
	if field == "" {
		return "", "", errors.New("empty field name")
	}
	return field, pattern, nil
}
