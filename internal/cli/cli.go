package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Epistemic-Technology/pdfsplit/internal/config"
	"github.com/Epistemic-Technology/pdfsplit/internal/logger"
	"github.com/Epistemic-Technology/pdfsplit/internal/operations"
	"github.com/Epistemic-Technology/pdfsplit/internal/presets"
	"github.com/Epistemic-Technology/pdfsplit/models"
)

type rootOptions struct {
	logLevel    string
	presetsFile string
}

type splitOptions struct {
	preset    string
	pattern   string
	outputDir string
	fileName  string
	zoteroID  string
	asJSON    bool
}

// NewRootCommand builds the pdfsplit command tree
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "pdfsplit",
		Short:         "Split a PDF into one file per page, named by an identifier found on each page",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn, error (default $LOG_LEVEL, else warn)")
	cmd.PersistentFlags().StringVar(&opts.presetsFile, "presets-file", "", "YAML file with extra pattern presets (default $PDFSPLIT_PRESETS_FILE)")

	cmd.AddCommand(newSplitCommand(opts), newPresetsCommand(opts))
	return cmd
}

func newSplitCommand(root *rootOptions) *cobra.Command {
	opts := &splitOptions{}

	cmd := &cobra.Command{
		Use:   "split [file.pdf | url]",
		Short: "Split a PDF and write {name}.zip with one PDF per page",
		Example: `  pdfsplit split drawings.pdf --preset LITTERA -o out/
  pdfsplit split https://example.com/set.pdf --pattern 'SHEET\s+(\d+)'
  pdfsplit split --zotero ABCD1234 --preset REFERENS --json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(root)
			if err != nil {
				return err
			}
			if opts.outputDir == "" {
				opts.outputDir = "."
			}

			log := logger.NewWriterLogger(cmd.ErrOrStderr(), logger.ParseLevel(logLevel(root, cfg)))

			catalog, err := presets.Load(cfg.PresetsFile)
			if err != nil {
				return err
			}
			pattern, err := catalog.Resolve(opts.preset, opts.pattern)
			if err != nil {
				return err
			}

			source, err := sourceFromArgs(args, opts.zoteroID)
			if err != nil {
				return err
			}

			result, err := operations.RunSplit(cmd.Context(), operations.SplitParams{
				Source:    source,
				FileName:  opts.fileName,
				Pattern:   pattern,
				OutputDir: opts.outputDir,
			}, log)
			if err != nil {
				return err
			}

			if opts.asJSON {
				return writeJSON(cmd.OutOrStdout(), result)
			}
			return writeTable(cmd.OutOrStdout(), result)
		},
	}

	cmd.Flags().StringVarP(&opts.preset, "preset", "p", "", "named pattern preset (see 'pdfsplit presets'); default LITTERA")
	cmd.Flags().StringVarP(&opts.pattern, "pattern", "r", "", "custom regular expression with one capture group; overrides --preset")
	cmd.Flags().StringVarP(&opts.outputDir, "out", "o", "", "directory receiving the zip archive (default current directory)")
	cmd.Flags().StringVar(&opts.fileName, "name", "", "document name used for the archive (default: source file name)")
	cmd.Flags().StringVar(&opts.zoteroID, "zotero", "", "Zotero attachment ID to fetch instead of a file or URL")
	cmd.Flags().BoolVar(&opts.asJSON, "json", false, "print the result as JSON")

	return cmd
}

func newPresetsCommand(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "presets",
		Short: "List the named identifier patterns",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(root)
			if err != nil {
				return err
			}
			catalog, err := presets.Load(cfg.PresetsFile)
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tPATTERN\tDESCRIPTION")
			for _, p := range catalog.List() {
				fmt.Fprintf(tw, "%s\t%s\t%s\n", p.Name, p.Pattern, p.Description)
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\n", presets.Custom, "(--pattern)", "Your own expression; defaults to "+presets.DefaultCustomPattern)
			return tw.Flush()
		},
	}
}

func loadConfig(root *rootOptions) (config.Config, error) {
	cfg, err := config.FromEnv()
	if err != nil {
		return cfg, err
	}
	if root.presetsFile != "" {
		cfg.PresetsFile = root.presetsFile
	}
	return cfg, nil
}

// logLevel prefers --log-level, then LOG_LEVEL, then warn
func logLevel(root *rootOptions, cfg config.Config) string {
	switch {
	case root.logLevel != "":
		return root.logLevel
	case cfg.Log.Level != "":
		return cfg.Log.Level
	default:
		return "warn"
	}
}

func sourceFromArgs(args []string, zoteroID string) (models.SourceInfo, error) {
	switch {
	case len(args) == 1 && zoteroID != "":
		return models.SourceInfo{}, errors.New("give either a file/URL argument or --zotero, not both")
	case zoteroID != "":
		return models.SourceInfo{ZoteroID: zoteroID}, nil
	case len(args) == 0:
		return models.SourceInfo{}, errors.New("no PDF given: pass a file path, a URL or --zotero")
	case strings.HasPrefix(args[0], "http://") || strings.HasPrefix(args[0], "https://"):
		return models.SourceInfo{URL: args[0]}, nil
	default:
		return models.SourceInfo{Path: args[0]}, nil
	}
}

func writeJSON(w io.Writer, result *models.SplitResult) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

func writeTable(w io.Writer, result *models.SplitResult) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "PAGE\tIDENTIFIER\tOUTPUT FILE")
	for _, r := range result.Manifest {
		fmt.Fprintf(tw, "%d\t%s\t%s\n", r.PageNumber, r.Identifier, r.OutputFileName)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "\n%d pages written to %s\n", result.PageCount, result.ArchivePath)
	return err
}
