package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/dgallion1/heatsheet/internal/convert"
	"github.com/dgallion1/heatsheet/internal/parser"
	"github.com/dgallion1/heatsheet/internal/sink"
	"github.com/spf13/cobra"
)

type convertOptions struct {
	file     string
	output   string
	club     string
	debug    bool
	validate bool
}

func newConvertCmd(g *globals) *cobra.Command {
	var opts convertOptions

	cmd := &cobra.Command{
		Use:   "convert",
		Short: "Convert a meet program into a CSV of starts",
		Example: `  heatsheet convert -f meldeergebnis.pdf -c "SV Musterstadt"
  heatsheet convert -f program.txt -o starts.csv --validate`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(cmd, g, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.file, "file", "f", "", "Meet program to read (pdf, docx, html, md, txt, csv)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "wk.csv", "CSV file to write")
	cmd.Flags().StringVarP(&opts.club, "club", "c", "", "Keep only starts of this club (exact match)")
	cmd.Flags().BoolVarP(&opts.debug, "debug", "d", false, "Write debug.txt and print the assembled tree")
	cmd.Flags().BoolVarP(&opts.validate, "validate", "v", false, "Check the written CSV against the number of starts found")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

func runConvert(cmd *cobra.Command, g *globals, opts convertOptions) error {
	out := cmd.OutOrStdout()
	log := newLogger(cmd.ErrOrStderr(), opts.debug)

	rs, err := g.compiledRules()
	if err != nil {
		return err
	}

	f, err := os.Open(opts.file)
	if err != nil {
		fmt.Fprintln(out, failStyle.Render("Problem opening the file."))
		return fmt.Errorf("%w: %w", parser.ErrSourceUnavailable, err)
	}
	defer f.Close()
	fmt.Fprintln(out, successStyle.Render("Successfully loaded file."))

	fmt.Fprintf(out, "File path: %s\n", valueStyle.Render(opts.file))
	fmt.Fprintf(out, "Club name: %s\n", valueStyle.Render(opts.club))
	fmt.Fprintf(out, "Output name: %s\n", valueStyle.Render(opts.output))

	conv := convert.New(rs, parser.Options{FallbackPdftotext: true}, log)
	res, text, err := conv.Document(f, filepath.Base(opts.file), opts.club)
	if opts.debug && text != "" {
		path := filepath.Join(filepath.Dir(opts.output), "debug.txt")
		if err := sink.DumpText(path, text); err != nil {
			return err
		}
		log.Debug("wrote extracted text", "path", path)
	}
	if err != nil {
		return err
	}

	if err := sink.WriteCSVFile(opts.output, res.Rows); err != nil {
		return err
	}
	if opts.debug {
		if err := sink.DumpJSON(out, res.Dump()); err != nil {
			return err
		}
	}

	fmt.Fprintf(out, "Swimmers found: %s\n", countStyle.Render(strconv.Itoa(len(res.Roster))))
	fmt.Fprintf(out, "Starts found: %s\n", countStyle.Render(strconv.Itoa(res.Starts)))

	if !opts.validate {
		fmt.Fprintln(out, warnStyle.Render("Converted to CSV"))
		return nil
	}
	if err := sink.CheckFile(opts.output, res.Starts); err != nil {
		fmt.Fprintln(out, failStyle.Render("Problem checking CSV file."))
		return err
	}
	fmt.Fprintln(out, successStyle.Render("Successfully converted to CSV"))
	return nil
}
