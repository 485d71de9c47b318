package commands

import (
	"fmt"
	"io"
	"text/tabwriter"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/threadtable/internal/docio"
	tterrors "git.home.luguber.info/inful/threadtable/internal/errors"
	"git.home.luguber.info/inful/threadtable/internal/threaddoc"
)

// InspectCmd implements the 'inspect' command.
type InspectCmd struct {
	Input  string `short:"i" help:"Thread document to inspect ('-' for stdin); defaults to input from the configuration"`
	Format string `short:"f" enum:"text,yaml" default:"text" help:"Output format (text|yaml)"`
}

func (i *InspectCmd) Run(g *Global, root *CLI) error {
	input := i.Input
	if input == "" {
		cfg, err := root.loadConfig()
		if err != nil {
			return err
		}
		input = cfg.Input
	}
	if input == "" {
		return tterrors.ValidationFailed("input", "no document to inspect; pass -i")
	}

	text, err := docio.Read(input, g.stdin())
	if err != nil {
		return err
	}
	doc, err := threaddoc.Parse(text)
	if err != nil {
		return err
	}
	summary := threaddoc.Summarize(doc)

	if i.Format == "yaml" {
		enc := yaml.NewEncoder(g.stdout())
		enc.SetIndent(2)
		if err := enc.Encode(summary); err != nil {
			return tterrors.InternalError("failed to encode summary", err)
		}
		return enc.Close()
	}
	return writeSummaryText(g.stdout(), summary)
}

func writeSummaryText(w io.Writer, s threaddoc.Summary) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintf(tw, "Name:\t%s\n", s.Name)
	_, _ = fmt.Fprintf(tw, "Custom name:\t%s\n", s.CustomName)
	_, _ = fmt.Fprintf(tw, "Sizes:\t%d\n", s.Sizes)
	_, _ = fmt.Fprintf(tw, "Designations:\t%d\n", s.Designations)
	_, _ = fmt.Fprintf(tw, "Threads:\t%d (external %d, internal %d)\n", s.Threads, s.External, s.Internal)
	if s.Other > 0 {
		_, _ = fmt.Fprintf(tw, "Unclassified threads:\t%d\n", s.Other)
	}
	if len(s.PerSize) > 0 {
		_, _ = fmt.Fprintln(tw, "\nSIZE\tDESIGNATIONS\tTHREADS")
		for _, ps := range s.PerSize {
			_, _ = fmt.Fprintf(tw, "%s\t%d\t%d\n", ps.Size, ps.Designations, ps.Threads)
		}
	}
	return tw.Flush()
}
