package main

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/coolbeans/memodrill/pkg/cube"
	"github.com/coolbeans/memodrill/pkg/memo"
	"github.com/spf13/cobra"
)

func lookupCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lookup <letter|position|colors...>",
		Short: "Look up a piece by letter, position label or colors",
		Long: `Looks up one entry of the lettering scheme. The query may be a memo letter
("C"), a position label ("UF", "URF") or the piece colors in facet order
("red white", "red,green,white").`,
		Example: `  memodrill lookup -t e C
  memodrill lookup -t c URF
  memodrill lookup -t e red white`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pieceStr, _ := cmd.Flags().GetString("type")
			piece, err := cube.ParsePieceType(pieceStr)
			if err != nil {
				return err
			}
			entry, err := lookupEntry(a.enc.Table(piece), strings.Join(args, " "))
			if err != nil {
				return err
			}
			printEntryHeader(cmd.OutOrStdout())
			printEntry(cmd.OutOrStdout(), entry)
			return nil
		},
	}
	cmd.Flags().StringP("type", "t", "e", "piece type: c (corner) or e (edge)")
	return cmd
}

func tableCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "table",
		Short: "Print the full lettering table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			pieceStr, _ := cmd.Flags().GetString("type")
			out := cmd.OutOrStdout()

			pieces := cube.PieceTypes
			if pieceStr != "" {
				piece, err := cube.ParsePieceType(pieceStr)
				if err != nil {
					return err
				}
				pieces = []cube.PieceType{piece}
			}

			fmt.Fprintf(out, "Scheme: %s\n", a.enc.Name())
			for _, p := range pieces {
				fmt.Fprintf(out, "\n%ss\n", strings.ToUpper(p.String()[:1])+p.String()[1:])
				printEntryHeader(out)
				for _, e := range a.enc.Table(p).Entries() {
					printEntry(out, e)
				}
			}
			return nil
		},
	}
	cmd.Flags().StringP("type", "t", "", "piece type: c (corner) or e (edge); both when omitted")
	return cmd
}

// lookupEntry resolves a query against t. Color names are tried first, then
// a single memo letter, then a position label.
func lookupEntry(t *memo.Table, query string) (memo.Entry, error) {
	query = strings.TrimSpace(query)

	if tuple, err := cube.ParseTuple(query); err == nil {
		l, err := t.TupleLetter(tuple)
		if err != nil {
			return memo.Entry{}, err
		}
		return entryFor(t, l), nil
	}

	if utf8.RuneCountInString(query) == 1 {
		r, _ := utf8.DecodeRuneInString(query)
		if _, err := t.LetterTuple(memo.Letter(r)); err != nil {
			return memo.Entry{}, err
		}
		return entryFor(t, memo.Letter(strings.ToUpper(query)[0])), nil
	}

	l, err := t.PositionLetter(query)
	if err != nil {
		return memo.Entry{}, err
	}
	return entryFor(t, l), nil
}

func entryFor(t *memo.Table, l memo.Letter) memo.Entry {
	for _, e := range t.Entries() {
		if e.Letter == l {
			return e
		}
	}
	return memo.Entry{}
}

func printEntryHeader(w io.Writer) {
	fmt.Fprintf(w, "%-6s %-8s %-8s %s\n", "Letter", "Position", "Index", "Colors")
}

func printEntry(w io.Writer, e memo.Entry) {
	fmt.Fprintf(w, "%-6s %-8s %-8d %s\n", e.Letter, e.Position, e.Index, e.Tuple)
}
