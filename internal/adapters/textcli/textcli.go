// Package textcli is the command line front end for the text helpers
// every command reads stdin and writes the result to stdout
package textcli

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strings"

	"cgeo/internal/core/htmltext"
	"cgeo/internal/core/textutil"
	"cgeo/internal/core/version"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"
)

// maxInput bounds stdin so a runaway pipe cannot exhaust memory
const maxInput = 64 << 20

// NewRootCmd builds the command tree
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "cgeo-text",
		Short:         "Normalize cache listing text from stdin",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(
		transformCmd("whitespace", "Collapse whitespace runs into single spaces", textutil.ReplaceWhitespace),
		transformCmd("control", "Replace control characters with spaces and trim", textutil.RemoveControlCharacters),
		transformCmd("trim", "Remove trailing whitespace", textutil.TrimSpanned[string]),
		transformCmd("plain", "Render HTML to plain text", func(s string) string {
			return htmltext.FromHTMLTrimmed(s).String()
		}),
		checksumCmd(),
		matchCmd(),
		sortCmd(),
		versionCmd(),
	)
	return root
}

func readInput(cmd *cobra.Command) (string, error) {
	b, err := io.ReadAll(io.LimitReader(cmd.InOrStdin(), maxInput+1))
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	if len(b) > maxInput {
		return "", fmt.Errorf("input larger than %d bytes", maxInput)
	}
	return string(b), nil
}

func transformCmd(use, short string, fn func(string) string) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			in, err := readInput(cmd)
			if err != nil {
				return err
			}
			cmd.Print(fn(in))
			return nil
		},
	}
}

func checksumCmd() *cobra.Command {
	var hex bool
	c := &cobra.Command{
		Use:   "checksum",
		Short: "Print the CRC-32 of stdin and whether it holds markup",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			in, err := readInput(cmd)
			if err != nil {
				return err
			}
			sum := textutil.Checksum(in)
			if hex {
				cmd.Printf("%08x", sum)
			} else {
				cmd.Printf("%d", sum)
			}
			cmd.Printf(" html=%t\n", textutil.ContainsHTML(in))
			return nil
		},
	}
	c.Flags().BoolVar(&hex, "hex", false, "print the checksum as hex")
	return c
}

func matchCmd() *cobra.Command {
	var (
		pattern string
		group   int
		trim    bool
		last    bool
		def     string
	)
	c := &cobra.Command{
		Use:   "match",
		Short: "Print one capture group of a regular expression match",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			re, err := regexp.Compile(pattern)
			if err != nil {
				return fmt.Errorf("invalid --pattern: %w", err)
			}
			if group < 0 || group > re.NumSubexp() {
				return fmt.Errorf("--group %d out of range, pattern has %d groups", group, re.NumSubexp())
			}
			in, err := readInput(cmd)
			if err != nil {
				return err
			}
			cmd.Println(textutil.GetMatch(&in, re, trim, group, def, last))
			return nil
		},
	}
	c.Flags().StringVarP(&pattern, "pattern", "p", "", "regular expression (RE2 syntax)")
	c.Flags().IntVarP(&group, "group", "g", 1, "capture group to print, 0 is the whole match")
	c.Flags().BoolVar(&trim, "trim", false, "trim the captured text")
	c.Flags().BoolVar(&last, "last", false, "use the last match instead of the first")
	c.Flags().StringVar(&def, "default", "", "printed when nothing matches")
	_ = c.MarkFlagRequired("pattern")
	return c
}

func sortCmd() *cobra.Command {
	var locale string
	c := &cobra.Command{
		Use:   "sort",
		Short: "Sort stdin lines with the locale collator",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tag := textutil.DefaultLocale
			if locale != "" {
				t, err := language.Parse(locale)
				if err != nil {
					return fmt.Errorf("invalid --locale %q: %w", locale, err)
				}
				tag = t
			}
			var lines []string
			sc := bufio.NewScanner(cmd.InOrStdin())
			sc.Buffer(make([]byte, 0, 64*1024), maxInput)
			for sc.Scan() {
				if l := strings.TrimRight(sc.Text(), "\r"); l != "" {
					lines = append(lines, l)
				}
			}
			if err := sc.Err(); err != nil {
				return fmt.Errorf("read stdin: %w", err)
			}
			textutil.SortStrings(tag, lines)
			for _, l := range lines {
				cmd.Println(l)
			}
			return nil
		},
	}
	c.Flags().StringVarP(&locale, "locale", "l", "", "BCP 47 locale, defaults to CGEO_LOCALE or en")
	return c
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			b := version.Info()
			cmd.Printf("%s %s (%s, %s)\n", b.Service, b.Version, b.Commit, b.Go)
		},
	}
}
