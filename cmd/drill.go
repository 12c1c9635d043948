package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/abhisek/hanzidrill/internal/dataset"
	"github.com/abhisek/hanzidrill/internal/grammar"
	"github.com/abhisek/hanzidrill/internal/screen"
	"github.com/abhisek/hanzidrill/internal/screens/home"
	"github.com/abhisek/hanzidrill/internal/session"
	"github.com/spf13/cobra"
)

var quizCmd = &cobra.Command{
	Use:   "quiz <dataset>",
	Short: "Start a vocabulary quiz over a dataset",
	Long: `Start a quiz over a catalog dataset (by name) or a file path.

Modes: quiz (choose the pinyin), easy (choose the word), hard (write the
word and a sentence), translation (write the Chinese and a free translation).`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		modeVal, _ := cmd.Flags().GetString("mode")
		mode, err := session.ParseMode(modeVal)
		if err != nil {
			return err
		}
		return runEntry(cmd, args[0], func(d home.Deps, e dataset.Entry) (screen.Screen, error) {
			if e.Kind == dataset.KindGrammar {
				return nil, fmt.Errorf("%s: %w", e.Name, dataset.ErrNotVocabulary)
			}
			return d.Quiz(e, mode), nil
		})
	},
}

var speakCmd = &cobra.Command{
	Use:   "speak <dataset>",
	Short: "Step through a speaking or translation list",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runEntry(cmd, args[0], func(d home.Deps, e dataset.Entry) (screen.Screen, error) {
			if e.Kind != dataset.KindSpeakingLine && e.Kind != dataset.KindTranslationTriad {
				return nil, fmt.Errorf("%s is a %s dataset, not a speaking list", e.Name, e.Kind)
			}
			return d.Open(e), nil
		})
	},
}

var grammarCmd = &cobra.Command{
	Use:   "grammar <dataset>",
	Short: "Read grammar notes, or search them with --search",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		query, _ := cmd.Flags().GetString("search")
		if query != "" {
			return searchNotes(cmd, args[0], query)
		}
		return runEntry(cmd, args[0], func(d home.Deps, e dataset.Entry) (screen.Screen, error) {
			e.Kind = dataset.KindGrammar
			return d.Open(e), nil
		})
	},
}

func init() {
	quizCmd.Flags().StringP("mode", "m", "quiz", "Quiz mode: quiz, easy, hard or translation")
	grammarCmd.Flags().StringP("search", "s", "", "Print subsections containing this text instead of opening the reader")
	grammarCmd.Flags().String("label", "", "Part heading for files outside the catalog (PHẦN, Bài, BÀI)")
}

// runEntry resolves name and opens the TUI on the screen build returns.
// The catalog is resolved before the TUI starts so bad names fail fast.
func runEntry(cmd *cobra.Command, name string, build func(home.Deps, dataset.Entry) (screen.Screen, error)) error {
	e, err := setupEnv(cmd, true)
	if err != nil {
		return err
	}
	defer e.Close()

	entry, err := findEntry(e.catalog, name)
	if err != nil {
		return err
	}
	first, err := build(e.deps(), entry)
	if err != nil {
		return err
	}
	return runWith(e, first)
}

func searchNotes(cmd *cobra.Command, name, query string) error {
	e, err := setupEnv(cmd, false)
	if err != nil {
		return err
	}
	defer e.Close()

	entry, err := findEntry(e.catalog, name)
	if err != nil {
		return err
	}
	if label, _ := cmd.Flags().GetString("label"); label != "" {
		entry.Label = label
	}
	text, err := e.fetcher.Text(cmd.Context(), entry.Path)
	if err != nil {
		return err
	}

	parts := grammar.ParseSections(text, entry.Label)
	matches := grammar.Search(parts, query)
	if len(matches) == 0 {
		fmt.Fprintf(os.Stdout, "No subsection matches %q.\n", query)
		return nil
	}
	sep := strings.Repeat("─", 60)
	for _, m := range matches {
		p := parts[m.Part]
		sub := p.Subs[m.Sub]
		fmt.Println(sep)
		fmt.Println(p.Title)
		if sub.Title != "" {
			fmt.Println(sub.Title)
		}
		fmt.Println()
		for _, b := range sub.Blocks() {
			switch b.Kind {
			case grammar.BlockExample:
				if b.Translation != "" {
					fmt.Printf("  • %s  (%s)\n", b.Text, b.Translation)
				} else {
					fmt.Printf("  • %s\n", b.Text)
				}
			default:
				fmt.Println(b.Text)
			}
		}
	}
	fmt.Println(sep)
	fmt.Printf("%d of %d subsections match.\n", len(matches), len(grammar.Search(parts, "")))
	return nil
}
