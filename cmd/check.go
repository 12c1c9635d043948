package cmd

import (
	"fmt"
	"strings"

	"github.com/abhisek/hanzidrill/internal/grammarcheck"
	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check <sentence>",
	Short: "Check a Chinese sentence the way hard mode does",
	Long: `Check a sentence with the configured LLM, or the local rule when none
is configured. With --term the sentence must use that word; without it the
sentence is judged as a free translation of --meaning.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		term, _ := cmd.Flags().GetString("term")
		pinyin, _ := cmd.Flags().GetString("pinyin")
		meaning, _ := cmd.Flags().GetString("meaning")

		e, err := setupEnv(cmd, false)
		if err != nil {
			return err
		}
		defer e.Close()

		v, err := e.checker.Check(cmd.Context(), grammarcheck.Input{
			Term:          term,
			Pronunciation: pinyin,
			Meaning:       meaning,
			Sentence:      strings.Join(args, " "),
		})
		if err != nil {
			return fmt.Errorf("check sentence: %w", err)
		}

		mark := "✓ correct"
		if !v.Correct {
			mark = "✗ incorrect"
		}
		fmt.Printf("%s (%s)\n", mark, v.Source)
		if v.Explanation != "" {
			fmt.Println(v.Explanation)
		}
		if v.Corrected != "" {
			fmt.Println("Suggested:", v.Corrected)
		}
		return nil
	},
}

func init() {
	checkCmd.Flags().StringP("term", "t", "", "Word the sentence must use")
	checkCmd.Flags().String("pinyin", "", "Pronunciation of the word")
	checkCmd.Flags().String("meaning", "", "Vietnamese meaning of the word or sentence")
}
