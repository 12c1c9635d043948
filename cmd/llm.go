package cmd

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/abhisek/hanzidrill/internal/grammarcheck"
	"github.com/abhisek/hanzidrill/internal/llm"
	"github.com/abhisek/hanzidrill/internal/store"
	"github.com/spf13/cobra"
)

// checkLinkWindow is how long after a model call its submission may be
// stored and still be attributed to it.
const checkLinkWindow = 30 * time.Second

var llmCmd = &cobra.Command{
	Use:     "llm",
	Aliases: []string{"checks"},
	Short:   "Inspect sentence-check model calls and their cost",
}

var llmListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent sentence checks with the submission each one graded",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		purpose, _ := cmd.Flags().GetString("purpose")
		if all, _ := cmd.Flags().GetBool("all"); all {
			purpose = ""
		}

		s, err := openStore(cmd)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer s.Close()

		ctx := cmd.Context()
		events, err := s.EventRepo().QueryLLMEvents(ctx, store.QueryOpts{Limit: limit, Purpose: purpose})
		if err != nil {
			return fmt.Errorf("query events: %w", err)
		}
		links, err := linkedSubmissions(ctx, s.SubmissionRepo(), events)
		if err != nil {
			return err
		}
		writeEventList(cmd.OutOrStdout(), events, links)
		return nil
	},
}

var llmViewCmd = &cobra.Command{
	Use:   "view <id>",
	Short: "Show one model call, the sentence it graded and the raw exchange",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid ID %q: %w", args[0], err)
		}

		s, err := openStore(cmd)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer s.Close()

		ctx := cmd.Context()
		e, err := s.EventRepo().GetLLMEvent(ctx, id)
		if err != nil {
			return fmt.Errorf("get event: %w", err)
		}
		if e == nil {
			return fmt.Errorf("event %d not found", id)
		}
		links, err := linkedSubmissions(ctx, s.SubmissionRepo(), []store.LLMEvent{*e})
		if err != nil {
			return err
		}
		var sub *store.Submission
		if l, ok := links[e.ID]; ok {
			sub = &l
		}
		writeEventDetail(cmd.OutOrStdout(), *e, sub)
		return nil
	},
}

var llmStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show model usage per purpose, estimated cost and local fallbacks",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore(cmd)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer s.Close()

		ctx := cmd.Context()
		byPurpose, err := s.EventRepo().LLMUsageByPurpose(ctx)
		if err != nil {
			return fmt.Errorf("query usage: %w", err)
		}
		byModel, err := s.EventRepo().LLMUsageByModel(ctx)
		if err != nil {
			return fmt.Errorf("query model usage: %w", err)
		}
		subs, err := s.SubmissionRepo().Latest(ctx, statsWindow)
		if err != nil {
			return fmt.Errorf("query submissions: %w", err)
		}
		writeUsage(cmd.OutOrStdout(), byPurpose, byModel, sentenceCount(subs))
		return nil
	},
}

// statsWindow bounds how many recent submissions stats compares against.
const statsWindow = 1000

// linkedSubmissions pairs grammar-check events with the sentence
// submission stored right after them. Each submission is used once.
func linkedSubmissions(ctx context.Context, repo store.SubmissionRepo, events []store.LLMEvent) (map[int64]store.Submission, error) {
	if len(events) == 0 {
		return nil, nil
	}
	oldest := events[0].Timestamp
	for _, e := range events {
		if e.Timestamp.Before(oldest) {
			oldest = e.Timestamp
		}
	}

	var subs []store.Submission
	recent, err := repo.Latest(ctx, statsWindow)
	if err != nil {
		return nil, fmt.Errorf("query submissions: %w", err)
	}
	for _, sub := range recent {
		if !sub.CreatedAt.Before(oldest) {
			subs = append(subs, sub)
		}
	}
	return linkChecks(events, subs, checkLinkWindow), nil
}

// linkChecks attributes each grammar-check event to the first unclaimed
// sentence submission created within window after it.
func linkChecks(events []store.LLMEvent, subs []store.Submission, window time.Duration) map[int64]store.Submission {
	ordered := make([]store.LLMEvent, 0, len(events))
	for _, e := range events {
		if e.Purpose == grammarcheck.Purpose {
			ordered = append(ordered, e)
		}
	}
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].Timestamp.Before(ordered[j].Timestamp) })

	sentences := make([]store.Submission, 0, len(subs))
	for _, s := range subs {
		if !s.IsSessionSummary() {
			sentences = append(sentences, s)
		}
	}
	sort.Slice(sentences, func(i, j int) bool { return sentences[i].CreatedAt.Before(sentences[j].CreatedAt) })

	links := make(map[int64]store.Submission)
	next := 0
	for _, e := range ordered {
		for next < len(sentences) && sentences[next].CreatedAt.Before(e.Timestamp) {
			next++
		}
		if next < len(sentences) && sentences[next].CreatedAt.Sub(e.Timestamp) <= window {
			links[e.ID] = sentences[next]
			next++
		}
	}
	return links
}

func sentenceCount(subs []store.Submission) int {
	n := 0
	for _, s := range subs {
		if !s.IsSessionSummary() {
			n++
		}
	}
	return n
}

func writeEventList(w io.Writer, events []store.LLMEvent, links map[int64]store.Submission) {
	if len(events) == 0 {
		fmt.Fprintln(w, "No model calls recorded.")
		return
	}

	fmt.Fprintf(w, "%-5s  %-16s  %-20s  %-6s  %-2s  %s\n",
		"ID", "Time", "Model", "Ms", "OK", "Sentence")
	fmt.Fprintln(w, strings.Repeat("─", 90))

	for _, e := range events {
		mark := "✓"
		if !e.Success {
			mark = "✗"
		}
		graded := "-"
		if sub, ok := links[e.ID]; ok {
			graded = fmt.Sprintf("#%d %s", sub.ID, truncate(sub.Answer, 30))
			if !sub.Correct {
				graded += " (sai)"
			}
		} else if e.Purpose != grammarcheck.Purpose {
			graded = "[" + e.Purpose + "]"
		}
		fmt.Fprintf(w, "%-5d  %-16s  %-20s  %-6d  %-2s  %s\n",
			e.ID,
			e.Timestamp.Local().Format("2006-01-02 15:04"),
			truncate(e.Model, 20),
			e.LatencyMs,
			mark,
			graded,
		)
	}
}

func writeEventDetail(w io.Writer, e store.LLMEvent, sub *store.Submission) {
	fmt.Fprintf(w, "Call %d  %s  %s/%s  purpose=%s\n",
		e.ID, e.Timestamp.Local().Format("2006-01-02 15:04:05"), e.Provider, e.Model, e.Purpose)
	fmt.Fprintf(w, "Tokens %d in / %d out, %dms", e.InputTokens, e.OutputTokens, e.LatencyMs)
	if cost := llm.LookupCost(e.Model); cost != nil {
		fmt.Fprintf(w, ", %s", formatCost(cost.Cost(e.InputTokens, e.OutputTokens)))
	}
	fmt.Fprintln(w)
	if e.ErrorMessage != "" {
		fmt.Fprintf(w, "Error: %s\n", e.ErrorMessage)
	}

	if sub != nil {
		fmt.Fprintf(w, "\nSubmission #%d (%s, %s)\n", sub.ID, sub.Dataset, sub.Mode)
		fmt.Fprintf(w, "  Đề:      %s\n", sub.Prompt)
		fmt.Fprintf(w, "  Bài làm: %s\n", sub.Answer)
		verdict := "đúng"
		if !sub.Correct {
			verdict = "sai"
		}
		fmt.Fprintf(w, "  Kết quả: %s\n", verdict)
		if sub.Feedback != "" {
			fmt.Fprintf(w, "  Nhận xét: %s\n", sub.Feedback)
		}
	}

	section(w, "REQUEST", e.RequestBody)
	section(w, "RESPONSE", e.ResponseBody)
}

func section(w io.Writer, title, body string) {
	sep := strings.Repeat("─", 60)
	if body == "" {
		body = "(not captured)"
	}
	fmt.Fprintf(w, "\n%s\n%s\n%s\n%s\n", sep, title, sep, body)
}

func writeUsage(w io.Writer, byPurpose []store.LLMUsage, byModel []store.LLMModelUsage, sentences int) {
	if len(byPurpose) == 0 {
		fmt.Fprintln(w, "No model usage recorded yet.")
		if sentences > 0 {
			fmt.Fprintf(w, "All %d stored sentences were checked locally.\n", sentences)
		}
		return
	}

	rule := strings.Repeat("─", 72)
	fmt.Fprintf(w, "%-16s  %6s  %10s  %10s  %8s\n", "Purpose", "Calls", "Input", "Output", "Avg Ms")
	fmt.Fprintln(w, rule)
	checks := 0
	for _, u := range byPurpose {
		fmt.Fprintf(w, "%-16s  %6d  %10d  %10d  %8d\n",
			truncate(u.Purpose, 16), u.Calls, u.InputTokens, u.OutputTokens, u.AvgLatencyMs)
		if u.Purpose == grammarcheck.Purpose {
			checks = u.Calls
		}
	}

	if len(byModel) > 0 {
		fmt.Fprintf(w, "\n%-32s  %6s  %10s\n", "Model", "Calls", "Cost")
		fmt.Fprintln(w, rule)
		var total float64
		var unpriced []string
		for _, m := range byModel {
			cost := llm.LookupCost(m.Model)
			if cost == nil {
				unpriced = append(unpriced, m.Model)
				fmt.Fprintf(w, "%-32s  %6d  %10s\n", truncate(m.Model, 32), m.Calls, "?")
				continue
			}
			c := cost.Cost(m.InputTokens, m.OutputTokens)
			total += c
			fmt.Fprintf(w, "%-32s  %6d  %10s\n", truncate(m.Model, 32), m.Calls, formatCost(c))
		}
		label := "TOTAL"
		if len(unpriced) > 0 {
			label = "TOTAL (partial)"
		}
		fmt.Fprintf(w, "%-32s  %6s  %10s\n", label, "", formatCost(total))
		if len(unpriced) > 0 {
			fmt.Fprintf(w, "Pricing unavailable for: %s\n", strings.Join(unpriced, ", "))
		}
	}

	if sentences > 0 {
		local := max(sentences-checks, 0)
		fmt.Fprintf(w, "\n%d of %d recent sentences checked locally\n", local, sentences)
	}
}

// truncate cuts s to max runes.
func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max])
}

func formatCost(usd float64) string {
	if usd < 0.01 {
		return fmt.Sprintf("$%.4f", usd)
	}
	return fmt.Sprintf("$%.2f", usd)
}

func init() {
	llmListCmd.Flags().IntP("limit", "n", 20, "Number of calls to show")
	llmListCmd.Flags().StringP("purpose", "p", grammarcheck.Purpose, "Only show calls with this purpose")
	llmListCmd.Flags().Bool("all", false, "Show calls of every purpose")

	llmCmd.AddCommand(llmListCmd)
	llmCmd.AddCommand(llmViewCmd)
	llmCmd.AddCommand(llmStatsCmd)
}
