package cmd

import (
	"fmt"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/abhisek/hanzidrill/internal/store"
	"github.com/spf13/cobra"
)

var submissionsCmd = &cobra.Command{
	Use:     "submissions",
	Aliases: []string{"subs"},
	Short:   "List stored submissions, or follow new ones with --watch",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		watch, _ := cmd.Flags().GetBool("watch")
		interval, _ := cmd.Flags().GetDuration("interval")

		s, err := openStore(cmd)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer s.Close()
		repo := s.SubmissionRepo()

		ctx := cmd.Context()
		total, err := repo.Count(ctx)
		if err != nil {
			return err
		}
		subs, err := repo.Latest(ctx, limit)
		if err != nil {
			return err
		}

		fmt.Printf("%d submissions stored\n", total)
		printSubmissionHeader()
		var lastID int64
		// Latest is newest first; print oldest first so --watch appends.
		for i := len(subs) - 1; i >= 0; i-- {
			printSubmission(subs[i])
			lastID = max(lastID, subs[i].ID)
		}
		if !watch {
			return nil
		}

		ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		feed, errc := repo.Watch(ctx, lastID, interval)
		for sub := range feed {
			printSubmission(sub)
		}
		if err := <-errc; err != nil {
			return fmt.Errorf("watch submissions: %w", err)
		}
		return nil
	},
}

func init() {
	submissionsCmd.Flags().IntP("limit", "n", store.DefaultLatestLimit, "Number of submissions to show")
	submissionsCmd.Flags().BoolP("watch", "w", false, "Keep printing new submissions until interrupted")
	submissionsCmd.Flags().Duration("interval", 2*time.Second, "Polling interval for --watch")
}

func printSubmissionHeader() {
	fmt.Printf("%-5s  %-16s  %-16s  %-11s  %-5s  %s\n",
		"ID", "Time", "Dataset", "Mode", "OK", "Prompt / Answer")
	fmt.Println(strings.Repeat("─", 100))
}

func printSubmission(s store.Submission) {
	when := s.CreatedAt.Local().Format("2006-01-02 15:04")
	if s.IsSessionSummary() {
		fmt.Printf("%-5d  %-16s  %-16s  %-11s  %-5s  session %d/%d, %s\n",
			s.ID, when, truncate(s.Dataset, 16), s.Mode, "★", s.Score, s.Total, s.Feedback)
		return
	}
	ok := "✓"
	if !s.Correct {
		ok = "✗"
	}
	fmt.Printf("%-5d  %-16s  %-16s  %-11s  %-5s  %s → %s\n",
		s.ID, when, truncate(s.Dataset, 16), s.Mode, ok, s.Prompt, s.Answer)
	if s.Feedback != "" {
		fmt.Printf("%49s%s\n", "", s.Feedback)
	}
}
