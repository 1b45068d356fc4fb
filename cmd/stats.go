package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show learning statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withEnv(cmd, func(ctx context.Context, e *env) error {
			id, err := e.user()
			if err != nil {
				return err
			}
			st, err := e.store.HistoryRepo().Stats(ctx, id.String())
			if err != nil {
				return fmt.Errorf("load stats: %w", err)
			}

			language := "not chosen yet"
			if st.PreferredLanguage != nil {
				language = st.PreferredLanguage.String()
			}
			last := "never"
			if st.LastCompleted != nil {
				last = st.LastCompleted.Local().Format("2006-01-02 15:04")
			}

			fmt.Printf("Streak:          %d day%s\n", st.CurrentStreak, plural(st.CurrentStreak))
			fmt.Printf("Lessons done:    %d\n", st.TotalLessons)
			fmt.Printf("Words practiced: %d\n", st.TotalWords)
			fmt.Printf("Language:        %s\n", language)
			fmt.Printf("Last completed:  %s\n", last)
			return nil
		})
	},
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List completed lessons",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		return withEnv(cmd, func(ctx context.Context, e *env) error {
			id, err := e.user()
			if err != nil {
				return err
			}
			records, err := e.store.HistoryRepo().History(ctx, id.String(), limit)
			if err != nil {
				return fmt.Errorf("load history: %w", err)
			}
			if len(records) == 0 {
				fmt.Println("No completed lessons yet.")
				return nil
			}

			fmt.Printf("%-10s  %-9s  %6s  %s\n", "Lesson", "Language", "Streak", "Words")
			fmt.Println(strings.Repeat("─", 72))
			for _, r := range records {
				fmt.Printf("%-10s  %-9s  %6d  %s\n",
					r.LessonID, r.Language, r.Streak, truncate(strings.Join(r.Words, ", "), 40))
			}
			return nil
		})
	},
}

func init() {
	historyCmd.Flags().IntP("limit", "n", 14, "Number of lessons to show (0 for all)")
}
