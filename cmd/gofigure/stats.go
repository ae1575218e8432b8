package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tahcohcat/gofigure-interrogation/internal/database"
	"github.com/tahcohcat/gofigure-interrogation/internal/services"
)

var recentFlag int

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show your case record",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := database.NewDB(cfg.Database.Path)
		if err != nil {
			return err
		}
		defer db.Close()

		caseLog := services.NewCaseLog(db)

		stats, err := caseLog.Stats()
		if err != nil {
			return err
		}

		fmt.Printf("Cases played: %d\n", stats.Played)
		fmt.Printf("  Solved: %d (%.0f%%)\n", stats.Solved, stats.SolveRate()*100)
		fmt.Printf("  Wrong accusations: %d\n", stats.Failed)
		fmt.Printf("  Out of time: %d\n", stats.TimedOut)
		fmt.Printf("  Abandoned: %d\n", stats.Abandoned)
		fmt.Printf("Best score: %d\n", stats.BestScore)
		fmt.Printf("Average turns: %.1f\n", stats.AvgTurns)
		if stats.FastestWin > 0 {
			fmt.Printf("Fastest solve: %d turns\n", stats.FastestWin)
		}

		cases, err := caseLog.Recent(recentFlag)
		if err != nil {
			return err
		}
		if len(cases) > 0 {
			fmt.Println("\nRecent cases:")
			for _, c := range cases {
				fmt.Printf("  %s  %-28s %-9s score %-4d turns %d\n",
					c.EndedAt.Local().Format("2006-01-02 15:04"), c.Title, c.Status, c.Score, c.Turns)
			}
		}

		badges, err := caseLog.Badges()
		if err != nil {
			return err
		}
		earned := map[string]bool{}
		for _, b := range badges {
			earned[b.ID] = true
		}

		fmt.Println("\nBadges:")
		for _, b := range services.Catalog() {
			mark := "  "
			if earned[b.ID] {
				mark = b.Icon
			}
			fmt.Printf("  %s %-12s %s\n", mark, b.Title, b.Description)
		}
		return nil
	},
}

func init() {
	statsCmd.Flags().IntVarP(&recentFlag, "recent", "n", 10, "number of recent cases to list")
}
