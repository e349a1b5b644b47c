package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newScoresCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "scores [dir] [source]",
		Short: "Show the similarity score of every candidate",
		Args:  cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, eng, sourcePath, candidates, err := prepare(cmd, args)
			if err != nil {
				return err
			}

			matches, err := eng.Score(cmd.Context(), sourcePath, candidates)
			if err != nil {
				return err
			}

			rows := make([][]string, 0, len(matches))
			for _, m := range matches {
				similar := "no"
				if m.Score > cfg.Similarity.Threshold {
					similar = "yes"
				}
				rows = append(rows, []string{m.ID, strconv.FormatFloat(m.Score, 'f', 4, 64), similar})
			}

			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"Document", "Score", "Similar"},
				rows,
				[]columnAlignment{alignLeft, alignRight, alignLeft},
			))
			return nil
		},
	}
}
