package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "docsim [dir] [source]",
		Short:         "List documents in dir similar to the source document",
		Args:          cobra.MaximumNArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, eng, sourcePath, candidates, err := prepare(cmd, args)
			if err != nil {
				return err
			}

			similar, err := eng.FindSimilar(cmd.Context(), sourcePath, candidates)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Possible similar documents to %s are:\n", filepath.Base(sourcePath))
			for _, id := range similar {
				fmt.Fprintln(out, id)
			}
			return nil
		},
	}

	rootCmd.AddCommand(newScoresCommand())

	return rootCmd
}
