package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lasbec/simplechords/song"
)

func newCheckCmd() *cobra.Command {
	var strict bool
	cmd := &cobra.Command{
		Use:   "check [files or directories...]",
		Short: "Parse chord sheets and report problems without rendering",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd.Context(), args, strict)
		},
	}
	cmd.Flags().BoolVar(&strict, "strict", false, "treat warnings as errors")
	return cmd
}

func runCheck(ctx context.Context, args []string, strict bool) error {
	logger := loggerFromContext(ctx)
	paths, err := expandInputs(args)
	if err != nil {
		return err
	}
	sheets, err := loadSheets(ctx, paths, false)
	if err != nil {
		return err
	}
	count := 0
	for _, s := range sheets {
		count += len(s.warnings)
	}
	logger.Info("checked chord sheets", "files", len(sheets), "warnings", count)
	if !strict {
		return nil
	}
	for _, s := range sheets {
		if err := song.Strict(s.warnings); err != nil {
			return fmt.Errorf("%s: %w", s.path, err)
		}
	}
	return nil
}
