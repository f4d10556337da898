package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  string
	date    string
)

// SetVersion sets the version information shown by --version. main calls
// it with values injected via ldflags.
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// Execute runs the CLI with the process arguments.
func Execute(ctx context.Context) error {
	return newRootCmd(os.Stderr).ExecuteContext(ctx)
}

// newRootCmd builds the command tree. Logs go to logOut.
func newRootCmd(logOut io.Writer) *cobra.Command {
	var lf logFlags

	root := &cobra.Command{
		Use:   "simplechords",
		Short: "simplechords lays out chord sheets as printable songbooks",
		Long: `simplechords reads chord sheets written as markdown code blocks, with chord
lines above lyric lines, and lays them out as a PDF songbook with chords
aligned to the syllables they belong to.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level, err := lf.resolve()
			if err != nil {
				return err
			}
			cmd.SetContext(withLogger(cmd.Context(), newLogger(logOut, level, cmd.CommandPath())))
			return nil
		},
	}

	root.SetVersionTemplate(fmt.Sprintf("simplechords %s\ncommit: %s\nbuilt: %s\n", version, commit, date))
	root.PersistentFlags().StringVar(&lf.level, "log-level", "", "log level: debug, info, warn or error")
	root.PersistentFlags().BoolVarP(&lf.verbose, "verbose", "v", false, "same as --log-level debug")
	root.PersistentFlags().BoolVarP(&lf.quiet, "quiet", "q", false, "same as --log-level warn")

	root.AddCommand(newRenderCmd())
	root.AddCommand(newCheckCmd())
	root.AddCommand(newConfigCmd())
	return root
}
