package commands

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/Sternrassler/employee-directory/pkg/client"
	"github.com/Sternrassler/employee-directory/pkg/loader"
	"github.com/Sternrassler/employee-directory/pkg/logging"
	"github.com/Sternrassler/employee-directory/pkg/render"
	"github.com/Sternrassler/employee-directory/pkg/screen"
	"github.com/spf13/cobra"
)

const browsePrompt = "[n]ext, [p]revious, [q]uit> "

// NewBrowseCommand creates the interactive terminal browser.
func NewBrowseCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "browse",
		Short: "Fetch the directory and page through it in the terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			lc := cfg.Logging()
			lc.Output = cmd.ErrOrStderr()
			logging.Setup(lc)

			c, err := client.New(cfg.Client())
			if err != nil {
				return err
			}

			errOut := cmd.ErrOrStderr()
			notifier := loader.NotifierFunc(func(message string) {
				fmt.Fprintln(errOut, message)
			})
			ld := loader.New(c, notifier, logging.NewLogger("loader"))

			return browse(cmd.Context(), ld, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
}

// browse starts ld, shows the loading view, then redraws the screen after
// every command read from in until quit or EOF.
func browse(ctx context.Context, ld *loader.Loader, in io.Reader, out io.Writer) error {
	sess := screen.NewSession(screen.New(ld, 0))

	if err := render.Text(out, sess.View()); err != nil {
		return err
	}
	ld.Start(ctx)
	if _, err := ld.Wait(ctx); err != nil {
		return err
	}

	view := sess.View()
	scanner := bufio.NewScanner(in)
	for {
		if err := draw(out, view); err != nil {
			return err
		}
		if !scanner.Scan() {
			return scanner.Err()
		}

		switch strings.ToLower(strings.TrimSpace(scanner.Text())) {
		case "n", "next":
			view = sess.Next()
		case "p", "prev", "previous":
			view = sess.Previous()
		case "q", "quit":
			return nil
		case "":
			view = sess.View()
		default:
			fmt.Fprintf(out, "unknown command %q\n", scanner.Text())
		}
	}
}

func draw(out io.Writer, v screen.View) error {
	if _, err := fmt.Fprintln(out); err != nil {
		return err
	}
	if err := render.Text(out, v); err != nil {
		return err
	}
	_, err := fmt.Fprint(out, browsePrompt)
	return err
}
