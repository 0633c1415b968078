package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"focusboard/internal/board"
)

// promptConfirmer asks on the command's stdin. Anything but y or yes declines.
type promptConfirmer struct {
	in  io.Reader
	out io.Writer
}

func (p promptConfirmer) Confirm(_ context.Context, prompt board.Prompt) bool {
	fmt.Fprintf(p.out, "%s: %s [y/N]: ", prompt.Title, prompt.Message)
	line, err := bufio.NewReader(p.in).ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}

func confirmer(cmd *cobra.Command, app *App) board.Confirmer {
	if app.Yes {
		return board.Confirmed(true)
	}
	return promptConfirmer{in: cmd.InOrStdin(), out: cmd.ErrOrStderr()}
}
