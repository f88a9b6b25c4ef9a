// Package clip copies text to the system clipboard.
package clip

import (
	"fmt"
	"os/exec"
	"strings"

	"github.com/atotto/clipboard"
)

// Copy places text on the system clipboard. It tries the native clipboard
// first and falls back to wl-copy on Wayland sessions where no X11 tool
// is available.
func Copy(text string) error {
	err := clipboard.WriteAll(text)
	if err == nil {
		return nil
	}

	if path, lookErr := exec.LookPath("wl-copy"); lookErr == nil {
		cmd := exec.Command(path)
		cmd.Stdin = strings.NewReader(text)
		if runErr := cmd.Run(); runErr == nil {
			return nil
		}
	}

	return fmt.Errorf("clip.Copy: no clipboard tool available (install xclip, xsel, or wl-copy): %w", err)
}
