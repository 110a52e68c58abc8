// Command scrollbind validates declaration files and replays them against a
// headless page.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/phanxgames/scrollbind/internal/cli"
)

func main() {
	err := cli.NewRootCommand().Execute()
	if err == nil {
		return
	}
	// Commands report their own failures; only unexpected errors are printed.
	var exitErr *cli.ExitError
	if !errors.As(err, &exitErr) {
		fmt.Fprintln(os.Stderr, "Error:", err)
	}
	os.Exit(cli.GetExitCode(err))
}
