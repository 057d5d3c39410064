package main

import (
	"fmt"
	"os"

	"github.com/ismawno/convoy/cmd/convoy"
	"github.com/ismawno/convoy/pkg/style"
	"github.com/ismawno/convoy/pkg/ui"
)

func main() {
	rootCmd := convoy.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		void := !ui.DetectColor(os.Stderr)
		fmt.Fprintln(os.Stderr, style.Render("<fred><bold>Error:</bold></fred> "+err.Error(), void))
		os.Exit(1)
	}
}
