// main is the entry point for the biasdrift CLI.
package main

import (
	"fmt"
	"os"

	"github.com/ImdataScientistSachin/Bias-Drift-Detector/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
