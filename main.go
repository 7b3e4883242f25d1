package main

import (
	"fmt"
	"os"

	"github.com/oakwood-commons/lawlens/cmd"
	"github.com/oakwood-commons/lawlens/pkg/logger"
	"github.com/oakwood-commons/lawlens/pkg/settings"
)

func main() {
	err := cmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", settings.CliBinaryName, err)
	}

	logger.Sync()
	if code := cmd.ExitCode(err); code != 0 {
		os.Exit(code)
	}
}
