package main

import (
	"log"
	"os"
	"strings"

	"contextgen/cmd"
	"contextgen/pkg/logging"

	"golang.org/x/term"
)

func main() {
	err := cmd.Execute()
	syncLogger()
	if err != nil {
		os.Exit(1)
	}
}

// syncLogger flushes the global logger. Stderr must be a terminal or a
// regular file for Sync to succeed; piped stderr returns "invalid argument"
// on some platforms, which is not worth reporting.
func syncLogger() {
	logger := logging.L()
	if term.IsTerminal(int(os.Stderr.Fd())) || isRegularFile(os.Stderr) {
		if syncErr := logger.Sync(); syncErr != nil {
			lowerErr := strings.ToLower(syncErr.Error())
			if !strings.Contains(lowerErr, "invalid argument") {
				log.Printf("Logger sync failed: %v", syncErr)
			}
		}
	}
}

// isRegularFile checks if the given file is a regular file.
func isRegularFile(f *os.File) bool {
	fileInfo, err := f.Stat()
	if err != nil {
		return false
	}
	return fileInfo.Mode().IsRegular()
}
