// Package logging builds the file-backed logger the converter writes
// diagnostics to. Stdout belongs to the TUI while a batch runs, so log
// output goes to a file instead.
package logging

import "go.uber.org/zap"

const DefaultLogFile = "imgconv.log"

// New returns a production logger writing to path, or to DefaultLogFile
// when path is empty.
func New(path string) (*zap.Logger, error) {
	if path == "" {
		path = DefaultLogFile
	}

	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{path}
	cfg.ErrorOutputPaths = []string{path}
	return cfg.Build()
}
