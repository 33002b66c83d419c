package lattice

import (
	"log/slog"
	"runtime"

	"github.com/tsawler/lattice/tables"
)

// ExtractOptions holds configuration for table extraction.
type ExtractOptions struct {
	// Page selection (1-indexed positions, nil means all pages)
	pages []int

	// Detector to run; nil means a lattice detector using logger
	detector tables.Detector

	// Maximum number of pages processed at once
	concurrency int

	logger *slog.Logger
}

// defaultOptions returns the default extraction options.
func defaultOptions() ExtractOptions {
	return ExtractOptions{
		pages:       nil,
		concurrency: runtime.GOMAXPROCS(0),
		logger:      slog.New(discardHandler{}),
	}
}

// clone creates a deep copy of ExtractOptions.
func (o ExtractOptions) clone() ExtractOptions {
	newOpts := ExtractOptions{
		detector:    o.detector,
		concurrency: o.concurrency,
		logger:      o.logger,
	}

	if o.pages != nil {
		newOpts.pages = make([]int, len(o.pages))
		copy(newOpts.pages, o.pages)
	}

	return newOpts
}
