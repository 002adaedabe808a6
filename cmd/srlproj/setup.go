package main

import (
	"errors"
	"log/slog"

	"github.com/revelaction/srlproj/dataset"
)

func newLayout(dataDir string, logger *slog.Logger) (*dataset.Layout, error) {
	if dataDir == "" {
		return nil, errors.New("no data root given, use -data or set SRLPROJ_DATA")
	}
	return dataset.New(dataDir, dataset.WithLogger(logger)), nil
}
