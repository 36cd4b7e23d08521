package splitter

import (
	"context"
)

//go:generate go run github.com/maxbrunsfeld/counterfeiter/v6 -generate

type SplitParams struct {
	Engine    Engine
	SplitType SplitType
	Format    OutputFormat
}

// FileSplitter runs a separation engine on inputPath. On success the stems are
// found under <outputDir>/<input file base>/<stem>.<ext>.
//
//counterfeiter:generate . FileSplitter
type FileSplitter interface {
	SplitFile(ctx context.Context, inputPath string, outputDir string, params SplitParams) error
}
