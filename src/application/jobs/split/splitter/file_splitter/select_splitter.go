package file_splitter

import (
	"context"
	"stem-split-worker/src/application/jobs/split/splitter"
	"stem-split-worker/src/lib/cerr"
)

var _ splitter.FileSplitter = SelectFileSplitter{}

// SelectFileSplitter dispatches on the job's engine. An engine without a
// registered splitter fails the job.
type SelectFileSplitter struct {
	splitters map[splitter.Engine]splitter.FileSplitter
}

func NewSelectFileSplitter(splitters map[splitter.Engine]splitter.FileSplitter) SelectFileSplitter {
	registered := map[splitter.Engine]splitter.FileSplitter{}
	for engine, fileSplitter := range splitters {
		if fileSplitter != nil {
			registered[engine] = fileSplitter
		}
	}

	return SelectFileSplitter{
		splitters: registered,
	}
}

func (s SelectFileSplitter) SplitFile(ctx context.Context, inputPath string, outputDir string, params splitter.SplitParams) error {
	fileSplitter, ok := s.splitters[params.Engine]
	if !ok {
		return cerr.Field("engine", params.Engine).
			Mark(splitter.SeparationError).
			Error("No splitter is configured for the engine")
	}

	return fileSplitter.SplitFile(ctx, inputPath, outputDir, params)
}
