package file_splitter

import (
	"context"
	"fmt"
	"path/filepath"
	"stem-split-worker/src/application/executor"
	"stem-split-worker/src/application/jobs/split/splitter"
	"stem-split-worker/src/lib/cerr"
	"time"

	"github.com/apex/log"
)

var _ splitter.FileSplitter = SpleeterFileSplitter{}

var spleeterModels = map[splitter.SplitType]string{
	splitter.TwoStemSplitType:  "spleeter:2stems",
	splitter.FourStemSplitType: "spleeter:4stems",
	splitter.FiveStemSplitType: "spleeter:5stems",
}

func NewSpleeterFileSplitter(workingDir string, spleeterBinPath string, executor executor.Executor, timeout time.Duration) (SpleeterFileSplitter, error) {
	runner, err := newEngineRunner(workingDir, spleeterBinPath, executor, timeout)
	if err != nil {
		return SpleeterFileSplitter{}, err
	}

	return SpleeterFileSplitter{runner: runner}, nil
}

type SpleeterFileSplitter struct {
	runner engineRunner
}

// SplitFile writes <outputDir>/<input base>/<stem>.<ext>, spleeter's own layout.
func (s SpleeterFileSplitter) SplitFile(ctx context.Context, inputPath string, outputDir string, params splitter.SplitParams) error {
	logger := log.WithFields(log.Fields{
		"input_path": inputPath,
		"output_dir": outputDir,
		"split_type": params.SplitType,
		"format":     params.Format,
	})

	model, ok := spleeterModels[params.SplitType]
	if !ok {
		return cerr.Field("split_type", params.SplitType).
			Mark(splitter.SeparationError).
			Error("Invalid split type passed in!")
	}

	absInputPath, err := filepath.Abs(inputPath)
	if err != nil {
		return cerr.Wrap(err).Error("Cannot convert source path to absolute format")
	}

	absOutputDir, err := filepath.Abs(outputDir)
	if err != nil {
		return cerr.Wrap(err).Error("Cannot convert destination path to absolute format")
	}

	args := []string{"separate", "-p", model, "-o", absOutputDir}
	if params.Format == splitter.MP3OutputFormat {
		args = append(args, "-c", "mp3")
	}
	args = append(args, absInputPath)

	if err := s.runner.run(ctx, logger, args...); err != nil {
		return cerr.Wrap(err).Error(fmt.Sprintf("Failed to execute spleeter with %s", model))
	}

	return nil
}
