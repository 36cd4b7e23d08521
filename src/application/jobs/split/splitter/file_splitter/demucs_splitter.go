package file_splitter

import (
	"context"
	"os"
	"path/filepath"
	"stem-split-worker/src/application/executor"
	"stem-split-worker/src/application/jobs/split/splitter"
	"stem-split-worker/src/lib/cerr"
	"strings"
	"time"

	"github.com/apex/log"
)

var _ splitter.FileSplitter = DemucsFileSplitter{}

const DemucsModel = "htdemucs"

func NewDemucsFileSplitter(workingDir string, demucsBinPath string, executor executor.Executor, timeout time.Duration) (DemucsFileSplitter, error) {
	runner, err := newEngineRunner(workingDir, demucsBinPath, executor, timeout)
	if err != nil {
		return DemucsFileSplitter{}, err
	}

	return DemucsFileSplitter{runner: runner}, nil
}

type DemucsFileSplitter struct {
	runner engineRunner
}

// SplitFile runs demucs and then lifts <outputDir>/htdemucs/<input base> up to
// <outputDir>/<input base> so both engines share one output layout.
func (d DemucsFileSplitter) SplitFile(ctx context.Context, inputPath string, outputDir string, params splitter.SplitParams) error {
	logger := log.WithFields(log.Fields{
		"input_path": inputPath,
		"output_dir": outputDir,
		"split_type": params.SplitType,
		"format":     params.Format,
	})

	absInputPath, err := filepath.Abs(inputPath)
	if err != nil {
		return cerr.Wrap(err).Error("Cannot convert source path to absolute format")
	}

	absOutputDir, err := filepath.Abs(outputDir)
	if err != nil {
		return cerr.Wrap(err).Error("Cannot convert destination path to absolute format")
	}

	args := []string{"-n", DemucsModel, "-o", absOutputDir}
	if params.Format == splitter.MP3OutputFormat {
		args = append(args, "--mp3")
	}

	switch params.SplitType {
	case splitter.TwoStemSplitType:
		args = append(args, "--two-stems=vocals")
	case splitter.FourStemSplitType:
	default:
		return cerr.Field("split_type", params.SplitType).
			Mark(splitter.SeparationError).
			Error("Split type is not supported by demucs")
	}

	args = append(args, absInputPath)

	if err := d.runner.run(ctx, logger, args...); err != nil {
		return cerr.Wrap(err).Error("Failed to execute demucs")
	}

	fileName := filepath.Base(absInputPath)
	fileBase := strings.TrimSuffix(fileName, filepath.Ext(fileName))
	if fileBase == "" {
		fileBase = fileName
	}

	modelDir := filepath.Join(absOutputDir, DemucsModel, fileBase)
	stemDir := filepath.Join(absOutputDir, fileBase)

	if _, err := os.Stat(modelDir); os.IsNotExist(err) {
		// nothing to move, the missing stem dir is reported by the caller
		logger.WithField("model_dir", modelDir).Warn("Demucs produced no output directory")
		return nil
	}

	if err := os.Rename(modelDir, stemDir); err != nil {
		return cerr.Fields(cerr.F{
			"model_dir": modelDir,
			"stem_dir":  stemDir,
		}).Mark(splitter.SeparationError).Wrap(err).Error("Failed to move demucs output into place")
	}

	return nil
}
