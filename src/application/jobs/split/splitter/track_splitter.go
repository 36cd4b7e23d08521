package splitter

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	cloudstorage "stem-split-worker/src/application/cloud_storage/entity"
	"stem-split-worker/src/lib/cerr"
	"stem-split-worker/src/lib/storagepath"
	"stem-split-worker/src/lib/working_dir"
	"strings"

	"github.com/apex/log"
	"github.com/cockroachdb/errors"
)

type TrackSplitter struct {
	workingDir    working_dir.WorkingDir
	fileSplitter  FileSplitter
	fileStore     cloudstorage.FileStore
	pathGenerator storagepath.Generator
}

func NewTrackSplitter(
	workingDir working_dir.WorkingDir,
	fileSplitter FileSplitter,
	fileStore cloudstorage.FileStore,
	pathGenerator storagepath.Generator,
) TrackSplitter {
	return TrackSplitter{
		workingDir:    workingDir,
		fileSplitter:  fileSplitter,
		fileStore:     fileStore,
		pathGenerator: pathGenerator,
	}
}

// SplitTrack never returns an error, every failure is folded into the Result.
// The job's workspace is gone by the time it returns.
func (t TrackSplitter) SplitTrack(ctx context.Context, job Job) (result Result) {
	logger := log.WithFields(log.Fields{
		"job_id":   job.ID,
		"filename": job.Filename,
		"engine":   job.Params.Engine,
		"variant":  job.Params.SplitType,
		"format":   job.Params.Format,
	})

	defer func() {
		if recovered := recover(); recovered != nil {
			err := cerr.Field("job_id", job.ID).Error(fmt.Sprintf("Unexpected panic while splitting: %v", recovered))
			cerr.Log(err)
			result = FailureResult(err)
		}
	}()

	stems, err := t.splitTrack(ctx, logger, job)
	if err != nil {
		err = cerr.Field("job_id", job.ID).Wrap(err).Error("Failed to split track")
		cerr.Log(err)
		return FailureResult(err)
	}

	logger.WithField("stem_count", len(stems)).Info("Finished splitting track")
	return SuccessResult(stems)
}

func (t TrackSplitter) splitTrack(ctx context.Context, logger log.Interface, job Job) (StemURLs, error) {
	fileBase, err := validateFilename(job.Filename)
	if err != nil {
		return nil, err
	}

	stemNames, err := StemNames(job.Params.Engine, job.Params.SplitType)
	if err != nil {
		return nil, cerr.Mark(SeparationError).Wrap(err).Error("Failed to resolve the stems to collect")
	}

	logger.Info("Creating workspace")
	workspace, err := t.workingDir.NewWorkspace(job.ID)
	if err != nil {
		return nil, cerr.Mark(StagingError).Wrap(err).Error("Failed to create workspace")
	}

	defer workspace.Release()

	logger.Info("Staging input audio")
	inputPath, err := t.stageInput(ctx, workspace, job)
	if err != nil {
		return nil, err
	}

	logger.Info("Running separation")
	if err := t.fileSplitter.SplitFile(ctx, inputPath, workspace.OutputDir(), job.Params); err != nil {
		errctx := cerr.Field("input_path", inputPath)
		if !errors.Is(err, SeparationError) && !errors.Is(err, SeparationTimeout) {
			errctx = errctx.Mark(SeparationError)
		}

		return nil, errctx.Wrap(err).Error("Failed to separate stems")
	}

	stemDir := filepath.Join(workspace.OutputDir(), fileBase)
	if info, err := os.Stat(stemDir); err != nil || !info.IsDir() {
		return nil, cerr.Field("stem_dir", stemDir).
			Mark(SeparationError).
			Error("Separation finished without producing an output directory")
	}

	logger.Info("Uploading stems")
	return t.publishStems(ctx, stemDir, fileBase, stemNames, job.Params.Format)
}

func (t TrackSplitter) stageInput(ctx context.Context, workspace working_dir.Workspace, job Job) (string, error) {
	contents, err := t.loadAudio(ctx, job)
	if err != nil {
		return "", err
	}

	inputPath := filepath.Join(workspace.InputDir(), job.Filename)
	if err := os.WriteFile(inputPath, contents, 0644); err != nil {
		return "", cerr.Field("input_path", inputPath).
			Mark(StagingError).
			Wrap(err).Error("Failed to write input audio to the workspace")
	}

	return inputPath, nil
}

func (t TrackSplitter) loadAudio(ctx context.Context, job Job) ([]byte, error) {
	if job.AudioB64 != "" {
		contents, err := base64.StdEncoding.DecodeString(job.AudioB64)
		if err != nil {
			return nil, cerr.Mark(DecodeError).Wrap(err).Error("Failed to decode base64 audio")
		}

		return contents, nil
	}

	if job.AudioKey != "" {
		contents, err := t.fileStore.GetFile(ctx, job.AudioKey)
		if err != nil {
			return nil, cerr.Field("audio_key", job.AudioKey).
				Mark(FetchError).
				Wrap(err).Error("Failed to fetch input audio from the file store")
		}

		return contents, nil
	}

	return nil, cerr.Mark(DecodeError).Error("No audio payload in the job")
}

// publishStems uploads in the fixed stem order. A failed upload stops the job,
// stems uploaded before it stay in the store.
func (t TrackSplitter) publishStems(ctx context.Context, stemDir string, fileBase string, stemNames []string, format OutputFormat) (StemURLs, error) {
	stemURLs := StemURLs{}

	for _, stemName := range stemNames {
		stemPath := filepath.Join(stemDir, fmt.Sprintf("%s.%s", stemName, format.Extension()))
		logger := log.WithFields(log.Fields{
			"stem":      stemName,
			"stem_path": stemPath,
		})

		if _, err := os.Stat(stemPath); err != nil {
			if os.IsNotExist(err) {
				logger.Warn("Stem file not produced, skipping")
				continue
			}

			return nil, cerr.Field("stem_path", stemPath).
				Mark(UploadError).
				Wrap(err).Error("Failed to inspect stem file")
		}

		contents, err := os.ReadFile(stemPath)
		if err != nil {
			return nil, cerr.Field("stem_path", stemPath).
				Mark(UploadError).
				Wrap(err).Error("Failed to read stem file")
		}

		key := storagepath.StemKey(fileBase, stemName, format.Extension())
		if err := t.fileStore.WriteFile(ctx, key, contents, format.ContentType()); err != nil {
			return nil, cerr.Fields(cerr.F{
				"stem": stemName,
				"key":  key,
			}).Mark(UploadError).Wrap(err).Error("Failed to upload stem file")
		}

		stemURLs[stemName] = t.pathGenerator.PublicURL(key)
		logger.Info("Uploaded stem")
	}

	return stemURLs, nil
}

// validateFilename accepts a plain file name only and returns it without its
// extension.
func validateFilename(filename string) (string, error) {
	errctx := cerr.Field("filename", filename).Mark(StagingError)

	if filename == "" || filename == "." || filename == ".." {
		return "", errctx.Error("Filename must name a file")
	}

	if strings.ContainsAny(filename, `/\`) {
		return "", errctx.Error("Filename must not contain path separators")
	}

	fileBase := strings.TrimSuffix(filename, filepath.Ext(filename))
	if fileBase == "" {
		fileBase = filename
	}

	return fileBase, nil
}
