package file_splitter

import (
	"context"
	"fmt"
	"stem-split-worker/src/application/executor"
	"stem-split-worker/src/application/jobs/split/splitter"
	"stem-split-worker/src/lib/cerr"
	"stem-split-worker/src/lib/working_dir"
	"time"

	"github.com/apex/log"
	"github.com/cockroachdb/errors"
)

const DefaultTimeout = 30 * time.Minute

// engineRunner runs one separation binary under a deadline.
type engineRunner struct {
	workingDir working_dir.WorkingDir
	binPath    string
	executor   executor.Executor
	timeout    time.Duration
}

func newEngineRunner(workingDirStr string, binPath string, executor executor.Executor, timeout time.Duration) (engineRunner, error) {
	workingDir, err := working_dir.NewWorkingDir(workingDirStr)
	if err != nil {
		return engineRunner{}, cerr.Wrap(err).Error("Failed to convert working dir to absolute format")
	}

	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return engineRunner{
		workingDir: workingDir,
		binPath:    binPath,
		executor:   executor,
		timeout:    timeout,
	}, nil
}

func (e engineRunner) run(ctx context.Context, logger log.Interface, args ...string) error {
	// separating is a lengthy process, if we want to halt now is the time
	if ctx.Err() != nil {
		return cerr.Mark(splitter.SeparationError).
			Wrap(ctx.Err()).Error("Context cancelled before splitting could happen")
	}

	timeoutCtx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	logger = logger.WithFields(log.Fields{
		"bin_path": e.binPath,
		"args":     args,
		"timeout":  e.timeout.String(),
	})

	logger.Info("Running separation command")
	cmd := e.executor.CommandContext(timeoutCtx, e.binPath, args...)
	cmd.SetDir(e.workingDir.Root())

	output, err := cmd.CombinedOutput()
	if errors.Is(timeoutCtx.Err(), context.DeadlineExceeded) {
		return cerr.Field("timeout", e.timeout.String()).
			Mark(splitter.SeparationTimeout).
			Error(fmt.Sprintf("Separation did not finish within %s - output: %s", e.timeout, string(output)))
	}

	if err != nil {
		errMsg := fmt.Sprintf("Error occurred while running separation - output: %s", string(output))
		return cerr.Field("bin_path", e.binPath).
			Mark(splitter.SeparationError).
			Wrap(err).Error(errMsg)
	}

	logger.Debug(string(output))
	logger.Info("Finished separation command")

	return nil
}
