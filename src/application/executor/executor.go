package executor

import (
	"bytes"
	"context"
	"os/exec"
)

var _ Executor = BinaryFileExecutor{}

//go:generate go run github.com/maxbrunsfeld/counterfeiter/v6 -generate

//counterfeiter:generate . Executor
type Executor interface {
	CommandContext(ctx context.Context, name string, arg ...string) Command
}

//counterfeiter:generate . Command
type Command interface {
	SetDir(dir string)
	CombinedOutput() ([]byte, error)
}

// the only reason this is here is to create an interface for testing
type BinaryFileExecutor struct{}

func (b BinaryFileExecutor) CommandContext(ctx context.Context, name string, arg ...string) Command {
	cmd := exec.Command(name, arg...)
	startProcessGroup(cmd)

	return &binaryCommand{
		ctx: ctx,
		cmd: cmd,
	}
}

type binaryCommand struct {
	ctx context.Context
	cmd *exec.Cmd
}

func (b *binaryCommand) SetDir(dir string) {
	b.cmd.Dir = dir
}

// CombinedOutput kills the whole process group once the context is done.
// Tools like spleeter spawn ffmpeg, which would otherwise hold the output
// pipe open after the direct child is gone.
func (b *binaryCommand) CombinedOutput() ([]byte, error) {
	if err := b.ctx.Err(); err != nil {
		return nil, err
	}

	var output bytes.Buffer
	b.cmd.Stdout = &output
	b.cmd.Stderr = &output

	if err := b.cmd.Start(); err != nil {
		return nil, err
	}

	waitDone := make(chan error, 1)
	go func() {
		waitDone <- b.cmd.Wait()
	}()

	select {
	case err := <-waitDone:
		return output.Bytes(), err

	case <-b.ctx.Done():
		killProcessGroup(b.cmd)
		<-waitDone
		return output.Bytes(), b.ctx.Err()
	}
}
