package dummy

import (
	"context"
	"path/filepath"
	"stem-split-worker/src/application/executor"
)

var _ executor.Executor = DemucsExecutor{}

func NewDummyDemucsExecutor() *DemucsExecutor {
	return &DemucsExecutor{
		Unavailable: false,
	}
}

// DemucsExecutor fakes the demucs CLI, writing into <out>/<model>/<input base>.
type DemucsExecutor struct {
	Unavailable bool
}

type DemucsCommand struct {
	Unavailable bool
	Args        []string
}

func (d DemucsExecutor) CommandContext(_ context.Context, _ string, arg ...string) executor.Command {
	return DemucsCommand{
		Unavailable: d.Unavailable,
		Args:        arg,
	}
}

func (d DemucsCommand) SetDir(_ string) {}

func (d DemucsCommand) CombinedOutput() ([]byte, error) {
	if len(d.Args) == 0 || d.Args[0] != "-n" {
		return nil, UnexpectedInput
	}

	if d.Unavailable {
		return []byte("demucs: out of memory"), ProcessFailure
	}

	model, ok := getOptionValue(d.Args, "-n")
	if !ok {
		return nil, UnexpectedInput
	}

	destinationDir, ok := getOptionValue(d.Args, "-o")
	if !ok {
		return nil, UnexpectedInput
	}

	extension := "wav"
	stems := []string{"vocals", "drums", "bass", "other"}
	for _, arg := range d.Args {
		switch arg {
		case "--mp3":
			extension = "mp3"
		case "--two-stems=vocals":
			stems = []string{"vocals", "no_vocals"}
		}
	}

	sourcePath := d.Args[len(d.Args)-1]
	return writeStems(sourcePath, filepath.Join(destinationDir, model), stems, extension, false)
}
