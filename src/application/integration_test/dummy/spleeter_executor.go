package dummy

import (
	"context"
	"os"
	"path/filepath"
	"stem-split-worker/src/application/executor"
	"strings"
	"sync"
)

var _ executor.Executor = &SpleeterExecutor{}

func NewDummySpleeterExecutor() *SpleeterExecutor {
	return &SpleeterExecutor{
		Unavailable: false,
	}
}

// SpleeterExecutor fakes the spleeter CLI: every stem file holds the input
// contents followed by "-<stem>".
type SpleeterExecutor struct {
	Unavailable bool
	// OnlyStems limits the written stems when set
	OnlyStems []string
	// SkipOutputTree exits successfully without writing anything
	SkipOutputTree bool
	// Hang blocks until the command's context is done
	Hang bool

	mutex sync.Mutex
	calls [][]string
}

func (s *SpleeterExecutor) CommandContext(ctx context.Context, _ string, arg ...string) executor.Command {
	s.mutex.Lock()
	s.calls = append(s.calls, append([]string{}, arg...))
	s.mutex.Unlock()

	return &SpleeterCommand{
		ctx:            ctx,
		Unavailable:    s.Unavailable,
		OnlyStems:      s.OnlyStems,
		SkipOutputTree: s.SkipOutputTree,
		Hang:           s.Hang,
		Args:           arg,
	}
}

func (s *SpleeterExecutor) CallCount() int {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return len(s.calls)
}

func (s *SpleeterExecutor) ArgsForCall(i int) []string {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.calls[i]
}

type SpleeterCommand struct {
	ctx            context.Context
	Unavailable    bool
	OnlyStems      []string
	SkipOutputTree bool
	Hang           bool
	Args           []string
}

func getOptionValue(args []string, key string) (string, bool) {
	for i, arg := range args {
		if arg == key && i+1 < len(args) {
			return args[i+1], true
		}
	}

	return "", false
}

func (s *SpleeterCommand) SetDir(_ string) {}

func (s *SpleeterCommand) CombinedOutput() ([]byte, error) {
	if len(s.Args) == 0 || s.Args[0] != "separate" {
		return nil, UnexpectedInput
	}

	if s.Hang {
		<-s.ctx.Done()
		return []byte("killed"), s.ctx.Err()
	}

	if s.Unavailable {
		return []byte("spleeter: model could not be loaded"), ProcessFailure
	}

	sourcePath := s.Args[len(s.Args)-1]

	model, ok := getOptionValue(s.Args, "-p")
	if !ok {
		return nil, UnexpectedInput
	}

	destinationDir, ok := getOptionValue(s.Args, "-o")
	if !ok {
		return nil, UnexpectedInput
	}

	codec, ok := getOptionValue(s.Args, "-c")
	if !ok {
		codec = "wav"
	}

	var stems []string
	switch model {
	case "spleeter:2stems":
		stems = []string{"vocals", "accompaniment"}
	case "spleeter:4stems":
		stems = []string{"vocals", "drums", "bass", "other"}
	case "spleeter:5stems":
		stems = []string{"vocals", "drums", "bass", "piano", "other"}
	default:
		return nil, UnexpectedInput
	}

	if s.OnlyStems != nil {
		stems = s.OnlyStems
	}

	return writeStems(sourcePath, destinationDir, stems, codec, s.SkipOutputTree)
}

func writeStems(sourcePath string, destinationDir string, stems []string, extension string, skipOutputTree bool) ([]byte, error) {
	contents, err := os.ReadFile(sourcePath)
	if err != nil {
		return nil, err
	}

	if skipOutputTree {
		return []byte("Success"), nil
	}

	fileName := filepath.Base(sourcePath)
	stemDir := filepath.Join(destinationDir, strings.TrimSuffix(fileName, filepath.Ext(fileName)))
	if err := os.MkdirAll(stemDir, os.ModePerm); err != nil {
		return nil, err
	}

	for _, stem := range stems {
		stemPath := filepath.Join(stemDir, stem+"."+extension)
		stemContents := []byte(string(contents) + "-" + stem)
		if err := os.WriteFile(stemPath, stemContents, os.ModePerm); err != nil {
			return nil, err
		}
	}

	return []byte("Success"), nil
}
