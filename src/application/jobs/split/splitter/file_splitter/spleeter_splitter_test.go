package file_splitter_test

import (
	"context"
	"path/filepath"
	"stem-split-worker/src/application/executor"
	"stem-split-worker/src/application/executor/executorfakes"
	"stem-split-worker/src/application/jobs/split/splitter"
	"stem-split-worker/src/application/jobs/split/splitter/file_splitter"
	"time"

	"github.com/cockroachdb/errors"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("SpleeterFileSplitter", func() {
	var (
		fakeExecutor *executorfakes.FakeExecutor
		fakeCommand  *executorfakes.FakeCommand
		timeout      time.Duration
		params       splitter.SplitParams

		err error
	)

	BeforeEach(func() {
		fakeCommand = &executorfakes.FakeCommand{}
		fakeCommand.CombinedOutputReturns([]byte("done"), nil)

		fakeExecutor = &executorfakes.FakeExecutor{}
		fakeExecutor.CommandContextReturns(fakeCommand)

		timeout = time.Minute
		params = splitter.SplitParams{
			Engine:    splitter.SpleeterEngine,
			SplitType: splitter.FourStemSplitType,
			Format:    splitter.WavOutputFormat,
		}
	})

	JustBeforeEach(func() {
		spleeterSplitter, newErr := file_splitter.NewSpleeterFileSplitter(workingDir, "/bin/spleeter", fakeExecutor, timeout)
		Expect(newErr).NotTo(HaveOccurred())

		err = spleeterSplitter.SplitFile(context.Background(), "/ws/input/song.wav", "/ws/output", params)
	})

	It("runs spleeter with the model, output dir and input", func() {
		Expect(err).NotTo(HaveOccurred())
		Expect(fakeExecutor.CommandContextCallCount()).To(Equal(1))

		_, name, args := fakeExecutor.CommandContextArgsForCall(0)
		Expect(name).To(Equal("/bin/spleeter"))
		Expect(args).To(Equal([]string{"separate", "-p", "spleeter:4stems", "-o", "/ws/output", "/ws/input/song.wav"}))
	})

	It("runs from the working directory", func() {
		absWorkingDir, absErr := filepath.Abs(workingDir)
		Expect(absErr).NotTo(HaveOccurred())
		Expect(fakeCommand.SetDirArgsForCall(0)).To(Equal(absWorkingDir))
	})

	Describe("mp3 output on two stems", func() {
		BeforeEach(func() {
			params.SplitType = splitter.TwoStemSplitType
			params.Format = splitter.MP3OutputFormat
		})

		It("asks spleeter for the mp3 codec", func() {
			_, _, args := fakeExecutor.CommandContextArgsForCall(0)
			Expect(args).To(Equal([]string{"separate", "-p", "spleeter:2stems", "-o", "/ws/output", "-c", "mp3", "/ws/input/song.wav"}))
		})
	})

	Describe("When spleeter exits non-zero", func() {
		BeforeEach(func() {
			fakeCommand.CombinedOutputReturns([]byte("Traceback: no such model"), errors.New("exit status 1"))
		})

		It("returns a separation error with the output", func() {
			Expect(errors.Is(err, splitter.SeparationError)).To(BeTrue())
			Expect(errors.Is(err, splitter.SeparationTimeout)).To(BeFalse())
			Expect(err.Error()).To(ContainSubstring("Traceback: no such model"))
		})
	})

	Describe("When spleeter outlives the timeout", func() {
		BeforeEach(func() {
			timeout = 20 * time.Millisecond

			fakeExecutor.CommandContextCalls(func(ctx context.Context, _ string, _ ...string) executor.Command {
				hangingCommand := &executorfakes.FakeCommand{}
				hangingCommand.CombinedOutputCalls(func() ([]byte, error) {
					<-ctx.Done()
					return []byte("Loading model spleeter:4stems"), ctx.Err()
				})
				return hangingCommand
			})
		})

		It("returns a timeout error", func() {
			Expect(errors.Is(err, splitter.SeparationTimeout)).To(BeTrue())
		})

		It("keeps whatever spleeter printed before it was stopped", func() {
			Expect(err.Error()).To(ContainSubstring("Loading model spleeter:4stems"))
		})
	})

	Describe("With an unknown split type", func() {
		BeforeEach(func() {
			params.SplitType = splitter.SplitType("3stems")
		})

		It("fails without running anything", func() {
			Expect(errors.Is(err, splitter.SeparationError)).To(BeTrue())
			Expect(fakeExecutor.CommandContextCallCount()).To(BeZero())
		})
	})
})
