package file_splitter_test

import (
	"context"
	"stem-split-worker/src/application/jobs/split/splitter"
	"stem-split-worker/src/application/jobs/split/splitter/file_splitter"
	"stem-split-worker/src/application/jobs/split/splitter/splitterfakes"

	"github.com/cockroachdb/errors"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("SelectFileSplitter", func() {
	var (
		spleeterSplitter *splitterfakes.FakeFileSplitter
		selectSplitter   file_splitter.SelectFileSplitter
	)

	BeforeEach(func() {
		spleeterSplitter = &splitterfakes.FakeFileSplitter{}
		selectSplitter = file_splitter.NewSelectFileSplitter(map[splitter.Engine]splitter.FileSplitter{
			splitter.SpleeterEngine: spleeterSplitter,
			splitter.DemucsEngine:   nil,
		})
	})

	It("dispatches to the engine's splitter", func() {
		params := splitter.SplitParams{Engine: splitter.SpleeterEngine, SplitType: splitter.TwoStemSplitType}
		err := selectSplitter.SplitFile(context.Background(), "in.wav", "out", params)
		Expect(err).NotTo(HaveOccurred())

		_, inputPath, outputDir, passedParams := spleeterSplitter.SplitFileArgsForCall(0)
		Expect(inputPath).To(Equal("in.wav"))
		Expect(outputDir).To(Equal("out"))
		Expect(passedParams).To(Equal(params))
	})

	It("fails for an engine with no splitter", func() {
		err := selectSplitter.SplitFile(context.Background(), "in.wav", "out", splitter.SplitParams{Engine: splitter.DemucsEngine})
		Expect(errors.Is(err, splitter.SeparationError)).To(BeTrue())
	})
})
