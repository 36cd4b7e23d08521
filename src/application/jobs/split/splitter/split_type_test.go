package splitter_test

import (
	"stem-split-worker/src/application/jobs/split/splitter"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("SplitType", func() {
	It("lists spleeter stems per variant", func() {
		stems, err := splitter.StemNames(splitter.SpleeterEngine, splitter.TwoStemSplitType)
		Expect(err).NotTo(HaveOccurred())
		Expect(stems).To(Equal([]string{"vocals", "accompaniment"}))

		stems, err = splitter.StemNames(splitter.SpleeterEngine, splitter.FourStemSplitType)
		Expect(err).NotTo(HaveOccurred())
		Expect(stems).To(Equal([]string{"vocals", "drums", "bass", "other"}))

		stems, err = splitter.StemNames(splitter.SpleeterEngine, splitter.FiveStemSplitType)
		Expect(err).NotTo(HaveOccurred())
		Expect(stems).To(Equal([]string{"vocals", "drums", "bass", "piano", "other"}))
	})

	It("lists demucs stems per variant", func() {
		stems, err := splitter.StemNames(splitter.DemucsEngine, splitter.TwoStemSplitType)
		Expect(err).NotTo(HaveOccurred())
		Expect(stems).To(Equal([]string{"vocals", "no_vocals"}))
	})

	It("rejects a five stem demucs split", func() {
		_, err := splitter.StemNames(splitter.DemucsEngine, splitter.FiveStemSplitType)
		Expect(err).To(HaveOccurred())
	})

	It("converts known values and rejects the rest", func() {
		splitType, err := splitter.ConvertToSplitType("5stems")
		Expect(err).NotTo(HaveOccurred())
		Expect(splitType).To(Equal(splitter.FiveStemSplitType))

		_, err = splitter.ConvertToSplitType("3stems")
		Expect(err).To(HaveOccurred())

		engine, err := splitter.ConvertToEngine("demucs")
		Expect(err).NotTo(HaveOccurred())
		Expect(engine).To(Equal(splitter.DemucsEngine))

		_, err = splitter.ConvertToEngine("openunmix")
		Expect(err).To(HaveOccurred())

		format, err := splitter.ConvertToOutputFormat("mp3")
		Expect(err).NotTo(HaveOccurred())
		Expect(format.ContentType()).To(Equal("audio/mpeg"))
		Expect(splitter.WavOutputFormat.ContentType()).To(Equal("audio/wav"))

		_, err = splitter.ConvertToOutputFormat("flac")
		Expect(err).To(HaveOccurred())
	})
})
