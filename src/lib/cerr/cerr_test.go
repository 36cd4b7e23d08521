package cerr_test

import (
	"stem-split-worker/src/lib/cerr"

	"github.com/cockroachdb/errors"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("Contextual errors", func() {
	var (
		rootErr error
		kind    error
	)

	BeforeEach(func() {
		rootErr = errors.New("disk on fire")
		kind = errors.New("some kind of failure")
	})

	It("formats the message chain", func() {
		err := cerr.Wrap(rootErr).Error("Failed to write file")
		Expect(err.Error()).To(Equal("Failed to write file: disk on fire"))
	})

	It("creates a leaf error without a cause", func() {
		err := cerr.Field("job_id", "t1").Error("No audio payload provided")
		Expect(err.Error()).To(Equal("No audio payload provided"))
	})

	It("unwraps to the cause", func() {
		err := cerr.Field("a", 1).Wrap(rootErr).Error("outer")
		Expect(errors.Is(err, rootErr)).To(BeTrue())
	})

	It("carries fields through nested wraps", func() {
		inner := cerr.Fields(cerr.F{"a": 1, "b": 2}).Error("inner")
		outer := cerr.Field("b", 3).Field("c", 4).Wrap(inner).Error("outer")

		var ctxErr cerr.ContextualError
		Expect(errors.As(outer, &ctxErr)).To(BeTrue())
		Expect(ctxErr.Context.ContextFields).To(Equal(cerr.F{"a": 1, "b": 3, "c": 4}))
	})

	Describe("Marks", func() {
		It("matches the marked kind", func() {
			err := cerr.Wrap(rootErr).Mark(kind).Error("Failed to decode")
			Expect(errors.Is(err, kind)).To(BeTrue())
		})

		It("keeps the mark when wrapped again", func() {
			marked := cerr.Mark(kind).Error("Failed to decode")
			err := cerr.Wrap(marked).Error("Failed to stage input")
			Expect(errors.Is(err, kind)).To(BeTrue())
		})

		It("does not match an unrelated kind", func() {
			err := cerr.Wrap(rootErr).Mark(kind).Error("Failed to decode")
			Expect(errors.Is(err, errors.New("another kind"))).To(BeFalse())
		})

		It("does not change the message", func() {
			err := cerr.Wrap(rootErr).Mark(kind).Error("Failed to decode")
			Expect(err.Error()).To(Equal("Failed to decode: disk on fire"))
		})
	})
})
