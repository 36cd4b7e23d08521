package store_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"stem-split-worker/src/application/cloud_storage/store"
	"sync"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

type recordedRequest struct {
	Method      string
	Path        string
	ContentType string
	Body        []byte
}

var _ = Describe("S3FileStore", func() {
	var (
		bucketName string
		denyWrites bool

		server    *httptest.Server
		mutex     sync.Mutex
		requests  []recordedRequest
		objects   map[string][]byte
		fileStore store.S3FileStore
	)

	BeforeEach(func() {
		bucketName = "stems-bucket"
		denyWrites = false
		requests = nil
		objects = map[string][]byte{}

		server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			body, _ := io.ReadAll(r.Body)

			mutex.Lock()
			defer mutex.Unlock()

			requests = append(requests, recordedRequest{
				Method:      r.Method,
				Path:        r.URL.Path,
				ContentType: r.Header.Get("Content-Type"),
				Body:        body,
			})

			switch r.Method {
			case http.MethodPut:
				if denyWrites {
					w.WriteHeader(http.StatusForbidden)
					_, _ = w.Write([]byte(`<Error><Code>AccessDenied</Code><Message>nope</Message></Error>`))
					return
				}
				objects[r.URL.Path] = body
				w.WriteHeader(http.StatusOK)

			case http.MethodGet:
				content, ok := objects[r.URL.Path]
				if !ok {
					w.WriteHeader(http.StatusNotFound)
					_, _ = w.Write([]byte(`<Error><Code>NoSuchKey</Code><Message>missing</Message></Error>`))
					return
				}
				_, _ = w.Write(content)

			default:
				w.WriteHeader(http.StatusMethodNotAllowed)
			}
		}))

		var err error
		fileStore, err = store.NewS3FileStore(server.URL, "access-key", "secret-key", "", bucketName)
		Expect(err).NotTo(HaveOccurred())
	})

	AfterEach(func() {
		server.Close()
	})

	Describe("WriteFile", func() {
		It("puts the object under the bucket and key", func() {
			err := fileStore.WriteFile(context.Background(), "stems/song/vocals.wav", []byte("la la"), "audio/wav")
			Expect(err).NotTo(HaveOccurred())

			Expect(requests).To(HaveLen(1))
			Expect(requests[0].Method).To(Equal(http.MethodPut))
			Expect(requests[0].Path).To(Equal("/stems-bucket/stems/song/vocals.wav"))
			Expect(requests[0].ContentType).To(Equal("audio/wav"))
			Expect(requests[0].Body).To(Equal([]byte("la la")))
		})

		It("overwrites the same key on a second write", func() {
			Expect(fileStore.WriteFile(context.Background(), "stems/song/vocals.wav", []byte("first"), "audio/wav")).To(Succeed())
			Expect(fileStore.WriteFile(context.Background(), "stems/song/vocals.wav", []byte("second"), "audio/wav")).To(Succeed())

			Expect(objects).To(HaveLen(1))
			Expect(objects["/stems-bucket/stems/song/vocals.wav"]).To(Equal([]byte("second")))
		})

		Describe("When the store rejects the write", func() {
			BeforeEach(func() {
				denyWrites = true
			})

			It("returns an error", func() {
				err := fileStore.WriteFile(context.Background(), "stems/song/vocals.wav", []byte("la la"), "audio/wav")
				Expect(err).To(HaveOccurred())
			})
		})
	})

	Describe("GetFile", func() {
		It("reads back a written object", func() {
			Expect(fileStore.WriteFile(context.Background(), "uploads/song.wav", []byte("riff"), "audio/wav")).To(Succeed())

			contents, err := fileStore.GetFile(context.Background(), "uploads/song.wav")
			Expect(err).NotTo(HaveOccurred())
			Expect(contents).To(Equal([]byte("riff")))
		})

		It("returns an error for a missing object", func() {
			_, err := fileStore.GetFile(context.Background(), "uploads/nothing.wav")
			Expect(err).To(HaveOccurred())
		})
	})
})
