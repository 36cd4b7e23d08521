package splitter

import (
	"github.com/cockroachdb/errors"
)

// Error kinds, attached with cerr's Mark and checked with errors.Is.
var (
	DecodeError       = errors.New("audio payload could not be decoded")
	StagingError      = errors.New("audio could not be staged in the workspace")
	FetchError        = errors.New("audio could not be fetched from the file store")
	SeparationError   = errors.New("separation engine failed")
	SeparationTimeout = errors.New("separation engine timed out")
	UploadError       = errors.New("stem could not be uploaded")
)
