package splitter

const DefaultFilename = "input.wav"

// Job is one separation request, fully resolved against the worker defaults.
type Job struct {
	ID       string
	Filename string

	// exactly one of these is expected, AudioB64 wins when both are set
	AudioB64 string
	AudioKey string

	Params SplitParams
}
