package job_message

import "encoding/json"

const DefaultJobID = "job"

// Envelope is the invocation payload shared by the queue and the HTTP gateway.
type Envelope struct {
	ID    string `json:"id,omitempty"`
	Input Input  `json:"input"`
}

type Input struct {
	AudioB64     string `json:"audio_b64,omitempty"`
	AudioKey     string `json:"audio_key,omitempty"`
	Filename     string `json:"filename,omitempty"`
	ID           string `json:"id,omitempty"`
	Variant      string `json:"variant,omitempty"`
	Engine       string `json:"engine,omitempty"`
	OutputFormat string `json:"output_format,omitempty"`
}

// JobID prefers the id inside the input, then the envelope id, then the id the
// transport assigned to the delivery.
func (e Envelope) JobID(runtimeID string) string {
	return FirstNonEmpty(e.Input.ID, e.ID, runtimeID)
}

func FirstNonEmpty(ids ...string) string {
	for _, id := range ids {
		if id != "" {
			return id
		}
	}

	return DefaultJobID
}

// PeekJobID settles the job id of a raw message body, falling back to the
// runtime id when the body is not an envelope.
func PeekJobID(body []byte, runtimeID string) string {
	envelope := Envelope{}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return FirstNonEmpty(runtimeID)
	}

	return envelope.JobID(runtimeID)
}
