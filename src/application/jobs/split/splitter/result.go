package splitter

import (
	"encoding/json"
)

const FailureMessage = "Stem separation failed."

type StemURLs = map[string]string

type Result struct {
	Stems   StemURLs
	Error   string
	Details string
}

func SuccessResult(stems StemURLs) Result {
	if stems == nil {
		stems = StemURLs{}
	}

	return Result{Stems: stems}
}

func FailureResult(err error) Result {
	return Result{
		Error:   FailureMessage,
		Details: err.Error(),
	}
}

func (r Result) Succeeded() bool {
	return r.Error == ""
}

type successBody struct {
	Stems StemURLs `json:"stems"`
}

type failureBody struct {
	Error   string `json:"error"`
	Details string `json:"details"`
}

func (r Result) MarshalJSON() ([]byte, error) {
	if !r.Succeeded() {
		return json.Marshal(failureBody{
			Error:   r.Error,
			Details: r.Details,
		})
	}

	stems := r.Stems
	if stems == nil {
		stems = StemURLs{}
	}

	return json.Marshal(successBody{Stems: stems})
}

func (r *Result) UnmarshalJSON(data []byte) error {
	var body struct {
		Stems   StemURLs `json:"stems"`
		Error   string   `json:"error"`
		Details string   `json:"details"`
	}

	if err := json.Unmarshal(data, &body); err != nil {
		return err
	}

	*r = Result{
		Stems:   body.Stems,
		Error:   body.Error,
		Details: body.Details,
	}

	return nil
}
