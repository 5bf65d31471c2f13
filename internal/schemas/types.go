package schemas

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
)

// EvaluateRequest is the body of POST /modelJudge and of an evaluation job.
type EvaluateRequest struct {
	S3Key         string   `json:"s3_key"`
	JudgeModelIDs []string `json:"judge_model_ids"`
	Metrics       []string `json:"metrics"`
	FinalRun      bool     `json:"final_run"`
}

// SummarizeRequest is the body of POST /summerizeData. Exactly one of
// CSVContent and S3Key supplies the table; CSVContent wins when both are set.
type SummarizeRequest struct {
	TargetColumns []string    `json:"target_columns"`
	ModelIDs      []string    `json:"model_ids"`
	CSVContent    *CSVContent `json:"csv_content,omitempty"`
	S3Key         *string     `json:"s3_key,omitempty"`
	RowStart      int         `json:"row_start,omitempty"`
	RowEnd        int         `json:"row_end,omitempty"`
	FinalRun      bool        `json:"final_run,omitempty"`
}

// Missing names the first required field absent from the request.
func (r SummarizeRequest) Missing() string {
	switch {
	case r.TargetColumns == nil:
		return "target_columns"
	case r.ModelIDs == nil:
		return "model_ids"
	}
	return ""
}

// CSVContent is inline CSV: either a JSON string taken verbatim or an object
// {"base64": "..."} carrying standard base64.
type CSVContent []byte

var errCSVContent = errors.New(`csv_content must be a string or {"base64": "..."}`)

func (c *CSVContent) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 {
		return errCSVContent
	}
	switch b[0] {
	case '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*c = []byte(s)
		return nil
	case '{':
		var obj struct {
			Base64 *string `json:"base64"`
		}
		if err := json.Unmarshal(b, &obj); err != nil {
			return err
		}
		if obj.Base64 == nil {
			return errCSVContent
		}
		raw, err := base64.StdEncoding.DecodeString(*obj.Base64)
		if err != nil {
			return fmt.Errorf("csv_content: %w", err)
		}
		*c = raw
		return nil
	}
	return errCSVContent
}

func (c CSVContent) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(c))
}

type PresignResponse struct {
	URL string `json:"url"`
}

type JobAccepted struct {
	JobID string `json:"job_id"`
}
