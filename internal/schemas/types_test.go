package schemas_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MasterDavvy/LLM-Summeriser-Scoring/internal/schemas"
)

func TestSummarizeRequestCSVContent(t *testing.T) {
	var plain schemas.SummarizeRequest
	require.NoError(t, json.Unmarshal([]byte(`{"csv_content":"a,b\n1,2\n"}`), &plain))
	require.NotNil(t, plain.CSVContent)
	assert.Equal(t, "a,b\n1,2\n", string(*plain.CSVContent))

	var encoded schemas.SummarizeRequest
	require.NoError(t, json.Unmarshal([]byte(`{"csv_content":{"base64":"YSxiCjEsMgo="}}`), &encoded))
	assert.Equal(t, "a,b\n1,2\n", string(*encoded.CSVContent))

	var bad schemas.SummarizeRequest
	assert.Error(t, json.Unmarshal([]byte(`{"csv_content":42}`), &bad))
	assert.Error(t, json.Unmarshal([]byte(`{"csv_content":{"base64":"%%%"}}`), &bad))
}

func TestSummarizeRequestMissing(t *testing.T) {
	var r schemas.SummarizeRequest
	require.NoError(t, json.Unmarshal([]byte(`{"model_ids":["m"]}`), &r))
	assert.Equal(t, "target_columns", r.Missing())

	require.NoError(t, json.Unmarshal([]byte(`{"target_columns":[],"model_ids":["m"]}`), &r))
	assert.Equal(t, "", r.Missing())
	assert.Nil(t, r.S3Key)
}
