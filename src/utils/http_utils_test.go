package utils

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGenerateETagIsStable(t *testing.T) {
	t.Parallel()
	payload := struct {
		ID    string
		Count int
	}{ID: "abc", Count: 3}

	first, err := GenerateETag(payload)
	require.NoError(t, err)
	require.NotEmpty(t, first)

	second, err := GenerateETag(payload)
	require.NoError(t, err)
	require.Equal(t, first, second)

	changed, err := GenerateETag(struct {
		ID    string
		Count int
	}{ID: "abc", Count: 4})
	require.NoError(t, err)
	require.NotEqual(t, first, changed)
}

func TestGenerateETagUnmarshalableData(t *testing.T) {
	t.Parallel()
	_, err := GenerateETag(make(chan int))
	require.Error(t, err)
}

func TestSendJSONError(t *testing.T) {
	t.Parallel()
	rec := httptest.NewRecorder()
	SendJSONError(rec, "something went wrong", 400)

	require.Equal(t, 400, rec.Code)
	require.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var payload map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	require.Equal(t, "something went wrong", payload["error"])
}

func TestRoundFloat(t *testing.T) {
	t.Parallel()
	require.Equal(t, 1.23, RoundFloat(1.2345, 2))
	require.Equal(t, 1.25, RoundFloat(1.249, 2))
	require.Equal(t, -1.25, RoundFloat(-1.249, 2))
	require.Equal(t, 100.0, RoundFloat(99.999, 2)) // carries over
}
