package api

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/obinexuscomputing/marktree/dom"
	"github.com/obinexuscomputing/marktree/tmpstore"
)

func TestGetParseResult(t *testing.T) {
	store := newFakeStore()
	service := newTestService(t, testConfig(), store)

	id := uuid.NewString()
	seeded := tmpstore.ParseResult{
		ID:        id,
		Content:   "<p>x</p>",
		Tree:      dom.Parse("<p>x</p>"),
		CreatedAt: time.Now().UTC(),
	}
	require.NoError(t, store.SaveParseResult(context.Background(), id, seeded, time.Minute))

	recorder := getURL(t, service, DocumentsResultsURL+"/"+id)
	require.Equal(t, http.StatusOK, recorder.Code)

	resp := decodeJSON[tmpstore.ParseResult](t, recorder)
	require.Equal(t, id, resp.ID)
	require.Equal(t, seeded.Content, resp.Content)
	require.Equal(t, seeded.Tree.Counts, resp.Tree.Counts)
}

func TestGetParseResult_RoundTripWithParse(t *testing.T) {
	store := newFakeStore()
	service := newTestService(t, testConfig(), store)

	posted := postJSON(t, service, DocumentsParseURL, gin.H{
		"content": "<ul><li>a</li></ul>",
	})
	require.Equal(t, http.StatusOK, posted.Code)

	parsed := decodeJSON[parseResponse](t, posted)

	recorder := getURL(t, service, DocumentsResultsURL+"/"+parsed.ResultID)
	require.Equal(t, http.StatusOK, recorder.Code)

	resp := decodeJSON[tmpstore.ParseResult](t, recorder)
	require.Equal(t, parsed.ResultID, resp.ID)
	require.Equal(t, "<ul><li>a</li></ul>", resp.Content)
}

func TestGetParseResult_InvalidID(t *testing.T) {
	service := newTestService(t, testConfig(), newFakeStore())

	recorder := getURL(t, service, DocumentsResultsURL+"/not-a-uuid")
	require.Equal(t, http.StatusBadRequest, recorder.Code)

	resp, err := extractErrorFromBuffer(recorder.Body)
	require.NoError(t, err)
	require.Contains(t, resp.Error, "invalid result id")
}

func TestGetParseResult_NotFound(t *testing.T) {
	service := newTestService(t, testConfig(), newFakeStore())

	recorder := getURL(t, service, DocumentsResultsURL+"/"+uuid.NewString())
	require.Equal(t, http.StatusNotFound, recorder.Code)
}
