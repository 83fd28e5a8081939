package gateway

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestUploadVerificationDocument(t *testing.T) {
	docSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("fake image bytes"))
	}))
	defer docSrv.Close()

	g, rec := newTestGateway(t, func(w http.ResponseWriter, r recordedRequest) {
		writeJSON(w, `{"id":"file_1","object":"file","purpose":"identity_document"}`)
	})

	f, err := g.UploadVerificationDocument(context.Background(), docSrv.URL+"/passport.png", "identity_document", "passport")
	require.NoError(t, err)
	require.Equal(t, "file_1", f.ID)
	// the logical type tag is local, joined onto the remote descriptor
	require.Equal(t, "passport", f.DocumentType)

	last := rec.last()
	require.Equal(t, "/v1/files", last.Path)
	require.True(t, strings.HasPrefix(last.Header.Get("Content-Type"), "multipart/form-data"))
}

func TestUploadVerificationDocumentFetchFailure(t *testing.T) {
	docSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer docSrv.Close()

	g, _ := newTestGateway(t, func(w http.ResponseWriter, r recordedRequest) {
		t.Fatal("no upload expected when the fetch fails")
	})

	_, err := g.UploadVerificationDocument(context.Background(), docSrv.URL+"/missing.png", "identity_document", "passport")
	require.Error(t, err)
}
