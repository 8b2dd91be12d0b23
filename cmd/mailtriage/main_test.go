package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/csheth/mailtriage/internal/submission"
)

type stubServer struct {
	*httptest.Server
	mu     sync.Mutex
	texts  []string
	status int
	body   string
}

func newStubServer(t *testing.T, status int, body string) *stubServer {
	t.Helper()
	s := &stubServer{status: status, body: body}
	mux := http.NewServeMux()
	mux.HandleFunc("/analyze", func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Text string `json:"text"`
		}
		_ = json.NewDecoder(r.Body).Decode(&req)
		s.mu.Lock()
		s.texts = append(s.texts, req.Text)
		s.mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(s.status)
		_, _ = w.Write([]byte(s.body))
	})
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok","gemini_enabled":true}`))
	})
	s.Server = httptest.NewServer(mux)
	t.Cleanup(s.Close)
	return s
}

func (s *stubServer) seen() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.texts...)
}

func execute(t *testing.T, endpoint string, stdin string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("MAILTRIAGE_ENDPOINT", endpoint)
	t.Setenv("MAILTRIAGE_LOG_DISABLED", "true")

	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

const productiveBody = `{"classification":{"category":"Produtivo","suggested_response":"Thanks, the report is attached."},"original_text_snippet":"Can you send..."}`

func TestClassifyPrintsResults(t *testing.T) {
	server := newStubServer(t, http.StatusOK, productiveBody)

	out, err := execute(t, server.URL, "", "classify", "--text", "Can you send the report?")
	require.NoError(t, err)
	assert.Contains(t, out, "Produtivo")
	assert.Contains(t, out, "Thanks, the report is attached.")
	assert.Equal(t, []string{"Can you send the report?"}, server.seen())
}

func TestClassifyReadsStdin(t *testing.T) {
	server := newStubServer(t, http.StatusOK, productiveBody)

	_, err := execute(t, server.URL, "piped body\n", "classify", "--text", "-")
	require.NoError(t, err)
	assert.Equal(t, []string{"piped body\n"}, server.seen())
}

func TestClassifyRemoteErrorExitsNonZero(t *testing.T) {
	server := newStubServer(t, http.StatusBadRequest, `{"error":"Nenhum texto fornecido."}`)

	out, err := execute(t, server.URL, "", "classify", "--text", "x")
	require.ErrorIs(t, err, errClassifyFailed)
	assert.Contains(t, out, "Nenhum texto fornecido.")
	assert.NotContains(t, out, "Category")
}

func TestClassifyTransportError(t *testing.T) {
	server := newStubServer(t, http.StatusOK, productiveBody)
	endpoint := server.URL
	server.Close()

	out, err := execute(t, endpoint, "", "classify", "--text", "hello")
	require.ErrorIs(t, err, errClassifyFailed)
	assert.Contains(t, out, submission.ConnectionErrorMessage)
}

func TestClassifyRejectsPDF(t *testing.T) {
	server := newStubServer(t, http.StatusOK, productiveBody)
	path := filepath.Join(t.TempDir(), "invoice.pdf")
	require.NoError(t, os.WriteFile(path, []byte("%PDF-1.7\n1 0 obj\n<<>>\nendobj\n"), 0o600))

	out, err := execute(t, server.URL, "", "classify", "--file", path)
	require.ErrorIs(t, err, errClassifyFailed)
	assert.Contains(t, out, submission.PDFUnsupportedMessage)
	assert.Empty(t, server.seen())
}

func TestClassifyFileReplacesText(t *testing.T) {
	server := newStubServer(t, http.StatusOK, productiveBody)
	path := filepath.Join(t.TempDir(), "mail.txt")
	require.NoError(t, os.WriteFile(path, []byte("file body"), 0o600))

	_, err := execute(t, server.URL, "", "classify", "--text", "typed", "--file", path, "--type", "text/plain")
	require.NoError(t, err)
	assert.Equal(t, []string{"file body"}, server.seen())
}

func TestClassifyRequiresInput(t *testing.T) {
	server := newStubServer(t, http.StatusOK, productiveBody)

	_, err := execute(t, server.URL, "", "classify")
	require.Error(t, err)
	assert.NotErrorIs(t, err, errClassifyFailed)
	assert.Contains(t, err.Error(), "--text or --file")
}

func TestEndpointFlagOverridesEnv(t *testing.T) {
	server := newStubServer(t, http.StatusOK, productiveBody)

	_, err := execute(t, "http://127.0.0.1:1", "", "classify", "--endpoint", server.URL, "--text", "hi")
	require.NoError(t, err)
	assert.Equal(t, []string{"hi"}, server.seen())
}

func TestInvalidEndpointFails(t *testing.T) {
	_, err := execute(t, "not a url", "", "classify", "--text", "hi")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid config")
}

func TestHealthCommand(t *testing.T) {
	server := newStubServer(t, http.StatusOK, productiveBody)

	out, err := execute(t, server.URL, "", "health")
	require.NoError(t, err)
	assert.Contains(t, out, "status=ok")
	assert.Contains(t, out, "model_enabled=true")

	server.Close()
	_, err = execute(t, server.URL, "", "health")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unreachable")
}
