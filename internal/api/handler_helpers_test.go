package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/phrazzld/todolist-api/internal/api/shared"
)

// doRequest sends a request with an optional JSON body through handler.
// body may be a string (sent verbatim) or any value to marshal.
func doRequest(t *testing.T, handler http.Handler, method, target string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = strings.NewReader(b)
	default:
		payload, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, target, reader)
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	return rr
}

// decodeProblem asserts rr carries a problem payload and returns it.
func decodeProblem(t *testing.T, rr *httptest.ResponseRecorder) shared.Problem {
	t.Helper()
	require.Equal(t, shared.ProblemContentType, rr.Header().Get("Content-Type"))
	var problem shared.Problem
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &problem), "body: %s", rr.Body.String())
	require.Equal(t, rr.Code, problem.Status)
	return problem
}
