package testkit_test

import (
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/storefront/pkg/testkit"
)

// counter is a tiny stateful handler: POST /items increments, GET /items reads.
type counter struct {
	mu sync.Mutex
	n  int
}

func (c *counter) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	c.mu.Lock()
	defer c.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	switch {
	case r.URL.Path == "/items" && r.Method == http.MethodPost:
		var body struct {
			Name string `json:"name"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		c.n++
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(map[string]any{"id": c.n, "name": body.Name, "extra": true})
	case r.URL.Path == "/items":
		_ = json.NewEncoder(w).Encode(map[string]any{"count": c.n})
	case r.URL.Path == "/":
		w.Header().Set("Content-Type", "text/plain")
		_, _ = w.Write([]byte("hello"))
	default:
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message":"not found"}`))
	}
}

func write(t *testing.T, dir, name, body string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	return p
}

func TestLoadScenarioValidation(t *testing.T) {
	dir := t.TempDir()

	_, err := testkit.LoadScenario(write(t, dir, "no_name.json", `{"requestUrl":"/","expectedCode":200}`))
	assert.ErrorContains(t, err, "name is required")

	_, err = testkit.LoadScenario(write(t, dir, "no_code.json", `{"name":"x","requestUrl":"/"}`))
	assert.ErrorContains(t, err, "expectedCode is required")

	s, err := testkit.LoadScenario(write(t, dir, "alias.json", `{"name":"x","requestUrl":"/","expectedStatusCode":204}`))
	require.NoError(t, err)
	assert.Equal(t, 204, s.ExpectedCode)
	assert.Equal(t, "GET", s.RequestMethod)

	_, err = testkit.LoadScenarioArray(write(t, dir, "empty.json", `[]`))
	assert.Error(t, err)
}

func TestRequestBodyFromFile(t *testing.T) {
	dir := t.TempDir()
	write(t, dir, "req.json", `{"name":"lamp"}`)
	s, err := testkit.LoadScenario(write(t, dir, "s.json",
		`{"name":"file body","requestMethod":"POST","requestUrl":"/items","requestFileName":"req.json","expectedCode":201}`))
	require.NoError(t, err)

	body, err := s.RequestBytes()
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"lamp"}`, string(body))
}

func TestRunSingleScenario(t *testing.T) {
	dir := t.TempDir()
	write(t, dir, "res.json", `{"message":"not found"}`)
	path := write(t, dir, "missing.json",
		`{"name":"missing route","requestUrl":"/nope","expectedCode":404,"responseFileName":"res.json"}`)

	testkit.Run(t, &counter{}, path)
}

func TestRunFlowsShareStateWithinAFlowOnly(t *testing.T) {
	dir := t.TempDir()
	flow := `[
		{"name":"create","requestMethod":"POST","requestUrl":"/items","requestBody":{"name":"desk"},
		 "expectedCode":201,"responseBody":{"id":1,"name":"desk"},"matchSubset":true},
		{"name":"count","requestUrl":"/items","expectedCode":200,"responseBody":{"count":1}},
		{"name":"text","requestUrl":"/","expectedCode":200,"responseText":"hello"}
	]`
	write(t, dir, "a_flow.json", flow)
	write(t, dir, "b_flow.json", flow)

	handlers := 0
	testkit.RunFlows(t, func(t *testing.T) http.Handler {
		handlers++
		return &counter{}
	}, dir)
	assert.Equal(t, 2, handlers)
}

func TestDiffJSON(t *testing.T) {
	var exp, act interface{}
	require.NoError(t, json.Unmarshal([]byte(`{"a":1,"b":[1,2],"c":{"d":"x"}}`), &exp))
	require.NoError(t, json.Unmarshal([]byte(`{"a":2,"b":[1],"c":{"d":"x"},"e":true}`), &act))

	diffs := testkit.DiffJSON("", exp, act)
	assert.Len(t, diffs, 2)
}
