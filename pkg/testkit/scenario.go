// Package testkit provides a JSON-scenario-driven REST API testing framework.
//
// A scenario describes one HTTP exchange:
//   - The request to fire (method, URL, body inline or from a file, headers)
//   - The expected status code
//   - The expected response body (optional, compared as JSON)
//
// A flow file is a JSON array of scenarios executed in order against the
// same handler, so later steps see the writes of earlier ones:
//
//	testdata/
//	  customer_lifecycle.json    ← flow (array of scenarios)
//	  create_customer_req.json   ← request body referenced by requestFileName
//
// Example _test.go:
//
//	func TestAPI(t *testing.T) {
//	    testkit.RunFlows(t, newHandler, "testdata")
//	}
package testkit

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// ─── Schema ───────────────────────────────────────────────────────────────────

// Scenario describes a single REST API exchange loaded from JSON.
type Scenario struct {
	// Meta
	Name        string `json:"name"`
	Description string `json:"description"`

	// Request
	RequestMethod   string            `json:"requestMethod"`   // GET, POST, PUT, DELETE
	RequestURL      string            `json:"requestUrl"`      // e.g. /customer/1
	RequestFileName string            `json:"requestFileName"` // JSON request body file (relative to scenario dir)
	RequestBody     json.RawMessage   `json:"requestBody"`     // inline request body; wins over requestFileName
	Headers         map[string]string `json:"headers"`         // extra request headers

	// Response assertions
	ResponseFileName   string          `json:"responseFileName"`   // expected response JSON file
	ResponseBody       json.RawMessage `json:"responseBody"`       // inline expected response; wins over responseFileName
	ResponseText       *string         `json:"responseText"`       // expected non-JSON body, compared verbatim
	ExpectedCode       int             `json:"expectedCode"`       // expected HTTP status code
	ExpectedStatusCode int             `json:"expectedStatusCode"` // alias for expectedCode
	MatchSubset        bool            `json:"matchSubset"`        // only compare keys present in the expected body

	// resolved at load time, not read from JSON
	dir string // directory of the scenario file
}

// ─── Loading ──────────────────────────────────────────────────────────────────

// LoadScenario reads and validates a scenario from a JSON file.
func LoadScenario(path string) (*Scenario, error) {
	abs, data, err := readFile(path)
	if err != nil {
		return nil, err
	}

	var s Scenario
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("testkit: parse %q: %w", abs, err)
	}

	s.dir = filepath.Dir(abs)
	if err := s.validate(); err != nil {
		return nil, fmt.Errorf("testkit: invalid scenario %q: %w", abs, err)
	}
	return &s, nil
}

// LoadScenarioArray reads and validates a flow: an ordered array of
// scenarios stored in one JSON file.
func LoadScenarioArray(path string) ([]*Scenario, error) {
	abs, data, err := readFile(path)
	if err != nil {
		return nil, err
	}

	var scenarios []*Scenario
	if err := json.Unmarshal(data, &scenarios); err != nil {
		return nil, fmt.Errorf("testkit: parse scenario array %q: %w", abs, err)
	}
	if len(scenarios) == 0 {
		return nil, fmt.Errorf("testkit: scenario array %q is empty", abs)
	}

	dir := filepath.Dir(abs)
	for i, s := range scenarios {
		s.dir = dir
		if err := s.validate(); err != nil {
			return nil, fmt.Errorf("testkit: invalid scenario %q[%d]: %w", abs, i, err)
		}
	}
	return scenarios, nil
}

func readFile(path string) (string, []byte, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", nil, fmt.Errorf("testkit: resolve path %q: %w", path, err)
	}
	data, err := os.ReadFile(abs)
	if err != nil {
		return "", nil, fmt.Errorf("testkit: read %q: %w", abs, err)
	}
	return abs, data, nil
}

// validate performs basic sanity checks and fills defaults.
func (s *Scenario) validate() error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.RequestURL == "" {
		return fmt.Errorf("requestUrl is required")
	}
	if s.ExpectedCode == 0 {
		s.ExpectedCode = s.ExpectedStatusCode
	}
	if s.ExpectedCode == 0 {
		return fmt.Errorf("expectedCode is required")
	}
	if s.RequestMethod == "" {
		s.RequestMethod = "GET"
	}
	return nil
}

// RequestBytes returns the request body: the inline requestBody, else the
// contents of requestFileName, else nil.
func (s *Scenario) RequestBytes() ([]byte, error) {
	if len(s.RequestBody) > 0 {
		return s.RequestBody, nil
	}
	if p := s.resolve(s.RequestFileName); p != "" {
		return os.ReadFile(p)
	}
	return nil, nil
}

// ExpectedBytes returns the expected response body, or nil when the
// scenario does not assert one.
func (s *Scenario) ExpectedBytes() ([]byte, error) {
	if len(s.ResponseBody) > 0 {
		return s.ResponseBody, nil
	}
	if p := s.resolve(s.ResponseFileName); p != "" {
		return os.ReadFile(p)
	}
	return nil, nil
}

func (s *Scenario) resolve(name string) string {
	if name == "" {
		return ""
	}
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(s.dir, name)
}
