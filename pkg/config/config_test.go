package config

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/getmockd/httpstub/pkg/stub"
)

func request(t *testing.T, method, rawurl string) *stub.Request {
	t.Helper()
	u, err := url.Parse(rawurl)
	require.NoError(t, err)
	return &stub.Request{Method: method, URL: u, Header: map[string]string{}}
}

func TestLoadFileSingleStub(t *testing.T) {
	f, err := LoadFile("testdata/single.yaml")
	require.NoError(t, err)
	require.Len(t, f.Stubs, 1)

	stubs, err := f.ToStubs()
	require.NoError(t, err)

	s := stubs[0]
	assert.True(t, s.Matches(request(t, "GET", "http://x.test/health")))
	assert.Equal(t, 200, s.Response.StatusCode)
	assert.Equal(t, "application/json", s.Response.Header["Content-Type"])
	assert.Equal(t, `{"status":"ok"}`, string(s.Response.Body))
}

func TestLoadFileStubList(t *testing.T) {
	f, err := LoadFile("testdata/stubs/users.yaml")
	require.NoError(t, err)
	assert.Equal(t, "1", f.Version)
	require.Len(t, f.Stubs, 2)

	stubs, err := f.ToStubs()
	require.NoError(t, err)

	// Schema-matched body: valid JSON with the required field passes.
	create := stubs[1]
	req := request(t, "POST", "http://x.test/users")
	req.Header["Content-Type"] = "application/json"
	req.Body = []byte(`{"name":"ada"}`)
	assert.True(t, create.Matches(req))

	req.Body = []byte(`{}`)
	assert.False(t, create.Matches(req))
}

func TestLoadFileBareList(t *testing.T) {
	f, err := LoadFile("testdata/stubs/outage.yaml")
	require.NoError(t, err)
	require.Len(t, f.Stubs, 1)

	stubs, err := f.ToStubs()
	require.NoError(t, err)

	s := stubs[0]
	assert.True(t, s.Matches(request(t, "GET", "http://flaky.test/anything")))
	require.True(t, s.Response.Failed())
	assert.Equal(t, "connection reset by peer", s.Response.Err.Error())
}

func TestLoadFileInvalid(t *testing.T) {
	_, err := LoadFile("testdata/invalid.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mutually exclusive")
}

func TestLoadGlob(t *testing.T) {
	stubs, err := LoadGlob("testdata/stubs/**/*.yaml")
	require.NoError(t, err)
	assert.Len(t, stubs, 3)
}

func TestLoadGlobNoMatches(t *testing.T) {
	_, err := LoadGlob("testdata/nothing/**/*.yaml")
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     StubConfig
		wantErr string
	}{
		{
			name:    "missing method",
			cfg:     StubConfig{URL: "http://x.test/a"},
			wantErr: "method: required",
		},
		{
			name:    "missing url",
			cfg:     StubConfig{Method: "GET"},
			wantErr: "url: either url or urlPattern is required",
		},
		{
			name: "duplicate header declaration",
			cfg: StubConfig{
				Method:         "GET",
				URL:            "http://x.test/a",
				Headers:        map[string]string{"Accept": "x"},
				HeaderPatterns: map[string]string{"Accept": "x.*"},
			},
			wantErr: "headerPatterns.Accept",
		},
		{
			name: "conflicting body forms",
			cfg: StubConfig{
				Method:      "GET",
				URL:         "http://x.test/a",
				Body:        "x",
				BodyPattern: "x.*",
			},
			wantErr: "mutually exclusive",
		},
		{
			name: "error response with status",
			cfg: StubConfig{
				Method:   "GET",
				URL:      "http://x.test/a",
				Response: &ResponseConfig{Status: 200, Error: "boom"},
			},
			wantErr: "response.error",
		},
		{
			name: "bad status code",
			cfg: StubConfig{
				Method:   "GET",
				URL:      "http://x.test/a",
				Response: &ResponseConfig{Status: 42},
			},
			wantErr: "invalid status code",
		},
		{
			name: "valid",
			cfg: StubConfig{
				Method:   "get",
				URL:      "http://x.test/a",
				Response: &ResponseConfig{Status: 200},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate("")
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestToStubUppercasesMethod(t *testing.T) {
	cfg := StubConfig{Method: "get", URL: "http://x.test/a"}
	s, err := cfg.ToStub()
	require.NoError(t, err)
	assert.True(t, s.Matches(request(t, "GET", "http://x.test/a")))
}

func TestToStubBadPattern(t *testing.T) {
	cfg := StubConfig{Method: "GET", URLPattern: "["}
	_, err := cfg.ToStub()
	require.Error(t, err)
}
