package service

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/riverrun/cidrd/ipv4"
	"github.com/riverrun/cidrd/log"
	"github.com/riverrun/cidrd/prefixindex"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	idx := prefixindex.New()
	c, err := ipv4.ParseCidr("10.0.0.0/8")
	if err != nil {
		t.Fatal(err)
	}
	idx.Put(c)
	dbPath := filepath.Join(t.TempDir(), "cidrs.db")
	return New(idx, dbPath, log.NewLogger())
}

func doRequest(t *testing.T, h http.Handler, method, target, accept, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if accept != "" {
		req.Header.Set("Accept", accept)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestStatus(t *testing.T) {
	h := newTestServer(t).Handler()
	rec := doRequest(t, h, http.MethodGet, "/", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if rec.Header().Get("X-Operation") != string(opStatus) {
		t.Errorf("X-Operation = %q", rec.Header().Get("X-Operation"))
	}
	var got statusResult
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	if got.Status != "OK" {
		t.Errorf("status body = %+v", got)
	}
}

func TestSingleLookupJSON(t *testing.T) {
	h := newTestServer(t).Handler()
	rec := doRequest(t, h, http.MethodGet, "/10.1.2.3", mimeJSON, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body=%s", rec.Code, rec.Body.String())
	}
	if rec.Header().Get("X-Operation") != string(opSingleLookup) {
		t.Errorf("X-Operation = %q", rec.Header().Get("X-Operation"))
	}
	var got []lookupResult
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("unmarshal: %v, body=%s", err, rec.Body.String())
	}
	want := []lookupResult{{IP: "10.1.2.3", Valid: true, Cidrs: []string{"10.0.0.0/8"}}}
	if len(got) != 1 || got[0].IP != want[0].IP || got[0].Valid != want[0].Valid || len(got[0].Cidrs) != 1 || got[0].Cidrs[0] != "10.0.0.0/8" {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestSingleLookupYAML(t *testing.T) {
	h := newTestServer(t).Handler()
	rec := doRequest(t, h, http.MethodGet, "/10.1.2.3", mimeYAML, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.HasPrefix(rec.Body.String(), "---\n") {
		t.Errorf("YAML body missing document marker: %q", rec.Body.String())
	}
}

func TestUnsupportedAcceptRejected(t *testing.T) {
	h := newTestServer(t).Handler()
	rec := doRequest(t, h, http.MethodGet, "/10.1.2.3", "text/html", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestInvalidIPRejected(t *testing.T) {
	h := newTestServer(t).Handler()
	rec := doRequest(t, h, http.MethodGet, "/not-an-ip", mimeJSON, "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestBatchLookupSkipsBlankAndMarksInvalid(t *testing.T) {
	h := newTestServer(t).Handler()
	body := "10.1.2.3\r\n\r\nnot-an-ip\n172.16.0.1\n"
	rec := doRequest(t, h, http.MethodPost, "/", mimeJSON, body)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body=%s", rec.Code, rec.Body.String())
	}
	var got []lookupResult
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	if len(got) != 3 {
		t.Fatalf("len(got) = %d, want 3 (blank line skipped): %+v", len(got), got)
	}
	if got[0].IP != "10.1.2.3" || !got[0].Valid || got[0].Cidrs[0] != "10.0.0.0/8" {
		t.Errorf("got[0] = %+v", got[0])
	}
	if got[1].IP != "not-an-ip" || got[1].Valid {
		t.Errorf("got[1] = %+v, want invalid", got[1])
	}
	if !got[2].Valid || len(got[2].Cidrs) != 0 {
		t.Errorf("got[2] = %+v, want valid with no matches (not covered by 10.0.0.0/8)", got[2])
	}
}

func TestVerifyAddDeleteRoundTrip(t *testing.T) {
	h := newTestServer(t).Handler()

	rec := doRequest(t, h, http.MethodGet, "/85.143.160.0/21", mimeJSON, "")
	var v mutationResult
	mustUnmarshal(t, rec.Body.Bytes(), &v)
	if v.Present {
		t.Fatalf("expected present=false before add, got %+v", v)
	}

	rec = doRequest(t, h, http.MethodPut, "/85.143.160.0/21", mimeJSON, "")
	if rec.Header().Get("X-Operation") != string(opAdd) {
		t.Errorf("X-Operation = %q", rec.Header().Get("X-Operation"))
	}
	mustUnmarshal(t, rec.Body.Bytes(), &v)
	if !v.Present {
		t.Fatalf("expected present=true after add, got %+v", v)
	}

	rec = doRequest(t, h, http.MethodGet, "/85.143.160.0/21", mimeJSON, "")
	mustUnmarshal(t, rec.Body.Bytes(), &v)
	if !v.Present {
		t.Fatalf("expected present=true on verify after add, got %+v", v)
	}

	rec = doRequest(t, h, http.MethodDelete, "/85.143.160.0/21", mimeJSON, "")
	if rec.Header().Get("X-Operation") != string(opDelete) {
		t.Errorf("X-Operation = %q", rec.Header().Get("X-Operation"))
	}
	mustUnmarshal(t, rec.Body.Bytes(), &v)
	if v.Present {
		t.Fatalf("expected present=false after delete, got %+v", v)
	}
}

func mustUnmarshal(t *testing.T, body []byte, v any) {
	t.Helper()
	if err := json.Unmarshal(body, v); err != nil {
		t.Fatalf("unmarshal %q: %v", body, err)
	}
}
