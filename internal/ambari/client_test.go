package ambari

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
)

// newTestServer serves a minimal cluster-management API with three versions
// of "yarn-site". Version 2 responds with a 500 to exercise the skip path.
func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	var srv *httptest.Server

	mux.HandleFunc("/api/v1/clusters/dev/configurations", func(w http.ResponseWriter, r *http.Request) {
		if user, pass, ok := r.BasicAuth(); !ok || user != "admin" || pass != "hunter2" {
			w.WriteHeader(http.StatusForbidden)
			return
		}
		if got := r.Header.Get("X-Requested-By"); got != "confaudit" {
			t.Errorf("X-Requested-By = %q, want %q", got, "confaudit")
		}
		if got := r.URL.Query().Get("type"); got != "yarn-site" {
			w.WriteHeader(http.StatusNotFound)
			return
		}

		// Deliberately out of order to exercise sorting downstream.
		fmt.Fprintf(w, `{"items": [
			{"href": "%[1]s/api/v1/clusters/dev/configurations?type=yarn-site&tag=v3", "tag": "v3", "type": "yarn-site", "version": 3},
			{"href": "%[1]s/api/v1/clusters/dev/configurations?type=yarn-site&tag=v1", "tag": "v1", "type": "yarn-site", "version": 1},
			{"href": "%[1]s/api/v1/clusters/dev/configurations?type=yarn-site&tag=v2", "tag": "v2", "type": "yarn-site", "version": 2}
		]}`, srv.URL)
	})

	srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if tag := r.URL.Query().Get("tag"); tag != "" {
			switch tag {
			case "v1":
				fmt.Fprint(w, `{"items": [{"type": "yarn-site", "tag": "v1", "version": 1, "properties": {"a": "1"}}]}`)
			case "v2":
				w.WriteHeader(http.StatusInternalServerError)
			case "v3":
				fmt.Fprint(w, `{"items": [{"type": "yarn-site", "tag": "v3", "version": 3, "properties": {"a": "2"}}]}`)
			default:
				w.WriteHeader(http.StatusNotFound)
			}
			return
		}
		mux.ServeHTTP(w, r)
	}))
	t.Cleanup(srv.Close)
	return srv
}

// newTestClient points a Client at the test server, working around
// NewClient composing its own base URL from a host.
func newTestClient(t *testing.T, srv *httptest.Server) *Client {
	t.Helper()
	u, err := url.Parse(srv.URL)
	if err != nil {
		t.Fatalf("parsing test server URL: %v", err)
	}
	return NewClient(Options{
		Host:     u.Host,
		User:     "admin",
		Password: "hunter2",
	})
}

func TestListVersions(t *testing.T) {
	srv := newTestServer(t)
	c := newTestClient(t, srv)

	descs, err := c.ListVersions(context.Background(), "dev", "yarn-site")
	if err != nil {
		t.Fatalf("ListVersions: %v", err)
	}
	if len(descs) != 3 {
		t.Fatalf("got %d descriptors, want 3", len(descs))
	}
	if descs[0].Version != 3 {
		t.Errorf("descriptors should keep listing order before sorting, got first version %d", descs[0].Version)
	}
}

func TestListVersionsStatusError(t *testing.T) {
	srv := newTestServer(t)
	c := newTestClient(t, srv)

	_, err := c.ListVersions(context.Background(), "dev", "no-such-type")
	if err == nil {
		t.Fatal("expected error for unknown config type")
	}
	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("expected StatusError, got %T: %v", err, err)
	}
	if statusErr.Status != http.StatusNotFound {
		t.Errorf("Status = %d, want %d", statusErr.Status, http.StatusNotFound)
	}
}

func TestListVersionsBadCredentials(t *testing.T) {
	srv := newTestServer(t)
	u, _ := url.Parse(srv.URL)
	c := NewClient(Options{Host: u.Host, User: "admin", Password: "wrong"})

	_, err := c.ListVersions(context.Background(), "dev", "yarn-site")
	var statusErr *StatusError
	if !errors.As(err, &statusErr) || statusErr.Status != http.StatusForbidden {
		t.Fatalf("expected 403 StatusError, got %v", err)
	}
}

func TestListVersionsMalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"items": [not json`)
	}))
	defer srv.Close()

	u, _ := url.Parse(srv.URL)
	c := NewClient(Options{Host: u.Host})

	_, err := c.ListVersions(context.Background(), "dev", "yarn-site")
	if err == nil || !strings.Contains(err.Error(), "decoding response") {
		t.Fatalf("expected decode error, got %v", err)
	}
}

func TestFetchSnapshot(t *testing.T) {
	srv := newTestServer(t)
	c := newTestClient(t, srv)

	snap, err := c.FetchSnapshot(context.Background(), VersionDescriptor{
		Href:    srv.URL + "/api/v1/clusters/dev/configurations?type=yarn-site&tag=v1",
		Type:    "yarn-site",
		Version: 1,
	})
	if err != nil {
		t.Fatalf("FetchSnapshot: %v", err)
	}
	if snap.Version != 1 {
		t.Errorf("Version = %d, want 1", snap.Version)
	}
	if snap.Properties["a"] != "1" {
		t.Errorf("Properties[a] = %q, want %q", snap.Properties["a"], "1")
	}
}

func TestFetchAllSkipsFailedVersions(t *testing.T) {
	srv := newTestServer(t)
	c := newTestClient(t, srv)

	descs, err := c.ListVersions(context.Background(), "dev", "yarn-site")
	if err != nil {
		t.Fatalf("ListVersions: %v", err)
	}
	SortVersions(descs, SortByVersion)

	var calls int
	snaps, warnings := c.FetchAll(context.Background(), descs, func(done int, desc VersionDescriptor) {
		calls++
		if done != calls {
			t.Errorf("progress done = %d, want %d", done, calls)
		}
	})

	if len(snaps) != 2 {
		t.Fatalf("got %d snapshots, want 2 (version 2 fails)", len(snaps))
	}
	if snaps[0].Version != 1 || snaps[1].Version != 3 {
		t.Errorf("snapshot versions = %d, %d, want 1, 3", snaps[0].Version, snaps[1].Version)
	}

	if len(warnings) != 1 {
		t.Fatalf("got %d warnings, want 1", len(warnings))
	}
	if warnings[0].Descriptor.Version != 2 {
		t.Errorf("warning version = %d, want 2", warnings[0].Descriptor.Version)
	}
	var statusErr *StatusError
	if !errors.As(warnings[0].Err, &statusErr) {
		t.Errorf("warning error should be a StatusError, got %v", warnings[0].Err)
	}

	if calls != 3 {
		t.Errorf("progress called %d times, want 3", calls)
	}
}
