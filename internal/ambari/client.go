package ambari

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// requestedBy identifies this client to the management API, which rejects
// mutating requests without the header and logs it for reads.
const requestedBy = "confaudit"

const defaultTimeout = 30 * time.Second

// StatusError reports a non-2xx response from the cluster-management API.
type StatusError struct {
	URL    string
	Status int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("server returned status %d for %s", e.Status, e.URL)
}

// Options configure a Client.
type Options struct {
	Host     string // host[:port] of the cluster-management API
	User     string
	Password string
	UseHTTPS bool
	Insecure bool // skip TLS certificate verification
	Timeout  time.Duration
}

// Client issues authenticated requests against an Ambari-style
// cluster-management REST API. All calls are sequential and blocking.
type Client struct {
	baseURL  string
	user     string
	password string
	client   *http.Client
}

// NewClient creates a Client for the given host. A zero timeout falls back
// to a 30s default; requests are never left unbounded.
func NewClient(opts Options) *Client {
	scheme := "http"
	if opts.UseHTTPS {
		scheme = "https"
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	transport := http.DefaultTransport
	if opts.Insecure {
		transport = &http.Transport{
			TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
		}
	}

	return &Client{
		baseURL:  fmt.Sprintf("%s://%s/api/v1", scheme, opts.Host),
		user:     opts.User,
		password: opts.Password,
		client: &http.Client{
			Timeout:   timeout,
			Transport: transport,
		},
	}
}

// BaseURL returns the API root the client talks to.
func (c *Client) BaseURL() string { return c.baseURL }

func (c *Client) get(ctx context.Context, rawURL string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("creating request for %s: %w", rawURL, err)
	}
	req.SetBasicAuth(c.user, c.password)
	req.Header.Set("X-Requested-By", requestedBy)

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("requesting %s: %w", rawURL, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response from %s: %w", rawURL, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{URL: rawURL, Status: resp.StatusCode}
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decoding response from %s: %w", rawURL, err)
	}
	return nil
}

type listResponse struct {
	Items []VersionDescriptor `json:"items"`
}

// ListVersions retrieves the available version descriptors of a
// configuration type on the given cluster. Any failure here is fatal to the
// run: there is nothing to audit without the listing.
func (c *Client) ListVersions(ctx context.Context, cluster, configType string) ([]VersionDescriptor, error) {
	u := fmt.Sprintf("%s/clusters/%s/configurations?type=%s",
		c.baseURL, url.PathEscape(cluster), url.QueryEscape(configType))

	var res listResponse
	if err := c.get(ctx, u, &res); err != nil {
		return nil, fmt.Errorf("listing versions of %s: %w", configType, err)
	}
	return res.Items, nil
}

type snapshotResponse struct {
	Items []Snapshot `json:"items"`
}

// FetchSnapshot retrieves the full property mapping for one version
// descriptor.
func (c *Client) FetchSnapshot(ctx context.Context, desc VersionDescriptor) (*Snapshot, error) {
	var res snapshotResponse
	if err := c.get(ctx, desc.Href, &res); err != nil {
		return nil, err
	}
	if len(res.Items) == 0 {
		return nil, fmt.Errorf("version %d of %s: response contains no items", desc.Version, desc.Type)
	}
	return &res.Items[0], nil
}

// FetchAll retrieves the snapshot for each descriptor, in order. A version
// that fails to fetch is skipped and recorded as a warning rather than
// aborting the pass. progress, if non-nil, is called after each descriptor
// with the number processed so far.
func (c *Client) FetchAll(ctx context.Context, descs []VersionDescriptor, progress func(done int, desc VersionDescriptor)) ([]Snapshot, []FetchWarning) {
	var (
		snapshots []Snapshot
		warnings  []FetchWarning
	)
	for i, desc := range descs {
		snap, err := c.FetchSnapshot(ctx, desc)
		if err != nil {
			warnings = append(warnings, FetchWarning{Descriptor: desc, Err: err})
		} else {
			snapshots = append(snapshots, *snap)
		}
		if progress != nil {
			progress(i+1, desc)
		}
	}
	return snapshots, warnings
}
