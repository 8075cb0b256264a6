// Package sdk provides the client-side library for the HRMS daemon.
// It supports both remote connections over HTTP(S) and local embedded mode.
package sdk

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/celerix-dev/celerix-hrms/pkg/schema"
)

// AllDates is the attendance filter value the daemon reads as "every date".
const AllDates = "all"

// Client is a remote client for the HRMS daemon. It implements Service.
type Client struct {
	base    *url.URL
	http    *http.Client
	mu      sync.RWMutex // protects session
	session *schema.Session
}

// Connect checks that a daemon answers at addr and returns a client for it.
// addr may be a full URL or host:port; a bare host:port uses https unless
// HRMS_TLS is "false".
func Connect(addr string) (*Client, error) {
	if !strings.Contains(addr, "://") {
		scheme := "https"
		if os.Getenv("HRMS_TLS") == "false" {
			scheme = "http"
		}
		addr = scheme + "://" + addr
	}
	base, err := url.Parse(addr)
	if err != nil {
		return nil, fmt.Errorf("sdk: parse address: %w", err)
	}

	c := &Client{
		base: base,
		http: &http.Client{
			Timeout: 10 * time.Second,
			Transport: &http.Transport{
				// The daemon uses a self-signed certificate for internal traffic.
				TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
			},
		},
	}
	if err := c.Ping(context.Background()); err != nil {
		return nil, err
	}
	return c, nil
}

// Ping calls the public health endpoint.
func (c *Client) Ping(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/health", nil, nil)
}

type errorBody struct {
	Error string `json:"error"`
}

// do sends one JSON request. Transport failures on GET are retried up to
// three times with a growing pause.
func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var payload []byte
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return err
		}
		payload = b
	}

	attempts := 1
	if method == http.MethodGet {
		attempts = 3
	}

	p, query, _ := strings.Cut(path, "?")
	target := c.base.JoinPath(p)
	target.RawQuery = query

	var resp *http.Response
	var err error
	for i := 0; i < attempts; i++ {
		var req *http.Request
		req, err = http.NewRequestWithContext(ctx, method, target.String(), bytes.NewReader(payload))
		if err != nil {
			return err
		}
		if in != nil {
			req.Header.Set("Content-Type", "application/json")
		}
		if tok := c.token(); tok != "" {
			req.Header.Set("Authorization", "Bearer "+tok)
		}

		resp, err = c.http.Do(req)
		if err == nil {
			break
		}
		if ctx.Err() != nil {
			return err
		}
		log.Debug().Err(err).Int("attempt", i+1).Str("path", path).Msg("sdk request failed")
		time.Sleep(time.Duration((i+1)*200) * time.Millisecond)
	}
	if err != nil {
		return fmt.Errorf("sdk: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode >= 400 {
		return statusError(resp.StatusCode, path, body)
	}
	if out == nil || len(body) == 0 {
		return nil
	}
	return json.Unmarshal(body, out)
}

func statusError(code int, path string, body []byte) error {
	var eb errorBody
	_ = json.Unmarshal(body, &eb)

	switch {
	case code == http.StatusUnauthorized && path == "/login":
		return schema.ErrInvalidCredentials
	case code == http.StatusUnauthorized:
		return schema.ErrUnauthorized
	case code == http.StatusForbidden:
		return schema.ErrForbidden
	case code == http.StatusNotFound && strings.HasPrefix(path, "/employees/"):
		return schema.ErrEmployeeNotFound
	}
	if eb.Error == "" {
		eb.Error = http.StatusText(code)
	}
	return fmt.Errorf("sdk: %s: %d %s", path, code, eb.Error)
}

func (c *Client) token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.session == nil {
		return ""
	}
	return c.session.Token
}

// --- Authenticator ---

func (c *Client) Login(ctx context.Context, email, password string) (schema.Session, error) {
	in := map[string]string{"email": email, "password": password}
	var sess schema.Session
	if err := c.do(ctx, http.MethodPost, "/login", in, &sess); err != nil {
		return schema.Session{}, err
	}

	c.mu.Lock()
	c.session = &sess
	c.mu.Unlock()
	return sess, nil
}

func (c *Client) Logout() error {
	err := c.do(context.Background(), http.MethodPost, "/logout", nil, nil)

	c.mu.Lock()
	c.session = nil
	c.mu.Unlock()

	if errors.Is(err, schema.ErrUnauthorized) {
		return nil
	}
	return err
}

// IsAuthorized checks the session cached from the last Login.
func (c *Client) IsAuthorized(roles ...schema.Role) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.session == nil {
		return false
	}
	return len(roles) == 0 || slices.Contains(roles, c.session.User.Role)
}

// --- HRStore ---

func (c *Client) ListEmployees(query string) ([]schema.Employee, error) {
	path := "/employees"
	if query != "" {
		path += "?" + url.Values{"q": {query}}.Encode()
	}
	var list []schema.Employee
	err := c.do(context.Background(), http.MethodGet, path, nil, &list)
	return list, err
}

func (c *Client) GetEmployee(id string) (schema.Employee, error) {
	var e schema.Employee
	err := c.do(context.Background(), http.MethodGet, "/employees/"+url.PathEscape(id), nil, &e)
	return e, err
}

func (c *Client) AddEmployee(fields schema.EmployeeFields) (schema.Employee, error) {
	var e schema.Employee
	err := c.do(context.Background(), http.MethodPost, "/employees", fields, &e)
	return e, err
}

func (c *Client) UpdateEmployee(id string, patch schema.EmployeePatch) (schema.Employee, error) {
	var e schema.Employee
	err := c.do(context.Background(), http.MethodPatch, "/employees/"+url.PathEscape(id), patch, &e)
	return e, err
}

func (c *Client) DeleteEmployee(id string) error {
	return c.do(context.Background(), http.MethodDelete, "/employees/"+url.PathEscape(id), nil, nil)
}

func (c *Client) ListAttendance(date string) ([]schema.AttendanceEntry, error) {
	if date == "" {
		date = AllDates
	}
	var list []schema.AttendanceEntry
	err := c.do(context.Background(), http.MethodGet, "/attendance?"+url.Values{"date": {date}}.Encode(), nil, &list)
	return list, err
}

func (c *Client) RecordAttendance(fields schema.AttendanceFields) (schema.AttendanceEntry, error) {
	var e schema.AttendanceEntry
	err := c.do(context.Background(), http.MethodPost, "/attendance", fields, &e)
	return e, err
}

func (c *Client) Dashboard() (schema.Dashboard, error) {
	var d schema.Dashboard
	err := c.do(context.Background(), http.MethodGet, "/dashboard", nil, &d)
	return d, err
}

func (c *Client) Snapshot() (schema.Snapshot, error) {
	var s schema.Snapshot
	err := c.do(context.Background(), http.MethodGet, "/snapshot", nil, &s)
	return s, err
}

// --- Helpers ---

// Find returns the first employee for which match is true.
func Find(s EmployeeReader, match func(schema.Employee) bool) (schema.Employee, error) {
	list, err := s.ListEmployees("")
	if err != nil {
		return schema.Employee{}, err
	}
	i := slices.IndexFunc(list, match)
	if i < 0 {
		return schema.Employee{}, schema.ErrEmployeeNotFound
	}
	return list[i], nil
}

// Ptr returns a pointer to v, for building EmployeePatch values.
func Ptr[T any](v T) *T {
	return &v
}
