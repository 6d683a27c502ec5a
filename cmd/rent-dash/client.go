package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	"golang.org/x/sync/errgroup"

	"rent-server/entities"
	"rent-server/services"
)

// apiClient talks to the rent-server REST API with a session token.
type apiClient struct {
	base  string
	token string
	http  *http.Client
}

func newAPIClient(base string) *apiClient {
	return &apiClient{
		base: strings.TrimRight(base, "/"),
		http: &http.Client{Timeout: 10 * time.Second},
	}
}

type apiError struct {
	Status  int
	Message string
}

func (e *apiError) Error() string {
	return fmt.Sprintf("server returned %d: %s", e.Status, e.Message)
}

func (c *apiClient) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(data)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.base+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		var e struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&e)
		return &apiError{Status: resp.StatusCode, Message: e.Error}
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

type envelope[T any] struct {
	Data  T   `json:"data"`
	Count int `json:"count"`
}

func getData[T any](ctx context.Context, c *apiClient, path string) (T, error) {
	var env envelope[T]
	err := c.do(ctx, http.MethodGet, path, nil, &env)
	return env.Data, err
}

func (c *apiClient) login(ctx context.Context, username, password string) error {
	var resp struct {
		Token   string `json:"token"`
		Success bool   `json:"success"`
	}
	err := c.do(ctx, http.MethodPost, "/api/v1/auth/login", map[string]string{
		"username": username,
		"password": password,
	}, &resp)
	if err != nil {
		return err
	}
	if !resp.Success || resp.Token == "" {
		return fmt.Errorf("login refused")
	}
	c.token = resp.Token
	return nil
}

// snapshot is everything the dashboard shows.
type snapshot struct {
	tenants    []entities.Tenant
	accounts   []entities.UtilityAccount
	expenses   []entities.Expense
	properties []entities.Property
	summary    services.MonthSummary
}

// fetchAll loads the lists concurrently.
func (c *apiClient) fetchAll(ctx context.Context, month string) (snapshot, error) {
	var snap snapshot
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		snap.tenants, err = getData[[]entities.Tenant](gctx, c, "/api/v1/tenants")
		return err
	})
	g.Go(func() (err error) {
		snap.accounts, err = getData[[]entities.UtilityAccount](gctx, c, "/api/v1/utility-accounts")
		return err
	})
	g.Go(func() (err error) {
		snap.expenses, err = getData[[]entities.Expense](gctx, c, "/api/v1/expenses")
		return err
	})
	g.Go(func() (err error) {
		snap.properties, err = getData[[]entities.Property](gctx, c, "/api/v1/properties")
		return err
	})
	g.Go(func() (err error) {
		snap.summary, err = getData[services.MonthSummary](gctx, c, "/api/v1/finance/summary?month="+url.QueryEscape(month))
		return err
	})
	if err := g.Wait(); err != nil {
		return snapshot{}, err
	}
	return snap, nil
}

func (c *apiClient) setTenantStatus(ctx context.Context, id string, status entities.TenantStatus) (entities.Tenant, error) {
	var env envelope[entities.Tenant]
	err := c.do(ctx, http.MethodPut, "/api/v1/tenants/"+url.PathEscape(id), map[string]string{"status": string(status)}, &env)
	return env.Data, err
}

// dial opens the alert feed.
func (c *apiClient) dial(ctx context.Context) (*websocket.Conn, error) {
	u, err := url.Parse(c.base)
	if err != nil {
		return nil, err
	}
	switch u.Scheme {
	case "https":
		u.Scheme = "wss"
	default:
		u.Scheme = "ws"
	}
	u.Path = "/ws"
	u.RawQuery = url.Values{"token": {c.token}}.Encode()
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, u.String(), nil)
	return conn, err
}
