package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/firflight/firflight/internal/api"
	"github.com/firflight/firflight/internal/client/models"
	"github.com/firflight/firflight/internal/common"
	"github.com/firflight/firflight/internal/logging"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

const defaultTimeout = 15 * time.Second

type HTTPClient struct {
	baseURL string
	http    *http.Client
	logger  logging.Logger
	conn    *grpc.ClientConn
	health  healthpb.HealthClient

	mu          sync.RWMutex
	accessToken string
}

// NewHTTPClient creates a client for the API at baseURL. When healthAddr is
// not empty, Ping checks the gRPC health service at that address; otherwise
// it requests GET /healthz.
func NewHTTPClient(baseURL, healthAddr string, logger logging.Logger) (*HTTPClient, error) {
	if _, err := url.ParseRequestURI(baseURL); err != nil {
		return nil, fmt.Errorf("invalid server url %q: %w", baseURL, err)
	}

	c := &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: defaultTimeout},
		logger:  logger.With("module", "api_client"),
	}

	if healthAddr != "" {
		conn, err := grpc.NewClient(healthAddr, grpc.WithTransportCredentials(insecure.NewCredentials()))
		if err != nil {
			return nil, fmt.Errorf("health client: %w", err)
		}
		c.conn = conn
		c.health = healthpb.NewHealthClient(conn)
	}
	return c, nil
}

func (c *HTTPClient) Close() error {
	c.http.CloseIdleConnections()
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}

func (c *HTTPClient) SetAccessToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.accessToken = token
}

func (c *HTTPClient) token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.accessToken
}

func (c *HTTPClient) SignIn(ctx context.Context, email, password string) (string, *models.User, error) {
	var resp api.SignInResponse
	req := api.SignInRequest{Email: email, Password: password}
	if err := c.do(ctx, http.MethodPost, "/auth/sign_in", nil, req, &resp); err != nil {
		return "", nil, err
	}
	return resp.AccessToken, userFromAPI(resp.User), nil
}

func (c *HTTPClient) SignUp(ctx context.Context, email, password, name string) (*models.User, error) {
	var resp api.User
	req := api.SignUpRequest{Email: email, Password: password, Name: name}
	if err := c.do(ctx, http.MethodPost, "/auth/sign_up", nil, req, &resp); err != nil {
		return nil, err
	}
	return userFromAPI(resp), nil
}

func (c *HTTPClient) Me(ctx context.Context) (*models.User, error) {
	var resp api.User
	if err := c.do(ctx, http.MethodGet, "/user", nil, nil, &resp); err != nil {
		return nil, err
	}
	return userFromAPI(resp), nil
}

func (c *HTTPClient) SearchFlights(ctx context.Context, from, to string, day time.Time) ([]models.Flight, error) {
	q := url.Values{}
	q.Set("from", from)
	q.Set("to", to)
	if !day.IsZero() {
		q.Set("date", day.Format(time.DateOnly))
	}

	var resp []api.Flight
	if err := c.do(ctx, http.MethodGet, "/flights", q, nil, &resp); err != nil {
		return nil, err
	}

	flights := make([]models.Flight, 0, len(resp))
	for _, f := range resp {
		flights = append(flights, flightFromAPI(f))
	}
	return flights, nil
}

func (c *HTTPClient) GetFlight(ctx context.Context, id string) (*models.Flight, error) {
	var resp api.Flight
	if err := c.do(ctx, http.MethodGet, "/flights/"+url.PathEscape(id), nil, nil, &resp); err != nil {
		return nil, err
	}
	f := flightFromAPI(resp)
	return &f, nil
}

func (c *HTTPClient) Book(ctx context.Context, flightID string, seats int) (*models.Booking, error) {
	var resp api.Booking
	req := api.BookRequest{FlightID: flightID, Seats: seats}
	if err := c.do(ctx, http.MethodPost, "/bookings", nil, req, &resp); err != nil {
		return nil, err
	}
	b := bookingFromAPI(resp)
	return &b, nil
}

func (c *HTTPClient) ListBookings(ctx context.Context) ([]models.Booking, error) {
	var resp []api.Booking
	if err := c.do(ctx, http.MethodGet, "/bookings", nil, nil, &resp); err != nil {
		return nil, err
	}

	bookings := make([]models.Booking, 0, len(resp))
	for _, b := range resp {
		bookings = append(bookings, bookingFromAPI(b))
	}
	return bookings, nil
}

func (c *HTTPClient) TicketURL(ctx context.Context, bookingID string) (string, error) {
	var resp api.TicketResponse
	if err := c.do(ctx, http.MethodGet, "/bookings/"+url.PathEscape(bookingID)+"/ticket", nil, nil, &resp); err != nil {
		return "", err
	}
	return resp.URL, nil
}

func (c *HTTPClient) SendEvents(ctx context.Context, events []api.Event) error {
	return c.do(ctx, http.MethodPost, "/events", nil, api.EventsRequest{Events: events}, nil)
}

// Download streams the body of an absolute URL (e.g. a presigned ticket
// link) into w. No credentials are attached.
func (c *HTTPClient) Download(ctx context.Context, rawURL string, w io.Writer) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &HTTPError{Code: resp.StatusCode, Message: resp.Status}
	}

	if _, err := io.Copy(w, resp.Body); err != nil {
		return fmt.Errorf("download: %w", err)
	}
	return nil
}

func (c *HTTPClient) do(ctx context.Context, method, path string, query url.Values, in, out any) error {
	u := c.baseURL + common.APIPrefix + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if t := c.token(); t != "" {
		req.Header.Set(common.AuthorizationHeader, common.BearerPrefix+t)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Debug(ctx, "request failed", "method", method, "path", path, "error", err)
		return &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.mapError(resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}

func (c *HTTPClient) mapError(resp *http.Response) error {
	e := &HTTPError{Code: resp.StatusCode}

	var body api.Error
	b, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err := json.Unmarshal(b, &body); err == nil && body.Message != "" {
		e.Message = body.Message
	} else {
		e.Message = fmt.Sprintf("HTTP %d %s", resp.StatusCode, http.StatusText(resp.StatusCode))
	}
	return e
}
