package catalogapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"svim/config"
	"svim/infras/otel"
	"svim/shared/constant"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	defaultPageSize = 100
	defaultMaxPages = 20
	maxErrorBody    = 512
)

var (
	ErrUnexpectedStatus = errors.New("catalog api returned an unexpected status")
	ErrInvalidResponse  = errors.New("catalog api returned an invalid response")
	ErrTruncated        = errors.New("catalog api result exceeds the page limit")
)

type Service struct {
	ID                int64    `json:"id"`
	Name              string   `json:"nome"`
	Description       string   `json:"descricao"`
	Category          string   `json:"categoria"`
	DurationMinutes   Minutes  `json:"duracaoEmMinutos"`
	Price             *float64 `json:"preco"`
	VisibleToCustomer bool     `json:"visivelParaCliente"`
}

type Staff struct {
	ID       int64  `json:"id"`
	Name     string `json:"nome"`
	Nickname string `json:"apelido"`
}

type Reference struct {
	ID int64 `json:"id"`
}

type Booking struct {
	ID              int64      `json:"id"`
	StartAt         string     `json:"dataHoraInicio"`
	DurationMinutes Minutes    `json:"duracaoEmMinutos"`
	Status          string     `json:"status"`
	Staff           *Reference `json:"profissional"`
	Service         *Reference `json:"servico"`
}

// Minutes accepts a JSON number, a numeric string or null (zero).
type Minutes int

func (m *Minutes) UnmarshalJSON(data []byte) error {
	raw := strings.Trim(string(bytes.TrimSpace(data)), `"`)
	if raw == "" || raw == "null" {
		*m = 0

		return nil
	}

	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fmt.Errorf("minutes %q: %w", raw, err)
	}

	*m = Minutes(value)

	return nil
}

// ServiceQuery filters /servicos. Empty fields are not sent.
type ServiceQuery struct {
	Name        string
	Category    string
	VisibleOnly *bool
}

type envelope[T any] struct {
	Data     []T `json:"data"`
	Page     int `json:"page"`
	PageSize int `json:"pageSize"`
	Total    int `json:"total"`
}

type Client struct {
	baseURL  string
	key      string
	pageSize int
	maxPages int
	http     *http.Client
	otel     otel.Otel
}

func New(config *config.Config, otel otel.Otel) *Client {
	api := config.Store.API

	timeout := time.Duration(api.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	pageSize := api.PageSize
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}

	maxPages := api.MaxPages
	if maxPages <= 0 {
		maxPages = defaultMaxPages
	}

	return &Client{
		baseURL:  strings.TrimRight(api.BaseURL, "/"),
		key:      api.Key,
		pageSize: pageSize,
		maxPages: maxPages,
		otel:     otel,
		http: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout:   5 * time.Second,
					KeepAlive: 30 * time.Second,
				}).DialContext,
				MaxIdleConns:        100,
				IdleConnTimeout:     90 * time.Second,
				TLSHandshakeTimeout: 5 * time.Second,
			},
		},
	}
}

func (c *Client) ListServices(ctx context.Context, query ServiceQuery) ([]Service, error) {
	params := url.Values{}

	if query.Name != "" {
		params.Set("nome", query.Name)
	}

	if query.Category != "" {
		params.Set("categoria", query.Category)
	}

	if query.VisibleOnly != nil {
		params.Set("somenteVisiveisCliente", strconv.FormatBool(*query.VisibleOnly))
	}

	return fetchAll[Service](ctx, c, "/servicos", params)
}

func (c *Client) ListStaff(ctx context.Context) ([]Staff, error) {
	return fetchAll[Staff](ctx, c, "/profissionais", url.Values{})
}

func (c *Client) ListStaffServices(ctx context.Context, staffID int64) ([]Service, error) {
	return fetchAll[Service](ctx, c, fmt.Sprintf("/profissionais/%d/servicos", staffID), url.Values{})
}

func (c *Client) ListBookings(ctx context.Context, from, to time.Time) ([]Booking, error) {
	params := url.Values{}
	params.Set("dataInicio", from.Format(time.RFC3339))
	params.Set("dataFim", to.Format(time.RFC3339))

	return fetchAll[Booking](ctx, c, "/agendamentos", params)
}

// fetchAll follows pages until total is reached or a short page comes back.
// Running out of pages first yields ErrTruncated, never a partial list.
func fetchAll[T any](ctx context.Context, c *Client, path string, params url.Values) (items []T, err error) {
	ctx, scope := c.otel.NewScope(ctx, constant.OtelExternalScopeName, constant.OtelExternalScopeName+".catalogapi"+path)
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	items = []T{}
	reported := 0

	for page := 1; page <= c.maxPages; page++ {
		params.Set("page", strconv.Itoa(page))
		params.Set("pageSize", strconv.Itoa(c.pageSize))

		var body envelope[T]

		if err = c.get(ctx, path, params, &body); err != nil {
			log.Error().Err(err).Str("path", path).Int("page", page).Msg("Failed fetching catalog api page")

			return nil, err
		}

		items = append(items, body.Data...)
		reported = body.Total

		if len(body.Data) < c.pageSize || (body.Total > 0 && len(items) >= body.Total) {
			scope.SetAttribute("items", len(items))

			return items, nil
		}
	}

	err = fmt.Errorf("%w: %s fetched=%d total=%d maxPages=%d", ErrTruncated, path, len(items), reported, c.maxPages)
	log.Error().Err(err).Str("path", path).Msg("Catalog api page limit reached")

	return nil, err
}

func (c *Client) get(ctx context.Context, path string, params url.Values, out any) error {
	endpoint := c.baseURL + path
	if encoded := params.Encode(); encoded != "" {
		endpoint += "?" + encoded
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("building request %s: %w", path, err)
	}

	req.Header.Set(constant.RequestHeaderAccept, constant.ContentTypeJSON)

	if c.key != "" {
		req.Header.Set(constant.RequestHeaderAPIKey, c.key)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("requesting %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

		return fmt.Errorf("%w: %s status=%d body=%s", ErrUnexpectedStatus, path, resp.StatusCode, strings.TrimSpace(string(snippet)))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrInvalidResponse, path, err)
	}

	return nil
}
