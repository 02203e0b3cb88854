package histarchive

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/valyala/bytebufferpool"
	"github.com/valyala/fasthttp"
)

const (
	defaultTimeout = 10 * time.Second
	playersCSVPath = "/data/%s/cleaned_players.csv"
)

type ClientConfig struct {
	BaseURL string
	Timeout time.Duration
}

// Client reads per-season player CSVs from a public archive laid out
// like github.com/vaastav/Fantasy-Premier-League raw data. Everything
// here is best effort: a missing season is a debug log, never an
// outage.
type Client struct {
	http    *fasthttp.Client
	baseURL string
	timeout time.Duration
	logger  *slog.Logger
}

func NewClient(cfg ClientConfig, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &Client{
		http: &fasthttp.Client{
			ReadTimeout:  timeout,
			WriteTimeout: timeout,
		},
		baseURL: strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"),
		timeout: timeout,
		logger:  logger,
	}
}

// SeasonPoints returns total points per player full name for one
// archived season (e.g. "2024-25").
func (c *Client) SeasonPoints(ctx context.Context, season string) (map[string]int, error) {
	if c.baseURL == "" {
		return nil, fmt.Errorf("archive base url is not configured")
	}
	season = strings.TrimSpace(season)
	if season == "" {
		return nil, fmt.Errorf("season is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	url := c.baseURL + fmt.Sprintf(playersCSVPath, season)

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(url)
	req.Header.SetMethod(fasthttp.MethodGet)

	if err := c.http.DoTimeout(req, resp, c.timeout); err != nil {
		return nil, fmt.Errorf("fetch season archive %s: %w", season, err)
	}
	if code := resp.StatusCode(); code != fasthttp.StatusOK {
		return nil, fmt.Errorf("fetch season archive %s: status=%d", season, code)
	}

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)
	if err := resp.BodyWriteTo(buf); err != nil {
		return nil, fmt.Errorf("read season archive %s: %w", season, err)
	}

	points, err := parsePlayersCSV(bytes.NewReader(buf.B))
	if err != nil {
		return nil, fmt.Errorf("parse season archive %s: %w", season, err)
	}

	c.logger.DebugContext(ctx, "season archive loaded", "season", season, "players", len(points))
	return points, nil
}

func parsePlayersCSV(r io.Reader) (map[string]int, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	firstIdx, secondIdx, pointsIdx := -1, -1, -1
	for i, col := range header {
		switch strings.TrimSpace(strings.ToLower(col)) {
		case "first_name":
			firstIdx = i
		case "second_name":
			secondIdx = i
		case "total_points":
			pointsIdx = i
		}
	}
	if firstIdx < 0 || secondIdx < 0 || pointsIdx < 0 {
		return nil, fmt.Errorf("header missing first_name/second_name/total_points")
	}

	out := make(map[string]int, 600)
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// A single bad row is not worth failing the season over.
			continue
		}
		if len(row) <= firstIdx || len(row) <= secondIdx || len(row) <= pointsIdx {
			continue
		}

		name := strings.TrimSpace(row[firstIdx] + " " + row[secondIdx])
		if name == "" {
			continue
		}
		points, err := strconv.Atoi(strings.TrimSpace(row[pointsIdx]))
		if err != nil {
			continue
		}
		out[name] = points
	}

	return out, nil
}
