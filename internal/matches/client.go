package matches

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"scorelink/internal"
	"scorelink/internal/config"
	"scorelink/internal/util"
)

// Client talks to the stats-feed vendor API that serves the
// authoritative match list. The match endpoint is scroll-paginated.
type Client struct {
	cfg        config.Config
	httpClient *http.Client
	limiter    *RateLimiter
}

type apiResponse struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Errors  json.RawMessage `json:"errors"`
	Data    json.RawMessage `json:"data"`
}

type scrollPayload struct {
	Matches  []map[string]any `json:"matches"`
	ScrollID *string          `json:"scrollId"`
	Total    *int             `json:"total"`
}

func NewClient(cfg config.Config) *Client {
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: time.Duration(cfg.FeedTimeoutMs) * time.Millisecond},
		limiter:    NewRateLimiter(cfg.FeedRateLimitRPS),
	}
}

func (c *Client) GetMatchesScrollAll(ctx context.Context) ([]internal.MatchRecord, error) {
	return c.getMatchesScroll(ctx, map[string]string{})
}

func (c *Client) GetMatchesIncremental(ctx context.Context, mode string) ([]internal.MatchRecord, error) {
	params := map[string]string{}
	switch mode {
	case "day":
		params["day"] = strconv.Itoa(c.cfg.IncrementalLookbackDay)
	case "hour":
		params["hour"] = strconv.Itoa(c.cfg.IncrementalLookbackHrs)
	default:
		return nil, fmt.Errorf("unsupported incremental mode: %s", mode)
	}
	return c.getMatchesScroll(ctx, params)
}

func (c *Client) GetSeriesList(ctx context.Context) (map[string]any, error) {
	body, err := c.fetchJSON(ctx, "series/list", map[string]string{})
	if err != nil {
		return nil, err
	}
	var out map[string]any
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) getMatchesScroll(ctx context.Context, params map[string]string) ([]internal.MatchRecord, error) {
	all := make([]internal.MatchRecord, 0)
	seen := map[string]struct{}{}
	var scrollID string

	for {
		query := map[string]string{}
		for k, v := range params {
			query[k] = v
		}
		if scrollID != "" {
			query["scrollId"] = scrollID
		}

		body, err := c.fetchJSON(ctx, "match/scroll", query)
		if err != nil {
			return nil, err
		}

		var payload scrollPayload
		if err := json.Unmarshal(body, &payload); err != nil {
			return nil, err
		}

		for _, raw := range payload.Matches {
			record, err := toMatchRecord(raw)
			if err != nil {
				continue
			}
			all = append(all, record)
		}

		if payload.ScrollID == nil || *payload.ScrollID == "" || len(payload.Matches) == 0 {
			break
		}
		if _, ok := seen[*payload.ScrollID]; ok {
			break
		}
		seen[*payload.ScrollID] = struct{}{}
		scrollID = *payload.ScrollID
	}

	return all, nil
}

func (c *Client) fetchJSON(ctx context.Context, endpoint string, params map[string]string) ([]byte, error) {
	if strings.TrimSpace(c.cfg.FeedAPIToken) == "" {
		return nil, errors.New("missing FEED_API_TOKEN")
	}

	baseURL := strings.TrimRight(c.cfg.FeedAPIBaseURL, "/") + "/"
	u, err := url.Parse(baseURL + endpoint)
	if err != nil {
		return nil, err
	}

	q := u.Query()
	for k, v := range params {
		if strings.TrimSpace(v) != "" {
			q.Set(k, v)
		}
	}
	u.RawQuery = q.Encode()

	var lastErr error
	for attempt := 1; attempt <= 5; attempt++ {
		c.limiter.WaitTurn()

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Authorization", "Bearer "+c.cfg.FeedAPIToken)
		req.Header.Set("Accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = err
			continue
		}

		body, readErr := io.ReadAll(resp.Body)
		_ = resp.Body.Close()
		if readErr != nil {
			lastErr = readErr
			continue
		}

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			if isRetryableStatus(resp.StatusCode) && attempt < 5 {
				backoff := time.Duration(250*(1<<(attempt-1))+rand.Intn(100)) * time.Millisecond
				time.Sleep(backoff)
				lastErr = fmt.Errorf("feed status %d", resp.StatusCode)
				continue
			}
			return nil, fmt.Errorf("feed api error: status=%d body=%s", resp.StatusCode, string(body))
		}

		var apiResp apiResponse
		if err := json.Unmarshal(body, &apiResp); err != nil {
			return nil, err
		}
		if !apiResp.Success {
			return nil, fmt.Errorf("feed api unsuccessful: %s", string(apiResp.Errors))
		}
		return apiResp.Data, nil
	}

	if lastErr == nil {
		lastErr = errors.New("feed request failed")
	}
	return nil, lastErr
}

func isRetryableStatus(status int) bool {
	switch status {
	case 429, 500, 502, 503, 504:
		return true
	default:
		return false
	}
}

func toMatchRecord(raw map[string]any) (internal.MatchRecord, error) {
	matchID := strings.TrimSpace(stringOf(raw["scorecard"]))
	if matchID == "" {
		return internal.MatchRecord{}, errors.New("empty scorecard id")
	}
	team1 := strings.TrimSpace(stringOf(raw["team1"]))
	team2 := strings.TrimSpace(stringOf(raw["team2"]))
	if team1 == "" || team2 == "" {
		return internal.MatchRecord{}, errors.New("missing team name")
	}

	rawJSON, _ := json.Marshal(raw)
	record := internal.MatchRecord{
		MatchID: matchID,
		Team1:   team1,
		Team2:   team2,
		RawJSON: string(rawJSON),
	}
	record.Winner = toStringPtr(raw["winner"])
	record.Margin = toStringPtr(raw["margin"])
	record.Ground = toStringPtr(raw["ground"])
	record.MatchDate = toStringPtr(raw["matchDate"])

	return record, nil
}

func stringOf(v any) string {
	s, _ := v.(string)
	return s
}

func toStringPtr(v any) *string {
	s, ok := v.(string)
	if !ok {
		return nil
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return util.StringPtr(s)
}
