// Package userapi is the boundary to the remote users API. It fetches a
// user, maps the remote shape onto the local entity and dispatches it.
package userapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"hellod/internal/app"
	"hellod/internal/store"
	"hellod/pkg/types"
)

// maxResponseBytes caps how much of a response body is decoded.
const maxResponseBytes = 1 << 20

// Config configures a Client. Zero durations disable the matching timeout.
type Config struct {
	BaseURL        string
	Timeout        time.Duration
	ConnectTimeout time.Duration
	// HTTPClient overrides the client built from the timeouts above.
	HTTPClient *http.Client
	Logger     zerolog.Logger
}

// Client fetches users and dispatches them into a store.
type Client struct {
	baseURL    string
	timeout    time.Duration
	httpClient *http.Client
	dispatcher store.Dispatcher
	log        zerolog.Logger
}

// New constructs a Client that dispatches through d.
func New(cfg Config, d store.Dispatcher) *Client {
	cli := cfg.HTTPClient
	if cli == nil {
		connect := cfg.ConnectTimeout
		if connect <= 0 {
			connect = 10 * time.Second
		}
		tr := &http.Transport{
			Proxy: http.ProxyFromEnvironment,
			DialContext: (&net.Dialer{
				Timeout:   connect,
				KeepAlive: 30 * time.Second,
			}).DialContext,
			MaxIdleConns:          16,
			IdleConnTimeout:       90 * time.Second,
			TLSHandshakeTimeout:   10 * time.Second,
			ExpectContinueTimeout: 1 * time.Second,
		}
		// Deadlines come from the request context, see FetchUser.
		cli = &http.Client{Transport: tr}
	}
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		timeout:    cfg.Timeout,
		httpClient: cli,
		dispatcher: d,
		log:        cfg.Logger,
	}
}

// FetchUser issues one GET /users/{id}, maps the response and dispatches a
// SetUser carrying the mapped user. On any failure nothing is dispatched and
// the error is returned. If ctx is done by the time the response is decoded,
// the dispatch is skipped and ctx.Err() is returned. FetchUser never retries.
func (c *Client) FetchUser(ctx context.Context, id int) (types.User, error) {
	start := time.Now()
	defer func() { fetchDuration.Observe(time.Since(start).Seconds()) }()

	if id <= 0 {
		fetchTotal.WithLabelValues(outcomeInvalid).Inc()
		return types.User{}, ErrInvalidUserID(id)
	}

	remote, err := c.get(ctx, id)
	if err != nil {
		c.log.Info().Int("user_id", id).Dur("dur", time.Since(start)).Err(err).Msg("fetch user failed")
		return types.User{}, err
	}
	user := ToUser(remote)

	if err := ctx.Err(); err != nil {
		fetchTotal.WithLabelValues(outcomeStale).Inc()
		c.log.Debug().Int("user_id", id).Msg("dropping stale user response")
		return types.User{}, err
	}
	if err := c.dispatcher.DispatchContext(ctx, app.SetUser{User: user}); err != nil {
		if ctx.Err() != nil {
			fetchTotal.WithLabelValues(outcomeStale).Inc()
		} else {
			fetchTotal.WithLabelValues(outcomeDispatch).Inc()
		}
		return types.User{}, fmt.Errorf("dispatch %s: %w", app.TypeSetUser, err)
	}
	fetchTotal.WithLabelValues(outcomeOK).Inc()
	c.log.Debug().Int("user_id", id).Dur("dur", time.Since(start)).Msg("user loaded")
	return user, nil
}

func (c *Client) get(ctx context.Context, id int) (types.RemoteUser, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}
	url := c.baseURL + "/users/" + strconv.Itoa(id)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		fetchTotal.WithLabelValues(outcomeTransport).Inc()
		return types.RemoteUser{}, fmt.Errorf("users api: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if IsTimeout(err) {
			fetchTotal.WithLabelValues(outcomeTimeout).Inc()
		} else {
			fetchTotal.WithLabelValues(outcomeTransport).Inc()
		}
		return types.RemoteUser{}, fmt.Errorf("users api: get %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		fetchTotal.WithLabelValues(outcomeStatus).Inc()
		return types.RemoteUser{}, &StatusError{Code: resp.StatusCode, URL: url}
	}

	var body types.GetUserResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(&body); err != nil {
		if IsTimeout(err) {
			fetchTotal.WithLabelValues(outcomeTimeout).Inc()
		} else {
			fetchTotal.WithLabelValues(outcomeDecode).Inc()
		}
		return types.RemoteUser{}, fmt.Errorf("users api: decode %s: %w", url, err)
	}
	if body.Data.ID <= 0 {
		fetchTotal.WithLabelValues(outcomeDecode).Inc()
		return types.RemoteUser{}, fmt.Errorf("users api: decode %s: %w", url, errMissingData)
	}
	return body.Data, nil
}

var errMissingData = errors.New("response has no user data")
