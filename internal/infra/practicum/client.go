package practicum

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// UpstreamStatusError is returned when the homework API answers with anything but 200 OK.
type UpstreamStatusError struct {
	StatusCode int
}

func (e *UpstreamStatusError) Error() string {
	return fmt.Sprintf("unexpected API response status: %d %s", e.StatusCode, http.StatusText(e.StatusCode))
}

// Client queries the homework statuses endpoint on behalf of one user.
type Client struct {
	endpoint   string
	token      string
	httpClient *http.Client
	logger     *logrus.Entry
	now        func() time.Time
}

// NewClient builds a client. A zero timeout leaves requests unbounded.
func NewClient(endpoint, token string, timeout time.Duration, logger *logrus.Entry) *Client {
	return &Client{
		endpoint: endpoint,
		token:    token,
		httpClient: &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
			Timeout:   timeout,
		},
		logger: logger,
		now:    time.Now,
	}
}

// Fetch returns the decoded JSON body for homeworks changed since cursor.
// A zero cursor means "now".
func (c *Client) Fetch(ctx context.Context, cursor int64) (any, error) {
	if cursor == 0 {
		cursor = c.now().Unix()
	}

	u, err := url.Parse(c.endpoint)
	if err != nil {
		return nil, fmt.Errorf("invalid endpoint %q: %w", c.endpoint, err)
	}
	q := u.Query()
	q.Set("from_date", strconv.FormatInt(cursor, 10))
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Set("Authorization", "OAuth "+c.token)

	logCtx := c.logger.WithField("from_date", cursor)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			logCtx.WithError(err).Debug("Homework API request cancelled")
		} else {
			logCtx.WithError(err).Error("Homework API request failed")
		}
		return nil, fmt.Errorf("error calling homework API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		statusErr := &UpstreamStatusError{StatusCode: resp.StatusCode}
		logCtx.WithField("status_code", resp.StatusCode).Error(statusErr.Error())
		return nil, statusErr
	}

	var body any
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		logCtx.WithError(err).Error("Homework API returned invalid JSON")
		return nil, fmt.Errorf("invalid response: %w", err)
	}
	return body, nil
}
