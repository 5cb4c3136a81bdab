package backend

import (
	"bytes"
	"clinica-service/internal/app/config"
	"clinica-service/internal/pkg/constvars"
	"clinica-service/internal/pkg/exceptions"
	"clinica-service/internal/pkg/monitoring"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Client talks to the hosted backend's REST API. Every table client shares
// one Client so outbound throttling applies to the service as a whole.
type Client struct {
	BaseUrl    string
	ServiceKey string
	HTTPClient *http.Client
	Limiter    *rate.Limiter
	Log        *zap.Logger
	Metrics    *monitoring.MetricsCollector
}

func NewClient(internalConfig *config.InternalConfig, logger *zap.Logger, metrics *monitoring.MetricsCollector) *Client {
	backendConfig := internalConfig.Backend
	return &Client{
		BaseUrl:    strings.TrimRight(backendConfig.BaseUrl, "/") + constvars.BackendRestPath,
		ServiceKey: backendConfig.ServiceKey,
		HTTPClient: &http.Client{
			Timeout: time.Duration(backendConfig.RequestTimeoutSeconds) * time.Second,
		},
		Limiter: rate.NewLimiter(rate.Limit(backendConfig.MaxRequestsPerSecond), backendConfig.Burst),
		Log:     logger,
		Metrics: metrics,
	}
}

// Select decodes the matching rows of table into out and returns the total
// row count. The total is exact only when q asked for CountExact; otherwise
// it is -1.
func (c *Client) Select(ctx context.Context, table string, q *Query, out interface{}) (int, error) {
	var prefer []string
	if q.IsCountExact() {
		prefer = append(prefer, constvars.BackendPreferCountExact)
	}

	resp, err := c.do(ctx, constvars.MethodGet, table, q, nil, prefer)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if err := c.decode(ctx, table, resp.Body, out); err != nil {
		return 0, err
	}

	total := parseContentRangeTotal(resp.Header.Get(constvars.HeaderContentRange))
	return total, nil
}

// Insert creates one row (body is a struct or map) or many (body is a slice)
// and decodes the stored representation into out when out is not nil.
func (c *Client) Insert(ctx context.Context, table string, body interface{}, out interface{}) error {
	prefer := constvars.BackendPreferReturnMin
	if out != nil {
		prefer = constvars.BackendPreferReturnRep
	}

	resp, err := c.do(ctx, constvars.MethodPost, table, nil, body, []string{prefer})
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if out == nil {
		return nil
	}
	return c.decode(ctx, table, resp.Body, out)
}

func (c *Client) Update(ctx context.Context, table string, q *Query, body interface{}, out interface{}) error {
	prefer := constvars.BackendPreferReturnMin
	if out != nil {
		prefer = constvars.BackendPreferReturnRep
	}

	resp, err := c.do(ctx, constvars.MethodPatch, table, q, body, []string{prefer})
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if out == nil {
		return nil
	}
	return c.decode(ctx, table, resp.Body, out)
}

func (c *Client) Delete(ctx context.Context, table string, q *Query) error {
	resp, err := c.do(ctx, constvars.MethodDelete, table, q, nil, []string{constvars.BackendPreferReturnMin})
	if err != nil {
		return err
	}
	resp.Body.Close()
	return nil
}

func (c *Client) do(ctx context.Context, method, table string, q *Query, body interface{}, prefer []string) (*http.Response, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	endpoint := fmt.Sprintf("%s/%s", c.BaseUrl, table)
	if encoded := q.Encode(); encoded != "" {
		endpoint = endpoint + "?" + encoded
	}

	c.Log.Debug("backend.Client request",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingMethodKey, method),
		zap.String(constvars.LoggingTableKey, table),
		zap.String(constvars.LoggingQueryParamsKey, q.Encode()),
	)

	if err := c.Limiter.Wait(ctx); err != nil {
		c.Log.Error("backend.Client throttled",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingTableKey, table),
			zap.Error(err),
		)
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			return nil, exceptions.ErrServerDeadlineExceeded(err)
		}
		return nil, exceptions.ErrBackendThrottled(err)
	}

	var reader io.Reader
	if body != nil {
		requestJSON, err := json.Marshal(body)
		if err != nil {
			c.Log.Error("backend.Client error marshaling JSON",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingTableKey, table),
				zap.Error(err),
			)
			return nil, exceptions.ErrCannotMarshalJSON(err)
		}
		reader = bytes.NewReader(requestJSON)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		c.Log.Error("backend.Client error creating HTTP request",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrCreateHTTPRequest(err)
	}
	req.Header.Set(constvars.HeaderAPIKey, c.ServiceKey)
	req.Header.Set(constvars.HeaderAuthorization, "Bearer "+c.ServiceKey)
	req.Header.Set(constvars.HeaderAccept, constvars.MIMEApplicationJSON)
	if body != nil {
		req.Header.Set(constvars.HeaderContentType, constvars.MIMEApplicationJSON)
	}
	if len(prefer) > 0 {
		req.Header.Set(constvars.HeaderPrefer, strings.Join(prefer, ","))
	}
	if requestID != "" {
		req.Header.Set(constvars.HeaderXRequestID, requestID)
	}

	start := time.Now()
	resp, err := c.HTTPClient.Do(req)
	c.recordRequest(method, table, err == nil && resp.StatusCode < 300, start)
	if err != nil {
		c.Log.Error("backend.Client error sending HTTP request",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingTableKey, table),
			zap.Error(err),
		)
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, exceptions.ErrServerDeadlineExceeded(err)
		}
		return nil, exceptions.ErrSendHTTPRequest(err)
	}

	if resp.StatusCode < constvars.StatusOK || resp.StatusCode >= 300 {
		defer resp.Body.Close()
		return nil, c.parseError(requestID, method, table, resp)
	}
	return resp, nil
}

func (c *Client) recordRequest(method, table string, success bool, start time.Time) {
	if c.Metrics == nil {
		return
	}
	c.Metrics.RecordBackendRequest(method, table, success, time.Since(start))
}

// parseError turns a failed backend response into a CustomError whose client
// message is the backend's own "message" field. Reads always surface as 500;
// writes refused with 400 or 409 keep that status.
func (c *Client) parseError(requestID, method, table string, resp *http.Response) error {
	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		c.Log.Error("backend.Client error reading response body",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return exceptions.ErrBackendQuery(err, table, "")
	}

	message := gjson.GetBytes(bodyBytes, "message").String()
	if message == "" {
		message = gjson.GetBytes(bodyBytes, "error").String()
	}
	if message == "" {
		message = strings.TrimSpace(string(bodyBytes))
	}
	code := gjson.GetBytes(bodyBytes, "code").String()
	hint := gjson.GetBytes(bodyBytes, "hint").String()

	backendErr := fmt.Errorf("backend responded %d: %s", resp.StatusCode, message)
	c.Log.Error("backend.Client backend error",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingTableKey, table),
		zap.Int(constvars.LoggingStatusCodeKey, resp.StatusCode),
		zap.String(constvars.LoggingErrorCodeKey, code),
		zap.String(constvars.LoggingErrorMessageKey, message),
		zap.String("hint", hint),
	)
	if method != constvars.MethodGet && isRejectedWrite(resp.StatusCode) {
		return exceptions.ErrBackendRejectedWrite(backendErr, table, message, resp.StatusCode)
	}
	return exceptions.ErrBackendQuery(backendErr, table, message)
}

func (c *Client) decode(ctx context.Context, table string, body io.Reader, out interface{}) error {
	if err := json.NewDecoder(body).Decode(out); err != nil {
		requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
		c.Log.Error("backend.Client error decoding response",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingTableKey, table),
			zap.Error(err),
		)
		return exceptions.ErrBackendDecodeResponse(err, table)
	}
	return nil
}

func isRejectedWrite(statusCode int) bool {
	return statusCode == constvars.StatusBadRequest || statusCode == constvars.StatusConflict
}

// parseContentRangeTotal reads the total from headers like "0-24/3573" or
// "*/0". Unknown totals ("0-24/*") yield -1.
func parseContentRangeTotal(header string) int {
	idx := strings.LastIndex(header, "/")
	if idx < 0 {
		return -1
	}
	total, err := strconv.Atoi(header[idx+1:])
	if err != nil {
		return -1
	}
	return total
}
