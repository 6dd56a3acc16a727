package banenor

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/travigo/togtider/pkg/siri_et"
	"github.com/travigo/togtider/pkg/station"
	"github.com/travigo/togtider/pkg/util"
)

const (
	DefaultTimeout      = 10 * time.Second
	DefaultRequestorRef = "togtider"
)

// TransportError wraps any failure to retrieve the timetable document
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("failed to fetch timetable: %s", e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

type Client struct {
	Endpoint        string
	SubscriptionKey string
	RequestorRef    string

	Request station.Request

	HTTPClient *http.Client
	Now        func() time.Time
}

func NewClientFromEnvironment(request station.Request) (*Client, error) {
	env := util.GetEnvironmentVariables()

	if env["TOGTIDER_BANENOR_ENDPOINT"] == "" {
		return nil, errors.New("TOGTIDER_BANENOR_ENDPOINT must be set")
	}
	if env["TOGTIDER_BANENOR_SUBSCRIPTION_KEY"] == "" {
		return nil, errors.New("TOGTIDER_BANENOR_SUBSCRIPTION_KEY must be set")
	}

	timeout := DefaultTimeout
	if env["TOGTIDER_BANENOR_TIMEOUT"] != "" {
		parsed, err := time.ParseDuration(env["TOGTIDER_BANENOR_TIMEOUT"])
		if err != nil {
			return nil, fmt.Errorf("invalid TOGTIDER_BANENOR_TIMEOUT: %w", err)
		}
		timeout = parsed
	}

	return &Client{
		Endpoint:        env["TOGTIDER_BANENOR_ENDPOINT"],
		SubscriptionKey: env["TOGTIDER_BANENOR_SUBSCRIPTION_KEY"],
		RequestorRef:    util.GetEnvironmentVariable("TOGTIDER_BANENOR_REQUESTOR_REF", DefaultRequestorRef),
		Request:         request,
		HTTPClient:      &http.Client{Timeout: timeout},
		Now:             time.Now,
	}, nil
}

func (c *Client) buildRequestBody() ([]byte, error) {
	now := time.Now
	if c.Now != nil {
		now = c.Now
	}

	siriRequest := siri_et.NewEstimatedTimetableRequest(now(), c.RequestorRef)
	timetableRequest := &siriRequest.ServiceRequest.EstimatedTimetableRequest

	timetableRequest.PreviewInterval = c.Request.PreviewInterval
	timetableRequest.OperatorRef = c.Request.OperatorRef
	timetableRequest.StopPointRef = c.Request.StopPointRef

	if c.Request.LineRef != "" {
		timetableRequest.Lines = []siri_et.LineDirection{
			{
				LineRef:      c.Request.LineRef,
				DirectionRef: c.Request.DirectionRef,
			},
		}
	}

	return siriRequest.MarshalDocument()
}

// FetchTimetable posts an estimated timetable request and returns the raw XML response
func (c *Client) FetchTimetable(ctx context.Context) (string, error) {
	body, err := c.buildRequestBody()
	if err != nil {
		return "", fmt.Errorf("failed to build timetable request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Endpoint, bytes.NewReader(body))
	if err != nil {
		return "", &TransportError{Err: err}
	}

	req.Header.Set("Content-Type", "application/xml")
	req.Header.Set("Ocp-Apim-Subscription-Key", c.SubscriptionKey)

	httpClient := c.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: DefaultTimeout}
	}

	log.Debug().Str("endpoint", c.Endpoint).Msg("Sending estimated timetable request")

	resp, err := httpClient.Do(req)
	if err != nil {
		log.Error().Err(err).Msg("Estimated timetable request failed")
		return "", &TransportError{Err: err}
	}
	defer resp.Body.Close()

	responseBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &TransportError{Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &TransportError{Err: fmt.Errorf("unexpected status code %d", resp.StatusCode)}
	}

	response := string(responseBody)

	if !strings.HasPrefix(strings.TrimSpace(response), "<?xml") {
		log.Error().Str("response", util.TrimString(response, 100)).Msg("Invalid XML response received")
		return "", &TransportError{Err: errors.New("invalid XML response received from API")}
	}

	log.Debug().Int("status", resp.StatusCode).Int("bytes", len(responseBody)).Msg("Estimated timetable response received")

	return response, nil
}
