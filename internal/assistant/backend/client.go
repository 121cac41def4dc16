package backend

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/at-ishikawa/kisan/internal/assistant"
	"github.com/avast/retry-go"
	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"resty.dev/v3"
)

const (
	// DefaultBaseURL is where the backend listens during development.
	DefaultBaseURL = "http://127.0.0.1:8000"

	requestIDHeader = "X-Request-Id"
	jsonContentType = "application/json"
	retryDelay      = 200 * time.Millisecond
)

// ErrInvalidResponse is returned when a successful response body is not the expected JSON.
var ErrInvalidResponse = errors.New("invalid response body")

// Client talks to the Kisan AI backend over HTTP.
type Client struct {
	httpClient       *resty.Client
	maxRetryAttempts uint
}

var _ assistant.Client = (*Client)(nil)

// NewClient creates a client for baseURL. Only weather lookups are retried,
// and only on transport errors, up to maxRetryAttempts times.
func NewClient(baseURL string, maxRetryAttempts uint) *Client {
	client := resty.New()
	client.SetBaseURL(baseURL)
	client.SetHeader("Accept", jsonContentType)

	return &Client{
		httpClient:       client,
		maxRetryAttempts: maxRetryAttempts,
	}
}

func (client *Client) Close() error {
	return client.httpClient.Close()
}

func (client *Client) newRequest(ctx context.Context, op assistant.Operation) *resty.Request {
	requestID := uuid.NewString()
	slog.Default().Debug("kisan api request",
		"operation", op,
		"request_id", requestID,
	)
	return client.httpClient.R().
		SetContext(ctx).
		SetHeader(requestIDHeader, requestID)
}

// requestError wraps err from a request. A failure to decode a successful
// response is reported as ErrInvalidResponse.
func requestError(callee string, response *resty.Response, err error) error {
	if response != nil && response.RawResponse != nil && response.IsSuccess() {
		return fmt.Errorf("%s > %w: %w", callee, ErrInvalidResponse, err)
	}
	return fmt.Errorf("%s > %w", callee, err)
}

// checkResponse converts a non-success response into an *assistant.APIError.
func checkResponse(op assistant.Operation, response *resty.Response) error {
	slog.Default().Debug("kisan api response",
		"operation", op,
		"request_id", response.Request.Header.Get(requestIDHeader),
		"path", response.Request.URL,
		"status", response.StatusCode(),
	)
	if response.IsSuccess() {
		return nil
	}
	return assistant.NewAPIError(op, response.StatusCode(), []byte(response.String()))
}

func (client *Client) StartVoiceSession(ctx context.Context, language string) (assistant.VoiceSession, error) {
	op := assistant.OperationStartVoiceSession
	response, err := client.newRequest(ctx, op).
		SetPathParam("language", language).
		SetResult(&assistant.VoiceSession{}).
		Get("/start_voice_assistant/{language}")
	if err != nil {
		return assistant.VoiceSession{}, fmt.Errorf("httpClient.Get > %w", err)
	}
	if err := checkResponse(op, response); err != nil {
		return assistant.VoiceSession{}, err
	}

	result, ok := response.Result().(*assistant.VoiceSession)
	if !ok || result == nil {
		// The acknowledgment is opaque; a body we cannot read still means the session started.
		return assistant.VoiceSession{}, nil
	}
	return *result, nil
}

func (client *Client) AskQuestion(ctx context.Context, params assistant.AskQuestionRequest) (assistant.AskQuestionResponse, error) {
	op := assistant.OperationAskQuestion
	response, err := client.newRequest(ctx, op).
		SetMultipartFormData(map[string]string{
			"question": params.Question,
			"language": params.Language,
		}).
		SetResult(&assistant.AskQuestionResponse{}).
		SetForceResponseContentType(jsonContentType).
		Post("/ask")
	if err != nil {
		return assistant.AskQuestionResponse{}, requestError("httpClient.Post", response, err)
	}
	if err := checkResponse(op, response); err != nil {
		return assistant.AskQuestionResponse{}, err
	}

	result, ok := response.Result().(*assistant.AskQuestionResponse)
	if !ok || result == nil {
		return assistant.AskQuestionResponse{}, fmt.Errorf("empty response body: %s", response.String())
	}
	return *result, nil
}

func (client *Client) DetectCrop(ctx context.Context, image assistant.Image) (assistant.CropDetection, error) {
	op := assistant.OperationDetectCrop
	contentType := image.ContentType
	if contentType == "" {
		contentType = mimetype.Detect(image.Data).String()
	}

	response, err := client.newRequest(ctx, op).
		SetMultipartField("file", image.Filename, contentType, bytes.NewReader(image.Data)).
		SetResult(&assistant.CropDetection{}).
		SetForceResponseContentType(jsonContentType).
		Post("/detect_crop")
	if err != nil {
		return assistant.CropDetection{}, requestError("httpClient.Post", response, err)
	}
	if err := checkResponse(op, response); err != nil {
		return assistant.CropDetection{}, err
	}

	result, ok := response.Result().(*assistant.CropDetection)
	if !ok || result == nil {
		return assistant.CropDetection{}, fmt.Errorf("empty response body: %s", response.String())
	}
	return *result, nil
}

// GetWeather fetches the weather for a city. The city is sent as an escaped path segment.
func (client *Client) GetWeather(ctx context.Context, params assistant.WeatherRequest) (assistant.Weather, error) {
	var result assistant.Weather
	attempt := 0
	if err := retry.Do(
		func() error {
			if attempt > 0 {
				slog.Default().Info("Retrying weather request",
					"attempt", attempt,
					"city", params.City)
			}
			attempt++

			weather, err := client.getWeather(ctx, params)
			if err != nil {
				return err
			}
			result = weather
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(client.maxRetryAttempts+1),
		retry.RetryIf(isRetryableError),
		retry.LastErrorOnly(true),
		retry.Delay(retryDelay),
		retry.DelayType(retry.BackOffDelay),
	); err != nil {
		return assistant.Weather{}, err
	}
	return result, nil
}

func (client *Client) getWeather(ctx context.Context, params assistant.WeatherRequest) (assistant.Weather, error) {
	op := assistant.OperationGetWeather
	response, err := client.newRequest(ctx, op).
		SetPathParam("city", params.City).
		SetQueryParam("language", params.Language).
		SetResult(&assistant.Weather{}).
		SetForceResponseContentType(jsonContentType).
		Get("/weather/{city}")
	if err != nil {
		return assistant.Weather{}, requestError("httpClient.Get", response, err)
	}
	if err := checkResponse(op, response); err != nil {
		return assistant.Weather{}, err
	}

	result, ok := response.Result().(*assistant.Weather)
	if !ok || result == nil {
		return assistant.Weather{}, fmt.Errorf("empty response body: %s", response.String())
	}
	return *result, nil
}

// isRetryableError reports whether err is a transport failure worth retrying.
// Backend responses and cancellations are final.
func isRetryableError(err error) bool {
	if err == nil {
		return false
	}
	var apiErr *assistant.APIError
	if errors.As(err, &apiErr) {
		return false
	}
	if errors.Is(err, ErrInvalidResponse) {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	return true
}
