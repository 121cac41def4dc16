package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/at-ishikawa/kisan/internal/assistant"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pngHeader is enough of a PNG for content sniffing.
var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x02\x00\x00\x00")

func writeJSON(t *testing.T, w http.ResponseWriter, status int, body any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	require.NoError(t, json.NewEncoder(w).Encode(body))
}

func newTestClient(t *testing.T, handler func(t *testing.T, w http.ResponseWriter, r *http.Request)) *Client {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handler(t, w, r)
	}))
	t.Cleanup(server.Close)

	client := NewClient(server.URL, 0)
	t.Cleanup(func() {
		_ = client.Close()
	})
	return client
}

func TestClient_StartVoiceSession(t *testing.T) {
	tests := []struct {
		name              string
		language          string
		mockServerHandler func(t *testing.T, w http.ResponseWriter, r *http.Request)

		want            assistant.VoiceSession
		wantError       bool
		wantErrorString string
		wantDetail      string
	}{
		{
			name:     "started",
			language: "kn",
			mockServerHandler: func(t *testing.T, w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodGet, r.Method)
				assert.Equal(t, "/start_voice_assistant/kn", r.URL.Path)
				assert.NotEmpty(t, r.Header.Get("X-Request-Id"))
				writeJSON(t, w, http.StatusOK, map[string]string{"status": "🎤 Voice assistant started in kn"})
			},
			want: assistant.VoiceSession{Status: "🎤 Voice assistant started in kn"},
		},
		{
			name:     "unknown acknowledgment fields are ignored",
			language: "hi",
			mockServerHandler: func(t *testing.T, w http.ResponseWriter, r *http.Request) {
				writeJSON(t, w, http.StatusOK, map[string]any{"session_id": 42})
			},
			want: assistant.VoiceSession{},
		},
		{
			name:     "unsupported language",
			language: "fr",
			mockServerHandler: func(t *testing.T, w http.ResponseWriter, r *http.Request) {
				writeJSON(t, w, http.StatusBadRequest, map[string]string{"detail": "❌ Language not supported"})
			},
			wantError:       true,
			wantErrorString: "Language not supported",
			wantDetail:      "❌ Language not supported",
		},
		{
			name:     "server error without body",
			language: "en",
			mockServerHandler: func(t *testing.T, w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
			wantError:       true,
			wantErrorString: "Failed to start voice assistant",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, tt.mockServerHandler)

			got, gotErr := client.StartVoiceSession(context.Background(), tt.language)
			if tt.wantError {
				require.Error(t, gotErr)
				assert.Contains(t, gotErr.Error(), tt.wantErrorString)
				detail, _ := assistant.DetailOf(gotErr)
				assert.Equal(t, tt.wantDetail, detail)
				return
			}
			require.NoError(t, gotErr)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClient_AskQuestion(t *testing.T) {
	tests := []struct {
		name              string
		request           assistant.AskQuestionRequest
		mockServerHandler func(t *testing.T, w http.ResponseWriter, r *http.Request)

		want            assistant.AskQuestionResponse
		wantError       bool
		wantErrorString string
	}{
		{
			name:    "answer",
			request: assistant.AskQuestionRequest{Question: "How often should I water tomatoes?", Language: "kn"},
			mockServerHandler: func(t *testing.T, w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodPost, r.Method)
				assert.Equal(t, "/ask", r.URL.Path)
				require.NoError(t, r.ParseMultipartForm(1<<20))
				assert.Equal(t, "How often should I water tomatoes?", r.FormValue("question"))
				assert.Equal(t, "kn", r.FormValue("language"))
				writeJSON(t, w, http.StatusOK, map[string]string{"response": "Plant twice a week"})
			},
			want: assistant.AskQuestionResponse{Response: "Plant twice a week"},
		},
		{
			name:    "validation error from the backend",
			request: assistant.AskQuestionRequest{Question: "", Language: "kn"},
			mockServerHandler: func(t *testing.T, w http.ResponseWriter, r *http.Request) {
				writeJSON(t, w, http.StatusUnprocessableEntity, map[string]any{
					"detail": []map[string]any{{"loc": []string{"body", "question"}, "msg": "field required"}},
				})
			},
			wantError:       true,
			wantErrorString: "Failed to get answer",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, tt.mockServerHandler)

			got, gotErr := client.AskQuestion(context.Background(), tt.request)
			if tt.wantError {
				require.Error(t, gotErr)
				assert.Contains(t, gotErr.Error(), tt.wantErrorString)
				return
			}
			require.NoError(t, gotErr)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClient_DetectCrop(t *testing.T) {
	client := newTestClient(t, func(t *testing.T, w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/detect_crop", r.URL.Path)

		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer func() {
			_ = file.Close()
		}()
		assert.Equal(t, "field.png", header.Filename)
		assert.Equal(t, "image/png", header.Header.Get("Content-Type"))

		contents, err := io.ReadAll(file)
		require.NoError(t, err)
		assert.Equal(t, pngHeader, contents)

		writeJSON(t, w, http.StatusOK, map[string]string{"crop": "Wheat"})
	})

	got, err := client.DetectCrop(context.Background(), assistant.Image{Filename: "field.png", Data: pngHeader})
	require.NoError(t, err)
	assert.Equal(t, assistant.CropDetection{Crop: "Wheat"}, got)
}

func TestClient_GetWeather(t *testing.T) {
	tests := []struct {
		name              string
		request           assistant.WeatherRequest
		mockServerHandler func(t *testing.T, w http.ResponseWriter, r *http.Request)

		wantName        string
		wantTemperature string
		wantError       bool
		wantDetail      string
		wantErrorString string
	}{
		{
			name:    "weather for a city",
			request: assistant.WeatherRequest{City: "Mumbai", Language: "hi"},
			mockServerHandler: func(t *testing.T, w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodGet, r.Method)
				assert.Equal(t, "/weather/Mumbai", r.URL.Path)
				assert.Equal(t, "hi", r.URL.Query().Get("language"))
				writeJSON(t, w, http.StatusOK, map[string]any{
					"weather": []map[string]string{{"description": "धुंध", "icon": "50d"}},
					"main":    map[string]float64{"temp": 30.4, "feels_like": 35.2, "humidity": 70, "pressure": 1008},
					"wind":    map[string]float64{"speed": 4.1},
					"name":    "Mumbai",
				})
			},
			wantName:        "Mumbai",
			wantTemperature: "30°C",
		},
		{
			name:    "city with a space and a slash is escaped",
			request: assistant.WeatherRequest{City: "New Delhi/NCR", Language: "en"},
			mockServerHandler: func(t *testing.T, w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/weather/New%20Delhi%2FNCR", r.URL.EscapedPath())
				writeJSON(t, w, http.StatusOK, map[string]any{"name": "New Delhi", "main": map[string]float64{"temp": 21.6}})
			},
			wantName:        "New Delhi",
			wantTemperature: "22°C",
		},
		{
			name:    "city not found",
			request: assistant.WeatherRequest{City: "Atlantis", Language: "en"},
			mockServerHandler: func(t *testing.T, w http.ResponseWriter, r *http.Request) {
				writeJSON(t, w, http.StatusNotFound, map[string]string{"detail": "City not found"})
			},
			wantError:       true,
			wantDetail:      "City not found",
			wantErrorString: "City not found",
		},
		{
			name:    "html error page",
			request: assistant.WeatherRequest{City: "Pune", Language: "mr"},
			mockServerHandler: func(t *testing.T, w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "text/html")
				w.WriteHeader(http.StatusBadGateway)
				_, _ = w.Write([]byte("<html>Bad Gateway</html>"))
			},
			wantError:       true,
			wantErrorString: "Failed to get weather data",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, tt.mockServerHandler)

			got, gotErr := client.GetWeather(context.Background(), tt.request)
			if tt.wantError {
				require.Error(t, gotErr)
				assert.Contains(t, gotErr.Error(), tt.wantErrorString)
				detail, _ := assistant.DetailOf(gotErr)
				assert.Equal(t, tt.wantDetail, detail)
				return
			}
			require.NoError(t, gotErr)
			assert.Equal(t, tt.wantName, got.Name)
			assert.Equal(t, tt.wantTemperature, got.Temperature())
		})
	}
}

func TestClient_GetWeather_Retry(t *testing.T) {
	t.Run("transport error is retried when configured", func(t *testing.T) {
		var calls atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if calls.Add(1) == 1 {
				conn, _, err := w.(http.Hijacker).Hijack()
				require.NoError(t, err)
				_ = conn.Close()
				return
			}
			writeJSON(t, w, http.StatusOK, map[string]any{"name": "Mysuru"})
		}))
		defer server.Close()

		client := NewClient(server.URL, 1)
		got, err := client.GetWeather(context.Background(), assistant.WeatherRequest{City: "Mysuru", Language: "kn"})
		require.NoError(t, err)
		assert.Equal(t, "Mysuru", got.Name)
		assert.Equal(t, int32(2), calls.Load())
	})

	t.Run("backend errors are never retried", func(t *testing.T) {
		var calls atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			writeJSON(t, w, http.StatusInternalServerError, map[string]string{"detail": "❌ Weather API Error"})
		}))
		defer server.Close()

		client := NewClient(server.URL, 3)
		_, err := client.GetWeather(context.Background(), assistant.WeatherRequest{City: "Hubli", Language: "kn"})
		require.Error(t, err)
		var apiErr *assistant.APIError
		require.True(t, errors.As(err, &apiErr))
		assert.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
		assert.Equal(t, int32(1), calls.Load())
	})
}

func TestClient_NonJSONSuccess(t *testing.T) {
	tests := []struct {
		name string
		call func(client *Client) error
	}{
		{
			name: "ask",
			call: func(client *Client) error {
				_, err := client.AskQuestion(context.Background(), assistant.AskQuestionRequest{Question: "hello", Language: "en"})
				return err
			},
		},
		{
			name: "detect crop",
			call: func(client *Client) error {
				_, err := client.DetectCrop(context.Background(), assistant.Image{Filename: "leaf.png", Data: pngHeader})
				return err
			},
		},
		{
			name: "weather is not retried",
			call: func(client *Client) error {
				_, err := client.GetWeather(context.Background(), assistant.WeatherRequest{City: "Pune", Language: "en"})
				return err
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls atomic.Int32
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				calls.Add(1)
				w.Header().Set("Content-Type", "text/html")
				w.WriteHeader(http.StatusOK)
				_, _ = w.Write([]byte("<html>Welcome to the proxy</html>"))
			}))
			t.Cleanup(server.Close)
			client := NewClient(server.URL, 2)
			t.Cleanup(func() {
				_ = client.Close()
			})

			err := tt.call(client)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidResponse)
			var apiErr *assistant.APIError
			assert.False(t, errors.As(err, &apiErr))
			assert.Equal(t, int32(1), calls.Load())
		})
	}
}

func TestClient_LogsResponsePath(t *testing.T) {
	var buf bytes.Buffer
	previous := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { slog.SetDefault(previous) })

	client := newTestClient(t, func(t *testing.T, w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusOK, map[string]string{"status": "started"})
	})
	_, err := client.StartVoiceSession(context.Background(), "ta")
	require.NoError(t, err)

	logs := buf.String()
	assert.Contains(t, logs, "msg=\"kisan api response\"")
	assert.Contains(t, logs, "operation=")
	assert.Contains(t, logs, "/start_voice_assistant/ta")
	assert.Contains(t, logs, "status=200")
}

func TestClient_NetworkError(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	client := NewClient(url, 0)
	_, err := client.AskQuestion(context.Background(), assistant.AskQuestionRequest{Question: "hello", Language: "en"})
	require.Error(t, err)

	var apiErr *assistant.APIError
	assert.False(t, errors.As(err, &apiErr))
}

func TestIsRetryableError(t *testing.T) {
	assert.False(t, isRetryableError(nil))
	assert.False(t, isRetryableError(assistant.NewAPIError(assistant.OperationGetWeather, 503, nil)))
	assert.False(t, isRetryableError(context.Canceled))
	assert.False(t, isRetryableError(fmt.Errorf("httpClient.Get > %w: %w", ErrInvalidResponse, errors.New("invalid character '<'"))))
	assert.True(t, isRetryableError(errors.New("dial tcp 127.0.0.1:8000: connect: connection refused")))
}
