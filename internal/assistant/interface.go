package assistant

import (
	"context"
)

//go:generate mockgen -source=interface.go -destination=../mocks/assistant/mock_client.go -package=mock_assistant

// Client defines the operations the Kisan AI backend offers.
type Client interface {
	StartVoiceSession(ctx context.Context, language string) (VoiceSession, error)
	AskQuestion(ctx context.Context, params AskQuestionRequest) (AskQuestionResponse, error)
	DetectCrop(ctx context.Context, image Image) (CropDetection, error)
	GetWeather(ctx context.Context, params WeatherRequest) (Weather, error)
}

// VoiceSession is the acknowledgment of a started voice session.
// The backend runs the session on its own; only Status is surfaced.
type VoiceSession struct {
	Status string `json:"status"`
}

type AskQuestionRequest struct {
	Question string
	Language string
}

type AskQuestionResponse struct {
	Response string `json:"response"`
}

// Image is an image file selected for crop detection.
type Image struct {
	Filename    string
	ContentType string
	Data        []byte
}

type CropDetection struct {
	Crop string `json:"crop"`
}

type WeatherRequest struct {
	City     string
	Language string
}
