package panel

import (
	"errors"
	"net/http"
	"testing"

	"github.com/at-ishikawa/kisan/internal/assistant"
	"github.com/stretchr/testify/assert"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "idle", StateIdle.String())
	assert.Equal(t, "pending", StatePending.String())
	assert.Equal(t, "settled", StateSettled.String())
	assert.Equal(t, "State(7)", State(7).String())
}

func TestTracker(t *testing.T) {
	var tr tracker
	assert.False(t, tr.accept(0))

	first := tr.issue()
	second := tr.issue()
	assert.False(t, tr.accept(first))
	assert.True(t, tr.accept(second))
	assert.False(t, tr.accept(second), "an outcome is accepted once")

	third := tr.issue()
	tr.invalidate()
	assert.False(t, tr.accept(third))
}

func TestErrorNotification(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Notification
	}{
		{
			name: "server detail",
			err:  assistant.NewAPIError(assistant.OperationGetWeather, http.StatusNotFound, []byte(`{"detail":"City not found"}`)),
			want: Notification{Title: "Error", Description: "City not found", Variant: VariantDestructive, Duration: errorDuration},
		},
		{
			name: "no detail",
			err:  assistant.NewAPIError(assistant.OperationGetWeather, http.StatusInternalServerError, nil),
			want: Notification{Title: "Error", Description: "fallback", Variant: VariantDestructive, Duration: errorDuration},
		},
		{
			name: "transport error",
			err:  errors.New("connection refused"),
			want: Notification{Title: "Error", Description: "fallback", Variant: VariantDestructive, Duration: errorDuration},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, errorNotification(tc.err, "fallback"))
		})
	}
}

func TestValidationError_Error(t *testing.T) {
	err := &ValidationError{Notification: destructive("Empty Question", "Please enter a question")}
	assert.Equal(t, "Empty Question: Please enter a question", err.Error())
}
