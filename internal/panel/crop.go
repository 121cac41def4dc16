package panel

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/at-ishikawa/kisan/internal/assistant"
)

// Crop is the crop detection panel. It has no language of its own.
type Crop struct {
	base

	client    assistant.Client
	image     *assistant.Image
	detection string
}

func NewCrop(client assistant.Client) *Crop {
	return &Crop{client: client}
}

// SelectImage replaces the selected image. Any displayed detection is reset
// and a detection still running for the previous image is discarded.
func (p *Crop) SelectImage(filename string, data []byte) error {
	p.resetSelection()

	if !isValid(imageForm{Data: data}) {
		p.image = nil
		return p.reject(destructive("No Image Selected", "Please select an image first"))
	}
	contentType, ok := isImage(data)
	if !ok {
		p.image = nil
		return p.reject(destructive("Unsupported Image", "Supported formats: JPG, PNG"))
	}
	p.image = &assistant.Image{Filename: filename, ContentType: contentType, Data: data}
	return nil
}

// SelectFile reads the image at path and selects it. A file that cannot be
// read clears the selection like an unsupported one.
func (p *Crop) SelectFile(path string) error {
	if strings.TrimSpace(path) == "" {
		return p.SelectImage("", nil)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		p.resetSelection()
		p.image = nil
		filename := filepath.Base(path)
		return errors.Join(
			p.reject(destructive("Unreadable Image", fmt.Sprintf("Could not read %s", filename))),
			fmt.Errorf("os.ReadFile(%s) > %w", path, err),
		)
	}
	return p.SelectImage(filepath.Base(path), data)
}

func (p *Crop) resetSelection() {
	p.detection = ""
	p.DismissNotification()
	if p.requests.inflight {
		p.requests.invalidate()
	}
}

// Image returns the selected image, if any.
func (p *Crop) Image() (assistant.Image, bool) {
	if p.image == nil {
		return assistant.Image{}, false
	}
	return *p.image, true
}

func (p *Crop) Detection() string {
	return p.detection
}

func (p *Crop) State() State {
	return p.state(p.detection != "")
}

func (p *Crop) CanSubmit() bool {
	return !p.Pending() && p.image != nil
}

func (p *Crop) Begin() (Request[assistant.CropDetection], error) {
	if p.image == nil {
		return Request[assistant.CropDetection]{}, p.reject(destructive("No Image Selected", "Please select an image first"))
	}

	image := *p.image
	token := p.begin()
	return Request[assistant.CropDetection]{
		Token: token,
		call: func(ctx context.Context) (assistant.CropDetection, error) {
			return p.client.DetectCrop(ctx, image)
		},
	}, nil
}

func (p *Crop) Complete(outcome Outcome[assistant.CropDetection]) bool {
	if !p.requests.accept(outcome.Token) {
		return false
	}
	if outcome.Err != nil {
		p.notify(errorNotification(outcome.Err, "Failed to detect crop. Please try again."))
		return true
	}
	p.detection = outcome.Value.Crop
	return true
}

func (p *Crop) Submit(ctx context.Context) error {
	req, err := p.Begin()
	if err != nil {
		return err
	}
	return submit(ctx, req, p.Complete)
}
