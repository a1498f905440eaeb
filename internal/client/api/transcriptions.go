package api

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/url"
	"strconv"

	"github.com/Stay03/transcribeThis/internal/client/models"
)

// TranscriptionPage is one page of the transcription history.
type TranscriptionPage struct {
	Transcriptions []models.Transcription `json:"transcriptions"`
	Pagination     *models.Pagination     `json:"pagination"`
}

// Transcribe uploads an audio stream for transcription. This is the single
// multipart call in the API; prompt is optional steering text.
func (c *Client) Transcribe(ctx context.Context, filename string, audio io.Reader, prompt string) (*models.Transcription, error) {
	var out struct {
		Transcription models.Transcription `json:"transcription"`
	}
	err := c.doMultipart(ctx, "/transcribe", func(mw *multipart.Writer) error {
		fw, err := mw.CreateFormFile("audio_file", filename)
		if err != nil {
			return err
		}
		if _, err := io.Copy(fw, audio); err != nil {
			return err
		}
		if prompt != "" {
			if err := mw.WriteField("prompt", prompt); err != nil {
				return err
			}
		}
		return nil
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out.Transcription, nil
}

func (c *Client) Transcriptions(ctx context.Context, page, perPage int) (*TranscriptionPage, error) {
	query := url.Values{
		"page":     {strconv.Itoa(page)},
		"per_page": {strconv.Itoa(perPage)},
	}
	var out TranscriptionPage
	if err := c.get(ctx, "/transcriptions", query, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Transcription(ctx context.Context, id int64) (*models.Transcription, error) {
	var out struct {
		Transcription models.Transcription `json:"transcription"`
	}
	if err := c.get(ctx, fmt.Sprintf("/transcriptions/%d", id), nil, &out); err != nil {
		return nil, err
	}
	return &out.Transcription, nil
}

func (c *Client) DeleteTranscription(ctx context.Context, id int64) error {
	return c.delete(ctx, fmt.Sprintf("/transcriptions/%d", id))
}
