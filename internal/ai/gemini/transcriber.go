package gemini

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"google.golang.org/genai"
)

const voiceMIMEType = "audio/ogg"

// Transcribe converts a voice recording into text. The audio is staged
// through a temporary file for the upload; the file is removed on every
// exit path.
func (c *Client) Transcribe(ctx context.Context, audio []byte) (string, error) {
	if c == nil || c.client == nil {
		return "", errors.New("gemini client is not initialized")
	}
	if len(audio) == 0 {
		return "", errors.New("audio payload is empty")
	}

	tmp, err := os.CreateTemp("", "voice_*.ogg")
	if err != nil {
		return "", fmt.Errorf("create temp audio file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := tmp.Write(audio); err != nil {
		tmp.Close()
		return "", fmt.Errorf("write temp audio file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("close temp audio file: %w", err)
	}

	file, err := c.client.Files.UploadFromPath(ctx, tmpPath, &genai.UploadFileConfig{
		MIMEType: voiceMIMEType,
	})
	if err != nil {
		return "", fmt.Errorf("upload audio: %w", err)
	}

	parts := []*genai.Part{
		genai.NewPartFromURI(file.URI, file.MIMEType),
		genai.NewPartFromText("Transcribe this voice message verbatim. Return only the transcribed text."),
	}
	contents := []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}

	resp, err := c.client.Models.GenerateContent(ctx, c.modelName, contents, nil)
	if err != nil {
		return "", fmt.Errorf("transcribe audio: %w", err)
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", errors.New("empty transcription result")
	}
	return text, nil
}
