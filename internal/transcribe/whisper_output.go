package transcribe

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

type whisperSegment struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
}

type whisperPayload struct {
	Text     string           `json:"text"`
	Segments []whisperSegment `json:"segments"`
	Language string           `json:"language"`
}

func loadWhisperOutput(path string) (whisperPayload, error) {
	if strings.TrimSpace(path) == "" {
		return whisperPayload{}, os.ErrNotExist
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return whisperPayload{}, err
	}
	var payload whisperPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return whisperPayload{}, fmt.Errorf("parse whisper json: %w", err)
	}
	return payload, nil
}
