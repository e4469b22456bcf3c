package util

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	ffmpeg "github.com/u2takey/ffmpeg-go"
)

// AudioInfo holds metadata probed from an uploaded question audio file.
type AudioInfo struct {
	Duration float64 `json:"duration"` // seconds
	Format   string  `json:"format"`
	Size     int64   `json:"size"`
}

// GetAudioInfo probes an audio file on disk. Used to reject empty or truncated
// uploads before they are attached to a question.
func GetAudioInfo(path string) (*AudioInfo, error) {
	fileInfo, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("audio file missing: %v", err)
	}

	jsonOutput, err := ffmpeg.Probe(path)
	if err != nil {
		return nil, fmt.Errorf("probe audio: %v", err)
	}

	var result struct {
		Streams []struct {
			CodecType string `json:"codec_type"`
		} `json:"streams"`
		Format struct {
			Duration string `json:"duration"`
			Format   string `json:"format_name"`
		} `json:"format"`
	}
	if err := json.Unmarshal([]byte(jsonOutput), &result); err != nil {
		return nil, fmt.Errorf("parse probe output: %v", err)
	}

	hasAudio := false
	for _, s := range result.Streams {
		if s.CodecType == "audio" {
			hasAudio = true
			break
		}
	}
	if !hasAudio {
		return nil, fmt.Errorf("file contains no audio stream")
	}

	duration, _ := strconv.ParseFloat(result.Format.Duration, 64)
	if duration <= 0 {
		return nil, fmt.Errorf("audio has zero duration")
	}

	return &AudioInfo{
		Duration: duration,
		Format:   result.Format.Format,
		Size:     fileInfo.Size(),
	}, nil
}

// GenerateRandomString returns n random bytes hex-encoded (2n characters).
func GenerateRandomString(n int) string {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return ""
	}
	return hex.EncodeToString(b)
}
