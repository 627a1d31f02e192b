package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// Metadata is what the probe step extracts from the source file.
type Metadata struct {
	DurationSeconds float64 `json:"duration_seconds"`
	Width           int     `json:"width"`
	Height          int     `json:"height"`
	BitrateBps      int64   `json:"bitrate_bps"`
	Format          string  `json:"format"`
}

func (m Metadata) Value() (driver.Value, error) {
	b, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("marshal Metadata: %w", err)
	}
	return b, nil
}
func (m *Metadata) Scan(src interface{}) error {
	if src == nil {
		*m = Metadata{}
		return nil
	}
	data, ok := src.([]byte)
	if !ok {
		return fmt.Errorf("Metadata.Scan: expected []byte, got %T", src)
	}
	if err := json.Unmarshal(data, m); err != nil {
		return fmt.Errorf("unmarshal Metadata: %w", err)
	}
	return nil
}

// VideoURLs maps a quality name ("720p") to the stored rendition URL.
type VideoURLs map[string]string

func (v VideoURLs) Value() (driver.Value, error) {
	if v == nil {
		return nil, nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("marshal VideoURLs: %w", err)
	}
	return b, nil
}
func (v *VideoURLs) Scan(src interface{}) error {
	if src == nil {
		*v = nil
		return nil
	}
	data, ok := src.([]byte)
	if !ok {
		return fmt.Errorf("VideoURLs.Scan: expected []byte, got %T", src)
	}
	return json.Unmarshal(data, v)
}

// QualityProfile is one fixed rendition target.
type QualityProfile struct {
	Name       string
	Width      int
	Height     int
	BitrateKbs int
}

// BitrateArg renders the bitrate the way ffmpeg expects it, e.g. "2500k".
func (q QualityProfile) BitrateArg() string {
	return fmt.Sprintf("%dk", q.BitrateKbs)
}
