package storage

import (
	"encoding/json"
	"io"
	"os"
)

type ExportData struct {
	RenderMetadata
	Lines   int       `json:"lines"`
	Text    string    `json:"text"`
	Profile []float64 `json:"profile,omitempty"`
}

func ExportJSON(path string, meta RenderMetadata, text string, profile []float64) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return WriteJSON(file, meta, text, profile)
}

func WriteJSON(w io.Writer, meta RenderMetadata, text string, profile []float64) error {
	data := ExportData{
		RenderMetadata: meta,
		Lines:          meta.Height,
		Text:           text,
		Profile:        profile,
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}
