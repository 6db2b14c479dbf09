package export

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/mwinters-dev/chatstate/internal"
)

// JSONLExporter exports transcripts in JSONL format (one message per line)
type JSONLExporter struct{}

// Export exports a transcript to JSONL format
func (e *JSONLExporter) Export(t *internal.Transcript, w io.Writer) error {
	enc := json.NewEncoder(w)

	for _, msg := range t.Messages {
		obj := map[string]interface{}{
			"role":    msg.Role,
			"content": msg.Content,
		}

		if !msg.Timestamp.IsZero() {
			obj["timestamp"] = msg.Timestamp.Format(time.RFC3339)
		}
		if msg.Model != "" {
			obj["model"] = msg.Model
		}

		if err := enc.Encode(obj); err != nil {
			return fmt.Errorf("failed to encode message: %w", err)
		}
	}

	return nil
}

// Extension returns the file extension for this format
func (e *JSONLExporter) Extension() string {
	return "jsonl"
}
