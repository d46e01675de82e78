package command

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
)

const SaveBinaryFileName = "save_binary_file"

// WriteRequest is the payload of save_binary_file.
type WriteRequest struct {
	Path  string `json:"path"`
	Bytes Bytes  `json:"bytes"`
}

// WriteFile overwrites path with exactly data, creating the file if needed.
// The path is used as given.
func WriteFile(path string, data []byte) error {
	return os.WriteFile(path, data, 0o644)
}

// FileWriter is the save_binary_file handler. It holds no state, so one value
// can serve concurrent invocations.
type FileWriter struct{}

func NewFileWriter() FileWriter {
	return FileWriter{}
}

func (FileWriter) Handle(_ context.Context, payload json.RawMessage) (json.RawMessage, error) {
	var req WriteRequest
	if err := json.Unmarshal(payload, &req); err != nil {
		return nil, fmt.Errorf("invalid %s payload: %w", SaveBinaryFileName, err)
	}
	if err := WriteFile(req.Path, req.Bytes); err != nil {
		return nil, err
	}
	return nil, nil
}

// SaveBinaryFile is the frontend-side call of save_binary_file.
func SaveBinaryFile(ctx context.Context, inv Invoker, path string, data []byte) error {
	payload, err := json.Marshal(WriteRequest{Path: path, Bytes: data})
	if err != nil {
		return fmt.Errorf("encode %s payload: %w", SaveBinaryFileName, err)
	}
	return inv.Invoke(ctx, SaveBinaryFileName, payload).Err()
}
