package controllers

import (
	"fmt"
	"io"
)

// readAllLimited reads the reader fully, failing once the payload exceeds the
// byte cap.
func readAllLimited(r io.Reader, max int64) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, max+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > max {
		return nil, fmt.Errorf("payload exceeds %d bytes", max)
	}
	return data, nil
}
