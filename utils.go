/* utils.go
 * Utility functions used across the application
 * Authors: Zachary Bower
 */

package main

import (
	"fmt"
	"io"
	"os"
)

// readPayload reads a payload file, or stdin when path is "-"
// Preconditions: Receives the path given on the command line and the reader used for stdin
// Postconditions: Returns the bytes read, or an error if the file cannot be read or is empty
func readPayload(path string, stdin io.Reader) ([]byte, error) {
	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("error reading payload: %w", err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("payload '%s' is empty", path)
	}
	return data, nil
}
