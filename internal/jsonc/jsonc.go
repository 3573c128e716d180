// Package jsonc decodes JSON-with-comments configuration files.
package jsonc

import (
	jsonc "github.com/muhammadmuzzammil1998/jsonc"
)

// Clean strips comments from JSONC input.
func Clean(data []byte) []byte {
	if len(data) == 0 {
		return data
	}
	return jsonc.ToJSON(data)
}
