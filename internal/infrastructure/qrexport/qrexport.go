// Package qrexport writes a receipt's scannable code to disk. The payload is
// the transaction id as a string; the desk scanner looks the rest up.
package qrexport

import (
	"errors"
	"strings"

	qrcode "github.com/skip2/go-qrcode"
)

const defaultSize = 256 // px

func WritePNG(path, payload string, size int) error {
	if strings.TrimSpace(payload) == "" {
		return errors.New("qrexport: empty payload")
	}
	if size <= 0 {
		size = defaultSize
	}
	return qrcode.WriteFile(payload, qrcode.Medium, size, path)
}
