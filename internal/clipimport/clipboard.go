package clipimport

import (
	"sync"

	"golang.design/x/clipboard"
)

// Clipboard reads PNG image data from a clipboard.
type Clipboard interface {
	ReadImage() ([]byte, error)
}

// SystemClipboard reads the operating system clipboard.
type SystemClipboard struct {
	once    sync.Once
	initErr error
}

// NewSystemClipboard creates a clipboard reader. The platform clipboard is
// initialized on first use.
func NewSystemClipboard() *SystemClipboard {
	return &SystemClipboard{}
}

// ReadImage returns the clipboard image encoded as PNG, or nil when the
// clipboard holds no image.
func (c *SystemClipboard) ReadImage() ([]byte, error) {
	c.once.Do(func() {
		c.initErr = clipboard.Init()
	})
	if c.initErr != nil {
		return nil, c.initErr
	}
	return clipboard.Read(clipboard.FmtImage), nil
}
