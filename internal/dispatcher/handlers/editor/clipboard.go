package editor

import "github.com/atotto/clipboard"

// SystemClipboard writes to the operating system clipboard.
type SystemClipboard struct{}

// WriteAll copies text to the clipboard.
func (SystemClipboard) WriteAll(text string) error {
	return clipboard.WriteAll(text)
}

// Available reports whether a clipboard utility was found. On Linux this
// needs xclip, xsel or wl-clipboard.
func (SystemClipboard) Available() bool {
	return !clipboard.Unsupported
}
