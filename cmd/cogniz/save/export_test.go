package savecmder

// SetClipboardReader replaces the clipboard reader until the returned func
// is called.
func SetClipboardReader(fn func() (string, error)) func() {
	prev := readClipboard
	readClipboard = fn
	return func() { readClipboard = prev }
}
