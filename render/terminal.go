package render

import (
	"os"
	"strings"

	"gridroute/canvas"
)

// EnvTerminalMode forces the character set: "ascii" or "unicode".
const EnvTerminalMode = "GRIDROUTE_TERMINAL_MODE"

// Charset selects the characters boxes and connectors are drawn with.
type Charset int

const (
	Unicode Charset = iota
	ASCII
)

// String returns the lower-case name of the charset.
func (c Charset) String() string {
	if c == ASCII {
		return "ascii"
	}
	return "unicode"
}

// BoxStyle returns the box style of the charset.
func (c Charset) BoxStyle() canvas.BoxStyle {
	if c == ASCII {
		return canvas.ASCIIBoxStyle
	}
	return canvas.DefaultBoxStyle
}

// PathStyle returns the connector style of the charset.
func (c Charset) PathStyle() canvas.PathStyle {
	if c == ASCII {
		return canvas.ASCIIPathStyle
	}
	return canvas.DefaultPathStyle
}

// DetectCharset picks a charset for the current terminal.
func DetectCharset() Charset {
	return detectCharset(os.Getenv)
}

func detectCharset(getenv func(string) string) Charset {
	switch strings.ToLower(getenv(EnvTerminalMode)) {
	case "ascii":
		return ASCII
	case "unicode":
		return Unicode
	}

	switch getenv("TERM") {
	case "dumb", "linux":
		return ASCII
	}
	if !utf8Locale(getenv) {
		return ASCII
	}
	return Unicode
}

// utf8Locale reports whether the first locale variable set names UTF-8.
func utf8Locale(getenv func(string) string) bool {
	for _, env := range []string{"LC_ALL", "LC_CTYPE", "LANG"} {
		value := getenv(env)
		if value == "" {
			continue
		}
		upper := strings.ToUpper(value)
		return strings.Contains(upper, "UTF-8") || strings.Contains(upper, "UTF8")
	}
	return false
}
