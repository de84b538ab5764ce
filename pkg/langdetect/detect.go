// Package langdetect recognizes PHP sources that carry no .php extension,
// such as executable scripts started through a shebang line.
package langdetect

import (
	"bytes"
	"errors"
	"io"
	"os"
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// headSize is how much of a file is read to detect its language.
const headSize = 512

const (
	langPHP  = "php"
	langText = "text"
)

// Detect returns the lowercase language name of content, judged by its
// shebang line, an editor modeline or a leading PHP open tag. It returns
// "text" when none of these decide.
func Detect(content []byte) string {
	if len(content) == 0 {
		return langText
	}
	if lang, safe := enry.GetLanguageByShebang(content); safe && lang != "" {
		return strings.ToLower(lang)
	}
	if lang, safe := enry.GetLanguageByModeline(content); safe && lang != "" {
		return strings.ToLower(lang)
	}
	if hasOpenTag(content) {
		return langPHP
	}
	return langText
}

// IsPHPScript reports whether content is PHP by Detect's rules.
func IsPHPScript(content []byte) bool {
	return Detect(content) == langPHP
}

// IsPHPScriptFile reads the head of the file at path and reports whether it
// is a PHP script. Unreadable files are not.
func IsPHPScriptFile(path string) bool {
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	defer f.Close()

	head := make([]byte, headSize)
	n, err := io.ReadFull(f, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) {
		return false
	}
	return IsPHPScript(head[:n])
}

func hasOpenTag(content []byte) bool {
	if len(content) < len("<?php") {
		return false
	}
	return bytes.EqualFold(content[:len("<?php")], []byte("<?php"))
}
