// Package textutil salvages text from part payloads that are not valid UTF-8.
// Raw part output from the index tool is returned byte-for-byte, so legacy
// single-byte and Asian encodings show up regularly in older mail.
package textutil

import (
	"strings"
	"unicode/utf8"

	"github.com/gogs/chardet"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/encoding/traditionalchinese"
)

// fallbackEncodings are tried in order of likelihood for mail bodies when
// detection is inconclusive.
var fallbackEncodings = []encoding.Encoding{
	charmap.Windows1252,
	charmap.ISO8859_1,
	japanese.ShiftJIS,
	simplifiedchinese.GBK,
}

// EnsureUTF8 returns s unchanged when it is already valid UTF-8. Otherwise
// it attempts charset detection and conversion, and as a last resort
// replaces invalid bytes with the replacement character. The result is
// always valid UTF-8.
func EnsureUTF8(s string) string {
	if utf8.ValidString(s) {
		return s
	}

	data := []byte(s)
	if enc := detect(data); enc != nil {
		if decoded, err := enc.NewDecoder().Bytes(data); err == nil && utf8.Valid(decoded) {
			return string(decoded)
		}
	}
	for _, enc := range fallbackEncodings {
		if decoded, err := enc.NewDecoder().Bytes(data); err == nil && utf8.Valid(decoded) {
			return string(decoded)
		}
	}
	return strings.ToValidUTF8(s, "�")
}

// detect runs charset detection, returning nil when confidence is too low
// to trust the guess. Short samples need a lower bar or detection never
// fires on snippet-sized parts.
func detect(data []byte) encoding.Encoding {
	minConfidence := 30
	if len(data) > 50 {
		minConfidence = 50
	}
	result, err := chardet.NewTextDetector().DetectBest(data)
	if err != nil || result.Confidence < minConfidence {
		return nil
	}
	return encodingByName(result.Charset)
}

// encodingByName maps chardet charset names to decoders for the encodings
// that actually occur in mail archives.
func encodingByName(name string) encoding.Encoding {
	switch strings.ToLower(name) {
	case "windows-1252":
		return charmap.Windows1252
	case "iso-8859-1":
		return charmap.ISO8859_1
	case "iso-8859-15":
		return charmap.ISO8859_15
	case "shift_jis", "shift-jis":
		return japanese.ShiftJIS
	case "euc-jp":
		return japanese.EUCJP
	case "gb18030", "gbk", "gb2312":
		return simplifiedchinese.GBK
	case "big5":
		return traditionalchinese.Big5
	default:
		return nil
	}
}
