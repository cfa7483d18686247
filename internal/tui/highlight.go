package tui

import (
	"strings"

	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
)

// highlight renders assembler source as an ANSI-colored string using the GAS
// lexer and disasmStyle, falling back to the plain text if tokenization
// fails for any reason (a malformed listing should still be viewable).
func highlight(source string) string {
	lexer := lexers.Get("GAS")
	if lexer == nil {
		lexer = lexers.Fallback
	}
	iterator, err := lexer.Tokenise(nil, source)
	if err != nil {
		return source
	}

	var b strings.Builder
	formatter := formatters.TTY256
	if err := formatter.Format(&b, disasmStyle, iterator); err != nil {
		return source
	}
	return b.String()
}
