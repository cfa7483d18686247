package tui

import (
	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/styles"
)

// disasmStyle is a chroma style tuned for GNU assembler listings, grounded on
// colorize.DisasmDark in the example pack (Dhruvchaudhary255-reverse).
var disasmStyle = styles.Register(chroma.MustNewStyle("thumbdisasm-dark", chroma.StyleEntries{
	chroma.Text:           "#FFFFFF",
	chroma.Background:     "bg:#1e1e1e",
	chroma.Comment:        "#6A9955",
	chroma.CommentPreproc: "#C586C0",

	chroma.Keyword:       "#FFFFFF",
	chroma.KeywordPseudo: "#569CD6",
	chroma.NameBuiltin:    "#7C9C9D",
	chroma.NameVariable:   "#7C9C9D",

	chroma.LiteralNumber:    "#FF5F87",
	chroma.LiteralNumberHex: "#FF5F87",

	chroma.NameLabel:    "#FFD700",
	chroma.NameFunction: "#FFFFFF",

	chroma.Operator:    "#FFFFFF",
	chroma.Punctuation: "#FFFFFF",
	chroma.String:      "#EACD53",
}))
