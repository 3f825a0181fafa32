package colorize

import (
	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/styles"
)

// styleName is the name of the registered listing style.
const styleName = "avr-dark"

// AVRDark is the style of the listing output.
var AVRDark = styles.Register(chroma.MustNewStyle(styleName, chroma.StyleEntries{
	chroma.Text:           "#FFFFFF",
	chroma.Comment:        "#7F848E",
	chroma.CommentPreproc: "#C678DD",

	chroma.Keyword:       "#FFFFFF", // mnemonics
	chroma.KeywordPseudo: "#C678DD", // directives
	chroma.Name:          "#7C9C9D", // registers
	chroma.NameBuiltin:   "#7C9C9D",
	chroma.NameVariable:  "#7C9C9D",
	chroma.NameFunction:  "#FFFFFF",
	chroma.NameLabel:     "#FFD700",
	chroma.NameAttribute: "#FFFFFF",

	chroma.LiteralNumber:        "#FF5F87",
	chroma.LiteralNumberHex:     "#FF5F87",
	chroma.LiteralNumberBin:     "#FF5F87",
	chroma.LiteralNumberInteger: "#FF5F87",

	chroma.Operator:    "#FFFFFF",
	chroma.Punctuation: "#FFFFFF",
	chroma.String:      "#EACD53",
}))
