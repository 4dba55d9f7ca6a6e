package lawtext

import (
	"fmt"
	"strings"

	"github.com/yuin/goldmark/util"
)

const (
	contentOpen  = "<div class=\"regulation-content\">\n"
	contentClose = "</div>\n"
	articleClose = "\t</div>\n"
)

// FormatContent renders content lines as the regulation body.
//
// The only state is whether an article block is open; headings and new
// articles close it, and it is closed at the end of input.
func FormatContent(lines []string) string {
	var b strings.Builder
	b.WriteString(contentOpen)

	articleOpen := false
	for _, raw := range lines {
		articleOpen = writeLine(&b, Classify(raw), articleOpen)
	}
	if articleOpen {
		b.WriteString(articleClose)
	}

	b.WriteString(contentClose)
	return b.String()
}

// writeLine emits one classified line and returns the new articleOpen state.
func writeLine(b *strings.Builder, line Line, articleOpen bool) bool {
	switch line.Kind {
	case KindBlank:
		return articleOpen

	case KindHeading:
		if articleOpen {
			b.WriteString(articleClose)
		}
		fmt.Fprintf(b, "\t<div class=\"zhangJie\">\n\t\t<p class=\"%s\">%s</p>\n\t</div>\n", line.Class, escape(line.Text))
		return false

	case KindArticle:
		if articleOpen {
			b.WriteString(articleClose)
		}
		fmt.Fprintf(b, "\t<div class=\"law-article\">\n\t\t<div class=\"jfpc\"><p class=\"law-art-num\">%s</p></div>\n", escape(line.Title))
		if line.Body != "" {
			writeXiang(b, line.Body)
		}
		return true

	case KindXiang, KindParagraph:
		writeXiang(b, line.Text)

	case KindKuan:
		fmt.Fprintf(b, "\t\t<div class=\"jfpc\"><p class=\"kuan\">%s</p></div>\n", escape(line.Text))

	case KindMu:
		fmt.Fprintf(b, "\t\t<div class=\"jfpc\"><p class=\"mu\">%s</p></div>\n", escape(line.Text))
	}
	return articleOpen
}

func writeXiang(b *strings.Builder, text string) {
	fmt.Fprintf(b, "\t\t<p class=\"xiang\">%s</p>\n", escape(text))
}

func escape(s string) string {
	return string(util.EscapeHTML([]byte(s)))
}

// CountArticles returns how many lines open an article block.
func CountArticles(lines []string) int {
	n := 0
	for _, raw := range lines {
		if Classify(raw).Kind == KindArticle {
			n++
		}
	}
	return n
}
