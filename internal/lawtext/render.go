package lawtext

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
)

// EmptyPlaceholder is returned for empty or blank input.
const EmptyPlaceholder = "<div>無法處理空白或無效的文本內容</div>"

const (
	sectionHeading = "<h2 class=\"wp-block-heading\">%s</h2>\n"
	abandonedMark  = " ❌"
)

var isoDate = regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})$`)

// Render converts a raw regulation text into the page HTML: front block,
// content block and history block, in that order.
func Render(text string) string {
	if strings.TrimSpace(text) == "" {
		log.Warn("formatter received empty or blank text")
		return EmptyPlaceholder
	}

	doc := Parse(text)
	return Assemble(doc.Meta, FormatContent(doc.Content))
}

// Assemble combines metadata with an already formatted content block.
func Assemble(meta Metadata, content string) string {
	var b strings.Builder
	writeFront(&b, meta)
	b.WriteString(content)
	writeHistory(&b, meta)
	return b.String()
}

func writeFront(b *strings.Builder, meta Metadata) {
	b.WriteString("<div id=\"lawFront\">\n")

	if title := meta.Title(); title != "" {
		marker, labelColor := "", ""
		if meta.Abandoned() {
			marker = abandonedMark
			labelColor = " color: red;"
		}
		fmt.Fprintf(b, "<p><span style=\"font-weight: bold;\">法規名稱：</span>%s%s<br />\n", escape(title), marker)

		kind, date := meta.String("modifiedType"), meta.String("modifiedDate")
		if kind != "" && date != "" {
			fmt.Fprintf(b, "<span style=\"font-weight: bold;%s\">%s日期：</span>%s", labelColor, escape(kind), escape(FormatDate(date)))
		}
		b.WriteString("</p>\n")
	}

	b.WriteString("</div>\n\n")
	fmt.Fprintf(b, sectionHeading, "全文")
	b.WriteString("\n")
}

func writeHistory(b *strings.Builder, meta Metadata) {
	b.WriteString("\n<div class=\"law-history\">\n")
	fmt.Fprintf(b, sectionHeading, "沿革")
	if items, ok := meta.List("history"); ok {
		for _, item := range items {
			fmt.Fprintf(b, "<p>%s</p>\n", escape(item))
		}
	}
	b.WriteString("</div>\n")
}

// FormatDate turns a strict YYYY-MM-DD date into 2023年5月10日 form.
// Other values are returned unchanged.
func FormatDate(s string) string {
	m := isoDate.FindStringSubmatch(s)
	if m == nil {
		return s
	}
	month, _ := strconv.Atoi(m[2])
	day, _ := strconv.Atoi(m[3])
	return fmt.Sprintf("%s年%d月%d日", m[1], month, day)
}

// PlainHTML is the structure-less fallback: escaped text with <br> line
// breaks.
func PlainHTML(text string) string {
	return lineBreak.ReplaceAllString(escape(text), "<br>")
}
