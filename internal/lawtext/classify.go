package lawtext

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Kind is the structural category of a content line.
type Kind int

const (
	KindBlank Kind = iota
	KindHeading
	KindArticle
	KindXiang
	KindKuan
	KindMu
	KindParagraph
)

func (k Kind) String() string {
	switch k {
	case KindBlank:
		return "blank"
	case KindHeading:
		return "heading"
	case KindArticle:
		return "article"
	case KindXiang:
		return "xiang"
	case KindKuan:
		return "kuan"
	case KindMu:
		return "mu"
	case KindParagraph:
		return "paragraph"
	}
	return "unknown"
}

// Line is a classified content line.
type Line struct {
	Kind Kind
	// Text is the trimmed line without the leading full-width space.
	Text string
	// Level is the heading suffix (編, 章, 節, 款, 項 or 目); Class is its
	// CSS class.
	Level rune
	Class string
	// Title and Body are set for articles. Body holds text written on the
	// same line after the article number.
	Title string
	Body  string
	// Indented is set when the raw line began with a full-width space.
	Indented bool
}

const fullWidthSpace = "\u3000"

// headingClasses is read-only.
var headingClasses = map[rune]string{
	'編': "law-division",
	'章': "law-chapter",
	'節': "law-section",
	'款': "law-hsubsection",
	'項': "law-hxiang",
	'目': "law-hitem",
}

var (
	headingPattern = regexp.MustCompile(`^第[一二三四五六七八九十百千萬零]+([編章節款項目])`)
	articlePattern = regexp.MustCompile(`^(?:第[\s\x{3000}]*\d+[\s\x{3000}]*條|第[一二三四五六七八九十百]+條)`)
	kuanPattern    = regexp.MustCompile(`^[一二三四五六七八九十]+、`)
	muPattern      = regexp.MustCompile(`^（[一二三四五六七八九十]+）`)
)

// HeadingClass returns the CSS class for a heading level rune.
func HeadingClass(level rune) (string, bool) {
	class, ok := headingClasses[level]
	return class, ok
}

// Classify assigns raw to the first matching category. Every line has a
// category; anything unrecognised is KindParagraph.
func Classify(raw string) Line {
	if strings.HasPrefix(raw, fullWidthSpace) {
		// An indented line is always a sub-item, whatever it contains.
		text := strings.TrimSpace(strings.TrimPrefix(raw, fullWidthSpace))
		return Line{Kind: KindXiang, Text: text, Indented: true}
	}

	text := strings.TrimSpace(raw)
	switch {
	case text == "":
		return Line{Kind: KindBlank}
	case headingPattern.MatchString(text):
		m := headingPattern.FindStringSubmatch(text)
		level, _ := utf8.DecodeRuneInString(m[1])
		return Line{Kind: KindHeading, Text: text, Level: level, Class: headingClasses[level]}
	case articlePattern.MatchString(text):
		return classifyArticle(text, articlePattern.FindString(text))
	case kuanPattern.MatchString(text):
		return Line{Kind: KindKuan, Text: text}
	case muPattern.MatchString(text):
		return Line{Kind: KindMu, Text: text}
	}
	return Line{Kind: KindParagraph, Text: text}
}

func classifyArticle(text, number string) Line {
	rest := text[len(number):]
	if r, _ := utf8.DecodeRuneInString(rest); unicode.IsSpace(r) {
		body := strings.TrimSpace(rest)
		if body != "" && !strings.HasPrefix(body, "（") {
			return Line{Kind: KindArticle, Text: text, Title: number, Body: body}
		}
	}

	parts := strings.Split(text, "（")
	title := strings.TrimSpace(parts[0])
	if len(parts) > 1 {
		title += "（" + strings.Join(parts[1:], "（")
	}
	return Line{Kind: KindArticle, Text: text, Title: title}
}

// IsArticleNumber reports whether raw opens an article block.
func IsArticleNumber(raw string) bool {
	return Classify(raw).Kind == KindArticle
}
