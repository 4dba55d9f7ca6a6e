// Package verify checks the structure of rendered regulation HTML.
package verify

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"

	"github.com/ntpusu/lawtext/internal/lawtext"
)

// Report describes the structure of a rendered page.
type Report struct {
	OpenDivs       int
	CloseDivs      int
	Orphans        int // closing div tags with no open div
	Unclosed       int // div tags still open at end of input
	Articles       int // div.law-article blocks
	Headings       int // div.zhangJie blocks
	History        int // paragraphs inside div.law-history
	Abandoned      bool
	SourceArticles int // article-number lines in the source; set by CheckDocument
	Problems       []string
}

// OK reports whether no problems were found.
func (r Report) OK() bool { return len(r.Problems) == 0 }

// Check tokenizes rendered HTML and reports its div structure.
func Check(page string) (Report, error) {
	var r Report
	if err := countDivs(page, &r); err != nil {
		return r, err
	}
	if err := inspectTree(page, &r); err != nil {
		return r, err
	}

	if r.Orphans > 0 {
		r.Problems = append(r.Problems, fmt.Sprintf("%d closing </div> without an open <div>", r.Orphans))
	}
	if r.Unclosed > 0 {
		r.Problems = append(r.Problems, fmt.Sprintf("%d <div> left open", r.Unclosed))
	}
	return r, nil
}

// CheckDocument renders text and checks the output, including that every
// article-number line produced exactly one article block.
func CheckDocument(text string) (Report, error) {
	r, err := Check(lawtext.Render(text))
	if err != nil {
		return r, err
	}

	r.SourceArticles = lawtext.CountArticles(lawtext.Parse(text).Content)
	if r.SourceArticles != r.Articles {
		r.Problems = append(r.Problems, fmt.Sprintf("source has %d article lines but output has %d article blocks", r.SourceArticles, r.Articles))
	}
	return r, nil
}

func countDivs(page string, r *Report) error {
	z := html.NewTokenizer(strings.NewReader(page))
	depth := 0
	for {
		switch z.Next() {
		case html.ErrorToken:
			if err := z.Err(); err != io.EOF {
				return fmt.Errorf("tokenize: %w", err)
			}
			r.Unclosed = depth
			return nil
		case html.StartTagToken:
			if name, _ := z.TagName(); string(name) == "div" {
				r.OpenDivs++
				depth++
			}
		case html.EndTagToken:
			if name, _ := z.TagName(); string(name) == "div" {
				r.CloseDivs++
				if depth == 0 {
					r.Orphans++
					continue
				}
				depth--
			}
		}
	}
}

func inspectTree(page string, r *Report) error {
	doc, err := html.Parse(strings.NewReader(page))
	if err != nil {
		return fmt.Errorf("parse: %w", err)
	}

	var walk func(n *html.Node, inHistory bool)
	walk = func(n *html.Node, inHistory bool) {
		if n.Type == html.ElementNode {
			switch {
			case n.Data == "div" && hasClass(n, "law-article"):
				r.Articles++
			case n.Data == "div" && hasClass(n, "zhangJie"):
				r.Headings++
			case n.Data == "div" && hasClass(n, "law-history"):
				inHistory = true
			case n.Data == "p" && inHistory:
				r.History++
			case n.Data == "div" && getAttr(n, "id") == "lawFront":
				r.Abandoned = strings.Contains(textOf(n), "❌")
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c, inHistory)
		}
	}
	walk(doc, false)
	return nil
}

func getAttr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func hasClass(n *html.Node, class string) bool {
	for _, c := range strings.Fields(getAttr(n, "class")) {
		if c == class {
			return true
		}
	}
	return false
}

func textOf(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}
