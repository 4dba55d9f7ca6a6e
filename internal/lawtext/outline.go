package lawtext

// Heading is an entry of a regulation outline: a structural heading or an
// article number.
type Heading struct {
	Kind  Kind
	Level rune
	Text  string
	Line  int // 1-based line number in the source text
}

// ExtractOutline lists the headings and articles of text in order.
func ExtractOutline(text string) []Heading {
	doc := Parse(text)

	var headings []Heading
	for i, raw := range doc.Content {
		line := Classify(raw)
		switch line.Kind {
		case KindHeading:
			headings = append(headings, Heading{Kind: KindHeading, Level: line.Level, Text: line.Text, Line: doc.ContentStart + i + 1})
		case KindArticle:
			headings = append(headings, Heading{Kind: KindArticle, Text: line.Title, Line: doc.ContentStart + i + 1})
		}
	}
	return headings
}
