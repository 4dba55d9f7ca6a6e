package lawtext

import (
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleRegulation = `---
titleFull: 學生自治會章程
status: abandoned
modifiedType: 修正
modifiedDate: 2023-05-10
history:
- 第一次修正
- 第二次修正
---
第一章 總則
第1條（名稱）
　本會定名為學生自治會。
第2條　本會以服務同學為宗旨。
第二章 會員
第5條　會員應遵守章程。
一、入會資格
（一）在學學生
（二）交換學生
二、會員權利
`

func TestRender_Empty(t *testing.T) {
	for _, in := range []string{"", "   ", "\n\t\n", "　"} {
		assert.Equal(t, EmptyPlaceholder, Render(in), "input %q", in)
	}
}

func TestRender_Metadata(t *testing.T) {
	out := Render(sampleRegulation)

	assert.Contains(t, out, "法規名稱：</span>學生自治會章程 ❌<br />")
	assert.Contains(t, out, `<span style="font-weight: bold; color: red;">修正日期：</span>2023年5月10日`)
	assert.Contains(t, out, "<p>第一次修正</p>\n<p>第二次修正</p>\n")

	front := strings.Index(out, `<div id="lawFront">`)
	content := strings.Index(out, `<div class="regulation-content">`)
	history := strings.Index(out, `<div class="law-history">`)
	require.True(t, front >= 0 && content >= 0 && history >= 0)
	assert.Less(t, front, content)
	assert.Less(t, content, history)
}

func TestRender_ActiveRegulation(t *testing.T) {
	out := Render("---\ntitleFull: 選舉罷免辦法\nstatus: active\nmodifiedType: 訂定\nmodifiedDate: 民國112年\n---\n第1條\n")

	assert.Contains(t, out, "法規名稱：</span>選舉罷免辦法<br />")
	assert.NotContains(t, out, "❌")
	assert.NotContains(t, out, "color: red;")
	assert.Contains(t, out, "訂定日期：</span>民國112年")
}

func TestRender_DateLineNeedsTypeAndDate(t *testing.T) {
	out := Render("---\ntitleFull: 辦法\nmodifiedDate: 2024-01-02\n---\n第1條\n")
	assert.NotContains(t, out, "日期：")
}

func TestRender_WithoutFrontmatter(t *testing.T) {
	out := Render("第一章 總則\n第1條\n")

	assert.Contains(t, out, "<div id=\"lawFront\">\n</div>")
	assert.NotContains(t, out, "法規名稱")
	assert.Contains(t, out, `<p class="law-chapter">第一章 總則</p>`)
}

func TestRender_History(t *testing.T) {
	t.Run("absent", func(t *testing.T) {
		out := Render("第1條\n")
		assert.Contains(t, out, "沿革</h2>\n</div>\n")
	})
	t.Run("scalar is not rendered as entries", func(t *testing.T) {
		out := Render("---\nhistory: 一次\n---\n第1條\n")
		assert.Contains(t, out, "沿革</h2>\n</div>\n")
		assert.NotContains(t, out, "<p>一次</p>")
	})
}

func TestRender_Idempotent(t *testing.T) {
	assert.Equal(t, Render(sampleRegulation), Render(sampleRegulation))
}

func TestRender_Concurrent(t *testing.T) {
	want := Render(sampleRegulation)

	var wg sync.WaitGroup
	results := make([]string, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = Render(sampleRegulation)
		}(i)
	}
	wg.Wait()

	for _, got := range results {
		assert.Equal(t, want, got)
	}
}

func TestFormatContent_Golden(t *testing.T) {
	lines := []string{
		"第一章 總則",
		"第1條（宗旨）",
		"　本會以服務同學為宗旨。",
		"一、入會資格",
		"（一）在學學生",
		"第2條",
		"",
		"第二章 組織",
	}

	want := "<div class=\"regulation-content\">\n" +
		"\t<div class=\"zhangJie\">\n\t\t<p class=\"law-chapter\">第一章 總則</p>\n\t</div>\n" +
		"\t<div class=\"law-article\">\n" +
		"\t\t<div class=\"jfpc\"><p class=\"law-art-num\">第1條（宗旨）</p></div>\n" +
		"\t\t<p class=\"xiang\">本會以服務同學為宗旨。</p>\n" +
		"\t\t<div class=\"jfpc\"><p class=\"kuan\">一、入會資格</p></div>\n" +
		"\t\t<div class=\"jfpc\"><p class=\"mu\">（一）在學學生</p></div>\n" +
		"\t</div>\n" +
		"\t<div class=\"law-article\">\n" +
		"\t\t<div class=\"jfpc\"><p class=\"law-art-num\">第2條</p></div>\n" +
		"\t</div>\n" +
		"\t<div class=\"zhangJie\">\n\t\t<p class=\"law-chapter\">第二章 組織</p>\n\t</div>\n" +
		"</div>\n"

	assert.Equal(t, want, FormatContent(lines))
}

func TestFormatContent_ArticleBody(t *testing.T) {
	out := FormatContent([]string{"第5條　會員應遵守章程。"})

	assert.Contains(t, out, `<p class="law-art-num">第5條</p>`)
	assert.Contains(t, out, `<p class="xiang">會員應遵守章程。</p>`)
	assert.Equal(t, 1, strings.Count(out, `class="law-article"`))
}

func TestFormatContent_Kuan(t *testing.T) {
	out := FormatContent([]string{"一、入會資格"})
	assert.Contains(t, out, `<div class="jfpc"><p class="kuan">一、入會資格</p></div>`)
}

func TestFormatContent_Escapes(t *testing.T) {
	out := FormatContent([]string{"<script>alert(1)</script> & more"})
	assert.Contains(t, out, "&lt;script&gt;alert(1)&lt;/script&gt; &amp; more")
	assert.NotContains(t, out, "<script>")
}

func TestFormatContent_Balanced(t *testing.T) {
	inputs := [][]string{
		nil,
		{"第1條"},
		{"第1條", "第2條", "第3條"},
		{"第一章 總則", "第1條", "第二章", "第三章", "第2條"},
		{"前言", "第1條", "　內容", "一、", "（一）", "</div>"},
		{"第一章", "第一節", "第1條（a（b））", "第十條之一", "第二款", "第2條　本文"},
		{"第\u30001\u3000條", "一、入會資格", "第 2 條", "第\u30003\u3000條\u3000本文"},
	}

	for _, lines := range inputs {
		out := FormatContent(lines)
		assert.Equal(t, strings.Count(out, "<div"), strings.Count(out, "</div>"), "lines %q", lines)
		assert.Equal(t, CountArticles(lines), strings.Count(out, `class="law-article"`), "lines %q", lines)
	}
}

func TestFormatContent_FullWidthArticleNumber(t *testing.T) {
	out := FormatContent(SplitLines("第\u30005\u3000條"))
	assert.Contains(t, out, `<div class="law-article">`)
	assert.Contains(t, out, `<p class="law-art-num">第\u30005\u3000條</p>`)
	assert.NotContains(t, out, `class="xiang"`)
}

func TestFormatDate(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"2023-05-10", "2023年5月10日"},
		{"2001-12-01", "2001年12月1日"},
		{"2023-5-10", "2023-5-10"},
		{"2023/05/10", "2023/05/10"},
		{"2023-05-10 ", "2023-05-10 "},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatDate(tt.in), "FormatDate(%q)", tt.in)
	}
}

func TestPlainHTML(t *testing.T) {
	assert.Equal(t, "第1條<br>a &lt; b<br>", PlainHTML("第1條\r\na < b\n"))
}

func TestExtractOutline(t *testing.T) {
	headings := ExtractOutline(sampleRegulation)

	want := []Heading{
		{Kind: KindHeading, Level: '章', Text: "第一章 總則", Line: 10},
		{Kind: KindArticle, Text: "第1條（名稱）", Line: 11},
		{Kind: KindArticle, Text: "第2條", Line: 13},
		{Kind: KindHeading, Level: '章', Text: "第二章 會員", Line: 14},
		{Kind: KindArticle, Text: "第5條", Line: 15},
	}
	assert.Equal(t, want, headings)
}
