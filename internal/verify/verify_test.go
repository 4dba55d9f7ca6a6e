package verify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheck(t *testing.T) {
	tests := []struct {
		name     string
		page     string
		orphans  int
		unclosed int
		articles int
		ok       bool
	}{
		{
			name:     "balanced",
			page:     `<div class="regulation-content"><div class="law-article"><p>x</p></div></div>`,
			articles: 1,
			ok:       true,
		},
		{
			name:    "orphan close",
			page:    `<div></div></div>`,
			orphans: 1,
		},
		{
			name:     "left open",
			page:     `<div><div class="law-article">`,
			unclosed: 2,
			articles: 1,
		},
		{
			name:     "multiple classes",
			page:     `<div class="law-article extra"></div>`,
			articles: 1,
			ok:       true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := Check(tt.page)
			require.NoError(t, err)
			assert.Equal(t, tt.orphans, r.Orphans)
			assert.Equal(t, tt.unclosed, r.Unclosed)
			assert.Equal(t, tt.articles, r.Articles)
			assert.Equal(t, tt.ok, r.OK(), "problems: %v", r.Problems)
		})
	}
}

func TestCheckDocument(t *testing.T) {
	text := `---
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
一、入會資格
（一）在學學生
第二章 會員
第十條
`

	r, err := CheckDocument(text)
	require.NoError(t, err)

	assert.True(t, r.OK(), "problems: %v", r.Problems)
	assert.Equal(t, 3, r.Articles)
	assert.Equal(t, 3, r.SourceArticles)
	assert.Equal(t, 2, r.Headings)
	assert.Equal(t, 2, r.History)
	assert.True(t, r.Abandoned)
	assert.Equal(t, r.OpenDivs, r.CloseDivs)
}

func TestCheckDocument_Edges(t *testing.T) {
	for _, text := range []string{
		"",
		"   ",
		"第1條",
		"---\ntitleFull: 未關閉",
		"前言\n</div></div>\n第1條\n　<div>",
		"第1條\n第2條\n第3條\n第一章\n第4條",
	} {
		r, err := CheckDocument(text)
		require.NoError(t, err)
		assert.True(t, r.OK(), "text %q problems: %v", text, r.Problems)
	}
}
