package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock() time.Time {
	return time.Date(2026, time.March, 14, 9, 30, 0, 0, time.UTC)
}

func TestBuildPageOrder(t *testing.T) {
	doc := NewBuilderAt(fixedClock).Build(sampleResult(), Meta{Name: "Dana", Company: "Acme"})

	require.Equal(t, 9, doc.PageCount())
	kinds := make([]PageKind, 0, doc.PageCount())
	for _, p := range doc.Pages {
		kinds = append(kinds, p.Kind)
	}
	assert.Equal(t, []PageKind{
		PageHeadline,
		PageLeakDetail, PageLeakDetail, PageLeakDetail,
		PageLongTail,
		PageComparison,
		PageROI,
		PageTestimonial,
		PageNextSteps,
	}, kinds)
}

func TestBuildPageCountFollowsTopThree(t *testing.T) {
	result := sampleResult()
	result.TopThreeLeaks = result.TopThreeLeaks[:2]

	doc := NewBuilderAt(fixedClock).Build(result, Meta{})
	assert.Equal(t, 8, doc.PageCount())
}

func TestBuildIsDeterministic(t *testing.T) {
	b := NewBuilderAt(fixedClock)
	first := b.Build(sampleResult(), Meta{Name: "Dana", Company: "Acme"})
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, b.Build(sampleResult(), Meta{Name: "Dana", Company: "Acme"}))
	}
}

func TestHeadlinePagePersonalization(t *testing.T) {
	doc := NewBuilderAt(fixedClock).Build(sampleResult(), Meta{Name: "Dana", Company: "Acme"})

	headline := doc.Pages[0]
	assert.Equal(t, PageHeadline, headline.Kind)
	assert.Contains(t, headline.Title, "Acme")

	var sawName bool
	for _, block := range headline.Blocks {
		if block.Kind == BlockSubtitle && block.Text == "Prepared for Dana" {
			sawName = true
		}
	}
	assert.True(t, sawName)
}

func TestHeadlinePageWithoutMeta(t *testing.T) {
	doc := NewBuilderAt(fixedClock).Build(sampleResult(), Meta{})

	headline := doc.Pages[0]
	assert.Equal(t, "Revenue Leak Executive Briefing", headline.Title)
	for _, block := range headline.Blocks {
		assert.NotContains(t, block.Text, "Prepared for")
	}
}

func TestLeakDetailPagesRankTopThree(t *testing.T) {
	result := sampleResult()
	doc := NewBuilderAt(fixedClock).Build(result, Meta{})

	for i, leak := range result.TopThreeLeaks {
		page := doc.Pages[1+i]
		require.Equal(t, PageLeakDetail, page.Kind)
		assert.Equal(t, leak.Category, page.Title)

		rank := page.Blocks[0]
		require.Equal(t, BlockRank, rank.Kind)
		assert.Equal(t, i+1, rank.Rank)
		assert.Equal(t, leak.Category, rank.Text)
	}
}

func TestLeakDetailUsesFallbackNarrative(t *testing.T) {
	result := sampleResult()
	result.TopThreeLeaks[0].Category = "Quantum Flux Mismanagement"

	doc := NewBuilderAt(fixedClock).Build(result, Meta{})
	page := doc.Pages[1]

	var summary string
	for i, block := range page.Blocks {
		if block.Kind == BlockHeading && block.Text == "What's Happening" {
			summary = page.Blocks[i+1].Text
		}
	}
	assert.Equal(t, fallbackNarrative.Summary, summary)
}

func TestLongTailPageTable(t *testing.T) {
	doc := NewBuilderAt(fixedClock).Build(sampleResult(), Meta{})
	page := doc.Pages[4]
	require.Equal(t, PageLongTail, page.Kind)

	var table *Block
	for i := range page.Blocks {
		if page.Blocks[i].Kind == BlockTable {
			table = &page.Blocks[i]
		}
	}
	require.NotNil(t, table)
	assert.Equal(t, []string{"Category", "% of Revenue", "Annual Loss"}, table.Header)
	assert.Len(t, table.Rows, 2)
	assert.Equal(t, "Operational Waste", table.Rows[0][0])
}

func TestLongTailPageConcentrationMessage(t *testing.T) {
	result := sampleResult()
	result.Leaks = result.TopThreeLeaks

	doc := NewBuilderAt(fixedClock).Build(result, Meta{})
	page := doc.Pages[4]

	for _, block := range page.Blocks {
		assert.NotEqual(t, BlockTable, block.Kind)
	}
}

func TestComparisonPageRatios(t *testing.T) {
	doc := NewBuilderAt(fixedClock).Build(sampleResult(), Meta{})
	page := doc.Pages[5]
	require.Equal(t, PageComparison, page.Kind)

	stats := map[string]string{}
	for _, block := range page.Blocks {
		if block.Kind == BlockStat {
			stats[block.Label] = block.Value
		}
	}
	assert.Equal(t, "11.0%", stats["Your Business"])
	assert.Equal(t, FormatPercent(11.0*peerMedianRatio), stats["Peer Median"])
	assert.Equal(t, FormatPercent(11.0*topQuartileRatio), stats["Top Quartile"])
}

func TestROIPageWaitTable(t *testing.T) {
	doc := NewBuilderAt(fixedClock).Build(sampleResult(), Meta{})
	page := doc.Pages[6]
	require.Equal(t, PageROI, page.Kind)

	var table *Block
	for i := range page.Blocks {
		if page.Blocks[i].Kind == BlockTable {
			table = &page.Blocks[i]
		}
	}
	require.NotNil(t, table)
	require.Len(t, table.Rows, 3)
	assert.Equal(t, FormatCurrency(21212), table.Rows[0][1])
	assert.Equal(t, FormatCurrency(21212*4), table.Rows[1][1])
	assert.Equal(t, FormatCurrency(21212*13), table.Rows[2][1])
}

func TestEveryPageHasBlocks(t *testing.T) {
	doc := NewBuilderAt(fixedClock).Build(sampleResult(), Meta{Name: "Dana", Company: "Acme"})
	for _, page := range doc.Pages {
		assert.NotEmpty(t, page.Blocks, string(page.Kind))
	}
}
