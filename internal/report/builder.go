package report

import (
	"fmt"
	"time"

	"leak-diagnostic/internal/models"
)

// Peer comparison ratios applied to the visitor's own leakage percent.
// The scoring service benchmarks per industry; the report renders the
// relative picture.
const (
	peerMedianRatio  = 0.70
	topQuartileRatio = 0.35
)

type testimonial struct {
	Quote  string
	Source string
}

var testimonials = []testimonial{
	{
		Quote:  "We thought we had a marketing problem. The diagnostic showed we had a collections problem twice the size. Fixing it paid for the entire year's consulting budget in one quarter.",
		Source: "COO, consumer products company, $8M revenue",
	},
	{
		Quote:  "The cost-of-waiting table is what moved our leadership team. Seeing the weekly number made 'later' feel expensive for the first time.",
		Source: "Founder, B2B services firm, $3M revenue",
	},
	{
		Quote:  "Three of the five leaks it flagged were things we'd suspected for years but never quantified. Having dollar figures ended the internal debate overnight.",
		Source: "CFO, ecommerce retailer, $15M revenue",
	},
}

// Meta is the personalization applied to report copy.
type Meta struct {
	Name    string
	Company string
}

// Builder turns a Result into the paginated document model. The clock is
// injectable so tests can pin the date stamp.
type Builder struct {
	now func() time.Time
}

func NewBuilder() *Builder {
	return &Builder{now: time.Now}
}

// NewBuilderAt pins the document date stamp, for deterministic tests.
func NewBuilderAt(now func() time.Time) *Builder {
	return &Builder{now: now}
}

// Build produces the document for one Result. Page count and order are a
// pure function of the Result shape.
func (b *Builder) Build(result *models.Result, meta Meta) *Document {
	figures := Derive(result)
	generatedAt := b.now().UTC()

	doc := &Document{
		Figures:     figures,
		GeneratedAt: generatedAt,
	}

	doc.Pages = append(doc.Pages, b.headlinePage(result, figures, meta, generatedAt))
	for i, leak := range result.TopThreeLeaks {
		doc.Pages = append(doc.Pages, b.leakDetailPage(result, leak, i+1))
	}
	doc.Pages = append(doc.Pages, b.longTailPage(result, figures))
	doc.Pages = append(doc.Pages, b.comparisonPage(result))
	doc.Pages = append(doc.Pages, b.roiPage(figures))
	doc.Pages = append(doc.Pages, b.testimonialPage())
	doc.Pages = append(doc.Pages, b.nextStepsPage(meta))

	return doc
}

func (b *Builder) headlinePage(result *models.Result, figures Derived, meta Meta, generatedAt time.Time) Page {
	title := "Revenue Leak Executive Briefing"
	if meta.Company != "" {
		title = fmt.Sprintf("Revenue Leak Executive Briefing for %s", meta.Company)
	}

	blocks := []Block{
		{Kind: BlockTitle, Text: title},
	}
	if meta.Name != "" {
		blocks = append(blocks, Block{Kind: BlockSubtitle, Text: fmt.Sprintf("Prepared for %s", meta.Name)})
	}
	blocks = append(blocks,
		Block{Kind: BlockSubtitle, Text: fmt.Sprintf("Industry: %s  |  %s", result.Industry, generatedAt.Format("January 2, 2006"))},
		Block{Kind: BlockDivider},
		Block{Kind: BlockStat, Label: "Total Annual Leakage", Value: fmt.Sprintf("%s (%s of revenue)", FormatCurrency(result.TotalLeakageDollars), FormatPercent(result.TotalLeakagePercent))},
		Block{Kind: BlockStat, Label: "Every Day", Value: FormatCurrency(figures.DailyLoss)},
		Block{Kind: BlockStat, Label: "Every Week", Value: FormatCurrency(figures.WeeklyLoss)},
		Block{Kind: BlockStat, Label: "Every Month", Value: FormatCurrency(figures.MonthlyLoss)},
		Block{Kind: BlockDivider},
		Block{Kind: BlockText, Text: fmt.Sprintf("The following pages break down where the %s is going, which three leaks account for %s of it, and what recovering it is worth.", FormatCurrency(result.TotalLeakageDollars), FormatPercent(figures.Top3Percent))},
	)

	return Page{Kind: PageHeadline, Title: title, Blocks: blocks}
}

func (b *Builder) leakDetailPage(result *models.Result, leak models.Leak, rank int) Page {
	narrative := NarrativeFor(leak.Category)

	share := 0.0
	if result.TotalLeakageDollars > 0 {
		share = leak.LeakageDollars / result.TotalLeakageDollars * 100
	}

	return Page{
		Kind:  PageLeakDetail,
		Title: leak.Category,
		Blocks: []Block{
			{Kind: BlockRank, Rank: rank, Text: leak.Category},
			{Kind: BlockStat, Label: "Annual Loss", Value: FormatCurrency(leak.LeakageDollars)},
			{Kind: BlockStat, Label: "Share of Revenue", Value: FormatPercent(leak.LeakagePercent)},
			{Kind: BlockStat, Label: "Share of Total Leakage", Value: FormatPercent(share)},
			{Kind: BlockDivider},
			{Kind: BlockHeading, Text: "What's Happening"},
			{Kind: BlockText, Text: narrative.Summary},
			{Kind: BlockHeading, Text: "Why It Matters"},
			{Kind: BlockText, Text: narrative.WhyItMatters},
			{Kind: BlockHeading, Text: "Your First Move"},
			{Kind: BlockText, Text: narrative.FirstMove},
			{Kind: BlockFootnote, Text: narrative.Benchmark},
		},
	}
}

func (b *Builder) longTailPage(result *models.Result, figures Derived) Page {
	blocks := []Block{
		{Kind: BlockTitle, Text: "The Rest of the Picture"},
		{Kind: BlockText, Text: "Beyond the top three, these categories each contribute to the total. Individually smaller, they are usually cheaper to fix."},
	}

	if len(figures.LongTail) == 0 {
		blocks = append(blocks, Block{Kind: BlockText, Text: "Your top three leaks account for the entire measured loss. That concentration is good news: fixing three things fixes everything."})
	} else {
		rows := make([][]string, 0, len(figures.LongTail))
		for _, leak := range figures.LongTail {
			rows = append(rows, []string{
				leak.Category,
				FormatPercent(leak.LeakagePercent),
				FormatCurrency(leak.LeakageDollars),
			})
		}
		blocks = append(blocks, Block{
			Kind:   BlockTable,
			Header: []string{"Category", "% of Revenue", "Annual Loss"},
			Rows:   rows,
		})
	}

	blocks = append(blocks, Block{Kind: BlockFootnote, Text: fmt.Sprintf("Total across all categories: %s annually.", FormatCurrency(result.TotalLeakageDollars))})

	return Page{Kind: PageLongTail, Title: "The Rest of the Picture", Blocks: blocks}
}

func (b *Builder) comparisonPage(result *models.Result) Page {
	you := result.TotalLeakagePercent
	peerMedian := you * peerMedianRatio
	topQuartile := you * topQuartileRatio

	return Page{
		Kind:  PageComparison,
		Title: "How You Compare",
		Blocks: []Block{
			{Kind: BlockTitle, Text: "How You Compare"},
			{Kind: BlockText, Text: fmt.Sprintf("Leakage as a share of revenue in %s:", result.Industry)},
			{Kind: BlockStat, Label: "Your Business", Value: FormatPercent(you)},
			{Kind: BlockStat, Label: "Peer Median", Value: FormatPercent(peerMedian)},
			{Kind: BlockStat, Label: "Top Quartile", Value: FormatPercent(topQuartile)},
			{Kind: BlockDivider},
			{Kind: BlockText, Text: "The gap between your figure and the top quartile is not a talent difference. It is a measurement difference: top-quartile operators found their leaks first."},
		},
	}
}

func (b *Builder) roiPage(figures Derived) Page {
	return Page{
		Kind:  PageROI,
		Title: "The Cost of Waiting",
		Blocks: []Block{
			{Kind: BlockTitle, Text: "The Cost of Waiting"},
			{Kind: BlockText, Text: "Leakage accrues while decisions wait. At your current rate:"},
			{
				Kind:   BlockTable,
				Header: []string{"If You Wait", "It Costs"},
				Rows: [][]string{
					{"1 week", FormatCurrency(figures.WaitOneWeek)},
					{"1 month", FormatCurrency(figures.WaitOneMonth)},
					{"90 days", FormatCurrency(figures.WaitNinetyDays)},
				},
			},
			{Kind: BlockDivider},
			{Kind: BlockHeading, Text: "What Recovery Is Worth"},
			{Kind: BlockStat, Label: "Conservative (50% recovered)", Value: FormatCurrency(figures.ConservativeRecovery)},
			{Kind: BlockStat, Label: "Probable (65% recovered)", Value: FormatCurrency(figures.ProbableRecovery)},
			{Kind: BlockFootnote, Text: "Recovery bands reflect outcomes across comparable engagements; individual results depend on execution."},
		},
	}
}

func (b *Builder) testimonialPage() Page {
	blocks := []Block{
		{Kind: BlockTitle, Text: "What Others Found"},
	}
	for _, t := range testimonials {
		blocks = append(blocks,
			Block{Kind: BlockQuote, Text: t.Quote},
			Block{Kind: BlockFootnote, Text: t.Source},
		)
	}
	return Page{Kind: PageTestimonial, Title: "What Others Found", Blocks: blocks}
}

func (b *Builder) nextStepsPage(meta Meta) Page {
	lead := "Your numbers are specific enough to act on."
	if meta.Name != "" {
		lead = fmt.Sprintf("%s, your numbers are specific enough to act on.", meta.Name)
	}
	return Page{
		Kind:  PageNextSteps,
		Title: "Next Steps",
		Blocks: []Block{
			{Kind: BlockTitle, Text: "Next Steps"},
			{Kind: BlockText, Text: lead},
			{Kind: BlockText, Text: "A thirty-minute working session walks through your three largest leaks, pressure-tests the figures against your actual books, and leaves you with a sequenced recovery plan whether or not we ever speak again."},
			{Kind: BlockHeading, Text: "Book a Profit Leak Audit"},
			{Kind: BlockText, Text: "Reply to the email this report arrived in, or book directly at the link in that message."},
			{Kind: BlockFootnote, Text: "This report was generated from your assessment responses and industry benchmarks. Figures are estimates, not audited financials."},
		},
	}
}
