// Package report transforms a scoring Result into the paginated document
// model the rasterizer consumes. Building is deterministic: an identical
// Result yields an identical document apart from the date stamp.
package report

import "time"

// PageKind labels one logical section of the report.
type PageKind string

const (
	PageHeadline    PageKind = "headline"
	PageLeakDetail  PageKind = "leak-detail"
	PageLongTail    PageKind = "long-tail"
	PageComparison  PageKind = "comparison"
	PageROI         PageKind = "roi"
	PageTestimonial PageKind = "testimonial"
	PageNextSteps   PageKind = "next-steps"
)

// BlockKind selects how the rasterizer lays a block out.
type BlockKind string

const (
	BlockTitle    BlockKind = "title"
	BlockSubtitle BlockKind = "subtitle"
	BlockHeading  BlockKind = "heading"
	BlockText     BlockKind = "text"
	BlockStat     BlockKind = "stat"
	BlockRank     BlockKind = "rank"
	BlockTable    BlockKind = "table"
	BlockQuote    BlockKind = "quote"
	BlockDivider  BlockKind = "divider"
	BlockFootnote BlockKind = "footnote"
)

// Block is one renderable unit on a page. Which fields are meaningful
// depends on the kind: Stat uses Label/Value, Rank adds Rank, Table uses
// Header/Rows, everything else uses Text.
type Block struct {
	Kind   BlockKind
	Text   string
	Label  string
	Value  string
	Rank   int
	Header []string
	Rows   [][]string
}

// Page is one self-contained renderable unit.
type Page struct {
	Kind   PageKind
	Title  string
	Blocks []Block
}

// Document is the ordered page sequence for one report. Built fresh per
// report, never persisted.
type Document struct {
	Pages       []Page
	Figures     Derived
	GeneratedAt time.Time
}

// PageCount returns the number of pages in document order.
func (d *Document) PageCount() int {
	return len(d.Pages)
}
