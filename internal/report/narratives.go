package report

// Narrative is the canned explanation attached to a leak category on its
// detail page. One versioned table with an explicit fallback, so the
// builder never fails on a category it has not seen before.
type Narrative struct {
	Summary      string
	WhyItMatters string
	FirstMove    string
	Benchmark    string
}

var fallbackNarrative = Narrative{
	Summary:      "This category is draining revenue faster than most operators realize. The pattern shows up across businesses of every size: small individual losses that compound into a material annual figure.",
	WhyItMatters: "Unaddressed leaks rarely stay flat. Left alone they tend to widen as the business grows, because the same broken process handles more volume each quarter.",
	FirstMove:    "Pull ninety days of data for this area and quantify the loss per transaction. Most teams find two or three fixes they can ship within a month once the number is visible.",
	Benchmark:    "Well-run peers typically hold losses in this category under a third of what the diagnostic found for you.",
}

// narratives is keyed by the category names the scoring service emits.
var narratives = map[string]Narrative{
	"Pricing & Discounting": {
		Summary:      "Discounts are being granted faster than they are being tracked. Every unmanaged percentage point off list price falls straight through to the bottom line.",
		WhyItMatters: "A business running a 10% net margin that discounts an extra 5% needs roughly 50% more volume just to stand still. Discounting is the most expensive growth lever there is.",
		FirstMove:    "Freeze all non-standard discounts above a set threshold and route them through a single approver for thirty days. The approval log becomes your map of where margin is escaping.",
		Benchmark:    "Top-quartile operators keep realized price within 2-3% of list. The average business in your revenue band gives up more than double that.",
	},
	"Customer Churn": {
		Summary:      "Revenue is walking out the back door as fast as marketing brings it in the front. Churned accounts take their repeat purchases, referrals, and expansion revenue with them.",
		WhyItMatters: "Replacing a lost customer costs five to seven times more than keeping one. Churn also compounds: every point of monthly churn quietly caps how large the business can ever get.",
		FirstMove:    "Call the last ten customers who left. Not a survey - a call. The first three conversations usually reveal a fixable operational cause nobody inside the business had ranked as urgent.",
		Benchmark:    "Businesses in your bracket that run a structured win-back motion recover 15-30% of churned revenue within two quarters.",
	},
	"Cart Abandonment": {
		Summary:      "Buyers are arriving with intent and leaving before paying. Each abandoned checkout is demand you already paid to create.",
		WhyItMatters: "Abandonment losses scale with traffic, so every dollar spent on acquisition amplifies the leak. Fixing checkout converts existing spend instead of requiring new spend.",
		FirstMove:    "Instrument the checkout funnel step by step and find the single largest drop. Shipping-cost surprise and forced account creation are the two most common culprits.",
		Benchmark:    "A recovery email sequence alone typically reclaims 8-12% of abandoned carts; best-in-class flows reach 20%.",
	},
	"Lead Follow-Up": {
		Summary:      "Inbound interest is going cold before anyone responds. Speed-to-lead is the cheapest conversion lever in the building and it is currently being left on the table.",
		WhyItMatters: "Contacting a lead inside five minutes makes a qualified conversation dramatically more likely than waiting even half an hour. After a day, most leads have mentally moved on or bought elsewhere.",
		FirstMove:    "Measure current median response time, then put a single owner and a hard SLA on first touch. Automated acknowledgment plus a human follow-up inside one business hour is achievable for almost any team.",
		Benchmark:    "Teams with a sub-hour first-touch SLA convert roughly twice as many inbound leads as teams responding next-day.",
	},
	"Marketing Inefficiency": {
		Summary:      "Spend is flowing to channels and campaigns that have never been held to a payback standard. Some of the budget is building the business; a measurable slice is just burning.",
		WhyItMatters: "Inefficient spend hurts twice: the wasted dollars themselves, and the better-performing channels starved to fund them.",
		FirstMove:    "Rank every active channel by blended cost per acquired customer over the trailing quarter. Pause the bottom 20% of spend for one cycle and watch what actually changes.",
		Benchmark:    "Peers who review channel-level payback monthly typically run 25-40% lower acquisition costs than those who review annually.",
	},
	"Operational Waste": {
		Summary:      "Hours and materials are being consumed by rework, idle time, and processes that exist only because nobody has retired them.",
		WhyItMatters: "Operational waste is margin you already earned and then gave back. Unlike growth initiatives, eliminating it requires no new customers and carries no market risk.",
		FirstMove:    "Have each team lead log one week of interruptions, rework, and waiting. The combined log almost always surfaces a top-three list worth multiple points of margin.",
		Benchmark:    "Businesses that run a quarterly waste review sustain 10-15% lower operating cost per revenue dollar than peers.",
	},
	"Inventory & Fulfillment": {
		Summary:      "Capital is sitting in stock that does not turn, while fulfillment errors quietly generate refunds, reships, and support load.",
		WhyItMatters: "Dead inventory is cash you cannot deploy, and every mis-shipped order costs two to three times its shipping fee once labor and goodwill are counted.",
		FirstMove:    "Flag every SKU that has not turned in ninety days and decide its fate this month: promote, bundle, or liquidate. Then trace your five most recent fulfillment errors to their process step.",
		Benchmark:    "Top-quartile operators turn inventory 30% faster and hold fulfillment error rates under 0.5% of orders.",
	},
	"Billing & Collections": {
		Summary:      "Work is being delivered that never becomes cash: unbilled items, aging receivables, and failed payment retries that nobody chases.",
		WhyItMatters: "Revenue you cannot collect is cost you already incurred. Receivables drifting past sixty days lose a measurable share of their face value for good.",
		FirstMove:    "Reconcile delivered-versus-billed for the last quarter, then put automated dunning on every failed payment. Both are days of work, not months.",
		Benchmark:    "Automated retry and dunning flows recover 40-70% of involuntary payment failures for comparable businesses.",
	},
	"Underutilized Capacity": {
		Summary:      "Fixed costs - people, equipment, space, licenses - are being paid for at full price and used at partial throughput.",
		WhyItMatters: "Capacity you have already bought is the cheapest growth available. Filling it adds revenue at near-zero marginal cost, which is why utilization gaps hit profit so hard.",
		FirstMove:    "Compute utilization for your three largest fixed costs. Anything under 70% deserves either a demand-generation plan or a smaller footprint.",
		Benchmark:    "Peers running above 80% utilization on core capacity convert roughly 1.5x more of each revenue dollar into profit.",
	},
	"Customer Acquisition Cost": {
		Summary:      "The cost of winning each new customer has crept above what the relationship reliably pays back, and the gap is being financed out of margin.",
		WhyItMatters: "When payback stretches past a year, growth consumes cash instead of generating it. Scaling an underwater acquisition motion makes the problem bigger, not better.",
		FirstMove:    "Compute true blended CAC including labor and tooling, then compare it with twelve-month gross profit per customer. Set a ceiling and hold every channel to it.",
		Benchmark:    "Healthy operators in your bracket keep CAC payback under twelve months; the best are under six.",
	},
}

// NarrativeFor returns the narrative for a category, falling back to the
// generic entry for categories the table does not know.
func NarrativeFor(category string) Narrative {
	if n, ok := narratives[category]; ok {
		return n
	}
	return fallbackNarrative
}
