package catalog

// industries is the fixed set of industries the scoring service has
// benchmark tables for, in presentation order.
var industries = []string{
	"Beauty & Skincare",
	"Supplements & Nutraceuticals",
	"Fashion & Apparel",
	"Home & Garden",
	"Pet Products",
	"Food & Beverage",
	"Electronics & Tech Accessories",
	"Fitness & Wellness",
	"Baby & Kids",
	"Jewelry & Accessories",
	"Outdoor & Sports",
	"Automotive Accessories",
	"Arts & Crafts",
	"Personal Care (Salons/Spas)",
	"Subscription Boxes",
	"Consulting",
	"Tech Services",
	"Real Estate",
	"Business Services",
	"Education",
	"Marketing Services",
	"Recruiting",
	"Nonprofit",
	"Retail Consulting",
	"Health Tech",
	"Publishing",
	"Electronics & Tech (SaaS)",
	"Ecommerce Services",
	"Tech Consulting",
	"Personal Care (Dental)",
	"Business Advocacy",
	"Retail",
	"Default (Other SMBs)",
}

// Industries returns the selectable industry list in presentation order.
func Industries() []string {
	out := make([]string, len(industries))
	copy(out, industries)
	return out
}

// ValidIndustry reports whether name is one of the known industries.
func ValidIndustry(name string) bool {
	for _, ind := range industries {
		if ind == name {
			return true
		}
	}
	return false
}
