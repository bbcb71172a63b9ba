package writer

// slideTitles holds the three slide titles per domain. The structure is
// fixed at three slides; only the framing varies by industry.
type slideTitles struct {
	Profile    string
	Financials string
	Highlights string
}

var defaultTitles = slideTitles{
	Profile:    "Business Profile & Capabilities",
	Financials: "Financial & Operational Performance",
	Highlights: "Investment Highlights",
}

var domainTitles = map[string]slideTitles{
	"manufacturing": {
		Profile:    "Infrastructure & Capabilities",
		Financials: "Financial Performance",
		Highlights: "Investment Highlights",
	},
	"technology": {
		Profile:    "Platform & Service Offerings",
		Financials: "Financial & Delivery Metrics",
		Highlights: "Investment Highlights",
	},
	"logistics": {
		Profile:    "Network & Service Capabilities",
		Financials: "Financial & Operational Performance",
		Highlights: "Investment Highlights",
	},
	"healthcare": {
		Profile:    "Therapeutic Portfolio & Capabilities",
		Financials: "Financial Performance",
		Highlights: "Investment Highlights",
	},
}

func titlesFor(domain string) slideTitles {
	if t, ok := domainTitles[domain]; ok {
		return t
	}
	return defaultTitles
}

// overviewSections are tried in order for the profile slide's opening
// paragraph; the first one present wins.
var overviewSections = []string{"business_description", "company_overview", "overview"}

var profileSections = []string{
	"products_services", "product_services",
	"application_areas_industries_served", "industries_served",
	"awards_and_certifications", "certifications",
}
