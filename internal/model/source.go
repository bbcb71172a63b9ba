package model

// Shareholder is one entry of the dossier's ownership table.
// Percent is guaranteed by the parser to lie in [0,100]; the sum across
// holders may miss 100 by rounding.
type Shareholder struct {
	Name    string  `json:"name"`
	Percent float64 `json:"percent"`
}

// SourceRecord is the normalized, per-run view of the company dossier plus
// whatever the scraper collected. Built once per run, read-only afterwards.
type SourceRecord struct {
	CompanyName string `json:"company_name"`
	Website     string `json:"website,omitempty"`
	DomainHint  string `json:"domain_hint,omitempty"` // sector stated in the dossier, if any

	// Financials maps metric name ("revenue", "ebitda", "pat_margin") to
	// fiscal-year → value. Values are numeric by parser contract.
	Financials map[string]map[int]float64 `json:"financials"`

	// TextSections maps normalized section name to free text
	// (business description, products, industries, SWOT, milestones).
	TextSections map[string]string `json:"text_sections"`

	Shareholders []Shareholder `json:"shareholders,omitempty"`

	// ScrapedPages maps page key ("homepage", "about", ...) to extracted
	// visible text. Empty when scraping was skipped or unavailable.
	ScrapedPages map[string]string `json:"scraped_pages,omitempty"`
}

// Slide is one unit of generated deck text, opaque to the claim extractor.
type Slide struct {
	ID    int    `json:"id"`
	Title string `json:"title"`
	Body  string `json:"body"`
}

// Classification is the domain classifier's output.
type Classification struct {
	Domain     string  `json:"domain"`
	Confidence float64 `json:"confidence"`
	Reasoning  string  `json:"reasoning,omitempty"`
}
