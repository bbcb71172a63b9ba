package classify

// domainInfo carries the display name and matching vocabulary of one
// industry domain.
type domainInfo struct {
	Name     string
	Keywords []string
}

// domains is the classification vocabulary. Keyword hits are counted
// per domain and the highest-scoring one wins.
var domains = map[string]domainInfo{
	"manufacturing": {
		Name: "Manufacturing & Industrials",
		Keywords: []string{
			"manufacturing", "production", "plant", "facility", "industrial",
			"oem", "b2b", "fabrication", "assembly", "machining", "factory",
			"electronics", "components", "hardware",
		},
	},
	"technology": {
		Name: "Technology & IT Services",
		Keywords: []string{
			"software", "saas", "platform", "cloud", "digital", "ai", "ml",
			"development", "consulting", "integration", "it services", "tech",
			"data", "analytics", "erp", "crm",
		},
	},
	"logistics": {
		Name: "Logistics & Supply Chain",
		Keywords: []string{
			"logistics", "supply chain", "warehousing", "transportation",
			"distribution", "freight", "3pl", "last mile", "express",
			"delivery", "shipping", "cargo", "courier",
		},
	},
	"consumer": {
		Name: "Consumer & Retail",
		Keywords: []string{
			"brand", "consumer", "d2c", "e-commerce", "retail", "wellness",
			"fmcg", "marketplace", "lifestyle", "personal care", "food",
			"beverage", "fashion", "beauty",
		},
	},
	"healthcare": {
		Name: "Healthcare & Pharma",
		Keywords: []string{
			"pharma", "pharmaceutical", "healthcare", "medical", "biotech",
			"diagnostics", "hospital", "therapeutic", "formulation", "drug",
			"medicine", "clinical", "generic",
		},
	},
	"infrastructure": {
		Name: "Infrastructure & Real Estate",
		Keywords: []string{
			"construction", "infrastructure", "real estate", "developer",
			"epc", "contractor", "builder", "roads", "bridges", "housing",
			"commercial",
		},
	},
	"chemicals": {
		Name: "Chemicals & Materials",
		Keywords: []string{
			"chemical", "polymer", "resin", "specialty", "additive",
			"coating", "petrochemical", "paints", "adhesives",
		},
	},
	"automotive": {
		Name: "Automotive & Components",
		Keywords: []string{
			"automotive", "auto components", "forging", "casting", "tier-1",
			"aftermarket", "vehicle", "car", "truck", "two-wheeler",
			"engine", "transmission",
		},
	},
}

// hintMappings resolves free-form domain hints that do not name a
// domain key directly.
var hintMappings = map[string]string{
	"it services": "technology",
	"d2c":         "consumer",
	"pharma":      "healthcare",
	"real estate": "infrastructure",
}

// DomainName returns the display name for a domain key, or the key
// itself when unknown.
func DomainName(key string) string {
	if info, ok := domains[key]; ok {
		return info.Name
	}
	return key
}
