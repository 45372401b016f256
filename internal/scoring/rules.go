package scoring

// textRule is one row of an ordered keyword classifier. Rules are evaluated
// first-match-wins; the final row of each table has no keywords and acts as
// the fallback.
type textRule struct {
	tier      string
	keywords  []string
	base      int
	rationale string
}

// painRules classify the pain field into acute/moderate/mild demand tiers.
var painRules = []textRule{
	{
		tier:      "acute",
		keywords:  []string{"manual", "fragmented", "expensive", "costly", "waste", "inefficient"},
		base:      26,
		rationale: "Acute pain with clear cost signals strong demand",
	},
	{
		tier:      "moderate",
		keywords:  []string{"time", "complex", "struggle", "lack", "burnout", "stress", "slow"},
		base:      22,
		rationale: "Moderate demand for time-consuming or stressful tasks",
	},
	{
		tier:      "mild",
		base:      16,
		rationale: "Lower demand for less acute problems",
	},
}

// icpReachRules classify the ICP field by how reachable the audience is.
var icpReachRules = []textRule{
	{
		tier:      "reachable",
		keywords:  []string{"smb", "small", "startup", "developer", "marketing", "agency", "podcaster"},
		base:      17,
		rationale: "Audience is well defined and reachable via common channels",
	},
	{
		tier: "niche",
		keywords: []string{
			"freelancer", "creator", "service provider", "sales", "restaurant",
			"cafe", "local business", "landlord", "real estate", "contractor",
			"msp", "lawyer", "attorney", "legal", "accountant", "tax",
			"bookkeeper", "shopify", "etsy", "airbnb", "host", "event",
			"wedding", "volunteer", "church", "nonprofit", "influencer",
			"affiliate",
		},
		base:      15,
		rationale: "Niche audience reachable through targeted outreach",
	},
	{
		tier: "specialized",
		keywords: []string{
			"lab", "clinical", "construction", "manufactur", "compliance",
			"esg", "digital twin",
		},
		base:      13,
		rationale: "Specialized audience with harder acquisition channels",
	},
	{
		tier:      "unclear",
		base:      11,
		rationale: "Audience is broad or unclear",
	},
}

// complexityRules classify the solution field by build difficulty. The score
// is inverted: harder builds earn lower values.
var complexityRules = []textRule{
	{
		tier: "high",
		keywords: []string{
			"autonomous ai", "digital twin", "generative design",
			"internal tool builder", "script generator", "smart contract",
			"esg", "compliance",
		},
		base:      11,
		rationale: "Sophisticated technology or multi-system integration raises build complexity",
	},
	{
		tier: "moderate",
		keywords: []string{
			"ai", "predict", "automat", "analytics", "workflow", "dashboard",
			"assistant",
		},
		base:      14,
		rationale: "AI or integration components add some complexity to the MVP",
	},
	{
		tier:      "low",
		base:      17,
		rationale: "Relatively simple automation keeps the MVP small",
	},
}

// marketRules classify the ICP field by competitive breadth.
var marketRules = []textRule{
	{
		tier: "broad",
		keywords: []string{
			"smb", "small", "marketing", "sales", "content creator",
			"developer", "agency",
		},
		base:      14,
		rationale: "Broad addressable market likely has many competitors",
	},
	{
		tier: "niche",
		keywords: []string{
			"construction", "clinical", "compliance", "esg", "digital twin",
			"internal tool", "script generator", "podcast", "restaurant",
			"inventory",
		},
		base:      17,
		rationale: "Vertical or specialized market reduces direct competition",
	},
	{
		tier:      "unclear",
		base:      12,
		rationale: "Market breadth unclear; assume higher competitive risk",
	},
}
