package model

import (
	"encoding/json"
	"os"
	"sort"
	"strings"

	"github.com/rotisserie/eris"
)

// rawIdea mirrors Idea but defers key_risks decoding so a bare string can be
// reported as a shape error instead of a generic unmarshal failure.
type rawIdea struct {
	Title        string          `json:"title"`
	ICP          string          `json:"icp"`
	Pain         string          `json:"pain"`
	Solution     string          `json:"solution"`
	RevenueModel string          `json:"revenue_model"`
	KeyRisks     json.RawMessage `json:"key_risks"`
	Credibility  string          `json:"credibility"`
	Source       string          `json:"source"`
	SourceDate   string          `json:"source_date"`

	SearchVolume      *int     `json:"search_volume"`
	KeywordDifficulty *float64 `json:"keyword_difficulty"`
	TrendStatus       string   `json:"trend_status"`
}

// LoadDataset reads a JSON array of idea objects from path. Validation is
// strict: a partially valid dataset is rejected, and errors name the
// offending index and fields.
func LoadDataset(path string) ([]Idea, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "dataset: read %s", path)
	}
	return ParseDataset(data)
}

// ParseDataset validates and decodes a JSON idea array.
func ParseDataset(data []byte) ([]Idea, error) {
	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, eris.Wrap(err, "dataset: file must contain a JSON array of ideas")
	}

	ideas := make([]Idea, 0, len(items))
	for idx, item := range items {
		var raw rawIdea
		if err := json.Unmarshal(item, &raw); err != nil {
			return nil, eris.Wrapf(err, "dataset: item at index %d is not an object", idx)
		}

		missing := missingFields(raw)
		if len(missing) > 0 {
			return nil, eris.Errorf("dataset: idea at index %d is missing required fields: %s",
				idx, strings.Join(missing, ", "))
		}

		var risks []string
		if err := json.Unmarshal(raw.KeyRisks, &risks); err != nil {
			return nil, eris.Errorf("dataset: key_risks at index %d must be an array of strings", idx)
		}

		ideas = append(ideas, Idea{
			Title:             raw.Title,
			ICP:               raw.ICP,
			Pain:              raw.Pain,
			Solution:          raw.Solution,
			RevenueModel:      raw.RevenueModel,
			KeyRisks:          risks,
			Credibility:       ParseCredibility(raw.Credibility),
			Source:            raw.Source,
			SourceDate:        raw.SourceDate,
			SearchVolume:      raw.SearchVolume,
			KeywordDifficulty: raw.KeywordDifficulty,
			TrendStatus:       raw.TrendStatus,
		})
	}
	return ideas, nil
}

func missingFields(raw rawIdea) []string {
	var missing []string
	if strings.TrimSpace(raw.Title) == "" {
		missing = append(missing, "title")
	}
	if strings.TrimSpace(raw.ICP) == "" {
		missing = append(missing, "icp")
	}
	if strings.TrimSpace(raw.Pain) == "" {
		missing = append(missing, "pain")
	}
	if strings.TrimSpace(raw.Solution) == "" {
		missing = append(missing, "solution")
	}
	if strings.TrimSpace(raw.RevenueModel) == "" {
		missing = append(missing, "revenue_model")
	}
	if len(raw.KeyRisks) == 0 || string(raw.KeyRisks) == "null" {
		missing = append(missing, "key_risks")
	}
	sort.Strings(missing)
	return missing
}

// DefaultDataset returns the built-in sample ideas used when no dataset file
// is supplied.
func DefaultDataset() []Idea {
	return []Idea{
		{
			Title:        "AI-first bookkeeping for SMBs",
			ICP:          "Small and medium-sized businesses (SMBs)",
			Pain:         "Manual bookkeeping and costly accountants",
			Solution:     "Fully autonomous AI that connects to QuickBooks/Xero and reconciles accounts automatically",
			RevenueModel: "$49–149/month subscription",
			KeyRisks: []string{
				"Regulatory and compliance requirements for financial data",
				"Convincing SMB owners to trust AI with sensitive accounting",
			},
			Credibility: CredibilityMedium,
		},
		{
			Title:        "AI SaaS for clinical trial management",
			ICP:          "Research labs and clinical trial coordinators",
			Pain:         "Recruiting, scheduling and compliance remain fragmented and costly",
			Solution:     "Micro-SaaS that manages trial logistics with AI scheduling and automated compliance checks",
			RevenueModel: "$500–2,000/month per lab",
			KeyRisks: []string{
				"Requires domain expertise and regulatory approval",
				"Smaller market compared to SMB SaaS, making acquisition harder",
			},
			Credibility: CredibilityMedium,
		},
		{
			Title:        "Generative design SaaS for product engineers",
			ICP:          "Product engineers and hardware startups",
			Pain:         "Traditional 3D design is time-consuming and expensive",
			Solution:     "AI-powered SaaS that generates product blueprints and CAD files from natural language prompts",
			RevenueModel: "$99–399/month",
			KeyRisks: []string{
				"Requires sophisticated generative AI models",
				"Competition from established CAD providers",
			},
			Credibility: CredibilityMedium,
		},
		{
			Title:        "ESG compliance SaaS for SMBs",
			ICP:          "Small and mid-sized companies needing sustainability reporting",
			Pain:         "SMBs lack resources for ESG reporting and benchmarking",
			Solution:     "SaaS that automates ESG data collection, reporting and benchmarking",
			RevenueModel: "$200–500/month per company",
			KeyRisks: []string{
				"Market awareness of ESG among SMBs is still nascent",
				"Potential regulatory changes could alter requirements",
			},
			Credibility: CredibilityMedium,
		},
		{
			Title:        "Digital twins for construction contractors",
			ICP:          "Small and mid-sized construction contractors",
			Pain:         "Construction errors and delays are extremely costly",
			Solution:     "SaaS that creates lightweight digital twins for buildings enabling error detection and cost savings",
			RevenueModel: "$299–999/month",
			KeyRisks: []string{
				"High complexity to build accurate digital twins",
				"Resistance from contractors to adopt new technology",
			},
			Credibility: CredibilityMedium,
		},
	}
}
