package research

import (
	"context"

	"github.com/sells-group/opportunity-cli/internal/model"
)

const curatedOrigin = "curated:upsilon-2025"

// CuratedSource returns a fixed set of ideas distilled from credible
// 2025 micro-SaaS trend articles. It serves as a floor for runs where
// no search key or source files are configured.
type CuratedSource struct{}

// Search returns the curated ideas regardless of theme.
func (CuratedSource) Search(_ context.Context, _ string) []model.Idea {
	ideas := []model.Idea{
		{
			Title:        "Candidate screening app",
			ICP:          "Recruiters and HR teams at small and medium businesses",
			Pain:         "Manual resume screening and shortlisting candidates consumes hours of recruiter time",
			Solution:     "AI-powered SaaS that parses resumes and ranks candidates by relevance and skills",
			RevenueModel: "$49-199/month per recruiter",
			KeyRisks: []string{
				"Requires accurate AI models and compliance with equal opportunity laws",
				"Risk of algorithmic bias impacting fairness",
			},
		},
		{
			Title:        "SEO keyword research assistant",
			ICP:          "Small marketing agencies and freelance marketers",
			Pain:         "Finding profitable long-tail keywords and assessing SEO difficulty is tedious",
			Solution:     "Tool that suggests keywords, analyzes competition and surfaces low-hanging SEO opportunities",
			RevenueModel: "$29-99/month subscription",
			KeyRisks: []string{
				"Crowded market with existing tools",
				"Requires up-to-date search engine data",
			},
		},
		{
			Title:        "Visual dashboard builder",
			ICP:          "Data analysts and small business owners",
			Pain:         "Non-technical users struggle to build dashboards from diverse data sources",
			Solution:     "Drag-and-drop SaaS that connects to spreadsheets and databases and auto-creates interactive dashboards",
			RevenueModel: "$59-199/month depending on seats",
			KeyRisks: []string{
				"Integration complexity with many data sources",
				"Competes with established BI platforms",
			},
		},
		{
			Title:        "Automated customer feedback annotation tool",
			ICP:          "Product managers and support teams",
			Pain:         "Large volumes of customer feedback are hard to categorize and act on",
			Solution:     "Micro-SaaS that uses NLP to tag and summarize feedback, highlighting top issues and feature requests",
			RevenueModel: "$49-149/month based on data volume",
			KeyRisks: []string{
				"NLP accuracy must be high to be useful",
				"Potential overlap with existing sentiment analysis platforms",
			},
		},
		{
			Title:        "AI detector for content origin",
			ICP:          "Educators, content platforms and hiring managers",
			Pain:         "It is difficult to verify whether essays, code samples or articles were generated by AI systems",
			Solution:     "SaaS that analyzes text and returns a likelihood score of AI authorship using models trained on synthetic vs. human data",
			RevenueModel: "$19-99/month per organization",
			KeyRisks: []string{
				"Rapidly evolving AI models may outpace detection algorithms",
				"Potential false positives impacting users",
			},
		},
	}

	for i := range ideas {
		ideas[i].Source = curatedOrigin
		ideas[i].SourceDate = "2025-01-01"
		ideas[i].Credibility = model.CredibilityHigh
		ideas[i] = Normalize(ideas[i])
	}
	return ideas
}
