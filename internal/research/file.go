package research

import (
	"bufio"
	"context"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/sells-group/opportunity-cli/internal/model"
)

// FileSource loads ideas from local files. YAML files carry a list of
// fully structured ideas; plain text files are scanned for bullet lines
// of the form "Title - pain. solution. $price". Unreadable or malformed
// files contribute nothing.
type FileSource struct {
	Paths []string
}

type yamlIdea struct {
	Title        string   `yaml:"title"`
	ICP          string   `yaml:"icp"`
	Pain         string   `yaml:"pain"`
	Solution     string   `yaml:"solution"`
	RevenueModel string   `yaml:"revenue_model"`
	KeyRisks     []string `yaml:"key_risks"`
	Source       string   `yaml:"source"`
	SourceDate   string   `yaml:"source_date"`
	Credibility  string   `yaml:"credibility"`
}

// Search parses every configured file and returns the combined ideas.
func (s FileSource) Search(_ context.Context, _ string) []model.Idea {
	var ideas []model.Idea
	for _, path := range s.Paths {
		parsed, err := loadIdeaFile(path)
		if err != nil {
			zap.L().Warn("skipping unreadable source file",
				zap.String("path", path), zap.Error(err))
			continue
		}
		ideas = append(ideas, parsed...)
	}
	return ideas
}

func loadIdeaFile(path string) ([]model.Idea, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".yaml" || ext == ".yml" {
		return loadYAMLFile(path)
	}
	return loadBulletFile(path)
}

func loadYAMLFile(path string) ([]model.Idea, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var entries []yamlIdea
	if err := yaml.Unmarshal(raw, &entries); err != nil {
		return nil, err
	}

	origin := filepath.Base(path)
	ideas := make([]model.Idea, 0, len(entries))
	for _, e := range entries {
		if strings.TrimSpace(e.Title) == "" {
			continue
		}
		idea := model.Idea{
			Title:        e.Title,
			ICP:          e.ICP,
			Pain:         e.Pain,
			Solution:     e.Solution,
			RevenueModel: e.RevenueModel,
			KeyRisks:     e.KeyRisks,
			Source:       e.Source,
			SourceDate:   e.SourceDate,
			Credibility:  model.ParseCredibility(e.Credibility),
		}
		if idea.Source == "" {
			idea.Source = origin
		}
		ideas = append(ideas, Normalize(idea))
	}
	return ideas, nil
}

func loadBulletFile(path string) ([]model.Idea, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close() //nolint:errcheck

	origin := filepath.Base(path)
	var ideas []model.Idea
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if !strings.HasPrefix(line, "-") && !strings.HasPrefix(line, "*") && !strings.HasPrefix(line, "•") {
			continue
		}
		idea, ok := ParseBulletLine(line)
		if !ok {
			continue
		}
		idea.Source = origin
		ideas = append(ideas, Normalize(idea))
	}
	return ideas, scanner.Err()
}

var (
	bulletSepRe   = regexp.MustCompile(`[\x{2013}-]|:`)
	bulletPriceRe = regexp.MustCompile(`\$[0-9][0-9,]*(?:\s*[\x{2013}\x{2014}-]\s*\$?[0-9][0-9,]*)?(?:/\w+)?`)
)

// ParseBulletLine extracts an idea from a bullet line shaped like
// "Title - pain description. Solution description. $49/month". It
// reports false when the line does not carry a recognizable idea.
func ParseBulletLine(line string) (model.Idea, bool) {
	text := strings.TrimLeft(strings.TrimSpace(line), "-*• ")
	if len(text) < 10 {
		return model.Idea{}, false
	}

	loc := bulletSepRe.FindStringIndex(text)
	if loc == nil {
		return model.Idea{}, false
	}
	title := strings.TrimSpace(text[:loc[0]])
	remainder := strings.TrimSpace(text[loc[1]:])
	if title == "" {
		return model.Idea{}, false
	}

	var clauses []string
	for _, clause := range strings.FieldsFunc(remainder, func(r rune) bool {
		return r == '.' || r == ';'
	}) {
		if c := strings.TrimSpace(clause); c != "" {
			clauses = append(clauses, c)
		}
	}
	if len(clauses) == 0 {
		return model.Idea{}, false
	}

	idea := model.Idea{
		Title:       title,
		Pain:        clauses[0],
		Credibility: model.CredibilityMedium,
	}
	if len(clauses) > 1 {
		idea.Solution = clauses[1]
	}
	if price := bulletPriceRe.FindString(line); price != "" {
		idea.RevenueModel = price
	}
	return idea, true
}
