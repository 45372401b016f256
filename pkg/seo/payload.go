package seo

import (
	"fmt"

	"github.com/rotisserie/eris"
)

var errMalformedPayload = eris.New("seo: response payload missing metrics")

type statusError struct {
	code int
}

func (e *statusError) Error() string {
	return fmt.Sprintf("seo: unexpected status %d", e.code)
}

// parsePayload extracts metrics from API responses with flexible structure:
// snake_case or camelCase keys, either at the top level or nested under
// "data", "result", or "results" (object or first element of a list).
func parsePayload(payload any) (Metrics, bool) {
	obj, ok := payload.(map[string]any)
	if !ok {
		return Metrics{}, false
	}

	if m, ok := extractMetrics(obj); ok {
		return m, true
	}

	for _, key := range []string{"data", "result", "results"} {
		switch nested := obj[key].(type) {
		case map[string]any:
			if m, ok := extractMetrics(nested); ok {
				return m, true
			}
		case []any:
			if len(nested) > 0 {
				if inner, ok := nested[0].(map[string]any); ok {
					if m, ok := extractMetrics(inner); ok {
						return m, true
					}
				}
			}
		}
	}
	return Metrics{}, false
}

func extractMetrics(obj map[string]any) (Metrics, bool) {
	volume, volumeOK := numberField(obj, "search_volume", "searchVolume")
	difficulty, difficultyOK := numberField(obj, "keyword_difficulty", "keywordDifficulty", "difficulty")
	trend, trendOK := stringField(obj, "trend_direction", "trendDirection", "trend")
	if !volumeOK || !difficultyOK || !trendOK {
		return Metrics{}, false
	}

	source, _ := stringField(obj, "source")
	return Metrics{
		SearchVolume:      int(volume),
		KeywordDifficulty: difficulty,
		TrendDirection:    trend,
		Source:            source,
	}, true
}

func numberField(obj map[string]any, keys ...string) (float64, bool) {
	for _, key := range keys {
		if v, ok := obj[key].(float64); ok {
			return v, true
		}
	}
	return 0, false
}

func stringField(obj map[string]any, keys ...string) (string, bool) {
	for _, key := range keys {
		if v, ok := obj[key].(string); ok && v != "" {
			return v, true
		}
	}
	return "", false
}
