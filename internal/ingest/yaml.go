package ingest

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/heartmarshall/myenglish-study/internal/domain"
)

// ParseYAML accepts the same shapes and key aliases as ParseJSON.
func ParseYAML(content string) []domain.Sentence {
	var doc any
	if err := yaml.Unmarshal([]byte(content), &doc); err != nil {
		return nil
	}
	return parseYAMLValue(doc)
}

func parseYAMLValue(v any) []domain.Sentence {
	switch val := v.(type) {
	case []any:
		var out []domain.Sentence
		for _, item := range val {
			obj, ok := item.(map[string]any)
			if !ok {
				continue
			}
			s := domain.Sentence{
				English:  firstYAMLField(obj, englishKeys),
				Japanese: firstYAMLField(obj, japaneseKeys),
				Grammar:  firstYAMLField(obj, grammarKeys),
			}
			if s.English != "" {
				out = append(out, s)
			}
		}
		return out
	case map[string]any:
		if inner, ok := val[wrapperKey]; ok {
			return parseYAMLValue(inner)
		}
	}
	return nil
}

func firstYAMLField(obj map[string]any, keys []string) string {
	for _, k := range keys {
		v, ok := obj[k]
		if !ok {
			continue
		}
		if v == nil {
			return ""
		}
		if s, ok := v.(string); ok {
			return strings.TrimSpace(s)
		}
		return strings.TrimSpace(fmt.Sprint(v))
	}
	return ""
}
