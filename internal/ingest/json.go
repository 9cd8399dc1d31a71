package ingest

import (
	"strings"

	"github.com/tidwall/gjson"

	"github.com/heartmarshall/myenglish-study/internal/domain"
)

// ParseJSON parses a JSON array of sentence objects, or an object wrapping
// such an array under "sentences". Values of any JSON type are coerced to
// text. Invalid JSON yields an empty list.
func ParseJSON(content string) []domain.Sentence {
	if !gjson.Valid(content) {
		return nil
	}
	return parseJSONValue(gjson.Parse(content))
}

func parseJSONValue(v gjson.Result) []domain.Sentence {
	switch {
	case v.IsArray():
		var out []domain.Sentence
		v.ForEach(func(_, item gjson.Result) bool {
			if !item.IsObject() {
				return true
			}
			s := domain.Sentence{
				English:  firstJSONField(item, englishKeys),
				Japanese: firstJSONField(item, japaneseKeys),
				Grammar:  firstJSONField(item, grammarKeys),
			}
			if s.English != "" {
				out = append(out, s)
			}
			return true
		})
		return out
	case v.IsObject():
		if inner := jsonField(v, wrapperKey); inner.Exists() {
			return parseJSONValue(inner)
		}
	}
	return nil
}

func firstJSONField(obj gjson.Result, keys []string) string {
	for _, k := range keys {
		if f := jsonField(obj, k); f.Exists() {
			return strings.TrimSpace(f.String())
		}
	}
	return ""
}

// jsonField looks up a literal key without interpreting gjson path syntax.
func jsonField(obj gjson.Result, key string) gjson.Result {
	var found gjson.Result
	obj.ForEach(func(k, v gjson.Result) bool {
		if k.String() == key {
			found = v
			return false
		}
		return true
	})
	return found
}
