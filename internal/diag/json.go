package diag

import (
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// ToJSON renders errs as a JSON array of {line, column, kind, message}
// objects (location-less errors omit line/column), built incrementally with
// sjson rather than encoding/json so that adding a diagnostics field later
// doesn't require a struct-tag migration.
func ToJSON(errs []*Error) (string, error) {
	doc := "[]"
	var err error
	for i, e := range errs {
		doc, err = sjson.Set(doc, itoa(i)+".kind", e.Kind)
		if err != nil {
			return "", err
		}
		doc, err = sjson.Set(doc, itoa(i)+".message", e.Message)
		if err != nil {
			return "", err
		}
		if e.Loc != nil {
			doc, err = sjson.Set(doc, itoa(i)+".line", e.Loc.Line)
			if err != nil {
				return "", err
			}
			doc, err = sjson.Set(doc, itoa(i)+".column", e.Loc.Column)
			if err != nil {
				return "", err
			}
		}
	}
	return doc, nil
}

// FromJSON reconstructs the (kind, message, line, column) tuples of a
// ToJSON document, used by its round-trip test; it does not reconstruct
// *Error values since those are compiler-internal.
func FromJSON(doc string) []map[string]interface{} {
	var out []map[string]interface{}
	for _, item := range gjson.Parse(doc).Array() {
		m := map[string]interface{}{
			"kind":    item.Get("kind").String(),
			"message": item.Get("message").String(),
		}
		if item.Get("line").Exists() {
			m["line"] = item.Get("line").Int()
			m["column"] = item.Get("column").Int()
		}
		out = append(out, m)
	}
	return out
}

func itoa(i int) string {
	if i == 0 {
		return "0"
	}
	digits := []byte{}
	for i > 0 {
		digits = append([]byte{byte('0' + i%10)}, digits...)
		i /= 10
	}
	return string(digits)
}
