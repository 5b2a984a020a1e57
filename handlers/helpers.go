package handlers

import "encoding/json"

// marshalStrings renders a string slice as the JSON text stored in array-ish
// columns. nil becomes "[]" so the column never holds SQL NULL or "null".
func marshalStrings(ss []string) string {
	if ss == nil {
		ss = []string{}
	}
	data, _ := json.Marshal(ss)
	return string(data)
}

func unmarshalStrings(s string) []string {
	var ss []string
	if s != "" {
		_ = json.Unmarshal([]byte(s), &ss)
	}
	return ss
}
