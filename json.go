package coll

import "encoding/json"

var (
	jsonMarshal   func(v any) ([]byte, error)
	jsonUnmarshal func(data []byte, v any) error
)

// SetDefaultJSONMarshal sets the default JSON serialization and deserialization functions.
// If not set, the standard library is used by default.
func SetDefaultJSONMarshal(marshal func(v any) ([]byte, error), unmarshal func(data []byte, v any) error) {
	jsonMarshal, jsonUnmarshal = marshal, unmarshal
}

func marshalJSON(v any) ([]byte, error) {
	if jsonMarshal != nil {
		return jsonMarshal(v)
	}
	return json.Marshal(v)
}

func unmarshalJSON(data []byte, v any) error {
	if jsonUnmarshal != nil {
		return jsonUnmarshal(data, v)
	}
	return json.Unmarshal(data, v)
}
