package cash

import "encoding/json"

func jsonUnmarshal(raw string, dest interface{}) error {
	return json.Unmarshal([]byte(raw), dest)
}
