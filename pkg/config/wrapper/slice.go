package wrapper

import (
	"strings"

	"github.com/spf13/cast"
)

func toStringSliceE(v interface{}) ([]string, error) {
	if s, ok := v.(string); ok {
		var values []string
		for _, part := range strings.Split(s, ",") {
			part = strings.TrimSpace(part)
			if len(part) > 0 {
				values = append(values, part)
			}
		}
		return values, nil
	}
	return cast.ToStringSliceE(v)
}
