package output

import (
	"encoding/json"

	"github.com/rgehrsitz/rmgo/internal/domain"
)

// JSONFormatter emits the dashboard as JSON.
type JSONFormatter struct {
	Pretty bool
}

func (j JSONFormatter) Name() string { return "json" }

func (j JSONFormatter) Format(d *domain.Dashboard) ([]byte, error) {
	if j.Pretty {
		return json.MarshalIndent(d, "", "  ")
	}
	return json.Marshal(d)
}
