package models

import (
	"fmt"
	"strings"
)

// AttributeMeta describes how a zone attribute is presented
type AttributeMeta struct {
	Name string `json:"name"` // display name
	Unit string `json:"unit"`
}

// AttributeCatalog maps known attribute columns to display metadata.
// Unknown numeric columns fall back to title-cased column names.
var AttributeCatalog = map[string]AttributeMeta{
	"POP_2024":    {Name: "Population 2024", Unit: "people"},
	"Emp 2024":    {Name: "Jobs", Unit: "jobs"},
	"HEALTH_BLDG": {Name: "Healthcare Facilities", Unit: "facilities"},
	"HLT_BLDG":    {Name: "Healthcare Buildings", Unit: "facilities"},
	"EDU_PRIM":    {Name: "Primary Schools", Unit: "schools"},
	"EDU_SEC":     {Name: "Secondary Schools", Unit: "schools"},
	"EDU":         {Name: "Education Facilities", Unit: "facilities"},
}

// DisplayName returns the catalog name for an attribute, or a title-cased
// fallback derived from the column name
func DisplayName(attribute string) string {
	if meta, ok := AttributeCatalog[attribute]; ok {
		return fmt.Sprintf("%s (%s)", meta.Name, meta.Unit)
	}
	words := strings.Fields(strings.ReplaceAll(attribute, "_", " "))
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + strings.ToLower(w[1:])
	}
	return strings.Join(words, " ")
}

// FormatAttributeValue renders a value with thousands separators for
// tooltips and legend labels
func FormatAttributeValue(value float64) string {
	return groupThousands(fmt.Sprintf("%.0f", value))
}

func groupThousands(s string) string {
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	var b strings.Builder
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	if neg {
		return "-" + b.String()
	}
	return b.String()
}
