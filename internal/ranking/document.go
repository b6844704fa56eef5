package ranking

import (
	"fmt"
	"sort"
	"strings"

	"github.com/openbasket/khoj/internal/models"
)

// BuildDocument assembles the searchable text blob for a product: title,
// description, and one "<key> <value>" pair per metadata entry whose value is
// non-nil and has a non-blank string form. Metadata keys are visited in
// sorted order; entry order only affects token positions, not scoring.
func BuildDocument(p *models.Product) string {
	parts := []string{p.Title, p.Description}
	if len(p.Metadata) > 0 {
		keys := make([]string, 0, len(p.Metadata))
		for k := range p.Metadata {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			v := p.Metadata[k]
			if v == nil {
				continue
			}
			s := fmt.Sprintf("%v", v)
			if strings.TrimSpace(s) == "" {
				continue
			}
			parts = append(parts, k+" "+s)
		}
	}
	return strings.Join(parts, " ")
}
