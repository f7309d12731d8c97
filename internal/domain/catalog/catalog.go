package catalog

import (
	"sort"

	"checkout-fulfillment/internal/pkg/errs"
)

// Catalog is immutable after construction and safe to share between goroutines.
type Catalog struct {
	entries map[Kind]Entry
}

func New(entries ...Entry) (*Catalog, error) {
	m := make(map[Kind]Entry, len(entries))
	for _, e := range entries {
		if _, dup := m[e.Kind()]; dup {
			return nil, errs.Newf("duplicate catalog entry %q", e.Kind())
		}
		m[e.Kind()] = e
	}
	return &Catalog{entries: m}, nil
}

func NewDefaultCatalog() (*Catalog, error) {
	mentoring, err := NewEntry(KindMentoring, 29900, "mxn", "Sesión de mentoría 1:1", "Sesión de mentoría de 60 minutos")
	if err != nil {
		return nil, err
	}
	course, err := NewEntry(KindCourse, 49900, "mxn", "Acceso a curso", "Acceso completo al curso")
	if err != nil {
		return nil, err
	}
	return New(mentoring, course)
}

func (c *Catalog) Resolve(kind Kind) (Entry, error) {
	e, ok := c.entries[kind]
	if !ok {
		return Entry{}, errs.Mark(errs.Newf("kind %q is not in the catalog", kind), errs.ErrUnknownProduct)
	}
	return e, nil
}

func (c *Catalog) Kinds() []Kind {
	kinds := make([]Kind, 0, len(c.entries))
	for k := range c.entries {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}
