package roster

import "fmt"

// Catalog indexes templates by ID.
//
// Invariant: each template ID appears at most once.
type Catalog struct {
	templates map[string]*Template
}

// NewCatalog builds a Catalog from templates.
//
// Postcondition: returns an error on duplicate template IDs.
func NewCatalog(templates []*Template) (*Catalog, error) {
	c := &Catalog{templates: make(map[string]*Template, len(templates))}
	for _, t := range templates {
		if _, dup := c.templates[t.ID]; dup {
			return nil, fmt.Errorf("roster catalog: duplicate template id %q", t.ID)
		}
		c.templates[t.ID] = t
	}
	return c, nil
}

// Template returns the template registered under id, or false if not found.
func (c *Catalog) Template(id string) (*Template, bool) {
	t, ok := c.templates[id]
	return t, ok
}

// Len returns the number of templates.
func (c *Catalog) Len() int { return len(c.templates) }
