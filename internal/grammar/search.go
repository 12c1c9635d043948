package grammar

import "strings"

// Match locates a subsection inside the parsed parts.
type Match struct {
	Part int
	Sub  int
}

// Search returns the subsections whose title or body contains query,
// case-insensitively. An empty query matches every subsection.
func Search(parts []Part, query string) []Match {
	q := strings.ToLower(strings.TrimSpace(query))
	var out []Match
	for pi, p := range parts {
		for si, s := range p.Subs {
			if q == "" || strings.Contains(strings.ToLower(s.Text()), q) {
				out = append(out, Match{Part: pi, Sub: si})
			}
		}
	}
	return out
}
