package query

import (
	"regexp"
	"sync"
)

// Placeholder is a name a query may reference.
type Placeholder int

const (
	IPVersion Placeholder = iota
	Type
	Prefix
	Group
	Groups
	Hosts
)

// Placeholders lists every placeholder in binding order.
var Placeholders = []Placeholder{IPVersion, Type, Prefix, Group, Groups, Hosts}

// Name returns the identifier used in queries.
func (p Placeholder) Name() string {
	switch p {
	case IPVersion:
		return "ip_version"
	case Type:
		return "type"
	case Prefix:
		return "prefix"
	case Group:
		return "group"
	case Groups:
		return "groups"
	case Hosts:
		return "hosts"
	}
	return ""
}

func (p Placeholder) String() string {
	return p.Name()
}

// NeedsConfiguration reports whether resolving p consults the groups.
func (p Placeholder) NeedsConfiguration() bool {
	return p == Group || p == Groups
}

var patterns = sync.OnceValue(func() map[Placeholder]*regexp.Regexp {
	m := make(map[Placeholder]*regexp.Regexp, len(Placeholders))
	for _, p := range Placeholders {
		m[p] = regexp.MustCompile(`\b` + regexp.QuoteMeta(p.Name()) + `\b`)
	}
	return m
})

// Requested returns the placeholders query mentions as whole words.
func Requested(query string) []Placeholder {
	table := patterns()
	var out []Placeholder
	for _, p := range Placeholders {
		if table[p].MatchString(query) {
			out = append(out, p)
		}
	}
	return out
}
