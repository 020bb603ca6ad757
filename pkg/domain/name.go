package domain

import "strings"

// CompositeName is the hierarchical name of a store inside naming scopes.
type CompositeName struct {
	Path      []string
	ShortName string
	FullName  string
}

// NewCompositeName nests name under parent. A nil parent starts a new root.
func NewCompositeName(parent *CompositeName, name string) *CompositeName {
	var path []string
	if parent != nil {
		path = append(path, parent.Path...)
	}
	path = append(path, name)
	return &CompositeName{
		Path:      path,
		ShortName: name,
		FullName:  strings.Join(path, "/"),
	}
}
