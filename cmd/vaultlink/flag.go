package main

import "strings"

// multiString collects the values of a flag that may be given more than
// once, e.g. -file a.md -file b.md.
type multiString []string

func (m *multiString) String() string { return strings.Join(*m, ", ") }

func (m *multiString) Set(v string) error {
	*m = append(*m, v)
	return nil
}
