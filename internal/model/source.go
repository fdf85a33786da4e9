package model

import "fmt"

// Path represents a file system path.
type Path string

// Site is the source location an instrumented call was made from.
type Site struct {
	File string `yaml:"file"`
	Line int    `yaml:"line"`
}

func (s Site) String() string {
	if s.File == "" {
		return "<unknown>"
	}

	return fmt.Sprintf("%s:%d", s.File, s.Line)
}

// IsZero reports whether the site carries no location.
func (s Site) IsZero() bool {
	return s.File == "" && s.Line == 0
}
