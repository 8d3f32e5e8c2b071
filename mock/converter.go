package mock

import "github.com/fwojciec/blogmirror"

var _ blogmirror.Converter = (*Converter)(nil)

// Converter is a mock implementation of blogmirror.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}
