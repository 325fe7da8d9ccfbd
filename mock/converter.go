package mock

import "github.com/mzaleski/proofcheck"

var _ proofcheck.Converter = (*Converter)(nil)

// Converter is a mock implementation of proofcheck.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}
