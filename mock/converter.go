package mock

import "github.com/fwojciec/wptransfer"

var _ wptransfer.Converter = (*Converter)(nil)

// Converter is a mock implementation of wptransfer.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}
