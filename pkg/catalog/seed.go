package catalog

import (
	"fmt"
	"io"
	"os"

	"github.com/asianjeff44490-crypto/discord-bot/pkg/domain"
	"gopkg.in/yaml.v3"
)

// seedFile is the on-disk shape of a catalog seed:
//
//	products:
//	  - name: Netflix Yearly
//	    description: 2 Months Warranty • 1 Year Access
//	    price: 15
type seedFile struct {
	Products []domain.Product `yaml:"products"`
}

// Decode reads a YAML seed document.
func Decode(r io.Reader) ([]domain.Product, error) {
	var seed seedFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&seed); err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to decode catalog seed: %w", err)
	}
	return seed.Products, nil
}

// LoadFile builds a catalog from a YAML seed file.
func LoadFile(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog seed: %w", err)
	}
	defer f.Close()

	products, err := Decode(f)
	if err != nil {
		return nil, err
	}

	c, err := New(products...)
	if err != nil {
		return nil, fmt.Errorf("invalid catalog seed %s: %w", path, err)
	}
	return c, nil
}
