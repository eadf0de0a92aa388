package catalog_test

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/asianjeff44490-crypto/discord-bot/pkg/catalog"
	"github.com/asianjeff44490-crypto/discord-bot/pkg/domain"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalog_Defaults(t *testing.T) {
	c, err := catalog.New(catalog.Defaults()...)
	require.NoError(t, err)

	products := c.List()
	require.Len(t, products, 2)
	assert.Equal(t, "YouTube Premium Yearly", products[0].Name)
	assert.Equal(t, "Netflix Yearly", products[1].Name)
	assert.NotEmpty(t, products[0].ID)
	assert.NotEqual(t, products[0].ID, products[1].ID)
}

func TestCatalog_AddRejectsInvalid(t *testing.T) {
	c, err := catalog.New()
	require.NoError(t, err)

	cases := []domain.Product{
		{Name: "Spotify", Description: "1yr", Price: -5},
		{Name: "   ", Description: "1yr", Price: 5},
		{Name: "Spotify", Description: "", Price: 5},
	}
	for _, p := range cases {
		_, err := c.Add(p)
		require.Error(t, err)
		assert.Equal(t, domain.KindValidation, domain.KindOf(err))
	}
	assert.Equal(t, 0, c.Len(), "rejected products must not be appended")
}

func TestCatalog_AddRejectsDuplicateID(t *testing.T) {
	c, err := catalog.New(domain.Product{ID: "x", Name: "A", Description: "a", Price: 1})
	require.NoError(t, err)

	_, err = c.Add(domain.Product{ID: "x", Name: "B", Description: "b", Price: 2})
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))
	assert.Equal(t, 1, c.Len())
}

func TestCatalog_AddRejectsNumericID(t *testing.T) {
	c, err := catalog.New(catalog.Defaults()...)
	require.NoError(t, err)

	for _, id := range []string{"1", "0", " 7 ", "-3", "+2"} {
		_, err := c.Add(domain.Product{ID: id, Name: "Spotify", Description: "1yr", Price: 5})
		require.Error(t, err, id)
		assert.Equal(t, domain.KindValidation, domain.KindOf(err), id)
	}
	assert.Equal(t, 2, c.Len())

	got, err := c.Resolve("1")
	require.NoError(t, err)
	assert.Equal(t, "Netflix Yearly", got.Name, "index values keep pointing at positions")

	added, err := c.Add(domain.Product{ID: "sku-1", Name: "Spotify", Description: "1yr", Price: 5})
	require.NoError(t, err)
	assert.Equal(t, "sku-1", added.ID)
}

func TestCatalog_Resolve(t *testing.T) {
	c, err := catalog.New(catalog.Defaults()...)
	require.NoError(t, err)
	netflix := c.List()[1]

	got, err := c.Resolve(netflix.ID)
	require.NoError(t, err)
	assert.Equal(t, netflix, got)

	got, err = c.Resolve("1")
	require.NoError(t, err)
	assert.Equal(t, netflix, got, "legacy index values still resolve")

	for _, bad := range []string{"2", "-1", "nope", ""} {
		_, err := c.Resolve(bad)
		assert.ErrorIs(t, err, domain.ErrProductNotFound, bad)
		assert.Equal(t, domain.KindIndex, domain.KindOf(err), bad)
	}
}

// Rendering a menu and then appending more products must not change what
// earlier menu values resolve to.
func TestCatalog_StableValuesProperty(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("menu values resolve to the product shown at render time", prop.ForAll(
		func(before, after []string) bool {
			c, err := catalog.New()
			if err != nil {
				return false
			}
			for i, name := range before {
				if _, err := c.Add(domain.Product{Name: "p" + name, Description: "d", Price: float64(i)}); err != nil {
					return false
				}
			}

			rendered := c.List()

			for i, name := range after {
				if _, err := c.Add(domain.Product{Name: "q" + name, Description: "d", Price: float64(i)}); err != nil {
					return false
				}
			}

			for i, p := range rendered {
				byID, err := c.Resolve(p.ID)
				if err != nil || byID != p {
					return false
				}
				byIndex, err := c.Resolve(strconv.Itoa(i))
				if err != nil || byIndex != p {
					return false
				}
			}
			return true
		},
		gen.SliceOf(gen.AlphaString()),
		gen.SliceOf(gen.AlphaString()),
	))

	properties.TestingRun(t)
}

func TestDecode(t *testing.T) {
	doc := `
products:
  - name: Spotify Yearly
    description: 1 Year Access
    price: 12.5
  - name: Disney+
    description: 6 Months
    price: 0
`
	products, err := catalog.Decode(strings.NewReader(doc))
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, "Spotify Yearly", products[0].Name)
	assert.Equal(t, 12.5, products[0].Price)

	_, err = catalog.Decode(strings.NewReader("products:\n  - name: x\n    colour: red\n"))
	assert.Error(t, err, "unknown fields are rejected")

	products, err = catalog.Decode(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, products)
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()

	good := filepath.Join(dir, "catalog.yaml")
	require.NoError(t, os.WriteFile(good, []byte("products:\n  - name: A\n    description: a\n    price: 3\n"), 0o644))

	c, err := catalog.LoadFile(good)
	require.NoError(t, err)
	assert.Equal(t, 1, c.Len())

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("products:\n  - name: A\n    description: a\n    price: -3\n"), 0o644))

	_, err = catalog.LoadFile(bad)
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))

	_, err = catalog.LoadFile(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}

func ExampleCatalog_Resolve() {
	c, _ := catalog.New(domain.Product{ID: "netflix", Name: "Netflix Yearly", Description: "1 Year", Price: 15})
	p, _ := c.Resolve("netflix")
	fmt.Println(p.Name, p.PriceLabel())
	// Output: Netflix Yearly $15
}
