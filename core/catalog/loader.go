package catalog

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"studio-quote/core/types"
	"studio-quote/internal/errors"
	"studio-quote/internal/logging"
)

// rateCardFile is the on-disk rate card schema:
//
//	currency = "USD"
//
//	service "mixing" {
//	  rate "single" {
//	    label       = "Single Song"
//	    price       = 350
//	    description = "One song, up to 24 stems"
//	  }
//	  rate "ep" {
//	    label    = "EP (3-5 songs)"
//	    price    = 300
//	    per_song = true
//	  }
//	}
//
//	addon "rush24" {
//	  label = "24 Hour Rush"
//	  price = 50
//	}
type rateCardFile struct {
	Currency string         `hcl:"currency,optional"`
	Services []serviceBlock `hcl:"service,block"`
	AddOns   []addOnBlock   `hcl:"addon,block"`
}

type serviceBlock struct {
	Name  string      `hcl:"name,label"`
	Rates []rateBlock `hcl:"rate,block"`
}

type rateBlock struct {
	Key         string `hcl:"key,label"`
	Label       string `hcl:"label"`
	Price       string `hcl:"price"`
	PerSong     bool   `hcl:"per_song,optional"`
	Description string `hcl:"description,optional"`
}

type addOnBlock struct {
	Key         string `hcl:"key,label"`
	Label       string `hcl:"label"`
	Price       string `hcl:"price"`
	PerSong     bool   `hcl:"per_song,optional"`
	Description string `hcl:"description,optional"`
}

// Load returns the rate card at path, or the built-in card in currency when path is empty
func Load(path string, currency types.Currency) (*Catalog, error) {
	if path == "" {
		c := Default()
		if currency != "" {
			c.Currency = currency
		}
		return c, nil
	}
	return LoadFile(path)
}

// LoadFile reads a rate card from an .hcl file (or HCL-flavoured .json).
// A card without addon blocks keeps the default add-on catalog.
func LoadFile(path string) (*Catalog, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(errors.TypeConfig, err, "read rate card %s", path)
	}
	return Parse(src, path)
}

// Parse decodes rate card source. The filename picks the syntax and is used in diagnostics.
func Parse(src []byte, filename string) (*Catalog, error) {
	parser := hclparse.NewParser()

	var file *hcl.File
	var diags hcl.Diagnostics
	if strings.EqualFold(filepath.Ext(filename), ".json") {
		file, diags = parser.ParseJSON(src, filename)
	} else {
		file, diags = parser.ParseHCL(src, filename)
	}
	if diags.HasErrors() {
		return nil, diagnosticsError(filename, diags)
	}

	var card rateCardFile
	if diags := gohcl.DecodeBody(file.Body, nil, &card); diags.HasErrors() {
		return nil, diagnosticsError(filename, diags)
	}

	c, err := card.build()
	if err != nil {
		return nil, err
	}
	if err := c.Check(); err != nil {
		return nil, err
	}

	stats := c.Stats()
	logging.Named("catalog").Debug("rate card loaded",
		zap.String("file", filename),
		zap.Int("services", stats.Services),
		zap.Int("rates", stats.Rates),
		zap.Int("add_ons", stats.AddOns),
	)
	return c, nil
}

func (f *rateCardFile) build() (*Catalog, error) {
	c := New(types.Currency(strings.ToUpper(f.Currency)))

	for _, sb := range f.Services {
		service, err := types.ParseServiceType(sb.Name)
		if err != nil {
			return nil, errors.Wrap(errors.TypeConfig, "rate card", err)
		}
		table := NewRateTable(service)
		for _, rb := range sb.Rates {
			size, err := types.ParseProjectSize(rb.Key)
			if err != nil {
				return nil, errors.Wrapf(errors.TypeConfig, err, "rate card service %q", sb.Name)
			}
			price, err := decimal.NewFromString(rb.Price)
			if err != nil {
				return nil, errors.Wrapf(errors.TypeConfig, err, "rate card %s:%s price", service, size)
			}
			table.Put(Rate{Key: size, Label: rb.Label, Price: price, PerSong: rb.PerSong, Description: rb.Description})
		}
		c.SetTable(table)
	}

	if len(f.AddOns) == 0 {
		for _, a := range Default().AddOns() {
			c.PutAddOn(a)
		}
		return c, nil
	}

	for _, ab := range f.AddOns {
		key, err := types.ParseAddOnKey(ab.Key)
		if err != nil {
			return nil, errors.Wrap(errors.TypeConfig, "rate card", err)
		}
		price, err := decimal.NewFromString(ab.Price)
		if err != nil {
			return nil, errors.Wrapf(errors.TypeConfig, err, "rate card add-on %s price", key)
		}
		c.PutAddOn(AddOn{Key: key, Label: ab.Label, Price: price, PerSong: ab.PerSong, Description: ab.Description})
	}
	return c, nil
}

func diagnosticsError(filename string, diags hcl.Diagnostics) error {
	err := errors.Parsing(fmt.Sprintf("rate card %s", filename), diags)
	for _, d := range diags {
		if d.Severity == hcl.DiagError && d.Subject != nil {
			err.WithContext("line", d.Subject.Start.Line)
			break
		}
	}
	return err
}
