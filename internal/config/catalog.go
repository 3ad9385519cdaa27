package config

import (
	_ "embed"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/golang/geo/s1"
	"github.com/tzneal/tranmerc"
)

// Frame is a named projection frame. Angles are in degrees. The ellipsoid
// is a registry code, or an explicit semi-major axis and inverse
// flattening. A non-zero UTMZone selects a UTM zone frame and ignores the
// explicit frame fields.
type Frame struct {
	Name              string  `toml:"name" mapstructure:"name"`
	Description       string  `toml:"description" mapstructure:"description"`
	Ellipsoid         string  `toml:"ellipsoid" mapstructure:"ellipsoid"`
	SemiMajorAxis     float64 `toml:"semi_major_axis" mapstructure:"semi-major-axis"`
	InverseFlattening float64 `toml:"inverse_flattening" mapstructure:"inverse-flattening"`
	CentralMeridian   float64 `toml:"central_meridian" mapstructure:"central-meridian"`
	OriginLatitude    float64 `toml:"origin_latitude" mapstructure:"origin-latitude"`
	ScaleFactor       float64 `toml:"scale_factor" mapstructure:"scale-factor"`
	FalseEasting      float64 `toml:"false_easting" mapstructure:"false-easting"`
	FalseNorthing     float64 `toml:"false_northing" mapstructure:"false-northing"`
	UTMZone           int     `toml:"utm_zone" mapstructure:"utm-zone"`
	Hemisphere        string  `toml:"hemisphere" mapstructure:"hemisphere"`
}

// Build constructs the converter for the frame.
func (f Frame) Build() (*tranmerc.TransverseMercator, error) {
	e, err := f.ellipsoid()
	if err != nil {
		return nil, err
	}

	if f.UTMZone != 0 {
		h := tranmerc.HemisphereNorth
		if f.Hemisphere != "" {
			if h, err = tranmerc.ParseHemisphere(f.Hemisphere); err != nil {
				return nil, err
			}
		}
		u, err := tranmerc.NewUTM(e, 0)
		if err != nil {
			return nil, err
		}
		return u.Frame(f.UTMZone, h)
	}

	return tranmerc.NewFromParameters(e, tranmerc.Parameters{
		CentralMeridian: radians(f.CentralMeridian),
		OriginLatitude:  radians(f.OriginLatitude),
		ScaleFactor:     f.ScaleFactor,
		FalseEasting:    f.FalseEasting,
		FalseNorthing:   f.FalseNorthing,
	})
}

func (f Frame) ellipsoid() (tranmerc.Ellipsoid, error) {
	if f.SemiMajorAxis != 0 || f.InverseFlattening != 0 {
		if f.SemiMajorAxis <= 0 || f.InverseFlattening <= 0 {
			return tranmerc.Ellipsoid{}, fmt.Errorf("semi_major_axis and inverse_flattening must both be positive")
		}
		code := tranmerc.UserDefinedCode
		if _, known := tranmerc.LookupEllipsoid(f.Ellipsoid); f.Ellipsoid != "" && !known {
			code = f.Ellipsoid
		}
		return tranmerc.Ellipsoid{
			Code:          code,
			SemiMajorAxis: f.SemiMajorAxis,
			Flattening:    1 / f.InverseFlattening,
		}, nil
	}
	e, ok := tranmerc.LookupEllipsoid(f.Ellipsoid)
	if !ok {
		return tranmerc.Ellipsoid{}, fmt.Errorf("unknown ellipsoid code %q", f.Ellipsoid)
	}
	return e, nil
}

func radians(deg float64) float64 {
	return (s1.Angle(deg) * s1.Degree).Radians()
}

// Catalog is a set of named frames.
type Catalog struct {
	Frames []Frame `toml:"frame"`
}

//go:embed frames.toml
var defaultFrames string

// DefaultCatalog returns the frames compiled into tmconv.
func DefaultCatalog() *Catalog {
	c, err := DecodeCatalog(strings.NewReader(defaultFrames))
	if err != nil {
		panic(fmt.Sprintf("decoding built-in frame catalog: %s", err))
	}
	return c
}

// LoadCatalog returns the default catalog with the frames of the TOML file
// at path added. A file frame replaces a default frame of the same name.
func LoadCatalog(path string) (*Catalog, error) {
	c := DefaultCatalog()
	if path == "" {
		return c, nil
	}
	f, err := os.Open(os.ExpandEnv(path))
	if err != nil {
		return nil, fmt.Errorf("opening frame catalog: %w", err)
	}
	defer f.Close()

	fc, err := DecodeCatalog(f)
	if err != nil {
		return nil, fmt.Errorf("frame catalog %s: %w", path, err)
	}
	c.Merge(fc)
	return c, nil
}

// DecodeCatalog reads a TOML catalog of [[frame]] tables. Unknown keys,
// unnamed frames and duplicate names are errors.
func DecodeCatalog(r io.Reader) (*Catalog, error) {
	var c Catalog
	md, err := toml.NewDecoder(r).Decode(&c)
	if err != nil {
		return nil, err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("unknown keys: %s", strings.Join(keys, ", "))
	}

	seen := make(map[string]bool)
	for i, f := range c.Frames {
		if f.Name == "" {
			return nil, fmt.Errorf("frame %d has no name", i)
		}
		if seen[f.Name] {
			return nil, fmt.Errorf("duplicate frame %q", f.Name)
		}
		seen[f.Name] = true
	}
	return &c, nil
}

// Merge adds the frames of o, replacing frames of the same name.
func (c *Catalog) Merge(o *Catalog) {
	for _, f := range o.Frames {
		replaced := false
		for i := range c.Frames {
			if c.Frames[i].Name == f.Name {
				c.Frames[i] = f
				replaced = true
				break
			}
		}
		if !replaced {
			c.Frames = append(c.Frames, f)
		}
	}
}

// Lookup returns the frame with the given name.
func (c *Catalog) Lookup(name string) (Frame, bool) {
	for _, f := range c.Frames {
		if f.Name == name {
			return f, true
		}
	}
	return Frame{}, false
}

// Names returns the frame names in sorted order.
func (c *Catalog) Names() []string {
	names := make([]string, len(c.Frames))
	for i, f := range c.Frames {
		names[i] = f.Name
	}
	sort.Strings(names)
	return names
}
