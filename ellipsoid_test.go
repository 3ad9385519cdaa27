package tranmerc_test

import (
	"testing"

	"github.com/tzneal/tranmerc"
)

func TestEllipsoids(t *testing.T) {
	all := tranmerc.Ellipsoids()
	if len(all) != 24 {
		t.Errorf("got %d ellipsoids", len(all))
	}
	for i, e := range all {
		if i > 0 && all[i-1].Code >= e.Code {
			t.Errorf("%s listed after %s", e.Code, all[i-1].Code)
		}
		if e.Name == "" || !(e.SemiMajorAxis > 6e6) || !(e.InverseFlattening() > 290) {
			t.Errorf("implausible ellipsoid %+v", e)
		}
		// Every registered ellipsoid builds a projection without warning.
		tm, err := tranmerc.NewFromParameters(e, tranmerc.Parameters{ScaleFactor: 1})
		if err != nil {
			t.Errorf("%s: %s", e.Code, err)
			continue
		}
		if mc, err := tm.Forward(0.1, 0.7); err != nil || mc.Warning != "" {
			t.Errorf("%s: %v %q", e.Code, err, mc.Warning)
		}
	}

	we, ok := tranmerc.LookupEllipsoid("WE")
	if !ok || we != tranmerc.WGS84 {
		t.Errorf("got %+v", we)
	}
	if _, ok := tranmerc.LookupEllipsoid("XX"); ok {
		t.Error("found unknown code")
	}
}
