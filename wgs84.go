package tranmerc

import "fmt"

// DefaultUTMConverter is a WGS84 ellipsoid based UTM converter.
var DefaultUTMConverter *UTM

func init() {
	var err error
	DefaultUTMConverter, err = NewUTM(WGS84, 0)
	if err != nil {
		panic(fmt.Sprintf("error constructing WGS84 UTM converter: %s", err))
	}
}
