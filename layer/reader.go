package layer

import (
	"github.com/sirupsen/logrus"

	"github.com/robert-malhotra/go-omezarr/omezarr"
)

var log = logrus.StandardLogger()

// GetReader resolves a path (or list of paths, of which only the first
// is honored) to a deferred layer producer.
//
// A nil ReaderFunc with a nil error means the path is not an OME-Zarr
// hierarchy and some other reader may handle it. Errors from reading a
// recognized hierarchy propagate.
func GetReader(paths ...string) (ReaderFunc, error) {
	if len(paths) == 0 {
		return nil, nil
	}
	if len(paths) > 1 {
		log.Warn("more than one path is not currently supported")
	}

	loc, err := omezarr.ParseURL(paths[0])
	if err != nil {
		return nil, err
	}
	if loc == nil {
		// Not our format; let another reader try.
		return nil, nil
	}

	return Transform(omezarr.NewReader(loc).Nodes()), nil
}
