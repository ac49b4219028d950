package usecase

import (
	"net/http"

	crerr "github.com/cockroachdb/errors"
	"github.com/soccerlens/scout/external/soccerlens"
)

var (
	ErrInvalidInput          = crerr.New("usecase: invalid input")
	ErrNotFound              = crerr.New("usecase: not found")
	ErrDependencyUnavailable = crerr.New("usecase: dependency unavailable")
)

// mapBackendError lifts a transport failure into the usecase taxonomy while
// keeping the original chain intact for logging and display.
func mapBackendError(err error) error {
	switch {
	case err == nil:
		return nil
	case crerr.Is(err, soccerlens.ErrNetwork):
		return crerr.Mark(err, ErrDependencyUnavailable)
	case crerr.Is(err, soccerlens.ErrServer):
		if status, ok := soccerlens.StatusOf(err); ok && status == http.StatusNotFound {
			return crerr.Mark(err, ErrNotFound)
		}
		return crerr.Mark(err, ErrDependencyUnavailable)
	case crerr.Is(err, soccerlens.ErrClient):
		return crerr.Mark(err, ErrInvalidInput)
	default:
		return err
	}
}
