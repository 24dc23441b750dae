package rmutex

import "github.com/hashicorp/go-multierror"

// withReleaseCombined mirrors goredis's internal helper of the same name:
// body always runs, release always runs after it (even on panic, via
// defer), and both errors are combined instead of one silently shadowing
// the other.
func withReleaseCombined(body func() error, release func() error) (err error) {
	defer func() {
		if rerr := release(); rerr != nil {
			if err == nil {
				err = rerr
			} else {
				merr := multierror.Append(multierror.Append(nil, err), rerr)
				err = merr.ErrorOrNil()
			}
		}
	}()
	return body()
}
