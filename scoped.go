package redis

import "github.com/hashicorp/go-multierror"

// withReleaseCombined runs body, then always runs release, combining both
// errors with go-multierror instead of letting one silently shadow the
// other. Used by WithConnection (rmutex keeps its own copy for WithMutex);
// release runs on every exit path, including a panic inside body.
func withReleaseCombined(body func() error, release func() error) (err error) {
	defer func() {
		err = combine(err, release())
	}()

	return body()
}

func combine(errs ...error) error {
	var merr *multierror.Error
	for _, err := range errs {
		if err != nil {
			merr = multierror.Append(merr, err)
		}
	}
	if merr == nil {
		return nil
	}
	return merr.ErrorOrNil()
}
