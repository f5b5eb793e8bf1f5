package async

import "errors"

var ErrNoWorkers = errors.New("async: worker count must be at least 1")
