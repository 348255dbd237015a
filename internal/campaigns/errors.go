package campaigns

import "errors"

var ErrNotFound = errors.New("not found")
