package commons

import "errors"

var ErrRecordNotFound = errors.New("Record not found")
