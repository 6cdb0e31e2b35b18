package render

import "errors"

var errNotInteger = errors.New("range expects an integer")
