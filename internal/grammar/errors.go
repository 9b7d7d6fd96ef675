package grammar

import "errors"

var ErrNilToken = errors.New("grammar: nil token")
