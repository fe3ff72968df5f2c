package connectivity

import "errors"

// ErrConnectionNotFound indicates a query referenced a connection that
// does not exist between the given pair of trees.
var ErrConnectionNotFound = errors.New("connectivity: connection not found")
