package conn

import "errors"

// ErrUnboundFilter is returned when constructing a Connection (or a
// ConnectionFactory) without a filter.
var ErrUnboundFilter = errors.New("conn: no filter bound")
