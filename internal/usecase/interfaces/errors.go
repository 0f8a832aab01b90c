package interfaces

import "errors"

// ErrDuplicateKey is returned by repositories when a write hits a storage
// uniqueness constraint (conversation external id, dni, email, plate).
var ErrDuplicateKey = errors.New("duplicate key")
