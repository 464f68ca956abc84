// Package storage defines the persistence interfaces for imported translation
// sets.
//
// A catalog record describes one locale's .ts file; message records keep every
// message of that file in document order so the file can be rebuilt byte for
// byte. Implementations live in subpackages (sqlite).
//
// # Error Types
//
//   - ErrNotFound: a requested catalog or message is missing.
//   - ErrInvalidRecord: a record cannot be stored or rebuilt into a file.
//   - ErrEmpty: the store holds no catalogs to build a bundle from.
package storage
