package alfa

// Cloner allows types to provide deep copy logic. Processor works on a
// clone so Store and Send never mutate the caller's value.
//
// For value types with no pointers, slices, or maps, Clone can return the
// receiver:
//
//	func (r Record) Clone() Record { return r }
type Cloner[T any] interface {
	Clone() T
}
