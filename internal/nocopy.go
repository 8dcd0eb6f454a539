package internal

// NoCopy may be added to structs which must not be copied after the first use.
//
// See https://golang.org/issues/8005#issuecomment-190753527 for details.
//
// Note that it must not be embedded, due to the Lock and Unlock methods.
type NoCopy struct{}

// Lock is a no-op method used by the -copylocks checker from `go vet`.
func (*NoCopy) Lock() {}

// Unlock is a no-op method used by the -copylocks checker from `go vet`.
func (*NoCopy) Unlock() {}
