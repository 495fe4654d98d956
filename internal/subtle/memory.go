package subtle

import "runtime"

// Wipe sets every byte in x to zero.
//
//go:noinline
func Wipe(x []byte) {
	// Marked noinline so the compiler does not see that x is
	// dead after the loop and drop the stores.
	for i := range x {
		x[i] = 0
	}
	runtime.KeepAlive(x)
}
