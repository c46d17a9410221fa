//go:build !wsheddebug

package watershed

// debugInvariants enables invariant assertions; build with -tags wsheddebug.
const debugInvariants = false
