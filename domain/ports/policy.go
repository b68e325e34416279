package ports

// IntrinsicPolicy decides which intrinsics are exposed to programs.
type IntrinsicPolicy interface {
	// Allowed reports whether the named intrinsic may be called.
	Allowed(name string) bool
}

// DenialHandler is notified whenever the policy hides an intrinsic.
type DenialHandler interface {
	OnDenial(name string)
}
