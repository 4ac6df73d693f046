package auth

type Principal int

const (
	ISANY Principal = iota
	ISKNOWN
)
