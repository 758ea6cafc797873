package internal

type EvictionPolicy int

const (
	NoEviction  EvictionPolicy = iota // pushes onto a full list are refused
	EvictOldest                       // a push drops the element at the opposite end to make room
)

func (p EvictionPolicy) String() string {
	switch p {
	case EvictOldest:
		return "evict oldest"
	default:
		return "no eviction"
	}
}

// ToPolicy maps a config string onto a policy. Unknown names fall back to
// NoEviction.
func ToPolicy(s string) EvictionPolicy {
	switch s {
	case "evict oldest", "evict-oldest", "oldest":
		return EvictOldest
	default:
		return NoEviction
	}
}
