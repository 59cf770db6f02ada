package types

// Badge is the visual class of a method or status label
type Badge string

const (
	BadgeDefault Badge = ""
	BadgeInfo    Badge = "info"
	BadgeSuccess Badge = "success"
	BadgeWarning Badge = "warning"
	BadgeDanger  Badge = "danger"
)

// MethodBadge maps GET to info, POST to success and the remaining
// enumerated methods to warning. Unknown methods get the default badge.
func MethodBadge(m Method) Badge {
	switch m {
	case MethodGet:
		return BadgeInfo
	case MethodPost:
		return BadgeSuccess
	case MethodPut, MethodDelete, MethodPatch:
		return BadgeWarning
	default:
		return BadgeDefault
	}
}

// StatusBadge maps active to success and inactive to danger.
// Unknown statuses get the default badge.
func StatusBadge(s Status) Badge {
	switch s {
	case StatusActive:
		return BadgeSuccess
	case StatusInactive:
		return BadgeDanger
	default:
		return BadgeDefault
	}
}
