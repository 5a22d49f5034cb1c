package booking

import "navbat/internal/domain/shop"

// StaffSelector picks the staff member a new booking is assigned to. The
// interface exists so a fair-queueing or least-loaded strategy can replace
// the current placeholder without touching allocation math.
type StaffSelector interface {
	Select(staff []shop.StaffMember) (shop.StaffMember, bool)
}

// FirstActiveSelector deterministically picks the first active staff member,
// matching the reference behavior. Not load-aware.
type FirstActiveSelector struct{}

func NewFirstActiveSelector() *FirstActiveSelector {
	return &FirstActiveSelector{}
}

func (s *FirstActiveSelector) Select(staff []shop.StaffMember) (shop.StaffMember, bool) {
	for _, m := range staff {
		if m.IsActive {
			return m, true
		}
	}
	return shop.StaffMember{}, false
}
