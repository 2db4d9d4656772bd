// Package subscription decides whether schools and users may use the app on a given civil day.
package subscription

import (
	"sort"

	"github.com/vidyasetu/backend/core"
	"github.com/vidyasetu/backend/core/school"
	"github.com/vidyasetu/backend/core/user"
)

type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

func StatusOf(active bool) Status {
	if active {
		return StatusActive
	}
	return StatusInactive
}

// Active reports whether a subscription ending on end still runs on today. The end day itself counts.
func Active(end *core.Date, today core.Date) bool {
	return end != nil && !end.Before(today)
}

// SchoolActive requires both the school's own flag and a running subscription.
func SchoolActive(sch school.School, today core.Date) bool {
	return sch.IsActive && Active(sch.SubscriptionEnd, today)
}

// Access is the subscription state of a user of a school on a day.
type Access struct {
	Status       Status     `json:"subscription_status"`
	SchoolStatus Status     `json:"school_subscription_status"`
	End          *core.Date `json:"subscription_end_date"`
}

// Determine computes the overall access of usr. Parents and students need the school and their
// own subscription to be active; every other role only depends on the school.
func Determine(sch school.School, usr user.User, today core.Date) Access {
	schoolActive := SchoolActive(sch, today)
	access := Access{
		Status:       StatusOf(schoolActive),
		SchoolStatus: StatusOf(schoolActive),
		End:          sch.SubscriptionEnd,
	}
	if usr.Role.NeedsPersonalSubscription() {
		access.Status = StatusOf(schoolActive && Active(usr.SubscriptionEnd, today))
		access.End = usr.SubscriptionEnd
	}
	return access
}

// ExpiringWithin returns the active schools whose subscription ends between today and today+days, soonest first.
func ExpiringWithin(schools []school.School, today core.Date, days int) []school.School {
	limit := today.AddDays(days)
	expiring := make([]school.School, 0)
	for _, sch := range schools {
		if !SchoolActive(sch, today) {
			continue
		}
		if !sch.SubscriptionEnd.After(limit) {
			expiring = append(expiring, sch)
		}
	}
	sort.SliceStable(expiring, func(i, j int) bool {
		return expiring[i].SubscriptionEnd.Before(*expiring[j].SubscriptionEnd)
	})
	return expiring
}
