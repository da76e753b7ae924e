package admitcard

import (
	"context"
	"sync"

	"github.com/pkg/errors"

	"github.com/siddharth-debugs/college-erp-bite/core/listing"
)

// filters of the students of a process
const (
	FilterNoDues           = "noDues"           // completed | pending
	FilterLibraryNOC       = "libraryNOC"       // completed | pending
	FilterIssueStatus      = "issueStatus"      // issued | not-issued
	FilterCardAvailability = "cardAvailability" // yes | no
)

// FilterValues lists the accepted values of each filter.
var FilterValues = map[string][]string{
	FilterNoDues:           {"completed", "pending"},
	FilterLibraryNOC:       {"completed", "pending"},
	FilterIssueStatus:      {"issued", "not-issued"},
	FilterCardAvailability: {"yes", "no"},
}

// StudentFilters maps the filters of the students of a process to query parameters.
var StudentFilters = listing.FilterTable{
	{Key: FilterNoDues, Params: func(v string) []listing.Param {
		return []listing.Param{{Name: "sort_by", Value: v}, {Name: "sort_type", Value: "no_dues_clearance"}}
	}},
	{Key: FilterLibraryNOC, Params: func(v string) []listing.Param {
		return []listing.Param{{Name: "sort_by", Value: v}, {Name: "sort_type", Value: "library_noc_clearance"}}
	}},
	{Key: FilterIssueStatus, Params: func(v string) []listing.Param {
		return []listing.Param{{Name: "admit_card_status", Value: v}}
	}},
	{Key: FilterCardAvailability, Params: func(v string) []listing.Param {
		available := "false"
		if v == "yes" {
			available = "true"
		}
		return []listing.Param{{Name: "admit_card_available", Value: available}}
	}},
}

// NewActivityList returns the list of admit card processes.
func NewActivityList(repo Repository, opts listing.Options) *listing.Controller[Activity] {
	return listing.New[Activity](listing.FetchFunc[Activity](repo.QueryActivities), opts)
}

// DetailView is the page of a single process: its students, header and statistics.
type DetailView struct {
	List       *listing.Controller[StudentAdmitCard]
	repo       Repository
	activityID int

	mu    sync.Mutex
	stats *ActivityStats
}

func NewDetailView(repo Repository, activityID int, opts listing.Options) *DetailView {
	v := &DetailView{repo: repo, activityID: activityID}
	v.List = listing.New[StudentAdmitCard](
		listing.FetchFunc[StudentAdmitCard](func(ctx context.Context, q listing.Query) (listing.Result[StudentAdmitCard], error) {
			return repo.QueryActivityStudents(ctx, activityID, q)
		}),
		opts,
	)
	return v
}

func (v *DetailView) ActivityID() int {
	return v.activityID
}

// Activity returns the header of the last page loaded.
func (v *DetailView) Activity() (ActivityDetail, bool) {
	detail, ok := v.List.State().Result.Meta.(ActivityDetail)
	return detail, ok
}

// LoadStats fetches the progress of the process.
func (v *DetailView) LoadStats(ctx context.Context) (ActivityStats, error) {
	stats, err := v.repo.GetActivityStats(ctx, v.activityID)
	v.mu.Lock()
	defer v.mu.Unlock()
	if err != nil {
		v.stats = nil
		return ActivityStats{}, errors.Wrapf(err, "loading stats of activity %d", v.activityID)
	}
	v.stats = &stats
	return stats, nil
}

// Stats returns the last statistics loaded.
func (v *DetailView) Stats() (ActivityStats, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.stats == nil {
		return ActivityStats{}, false
	}
	return *v.stats, true
}

// Close releases the student list.
func (v *DetailView) Close() {
	v.List.Close()
}
