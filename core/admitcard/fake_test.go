package admitcard

import (
	"context"
	"sync"

	"github.com/siddharth-debugs/college-erp-bite/core/listing"
)

// fakeRepo is an in-memory Repository. Loads of the semesters of a course
// block while a gate is registered for it.
type fakeRepo struct {
	mu        sync.Mutex
	courses   []Course
	groups    map[int][]AcademicGroup
	employees []Employee
	edits     map[int]EditActivity
	stats     map[int]ActivityStats
	activity  []Activity
	cards     []StudentAdmitCard

	gates      map[int]chan struct{}
	groupLoads chan int

	createRes  SaveResult
	updateRes  SaveResult
	saveErr    error
	saveGate   chan struct{}
	saveCalled chan struct{}
	payloads   []Payload
	queries    []listing.Query
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		courses: []Course{{ID: 1, Name: "B.Ed", Alias: "BED"}, {ID: 2, Name: "M.Ed", Alias: "MED"}},
		groups: map[int][]AcademicGroup{
			1: {
				{ID: 11, Name: "Semester 1", Lags: []Lag{
					{ID: 111, Name: "Section A", Students: []Candidate{
						{ID: 101, Name: "Asha Verma", RegistrationNo: "BED-001"},
						{ID: 102, Name: "Ravi Kumar", RegistrationNo: "BED-002"},
					}},
					{ID: 112, Name: "Section B", Students: []Candidate{
						{ID: 103, Name: "Meena Iyer", RegistrationNo: "BED-003"},
					}},
				}},
				{ID: 12, Name: "Semester 2"},
			},
			2: {{ID: 21, Name: "Semester 1", Lags: []Lag{
				{ID: 211, Name: "Section A", Students: []Candidate{{ID: 201, Name: "Kiran Rao", RegistrationNo: "MED-001"}}},
			}}},
		},
		employees:  []Employee{{ID: 7, Name: "Dr. Sen"}, {ID: 8, Name: "Mr. Das"}},
		edits:      map[int]EditActivity{},
		stats:      map[int]ActivityStats{},
		gates:      map[int]chan struct{}{},
		groupLoads: make(chan int, 16),
		saveCalled: make(chan struct{}, 4),
	}
}

func (r *fakeRepo) gate(courseID int) chan struct{} {
	r.mu.Lock()
	defer r.mu.Unlock()
	ch := make(chan struct{})
	r.gates[courseID] = ch
	return ch
}

func (r *fakeRepo) ListCourses(ctx context.Context) ([]Course, error) {
	return r.courses, nil
}

func (r *fakeRepo) ListAcademicGroups(ctx context.Context, courseID int) ([]AcademicGroup, error) {
	r.mu.Lock()
	gate := r.gates[courseID]
	delete(r.gates, courseID)
	r.mu.Unlock()
	r.groupLoads <- courseID
	if gate != nil {
		<-gate
	}
	return r.groups[courseID], nil
}

func (r *fakeRepo) ListEmployees(ctx context.Context) ([]Employee, error) {
	return r.employees, nil
}

func (r *fakeRepo) GetActivityForEdit(ctx context.Context, activityID int) (EditActivity, error) {
	return r.edits[activityID], nil
}

func (r *fakeRepo) save(p Payload, res SaveResult) (SaveResult, error) {
	r.mu.Lock()
	r.payloads = append(r.payloads, p)
	gate := r.saveGate
	r.mu.Unlock()
	r.saveCalled <- struct{}{}
	if gate != nil {
		<-gate
	}
	if r.saveErr != nil {
		return SaveResult{}, r.saveErr
	}
	return res, nil
}

func (r *fakeRepo) CreateActivity(ctx context.Context, p Payload) (SaveResult, error) {
	return r.save(p, r.createRes)
}

func (r *fakeRepo) UpdateActivity(ctx context.Context, p Payload) (SaveResult, error) {
	return r.save(p, r.updateRes)
}

func (r *fakeRepo) QueryActivities(ctx context.Context, q listing.Query) (listing.Result[Activity], error) {
	r.mu.Lock()
	r.queries = append(r.queries, q)
	r.mu.Unlock()
	return listing.Result[Activity]{Items: r.activity, TotalCount: len(r.activity)}, nil
}

func (r *fakeRepo) QueryActivityStudents(ctx context.Context, activityID int, q listing.Query) (listing.Result[StudentAdmitCard], error) {
	r.mu.Lock()
	r.queries = append(r.queries, q)
	r.mu.Unlock()
	return listing.Result[StudentAdmitCard]{
		Items:      r.cards,
		TotalCount: len(r.cards),
		Meta:       ActivityDetail{ID: activityID, Name: "B.Ed - Semester 1 - All", TotalStudents: len(r.cards)},
	}, nil
}

func (r *fakeRepo) GetActivityStats(ctx context.Context, activityID int) (ActivityStats, error) {
	stats, ok := r.stats[activityID]
	if !ok {
		return ActivityStats{}, errNoStats
	}
	return stats, nil
}

func (r *fakeRepo) lastPayload() Payload {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.payloads[len(r.payloads)-1]
}
