package student

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/siddharth-debugs/college-erp-bite/core/listing"
)

const fullStudent = `{
	"user_id": 7,
	"first_name": "Asha",
	"middle_name": null,
	"last_name": "Verma",
	"email": "asha@example.com",
	"status": true,
	"permanent_registration_number": "BED-001",
	"profile_picture": "https://cdn.example.com/7.jpg",
	"latest_photo": "https://cdn.example.com/7-latest.jpg",
	"aadhar_number": "123412341234",
	"blood_group": "B+",
	"category": "GEN",
	"contact_numbers": [
		{"number": "9000000001", "is_primary": false},
		{"number": "9000000002", "is_primary": true}
	],
	"lag": {
		"id": 111,
		"name": "Section B",
		"academic_group": {
			"id": 11,
			"name": "Semester 3",
			"specialization": {"id": 1, "name": "B.Ed", "course": {"id": 1, "name": "Bachelor of Education", "alias": "BED"}}
		}
	},
	"addresses": [
		{"address_type": "Current", "address": "12 MG Road", "city": {"name": "Pune"}, "state": {"name": "Maharashtra"}, "country": {"name": "India"}, "pincode": "411001"}
	],
	"permanent_address": "ignored"
}`

func TestTransform(t *testing.T) {
	var api APIStudent
	require.NoError(t, json.Unmarshal([]byte(fullStudent), &api))
	s := Transform(api)

	assert.Equal(t, "BED-001", s.EnrollmentNo)
	assert.Equal(t, "Asha Verma", s.FullName())
	assert.Equal(t, "9000000002", s.PrimaryPhone)
	assert.Equal(t, "BED", s.Course)
	assert.Equal(t, "3", s.Semester)
	assert.Equal(t, "B", s.Section)
	assert.Equal(t, StatusActive, s.Status)
	assert.Equal(t, DocumentsComplete, s.DocumentStatus)
	assert.True(t, s.HasPhoto)
	assert.True(t, s.HasAadhar)
	assert.True(t, s.HasBloodGroup)
	assert.True(t, s.HasCaste)

	current := Postal{Address: "12 MG Road", City: "Pune", State: "Maharashtra", Country: "India", Pincode: "411001"}
	assert.Equal(t, current, s.Correspondence)
	// no Permanent address: the Current one wins over the flat fields
	assert.Equal(t, current, s.Permanent)
}

func TestTransform_Fallbacks(t *testing.T) {
	corr := "Hostel 4"
	perm := "Village Rd"
	city := "Nashik"
	s := Transform(APIStudent{
		ID:                 42,
		CorrespondenceAddr: &corr,
		PermanentAddr:      &perm,
		PermanentCity:      &city,
	})

	assert.Equal(t, "TEMP-42", s.EnrollmentNo)
	assert.Equal(t, "N/A", s.PrimaryPhone)
	assert.Equal(t, "N/A", s.Course)
	assert.Equal(t, "1", s.Semester)
	assert.Equal(t, "A", s.Section)
	assert.Equal(t, StatusInactive, s.Status)
	assert.Equal(t, DocumentsIncomplete, s.DocumentStatus)
	assert.False(t, s.HasPhoto)
	assert.False(t, s.HasAadhar)
	assert.Equal(t, Postal{Address: "Hostel 4", Country: "India"}, s.Correspondence)
	assert.Equal(t, Postal{Address: "Village Rd", City: "Nashik", Country: "India"}, s.Permanent)
}

func TestTransform_DocumentStatus(t *testing.T) {
	photo, aadhar := "p.jpg", "1234"
	tests := []struct {
		name   string
		photo  *string
		aadhar *string
		want   string
	}{
		{"both", &photo, &aadhar, DocumentsComplete},
		{"no photo", nil, &aadhar, DocumentsIncomplete},
		{"no aadhar", &photo, nil, DocumentsIncomplete},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := Transform(APIStudent{ID: 1, LatestPhoto: tc.photo, AadharNumber: tc.aadhar})
			assert.Equal(t, tc.want, s.DocumentStatus)
		})
	}
}

func TestVisible(t *testing.T) {
	students := []Student{
		{ID: 1, Status: StatusActive, Course: "BED", DocumentStatus: DocumentsComplete},
		{ID: 2, Status: StatusInactive, Course: "BED", DocumentStatus: DocumentsIncomplete},
		{ID: 3, Status: StatusActive, Course: "MED", DocumentStatus: DocumentsIncomplete},
	}
	ids := func(ss []Student) []int {
		out := []int{}
		for _, s := range ss {
			out = append(out, s.ID)
		}
		return out
	}

	assert.Equal(t, []int{1, 2, 3}, ids(Visible(students, nil)))
	assert.Equal(t, []int{1, 3}, ids(Visible(students, map[string]string{FilterStatus: "active", FilterCourse: listing.FilterAll})))
	assert.Equal(t, []int{3}, ids(Visible(students, map[string]string{FilterCourse: "med", FilterDocuments: "incomplete"})))
	assert.Equal(t, []int{}, ids(Visible(students, map[string]string{FilterCourse: "MBA"})))
}

type fakeRepo struct {
	students []Student
	queries  []listing.Query
}

func (r *fakeRepo) QueryStudents(ctx context.Context, q listing.Query) (listing.Result[Student], error) {
	r.queries = append(r.queries, q)
	return listing.Result[Student]{Items: r.students, TotalCount: 25}, nil
}

func (r *fakeRepo) GetStudent(ctx context.Context, id int) (Student, error) {
	return r.students[0], nil
}

func TestNewList(t *testing.T) {
	repo := &fakeRepo{students: []Student{{ID: 1}}}
	list := NewList(repo, listing.Options{})
	defer list.Close()

	list.Start()
	list.Wait()
	st := list.State()
	assert.Equal(t, listing.StatusSuccess, st.Status)
	assert.Equal(t, 3, st.PageCount)
	require.Len(t, repo.queries, 1)
	assert.Equal(t, listing.Query{Page: 1, PageSize: 10, Filters: map[string]string{}}, repo.queries[0])
}
