package inmemdb

import (
	"fmt"
	"time"

	"github.com/pkg/errors"

	"github.com/siddharth-debugs/college-erp-bite/core"
	"github.com/siddharth-debugs/college-erp-bite/core/admitcard"
	"github.com/siddharth-debugs/college-erp-bite/core/student"
)

// DemoAdminMobile is the mobile number of the seeded admin.
const DemoAdminMobile = "9876543210"

type seedStudent struct {
	id         int
	first      string
	last       string
	regNo      string
	lagID      int
	active     bool
	aadhar     string
	bloodGroup string
}

var seedStudents = []seedStudent{
	{1001, "Asha", "Verma", "BED-2025-001", 111, true, "123412341234", "B+"},
	{1002, "Ravi", "Kumar", "BED-2025-002", 111, true, "223412341234", ""},
	{1003, "Meena", "Iyer", "BED-2025-003", 112, true, "", "O+"},
	{1004, "Kabir", "Singh", "BED-2025-004", 112, false, "423412341234", "A-"},
	{1005, "Farah", "Khan", "", 121, true, "", ""},
	{1006, "Neha", "Joshi", "BED-2024-006", 121, true, "623412341234", "AB+"},
	{2001, "Kiran", "Rao", "MED-2025-001", 211, true, "723412341234", "B-"},
	{2002, "Sunil", "Patil", "MED-2025-002", 211, true, "", ""},
	{3001, "Priya", "Nair", "BCA-2025-001", 311, true, "823412341234", "O-"},
	{3002, "Arjun", "Mehta", "BCA-2025-002", 311, true, "923412341234", "A+"},
	{3003, "Divya", "Shah", "BCA-2025-003", 312, true, "", "B+"},
}

// Seed fills db with a demo campus. Process dates are relative to today.
func Seed(db *DB, today time.Time) error {
	db.CreateAdmin(Admin{Mobile: DemoAdminMobile, FullName: "Campus Admin", Email: "admin@campus.example"})

	db.CreateCourse(admitcard.Course{ID: 1, Name: "B.Ed", Alias: "BED"})
	db.CreateCourse(admitcard.Course{ID: 2, Name: "M.Ed", Alias: "MED"})
	db.CreateCourse(admitcard.Course{ID: 3, Name: "BCA", Alias: "BCA"})
	db.CreateGroup(1, 11, "Semester 1", map[int]string{111: "Section A", 112: "Section B"})
	db.CreateGroup(1, 12, "Semester 3", map[int]string{121: "Section A"})
	db.CreateGroup(2, 21, "Semester 1", map[int]string{211: "Section A"})
	db.CreateGroup(3, 31, "Semester 2", map[int]string{311: "Section A", 312: "Section B"})

	db.CreateEmployee(admitcard.Employee{ID: 7, Name: "Dr. Anil Sen", Designation: "Controller of Examinations", UniqueCode: "EMP-007", Email: "sen@campus.example", Organization: "BITE", Department: "Examinations"})
	db.CreateEmployee(admitcard.Employee{ID: 8, Name: "Rekha Das", Designation: "Librarian", UniqueCode: "EMP-008", Email: "das@campus.example", Organization: "BITE", Department: "Library"})
	db.CreateEmployee(admitcard.Employee{ID: 9, Name: "Vikram Gill", Designation: "Accounts Officer", UniqueCode: "EMP-009", Email: "gill@campus.example", Organization: "BITE", Department: "Accounts"})

	for i, ss := range seedStudents {
		s := student.APIStudent{
			ID:             ss.id,
			FirstName:      ss.first,
			LastName:       ss.last,
			Email:          fmt.Sprintf("%s.%s@students.example", lower(ss.first), lower(ss.last)),
			Status:         ss.active,
			RegistrationNo: ss.regNo,
			ContactNumbers: []student.ContactNumber{
				{ID: ss.id, ContactType: "mobile", CountryCode: "+91", Number: fmt.Sprintf("90000%05d", ss.id), IsPrimary: true},
			},
			Addresses: []student.Address{{
				ID:      ss.id,
				Type:    student.AddressCurrent,
				Address: fmt.Sprintf("%d MG Road", i+1),
				City:    &student.Place{ID: 1, Name: "Pune"},
				State:   &student.Place{ID: 1, Name: "Maharashtra"},
				Country: &student.Place{ID: 1, Name: "India"},
				Pincode: "411001",
			}},
		}
		if ss.aadhar != "" {
			aadhar, photo := ss.aadhar, fmt.Sprintf("https://cdn.campus.example/photos/%d.jpg", ss.id)
			s.AadharNumber = &aadhar
			s.LatestPhoto = &photo
			s.ProfilePicture = &photo
		}
		if ss.bloodGroup != "" {
			bg := ss.bloodGroup
			s.BloodGroup = &bg
		}
		if _, err := db.CreateStudent(s, ss.lagID); err != nil {
			return errors.Wrapf(err, "seeding student %d", ss.id)
		}
	}

	past := today.AddDate(0, 0, -20)
	pastExam := today.AddDate(0, 0, -5).Format(core.DateLayout)
	done, err := db.CreateActivity(Activity{
		Name:          "B.Ed - Semester 3 - All",
		CourseID:      1,
		GroupID:       12,
		StartDate:     past.Format(core.DateLayout),
		EndDate:       past.AddDate(0, 0, 10).Format(core.DateLayout),
		ExamStartDate: &pastExam,
		EmployeeIDs:   []int{7},
		StudentIDs:    []int{1005, 1006},
		AuthMethodIDs: admitcard.DefaultSecurity.AuthenticationMethods,
		PreCheckIDs:   admitcard.DefaultSecurity.PreCheckMethods,
		CreatedBy:     "Campus Admin",
	})
	if err != nil {
		return errors.Wrap(err, "seeding past activity")
	}
	issuedAt := past.AddDate(0, 0, 3).Format(core.DateLayout)
	for _, id := range done.StudentIDs {
		p := Progress{NoDues: true, LibraryNOC: true, Authenticated: true, Issued: true, IssuedBy: "Dr. Anil Sen", IssuedAt: issuedAt, Available: true, Downloads: 1}
		if err = db.SetProgress(done.ID, id, p); err != nil {
			return errors.Wrap(err, "seeding progress")
		}
	}

	exam := today.AddDate(0, 0, 14).Format(core.DateLayout)
	upcoming, err := db.CreateActivity(Activity{
		Name:          "B.Ed - Semester 1 - All",
		CourseID:      1,
		GroupID:       11,
		StartDate:     today.Format(core.DateLayout),
		EndDate:       today.AddDate(0, 0, 10).Format(core.DateLayout),
		ExamStartDate: &exam,
		EmployeeIDs:   []int{7, 8},
		StudentIDs:    []int{1001, 1002, 1003, 1004},
		AuthMethodIDs: admitcard.DefaultSecurity.AuthenticationMethods,
		PreCheckIDs:   admitcard.DefaultSecurity.PreCheckMethods,
		CreatedBy:     "Campus Admin",
	})
	if err != nil {
		return errors.Wrap(err, "seeding upcoming activity")
	}
	seeded := map[int]Progress{
		1001: {NoDues: true, LibraryNOC: true, Authenticated: true, Available: true},
		1002: {NoDues: true},
		1003: {LibraryNOC: true},
	}
	for id, p := range seeded {
		if err = db.SetProgress(upcoming.ID, id, p); err != nil {
			return errors.Wrap(err, "seeding progress")
		}
	}
	return nil
}

func lower(s string) string {
	return core.CleanString(s, true)
}
