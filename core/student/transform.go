package student

import (
	"strconv"
	"strings"
)

const (
	notAvailable    = "N/A"
	defaultSemester = "1"
	defaultSection  = "A"
	defaultCountry  = "India"
)

// Transform flattens an APIStudent.
//
// Missing values fall back in order: the enrollment number to TEMP-<id>, the
// phone and course to N/A, the semester to 1 and the section to A. The
// correspondence address comes from the Current address then the flat
// correspondence fields; the permanent address from the Permanent address,
// then the Current one, then the flat permanent fields. Countries default to India.
func Transform(s APIStudent) Student {
	current := findAddress(s.Addresses, AddressCurrent)
	permanent := findAddress(s.Addresses, AddressPermanent)

	out := Student{
		ID:           s.ID,
		EnrollmentNo: s.RegistrationNo,
		FirstName:    s.FirstName,
		MiddleName:   str(s.MiddleName),
		LastName:     s.LastName,
		Email:        s.Email,
		PrimaryPhone: notAvailable,
		Course:       notAvailable,
		Semester:     defaultSemester,
		Section:      defaultSection,
		Status:       StatusInactive,
		DateOfBirth:  str(s.DateOfBirth),
		Gender:       str(s.Gender),
		BloodGroup:   str(s.BloodGroup),
		Religion:     str(s.Religion),
		FatherName:   str(s.FatherName),
		MotherName:   str(s.MotherName),
		AadharNumber: str(s.AadharNumber),

		ProfilePicture: str(s.ProfilePicture),
		DocumentStatus: DocumentsIncomplete,
		HasPhoto:       str(s.ProfilePicture) != "",
		HasAadhar:      str(s.AadharNumber) != "",
		HasBloodGroup:  str(s.BloodGroup) != "",
		HasCaste:       str(s.Category) != "",
	}
	if out.EnrollmentNo == "" {
		out.EnrollmentNo = "TEMP-" + strconv.Itoa(s.ID)
	}
	for _, c := range s.ContactNumbers {
		if c.IsPrimary {
			out.PrimaryPhone = c.Number
			break
		}
	}
	if lag := s.Lag; lag != nil {
		if lag.Name != nil {
			out.Section = strings.Replace(*lag.Name, "Section ", "", 1)
		}
		if grp := lag.AcademicGroup; grp != nil {
			if grp.Name != nil {
				out.Semester = strings.Replace(*grp.Name, "Semester ", "", 1)
			}
			if grp.Specialization != nil && grp.Specialization.Course != nil && grp.Specialization.Course.Alias != nil {
				out.Course = *grp.Specialization.Course.Alias
			}
		}
	}
	if s.Status {
		out.Status = StatusActive
	}
	if str(s.LatestPhoto) != "" && str(s.AadharNumber) != "" {
		out.DocumentStatus = DocumentsComplete
	}

	out.Correspondence = Postal{
		Address: first(addrField(current, lineOf), s.CorrespondenceAddr),
		City:    first(addrField(current, cityOf), s.CorrespondenceCity),
		State:   first(addrField(current, stateOf), s.CorrespondenceState),
		Country: first(addrField(current, countryOf), s.CorrespondenceCtry, ptr(defaultCountry)),
		Pincode: first(addrField(current, pincodeOf), s.CorrespondencePin),
	}
	out.Permanent = Postal{
		Address: first(addrField(permanent, lineOf), addrField(current, lineOf), s.PermanentAddr),
		City:    first(addrField(permanent, cityOf), addrField(current, cityOf), s.PermanentCity),
		State:   first(addrField(permanent, stateOf), addrField(current, stateOf), s.PermanentState),
		Country: first(addrField(permanent, countryOf), addrField(current, countryOf), s.PermanentCtry, ptr(defaultCountry)),
		Pincode: first(addrField(permanent, pincodeOf), addrField(current, pincodeOf), s.PermanentPin),
	}
	return out
}

// TransformAll flattens a page of students.
func TransformAll(students []APIStudent) []Student {
	out := make([]Student, 0, len(students))
	for _, s := range students {
		out = append(out, Transform(s))
	}
	return out
}

func findAddress(addresses []Address, typ string) *Address {
	for i := range addresses {
		if addresses[i].Type == typ {
			return &addresses[i]
		}
	}
	return nil
}

func lineOf(a *Address) *string    { return &a.Address }
func pincodeOf(a *Address) *string { return &a.Pincode }
func cityOf(a *Address) *string    { return placeName(a.City) }
func stateOf(a *Address) *string   { return placeName(a.State) }
func countryOf(a *Address) *string { return placeName(a.Country) }

func placeName(p *Place) *string {
	if p == nil {
		return nil
	}
	return &p.Name
}

func addrField(a *Address, get func(*Address) *string) *string {
	if a == nil {
		return nil
	}
	return get(a)
}

// first returns the first non-nil value.
func first(values ...*string) string {
	for _, v := range values {
		if v != nil {
			return *v
		}
	}
	return ""
}

func str(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func ptr(s string) *string {
	return &s
}
