package student

type (
	// APIStudent is a student as served by the campus API.
	APIStudent struct {
		ID                  int             `json:"user_id"`
		FirstName           string          `json:"first_name"`
		MiddleName          *string         `json:"middle_name"`
		LastName            string          `json:"last_name"`
		Email               string          `json:"email"`
		Lag                 *Lag            `json:"lag"`
		ContactNumbers      []ContactNumber `json:"contact_numbers"`
		LatestPhoto         *string         `json:"latest_photo"`
		Status              bool            `json:"status"`
		CreatedAt           string          `json:"created_at"`
		UpdatedAt           string          `json:"updated_at"`
		ProfilePicture      *string         `json:"profile_picture"`
		RegistrationNo      string          `json:"permanent_registration_number"`
		ProvisionalFees     bool            `json:"provisional_fees_status"`
		RegistrationStatus  bool            `json:"registration_status"`
		FeesPaymentStatus   bool            `json:"fees_payment_status"`
		AdmissionStatus     *string         `json:"admission_status"`
		Configuration       *Configuration  `json:"student_configuration"`
		DateOfBirth         *string         `json:"date_of_birth,omitempty"`
		Gender              *string         `json:"gender,omitempty"`
		BloodGroup          *string         `json:"blood_group,omitempty"`
		Religion            *string         `json:"religion,omitempty"`
		FatherName          *string         `json:"father_name,omitempty"`
		MotherName          *string         `json:"mother_name,omitempty"`
		AadharNumber        *string         `json:"aadhar_number,omitempty"`
		Category            *string         `json:"category,omitempty"`
		Addresses           []Address       `json:"addresses,omitempty"`
		CorrespondenceAddr  *string         `json:"correspondence_address,omitempty"`
		CorrespondenceCity  *string         `json:"correspondence_city,omitempty"`
		CorrespondenceState *string         `json:"correspondence_state,omitempty"`
		CorrespondenceCtry  *string         `json:"correspondence_country,omitempty"`
		CorrespondencePin   *string         `json:"correspondence_pincode,omitempty"`
		PermanentAddr       *string         `json:"permanent_address,omitempty"`
		PermanentCity       *string         `json:"permanent_city,omitempty"`
		PermanentState      *string         `json:"permanent_state,omitempty"`
		PermanentCtry       *string         `json:"permanent_country,omitempty"`
		PermanentPin        *string         `json:"permanent_pincode,omitempty"`
	}

	// Lag is the section a student belongs to.
	Lag struct {
		ID            int            `json:"id"`
		Name          *string        `json:"name"`
		AcademicGroup *AcademicGroup `json:"academic_group"`
	}

	AcademicGroup struct {
		ID             int             `json:"id"`
		Name           *string         `json:"name"`
		Specialization *Specialization `json:"specialization"`
	}

	Specialization struct {
		ID     int     `json:"id"`
		Name   string  `json:"name"`
		Course *Course `json:"course"`
	}

	Course struct {
		ID    int     `json:"id"`
		Name  string  `json:"name"`
		Alias *string `json:"alias"`
	}

	ContactNumber struct {
		ID          int    `json:"id"`
		ContactType string `json:"contact_type"`
		CountryCode string `json:"country_code"`
		Number      string `json:"number"`
		IsPrimary   bool   `json:"is_primary"`
		OnWhatsapp  bool   `json:"is_available_on_whatsapp"`
	}

	Configuration struct {
		ID            int     `json:"id"`
		IDCardPhoto   *string `json:"id_card_photo"`
		ValidFromDate string  `json:"valid_from_date"`
		ValidToDate   string  `json:"valid_to_date"`
	}

	Place struct {
		ID   int    `json:"id"`
		Name string `json:"name"`
	}

	Address struct {
		ID      int     `json:"id"`
		Type    string  `json:"address_type"` // Current | Permanent
		Address string  `json:"address"`
		Line2   *string `json:"address_line_2"`
		City    *Place  `json:"city"`
		State   *Place  `json:"state"`
		Country *Place  `json:"country"`
		Pincode string  `json:"pincode"`
	}
)

// address types
const (
	AddressCurrent   = "Current"
	AddressPermanent = "Permanent"
)

// document statuses
const (
	DocumentsComplete   = "complete"
	DocumentsIncomplete = "incomplete"
)

// statuses
const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

// Student is the flattened view of an APIStudent shown in the roster.
type Student struct {
	ID             int    `json:"id"`
	EnrollmentNo   string `json:"enrollment_no"`
	FirstName      string `json:"first_name"`
	MiddleName     string `json:"middle_name"`
	LastName       string `json:"last_name"`
	Email          string `json:"email"`
	PrimaryPhone   string `json:"primary_phone"`
	Course         string `json:"course"`
	Semester       string `json:"semester"`
	Section        string `json:"section"`
	Status         string `json:"status"`
	DateOfBirth    string `json:"date_of_birth"`
	Gender         string `json:"gender"`
	BloodGroup     string `json:"blood_group"`
	Religion       string `json:"religion"`
	FatherName     string `json:"father_name"`
	MotherName     string `json:"mother_name"`
	AadharNumber   string `json:"aadhar_number"`
	Correspondence Postal `json:"correspondence"`
	Permanent      Postal `json:"permanent"`
	ProfilePicture string `json:"profile_picture,omitempty"`
	DocumentStatus string `json:"document_status"`
	HasPhoto       bool   `json:"has_photo"`
	HasAadhar      bool   `json:"has_aadhar"`
	HasBloodGroup  bool   `json:"has_blood_group"`
	HasCaste       bool   `json:"has_caste"`
}

// Postal is a flattened address.
type Postal struct {
	Address string `json:"address"`
	City    string `json:"city"`
	State   string `json:"state"`
	Country string `json:"country"`
	Pincode string `json:"pincode"`
}

// FullName joins the non-empty parts of the student's name.
func (s Student) FullName() string {
	name := s.FirstName
	for _, part := range []string{s.MiddleName, s.LastName} {
		if part == "" {
			continue
		}
		if name != "" {
			name += " "
		}
		name += part
	}
	return name
}
