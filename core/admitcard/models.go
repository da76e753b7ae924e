package admitcard

type (
	Course struct {
		ID    int    `json:"id"`
		Name  string `json:"name"`
		Alias string `json:"alias,omitempty"`
	}

	// AcademicGroup is a semester of a course.
	AcademicGroup struct {
		ID   int    `json:"id"`
		Name string `json:"name"`
		Lags []Lag  `json:"lags"`
	}

	// Lag is a section of an AcademicGroup.
	Lag struct {
		ID       int         `json:"id"`
		Name     string      `json:"name"`
		Students []Candidate `json:"students"`
	}

	// Candidate is a student eligible for an admit card process.
	Candidate struct {
		ID             int     `json:"user_id"`
		Name           string  `json:"full_name"`
		RegistrationNo string  `json:"permanent_registration_number"`
		Mobile         string  `json:"mobile_number"`
		Email          string  `json:"email"`
		Balance        float64 `json:"balance"`
	}

	Employee struct {
		ID           int    `json:"employee_id"`
		Name         string `json:"name"`
		Designation  string `json:"designation"`
		UniqueCode   string `json:"unique_code"`
		Email        string `json:"email"`
		Organization string `json:"organization"`
		Department   string `json:"department"`
	}

	Method struct {
		ID   int    `json:"id"`
		Name string `json:"name"`
	}

	StudentRef struct {
		ID             int    `json:"user_id"`
		Name           string `json:"full_name,omitempty"`
		RegistrationNo string `json:"permanent_registration_number,omitempty"`
	}

	// Activity is an admit card process as listed on the management page.
	Activity struct {
		ID                    int          `json:"id"`
		Name                  string       `json:"activity_name"`
		Specialization        string       `json:"specialization"`
		AcademicGroup         string       `json:"academic_group"`
		Lag                   string       `json:"lag"`
		Description           *string      `json:"description"`
		StartDate             string       `json:"start_date"`
		EndDate               string       `json:"end_date"`
		ExamStartDate         *string      `json:"exam_start_date"`
		Amount                *float64     `json:"amount"`
		AmountRefundable      bool         `json:"amount_refundable"`
		CompletedStudents     int          `json:"completed_students"`
		TotalStudents         int          `json:"total_students"`
		Employees             []Employee   `json:"employee_list"`
		PreCheckMethods       []Method     `json:"pre_check_methods"`
		AuthenticationMethods []Method     `json:"authentication_methods"`
		SelectionName         *string      `json:"selection_name"`
		CreatedBy             string       `json:"created_by"`
		Students              []StudentRef `json:"students"`
	}

	// EditActivity is the persisted state of a process used to fill the edit form.
	EditActivity struct {
		Specialization struct {
			ID     int    `json:"id"`
			Course string `json:"course"`
		} `json:"specialization"`
		AcademicGroup int          `json:"academic_group"`
		Name          string       `json:"activity_name"`
		StartDate     string       `json:"start_date"`
		EndDate       string       `json:"end_date"`
		ExamStartDate *string      `json:"exam_start_date"`
		Employees     []Employee   `json:"employee_list"`
		SelectionName *string      `json:"selection_name"`
		Students      []StudentRef `json:"students"`
	}

	// ActivityDetail is the header of the per-process student page.
	ActivityDetail struct {
		ID               int     `json:"id"`
		Name             string  `json:"activity_name"`
		SelectionName    *string `json:"selection_name"`
		Description      *string `json:"description"`
		StartDate        string  `json:"start_date"`
		EndDate          string  `json:"end_date"`
		ExamStartDate    *string `json:"exam_start_date"`
		TotalStudents    int     `json:"total_students"`
		VerifiedStudents int     `json:"verified_students"`
		TotalAdmitCards  int     `json:"total_admit_cards"`
	}

	Address struct {
		Address      string  `json:"address"`
		AddressLine2 *string `json:"address_line_2"`
		City         string  `json:"city"`
		State        string  `json:"state"`
		Country      string  `json:"country"`
		Pincode      string  `json:"pincode"`
	}

	// StudentAdmitCard is the progress of one student through a process.
	StudentAdmitCard struct {
		StudentID                    int      `json:"student_id"`
		FullName                     string   `json:"full_name"`
		RegistrationNo               string   `json:"permanent_registration_number"`
		Mobile                       string   `json:"mobile"`
		Gender                       string   `json:"gender"`
		CourseName                   string   `json:"course_name"`
		DateOfBirth                  string   `json:"date_of_birth"`
		Email                        string   `json:"email"`
		FatherName                   string   `json:"father_name"`
		MotherName                   string   `json:"mother_name"`
		BloodGroup                   *string  `json:"blood_group"`
		AadharNumber                 string   `json:"aadhar_number"`
		TotalPrechecks               int      `json:"total_prechecks"`
		CompletedPrechecks           int      `json:"completed_prechecks"`
		TotalAuthentications         int      `json:"total_authentications"`
		CompletedAuthentications     int      `json:"completed_authentications"`
		AllPrecheckNames             []string `json:"all_precheck_names"`
		CompletedPrecheckNames       []string `json:"completed_precheck_names"`
		AllAuthenticationNames       []string `json:"all_authentication_names"`
		CompletedAuthenticationNames []string `json:"completed_authentication_names"`
		LibraryNOCStatus             string   `json:"library_noc_clearance_status"`
		ExceptionalApproval          bool     `json:"exceptional_approval"`
		ActivityCompleted            bool     `json:"activity_completed"`
		ActivityCompletedIssuedBy    *string  `json:"activity_completed_issued_by"`
		ActivityCompletedIssuedAt    *string  `json:"activity_completed_issued_at"`
		AdmitCardDownloadCount       int      `json:"admit_card_download_count"`
		NoDuesClearanceCount         int      `json:"no_dues_clearance_count"`
		LibraryNOCClearanceCount     int      `json:"library_noc_clearance_count"`
		IsAdmitCardAvailable         bool     `json:"is_admit_card_available"`
		Address                      Address  `json:"address"`
	}

	ActivityStats struct {
		ActivityID                 int              `json:"activity_id"`
		ActivityName               string           `json:"activity_name"`
		EmployeeIDs                []int            `json:"employee_ids"`
		TotalStudents              int              `json:"total_students"`
		CompletedStudents          int              `json:"completed_students"`
		AuthenticationMethods      []AuthProgress   `json:"authentication_methods"`
		PreCheckMethods            []PreCheckStatus `json:"pre_check_methods"`
		StudentsWithAdmitCardCount int              `json:"students_with_admit_card_count"`
	}

	AuthProgress struct {
		Type      string `json:"authentication_type"`
		Completed int    `json:"completed_count"`
		Total     int    `json:"total_count"`
	}

	PreCheckStatus struct {
		Type      string `json:"pre_check_type"`
		Completed int    `json:"completed_count"`
		Total     int    `json:"total_count"`
	}
)
