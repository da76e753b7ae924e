package admitcard

import (
	"encoding/json"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/siddharth-debugs/college-erp-bite/core"
)

func TestBuildPayload(t *testing.T) {
	data := validDraft()
	data.SelectionName = "Batch A"
	data.AssignedTo = []int{7, 8}

	p := BuildPayload(data, []int{101, 103}, DefaultSecurity, 0)
	b, err := json.Marshal(p)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"activity_name": "B.Ed - Semester 1 - All",
		"selection_name": "Batch A",
		"start_date": "2026-01-10",
		"end_date": "2026-01-11",
		"exam_start_date": "2026-01-10",
		"employee_ids": "7,8",
		"student_ids": "101,103",
		"lag_ids": "11",
		"authentication_method_ids": "1",
		"pre_check_method_ids": "1,3"
	}`, string(b))

	data.ExamDate = ""
	data.Semester = 0
	p = BuildPayload(data, nil, Security{AuthenticationMethods: []int{AuthOTP, AuthBiometric}, PreCheckMethods: []int{PreCheckNOC}}, 42)
	assert.Equal(t, 42, p.ActivityID)
	assert.Nil(t, p.ExamStartDate)
	assert.Nil(t, p.LagIDs)
	assert.Equal(t, "", p.StudentIDs)
	assert.Equal(t, "1,2", p.AuthenticationMethodIDs)
	assert.Equal(t, "2", p.PreCheckMethodIDs)
}

func TestPayload_Validate(t *testing.T) {
	validate := validator.New()
	translator := core.NewTranslator()
	core.InitValidators(validate, translator)

	p := BuildPayload(validDraft(), []int{101}, DefaultSecurity, 0)
	assert.NoError(t, validate.Struct(p))

	p.ActivityName = " "
	p.EndDate = "soon"
	err := core.TranslateValidation(validate.Struct(p), translator, nil)
	require.Error(t, err)
	vErr, ok := err.(*core.ValidationError)
	require.True(t, ok)
	var fields []string
	for _, f := range vErr.Fields {
		fields = append(fields, f.Field)
	}
	assert.Equal(t, []string{"activity_name", "end_date"}, fields)
}
