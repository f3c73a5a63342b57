package dto

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlexIntUnmarshal(t *testing.T) {
	cases := []struct {
		name    string
		input   string
		want    FlexInt
		wantErr bool
	}{
		{name: "number", input: `30`, want: 30},
		{name: "string", input: `"30"`, want: 30},
		{name: "padded string", input: `" 30 "`, want: 30},
		{name: "empty string", input: `""`, want: 0},
		{name: "null", input: `null`, want: 0},
		{name: "garbage", input: `"abc"`, wantErr: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var f FlexInt
			err := json.Unmarshal([]byte(tc.input), &f)
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, f)
		})
	}
}

func TestFlexFloatUnmarshal(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  FlexFloat
	}{
		{name: "number", input: `800`, want: 800},
		{name: "decimal", input: `799.5`, want: 799.5},
		{name: "string", input: `"800"`, want: 800},
		{name: "empty string", input: `""`, want: 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var f FlexFloat
			require.NoError(t, json.Unmarshal([]byte(tc.input), &f))
			assert.Equal(t, tc.want, f)
		})
	}
}

func TestFlexBoolUnmarshal(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  FlexBool
	}{
		{name: "bool", input: `true`, want: true},
		{name: "string true", input: `"true"`, want: true},
		{name: "string false", input: `"false"`, want: false},
		{name: "empty string", input: `""`, want: false},
		{name: "null", input: `null`, want: false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var f FlexBool
			require.NoError(t, json.Unmarshal([]byte(tc.input), &f))
			assert.Equal(t, tc.want, f)
		})
	}
}

func TestSubjectListUnmarshal(t *testing.T) {
	var fromArray SubjectList
	require.NoError(t, json.Unmarshal([]byte(`["Math","Physics"]`), &fromArray))
	assert.Equal(t, SubjectList{"Math", "Physics"}, fromArray)

	var fromString SubjectList
	require.NoError(t, json.Unmarshal([]byte(`"Math, Physics"`), &fromString))
	assert.Equal(t, SubjectList{"Math", "Physics"}, fromString)

	var fromEmpty SubjectList
	require.NoError(t, json.Unmarshal([]byte(`""`), &fromEmpty))
	assert.Nil(t, fromEmpty)

	var fromNull SubjectList
	require.NoError(t, json.Unmarshal([]byte(`null`), &fromNull))
	assert.Nil(t, fromNull)
}

func TestRegisterTeacherRequestDecode(t *testing.T) {
	body := `{
		"userId": "t1",
		"email": "t1@example.com",
		"name": "Alice",
		"age": "30",
		"subjects": ["Math", "Physics"],
		"rateAmount": "800",
		"whatsappConsent": "true"
	}`
	var req RegisterTeacherRequest
	require.NoError(t, json.Unmarshal([]byte(body), &req))
	assert.Equal(t, "t1", req.UserID)
	assert.Equal(t, FlexInt(30), req.Age)
	assert.Equal(t, SubjectList{"Math", "Physics"}, req.Subjects)
	assert.Equal(t, FlexFloat(800), req.RateAmount)
	assert.Equal(t, FlexBool(true), req.WhatsappConsent)
}
