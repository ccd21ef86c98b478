package importer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseHeaderCaseInsensitive(t *testing.T) {
	upper, err := Parse(strings.NewReader("Name,Email\nJohn,john@example.com\nAnn,\n"))
	require.NoError(t, err)
	lower, err := Parse(strings.NewReader("name,email\nJohn,john@example.com\nAnn,\n"))
	require.NoError(t, err)

	assert.Equal(t, lower, upper)
	require.Len(t, lower.Contacts, 2)
	assert.Equal(t, "John", lower.Contacts[0].Name)
	require.NotNil(t, lower.Contacts[0].Email)
	assert.Equal(t, "john@example.com", *lower.Contacts[0].Email)
	assert.Nil(t, lower.Contacts[1].Email)
}

func TestParseAllColumns(t *testing.T) {
	in := "\ufeffname,phone,birthday,relationship,notes,company\n" +
		"\"Doe, Jane\",555-0100,1990-04-02,Friend,\"likes \"\"jazz\"\"\",Acme\n"
	res, err := Parse(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, res.Contacts, 1)

	c := res.Contacts[0]
	assert.Equal(t, "Doe, Jane", c.Name)
	assert.Equal(t, "555-0100", *c.Phone)
	assert.Equal(t, "1990-04-02", *c.Birthday)
	assert.Equal(t, "Friend", *c.Relationship)
	assert.Equal(t, `likes "jazz"`, *c.Notes)
	assert.Nil(t, c.Email)
}

func TestParsePrefersLowercaseDuplicate(t *testing.T) {
	res, err := Parse(strings.NewReader("Name,name\nUpper,Lower\n"))
	require.NoError(t, err)
	require.Len(t, res.Contacts, 1)
	assert.Equal(t, "Lower", res.Contacts[0].Name)
}

func TestParseSkipsUnusableRows(t *testing.T) {
	in := "name,email\n" +
		"John,john@example.com\n" +
		" ,blank@example.com\n" +
		"Ann,not-an-email\n" +
		"Short\n"
	res, err := Parse(strings.NewReader(in))
	require.NoError(t, err)

	require.Len(t, res.Contacts, 2)
	assert.Equal(t, "John", res.Contacts[0].Name)
	assert.Equal(t, "Short", res.Contacts[1].Name)
	assert.Nil(t, res.Contacts[1].Email)

	require.Len(t, res.Skipped, 2)
	assert.Equal(t, SkippedRow{Line: 3, Reason: "name is empty"}, res.Skipped[0])
	assert.Equal(t, 4, res.Skipped[1].Line)
}

func TestParseHeaderOnly(t *testing.T) {
	res, err := Parse(strings.NewReader("name,email\n"))
	require.NoError(t, err)
	assert.Empty(t, res.Contacts)
	assert.Empty(t, res.Skipped)
}

func TestParseFileErrors(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want error
	}{
		{"empty", "", ErrEmptyFile},
		{"no name column", "email,phone\na@example.com,1\n", ErrMissingName},
		{"extra fields", "name,email\nJohn,john@example.com,surplus\n", ErrTooManyFields},
		{"invalid utf8", "name\n\xff\xfe\n", ErrInvalidUTF8},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.in))
			assert.ErrorIs(t, err, tt.want)
		})
	}

	_, err := Parse(strings.NewReader("name,notes\nJohn,\"unterminated\n"))
	assert.Error(t, err)
}
