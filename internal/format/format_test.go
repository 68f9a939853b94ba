package format

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateFormatsFrenchDisplay(t *testing.T) {
	cases := map[string]string{
		"2004-04-04": "4 Avr. 04",
		"2001-01-01": "1 Jan. 01",
		"2003-03-03": "3 Mar. 03",
		"2002-02-02": "2 Fév. 02",
		"2021-11-22": "22 Nov. 21",
	}
	for iso, want := range cases {
		got, err := Date(iso)
		require.NoError(t, err, iso)
		assert.Equal(t, want, got)
	}
}

func TestDateRejectsUnparseableInput(t *testing.T) {
	for _, iso := range []string{"", "not-a-date", "2004-13-45", "04/04/2004"} {
		_, err := Date(iso)
		assert.Error(t, err, iso)
	}
}

func TestStatusLabels(t *testing.T) {
	assert.Equal(t, "En attente", Status("pending"))
	assert.Equal(t, "Accepté", Status("accepted"))
	assert.Equal(t, "Refused", Status("refused"))
	assert.Equal(t, "archived", Status("archived"))
}
