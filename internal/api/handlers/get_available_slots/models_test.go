package get_available_slots

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseServiceIDs(t *testing.T) {
	ids, err := ParseServiceIDs("1,2,3")
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2, 3}, ids)

	ids, err = ParseServiceIDs(" 5 , 7 ")
	require.NoError(t, err)
	assert.Equal(t, []int64{5, 7}, ids)

	_, err = ParseServiceIDs("")
	assert.Error(t, err)

	_, err = ParseServiceIDs("1,abc")
	assert.Error(t, err)
}

func TestToUseCaseRequest(t *testing.T) {
	req, err := ToUseCaseRequest(1, 7, []int64{3}, "2026-03-20")
	require.NoError(t, err)
	assert.Equal(t, int64(1), req.SalonID)
	assert.Equal(t, "2026-03-20", req.Date.Format("2006-01-02"))

	_, err = ToUseCaseRequest(1, 7, []int64{3}, "20.03.2026")
	assert.Error(t, err)
}
