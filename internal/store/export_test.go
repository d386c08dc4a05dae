package store

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// NewTestStore returns a store bound to a transaction that is rolled back when the test ends
var NewTestStore = initPGTestDB

// CountRows returns the number of rows in table visible to s
func CountRows(t *testing.T, s Store, table string) int64 {
	t.Helper()

	var count int64
	require.NoError(t, s.(*pgStore).db.Table(table).Count(&count).Error)
	return count
}
