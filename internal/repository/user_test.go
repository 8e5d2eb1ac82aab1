package repository

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubUserRow feeds scanUser a row where clerk_id is NULL. The driver only
// accepts a nullable target for a NULL column, so the stub enforces the
// same contract.
type stubUserRow struct {
	clerkID *string
}

func (r stubUserRow) Scan(dest ...any) error {
	target, ok := dest[1].(**string)
	if !ok {
		return fmt.Errorf("cannot scan NULL into %T", dest[1])
	}
	*target = r.clerkID
	return nil
}

func TestScanUserAllowsNullClerkID(t *testing.T) {
	// Rows imported before identity went hosted carry no provider subject.
	u, err := scanUser(stubUserRow{clerkID: nil})
	require.NoError(t, err)
	assert.Empty(t, u.ClerkID)

	subject := "user_2abc"
	u, err = scanUser(stubUserRow{clerkID: &subject})
	require.NoError(t, err)
	assert.Equal(t, subject, u.ClerkID)
}
