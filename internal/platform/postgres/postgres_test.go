package postgres

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestConnect_RejectsBlankDSN(t *testing.T) {
	db, err := Connect(context.Background(), "  ")
	require.ErrorIs(t, err, ErrEmptyDSN)
	require.Nil(t, db)
}

func TestConnectOptional_BlankDSNDisablesPostgres(t *testing.T) {
	db, cleanup := ConnectOptional(context.Background(), "", nil)
	require.Nil(t, db)
	require.NotNil(t, cleanup)
	cleanup()
}
