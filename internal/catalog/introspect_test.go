// internal/catalog/introspect_test.go
package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostgresIntrospectorHasTable(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	introspector := NewPostgresIntrospector(db)

	mock.ExpectQuery("SELECT EXISTS").
		WithArgs("ptdt_product").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	ok, err := introspector.HasTable(context.Background(), "ptdt_product")
	require.NoError(t, err)
	assert.True(t, ok)

	mock.ExpectQuery("SELECT EXISTS").
		WithArgs("missing_table").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

	ok, err = introspector.HasTable(context.Background(), "missing_table")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresIntrospectorColumns(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	introspector := NewPostgresIntrospector(db)

	mock.ExpectQuery("SELECT column_name FROM information_schema.columns").
		WithArgs("ptdt_product").
		WillReturnRows(sqlmock.NewRows([]string{"column_name"}).
			AddRow("id").
			AddRow("name").
			AddRow("price_root"))

	cols, err := introspector.Columns(context.Background(), "ptdt_product")
	require.NoError(t, err)
	assert.Equal(t, []string{"id", "name", "price_root"}, cols)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresIntrospectorErrorsAreWrapped(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	introspector := NewPostgresIntrospector(db)

	mock.ExpectQuery("SELECT EXISTS").
		WithArgs("ptdt_product").
		WillReturnError(errors.New("connection refused"))

	_, err = introspector.HasTable(context.Background(), "ptdt_product")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTableLookupFailed)
}
