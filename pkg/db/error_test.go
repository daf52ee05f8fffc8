package db

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestIsDuplicateKeyErr(t *testing.T) {
	assert.True(t, IsDuplicateKeyErr(gorm.ErrDuplicatedKey))
	assert.True(t, IsDuplicateKeyErr(errors.New(`duplicate key value violates unique constraint "uq_clients_email"`)))
	assert.True(t, IsDuplicateKeyErr(errors.New("Error 1062 (23000): Duplicate entry")))
	assert.True(t, IsDuplicateKeyErr(errors.New("UNIQUE constraint failed: clients.identification")))

	assert.False(t, IsDuplicateKeyErr(nil))
	assert.False(t, IsDuplicateKeyErr(errors.New("connection refused")))
}

func TestIsForeignKeyErr(t *testing.T) {
	assert.True(t, IsForeignKeyErr(gorm.ErrForeignKeyViolated))
	assert.True(t, IsForeignKeyErr(errors.New(`update or delete on table "clients" violates foreign key constraint`)))
	assert.True(t, IsForeignKeyErr(errors.New("Error 1451 (23000): Cannot delete or update a parent row")))
	assert.True(t, IsForeignKeyErr(errors.New("FOREIGN KEY constraint failed")))

	assert.False(t, IsForeignKeyErr(nil))
	assert.False(t, IsForeignKeyErr(errors.New("connection refused")))
}
