package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var testColumns = []string{"id", "email", "created_at", "updated_at"}

func TestSelectQuery(t *testing.T) {
	got := selectQuery("users", testColumns, "email")
	assert.Equal(t,
		"SELECT id, email, created_at, updated_at FROM users WHERE email = $1",
		got,
	)
}

func TestListQuery(t *testing.T) {
	got := listQuery("users", testColumns)
	assert.Equal(t,
		"SELECT id, email, created_at, updated_at FROM users ORDER BY id LIMIT $1 OFFSET $2",
		got,
	)
}

func TestInsertQuery(t *testing.T) {
	fields := []Field{
		{Column: "email", Value: "a@x.com"},
		{Column: "hashed_password", Value: "hash"},
	}
	got := insertQuery("users", testColumns, fields)
	assert.Equal(t,
		"INSERT INTO users (email, hashed_password) VALUES ($1, $2) RETURNING id, email, created_at, updated_at",
		got,
	)
}

func TestUpdateQuery(t *testing.T) {
	tests := []struct {
		name   string
		fields []Field
		want   string
	}{
		{
			name: "multiple assignments",
			fields: []Field{
				{Column: "email", Value: "b@x.com"},
				{Column: "is_active", Value: false},
			},
			want: "UPDATE users SET email = $1, is_active = $2, updated_at = NOW() WHERE id = $3 RETURNING id, email, created_at, updated_at",
		},
		{
			name:   "empty payload still touches updated_at",
			fields: nil,
			want:   "UPDATE users SET updated_at = NOW() WHERE id = $1 RETURNING id, email, created_at, updated_at",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, updateQuery("users", testColumns, tt.fields))
		})
	}
}

func TestDeleteQuery(t *testing.T) {
	got := deleteQuery("users", testColumns)
	assert.Equal(t,
		"DELETE FROM users WHERE id = $1 RETURNING id, email, created_at, updated_at",
		got,
	)
}

func TestValues(t *testing.T) {
	fields := []Field{
		{Column: "email", Value: "a@x.com"},
		{Column: "is_active", Value: true},
	}
	assert.Equal(t, []interface{}{"a@x.com", true}, values(fields))
	assert.Empty(t, values(nil))
}
