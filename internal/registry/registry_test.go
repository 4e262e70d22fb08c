package registry

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultRegistryAllowList(t *testing.T) {
	r := Default()

	allowed := []string{
		"admins", "availability_windows", "bookings", "equipment",
		"lesson_sessions", "lessons", "packages", "payments", "post_lessons",
		"sessions", "student_availability_windows", "students", "teachers",
	}

	for _, name := range allowed {
		assert.True(t, r.Allowed(name), "expected %s to be allowed", name)
	}

	assert.False(t, r.Allowed("users"))
	assert.False(t, r.Allowed(""))
	assert.False(t, r.Allowed("students; drop table students"))

	assert.Len(t, r.TableNames(), len(allowed))
}

func TestDefaultRegistryStudents(t *testing.T) {
	r := Default()

	meta, ok := r.Lookup("students")
	require.True(t, ok)

	assert.Equal(t, "students", meta.Name)
	require.NotEmpty(t, meta.Fields)
	assert.Equal(t, "id", meta.Fields[0].Name)
	assert.True(t, meta.Fields[0].PrimaryKey)
	assert.True(t, meta.Fields[0].Required)

	// languages is multi-select, age offers range groups
	require.Len(t, meta.FilterOptions, 2)
	assert.True(t, meta.FilterOptions[0].MultiSelect)
	assert.Equal(t, "age", meta.FilterOptions[1].Field)
	assert.Equal(t, "36+", meta.FilterOptions[1].Choices[2].Value)

	assert.Equal(t, []string{"name", "email"}, meta.SearchFields)
}

func TestRoleTableGroupsAreAllowed(t *testing.T) {
	r := Default()

	for _, group := range [][]string{AdminTables, StudentTables, TeacherTables} {
		for _, name := range group {
			assert.True(t, r.Allowed(name), "role group references unknown table %s", name)
		}
	}
}

func TestParseKindRoundTrip(t *testing.T) {
	kinds := []FieldKind{
		KindString, KindNumber, KindBool, KindDate, KindArray,
		KindCurrency, KindDuration, KindStatus, KindRelation,
	}

	for _, k := range kinds {
		parsed, err := ParseKind(k.String())
		require.NoError(t, err)
		assert.Equal(t, k, parsed)
	}

	_, err := ParseKind("blob")
	assert.Error(t, err)
}

func TestRegisterReplaces(t *testing.T) {
	r := New()

	r.Register(TableMeta{Name: "students", Description: "first"})
	r.Register(TableMeta{Name: "students", Description: "second"})

	meta, ok := r.Lookup("students")
	require.True(t, ok)
	assert.Equal(t, "second", meta.Description)
	assert.Len(t, r.TableNames(), 1)
}

func TestLoadFile(t *testing.T) {
	content := `tables:
  - name: waivers
    description: Signed liability waivers
    fields:
      - name: id
        kind: number
        required: true
        primary: true
      - name: student_id
        kind: relation
        required: true
      - name: signed_at
        kind: date
    filter_by:
      - field: signed_at
        label: Signed
        choices:
          - value: "true"
            label: Signed
          - value: "false"
            label: Pending
    sort_by:
      - field: signed_at
        label: Signed (Newest First)
        direction: desc
    relationships: [students]
    search_fields: [student_id]
`

	path := filepath.Join(t.TempDir(), "registry.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	r := Default()
	require.NoError(t, r.LoadFile(path))

	meta, ok := r.Lookup("waivers")
	require.True(t, ok)
	assert.Equal(t, "Signed liability waivers", meta.Description)
	require.Len(t, meta.Fields, 3)
	assert.Equal(t, KindRelation, meta.Fields[1].Kind)
	require.Len(t, meta.FilterOptions, 1)
	assert.Len(t, meta.FilterOptions[0].Choices, 2)
	require.Len(t, meta.SortOptions, 1)
	assert.Equal(t, "desc", meta.SortOptions[0].Direction)
}

func TestLoadFileUnknownKind(t *testing.T) {
	content := `tables:
  - name: broken
    fields:
      - name: id
        kind: blob
`

	path := filepath.Join(t.TempDir(), "registry.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	r := New()
	err := r.LoadFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown field kind")
}

func TestLoadFileMissing(t *testing.T) {
	r := New()
	err := r.LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
