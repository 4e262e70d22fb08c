package registry

// Choice is one selectable value of a filter option
type Choice struct {
	Value string
	Label string
}

// FilterOption declares that a field supports filtering and catalogs the
// discrete values offered to the user. The catalog is declarative, not
// derived from data.
type FilterOption struct {
	Field       string
	Label       string
	MultiSelect bool
	Choices     []Choice
}

// SortOption declares one selectable ordering for a table
type SortOption struct {
	Field     string
	Label     string
	Direction string // "asc" or "desc"
}

// TableMeta is the static declarative metadata for one table
type TableMeta struct {
	Name          string
	Description   string
	Fields        []Field
	FilterOptions []FilterOption
	SortOptions   []SortOption
	Relationships []string
	SearchFields  []string
}

// Registry holds the table metadata and the allow-list. It is passed
// explicitly into the loader and resolver; there is no ambient global.
type Registry struct {
	tables map[string]TableMeta
	order  []string
}

// New creates an empty registry
func New() *Registry {
	return &Registry{tables: make(map[string]TableMeta)}
}

// Register adds or replaces a table's metadata
func (r *Registry) Register(meta TableMeta) {
	if _, exists := r.tables[meta.Name]; !exists {
		r.order = append(r.order, meta.Name)
	}

	r.tables[meta.Name] = meta
}

// Lookup returns the metadata for a table name
func (r *Registry) Lookup(name string) (TableMeta, bool) {
	meta, ok := r.tables[name]
	return meta, ok
}

// Allowed reports whether a table name is in the allow-list. Any name
// outside the registry is rejected before a network call is attempted.
func (r *Registry) Allowed(name string) bool {
	_, ok := r.tables[name]
	return ok
}

// TableNames returns all registered table names in registration order
func (r *Registry) TableNames() []string {
	names := make([]string, len(r.order))
	copy(names, r.order)

	return names
}

// Role-scoped table groups. Pages for a role load exactly their group.
var (
	AdminTables = []string{
		"bookings", "equipment", "lessons", "packages", "sessions", "students", "teachers",
	}
	StudentTables = []string{"students", "packages", "bookings", "lessons"}
	TeacherTables = []string{"lessons", "sessions"}
)

var languageChoices = []Choice{
	{Value: "english", Label: "English"},
	{Value: "spanish", Label: "Spanish"},
	{Value: "french", Label: "French"},
	{Value: "german", Label: "German"},
}

// Default returns the registry for the school database schema
func Default() *Registry {
	r := New()

	r.Register(TableMeta{
		Name:        "students",
		Description: "Student profiles and their information",
		Fields: []Field{
			{Name: "id", Kind: KindNumber, Required: true, PrimaryKey: true},
			{Name: "name", Kind: KindString, Required: true},
			{Name: "email", Kind: KindString},
			{Name: "phone", Kind: KindString},
			{Name: "languages", Kind: KindArray, Required: true},
			{Name: "age", Kind: KindNumber, Required: true},
			{Name: "auth_id", Kind: KindString},
		},
		FilterOptions: []FilterOption{
			{Field: "languages", Label: "Language", MultiSelect: true, Choices: languageChoices},
			{Field: "age", Label: "Age Group", Choices: []Choice{
				{Value: "18-25", Label: "18-25"},
				{Value: "26-35", Label: "26-35"},
				{Value: "36+", Label: "36+"},
			}},
		},
		SortOptions: []SortOption{
			{Field: "name", Label: "Name (A-Z)", Direction: "asc"},
			{Field: "name", Label: "Name (Z-A)", Direction: "desc"},
			{Field: "age", Label: "Age (Low to High)", Direction: "asc"},
			{Field: "age", Label: "Age (High to Low)", Direction: "desc"},
		},
		Relationships: []string{"bookings", "student_availability_windows"},
		SearchFields:  []string{"name", "email"},
	})

	r.Register(TableMeta{
		Name:        "teachers",
		Description: "Teacher profiles and their information",
		Fields: []Field{
			{Name: "id", Kind: KindNumber, Required: true, PrimaryKey: true},
			{Name: "name", Kind: KindString, Required: true},
			{Name: "email", Kind: KindString},
			{Name: "phone", Kind: KindString},
			{Name: "languages", Kind: KindArray, Required: true},
			{Name: "auth_id", Kind: KindString},
		},
		FilterOptions: []FilterOption{
			{Field: "languages", Label: "Language", MultiSelect: true, Choices: languageChoices},
		},
		SortOptions: []SortOption{
			{Field: "name", Label: "Name (A-Z)", Direction: "asc"},
			{Field: "name", Label: "Name (Z-A)", Direction: "desc"},
		},
		Relationships: []string{"lessons"},
		SearchFields:  []string{"name", "email"},
	})

	r.Register(TableMeta{
		Name:        "equipment",
		Description: "Kite equipment inventory (kites, bars, boards)",
		Fields: []Field{
			{Name: "id", Kind: KindNumber, Required: true, PrimaryKey: true},
			{Name: "type", Kind: KindStatus, Required: true},
			{Name: "model", Kind: KindString, Required: true},
			{Name: "size", Kind: KindNumber, Required: true},
		},
		FilterOptions: []FilterOption{
			{Field: "type", Label: "Type", Choices: []Choice{
				{Value: "kite", Label: "Kite"},
				{Value: "board", Label: "Board"},
				{Value: "bar", Label: "Control Bar"},
			}},
		},
		SortOptions: []SortOption{
			{Field: "type", Label: "Type (A-Z)", Direction: "asc"},
			{Field: "model", Label: "Model (A-Z)", Direction: "asc"},
			{Field: "size", Label: "Size (Small to Large)", Direction: "asc"},
			{Field: "size", Label: "Size (Large to Small)", Direction: "desc"},
		},
		SearchFields: []string{"model"},
	})

	r.Register(TableMeta{
		Name:        "packages",
		Description: "Lesson package offerings and pricing",
		Fields: []Field{
			{Name: "id", Kind: KindNumber, Required: true, PrimaryKey: true},
			{Name: "price", Kind: KindCurrency, Required: true},
			{Name: "hours", Kind: KindNumber, Required: true},
			{Name: "capacity", Kind: KindNumber, Required: true},
			{Name: "description", Kind: KindString},
			{Name: "created_at", Kind: KindDate},
		},
		FilterOptions: []FilterOption{
			{Field: "hours", Label: "Duration", Choices: []Choice{
				{Value: "1", Label: "1 Hour"},
				{Value: "2", Label: "2 Hours"},
				{Value: "3+", Label: "3+ Hours"},
			}},
			{Field: "capacity", Label: "Group Size", Choices: []Choice{
				{Value: "1", Label: "Individual"},
				{Value: "2", Label: "Pair"},
				{Value: "3-5", Label: "Small Group (3-5)"},
				{Value: "6+", Label: "Large Group (6+)"},
			}},
		},
		SortOptions: []SortOption{
			{Field: "price", Label: "Price (Low to High)", Direction: "asc"},
			{Field: "price", Label: "Price (High to Low)", Direction: "desc"},
			{Field: "hours", Label: "Duration (Short to Long)", Direction: "asc"},
			{Field: "hours", Label: "Duration (Long to Short)", Direction: "desc"},
		},
		Relationships: []string{"bookings"},
		SearchFields:  []string{"description"},
	})

	r.Register(TableMeta{
		Name:        "bookings",
		Description: "Student bookings for lesson packages",
		Fields: []Field{
			{Name: "id", Kind: KindNumber, Required: true, PrimaryKey: true},
			{Name: "package_id", Kind: KindRelation, Required: true},
			{Name: "student_id", Kind: KindRelation, Required: true},
			{Name: "start_date", Kind: KindDate, Required: true},
			{Name: "created_at", Kind: KindDate},
		},
		SortOptions: []SortOption{
			{Field: "start_date", Label: "Date (Newest First)", Direction: "desc"},
			{Field: "start_date", Label: "Date (Oldest First)", Direction: "asc"},
			{Field: "created_at", Label: "Booking Date (Newest First)", Direction: "desc"},
			{Field: "created_at", Label: "Booking Date (Oldest First)", Direction: "asc"},
		},
		Relationships: []string{"lessons", "packages", "students"},
	})

	r.Register(TableMeta{
		Name:        "lessons",
		Description: "Lessons linking teachers, bookings, payments and feedback",
		Fields: []Field{
			{Name: "id", Kind: KindNumber, Required: true, PrimaryKey: true},
			{Name: "teacher_id", Kind: KindRelation, Required: true},
			{Name: "booking_id", Kind: KindRelation, Required: true},
			{Name: "payment_id", Kind: KindRelation},
			{Name: "post_lesson_id", Kind: KindRelation},
			{Name: "status", Kind: KindStatus, Required: true},
			{Name: "created_at", Kind: KindDate},
		},
		FilterOptions: []FilterOption{
			{Field: "status", Label: "Status", Choices: []Choice{
				{Value: "created", Label: "Created"},
				{Value: "confirmed", Label: "Confirmed"},
				{Value: "cancelled", Label: "Cancelled"},
				{Value: "completed", Label: "Completed"},
			}},
		},
		SortOptions: []SortOption{
			{Field: "created_at", Label: "Created (Newest First)", Direction: "desc"},
			{Field: "created_at", Label: "Created (Oldest First)", Direction: "asc"},
			{Field: "status", Label: "Status (A-Z)", Direction: "asc"},
		},
		Relationships: []string{"teachers", "bookings", "payments", "post_lessons", "lesson_sessions"},
	})

	r.Register(TableMeta{
		Name:        "sessions",
		Description: "Individual learning sessions with equipment",
		Fields: []Field{
			{Name: "id", Kind: KindNumber, Required: true, PrimaryKey: true},
			{Name: "equipment_ids", Kind: KindArray, Required: true},
			{Name: "start_time", Kind: KindDate, Required: true},
			{Name: "duration", Kind: KindDuration, Required: true},
		},
		FilterOptions: []FilterOption{
			{Field: "duration", Label: "Duration", Choices: []Choice{
				{Value: "60", Label: "1 Hour"},
				{Value: "120", Label: "2 Hours"},
				{Value: "180+", Label: "3+ Hours"},
			}},
		},
		SortOptions: []SortOption{
			{Field: "start_time", Label: "Start Time (Newest First)", Direction: "desc"},
			{Field: "start_time", Label: "Start Time (Oldest First)", Direction: "asc"},
			{Field: "duration", Label: "Duration (Short to Long)", Direction: "asc"},
			{Field: "duration", Label: "Duration (Long to Short)", Direction: "desc"},
		},
		Relationships: []string{"lesson_sessions"},
	})

	r.Register(TableMeta{
		Name:        "payments",
		Description: "Payment records for lessons",
		Fields: []Field{
			{Name: "id", Kind: KindNumber, Required: true, PrimaryKey: true},
			{Name: "cash", Kind: KindBool, Required: true},
			{Name: "created_at", Kind: KindDate, Required: true},
			{Name: "amount", Kind: KindCurrency, Required: true},
		},
		FilterOptions: []FilterOption{
			{Field: "cash", Label: "Payment Type", Choices: []Choice{
				{Value: "true", Label: "Cash"},
				{Value: "false", Label: "Card/Digital"},
			}},
		},
		SortOptions: []SortOption{
			{Field: "created_at", Label: "Date (Newest First)", Direction: "desc"},
			{Field: "created_at", Label: "Date (Oldest First)", Direction: "asc"},
			{Field: "amount", Label: "Amount (High to Low)", Direction: "desc"},
			{Field: "amount", Label: "Amount (Low to High)", Direction: "asc"},
		},
		Relationships: []string{"lessons"},
	})

	r.Register(TableMeta{
		Name:        "post_lessons",
		Description: "Post-lesson feedback and confirmations",
		Fields: []Field{
			{Name: "id", Kind: KindNumber, Required: true, PrimaryKey: true},
			{Name: "student_confirmation", Kind: KindBool, Required: true},
		},
		FilterOptions: []FilterOption{
			{Field: "student_confirmation", Label: "Confirmation", Choices: []Choice{
				{Value: "true", Label: "Confirmed"},
				{Value: "false", Label: "Not Confirmed"},
			}},
		},
		Relationships: []string{"lessons"},
	})

	r.Register(TableMeta{
		Name:        "availability_windows",
		Description: "Time periods available for scheduling",
		Fields: []Field{
			{Name: "id", Kind: KindNumber, Required: true, PrimaryKey: true},
			{Name: "start_date", Kind: KindDate, Required: true},
			{Name: "end_date", Kind: KindDate, Required: true},
			{Name: "created_at", Kind: KindDate},
		},
		SortOptions: []SortOption{
			{Field: "start_date", Label: "Start Date (Newest First)", Direction: "desc"},
			{Field: "start_date", Label: "Start Date (Oldest First)", Direction: "asc"},
		},
		Relationships: []string{"student_availability_windows"},
	})

	r.Register(TableMeta{
		Name:        "student_availability_windows",
		Description: "Links students to their availability windows",
		Fields: []Field{
			{Name: "id", Kind: KindNumber, Required: true, PrimaryKey: true},
			{Name: "student_id", Kind: KindRelation, Required: true},
			{Name: "availability_window_id", Kind: KindRelation, Required: true},
		},
		Relationships: []string{"students", "availability_windows"},
	})

	r.Register(TableMeta{
		Name:        "lesson_sessions",
		Description: "Links lessons to their sessions",
		Fields: []Field{
			{Name: "id", Kind: KindNumber, Required: true, PrimaryKey: true},
			{Name: "lesson_id", Kind: KindRelation, Required: true},
			{Name: "session_id", Kind: KindRelation, Required: true},
		},
		Relationships: []string{"lessons", "sessions"},
	})

	r.Register(TableMeta{
		Name:        "admins",
		Description: "Admin role assignments",
		Fields: []Field{
			{Name: "id", Kind: KindNumber, Required: true, PrimaryKey: true},
			{Name: "user_id", Kind: KindString, Required: true},
			{Name: "role", Kind: KindString, Required: true},
		},
	})

	return r
}
