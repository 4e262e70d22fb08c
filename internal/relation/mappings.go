package relation

// Default field mappings per table. The "detail" context swaps in the
// richer formatters for single-row views.

// BookingMappings returns the foreign key mappings for bookings rows
func BookingMappings(context string) []FieldMapping {
	if context == "detail" {
		return []FieldMapping{
			{SourceField: "student_id", TargetTable: "students", DisplayField: "name", Label: "Student", UseAPI: true, Formatter: StudentDetail},
			{SourceField: "package_id", TargetTable: "packages", DisplayField: "id", Label: "Package", UseAPI: true, Formatter: PackageDetail},
		}
	}

	return []FieldMapping{
		{SourceField: "student_id", TargetTable: "students", DisplayField: "name", Label: "Student", UseAPI: true, Formatter: StudentName},
		{SourceField: "package_id", TargetTable: "packages", DisplayField: "id", Label: "Package", UseAPI: true, Formatter: PackageSummary},
	}
}

// LessonMappings returns the foreign key mappings for lessons rows
func LessonMappings(context string) []FieldMapping {
	return []FieldMapping{
		{SourceField: "teacher_id", TargetTable: "teachers", DisplayField: "name", Label: "Teacher", UseAPI: true, Formatter: TeacherName},
		{SourceField: "booking_id", TargetTable: "bookings", DisplayField: "id", Label: "Booking", UseAPI: true, Formatter: BookingSummary},
	}
}

// SessionMappings returns the field mappings for sessions rows. The
// equipment_ids array renders as an inline equipment summary.
func SessionMappings(context string) []FieldMapping {
	return []FieldMapping{
		{SourceField: "equipment_ids", TargetTable: "equipment", DisplayField: "model", Label: "Equipment", UseAPI: true, Formatter: EquipmentSummary},
	}
}

// MappingsFor returns the default mappings for a table, or nil when the
// table has no mapped foreign keys
func MappingsFor(table, context string) []FieldMapping {
	switch table {
	case "bookings":
		return BookingMappings(context)
	case "lessons":
		return LessonMappings(context)
	case "sessions":
		return SessionMappings(context)
	case "lesson_sessions":
		return []FieldMapping{
			{SourceField: "lesson_id", TargetTable: "lessons", DisplayField: "id", Label: "Lesson", Formatter: LessonSummary},
			{SourceField: "session_id", TargetTable: "sessions", DisplayField: "id", Label: "Session"},
		}
	case "student_availability_windows":
		return []FieldMapping{
			{SourceField: "student_id", TargetTable: "students", DisplayField: "name", Label: "Student", Formatter: StudentName},
		}
	default:
		return nil
	}
}

// ReferencedTables lists the tables a mapping set resolves against, for
// preloading before rendering
func ReferencedTables(mappings []FieldMapping) []string {
	seen := make(map[string]bool, len(mappings))
	tables := make([]string, 0, len(mappings))

	for _, m := range mappings {
		if m.TargetTable == "" || seen[m.TargetTable] {
			continue
		}

		seen[m.TargetTable] = true
		tables = append(tables, m.TargetTable)
	}

	// BookingSummary reaches through bookings into packages and students
	for _, m := range mappings {
		if m.TargetTable != "bookings" {
			continue
		}

		for _, extra := range []string{"packages", "students"} {
			if !seen[extra] {
				seen[extra] = true
				tables = append(tables, extra)
			}
		}
	}

	return tables
}
