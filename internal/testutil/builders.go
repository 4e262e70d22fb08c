package testutil

import "github.com/tablerail/tablerail/internal/store"

// Sample rows mirroring a small school database. The ids are deliberately a
// mix of ints and strings to exercise stringified id comparison.

// SampleStudents returns two students, Alice and Bob
func SampleStudents() []store.Row {
	return []store.Row{
		{
			"id":        1,
			"name":      "Alice",
			"email":     "alice@example.com",
			"age":       22,
			"languages": []any{"English", "French"},
			"country":   "France",
		},
		{
			"id":        "2",
			"name":      "Bob",
			"email":     "bob@example.com",
			"age":       41,
			"languages": []any{"English"},
			"country":   "Spain",
		},
	}
}

// SampleTeachers returns one teacher
func SampleTeachers() []store.Row {
	return []store.Row{
		{
			"id":        10,
			"name":      "Carla",
			"email":     "carla@example.com",
			"languages": []any{"English", "Spanish"},
		},
	}
}

// SamplePackages returns two lesson packages
func SamplePackages() []store.Row {
	return []store.Row{
		{
			"id":          100,
			"description": "Beginner",
			"hours":       6,
			"capacity":    2,
			"price":       300,
		},
		{
			"id":          101,
			"description": "Advanced",
			"hours":       2,
			"capacity":    1,
			"price":       150,
		},
	}
}

// SampleBookings returns three bookings referencing Alice, Bob, Alice in
// that order
func SampleBookings() []store.Row {
	return []store.Row{
		{
			"id":         200,
			"student_id": 1,
			"package_id": 100,
			"start_date": "2026-05-20T09:00:00Z",
			"created_at": "2026-04-01T10:00:00Z",
		},
		{
			"id":         201,
			"student_id": 2,
			"package_id": 101,
			"start_date": "2026-06-01T09:00:00Z",
			"created_at": "2026-04-15T10:00:00Z",
		},
		{
			"id":         202,
			"student_id": "1",
			"package_id": 100,
			"start_date": "2026-07-10T09:00:00Z",
			"created_at": "2026-05-02T10:00:00Z",
		},
	}
}

// SampleEquipment returns kites, a board, and a bar of assorted sizes
func SampleEquipment() []store.Row {
	return []store.Row{
		{"id": 1, "type": "kite", "model": "Rebel", "size": 9},
		{"id": 2, "type": "board", "model": "Dart", "size": 140},
		{"id": 3, "type": "kite", "model": "Neo", "size": 7},
		{"id": 4, "type": "bar", "model": "Click", "size": 52},
	}
}

// SampleSessions returns one session using the Rebel kite and the Dart board
func SampleSessions() []store.Row {
	return []store.Row{
		{
			"id":            400,
			"equipment_ids": []any{1, 2},
			"start_time":    "2026-05-20T09:00:00Z",
			"duration":      120,
		},
	}
}

// SampleLessons returns lessons in assorted statuses
func SampleLessons() []store.Row {
	return []store.Row{
		{
			"id":         300,
			"teacher_id": 10,
			"booking_id": 200,
			"status":     "planned",
		},
		{
			"id":         301,
			"teacher_id": 10,
			"booking_id": 201,
			"status":     "completed",
		},
	}
}

// SchoolStore builds a MemoryStore seeded with the full sample school
func SchoolStore(opts ...MemoryOption) *MemoryStore {
	seeded := []MemoryOption{
		WithTable("students", SampleStudents()),
		WithTable("teachers", SampleTeachers()),
		WithTable("packages", SamplePackages()),
		WithTable("bookings", SampleBookings()),
		WithTable("lessons", SampleLessons()),
		WithTable("equipment", SampleEquipment()),
		WithTable("sessions", SampleSessions()),
	}

	return NewMemoryStore(append(seeded, opts...)...)
}
