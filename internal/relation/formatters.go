package relation

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/tablerail/tablerail/internal/catalog"
)

// Composite display formatters for the school's entities. All of them
// degrade to a fallback string on any missing piece.

// StudentName renders a student id as the student's name
func StudentName(id any, c *catalog.Catalog) string {
	table, _ := c.Get("students")

	return Resolve(id, table, "name", "Unknown student")
}

// StudentDetail renders a student id as "name (email)", or just the name
// when the student has no email
func StudentDetail(id any, c *catalog.Catalog) string {
	table, ok := c.Get("students")
	if !ok || id == nil {
		return "Unknown student"
	}

	student, ok := table.Lookup(id)
	if !ok {
		return "Unknown student"
	}

	name := fmt.Sprint(student["name"])

	if email, ok := student["email"]; ok && email != nil && email != "" {
		return fmt.Sprintf("%s (%v)", name, email)
	}

	return name
}

// TeacherName renders a teacher id as the teacher's name
func TeacherName(id any, c *catalog.Catalog) string {
	table, _ := c.Get("teachers")

	return Resolve(id, table, "name", "Unknown teacher")
}

// PackageSummary renders a package id as "6hrs, 2 ppl"
func PackageSummary(id any, c *catalog.Catalog) string {
	pkg, ok := lookupIn(c, "packages", id)
	if !ok {
		return "Unknown package"
	}

	return fmt.Sprintf("%vhrs, %v ppl", pkg["hours"], pkg["capacity"])
}

// PackageDetail renders a package id as "6hrs, 2 ppl - $300", with the
// description appended when present
func PackageDetail(id any, c *catalog.Catalog) string {
	pkg, ok := lookupIn(c, "packages", id)
	if !ok {
		return "Unknown package"
	}

	base := fmt.Sprintf("%vhrs, %v ppl - $%v", pkg["hours"], pkg["capacity"], pkg["price"])

	if desc, ok := pkg["description"]; ok && desc != nil && desc != "" {
		return fmt.Sprintf("%s (%v)", base, desc)
	}

	return base
}

// BookingSummary renders a booking id as "<package info> - <student name>",
// degrading to whichever half resolves, and to "Booking #id" when neither
// does
func BookingSummary(id any, c *catalog.Catalog) string {
	if id == nil {
		return "Unknown booking"
	}

	booking, ok := lookupIn(c, "bookings", id)
	if !ok {
		return fmt.Sprintf("Booking #%v", id)
	}

	var packageInfo string

	if pkg, ok := lookupIn(c, "packages", booking["package_id"]); ok {
		packageInfo = fmt.Sprintf("%v ppl, %vhrs", pkg["capacity"], pkg["hours"])
	}

	var studentName string

	if student, ok := lookupIn(c, "students", booking["student_id"]); ok {
		studentName = fmt.Sprint(student["name"])
	}

	switch {
	case packageInfo != "" && studentName != "":
		return packageInfo + " - " + studentName
	case packageInfo != "":
		return packageInfo
	case studentName != "":
		return studentName
	default:
		return fmt.Sprintf("Booking #%v", id)
	}
}

// EquipmentSummary renders an equipment id list as "Kite: Rebel (9)" style
// details, truncated past three items
func EquipmentSummary(ids any, c *catalog.Catalog) string {
	list := idSlice(ids)
	if len(list) == 0 {
		return "No equipment"
	}

	table, ok := c.Get("equipment")
	if !ok || len(table.Data) == 0 {
		return fmt.Sprintf("%d equipment items", len(list))
	}

	details := make([]string, 0, len(list))

	for _, id := range list {
		item, found := table.Lookup(id)
		if !found {
			details = append(details, fmt.Sprintf("Equipment #%v", id))
			continue
		}

		details = append(details, fmt.Sprintf("%s: %v (%v)",
			capitalize(fmt.Sprint(item["type"])), item["model"], item["size"]))
	}

	if len(details) > 3 {
		return fmt.Sprintf("%s +%d more", strings.Join(details[:3], ", "), len(details)-3)
	}

	return strings.Join(details, ", ")
}

// idSlice normalizes an id list value to []any; non-slices yield nil
func idSlice(v any) []any {
	if v == nil {
		return nil
	}

	if list, ok := v.([]any); ok {
		return list
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice {
		return nil
	}

	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}

	return out
}

func capitalize(s string) string {
	if s == "" {
		return s
	}

	return strings.ToUpper(s[:1]) + s[1:]
}

// LessonSummary renders a lesson id as "Type (duration min)"
func LessonSummary(id any, c *catalog.Catalog) string {
	lesson, ok := lookupIn(c, "lessons", id)
	if !ok {
		return "Unknown lesson"
	}

	kind := "Lesson"
	if t, ok := lesson["type"]; ok && t != nil && t != "" {
		kind = fmt.Sprint(t)
	}

	duration := "?"
	if d, ok := lesson["duration"]; ok && d != nil {
		duration = fmt.Sprint(d)
	}

	return fmt.Sprintf("%s (%s min)", kind, duration)
}

func lookupIn(c *catalog.Catalog, tableName string, id any) (map[string]any, bool) {
	if id == nil {
		return nil, false
	}

	table, ok := c.Get(tableName)
	if !ok {
		return nil, false
	}

	return table.Lookup(id)
}
