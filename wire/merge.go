package wire

// MergedObject builds a single object value from field entries supplied in
// call order. Entries are inserted left to right; when a later entry repeats
// an earlier key, the value is overwritten in place so the key keeps its
// first-occurrence position. This is a flat merge, not a recursive one:
// nested object values are replaced wholesale.
func MergedObject(fields []Field) Value {
	merged := make([]Field, 0, len(fields))
	position := make(map[string]int, len(fields))
	for _, field := range fields {
		if at, seen := position[field.Name]; seen {
			merged[at].Value = field.Value
			continue
		}
		position[field.Name] = len(merged)
		merged = append(merged, field)
	}
	return Value{kind: KindObject, objVal: merged}
}
