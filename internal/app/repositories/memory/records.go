package memory

func listOwned[T any](m map[int64]T, userID *int64, owner func(T) int64) []*T {
	items := make([]*T, 0, len(m))
	for _, id := range sortedKeys(m) {
		v := m[id]
		if userID != nil && owner(v) != *userID {
			continue
		}
		items = append(items, &v)
	}
	return items
}

func deleteOwned[T any](m map[int64]T, userID int64, owner func(T) int64) {
	for id, v := range m {
		if owner(v) == userID {
			delete(m, id)
		}
	}
}
