package recipes

// Models lists every persisted type, in migration order.
func Models() []interface{} {
	return []interface{}{
		&Recipe{},
		&Ingredient{},
		&Step{},
		&PantryItem{},
	}
}
