// Package link encodes table-scoped deep links into a restaurant's menu.
//
// A deep link opens the menu surface for one restaurant at one physical table,
// optionally pre-filtered to a single category or item:
//
//	{base}/restaurant/{restaurantID}/menu?table={label}[&category={id}|&item={id}]
//
// The query parameter order is fixed (table first) so that encoding the same
// input twice always yields byte-identical URLs. Table labels and target ids
// are percent-encoded; callers pass raw values.
//
// # Usage
//
//	enc := link.NewEncoder("https://menu.example.com")
//	rec, err := enc.Encode("R1", link.ScopeCategory, "5", &link.Target{ID: "C9", DisplayName: "Drinks"})
//	if errors.IsValidation(err) {
//	    // surface to the operator, nothing was created
//	}
//	fmt.Println(rec.URL)   // https://menu.example.com/restaurant/R1/menu?table=5&category=C9
//	fmt.Println(rec.Title) // Table 5 - Drinks
//
// Records are immutable once built; [registry.Registry] stores them.
package link
