package adoption

import "sort"

// FavoriteAction names what a toggle did, for the caller's notification.
type FavoriteAction string

const (
	FavoriteAdded   FavoriteAction = "added"
	FavoriteRemoved FavoriteAction = "removed"
)

// Favorites is a set of animal IDs.
type Favorites map[string]struct{}

// NewFavorites builds a set from a list of IDs.
func NewFavorites(ids ...string) Favorites {
	f := make(Favorites, len(ids))
	for _, id := range ids {
		f[id] = struct{}{}
	}
	return f
}

// Contains reports membership.
func (f Favorites) Contains(id string) bool {
	_, ok := f[id]
	return ok
}

// IDs returns the members in catalog order, followed by any members not in
// the catalog in lexical order.
func (f Favorites) IDs(catalog []*Animal) []string {
	ids := make([]string, 0, len(f))
	seen := make(map[string]struct{}, len(f))
	for _, a := range catalog {
		if f.Contains(a.ID()) {
			ids = append(ids, a.ID())
			seen[a.ID()] = struct{}{}
		}
	}
	var rest []string
	for id := range f {
		if _, ok := seen[id]; !ok {
			rest = append(rest, id)
		}
	}
	sort.Strings(rest)
	return append(ids, rest...)
}

// ToggleFavorite returns a new set with id added if absent or removed if
// present. The input set is not modified.
func ToggleFavorite(favorites Favorites, id string) (Favorites, FavoriteAction) {
	next := make(Favorites, len(favorites)+1)
	for k := range favorites {
		next[k] = struct{}{}
	}
	if _, ok := next[id]; ok {
		delete(next, id)
		return next, FavoriteRemoved
	}
	next[id] = struct{}{}
	return next, FavoriteAdded
}
