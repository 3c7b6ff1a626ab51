package favorite

import "time"

// Favorite is a viewer's bookmark of a listing.
type Favorite struct {
	UserID    string    `json:"user_id" db:"user_id"`
	JobID     string    `json:"job_id" db:"job_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// Set is the favorite job ids of one viewer.
type Set map[string]struct{}

func NewSet(ids ...string) Set {
	s := make(Set, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

func (s Set) Has(id string) bool {
	_, ok := s[id]
	return ok
}

func (s Set) IDs() []string {
	ids := make([]string, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	return ids
}
